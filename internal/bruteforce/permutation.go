package bruteforce

// permIter enumerates every length-width sequence drawing dist[k] copies
// of charset k, depth-first, leftmost-smaller-k-first (spec §4.7 stage
// 2). It replaces the original's recursive backtracking with an explicit
// stack of (position, next-k-to-try) frames, per the Design Notes'
// guidance to avoid a call-stack-based coroutine.
type permIter struct {
	remaining []int
	chosen    []int
	tryK      []int
	pos       int
	width     int
	started   bool
	done      bool
}

func newPermIter(dist []int, width int) *permIter {
	remaining := make([]int, len(dist))
	copy(remaining, dist)
	return &permIter{
		remaining: remaining,
		chosen:    make([]int, width),
		tryK:      make([]int, width),
		width:     width,
	}
}

// Next returns the charset-index sequence for the next permutation, or
// ok=false once every permutation of this distribution has been visited.
func (p *permIter) Next() (chosen []int, ok bool) {
	if p.done {
		return nil, false
	}

	if p.started {
		// resume from the last full assignment: undo its last position
		// and try the next candidate there.
		p.pos--
		p.remaining[p.chosen[p.pos]]++
		p.tryK[p.pos] = p.chosen[p.pos] + 1
	}
	p.started = true

	for {
		if p.pos == p.width {
			out := make([]int, p.width)
			copy(out, p.chosen)
			return out, true
		}

		found := false
		for k := p.tryK[p.pos]; k < len(p.remaining); k++ {
			if p.remaining[k] > 0 {
				p.remaining[k]--
				p.chosen[p.pos] = k
				p.pos++
				if p.pos < p.width {
					p.tryK[p.pos] = 0
				}
				found = true
				break
			}
		}
		if found {
			continue
		}

		if p.pos == 0 {
			p.done = true
			return nil, false
		}
		p.pos--
		p.remaining[p.chosen[p.pos]]++
		p.tryK[p.pos] = p.chosen[p.pos] + 1
	}
}
