package bruteforce

// distributionIter enumerates every non-negative integer vector n with
// constraints[k].Min <= n[k] <= constraints[k].Max and sum(n) == width,
// in odometer order with n[0] varying fastest (spec §4.7 stage 1).
//
// It is a resumable rewrite of the original recursive/iterative C++ loop:
// each call to Next picks up the carry/fast-skip state where the previous
// call left it and runs "rounds" of the outer while(true) until one yields
// a valid distribution.
type distributionIter struct {
	constraints []Constraint
	counts      []int
	currentLen  int
	width       int
	started     bool
	done        bool
}

func newDistributionIter(constraints []Constraint, width int) *distributionIter {
	counts := make([]int, len(constraints))
	currentLen := 0
	for i, c := range constraints {
		counts[i] = c.Min
		currentLen += c.Min
	}
	return &distributionIter{constraints: constraints, counts: counts, currentLen: currentLen, width: width}
}

// Next returns the next valid distribution, or ok=false once every
// distribution has been visited.
func (d *distributionIter) Next() (dist []int, ok bool) {
	if d.done {
		return nil, false
	}
	for {
		if d.started {
			if d.advance() {
				d.done = true
				return nil, false
			}
		}
		d.started = true

		if d.currentLen < d.width {
			diff := d.width - d.currentLen
			if avail := d.constraints[0].Max - d.counts[0]; avail < diff {
				diff = avail
			}
			d.counts[0] += diff
			d.currentLen += diff
		}

		if d.currentLen == d.width {
			out := make([]int, len(d.counts))
			copy(out, d.counts)
			return out, true
		}
	}
}

// advance increments the odometer by one, carrying left when a wheel
// exceeds its max or the running length exceeds width. Returns true when
// the whole odometer has carried past its last wheel (exhausted).
func (d *distributionIter) advance() bool {
	for i := 0; i < len(d.counts); i++ {
		d.counts[i]++
		d.currentLen++
		if d.counts[i] > d.constraints[i].Max || d.currentLen > d.width {
			d.currentLen -= d.counts[i]
			d.counts[i] = d.constraints[i].Min
			d.currentLen += d.counts[i]
			continue
		}
		return false
	}
	return true
}
