// Package charset implements the ordered, deduplicated codepoint sets that
// masks are built from (spec C2), the named-charset registry with its
// self-referential, cycle-safe expansion algorithm (spec C3), and the
// built-in charset table.
package charset

import "github.com/flbdx/maskuni/internal/mgerr"

// Charset is a finite, non-empty, deduplicated, ordered sequence of
// codepoints carrying a cyclic cursor. Two Charsets built from the same
// body are independent values: copying one (via New, or via Clone) gives
// it its own cursor.
type Charset struct {
	set []int32
	p   int
}

// New builds a Charset from codepoints, deduplicating by first occurrence.
// It returns a mgerr.Empty error if codepoints is empty.
func New(codepoints []int32) (*Charset, error) {
	if len(codepoints) == 0 {
		return nil, mgerr.New(mgerr.Empty, "trying to define an empty charset")
	}
	seen := make(map[int32]struct{}, len(codepoints))
	out := make([]int32, 0, len(codepoints))
	for _, c := range codepoints {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return &Charset{set: out}, nil
}

// Clone returns an independent copy with its own cursor, positioned the
// same as the receiver.
func (c *Charset) Clone() *Charset {
	cp := &Charset{set: c.set, p: c.p}
	return cp
}

// Len returns the number of distinct codepoints in the set.
func (c *Charset) Len() int { return len(c.set) }

// SetPosition sets the cursor to o mod Len. Never fails.
func (c *Charset) SetPosition(o uint64) {
	c.p = int(o % uint64(len(c.set)))
}

// Current reads the codepoint under the cursor without advancing it.
func (c *Charset) Current() int32 { return c.set[c.p] }

// Advance moves the cursor forward by one, wrapping modulo Len, and
// returns the new current codepoint plus whether the cursor wrapped from
// the last position back to zero.
func (c *Charset) Advance() (cur int32, wrapped bool) {
	c.p++
	if c.p == len(c.set) {
		c.p = 0
	}
	return c.set[c.p], c.p == 0
}

// Codepoints returns the underlying deduplicated sequence. Callers must
// not mutate the returned slice.
func (c *Charset) Codepoints() []int32 { return c.set }
