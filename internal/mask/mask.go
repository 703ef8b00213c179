// Package mask implements C4: an ordered list of charsets and the
// odometer-style iterator over their Cartesian product.
package mask

import (
	"math/bits"

	"github.com/flbdx/maskuni/internal/charset"
	"github.com/flbdx/maskuni/internal/mgerr"
)

// Mask is an ordered list of Charsets, left to right. Its Len is the
// product of each Charset's length, overflow-checked against a 64-bit
// unsigned range.
type Mask struct {
	charsets []*charset.Charset
	length   uint64
}

// New returns an empty mask with capacity reserved for n charsets.
func New(n int) *Mask {
	return &Mask{charsets: make([]*charset.Charset, 0, n)}
}

// PushRight appends cs to the right of the already-defined charsets.
// Returns a mgerr.Overflow error if the mask's length would overflow
// a 64-bit unsigned integer.
func (m *Mask) PushRight(cs *charset.Charset) error {
	return m.push(cs, appendRight)
}

func appendRight(s []*charset.Charset, cs *charset.Charset) []*charset.Charset {
	return append(s, cs)
}

// PushLeft inserts cs to the left of the already-defined charsets.
// Returns a mgerr.Overflow error under the same condition as PushRight.
func (m *Mask) PushLeft(cs *charset.Charset) error {
	return m.push(cs, prepend)
}

func prepend(s []*charset.Charset, cs *charset.Charset) []*charset.Charset {
	s = append(s, nil)
	copy(s[1:], s)
	s[0] = cs
	return s
}

func (m *Mask) push(cs *charset.Charset, insert func([]*charset.Charset, *charset.Charset) []*charset.Charset) error {
	n := uint64(cs.Len())
	if len(m.charsets) == 0 {
		m.length = n
	} else {
		hi, lo := bits.Mul64(m.length, n)
		if hi != 0 {
			return mgerr.New(mgerr.Overflow, "the length of the mask would overflow a 64 bit integer")
		}
		m.length = lo
	}
	m.charsets = insert(m.charsets, cs)
	return nil
}

// Len returns the number of words this mask enumerates.
func (m *Mask) Len() uint64 { return m.length }

// Width returns the number of positions in this mask.
func (m *Mask) Width() int { return len(m.charsets) }

// SetPosition places the mask at word index o (mod Len), right to left:
// the rightmost charset varies fastest.
func (m *Mask) SetPosition(o uint64) {
	if m.length == 0 {
		return
	}
	o %= m.length
	for i := len(m.charsets) - 1; i >= 0; i-- {
		s := uint64(m.charsets[i].Len())
		q := o / s
		r := o - q*s
		m.charsets[i].SetPosition(r)
		o = q
	}
}

// Current fills buf[0:Width()] with the word at the current position,
// without advancing. buf must have length >= Width().
func (m *Mask) Current(buf []int32) {
	for i, cs := range m.charsets {
		buf[i] = cs.Current()
	}
}

// Advance moves the mask to the next position and updates buf in place.
// Only the positions whose wheel actually ticked are written — the mask
// is iterated right to left, and a position left of one that didn't
// carry is never touched. Returns true if the mask carried back to
// position 0.
func (m *Mask) Advance(buf []int32) bool {
	carry := true
	for i := len(m.charsets) - 1; carry && i >= 0; i-- {
		var cur int32
		cur, carry = m.charsets[i].Advance()
		buf[i] = cur
	}
	return carry
}

// AddLen adds b onto a, returning a mgerr.Overflow error instead of
// wrapping past math.MaxUint64. Used to sum mask lengths into a
// mask-list or mask-generator total.
func AddLen(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, mgerr.New(mgerr.Overflow, "the total word count would overflow a 64 bit integer")
	}
	return sum, nil
}
