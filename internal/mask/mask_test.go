package mask

import (
	"math"
	"testing"

	"github.com/flbdx/maskuni/internal/charset"
)

func buildMask(t *testing.T, bodies ...string) *Mask {
	t.Helper()
	m := New(len(bodies))
	for _, b := range bodies {
		cps := make([]int32, len(b))
		for i := 0; i < len(b); i++ {
			cps[i] = int32(b[i])
		}
		cs, err := charset.New(cps)
		if err != nil {
			t.Fatalf("charset.New(%q): %v", b, err)
		}
		if err := m.PushRight(cs); err != nil {
			t.Fatalf("PushRight(%q): %v", b, err)
		}
	}
	return m
}

func word(m *Mask, buf []int32) string {
	out := make([]byte, len(buf))
	for i, c := range buf {
		out[i] = byte(c)
	}
	return string(out)
}

func TestLenIsProduct(t *testing.T) {
	m := buildMask(t, "ab", "xyz")
	if m.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", m.Len())
	}
}

func TestSetPositionMatchesAdvanceSequence(t *testing.T) {
	m := buildMask(t, "ab", "xyz")
	for o := uint64(0); o < m.Len(); o++ {
		direct := make([]int32, m.Width())
		m.SetPosition(o)
		m.Current(direct)

		stepped := make([]int32, m.Width())
		m.SetPosition(0)
		m.Current(stepped)
		for i := uint64(0); i < o; i++ {
			m.Advance(stepped)
		}

		if word(m, direct) != word(m, stepped) {
			t.Fatalf("offset %d: set_position=%q stepped=%q", o, word(m, direct), word(m, stepped))
		}
	}
}

func TestAdvanceEnumeratesAllWordsOnce(t *testing.T) {
	m := buildMask(t, "ab", "xyz")
	buf := make([]int32, m.Width())
	m.SetPosition(0)
	m.Current(buf)
	seen := map[string]bool{word(m, buf): true}
	for i := uint64(1); i < m.Len(); i++ {
		m.Advance(buf)
		seen[word(m, buf)] = true
	}
	if len(seen) != int(m.Len()) {
		t.Fatalf("saw %d distinct words, want %d", len(seen), m.Len())
	}
}

func TestAdvanceOnlyTouchesTickedPositions(t *testing.T) {
	m := buildMask(t, "ab", "xyz")
	buf := make([]int32, m.Width())
	m.SetPosition(0)
	m.Current(buf)
	// xyz wheel (rightmost) ticks every step; ab wheel only every 3rd step.
	// Poison the leftmost slot so that any write to it is visible.
	const poison int32 = -1
	buf[0] = poison
	m.Advance(buf)
	if buf[0] != poison {
		t.Fatalf("leftmost wheel changed on a step that shouldn't have carried into it")
	}
}

func TestPushOverflowDetected(t *testing.T) {
	big, err := charset.New([]int32{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	m := New(64)
	// After 63 pushes the length is 2^63, which still fits; the 64th
	// push would make it 2^64, which doesn't.
	for i := 0; i < 63; i++ {
		if err := m.PushRight(big.Clone()); err != nil {
			t.Fatalf("unexpected overflow at charset %d: %v", i, err)
		}
	}
	if err := m.PushRight(big.Clone()); err == nil {
		t.Fatal("expected an overflow error pushing the 64th binary charset")
	}
}

func TestAddLenOverflow(t *testing.T) {
	if _, err := AddLen(math.MaxUint64, 1); err == nil {
		t.Fatal("expected an overflow error")
	}
	sum, err := AddLen(10, 20)
	if err != nil || sum != 30 {
		t.Fatalf("AddLen(10, 20) = %d, %v; want 30, nil", sum, err)
	}
}
