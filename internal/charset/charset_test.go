package charset

import "testing"

func TestNewDedups(t *testing.T) {
	cs, err := New([]int32{'a', 'b', 'a', 'c', 'b'})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cs.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", cs.Len())
	}
	if got := string(cs.Codepoints()); got != "abc" {
		t.Fatalf("Codepoints() = %q, want %q", got, "abc")
	}
}

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected an error for an empty charset")
	}
}

func TestSetPositionMatchesCurrent(t *testing.T) {
	cs, _ := New([]int32{'x', 'y', 'z'})
	for o := uint64(0); o < 9; o++ {
		cs.SetPosition(o)
		want := []int32{'x', 'y', 'z'}[o%3]
		if got := cs.Current(); got != want {
			t.Fatalf("SetPosition(%d); Current() = %q, want %q", o, got, want)
		}
	}
}

func TestAdvanceWraps(t *testing.T) {
	cs, _ := New([]int32{'x', 'y', 'z'})
	cs.SetPosition(0)
	var wrapped bool
	var cur int32
	for i := 0; i < 3; i++ {
		cur, wrapped = cs.Advance()
	}
	if cur != 'x' || !wrapped {
		t.Fatalf("after 3 advances: cur=%q wrapped=%v, want 'x' true", cur, wrapped)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cs, _ := New([]int32{'a', 'b'})
	cs.SetPosition(1)
	cp := cs.Clone()
	cp.Advance()
	if cs.Current() != 'b' {
		t.Fatalf("original charset's cursor moved after cloning")
	}
}
