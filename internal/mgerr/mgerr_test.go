package mgerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesByKind(t *testing.T) {
	a := New(Overflow, "too big")
	b := New(Overflow, "also too big")
	if !errors.Is(a, b) {
		t.Fatal("errors with the same Kind should match via errors.Is")
	}
	c := New(Empty, "nothing here")
	if errors.Is(a, c) {
		t.Fatal("errors with different Kinds should not match")
	}
}

func TestWithLineAttachesLocation(t *testing.T) {
	e := New(Parse, "bad token")
	located := WithLine(e, "masks.txt", 3)
	if located.File != "masks.txt" || located.Line != 3 {
		t.Fatalf("WithLine didn't attach file/line: %+v", located)
	}
	if located.Kind != Parse {
		t.Fatalf("WithLine changed Kind: %v", located.Kind)
	}
}

func TestWithLineWrapsPlainError(t *testing.T) {
	plain := fmt.Errorf("something went wrong")
	located := WithLine(plain, "f.txt", 1)
	if located.Kind != Parse {
		t.Fatalf("plain error should be wrapped as Parse, got %v", located.Kind)
	}
}

func TestWrapUnwraps(t *testing.T) {
	under := fmt.Errorf("disk full")
	e := Wrap(IO, under, "can't write")
	if !errors.Is(e, under) {
		t.Fatal("Wrap should preserve Unwrap chain to the underlying error")
	}
}
