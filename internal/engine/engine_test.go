package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/flbdx/maskuni/internal/charset"
	"github.com/flbdx/maskuni/internal/codepoint"
	"github.com/flbdx/maskuni/internal/maskfile"
)

func newGen(t *testing.T, spec string) *maskfile.Generator {
	t.Helper()
	codec := codepoint.New(codepoint.Byte)
	r := charset.NewRegistry(codepoint.Byte)
	g, err := maskfile.New(spec, r, codec)
	if err != nil {
		t.Fatalf("maskfile.New: %v", err)
	}
	return g
}

func emitAll(t *testing.T, spec string) []string {
	t.Helper()
	g := newGen(t, spec)
	total, _, err := Count(g)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	codec := codepoint.New(codepoint.Byte)
	var buf bytes.Buffer
	if err := Emit(g, 0, total, codec, []byte("\n"), &buf, nil); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestCountMatchesScenario(t *testing.T) {
	g := newGen(t, "?d?d?d?d?l?l")
	total, _, err := Count(g)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 6760000 {
		t.Fatalf("total = %d, want 6760000", total)
	}
}

func TestBeginEndProducesExactCount(t *testing.T) {
	g := newGen(t, "?d")
	total, _, err := Count(g)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	begin, end := uint64(5), uint64(7)
	start, endExcl, err := ResolveRange(total, nil, &begin, &end)
	if err != nil {
		t.Fatalf("ResolveRange: %v", err)
	}
	if endExcl-start != 3 {
		t.Fatalf("range length = %d, want 3", endExcl-start)
	}

	g.Reset()
	codec := codepoint.New(codepoint.Byte)
	var buf bytes.Buffer
	if err := Emit(g, start, endExcl, codec, []byte("\n"), &buf, nil); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	got := strings.TrimRight(buf.String(), "\n")
	if got != "5\n6\n7" {
		t.Fatalf("got %q, want %q", got, "5\n6\n7")
	}
}

func TestJobPartitionConcatenatesToWholeRun(t *testing.T) {
	spec := "?h?h"
	whole := emitAll(t, spec)

	var reassembled []string
	const n = uint64(5)
	for j := uint64(1); j <= n; j++ {
		g := newGen(t, spec)
		total, _, err := Count(g)
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		job := &JobSpec{J: j, N: n}
		start, endExcl, err := ResolveRange(total, job, nil, nil)
		if err != nil {
			t.Fatalf("ResolveRange: %v", err)
		}
		codec := codepoint.New(codepoint.Byte)
		var buf bytes.Buffer
		if err := Emit(g, start, endExcl, codec, []byte("\n"), &buf, nil); err != nil {
			t.Fatalf("Emit: %v", err)
		}
		trimmed := strings.TrimRight(buf.String(), "\n")
		if trimmed != "" {
			reassembled = append(reassembled, strings.Split(trimmed, "\n")...)
		}
	}

	if len(reassembled) != len(whole) {
		t.Fatalf("reassembled %d words, want %d", len(reassembled), len(whole))
	}
	for i := range whole {
		if whole[i] != reassembled[i] {
			t.Fatalf("word %d: whole=%q reassembled=%q", i, whole[i], reassembled[i])
		}
	}
}

func TestJobSpecScenario(t *testing.T) {
	cases := []struct {
		j, n       uint64
		wantFirst  uint64
		wantLastEx uint64
	}{
		{1, 5, 0, 2},
		{4, 5, 6, 8},
		{5, 5, 8, 10},
	}
	for _, c := range cases {
		g := newGen(t, "?d")
		total, _, err := Count(g)
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		start, endExcl, err := ResolveRange(total, &JobSpec{J: c.j, N: c.n}, nil, nil)
		if err != nil {
			t.Fatalf("ResolveRange(%d/%d): %v", c.j, c.n, err)
		}
		if start != c.wantFirst || endExcl != c.wantLastEx {
			t.Fatalf("job %d/%d: got [%d,%d), want [%d,%d)", c.j, c.n, start, endExcl, c.wantFirst, c.wantLastEx)
		}
	}
}

func TestResolveRangeRejectsOutOfBounds(t *testing.T) {
	begin, end := uint64(0), uint64(100)
	if _, _, err := ResolveRange(10, nil, &begin, &end); err == nil {
		t.Fatal("expected an error for an out-of-bounds end index")
	}
}

func TestResolveRangeRejectsBadJobSpec(t *testing.T) {
	if _, _, err := ResolveRange(10, &JobSpec{J: 0, N: 5}, nil, nil); err == nil {
		t.Fatal("expected an error for J=0")
	}
	if _, _, err := ResolveRange(10, &JobSpec{J: 6, N: 5}, nil, nil); err == nil {
		t.Fatal("expected an error for J>N")
	}
}
