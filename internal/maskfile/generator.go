package maskfile

import (
	"os"

	"github.com/flbdx/maskuni/internal/charset"
	"github.com/flbdx/maskuni/internal/codepoint"
	"github.com/flbdx/maskuni/internal/mask"
	"github.com/flbdx/maskuni/internal/mgerr"
)

// Generator streams Masks from either a mask-list file or a single
// inline mask argument (spec C6). A file's content is read and decoded
// once at construction (a frozen snapshot, immune to concurrent
// modification); an inline argument is decoded once at construction and
// parsed as a single line with the mask-only grammar (no comma splitting,
// no per-line charsets).
type Generator struct {
	registry *charset.Registry
	specName string
	inline   bool
	lines    [][]int32
	idx      int
	err      error
}

// New builds a Generator for spec: if spec names an existing regular
// file, its lines are read and decoded now; otherwise spec itself is
// treated as a single inline mask.
func New(spec string, registry *charset.Registry, codec *codepoint.Codec) (*Generator, error) {
	g := &Generator{registry: registry, specName: spec}

	if fi, statErr := os.Stat(spec); statErr == nil && fi.Mode().IsRegular() {
		raw, err := os.ReadFile(spec)
		if err != nil {
			return nil, mgerr.Wrap(mgerr.IO, err, "can't read mask file '"+spec+"'")
		}
		rawLines := splitLines(raw)
		g.lines = make([][]int32, len(rawLines))
		for i, rl := range rawLines {
			cps, err := codec.DecodeText(rl)
			if err != nil {
				return nil, mgerr.WithLine(err, spec, i+1)
			}
			g.lines[i] = cps
		}
		return g, nil
	}

	cps, err := codec.DecodeText([]byte(spec))
	if err != nil {
		return nil, mgerr.WithLine(err, spec, 0)
	}
	g.inline = true
	g.lines = [][]int32{cps}
	return g, nil
}

// splitLines splits raw bytes on LF, stripping a trailing CR from each
// line, matching the CRLF/LF tolerance of spec §4.5.
func splitLines(raw []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\n' {
			end := i
			if end > start && raw[end-1] == '\r' {
				end--
			}
			lines = append(lines, raw[start:end])
			start = i + 1
		}
	}
	if start < len(raw) {
		lines = append(lines, raw[start:])
	}
	return lines
}

func (g *Generator) Next() (*mask.Mask, bool) {
	if g.err != nil {
		return nil, false
	}
	for g.idx < len(g.lines) {
		line := g.lines[g.idx]
		g.idx++

		if g.inline {
			m, err := ParseBody(line, g.registry)
			if err != nil {
				g.err = err
				return nil, false
			}
			return m, true
		}

		if IsCommentOrBlank(line) {
			continue
		}
		m, err := ParseLine(line, g.registry)
		if err != nil {
			g.err = mgerr.WithLine(err, g.specName, g.idx)
			return nil, false
		}
		return m, true
	}
	return nil, false
}

func (g *Generator) Reset() { g.idx = 0 }

func (g *Generator) Good() bool { return g.err == nil }

func (g *Generator) Err() error { return g.err }

var _ mask.Generator = (*Generator)(nil)
