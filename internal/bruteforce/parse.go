// Package bruteforce implements C7: the bruteforce constraint-file parser
// and the lazy, restartable mask generator it drives.
package bruteforce

import (
	"os"

	"github.com/flbdx/maskuni/internal/charset"
	"github.com/flbdx/maskuni/internal/codepoint"
	"github.com/flbdx/maskuni/internal/mgerr"
)

// Constraint binds a resolved charset to how many times it may appear in
// a generated word.
type Constraint struct {
	Charset *charset.Charset
	Min     int
	Max     int
}

// ParseFile reads a bruteforce constraint file: a first non-empty line
// giving the word width, then one "MIN MAX CHARSET" line per constraint.
// No comments, no escapes; empty lines are skipped. Each charset is
// expanded through registry under the reserved anonymous name.
func ParseFile(path string, registry *charset.Registry, codec *codepoint.Codec) (width int, constraints []Constraint, err error) {
	raw, rerr := os.ReadFile(path)
	if rerr != nil {
		return 0, nil, mgerr.Wrap(mgerr.IO, rerr, "can't read bruteforce file '"+path+"'")
	}

	lines := splitLines(raw)
	gotWidth := false
	lineNo := 0

	for _, rl := range lines {
		lineNo++
		if len(rl) == 0 {
			continue
		}

		if !gotWidth {
			w, ok := parseUint(rl)
			if !ok || w == 0 {
				return 0, nil, mgerr.WithLine(mgerr.New(mgerr.Parse, "expected a positive word width"), path, lineNo)
			}
			width = int(w)
			gotWidth = true
			continue
		}

		min, max, rest, ok := parseConstraintLine(rl)
		if !ok {
			return 0, nil, mgerr.WithLine(mgerr.New(mgerr.Parse, "expected 'MIN MAX CHARSET'"), path, lineNo)
		}
		if len(rest) == 0 {
			return 0, nil, mgerr.WithLine(mgerr.New(mgerr.Empty, "the charset is empty"), path, lineNo)
		}

		body, derr := codec.DecodeText(rest)
		if derr != nil {
			return 0, nil, mgerr.WithLine(derr, path, lineNo)
		}

		registry.Push(charset.AnonymousName, body, false)
		if eerr := registry.Expand(charset.AnonymousName); eerr != nil {
			return 0, nil, mgerr.WithLine(eerr, path, lineNo)
		}
		cs, nerr := registry.Resolve(charset.AnonymousName)
		if nerr != nil {
			return 0, nil, mgerr.WithLine(nerr, path, lineNo)
		}

		if max > uint64(width) {
			max = uint64(width)
		}
		constraints = append(constraints, Constraint{Charset: cs, Min: int(min), Max: int(max)})
	}

	if !gotWidth || len(constraints) == 0 {
		return 0, nil, mgerr.New(mgerr.Parse, "expected at least a word width and a charset in '"+path+"'")
	}
	return width, constraints, nil
}

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

func isSpace(b byte) bool { return b == ' ' || b == '\t' }

func parseUint(b []byte) (uint64, bool) {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	start := i
	var v uint64
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		v = v*10 + uint64(b[i]-'0')
		i++
	}
	if i == start {
		return 0, false
	}
	return v, true
}

// parseConstraintLine reads "MIN MAX" as decimal integers separated by
// blanks, then returns the remainder of the line (after the separating
// blanks) as the charset text.
func parseConstraintLine(line []byte) (min, max uint64, rest []byte, ok bool) {
	i := 0
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	start := i
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == start {
		return 0, 0, nil, false
	}
	min, _ = parseUint(line[start:i])

	j := i
	for j < len(line) && isSpace(line[j]) {
		j++
	}
	start2 := j
	for j < len(line) && line[j] >= '0' && line[j] <= '9' {
		j++
	}
	if j == start2 {
		return 0, 0, nil, false
	}
	max, _ = parseUint(line[start2:j])

	k := j
	for k < len(line) && isSpace(line[k]) {
		k++
	}
	return min, max, line[k:], true
}
