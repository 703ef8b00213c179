// Package maskfile implements C5 (one mask-file line to one Mask) and C6
// (streaming masks from a mask-list file or a single inline mask).
package maskfile

import (
	"github.com/flbdx/maskuni/internal/charset"
	"github.com/flbdx/maskuni/internal/mask"
	"github.com/flbdx/maskuni/internal/mgerr"
)

const (
	escapeChar    int32 = '?'
	lineEscape    int32 = '\\'
	separator     int32 = ','
	commentMarker int32 = '#'
)

// tokenize splits a mask-file line on unescaped commas. \, is a literal
// comma, \\ is a literal backslash; any other character following a
// backslash is left untouched (the backslash is dropped as an escape that
// didn't apply to anything).
func tokenize(line []int32) [][]int32 {
	tokens := [][]int32{{}}
	last := 0
	for i := 0; i < len(line); {
		c := line[i]
		if c == lineEscape && i+1 < len(line) {
			switch line[i+1] {
			case separator:
				tokens[last] = append(tokens[last], separator)
			case lineEscape:
				tokens[last] = append(tokens[last], lineEscape)
			default:
				tokens[last] = append(tokens[last], line[i+1])
			}
			i += 2
		} else if c == separator {
			tokens = append(tokens, nil)
			last++
			i++
		} else {
			tokens[last] = append(tokens[last], c)
			i++
		}
	}
	return tokens
}

// ParseBody parses a mask body (no comma splitting, no ephemeral
// charsets): outside ?-escapes each codepoint is a one-element literal
// Charset; ?K resolves charset K by reference; ?? is a literal '?'; a
// trailing unescaped '?' is a literal '?'.
func ParseBody(body []int32, registry *charset.Registry) (*mask.Mask, error) {
	m := mask.New(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c == escapeChar && i+1 < len(body) {
			key := body[i+1]
			var cs *charset.Charset
			var err error
			if key == escapeChar {
				cs, err = charset.New([]int32{escapeChar})
			} else {
				cs, err = registry.Resolve(key)
			}
			if err != nil {
				return nil, err
			}
			if err := m.PushRight(cs); err != nil {
				return nil, err
			}
			i += 2
		} else {
			cs, err := charset.New([]int32{c})
			if err != nil {
				return nil, err
			}
			if err := m.PushRight(cs); err != nil {
				return nil, err
			}
			i++
		}
	}
	if m.Width() == 0 {
		return nil, mgerr.New(mgerr.Empty, "the mask is empty")
	}
	return m, nil
}

// ParseLine parses one mask-file line (spec §4.5): up to 9 leading
// tokens, split on unescaped commas, define ephemeral charsets '1'..'9'
// in a per-line scope; the last token is the mask body.
func ParseLine(line []int32, registry *charset.Registry) (*mask.Mask, error) {
	tokens := tokenize(line)
	if len(tokens) > 10 {
		return nil, mgerr.New(mgerr.Parse, "too many custom charsets defined (max: 9)")
	}

	scoped := registry.Clone()
	for n := 0; n+1 < len(tokens); n++ {
		if len(tokens[n]) == 0 {
			return nil, mgerr.New(mgerr.Parse, "empty custom charset")
		}
		name := int32('1' + n)
		scoped.Push(name, tokens[n], false)
	}
	for n := 0; n+1 < len(tokens); n++ {
		name := int32('1' + n)
		if err := scoped.Expand(name); err != nil {
			return nil, err
		}
	}

	return ParseBody(tokens[len(tokens)-1], scoped)
}

// IsCommentOrBlank reports whether a decoded mask-file line should be
// skipped: empty, or starting with '#'.
func IsCommentOrBlank(line []int32) bool {
	return len(line) == 0 || line[0] == commentMarker
}
