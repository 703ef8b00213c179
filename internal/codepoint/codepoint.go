// Package codepoint implements the two alphabets the engine can run over:
// raw bytes, or decoded Unicode scalar values. Mode is chosen once per run
// and is uniform across every charset, mask and output byte.
package codepoint

import (
	"unicode/utf8"

	"github.com/flbdx/maskuni/internal/mgerr"
)

// Mode selects the alphabet in effect for a run.
type Mode int

const (
	Byte Mode = iota
	Unicode
)

// Status reports the outcome of a decode operation.
type Status int

const (
	OK Status = iota
	Invalid
	Truncated
	BadArgs
)

const maxRune = 0x10FFFF

// Codec converts between raw bytes and the run's codepoint alphabet.
//
// Byte mode is the identity mapping; Unicode mode rejects overlong
// encodings, surrogates, out-of-range scalar values and truncated
// sequences at end of input.
type Codec struct {
	mode Mode
}

func New(mode Mode) *Codec {
	return &Codec{mode: mode}
}

func (c *Codec) Mode() Mode { return c.mode }

// DecodeStream decodes as many codepoints as possible from b. It returns
// the decoded codepoints, the number of bytes consumed, and a status: OK
// if everything in b was consumed, Truncated if a valid-so-far multi-byte
// sequence was cut short at the end of b, or Invalid if malformed bytes
// were found before the end of the valid prefix.
func (c *Codec) DecodeStream(b []byte) (codepoints []int32, consumed int, status Status) {
	if c.mode == Byte {
		out := make([]int32, len(b))
		for i, v := range b {
			out[i] = int32(v)
		}
		return out, len(b), OK
	}

	var out []int32
	i := 0
	for i < len(b) {
		r, size, st := c.decodeOneUnicode(b[i:])
		if st == Truncated {
			return out, i, Truncated
		}
		if st == Invalid {
			return out, i, Invalid
		}
		out = append(out, r)
		i += size
	}
	return out, i, OK
}

// DecodeOne decodes a single codepoint from the front of b.
func (c *Codec) DecodeOne(b []byte) (r int32, consumed int, status Status) {
	if len(b) == 0 {
		return 0, 0, BadArgs
	}
	if c.mode == Byte {
		return int32(b[0]), 1, OK
	}
	return c.decodeOneUnicode(b)
}

func (c *Codec) decodeOneUnicode(b []byte) (r int32, size int, status Status) {
	if len(b) == 0 {
		return 0, 0, BadArgs
	}
	ru, size := utf8.DecodeRune(b)
	if ru == utf8.RuneError && size <= 1 {
		// utf8.DecodeRune reports size 0 only for an empty slice (handled
		// above); size 1 on error means either a genuinely invalid byte or
		// a truncated sequence at the end of the buffer.
		if utf8.RuneStart(b[0]) && !utf8.FullRune(b) {
			return 0, 0, Truncated
		}
		return 0, 0, Invalid
	}
	if ru > maxRune || (ru >= 0xD800 && ru <= 0xDFFF) {
		return 0, 0, Invalid
	}
	return ru, size, OK
}

// EncodeStream encodes codepoints back to bytes. In byte mode every value
// must fit in a byte; in unicode mode each value is re-encoded as UTF-8.
func (c *Codec) EncodeStream(codepoints []int32) []byte {
	if c.mode == Byte {
		out := make([]byte, len(codepoints))
		for i, r := range codepoints {
			out[i] = byte(r)
		}
		return out
	}

	buf := make([]byte, 0, len(codepoints)*2)
	var tmp [utf8.UTFMax]byte
	for _, r := range codepoints {
		n := utf8.EncodeRune(tmp[:], rune(r))
		buf = append(buf, tmp[:n]...)
	}
	return buf
}

// DecodeText decodes a full buffer, returning a mgerr.Decode error instead
// of a status when the buffer contains anything other than a clean, fully
// consumed decode. Used by callers (mask-file, bruteforce, charset-from-file)
// that need an all-or-nothing decode of one line or one file.
func (c *Codec) DecodeText(b []byte) ([]int32, error) {
	cps, consumed, status := c.DecodeStream(b)
	if status != OK || consumed != len(b) {
		return nil, mgerr.New(mgerr.Decode, "invalid UTF-8 sequence")
	}
	return cps, nil
}
