// Package engine implements C8: the range driver. It counts a
// mask-generator's total word count, resolves a --begin/--end or --job
// request against it, and streams the selected sub-range to a sink
// without materialising the whole enumeration.
package engine

import (
	"bufio"
	"io"

	"github.com/flbdx/maskuni/internal/codepoint"
	"github.com/flbdx/maskuni/internal/mask"
	"github.com/flbdx/maskuni/internal/mgerr"
)

const outputBufferSize = 8 * 1024

// JobSpec partitions the index space into N contiguous, equal-ish
// shares and selects the J-th one (1-based).
type JobSpec struct {
	J, N uint64
}

// Count iterates gen exactly once (from its current position — callers
// should Reset first if this isn't the generator's first use), summing
// each mask's length with overflow checking and tracking the widest
// mask seen. Returns gen.Err() if the generator aborted.
func Count(gen mask.Generator) (total uint64, maxWidth int, err error) {
	for {
		m, ok := gen.Next()
		if !ok {
			break
		}
		total, err = mask.AddLen(total, m.Len())
		if err != nil {
			return 0, 0, err
		}
		if w := m.Width(); w > maxWidth {
			maxWidth = w
		}
	}
	if !gen.Good() {
		return 0, 0, gen.Err()
	}
	return total, maxWidth, nil
}

// ResolveRange turns a job spec, or an explicit begin/end pair, into a
// half-open [start, endExcl) range over [0, total).
func ResolveRange(total uint64, job *JobSpec, begin, end *uint64) (start, endExcl uint64, err error) {
	if job != nil {
		if job.J < 1 || job.J > job.N {
			return 0, 0, mgerr.Newf(mgerr.BadArgs, "invalid job spec %d/%d: require 1 <= J <= N", job.J, job.N)
		}
		q := total / job.N
		r := total % job.N
		extra := job.J - 1
		if extra > r {
			extra = r
		}
		start = q*(job.J-1) + extra
		length := q
		if job.J <= r {
			length++
		}
		return start, start + length, nil
	}

	start = 0
	if begin != nil {
		start = *begin
	}
	endExcl = total
	if end != nil {
		endExcl = *end + 1
	}
	if start > endExcl || endExcl > total {
		return 0, 0, mgerr.Newf(mgerr.BadArgs, "requested range [%d, %d) is out of bounds for %d words", start, endExcl, total)
	}
	return start, endExcl, nil
}

// Emit streams words [start, endExcl) from gen (reset internally) to out,
// UTF-8/byte-encoded by codec, each followed by delim. onWord, if not
// nil, is called after every word is written with the running count —
// used to drive a progress indicator.
func Emit(gen mask.Generator, start, endExcl uint64, codec *codepoint.Codec, delim []byte, out io.Writer, onWord func(done uint64)) error {
	todo := endExcl - start
	if todo == 0 {
		return nil
	}

	gen.Reset()

	skip := start
	var m *mask.Mask
	for {
		candidate, ok := gen.Next()
		if !ok {
			if !gen.Good() {
				return gen.Err()
			}
			return mgerr.New(mgerr.IO, "mask generator exhausted before the requested range was fully emitted")
		}
		if candidate.Len() <= skip {
			skip -= candidate.Len()
			continue
		}
		m = candidate
		break
	}

	buf := make([]int32, m.Width())
	m.SetPosition(skip)
	m.Current(buf)
	remainingInMask := m.Len() - skip

	w := bufio.NewWriterSize(out, outputBufferSize)
	var produced uint64
	for {
		if err := writeWord(w, codec, buf, delim); err != nil {
			return err
		}
		produced++
		if onWord != nil {
			onWord(produced)
		}
		if produced == todo {
			break
		}

		remainingInMask--
		if remainingInMask == 0 {
			next, ok := gen.Next()
			if !ok {
				if !gen.Good() {
					return gen.Err()
				}
				return mgerr.New(mgerr.IO, "mask generator exhausted before the requested range was fully emitted")
			}
			m = next
			buf = make([]int32, m.Width())
			m.SetPosition(0)
			m.Current(buf)
			remainingInMask = m.Len()
		} else {
			m.Advance(buf)
		}
	}

	if err := w.Flush(); err != nil {
		return mgerr.Wrap(mgerr.IO, err, "error while writing the output data")
	}
	return nil
}

func writeWord(w *bufio.Writer, codec *codepoint.Codec, buf []int32, delim []byte) error {
	if _, err := w.Write(codec.EncodeStream(buf)); err != nil {
		return mgerr.Wrap(mgerr.IO, err, "error while writing the output data")
	}
	if len(delim) > 0 {
		if _, err := w.Write(delim); err != nil {
			return mgerr.Wrap(mgerr.IO, err, "error while writing the output data")
		}
	}
	return nil
}
