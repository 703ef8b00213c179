package charset

import (
	"os"

	"github.com/flbdx/maskuni/internal/codepoint"
	"github.com/flbdx/maskuni/internal/mgerr"
)

// LoadBody turns a -1/-2/-3/-4/-c value into a charset body. If spec names
// an existing regular file, the file's raw bytes (trailing newline
// included — a documented caveat) become the body; otherwise spec itself
// is decoded directly. Mirrors the original tool's readCharsetAscii /
// readCharsetUtf8 file-or-literal dispatch.
func LoadBody(spec string, codec *codepoint.Codec) ([]int32, error) {
	raw := []byte(spec)
	if fi, err := os.Stat(spec); err == nil && fi.Mode().IsRegular() {
		b, err := os.ReadFile(spec)
		if err != nil {
			return nil, mgerr.Wrap(mgerr.IO, err, "can't read charset file '"+spec+"'")
		}
		raw = b
	}
	cps, err := codec.DecodeText(raw)
	if err != nil {
		return nil, mgerr.WithLine(err, spec, 0)
	}
	if len(cps) == 0 {
		return nil, mgerr.Newf(mgerr.Empty, "the charset '%s' is empty", spec)
	}
	return cps, nil
}
