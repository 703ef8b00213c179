// Command maskuni enumerates words from a character-class mask, a
// mask-list file, or a bruteforce constraint file, optionally streaming
// only a sub-range of the full enumeration (see internal/engine).
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/schollz/progressbar/v3"

	"github.com/flbdx/maskuni/internal/bruteforce"
	"github.com/flbdx/maskuni/internal/charset"
	"github.com/flbdx/maskuni/internal/codepoint"
	"github.com/flbdx/maskuni/internal/engine"
	"github.com/flbdx/maskuni/internal/mask"
	"github.com/flbdx/maskuni/internal/maskfile"
	"github.com/flbdx/maskuni/internal/mgerr"
)

const version = "1.0.0"

// progressThreshold is the smallest emitted range worth paying for a
// progress bar over; small ranges finish before the bar would ever draw.
const progressThreshold = 200_000

// rawMultiFlag collects repeated -c K:VAL occurrences verbatim; the key
// is split out later, once the final unicode/byte mode is known.
type rawMultiFlag []string

func (f *rawMultiFlag) String() string { return strings.Join(*f, ",") }

func (f *rawMultiFlag) Set(s string) error {
	*f = append(*f, s)
	return nil
}

func main() {
	var (
		maskModeFlag   bool
		bruteModeFlag  bool
		unicodeFlag    bool
		jobStr         string
		beginStr       string
		endStr         string
		outputName     string
		nulDelim       bool
		noDelim        bool
		sizeOnly       bool
		c1, c2, c3, c4 string
		customs        rawMultiFlag
		showVersion    bool
	)

	flag.BoolVar(&maskModeFlag, "mask", false, "mask mode: <arg> is a single mask or a mask-list file (default)")
	flag.BoolVar(&maskModeFlag, "m", false, "shorthand for --mask")
	flag.BoolVar(&bruteModeFlag, "bruteforce", false, "bruteforce mode: <arg> is a bruteforce constraint file")
	flag.BoolVar(&bruteModeFlag, "B", false, "shorthand for --bruteforce")
	flag.BoolVar(&unicodeFlag, "unicode", false, "decode the mask/charset arguments as UTF-8 instead of raw bytes (disables ?b)")
	flag.BoolVar(&unicodeFlag, "u", false, "shorthand for --unicode")
	flag.StringVar(&jobStr, "j", "", "job partitioning J/N: emit only the J-th of N contiguous shares (1 <= J <= N)")
	flag.StringVar(&beginStr, "b", "", "first word index to emit, inclusive, 0-based")
	flag.StringVar(&endStr, "e", "", "last word index to emit, inclusive, 0-based")
	flag.StringVar(&outputName, "o", "", "write words to FILE instead of stdout")
	flag.BoolVar(&nulDelim, "z", false, "delimit words with NUL instead of newline")
	flag.BoolVar(&noDelim, "n", false, "do not delimit words at all")
	flag.BoolVar(&sizeOnly, "s", false, "print the size of the selected range and exit, without generating anything")
	flag.StringVar(&c1, "1", "", "bind custom charset '1' (inline text, or a path to a file to read)")
	flag.StringVar(&c2, "2", "", "bind custom charset '2'")
	flag.StringVar(&c3, "3", "", "bind custom charset '3'")
	flag.StringVar(&c4, "4", "", "bind custom charset '4'")
	flag.Var(&customs, "c", "bind a custom charset 'K:VAL', may be repeated")
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage:\n  %s [--mask] [options] <mask-or-maskfile>\n  %s --bruteforce [options] <brutefile>\n\noptions:\n", os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("maskuni %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 1 {
		pterm.Error.WithWriter(os.Stderr).Println("expected exactly one mask / mask-file / bruteforce-file argument")
		flag.Usage()
		os.Exit(1)
	}
	target := args[0]

	if maskModeFlag && bruteModeFlag {
		fatal(mgerr.New(mgerr.BadArgs, "--mask and --bruteforce are mutually exclusive"))
	}

	mode := codepoint.Byte
	if unicodeFlag {
		mode = codepoint.Unicode
	}
	codec := codepoint.New(mode)
	registry := charset.NewRegistry(mode)

	bindCustom := func(name int32, val string) {
		if val == "" {
			return
		}
		body, err := charset.LoadBody(val, codec)
		if err != nil {
			fatal(err)
		}
		registry.Push(name, body, false)
		if err := registry.Expand(name); err != nil {
			fatal(err)
		}
	}
	bindCustom('1', c1)
	bindCustom('2', c2)
	bindCustom('3', c3)
	bindCustom('4', c4)
	for _, raw := range customs {
		key, val, err := splitCustomBinding(raw, codec)
		if err != nil {
			fatal(err)
		}
		bindCustom(key, val)
	}

	pterm.Info.WithWriter(os.Stderr).Printf("maskuni %s — enumerating against %q\n", version, target)

	var gen mask.Generator
	if bruteModeFlag {
		width, constraints, err := bruteforce.ParseFile(target, registry, codec)
		if err != nil {
			fatal(err)
		}
		gen = bruteforce.New(width, constraints)
	} else {
		g, err := maskfile.New(target, registry, codec)
		if err != nil {
			fatal(err)
		}
		gen = g
	}

	total, maxWidth, err := engine.Count(gen)
	if err != nil {
		fatal(err)
	}

	var job *engine.JobSpec
	if jobStr != "" {
		j, n, jerr := parseJobSpec(jobStr)
		if jerr != nil {
			fatal(jerr)
		}
		job = &engine.JobSpec{J: j, N: n}
	}
	var beginPtr, endPtr *uint64
	if beginStr != "" {
		b, berr := parseUintArg(beginStr)
		if berr != nil {
			fatal(berr)
		}
		beginPtr = &b
	}
	if endStr != "" {
		e, eerr := parseUintArg(endStr)
		if eerr != nil {
			fatal(eerr)
		}
		endPtr = &e
	}

	start, endExcl, err := engine.ResolveRange(total, job, beginPtr, endPtr)
	if err != nil {
		fatal(err)
	}

	if sizeOnly {
		fmt.Println(endExcl - start)
		return
	}

	var delim []byte
	switch {
	case noDelim:
		delim = nil
	case nulDelim:
		delim = []byte{0}
	default:
		delim = []byte{'\n'}
	}

	var out io.Writer = os.Stdout
	var outFile *os.File
	if outputName != "" {
		f, ferr := os.Create(outputName)
		if ferr != nil {
			fatal(mgerr.Wrap(mgerr.IO, ferr, "can't create output file '"+outputName+"'"))
		}
		outFile = f
		out = f
	}
	defer func() {
		if outFile != nil {
			outFile.Close()
		}
	}()

	rangeLen := endExcl - start
	var bar *progressbar.ProgressBar
	if outFile != nil && rangeLen > progressThreshold {
		bar = progressbar.NewOptions64(int64(rangeLen),
			progressbar.OptionSetDescription("Generating"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetWriter(os.Stderr),
		)
	}
	onWord := func(done uint64) {
		if bar != nil && done%2000 == 0 {
			bar.Set64(int64(done))
		}
	}

	if err := engine.Emit(gen, start, endExcl, codec, delim, out, onWord); err != nil {
		fatal(err)
	}
	if bar != nil {
		bar.Finish()
	}

	pterm.Success.WithWriter(os.Stderr).Printf("wrote %d word(s), max width %d\n", rangeLen, maxWidth)
}

func parseJobSpec(s string) (j, n uint64, err error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, mgerr.Newf(mgerr.BadArgs, "invalid job spec %q: expected 'J/N'", s)
	}
	j, jerr := strconv.ParseUint(parts[0], 10, 64)
	n, nerr := strconv.ParseUint(parts[1], 10, 64)
	if jerr != nil || nerr != nil || j == 0 || n == 0 {
		return 0, 0, mgerr.Newf(mgerr.BadArgs, "invalid job spec %q: J and N must be positive integers", s)
	}
	return j, n, nil
}

func parseUintArg(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, mgerr.Newf(mgerr.BadArgs, "invalid index %q", s)
	}
	return v, nil
}

// splitCustomBinding splits a "-c K:VAL" argument into its key codepoint
// and value. In unicode mode K is the first UTF-8 codepoint of the
// argument and must be followed by an ASCII ':'; in byte mode K is the
// first raw byte.
func splitCustomBinding(raw string, codec *codepoint.Codec) (int32, string, error) {
	if codec.Mode() == codepoint.Unicode {
		r, size, status := codec.DecodeOne([]byte(raw))
		if status != codepoint.OK {
			return 0, "", mgerr.Newf(mgerr.BadArgs, "invalid -c binding %q: bad UTF-8 key", raw)
		}
		if size >= len(raw) || raw[size] != ':' {
			return 0, "", mgerr.Newf(mgerr.BadArgs, "invalid -c binding %q: expected 'K:VAL'", raw)
		}
		return r, raw[size+1:], nil
	}
	if len(raw) < 2 || raw[1] != ':' {
		return 0, "", mgerr.Newf(mgerr.BadArgs, "invalid -c binding %q: expected 'K:VAL'", raw)
	}
	return int32(raw[0]), raw[2:], nil
}

func fatal(err error) {
	log.SetFlags(0)
	log.Fatalf("maskuni: %v", err)
}
