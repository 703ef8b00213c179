package charset

import (
	"container/list"

	"github.com/flbdx/maskuni/internal/codepoint"
	"github.com/flbdx/maskuni/internal/mgerr"
)

// EscapeChar is the charset/mask-body reference escape, '?'.
const EscapeChar int32 = '?'

// AnonymousName is a sentinel charset name reserved for bruteforce
// constraint charsets, which are never user-addressable. It can't collide
// with any name a user supplies on the command line or in a mask file,
// because neither accepts NUL.
const AnonymousName int32 = 0

type definition struct {
	body  []int32
	final bool
}

// Registry is a multi-map from charset name to its definitions in
// insertion order; the last element of a name's slice is its visible
// (most recent) definition. Named after spec C3.
type Registry struct {
	mode codepoint.Mode
	defs map[int32][]*definition
}

// NewRegistry builds a registry preloaded with the built-in charsets for
// mode. ?b (the 256-byte identity) is only defined in byte mode.
func NewRegistry(mode codepoint.Mode) *Registry {
	r := &Registry{mode: mode, defs: make(map[int32][]*definition)}
	r.pushFinal('l', asciiRange('a', 'z'))
	r.pushFinal('u', asciiRange('A', 'Z'))
	r.pushFinal('d', asciiRange('0', '9'))
	r.pushFinal('s', stringBody(` !"#$%&'()*+,-./:;<=>?@[\]^_`+"`"+`{|}~`))
	r.pushFinal('h', append(asciiRange('0', '9'), asciiRange('a', 'f')...))
	r.pushFinal('H', append(asciiRange('0', '9'), asciiRange('A', 'F')...))
	r.pushFinal('n', stringBody("\n"))
	r.pushFinal('r', stringBody("\r"))
	if mode == codepoint.Byte {
		r.pushFinal('b', byteRange())
	}
	// ?a = ?l?u?d?s, expanded lazily on first reference.
	r.Push('a', stringBody("?l?u?d?s"), false)
	return r
}

func asciiRange(lo, hi byte) []int32 {
	out := make([]int32, 0, int(hi-lo)+1)
	for c := lo; c <= hi; c++ {
		out = append(out, int32(c))
	}
	return out
}

func byteRange() []int32 {
	out := make([]int32, 256)
	for i := range out {
		out[i] = int32(i)
	}
	return out
}

func stringBody(s string) []int32 {
	out := make([]int32, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int32(s[i])
	}
	return out
}

func (r *Registry) pushFinal(name int32, body []int32) {
	r.defs[name] = append(r.defs[name], &definition{body: body, final: true})
}

// Push registers a new definition of name, appended after any existing
// ones (it becomes the new "most recent" / visible definition).
func (r *Registry) Push(name int32, body []int32, final bool) {
	r.defs[name] = append(r.defs[name], &definition{body: body, final: final})
}

// Defined reports whether name has at least one definition.
func (r *Registry) Defined(name int32) bool {
	return len(r.defs[name]) > 0
}

// Clone returns a registry that shares this one's definitions but can
// have its own names pushed/shadowed without affecting the original —
// used to give each mask-file line its own scope for ephemeral charsets
// (spec §4.5).
func (r *Registry) Clone() *Registry {
	cp := &Registry{mode: r.mode, defs: make(map[int32][]*definition, len(r.defs))}
	for k, v := range r.defs {
		cp.defs[k] = append([]*definition(nil), v...)
	}
	return cp
}

// Expand resolves every ?-reference in name's most recent definition,
// substituting prior definitions of referenced names on the path to a
// self-reference, per spec §4.3. It is a no-op if the definition is
// already final. The result is deduplicated and marked final.
func (r *Registry) Expand(name int32) error {
	defs := r.defs[name]
	if len(defs) == 0 {
		return mgerr.Newf(mgerr.Parse, "charset '?%c' is not defined", name)
	}
	last := defs[len(defs)-1]
	if last.final {
		return nil
	}

	l := list.New()
	for _, c := range last.body {
		l.PushBack(c)
	}

	type pending struct {
		start   *list.Element
		length  int
		history []int32
	}
	queue := []pending{{start: l.Front(), length: l.Len(), history: []int32{name}}}

	for len(queue) > 0 {
		cur := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		nChars := 0
		e := cur.start
		for nChars != cur.length {
			c := e.Value.(int32)
			if c != EscapeChar {
				e = e.Next()
				nChars++
				continue
			}
			if nChars+1 == cur.length {
				// trailing, unescaped '?' at the end of this sub-range: literal.
				e = e.Next()
				nChars++
				continue
			}
			next := e.Next()
			key := next.Value.(int32)
			if key == EscapeChar {
				l.Remove(e)
				nChars += 2
				e = next.Next()
				continue
			}

			keyDefs := r.defs[key]
			nReplAvail := len(keyDefs)
			if nReplAvail == 0 {
				return mgerr.Newf(mgerr.Parse, "charset '?%c' is not defined", key)
			}
			nReplaced := countOccurrences(cur.history, key)
			if nReplaced >= nReplAvail {
				return mgerr.Newf(mgerr.Parse, "charset '?%c' has no more prior definitions to expand into", key)
			}
			srcDef := keyDefs[nReplAvail-1-nReplaced]
			afterKey := next.Next()
			l.Remove(e)
			l.Remove(next)

			var firstInserted *list.Element
			for _, v := range srcDef.body {
				var ins *list.Element
				if afterKey != nil {
					ins = l.InsertBefore(v, afterKey)
				} else {
					ins = l.PushBack(v)
				}
				if firstInserted == nil {
					firstInserted = ins
				}
			}
			if !srcDef.final {
				history := append(append([]int32{}, cur.history...), key)
				queue = append(queue, pending{start: firstInserted, length: len(srcDef.body), history: history})
			}
			nChars += 2
			e = afterKey
		}
	}

	var result []int32
	seen := make(map[int32]struct{}, l.Len())
	for e := l.Front(); e != nil; e = e.Next() {
		v := e.Value.(int32)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	if len(result) == 0 {
		return mgerr.Newf(mgerr.Empty, "charset '?%c' expands to the empty set", name)
	}
	last.body = result
	last.final = true
	return nil
}

func countOccurrences(history []int32, key int32) int {
	n := 0
	for _, h := range history {
		if h == key {
			n++
		}
	}
	return n
}

// Resolve expands (if needed) and returns a fresh Charset built from
// name's most recent definition.
func (r *Registry) Resolve(name int32) (*Charset, error) {
	if !r.Defined(name) {
		return nil, mgerr.Newf(mgerr.Parse, "charset '?%c' is not defined", name)
	}
	if err := r.Expand(name); err != nil {
		return nil, err
	}
	body := r.defs[name][len(r.defs[name])-1].body
	return New(body)
}
