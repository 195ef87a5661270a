package path

import (
	"strconv"
	"strings"
)

// Kind identifies what a Segment addresses.
type Kind int

const (
	KindField Kind = iota // name, or a.name
	KindIndex             // [n]
	KindKey               // (key)
)

// Segment is one step of a parsed path.
type Segment struct {
	Kind  Kind
	Name  string // field name or map key
	Index int
}

func (s Segment) String() string {
	switch s.Kind {
	case KindIndex:
		return "[" + strconv.Itoa(s.Index) + "]"
	case KindKey:
		return "(" + s.Name + ")"
	default:
		return s.Name
	}
}

// Path is a parsed property path such as "a.b[0].c(key)".
type Path struct {
	raw      string
	segments []Segment
}

// Parse turns a path string into its segments.
//
// Grammar: segment ('.' segment)*, where a segment is a field name followed by
// any number of [index] or (key) suffixes. Only the first segment may omit its
// name, so "[0].name" addresses a record that is itself a sequence.
func Parse(p string) (Path, error) {
	if p == "" {
		return Path{}, &ResolutionError{Path: p, Reason: "path is empty"}
	}

	var segs []Segment
	i := 0
	first := true
	for {
		start := i
		for i < len(p) && p[i] != '.' && p[i] != '[' && p[i] != '(' {
			if p[i] == ']' || p[i] == ')' {
				return Path{}, syntaxErr(p, i, "unexpected "+string(p[i]))
			}
			i++
		}
		name := strings.TrimSpace(p[start:i])
		switch {
		case name != "":
			segs = append(segs, Segment{Kind: KindField, Name: name})
		case !first || i >= len(p) || p[i] == '.':
			return Path{}, syntaxErr(p, start, "empty segment")
		}
		first = false

		for i < len(p) && (p[i] == '[' || p[i] == '(') {
			seg, next, err := parseSuffix(p, i)
			if err != nil {
				return Path{}, err
			}
			segs = append(segs, seg)
			i = next
		}

		if i >= len(p) {
			break
		}
		if p[i] != '.' {
			return Path{}, syntaxErr(p, i, "expected '.' after "+segs[len(segs)-1].String())
		}
		i++
		if i >= len(p) {
			return Path{}, syntaxErr(p, i, "trailing '.'")
		}
	}

	return Path{raw: p, segments: segs}, nil
}

// MustParse is like Parse but panics on error. Intended for constants in tests.
func MustParse(p string) Path {
	parsed, err := Parse(p)
	if err != nil {
		panic(err)
	}
	return parsed
}

func parseSuffix(p string, i int) (Segment, int, error) {
	closer := byte(']')
	if p[i] == '(' {
		closer = ')'
	}
	end := strings.IndexByte(p[i+1:], closer)
	if end < 0 {
		return Segment{}, 0, syntaxErr(p, i, "unterminated "+string(p[i]))
	}
	body := p[i+1 : i+1+end]
	next := i + 1 + end + 1

	if closer == ')' {
		if body == "" {
			return Segment{}, 0, syntaxErr(p, i, "empty key")
		}
		return Segment{Kind: KindKey, Name: body}, next, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(body))
	if err != nil {
		return Segment{}, 0, &ResolutionError{Path: p, Segment: "[" + body + "]", Reason: "index is not an integer", Err: err}
	}
	if n < 0 {
		return Segment{}, 0, &ResolutionError{Path: p, Segment: "[" + body + "]", Reason: "index is negative"}
	}
	return Segment{Kind: KindIndex, Index: n}, next, nil
}

func syntaxErr(p string, pos int, reason string) *ResolutionError {
	return &ResolutionError{Path: p, Reason: "syntax error at offset " + strconv.Itoa(pos) + ": " + reason}
}

// Segments returns a copy of the parsed segments.
func (p Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// String renders the path in canonical form.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p.segments {
		if s.Kind == KindField && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// prefix renders the segments up to and including index i, for error messages.
func (p Path) prefix(i int) string {
	return Path{segments: p.segments[:i+1]}.String()
}
