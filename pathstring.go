package deepaccess

import (
	"strconv"
	"strings"
	"sync"
)

// Path string grammar, for callers that hold paths as strings (the CLI and
// the document helpers):
//
//	path:    part [ '.' part ]*
//	part:    name index* | name '()' | name '()=' | index+
//	name:    any characters; '\.' and '\[' escape the delimiters
//	index:   '[' integer ']'
//
// A bare name becomes a Key segment whose kind is inferred at walk time, so
// "foo.2" indexes a sequence or looks up mapping key "2" depending on the
// data. "[2]" forces a sequence index, "m()" a method call and "m()=" an
// lvalue method call. Malformed syntax is ErrConfiguration.

// pathCache holds compiled paths keyed by the raw string. Segments are
// immutable, so cached slices are shared between callers.
var pathCache sync.Map // map[string][]Segment

// ParsePath compiles a path string into segments. Compiled paths are cached
// by their raw string.
func ParsePath(s string) ([]Segment, error) {
	if v, ok := pathCache.Load(s); ok {
		return v.([]Segment), nil
	}
	segs, err := compilePath(s)
	if err != nil {
		return nil, err
	}
	pathCache.Store(s, segs)
	return segs, nil
}

// MustParsePath is ParsePath for statically known paths; it panics on
// malformed syntax.
func MustParsePath(s string) []Segment {
	segs, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return segs
}

func compilePath(s string) ([]Segment, error) {
	if s == "" {
		return nil, configErrorf("empty path string")
	}
	var segs []Segment
	for _, part := range splitPath(s) {
		parsed, err := compilePart(part)
		if err != nil {
			return nil, err
		}
		segs = append(segs, parsed...)
	}
	return segs, nil
}

// splitPath splits on unescaped dots. Escape sequences are left intact for
// compilePart, which owns unescaping.
func splitPath(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '.':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// compilePart decodes one dot-part into its segments: a leading name (bare
// key or method form) followed by any number of [n] index suffixes. The
// name portion unescapes '\.', '\[' and '\\'.
func compilePart(part string) ([]Segment, error) {
	if part == "" {
		return nil, configErrorf("empty path segment")
	}

	var nameBuilder strings.Builder
	rest := ""
	for i := 0; i < len(part); i++ {
		c := part[i]
		if c == '\\' && i+1 < len(part) {
			nameBuilder.WriteByte(part[i+1])
			i++
			continue
		}
		if c == '[' {
			rest = part[i:]
			break
		}
		nameBuilder.WriteByte(c)
	}
	name := nameBuilder.String()

	var segs []Segment
	switch {
	case name == "":
		// Part starts with an index, e.g. "[2]".
	case strings.HasSuffix(name, "()="):
		if rest != "" {
			return nil, configErrorf("index suffix not allowed after method call in %q", part)
		}
		return []Segment{LvalueMethod(strings.TrimSuffix(name, "()="))}, nil
	case strings.HasSuffix(name, "()"):
		if rest != "" {
			return nil, configErrorf("index suffix not allowed after method call in %q", part)
		}
		return []Segment{Method(strings.TrimSuffix(name, "()"))}, nil
	default:
		segs = append(segs, Key(name))
	}

	for rest != "" {
		if rest[0] != '[' {
			return nil, configErrorf("malformed index suffix in path segment %q", part)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, configErrorf("unterminated index in path segment %q", part)
		}
		i, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return nil, configErrorf("index %q in path segment %q is not an integer", rest[1:end], part)
		}
		segs = append(segs, Index(i))
		rest = rest[end+1:]
	}
	return segs, nil
}

// pathArgs widens compiled segments for the variadic public operations.
func pathArgs(segs []Segment) []any {
	args := make([]any, len(segs))
	for i, seg := range segs {
		args[i] = seg
	}
	return args
}
