package tree

import (
	"strconv"
	"strings"
)

// AppendMarker is the path token addressing one past the last element of a
// sequence. It is only valid as the final token of a pointer.
const AppendMarker = "-"

// Token is one step of a Pointer. The same token can act as a mapping key or
// a sequence index; which reading applies is decided by the container it is
// resolved against, as in RFC 6901.
type Token struct {
	key     string
	index   int
	numeric bool
}

// KeyToken builds a token from a raw segment. Segments consisting of base-10
// digits without a superfluous leading zero double as sequence indices.
func KeyToken(s string) Token {
	t := Token{key: s, index: -1}
	if s != "" && (s == "0" || s[0] != '0') {
		if i, err := strconv.Atoi(s); err == nil && i >= 0 {
			t.index = i
			t.numeric = true
		}
	}
	return t
}

// IndexToken builds a token addressing sequence index i.
func IndexToken(i int) Token {
	return Token{key: strconv.Itoa(i), index: i, numeric: true}
}

// AppendToken builds the append-to-end token.
func AppendToken() Token {
	return Token{key: AppendMarker, index: -1}
}

// Key returns the token's literal mapping-key reading.
func (t Token) Key() string { return t.key }

// Index returns the token's sequence-index reading, if it has one.
func (t Token) Index() (int, bool) { return t.index, t.numeric }

// IsAppend reports whether the token is the append marker.
func (t Token) IsAppend() bool { return t.key == AppendMarker }

// Pointer addresses a node within a tree. The empty pointer addresses the
// root. On the wire it renders as a slash-joined JSON Pointer.
type Pointer []Token

// ParsePointer parses a JSON Pointer string. "" is the root; every other
// pointer must begin with '/'. ~1 and ~0 unescape to '/' and '~'.
func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if !strings.HasPrefix(s, "/") {
		return nil, &PathError{Kind: InvalidPath, Path: s, Reason: "pointer must start with '/'"}
	}
	segs := strings.Split(s[1:], "/")
	p := make(Pointer, 0, len(segs))
	for _, seg := range segs {
		p = append(p, KeyToken(unescapeToken(seg)))
	}
	return p, nil
}

// String renders the pointer in JSON Pointer syntax.
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, t := range p {
		sb.WriteByte('/')
		sb.WriteString(escapeToken(t.key))
	}
	return sb.String()
}

// IsRoot reports whether the pointer addresses the tree root.
func (p Pointer) IsRoot() bool { return len(p) == 0 }

// Child returns a new pointer extending p by one token. The result shares no
// backing array with p, so sibling pointers built during a diff walk cannot
// clobber each other.
func (p Pointer) Child(t Token) Pointer {
	out := make(Pointer, len(p)+1)
	copy(out, p)
	out[len(p)] = t
	return out
}

func unescapeToken(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

func escapeToken(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
