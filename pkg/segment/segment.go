package segment

import (
	"strings"
)

// Kind is the type of a path token.
type Kind uint8

const (
	// Static is a literal run of characters.
	Static Kind = iota
	// Dynamic is a required parameter: [name].
	Dynamic
	// Optional is an optional parameter: [[name]].
	Optional
	// Catchall matches the rest of the path: [...name].
	Catchall
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case Optional:
		return "optional"
	case Catchall:
		return "catchall"
	default:
		return "unknown"
	}
}

// Token is a single piece of a parsed path segment.
type Token struct {
	Kind  Kind
	Value string
}

type state uint8

const (
	stateInitial state = iota
	stateStatic
	stateDynamic
	stateOptional
	stateCatchall
)

func (s state) kind() Kind {
	switch s {
	case stateDynamic:
		return Dynamic
	case stateOptional:
		return Optional
	case stateCatchall:
		return Catchall
	default:
		return Static
	}
}

func (s state) inParam() bool {
	return s == stateDynamic || s == stateOptional || s == stateCatchall
}

// Parse splits one slash-free path segment into tokens.
//
// Characters inside brackets other than letters, digits, underscore and dot
// are dropped without error.
func Parse(segment string) ([]Token, error) {
	var (
		tokens []Token
		buf    []byte
		st     = stateInitial
	)

	flush := func() {
		if len(buf) == 0 {
			return
		}
		tokens = append(tokens, Token{Kind: st.kind(), Value: string(buf)})
		buf = buf[:0]
	}

	for i := 0; i < len(segment); i++ {
		c := segment[i]

		if st == stateInitial {
			buf = buf[:0]
			if c == '[' {
				st = stateDynamic
				continue
			}
			st = stateStatic
		}

		switch st {
		case stateStatic:
			if c == '[' {
				flush()
				st = stateDynamic
				continue
			}
			buf = append(buf, c)

		case stateDynamic, stateOptional, stateCatchall:
			if string(buf) == "..." {
				buf = buf[:0]
				st = stateCatchall
			}
			if c == '[' && st == stateDynamic {
				st = stateOptional
				continue
			}
			// The first ']' of an optional param is swallowed; the second one closes it.
			if c == ']' && (st != stateOptional || segment[i-1] == ']') {
				if len(buf) == 0 {
					return nil, &ParseError{Segment: segment, Offset: i, Err: ErrEmptyParam}
				}
				flush()
				st = stateInitial
				continue
			}
			if isParamChar(c) {
				buf = append(buf, c)
			}
		}
	}

	if st.inParam() {
		return nil, &ParseError{Segment: segment, Offset: len(segment), Param: string(buf), Err: ErrUnfinishedParam}
	}

	flush()

	return tokens, nil
}

// Render converts tokens into a router path pattern with a leading slash.
//
//	[]Token{{Dynamic, "id"}}      -> "/:id()"
//	[]Token{{Optional, "id"}}     -> "/:id?"
//	[]Token{{Catchall, "slug"}}   -> "/:slug(.*)*"
//	[]Token{{Static, "a:b"}}      -> "/a\:b"
func Render(tokens []Token) string {
	var b strings.Builder
	b.WriteByte('/')

	for _, t := range tokens {
		switch t.Kind {
		case Dynamic:
			b.WriteString(":" + t.Value + "()")
		case Optional:
			b.WriteString(":" + t.Value + "?")
		case Catchall:
			b.WriteString(":" + t.Value + "(.*)*")
		default:
			b.WriteString(strings.ReplaceAll(t.Value, ":", `\:`))
		}
	}

	return b.String()
}

// ParsePath converts a slash-delimited path written in bracket grammar
// into a router path pattern. Relative input stays relative.
//
//	"/blog/[slug]"        -> "/blog/:slug()"
//	"docs/[[page]]"       -> "docs/:page?"
func ParsePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	absolute := strings.HasPrefix(path, "/")
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	rendered := make([]string, 0, len(parts))

	for _, part := range parts {
		tokens, err := Parse(part)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, Render(tokens)[1:])
	}

	out := strings.Join(rendered, "/")
	if absolute {
		out = "/" + out
	}
	return out, nil
}

func isParamChar(c byte) bool {
	return c == '_' || c == '.' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
