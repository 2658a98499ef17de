package routes

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/dmitrymomot/localeroute/pkg/segment"
)

// part is a piece of one pattern segment.
type part struct {
	kind  segment.Kind
	value string // literal text or param name
}

// pattern is a compiled route path such as "/fr/blog/:slug()".
type pattern struct {
	raw      string
	segments [][]part
	trailing bool
	re       *regexp.Regexp
	params   []string
	score    int
}

func compilePattern(raw string) (*pattern, error) {
	p := &pattern{raw: raw}

	trimmed := strings.Trim(raw, "/")
	p.trailing = trimmed != "" && strings.HasSuffix(raw, "/")

	var re strings.Builder
	re.WriteByte('^')

	if trimmed != "" {
		for _, s := range strings.Split(trimmed, "/") {
			parts := splitSegment(s)
			p.segments = append(p.segments, parts)
			p.score += segmentScore(parts)

			if single, ok := soleParam(parts); ok {
				p.params = append(p.params, single.value)
				if single.kind == segment.Optional {
					re.WriteString(`(?:/([^/]+))?`)
				} else {
					re.WriteString(`(?:/(.*?))?`)
				}
				continue
			}

			re.WriteByte('/')
			for _, pt := range parts {
				switch pt.kind {
				case segment.Static:
					re.WriteString(regexp.QuoteMeta(pt.value))
				case segment.Dynamic:
					p.params = append(p.params, pt.value)
					re.WriteString(`([^/]+)`)
				case segment.Optional:
					p.params = append(p.params, pt.value)
					re.WriteString(`([^/]*)`)
				case segment.Catchall:
					p.params = append(p.params, pt.value)
					re.WriteString(`(.*?)`)
				}
			}
		}
	}

	re.WriteString(`/?$`)

	compiled, err := regexp.Compile(re.String())
	if err != nil {
		return nil, err
	}
	p.re = compiled
	return p, nil
}

// splitSegment parses one segment of a rendered pattern. Recognized forms
// are ":name()", ":name", ":name?", ":name(.*)*" and "\:" for a literal colon.
func splitSegment(s string) []part {
	var (
		parts  []part
		static strings.Builder
	)

	flushStatic := func() {
		if static.Len() > 0 {
			parts = append(parts, part{kind: segment.Static, value: static.String()})
			static.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && s[i+1] == ':' {
			static.WriteByte(':')
			i++
			continue
		}
		if c != ':' {
			static.WriteByte(c)
			continue
		}

		j := i + 1
		for j < len(s) && isNameChar(s[j]) {
			j++
		}
		if j == i+1 {
			static.WriteByte(c)
			continue
		}

		flushStatic()
		name := s[i+1 : j]
		rest := s[j:]
		switch {
		case strings.HasPrefix(rest, "(.*)*"):
			parts = append(parts, part{kind: segment.Catchall, value: name})
			j += len("(.*)*")
		case strings.HasPrefix(rest, "()?"):
			parts = append(parts, part{kind: segment.Optional, value: name})
			j += len("()?")
		case strings.HasPrefix(rest, "()"):
			parts = append(parts, part{kind: segment.Dynamic, value: name})
			j += len("()")
		case strings.HasPrefix(rest, "?"):
			parts = append(parts, part{kind: segment.Optional, value: name})
			j++
		default:
			parts = append(parts, part{kind: segment.Dynamic, value: name})
		}
		i = j - 1
	}
	flushStatic()

	return parts
}

func soleParam(parts []part) (part, bool) {
	if len(parts) != 1 {
		return part{}, false
	}
	k := parts[0].kind
	return parts[0], k == segment.Optional || k == segment.Catchall
}

func segmentScore(parts []part) int {
	if len(parts) == 1 {
		switch parts[0].kind {
		case segment.Static:
			return 4
		case segment.Dynamic:
			return 2
		case segment.Optional:
			return 1
		default:
			return 0
		}
	}
	for _, p := range parts {
		if p.kind == segment.Static {
			return 3
		}
	}
	return 2
}

func isNameChar(c byte) bool {
	return c == '_' || c == '.' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func (p *pattern) match(path string) (Params, bool) {
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	params := make(Params, len(p.params))
	for i, name := range p.params {
		params[name] = m[i+1]
	}
	return params, true
}

func (p *pattern) build(params Params) (string, error) {
	segs := make([]string, 0, len(p.segments))

	for _, parts := range p.segments {
		if single, ok := soleParam(parts); ok && params[single.value] == "" {
			continue
		}

		var b strings.Builder
		for _, pt := range parts {
			switch pt.kind {
			case segment.Static:
				b.WriteString(pt.value)
			case segment.Dynamic:
				v := params[pt.value]
				if v == "" {
					return "", fmt.Errorf("%w: %s", ErrMissingParam, pt.value)
				}
				b.WriteString(url.PathEscape(v))
			case segment.Optional:
				b.WriteString(url.PathEscape(params[pt.value]))
			case segment.Catchall:
				b.WriteString(escapeCatchall(params[pt.value]))
			}
		}
		segs = append(segs, b.String())
	}

	if len(segs) == 0 {
		return "/", nil
	}
	out := "/" + strings.Join(segs, "/")
	if p.trailing {
		out += "/"
	}
	return out, nil
}

func escapeCatchall(v string) string {
	pieces := strings.Split(v, "/")
	for i, piece := range pieces {
		pieces[i] = url.PathEscape(piece)
	}
	return strings.Join(pieces, "/")
}
