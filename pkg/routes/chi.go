package routes

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/localeroute/pkg/segment"
)

// ChiPatterns converts a route pattern into chi patterns that serve it.
// Every optional param doubles the result: with and without the param.
// A catch-all must be the last segment and becomes "*"; the path without
// it is served too.
//
//	"/fr/blog/:slug()"   -> ["/fr/blog/{slug}"]
//	"/users/:id?"        -> ["/users/{id}", "/users"]
//	"/docs/:path(.*)*"   -> ["/docs/*", "/docs"]
func ChiPatterns(raw string) ([]string, error) {
	p, err := compilePattern(raw)
	if err != nil {
		return nil, err
	}

	// Each variant is a list of rendered segments.
	variants := [][]string{nil}

	for i, parts := range p.segments {
		last := i == len(p.segments)-1

		if single, ok := soleParam(parts); ok {
			var rendered string
			if single.kind == segment.Catchall {
				if !last {
					return nil, fmt.Errorf("%w: %q", ErrUnsupportedPattern, raw)
				}
				rendered = "*"
			} else {
				rendered = "{" + single.value + "}"
			}
			variants = fork(variants, rendered, true)
			continue
		}

		var b strings.Builder
		optional := ""
		for _, pt := range parts {
			switch pt.kind {
			case segment.Static:
				b.WriteString(pt.value)
			case segment.Dynamic:
				b.WriteString("{" + pt.value + "}")
			case segment.Optional:
				if optional != "" {
					return nil, fmt.Errorf("%w: %q", ErrUnsupportedPattern, raw)
				}
				optional = pt.value
				b.WriteString("{" + pt.value + "}")
			case segment.Catchall:
				return nil, fmt.Errorf("%w: %q", ErrUnsupportedPattern, raw)
			}
		}

		if optional == "" {
			variants = fork(variants, b.String(), false)
			continue
		}

		// An optional param inside a segment: with it, or with the
		// segment rendered without the placeholder.
		with := b.String()
		without := strings.Replace(with, "{"+optional+"}", "", 1)
		next := make([][]string, 0, len(variants)*2)
		for _, v := range variants {
			next = append(next, appendSeg(v, with))
			if without != "" {
				next = append(next, appendSeg(v, without))
			} else {
				next = append(next, v)
			}
		}
		variants = next
	}

	out := make([]string, 0, len(variants))
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		s := "/" + strings.Join(v, "/")
		if p.trailing && len(v) > 0 && v[len(v)-1] != "*" {
			s += "/"
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

// fork appends seg to every variant; when optional it also keeps every
// variant without it.
func fork(variants [][]string, seg string, optional bool) [][]string {
	size := len(variants)
	if optional {
		size *= 2
	}
	next := make([][]string, 0, size)
	for _, v := range variants {
		next = append(next, appendSeg(v, seg))
	}
	if optional {
		next = append(next, variants...)
	}
	return next
}

func appendSeg(v []string, seg string) []string {
	out := make([]string, len(v), len(v)+1)
	copy(out, v)
	return append(out, seg)
}
