package routes

import (
	"fmt"
	"net/url"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/dmitrymomot/localeroute/pkg/segment"
)

// buildOrigin is the base URL of the route groups. Only the path of a
// built URL is kept.
const buildOrigin = "http://localhost"

// unlocalizedGroup holds routes without a locale.
const unlocalizedGroup = "_"

type kitRoute struct {
	group    string
	params   []string
	trailing bool
}

// urlBuilder resolves named routes through one go-urlkit group per locale.
// Only routes made of whole static segments and required params are
// registered. Optional, catch-all and mixed segments stay with
// pattern.build, which keeps the bracket semantics.
type urlBuilder struct {
	manager *urlkit.RouteManager
	routes  map[string]kitRoute
}

func newURLBuilder(entries []*entry) *urlBuilder {
	b := &urlBuilder{routes: make(map[string]kitRoute)}

	paths := make(map[string]map[string]string)
	var order []string
	for _, e := range entries {
		if e.route.Name == "" {
			continue
		}
		tpl, params, ok := kitTemplate(e.patterns[0])
		if !ok {
			continue
		}
		group := e.route.Locale
		if group == "" {
			group = unlocalizedGroup
		}
		if paths[group] == nil {
			paths[group] = make(map[string]string)
			order = append(order, group)
		}
		paths[group][e.route.Name] = tpl
		b.routes[e.route.Name] = kitRoute{group: group, params: params, trailing: e.patterns[0].trailing}
	}
	if len(order) == 0 {
		return b
	}

	cfg := &urlkit.Config{}
	for _, group := range order {
		cfg.Groups = append(cfg.Groups, urlkit.GroupConfig{
			Name:    group,
			BaseURL: buildOrigin,
			Paths:   paths[group],
		})
	}
	b.manager = urlkit.NewRouteManager(cfg)
	return b
}

// build returns the path of name, or false when the route is not
// registered or a param value needs escaping.
func (b *urlBuilder) build(name string, params Params) (path string, ok bool) {
	if b == nil || b.manager == nil {
		return "", false
	}
	r, found := b.routes[name]
	if !found {
		return "", false
	}
	for _, p := range r.params {
		v := params[p]
		if v == "" || url.PathEscape(v) != v {
			return "", false
		}
	}

	defer func() {
		if rec := recover(); rec != nil {
			path, ok = "", false
		}
	}()

	builder := b.manager.Group(r.group).Builder(name)
	for _, p := range r.params {
		builder.WithParam(p, params[p])
	}
	raw, err := builder.Build()
	if err != nil {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	path = strings.TrimSuffix(u.Path, "/")
	if path == "" {
		return "/", true
	}
	if r.trailing {
		path += "/"
	}
	return path, true
}

// kitTemplate renders p in path-to-regexp syntax with the names of its
// params, or reports false when p uses a form that syntax does not share.
func kitTemplate(p *pattern) (string, []string, bool) {
	if len(p.segments) == 0 {
		return "/", nil, true
	}

	var (
		b      strings.Builder
		params []string
	)
	for _, parts := range p.segments {
		if len(parts) != 1 {
			return "", nil, false
		}
		pt := parts[0]
		b.WriteByte('/')
		switch {
		case pt.kind == segment.Static && isPlainText(pt.value):
			b.WriteString(pt.value)
		case pt.kind == segment.Dynamic && isPlainName(pt.value):
			fmt.Fprintf(&b, ":%s", pt.value)
			params = append(params, pt.value)
		default:
			return "", nil, false
		}
	}
	if p.trailing {
		b.WriteByte('/')
	}
	return b.String(), params, true
}

func isPlainText(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isPlainNameChar(c) && c != '-' && c != '.' && c != '~' {
			return false
		}
	}
	return s != ""
}

func isPlainName(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isPlainNameChar(s[i]) {
			return false
		}
	}
	return s != ""
}

func isPlainNameChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
