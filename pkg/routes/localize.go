package routes

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/localeroute/pkg/locale"
	"github.com/dmitrymomot/localeroute/pkg/segment"
)

// ShouldLocalize reports whether Localize rewrites the tree at all.
//
// no_prefix without different domains leaves routes untouched. With
// different domains every locale needs its own domain; when two locales
// share one, a warning is logged and routes are left untouched.
func ShouldLocalize(opts Options) bool {
	o := opts.withDefaults()
	if o.Strategy != locale.NoPrefix {
		return true
	}
	if !o.DifferentDomains {
		return false
	}
	if dups := o.DomainLocales.DuplicateDomains(); len(dups) > 0 {
		o.Logger.Warn("locales share a domain with no_prefix strategy, routes are not localized",
			slog.Any("domains", dups),
		)
		return false
	}
	return true
}

// Localize rewrites a route tree into per-locale variants.
//
// When ShouldLocalize is false the input slice is returned as is.
// A malformed custom path aborts localization with a *segment.ParseError
// in the error chain.
func Localize(nodes []Node, opts Options) ([]Node, error) {
	o := opts.withDefaults()
	if !ShouldLocalize(o) {
		return nodes, nil
	}
	if o.Cache == nil {
		o.Cache = segment.NewCache()
	}

	l := &localizer{opts: o}
	return l.localizeAll(nodes, pass{locales: o.Locales})
}

type localizer struct {
	opts Options
}

// parentContext describes the localized parent of the nodes being processed.
type parentContext struct {
	// fullPath is the absolute localized path of the parent.
	fullPath string
}

type pass struct {
	locales []string
	parent  *parentContext
	// extra marks the unprefixed default-locale variant; it is inherited
	// by children.
	extra bool
	// domain marks the multi-domain clone, named with DomainDefaultSuffix.
	domain bool
}

func (p pass) topLevel() bool {
	return p.parent == nil && !p.extra
}

func (l *localizer) localizeAll(nodes []Node, p pass) ([]Node, error) {
	out := make([]Node, 0, len(nodes)*max(len(p.locales), 1))
	for _, n := range nodes {
		localized, err := l.localizeNode(n, p)
		if err != nil {
			return nil, err
		}
		out = append(out, localized...)
	}
	return out, nil
}

func (l *localizer) localizeNode(n Node, p pass) ([]Node, error) {
	if n.Redirect != nil && n.File == "" {
		return []Node{n}, nil
	}

	var ro *RouteOptions
	if l.opts.OptionsResolver != nil {
		if ro = l.opts.OptionsResolver(n, p.locales); ro == nil {
			return nil, nil
		}
	}

	codes := p.locales
	if ro != nil && ro.Locales != nil {
		codes = slices.DeleteFunc(slices.Clone(p.locales), func(c string) bool {
			return !slices.Contains(ro.Locales, c)
		})
	}

	strategy := l.opts.Strategy
	var out []Node
	for _, code := range codes {
		isDefault := l.opts.isDefaultLocale(code)
		prefixAndDefault := isDefault && strategy == locale.PrefixAndDefault

		if p.topLevel() && prefixAndDefault {
			variant, err := l.localizeNode(n, pass{locales: []string{code}, extra: true})
			if err != nil {
				return nil, err
			}
			out = append(out, variant...)
		}

		localized, err := l.localizeFor(n, code, isDefault, ro, p)
		if err != nil {
			return nil, err
		}
		out = append(out, localized)

		// Unprefixed clone so a domain can serve its default locale
		// without a prefix. prefix_and_default already emitted it above.
		if p.topLevel() && l.opts.MultiDomainLocales && !prefixAndDefault &&
			(strategy == locale.PrefixExceptDefault || strategy == locale.PrefixAndDefault) {
			variant, err := l.localizeNode(n, pass{locales: []string{code}, extra: true, domain: true})
			if err != nil {
				return nil, err
			}
			out = append(out, variant...)
		}
	}

	if p.topLevel() && strategy == locale.Prefix && l.opts.IncludeUnprefixedFallback &&
		slices.ContainsFunc(codes, l.opts.isDefaultLocale) {
		out = append(out, n)
	}

	return out, nil
}

func (l *localizer) localizeFor(n Node, code string, isDefault bool, ro *RouteOptions, p pass) (Node, error) {
	out := n.clone()
	sep := l.opts.RoutesNameSeparator

	if out.Name != "" {
		out.Name = n.Name + sep + code
		switch {
		case p.domain:
			out.Name += DomainDefaultSuffix
		case p.extra:
			out.Name += sep + l.opts.DefaultLocaleRouteNameSuffix
		}
	}

	if ro != nil {
		if custom, ok := ro.Paths[code]; ok {
			path, err := l.opts.Cache.ParsePath(custom)
			if err != nil {
				return Node{}, fmt.Errorf("routes: custom path of %q for %q: %w", n.Name, code, err)
			}
			out.Path = path
		}
	}

	pc := PrefixContext{
		Locale:          code,
		Strategy:        l.opts.Strategy,
		IsDefaultLocale: isDefault,
		Extra:           p.extra,
		Nested:          p.parent != nil,
	}

	var full string
	out.Path, full = l.rewritePath(out.Path, pc, p.parent)
	for i, alias := range out.Alias {
		out.Alias[i], _ = l.rewritePath(alias, pc, p.parent)
	}

	if len(n.Children) > 0 {
		children, err := l.localizeAll(n.Children, pass{
			locales: []string{code},
			parent:  &parentContext{fullPath: full},
			extra:   p.extra,
			domain:  p.domain,
		})
		if err != nil {
			return Node{}, err
		}
		out.Children = children
	}

	return out, nil
}

// rewritePath prefixes, normalizes and relativizes one path. It returns
// the path to store on the node and the absolute path children build on.
func (l *localizer) rewritePath(path string, pc PrefixContext, parent *parentContext) (string, string) {
	pc.Path = path
	if l.opts.Prefixable(pc) {
		path = prefixPath(pc.Locale, path)
	}

	path = l.normalizeSlash(path, parent != nil)

	full := path
	if parent != nil && !strings.HasPrefix(path, "/") {
		full = joinPath(parent.fullPath, path)
	}

	if parent != nil && strings.HasPrefix(path, "/") {
		base := strings.TrimRight(parent.fullPath, "/")
		switch {
		case path == base || path == base+"/":
			path = ""
		case strings.HasPrefix(path, base+"/"):
			path = path[len(base)+1:]
		}
	}

	return path, full
}

func (l *localizer) normalizeSlash(path string, nested bool) string {
	relative := nested && !strings.HasPrefix(path, "/")
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		if relative {
			return ""
		}
		return "/"
	}
	if l.opts.TrailingSlash {
		return trimmed + "/"
	}
	return trimmed
}

func prefixPath(code, path string) string {
	switch {
	case path == "" || path == "/":
		return "/" + code
	case strings.HasPrefix(path, "/"):
		return "/" + code + path
	default:
		return "/" + code + "/" + path
	}
}

func joinPath(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + path
}
