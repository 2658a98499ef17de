package routes

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Params holds route parameter values by name. Catch-all values keep
// their slashes.
type Params map[string]string

// Route is a flattened entry of a localized tree with an absolute pattern.
type Route struct {
	Name string
	// Base is the name without locale and default suffix.
	Base    string
	Locale  string
	Pattern string
	Aliases []string
	// Default marks the unprefixed default-locale variant.
	Default  bool
	Redirect any
	File     string
	Meta     map[string]any
}

type entry struct {
	route    Route
	patterns []*pattern // primary first, then aliases
	depth    int
}

// Table resolves and matches routes of a localized tree.
// It is immutable after NewTable and safe for concurrent use.
type Table struct {
	opts    Options
	byName  map[string]*entry
	entries []*entry
	ranked  []*entry
	urls    *urlBuilder
}

// NewTable flattens nodes into absolute patterns. Locale codes are read
// back from route names with the separator of opts.
func NewTable(nodes []Node, opts Options) (*Table, error) {
	t := &Table{
		opts:   opts.withDefaults(),
		byName: make(map[string]*entry),
	}
	if err := t.add(nodes, "", 0); err != nil {
		return nil, err
	}
	t.urls = newURLBuilder(t.entries)

	t.ranked = slices.Clone(t.entries)
	slices.SortStableFunc(t.ranked, func(a, b *entry) int {
		if c := cmp.Compare(b.patterns[0].score, a.patterns[0].score); c != 0 {
			return c
		}
		return cmp.Compare(b.depth, a.depth)
	})
	return t, nil
}

func (t *Table) add(nodes []Node, parent string, depth int) error {
	sep := t.opts.RoutesNameSeparator

	for _, n := range nodes {
		full := absolutePath(parent, n.Path)

		e := &entry{depth: depth}
		e.route = Route{
			Name:     n.Name,
			Base:     BaseName(n.Name, sep),
			Pattern:  full,
			Default:  IsDefaultVariant(n.Name, sep, t.opts.DefaultLocaleRouteNameSuffix),
			Redirect: n.Redirect,
			File:     n.File,
			Meta:     n.Meta,
		}
		if code := LocaleFromName(n.Name, sep); slices.Contains(t.opts.Locales, code) {
			e.route.Locale = code
		}

		primary, err := compilePattern(full)
		if err != nil {
			return fmt.Errorf("routes: compile %q: %w", full, err)
		}
		e.patterns = append(e.patterns, primary)

		for _, alias := range n.Alias {
			abs := absolutePath(parent, alias)
			p, err := compilePattern(abs)
			if err != nil {
				return fmt.Errorf("routes: compile alias %q: %w", abs, err)
			}
			e.route.Aliases = append(e.route.Aliases, abs)
			e.patterns = append(e.patterns, p)
		}

		if n.Name != "" {
			if _, ok := t.byName[n.Name]; ok {
				return fmt.Errorf("%w: %q", ErrDuplicateName, n.Name)
			}
			t.byName[n.Name] = e
		}
		t.entries = append(t.entries, e)

		if err := t.add(n.Children, full, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func absolutePath(parent, path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	if parent == "" {
		return "/" + path
	}
	return joinPath(parent, path)
}

// Routes returns every route in tree order.
func (t *Table) Routes() []Route {
	out := make([]Route, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.route)
	}
	return out
}

// Lookup returns the route with the given name.
func (t *Table) Lookup(name string) (Route, bool) {
	e, ok := t.byName[name]
	if !ok {
		return Route{}, false
	}
	return e.route, true
}

// Resolve builds the path of a named route. Plain routes are built by
// their go-urlkit locale group, the rest by the bracket pattern.
func (t *Table) Resolve(name string, params Params) (string, error) {
	e, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	if path, ok := t.urls.build(name, params); ok {
		return path, nil
	}
	path, err := e.patterns[0].build(params)
	if err != nil {
		return "", fmt.Errorf("routes: resolve %q: %w", name, err)
	}
	return path, nil
}

// ResolveLocale builds the path of base localized to code.
func (t *Table) ResolveLocale(base, code string, params Params) (string, error) {
	return t.Resolve(LocaleRouteName(base, code, t.opts), params)
}

// Match finds the route serving path. Static segments win over params,
// nested routes win over their parents on equal patterns, remaining ties
// go to the route declared first.
func (t *Table) Match(path string) (Route, Params, bool) {
	if path == "" {
		path = "/"
	}
	for _, e := range t.ranked {
		for _, p := range e.patterns {
			if params, ok := p.match(path); ok {
				return e.route, params, true
			}
		}
	}
	return Route{}, nil, false
}

// Options returns the options the table was built with.
func (t *Table) Options() Options {
	return t.opts
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.entries)
}
