package redirect

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/dmitrymomot/localeroute/pkg/detect"
	"github.com/dmitrymomot/localeroute/pkg/locale"
	"github.com/dmitrymomot/localeroute/pkg/logger"
	"github.com/dmitrymomot/localeroute/pkg/routes"
)

// Current describes the route being navigated to.
type Current struct {
	// Name is the matched route name, if any.
	Name     string
	Path     string
	Params   routes.Params
	Query    url.Values
	// RawQuery is the query as received. It takes precedence over Query
	// so redirects keep the original parameter order.
	RawQuery string
	Hash     string
}

// FullPath returns the path with query and hash.
func (c Current) FullPath() string {
	return c.withQueryHash(c.Path)
}

func (c Current) withQueryHash(path string) string {
	switch {
	case c.RawQuery != "":
		path += "?" + c.RawQuery
	case len(c.Query) > 0:
		path += "?" + c.Query.Encode()
	}
	if c.Hash != "" {
		path += "#" + strings.TrimPrefix(c.Hash, "#")
	}
	return path
}

// Decision is the outcome of Plan. A zero Decision means no redirect.
type Decision struct {
	Path       string
	StatusCode int
}

// Redirect reports whether a redirect should happen.
func (d Decision) Redirect() bool {
	return d.Path != ""
}

// Planner computes redirects between localized variants of a route.
// It is immutable after New.
type Planner struct {
	cfg      locale.Config
	table    *routes.Table
	opts     routes.Options
	prefixRe *regexp.Regexp
	logger   *slog.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Planner resolving routes through table.
func New(cfg locale.Config, table *routes.Table, opts ...Option) *Planner {
	p := &Planner{
		cfg:      cfg,
		table:    table,
		opts:     table.Options(),
		prefixRe: detect.LocalePrefixRegexp(cfg.Locales.Codes()),
		logger:   logger.NewNope(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RouteLocale returns the locale implied by the current route: the locale
// encoded in its name, else the one of the route matching its path, else
// the path prefix.
func (p *Planner) RouteLocale(c Current) string {
	if code := routes.LocaleFromName(c.Name, p.opts.RoutesNameSeparator); p.cfg.Locales.Has(code) {
		return code
	}
	if route, _, ok := p.table.Match(c.Path); ok && route.Locale != "" {
		return route.Locale
	}
	if m := p.prefixRe.FindStringSubmatch(c.Path); m != nil {
		return m[1]
	}
	return ""
}

// DetectRedirect returns the path of the current route localized to
// target, keeping params, query and hash. It returns "" when no redirect is
// needed: the route already uses target, the strategy is no_prefix, the
// localized route cannot be resolved, or it equals the current full path.
func (p *Planner) DetectRedirect(c Current, target string) string {
	if target == "" || p.cfg.Strategy == locale.NoPrefix {
		return ""
	}
	if p.RouteLocale(c) == target {
		return ""
	}

	path := p.switchByName(c, target)
	if path == "" {
		path = p.switchByPath(c, target)
	}
	if path == "" {
		p.logger.Debug("no localized route to redirect to",
			slog.String("path", c.Path),
			logger.Locale(target),
		)
		return ""
	}

	full := c.withQueryHash(path)
	if full == c.FullPath() {
		return ""
	}
	return full
}

func (p *Planner) switchByName(c Current, target string) string {
	if c.Name == "" {
		return ""
	}
	base := routes.BaseName(c.Name, p.opts.RoutesNameSeparator)
	path, err := p.table.ResolveLocale(base, target, c.Params)
	if err != nil {
		return ""
	}
	return path
}

func (p *Planner) switchByPath(c Current, target string) string {
	rest := c.Path
	if m := p.prefixRe.FindStringSubmatch(rest); m != nil {
		rest = strings.TrimPrefix(rest, "/"+m[1])
	}
	if rest == "" {
		rest = "/"
	}

	path := rest
	if p.prefixed(target) {
		path = "/" + target
		if rest != "/" || p.cfg.TrailingSlash {
			path += rest
		}
	}

	route, _, ok := p.table.Match(path)
	if !ok || (route.Locale != "" && route.Locale != target) {
		return ""
	}
	return path
}

// prefixed reports whether paths of code carry a locale prefix.
func (p *Planner) prefixed(code string) bool {
	switch p.cfg.Strategy {
	case locale.NoPrefix:
		return false
	case locale.PrefixExceptDefault, locale.PrefixAndDefault:
		return code != p.cfg.DefaultLocale
	default:
		return true
	}
}

// Plan returns the redirect for navigating to c with target as the
// resolved locale. On "/" a configured root redirect replaces the target
// and status code.
func (p *Planner) Plan(c Current, target string) Decision {
	if c.Path == "/" && p.cfg.RootRedirect.Enabled() {
		path := p.cfg.RootRedirect.Path
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		if path == c.Path {
			return Decision{}
		}
		status := p.cfg.RootRedirect.StatusCode
		if status == 0 {
			status = locale.DefaultRedirectStatusCode
		}
		return Decision{Path: path, StatusCode: status}
	}

	path := p.DetectRedirect(c, target)
	if path == "" {
		return Decision{}
	}

	status := p.cfg.RedirectStatusCode
	if status == 0 {
		status = locale.DefaultRedirectStatusCode
	}
	return Decision{Path: path, StatusCode: status}
}
