package localeroute

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/localeroute/middlewares"
	"github.com/dmitrymomot/localeroute/pkg/alternate"
	"github.com/dmitrymomot/localeroute/pkg/cookie"
	"github.com/dmitrymomot/localeroute/pkg/detect"
	"github.com/dmitrymomot/localeroute/pkg/domainlocale"
	"github.com/dmitrymomot/localeroute/pkg/htmx"
	"github.com/dmitrymomot/localeroute/pkg/locale"
	"github.com/dmitrymomot/localeroute/pkg/logger"
	"github.com/dmitrymomot/localeroute/pkg/redirect"
	"github.com/dmitrymomot/localeroute/pkg/routes"
	"github.com/dmitrymomot/localeroute/pkg/segment"
	"github.com/dmitrymomot/localeroute/pkg/switcher"
)

// ErrUnknownHandler is returned by Mount for a handler key that names no route.
var ErrUnknownHandler = errors.New("localeroute: handler for unknown route")

// Localizer holds a localized route table together with the detector and
// redirect planner built for it. It is immutable after New and safe for
// concurrent use.
type Localizer struct {
	cfg        locale.Config
	nodes      []routes.Node
	resolver   routes.OptionsResolver
	prefixable routes.PrefixableFunc
	cookieOpts []cookie.Option

	guardName   string
	guardSecret string

	localized []routes.Node
	table     *routes.Table
	detector  *detect.Detector
	planner   *redirect.Planner
	cookie    *cookie.Store
	guard     *cookie.Store
	logger    *slog.Logger

	errs []error
}

// New builds a Localizer: it validates the configuration, localizes the
// route tree and compiles the route table.
func New(opts ...Option) (*Localizer, error) {
	l := &Localizer{
		cfg:       locale.Default(),
		guardName: middlewares.DefaultLoopGuardCookie,
		logger:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if len(l.errs) > 0 {
		return nil, errors.Join(l.errs...)
	}

	if err := l.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("localeroute: invalid config: %w", err)
	}
	if err := l.cfg.ValidateDomains(); err != nil {
		l.logger.Warn("routes are not localized", logger.Error(err))
	}

	ro := routes.OptionsFromConfig(l.cfg)
	ro.OptionsResolver = l.resolver
	ro.Prefixable = l.prefixable
	ro.Cache = segment.NewCache()
	ro.Logger = l.logger

	localized, err := routes.Localize(l.nodes, ro)
	if err != nil {
		return nil, fmt.Errorf("localeroute: localize routes: %w", err)
	}
	table, err := routes.NewTable(localized, ro)
	if err != nil {
		return nil, fmt.Errorf("localeroute: build route table: %w", err)
	}
	l.localized = localized
	l.table = table

	l.detector = detect.New(l.cfg,
		detect.WithLogger(l.logger),
		detect.WithDomainResolver(domainlocale.NewResolver(l.cfg.Locales,
			domainlocale.WithLogger(l.logger),
			domainlocale.WithStrategy(l.cfg.Strategy),
		)),
	)
	l.planner = redirect.New(l.cfg, table, redirect.WithLogger(l.logger))
	l.cookie = cookie.FromConfig(l.cfg.DetectBrowserLanguage, l.cookieOpts...)
	if l.guardName != "" {
		l.guard = cookie.New(l.guardName,
			cookie.WithMaxAge(60),
			cookie.WithHTTPOnly(true),
			cookie.WithSecret(l.guardSecret),
		)
	}

	l.logger.Debug("routes localized",
		slog.String("strategy", l.cfg.Strategy.String()),
		slog.Int("routes", table.Len()),
	)
	return l, nil
}

// Config returns the locale configuration.
func (l *Localizer) Config() locale.Config {
	return l.cfg
}

// Routes returns the localized route tree.
func (l *Localizer) Routes() []routes.Node {
	return l.localized
}

// Table returns the compiled route table.
func (l *Localizer) Table() *routes.Table {
	return l.table
}

// Detector returns the locale detector.
func (l *Localizer) Detector() *detect.Detector {
	return l.detector
}

// Planner returns the redirect planner.
func (l *Localizer) Planner() *redirect.Planner {
	return l.planner
}

// Middleware returns the locale middleware bound to this Localizer.
func (l *Localizer) Middleware() func(http.Handler) http.Handler {
	return middlewares.Locale(l.table, l.cfg,
		middlewares.WithLocaleDetector(l.detector),
		middlewares.WithLocalePlanner(l.planner),
		middlewares.WithLocaleCookie(l.cookie),
		middlewares.WithLoopGuard(l.guard),
		middlewares.WithLocaleLogger(l.logger),
	)
}

// Mount registers every localized variant of the routes named in handlers
// on r, behind the locale middleware. Handlers are keyed by base route name.
// Routes without a handler are skipped, except redirect-only routes with a
// string target which are served as redirects.
func (l *Localizer) Mount(r chi.Router, handlers map[string]http.Handler) error {
	used := make(map[string]bool, len(handlers))
	seen := make(map[string]bool)

	type mount struct {
		pattern string
		handler http.Handler
	}
	var mounts []mount

	for _, route := range l.table.Routes() {
		h, ok := handlers[route.Base]
		if ok {
			used[route.Base] = true
		} else if target, isString := route.Redirect.(string); isString && target != "" {
			h = http.RedirectHandler(target, l.redirectStatus())
		} else {
			continue
		}

		for _, raw := range append([]string{route.Pattern}, route.Aliases...) {
			patterns, err := routes.ChiPatterns(raw)
			if err != nil {
				return fmt.Errorf("localeroute: route %q: %w", route.Name, err)
			}
			for _, p := range patterns {
				if seen[p] {
					continue
				}
				seen[p] = true
				mounts = append(mounts, mount{pattern: p, handler: h})
			}
		}
	}

	for base := range handlers {
		if !used[base] {
			return fmt.Errorf("%w: %q", ErrUnknownHandler, base)
		}
	}

	r.Group(func(g chi.Router) {
		g.Use(l.Middleware())
		for _, m := range mounts {
			g.Handle(m.pattern, m.handler)
		}
	})
	return nil
}

func (l *Localizer) redirectStatus() int {
	if l.cfg.RedirectStatusCode != 0 {
		return l.cfg.RedirectStatusCode
	}
	return locale.DefaultRedirectStatusCode
}

// current describes the page of r as a planner route.
func (l *Localizer) current(r *http.Request) (redirect.Current, bool) {
	page := htmx.PageURL(r)
	route, params, ok := l.table.Match(page.Path)
	return redirect.Current{
		Name:     route.Name,
		Path:     page.Path,
		Params:   params,
		Query:    page.Query(),
		RawQuery: page.RawQuery,
	}, ok
}

// Alternates returns the hreflang links of the page of r.
func (l *Localizer) Alternates(r *http.Request, opts ...alternate.Option) ([]alternate.Link, error) {
	cur, ok := l.current(r)
	if !ok {
		return nil, alternate.ErrNoRoute
	}
	opts = append([]alternate.Option{alternate.WithLogger(l.logger)}, opts...)
	return alternate.Links(l.table, alternate.Current{
		Name:   cur.Name,
		Params: cur.Params,
		Query:  cur.Query,
	}, l.cfg, opts...)
}

// SwitchLocalePath returns the URL of the page of r in locale code, keeping
// params and query. With different domains the URL is absolute when code
// is served by another host. Returns "" when code has no variant of the page.
func (l *Localizer) SwitchLocalePath(r *http.Request, code string) string {
	if !l.cfg.Locales.Has(code) {
		return ""
	}
	cur, _ := l.current(r)

	path := cur.FullPath()
	if l.cfg.Strategy != locale.NoPrefix && l.planner.RouteLocale(cur) != code {
		path = l.planner.DetectRedirect(cur, code)
		if path == "" {
			return ""
		}
	}

	if u, ok := l.planner.DomainRedirect(domainlocale.GetHost(r), code, path); ok {
		return u
	}
	return path
}

// NewSwitcher returns a locale switcher starting at initial, or at the
// default locale when initial is empty.
func (l *Localizer) NewSwitcher(initial string, loader switcher.Loader, opts ...switcher.Option) *switcher.Switcher {
	if initial == "" {
		initial = l.cfg.DefaultLocale
	}
	opts = append([]switcher.Option{switcher.WithLogger(l.logger)}, opts...)
	return switcher.New(initial, loader, opts...)
}
