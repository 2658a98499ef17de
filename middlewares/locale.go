package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/localeroute/pkg/browserlocale"
	"github.com/dmitrymomot/localeroute/pkg/cookie"
	"github.com/dmitrymomot/localeroute/pkg/detect"
	"github.com/dmitrymomot/localeroute/pkg/domainlocale"
	"github.com/dmitrymomot/localeroute/pkg/htmx"
	"github.com/dmitrymomot/localeroute/pkg/locale"
	"github.com/dmitrymomot/localeroute/pkg/logger"
	"github.com/dmitrymomot/localeroute/pkg/redirect"
	"github.com/dmitrymomot/localeroute/pkg/routes"
)

// localeKey is the context key for the resolved locale.
type localeKey struct{}

// detectionKey is the context key for the full detection result.
type detectionKey struct{}

// DefaultLoopGuardCookie is the cookie holding the last redirect target.
const DefaultLoopGuardCookie = "i18n_redirect_guard"

// loopGuardMaxAge keeps the loop guard only across a redirect round trip.
const loopGuardMaxAge = int(time.Minute / time.Second)

// LocaleConfig configures the Locale middleware.
type LocaleConfig struct {
	Config   locale.Config
	Table    *routes.Table
	Detector *detect.Detector
	Planner  *redirect.Planner
	Cookie   *cookie.Store // locale cookie
	Guard    *cookie.Store // loop guard cookie; nil disables the guard
	Logger   *slog.Logger
}

// LocaleOption configures LocaleConfig.
type LocaleOption func(*LocaleConfig)

// WithLocaleDetector replaces the detector built from the configuration.
func WithLocaleDetector(d *detect.Detector) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Detector = d
	}
}

// WithLocalePlanner replaces the redirect planner built from the table.
func WithLocalePlanner(p *redirect.Planner) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Planner = p
	}
}

// WithLocaleCookie replaces the locale cookie store.
func WithLocaleCookie(s *cookie.Store) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Cookie = s
	}
}

// WithLoopGuard sets the cookie store persisting the redirect loop guard.
// Pass nil to disable the guard.
func WithLoopGuard(s *cookie.Store) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Guard = s
	}
}

// WithLocaleLogger sets the logger.
func WithLocaleLogger(l *slog.Logger) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Logger = l
	}
}

// Locale returns middleware that resolves the locale of each request.
//
// The request is matched against the localized route table, the locale is
// detected from the cookie, the host, Accept-Language and the route, and
// the request is redirected to the localized variant of the route when it
// does not match. Otherwise the locale is stored in the request context
// and remembered in the locale cookie.
func Locale(table *routes.Table, cfg locale.Config, opts ...LocaleOption) func(http.Handler) http.Handler {
	c := &LocaleConfig{
		Config: cfg,
		Table:  table,
		Cookie: cookie.FromConfig(cfg.DetectBrowserLanguage),
		Guard: cookie.New(DefaultLoopGuardCookie,
			cookie.WithMaxAge(loopGuardMaxAge),
			cookie.WithHTTPOnly(true),
		),
		Logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Logger == nil {
		c.Logger = logger.NewNope()
	}
	if c.Detector == nil {
		c.Detector = detect.New(cfg, detect.WithLogger(c.Logger))
	}
	if c.Planner == nil {
		c.Planner = redirect.New(cfg, table, redirect.WithLogger(c.Logger))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.serve(w, r, next)
		})
	}
}

func (c *LocaleConfig) serve(w http.ResponseWriter, r *http.Request, next http.Handler) {
	ctx := r.Context()
	opts := c.Config.DetectBrowserLanguage
	page := htmx.PageURL(r)

	route, params, _ := c.Table.Match(page.Path)
	cur := redirect.Current{
		Name:     route.Name,
		Path:     page.Path,
		Params:   params,
		Query:    page.Query(),
		RawQuery: page.RawQuery,
	}
	host := domainlocale.GetHost(r)

	stored, err := c.Cookie.Get(r)
	firstAccess := errors.Is(err, cookie.ErrNotFound)
	reset := false
	if !firstAccess && (err != nil || !c.Config.Locales.Has(stored)) {
		// An unreadable or unknown cookie counts as no cookie at all.
		c.Logger.WarnContext(ctx, "resetting locale cookie", logger.Locale(stored), logger.Error(err))
		stored = ""
		firstAccess = true
		reset = true
	}

	res := c.Detector.Detect(detect.Context{
		Path:           cur.Path,
		FirstAccess:    firstAccess,
		Server:         true,
		FirstRender:    true,
		Cookie:         stored,
		BrowserLocales: browserlocale.ParseAcceptLanguage(r.Header.Get("Accept-Language")),
		Host:           host,
		RouteLocale:    c.Planner.RouteLocale(cur),
	})
	if opts.Enabled {
		w.Header().Add("Vary", "Accept-Language")
	}

	if target, status, ok := c.plan(host, cur, res.Locale); ok {
		if c.allow(w, r, target) {
			c.Logger.DebugContext(ctx, "locale redirect",
				logger.Locale(res.Locale),
				slog.String("from", string(res.From)),
				slog.String("location", target),
			)
			c.persist(w, res.Locale, stored, reset)
			htmx.RedirectWithStatus(w, r, target, status)
			return
		}
		c.Logger.WarnContext(ctx, "redirect loop detected",
			logger.Locale(res.Locale),
			slog.String("location", target),
		)
	} else {
		c.clearGuard(w, r)
	}

	c.persist(w, res.Locale, stored, reset)

	ctx = context.WithValue(ctx, localeKey{}, res.Locale)
	ctx = context.WithValue(ctx, detectionKey{}, res)
	next.ServeHTTP(w, r.WithContext(ctx))
}

// persist writes the locale cookie at most once per response: the detected
// locale when it changed, otherwise the default locale over a rejected value.
func (c *LocaleConfig) persist(w http.ResponseWriter, detected, stored string, reset bool) {
	opts := c.Config.DetectBrowserLanguage
	switch {
	case opts.Enabled && opts.UseCookie && detected != "" && detected != stored:
		c.Cookie.Set(w, detected)
	case reset:
		c.Cookie.Reset(w, c.Config.DefaultLocale)
	}
}

// plan returns the redirect target for the request, checking the target
// locale's domain first.
func (c *LocaleConfig) plan(host string, cur redirect.Current, target string) (string, int, bool) {
	status := c.Config.RedirectStatusCode
	if status == 0 {
		status = locale.DefaultRedirectStatusCode
	}

	if target != "" {
		if u, ok := c.Planner.DomainRedirect(host, target, cur.FullPath()); ok {
			return u, status, true
		}
	}

	d := c.Planner.Plan(cur, target)
	if !d.Redirect() {
		return "", 0, false
	}
	return d.Path, d.StatusCode, true
}

// allow consults and updates the loop guard cookie.
func (c *LocaleConfig) allow(w http.ResponseWriter, r *http.Request, target string) bool {
	if c.Guard == nil {
		return true
	}
	last, _ := c.Guard.Get(r)
	g := redirect.NewLoopGuard(last)
	if !g.Allow(target) {
		c.Guard.Delete(w)
		return false
	}
	g.Mark(target)
	c.Guard.Set(w, g.Last())
	return true
}

func (c *LocaleConfig) clearGuard(w http.ResponseWriter, r *http.Request) {
	if c.Guard == nil {
		return
	}
	if _, err := c.Guard.Get(r); !errors.Is(err, cookie.ErrNotFound) {
		c.Guard.Delete(w)
	}
}

// GetLocale returns the locale resolved by the Locale middleware.
// Returns an empty string if the middleware is not used.
func GetLocale(ctx context.Context) string {
	if v, ok := ctx.Value(localeKey{}).(string); ok {
		return v
	}
	return ""
}

// GetDetection returns the detection result of the Locale middleware.
func GetDetection(ctx context.Context) (detect.Result, bool) {
	res, ok := ctx.Value(detectionKey{}).(detect.Result)
	return res, ok
}

// WithLocaleContext stores code as the resolved locale.
// Useful in tests and background jobs that reuse request handlers.
func WithLocaleContext(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, localeKey{}, code)
}

// LocaleExtractor returns a ContextExtractor for use with logger.WithExtractors.
// Adds "locale" to all log entries of requests with a resolved locale.
func LocaleExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := GetLocale(ctx); v != "" {
			return logger.Locale(v), true
		}
		return slog.Attr{}, false
	}
}
