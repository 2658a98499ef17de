package detect

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/dmitrymomot/localeroute/pkg/browserlocale"
	"github.com/dmitrymomot/localeroute/pkg/domainlocale"
	"github.com/dmitrymomot/localeroute/pkg/locale"
	"github.com/dmitrymomot/localeroute/pkg/logger"
)

// From tells where a detected locale came from.
type From string

const (
	FromCookie    From = "cookie"
	FromNavigator From = "navigator_or_header"
	FromFallback  From = "fallback"
	FromRoute     From = "route"
)

// Reason tells why browser language detection was skipped.
type Reason string

const (
	ReasonDisabled              Reason = "disabled"
	ReasonFirstAccessOnly       Reason = "first_access_only"
	ReasonNotRedirectOnRoot     Reason = "not_redirect_on_root"
	ReasonNotRedirectOnNoPrefix Reason = "not_redirect_on_no_prefix"
	ReasonIgnoreOnSSG           Reason = "detect_ignore_on_ssg"
)

// Context is the navigation state detection runs against.
type Context struct {
	// Path is the path of the target route, without query or hash.
	Path string
	// FirstAccess is set on the first navigation of a session.
	FirstAccess bool
	// Server is set when running during a server render.
	Server bool
	// SSG is set during static generation.
	SSG bool
	// FirstRender is set on the first render of the application.
	FirstRender bool
	// Cookie is the stored locale cookie value, if any.
	Cookie string
	// BrowserLocales are Accept-Language or navigator tags, most preferred first.
	BrowserLocales []string
	Host           string
	// RouteLocale is the locale implied by the current route.
	RouteLocale string
}

// Result is the outcome of a detection. Error is set when browser language
// detection was skipped; Locale may still be set by Detect.
type Result struct {
	Locale string
	From   From
	Error  Reason
}

// Found reports whether a locale was detected.
func (r Result) Found() bool {
	return r.Locale != ""
}

// Detector picks the locale of a navigation. It is immutable after New.
type Detector struct {
	cfg      locale.Config
	finder   *browserlocale.Finder
	domains  *domainlocale.Resolver
	locales  []browserlocale.Locale
	prefixRe *regexp.Regexp
	logger   *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithMatcher replaces the browser locale finder.
func WithMatcher(f *browserlocale.Finder) Option {
	return func(d *Detector) {
		if f != nil {
			d.finder = f
		}
	}
}

// WithDomainResolver replaces the host to locale resolver.
func WithDomainResolver(r *domainlocale.Resolver) Option {
	return func(d *Detector) {
		if r != nil {
			d.domains = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a Detector for cfg.
func New(cfg locale.Config, opts ...Option) *Detector {
	d := &Detector{
		cfg:      cfg,
		finder:   browserlocale.New(),
		logger:   logger.NewNope(),
		prefixRe: LocalePrefixRegexp(cfg.Locales.Codes()),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.domains == nil {
		d.domains = domainlocale.NewResolver(cfg.Locales,
			domainlocale.WithLogger(d.logger),
			domainlocale.WithStrategy(cfg.Strategy),
		)
	}

	d.locales = make([]browserlocale.Locale, 0, len(cfg.Locales))
	for _, l := range cfg.Locales {
		d.locales = append(d.locales, browserlocale.Locale{Code: l.Code, Language: l.Language})
	}
	return d
}

// LocalePrefixRegexp matches paths whose first segment is one of codes.
func LocalePrefixRegexp(codes []string) *regexp.Regexp {
	if len(codes) == 0 {
		return regexp.MustCompile(`[^\s\S]`)
	}
	quoted := make([]string, len(codes))
	for i, c := range codes {
		quoted[i] = regexp.QuoteMeta(c)
	}
	return regexp.MustCompile(`^/(` + strings.Join(quoted, "|") + `)(?:/|$)`)
}

func (d *Detector) domainsEnabled() bool {
	return d.cfg.DifferentDomains || d.cfg.MultiDomainLocales
}

// DetectBrowserLanguage runs browser language detection.
//
// It first applies the skip rules, returning an empty locale with the
// matching Reason. Otherwise the locale comes from the cookie, then from the
// host (different domains) or the browser locales, then from the configured
// fallback locale.
func (d *Detector) DetectBrowserLanguage(ctx Context) Result {
	opts := d.cfg.DetectBrowserLanguage
	strategy := d.cfg.Strategy

	if !opts.Enabled {
		return Result{Error: ReasonDisabled}
	}
	if ctx.SSG && strategy == locale.NoPrefix && ctx.Server && ctx.FirstRender {
		return Result{Error: ReasonIgnoreOnSSG}
	}
	if !ctx.FirstAccess && strategy != locale.NoPrefix {
		return Result{Error: ReasonFirstAccessOnly}
	}
	if strategy != locale.NoPrefix {
		switch {
		case opts.RedirectOn == locale.RedirectOnRoot && ctx.Path != "/":
			return Result{Error: ReasonNotRedirectOnRoot}
		case opts.RedirectOn == locale.RedirectOnNoPrefix && !opts.AlwaysRedirect && d.prefixRe.MatchString(ctx.Path):
			return Result{Error: ReasonNotRedirectOnNoPrefix}
		}
	}

	if opts.UseCookie {
		if code, ok := d.CookieLocale(ctx.Cookie); ok {
			return Result{Locale: code, From: FromCookie}
		}
	}

	var matched string
	if d.domainsEnabled() && !ctx.SSG {
		matched, _ = d.domains.Match(ctx.Host, ctx.RouteLocale)
	} else {
		matched = d.finder.Find(d.locales, ctx.BrowserLocales)
	}
	if matched != "" {
		return Result{Locale: matched, From: FromNavigator}
	}

	if opts.FallbackLocale != "" {
		return Result{Locale: opts.FallbackLocale, From: FromFallback}
	}

	return Result{}
}

// Detect returns the locale a navigation should use.
//
// Browser language detection wins when it yields a locale. Otherwise the
// locale comes from the host (different domains) or the current route,
// then the default locale. A skip reason is kept on the result.
// Detection deferred to hydration during static generation is returned as is.
func (d *Detector) Detect(ctx Context) Result {
	res := d.DetectBrowserLanguage(ctx)
	if res.Error == ReasonIgnoreOnSSG || res.Found() {
		return res
	}

	if d.domainsEnabled() {
		if code, ok := d.domains.Match(ctx.Host, ctx.RouteLocale); ok {
			return Result{Locale: code, From: FromRoute, Error: res.Error}
		}
	}
	if d.cfg.Strategy != locale.NoPrefix && d.cfg.Locales.Has(ctx.RouteLocale) {
		return Result{Locale: ctx.RouteLocale, From: FromRoute, Error: res.Error}
	}

	return Result{Locale: d.cfg.DefaultLocale, From: FromFallback, Error: res.Error}
}

// CookieLocale validates a stored cookie value against the configured codes.
func (d *Detector) CookieLocale(value string) (string, bool) {
	if value == "" {
		return "", false
	}
	if !d.cfg.Locales.Has(value) {
		d.logger.Warn("ignoring unknown locale in cookie", logger.Locale(value))
		return "", false
	}
	return value, true
}

// PathLocale returns the locale code that prefixes path, if any.
func (d *Detector) PathLocale(path string) string {
	if m := d.prefixRe.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	return ""
}
