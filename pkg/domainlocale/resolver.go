package domainlocale

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/localeroute/pkg/locale"
	"github.com/dmitrymomot/localeroute/pkg/logger"
)

// Match returns the code of the locale served on host.
//
// When several locales share the host, the one equal to pathLocale wins,
// then the one flagged as default for the host, then the first declared.
func Match(locales []locale.Locale, host, pathLocale string) (string, bool) {
	code, _, ok := match(locales, host, pathLocale)
	return code, ok
}

// match additionally reports whether the result came from the
// first-declared fallback.
func match(locales []locale.Locale, host, pathLocale string) (code string, ambiguous, ok bool) {
	if host == "" {
		return "", false, false
	}

	var matches []locale.Locale
	for _, l := range locales {
		if servesHost(l, host) {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return "", false, false
	case 1:
		return matches[0].Code, false, true
	}

	if pathLocale != "" {
		for _, l := range matches {
			if l.Code == pathLocale {
				return l.Code, false, true
			}
		}
	}

	for _, l := range matches {
		if isDefaultFor(l, host) {
			return l.Code, false, true
		}
	}

	return matches[0].Code, true, true
}

func servesHost(l locale.Locale, host string) bool {
	if hostMatches(l.Domain, host) {
		return true
	}
	return slices.ContainsFunc(l.Domains, func(d string) bool {
		return hostMatches(d, host)
	})
}

func isDefaultFor(l locale.Locale, host string) bool {
	if l.DomainDefault {
		return true
	}
	return slices.ContainsFunc(l.DefaultForDomains, func(d string) bool {
		return hostMatches(d, host)
	})
}

// DomainOf returns the primary domain of a locale: Domain, or the first
// entry of Domains. The scheme is stripped.
func DomainOf(l locale.Locale) string {
	if l.Domain != "" {
		return NormalizeDomain(l.Domain)
	}
	if len(l.Domains) > 0 {
		return NormalizeDomain(l.Domains[0])
	}
	return ""
}

// Origin returns the scheme and primary domain of a locale, such as
// "https://fr.example.com". The scheme is https unless the configured domain
// says http. Returns "" when the locale has no domain.
func Origin(l locale.Locale) string {
	d := DomainOf(l)
	if d == "" {
		return ""
	}
	raw := l.Domain
	if raw == "" {
		raw = l.Domains[0]
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), "http://") {
		return "http://" + d
	}
	return "https://" + d
}

// Resolver matches hosts against a fixed set of locales and reports
// ambiguous configurations.
type Resolver struct {
	locales  []locale.Locale
	strategy locale.Strategy
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for configuration warnings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithStrategy sets the routing strategy; it only affects warnings.
func WithStrategy(s locale.Strategy) Option {
	return func(r *Resolver) {
		r.strategy = s
	}
}

// NewResolver creates a Resolver for the given locales.
func NewResolver(locales []locale.Locale, opts ...Option) *Resolver {
	r := &Resolver{
		locales:  locales,
		strategy: locale.DefaultStrategy,
		logger:   logger.NewNope(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Match resolves host like the package-level Match and logs a warning when
// the first-declared fallback had to be used.
func (r *Resolver) Match(host, pathLocale string) (string, bool) {
	code, ambiguous, ok := match(r.locales, host, pathLocale)
	if ambiguous {
		msg := "several locales share a domain and none is its default; using the first one"
		if r.strategy == locale.NoPrefix {
			msg = "several locales share a domain with no_prefix strategy; this is likely a misconfiguration"
		}
		r.logger.Warn(msg,
			slog.String("host", host),
			slog.String("locale", code),
		)
	}
	return code, ok
}

// Locales returns the configured locales.
func (r *Resolver) Locales() []locale.Locale {
	return r.locales
}
