package routes

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/localeroute/pkg/locale"
	"github.com/dmitrymomot/localeroute/pkg/logger"
	"github.com/dmitrymomot/localeroute/pkg/segment"
)

// RouteOptions narrows localization of a single route.
type RouteOptions struct {
	// Locales limits the locales the route is generated for.
	// Nil keeps every candidate locale.
	Locales []string
	// Paths maps a locale code to a custom path written in bracket grammar.
	Paths map[string]string
}

// OptionsResolver returns per-route options. Returning nil excludes the
// route from the localized tree.
type OptionsResolver func(node Node, locales []string) *RouteOptions

// PrefixContext is passed to a PrefixableFunc.
type PrefixContext struct {
	Locale          string
	Path            string
	Strategy        locale.Strategy
	IsDefaultLocale bool
	// Extra is set while generating the unprefixed default variant.
	Extra bool
	// Nested is set when the route is a child of a localized route.
	Nested bool
}

// PrefixableFunc decides whether a path gets a locale prefix.
type PrefixableFunc func(PrefixContext) bool

// DefaultPrefixable prefixes every path except unprefixed variants,
// relative child paths, any path under no_prefix, and the default locale
// under prefix_except_default.
func DefaultPrefixable(c PrefixContext) bool {
	switch {
	case c.Extra:
		return false
	case c.Nested && !strings.HasPrefix(c.Path, "/"):
		return false
	case c.Strategy == locale.NoPrefix:
		return false
	case c.IsDefaultLocale && c.Strategy == locale.PrefixExceptDefault:
		return false
	}
	return true
}

// Options configures Localize.
type Options struct {
	Strategy      locale.Strategy
	Locales       []string
	DefaultLocale string
	// DomainDefaults are treated as default locales when MultiDomainLocales is set.
	DomainDefaults []string

	RoutesNameSeparator          string
	DefaultLocaleRouteNameSuffix string
	TrailingSlash                bool
	IncludeUnprefixedFallback    bool
	MultiDomainLocales           bool
	DifferentDomains             bool
	// DomainLocales are checked for shared domains under no_prefix.
	DomainLocales locale.Locales

	OptionsResolver OptionsResolver
	Prefixable      PrefixableFunc
	Cache           *segment.Cache
	Logger          *slog.Logger
}

// OptionsFromConfig maps a locale configuration onto localization options.
func OptionsFromConfig(cfg locale.Config) Options {
	return Options{
		Strategy:                     cfg.Strategy,
		Locales:                      cfg.Locales.Codes(),
		DefaultLocale:                cfg.DefaultLocale,
		DomainDefaults:               cfg.Locales.DomainDefaults(),
		RoutesNameSeparator:          cfg.RoutesNameSeparator,
		DefaultLocaleRouteNameSuffix: cfg.DefaultLocaleRouteNameSuffix,
		TrailingSlash:                cfg.TrailingSlash,
		IncludeUnprefixedFallback:    cfg.IncludeUnprefixedFallback,
		MultiDomainLocales:           cfg.MultiDomainLocales,
		DifferentDomains:             cfg.DifferentDomains,
		DomainLocales:                cfg.Locales,
	}
}

func (o Options) withDefaults() Options {
	if o.Strategy == "" {
		o.Strategy = locale.DefaultStrategy
	}
	if o.RoutesNameSeparator == "" {
		o.RoutesNameSeparator = locale.DefaultRoutesNameSeparator
	}
	if o.DefaultLocaleRouteNameSuffix == "" {
		o.DefaultLocaleRouteNameSuffix = locale.DefaultLocaleRouteNameSuffix
	}
	if o.Prefixable == nil {
		o.Prefixable = DefaultPrefixable
	}
	if o.Logger == nil {
		o.Logger = logger.NewNope()
	}
	return o
}

func (o Options) isDefaultLocale(code string) bool {
	if code == o.DefaultLocale {
		return true
	}
	return o.MultiDomainLocales && slices.Contains(o.DomainDefaults, code)
}
