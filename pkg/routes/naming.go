package routes

import (
	"strings"

	"github.com/dmitrymomot/localeroute/pkg/locale"
)

// DomainDefaultSuffix names the unprefixed clones emitted for multi-domain
// locales. It does not follow the configured separator or suffix.
const DomainDefaultSuffix = "___default"

// LocaleRouteName returns the name of the base route localized to code.
// Under prefix_and_default the default locale resolves to its unprefixed
// variant, which carries the default suffix.
//
//	LocaleRouteName("about", "fr", opts) -> "about___fr"
//	LocaleRouteName("about", "en", opts) -> "about___en___default" (en default, prefix_and_default)
func LocaleRouteName(base, code string, opts Options) string {
	o := opts.withDefaults()
	name := base + o.RoutesNameSeparator + code
	if o.Strategy == locale.PrefixAndDefault && code == o.DefaultLocale {
		name += o.RoutesNameSeparator + o.DefaultLocaleRouteNameSuffix
	}
	return name
}

// BaseName strips the locale part from a localized route name.
//
//	BaseName("blog-slug___fr", "___")         -> "blog-slug"
//	BaseName("index___en___default", "___")   -> "index"
func BaseName(name, sep string) string {
	if sep == "" {
		return name
	}
	if i := strings.Index(name, sep); i >= 0 {
		return name[:i]
	}
	return name
}

// LocaleFromName returns the locale code encoded in a localized route name,
// or an empty string when the name carries none.
func LocaleFromName(name, sep string) string {
	if sep == "" {
		return ""
	}
	_, rest, ok := strings.Cut(name, sep)
	if !ok {
		return ""
	}
	code, _, _ := strings.Cut(rest, sep)
	return code
}

// IsDefaultVariant reports whether name carries the default locale suffix
// or the multi-domain clone suffix.
func IsDefaultVariant(name, sep, suffix string) bool {
	if strings.HasSuffix(name, DomainDefaultSuffix) {
		return true
	}
	return sep != "" && suffix != "" && strings.HasSuffix(name, sep+suffix)
}
