package locale

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultRoutesNameSeparator          = "___"
	DefaultLocaleRouteNameSuffix        = "default"
	DefaultCookieKey                    = "i18n_redirected"
	DefaultRedirectStatusCode           = http.StatusFound
	DefaultEnvPrefix                    = "I18N_"
	defaultRedirectOn        RedirectOn = RedirectOnRoot
)

// DetectBrowserLanguage configures locale detection on navigation.
type DetectBrowserLanguage struct {
	Enabled           bool       `yaml:"enabled" json:"enabled" env:"DETECT_ENABLED"`
	UseCookie         bool       `yaml:"useCookie" json:"useCookie" env:"DETECT_USE_COOKIE"`
	CookieKey         string     `yaml:"cookieKey" json:"cookieKey" env:"DETECT_COOKIE_KEY"`
	CookieDomain      string     `yaml:"cookieDomain,omitempty" json:"cookieDomain,omitempty" env:"DETECT_COOKIE_DOMAIN"`
	CookieSecure      bool       `yaml:"cookieSecure,omitempty" json:"cookieSecure,omitempty" env:"DETECT_COOKIE_SECURE"`
	CookieCrossOrigin bool       `yaml:"cookieCrossOrigin,omitempty" json:"cookieCrossOrigin,omitempty" env:"DETECT_COOKIE_CROSS_ORIGIN"`
	RedirectOn        RedirectOn `yaml:"redirectOn" json:"redirectOn" env:"DETECT_REDIRECT_ON"`
	AlwaysRedirect    bool       `yaml:"alwaysRedirect,omitempty" json:"alwaysRedirect,omitempty" env:"DETECT_ALWAYS_REDIRECT"`
	FallbackLocale    string     `yaml:"fallbackLocale,omitempty" json:"fallbackLocale,omitempty" env:"DETECT_FALLBACK_LOCALE"`
}

// RootRedirect replaces the normal redirect target for requests to "/".
// It is disabled while Path is empty.
type RootRedirect struct {
	Path       string `yaml:"path" json:"path" env:"ROOT_REDIRECT_PATH"`
	StatusCode int    `yaml:"statusCode,omitempty" json:"statusCode,omitempty" env:"ROOT_REDIRECT_STATUS"`
}

// Enabled reports whether a root redirect is configured.
func (r RootRedirect) Enabled() bool {
	return r.Path != ""
}

// Config is the locale routing configuration. It is loaded once at startup
// and treated as read-only afterwards.
type Config struct {
	Strategy      Strategy `yaml:"strategy" json:"strategy" env:"STRATEGY"`
	DefaultLocale string   `yaml:"defaultLocale" json:"defaultLocale" env:"DEFAULT_LOCALE"`
	Locales       Locales  `yaml:"locales" json:"locales"`

	RoutesNameSeparator          string `yaml:"routesNameSeparator,omitempty" json:"routesNameSeparator,omitempty" env:"ROUTES_NAME_SEPARATOR"`
	DefaultLocaleRouteNameSuffix string `yaml:"defaultLocaleRouteNameSuffix,omitempty" json:"defaultLocaleRouteNameSuffix,omitempty" env:"DEFAULT_LOCALE_ROUTE_NAME_SUFFIX"`
	TrailingSlash                bool   `yaml:"trailingSlash,omitempty" json:"trailingSlash,omitempty" env:"TRAILING_SLASH"`
	IncludeUnprefixedFallback    bool   `yaml:"includeUnprefixedFallback,omitempty" json:"includeUnprefixedFallback,omitempty" env:"INCLUDE_UNPREFIXED_FALLBACK"`
	MultiDomainLocales           bool   `yaml:"multiDomainLocales,omitempty" json:"multiDomainLocales,omitempty" env:"MULTI_DOMAIN_LOCALES"`
	DifferentDomains             bool   `yaml:"differentDomains,omitempty" json:"differentDomains,omitempty" env:"DIFFERENT_DOMAINS"`

	DetectBrowserLanguage DetectBrowserLanguage `yaml:"detectBrowserLanguage" json:"detectBrowserLanguage"`

	RedirectStatusCode int          `yaml:"redirectStatusCode,omitempty" json:"redirectStatusCode,omitempty" env:"REDIRECT_STATUS_CODE"`
	RootRedirect       RootRedirect `yaml:"rootRedirect,omitempty" json:"rootRedirect,omitempty"`

	// BaseURL is used to build absolute alternate links.
	BaseURL string `yaml:"baseUrl,omitempty" json:"baseUrl,omitempty" env:"BASE_URL"`
}

// Default returns a configuration with every default applied and no locales.
func Default() Config {
	return Config{
		Strategy:                     DefaultStrategy,
		RoutesNameSeparator:          DefaultRoutesNameSeparator,
		DefaultLocaleRouteNameSuffix: DefaultLocaleRouteNameSuffix,
		RedirectStatusCode:           DefaultRedirectStatusCode,
		DetectBrowserLanguage: DetectBrowserLanguage{
			Enabled:    true,
			UseCookie:  true,
			CookieKey:  DefaultCookieKey,
			RedirectOn: defaultRedirectOn,
		},
	}
}

// Load decodes a YAML configuration on top of Default.
// Unknown fields are rejected.
func Load(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("locale: decode config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("locale: open config %q: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// LoadEnv overlays environment variables prefixed with DefaultEnvPrefix
// (I18N_STRATEGY, I18N_DEFAULT_LOCALE, I18N_DETECT_USE_COOKIE, ...).
// Variables that are not set leave the current values untouched.
func LoadEnv(cfg *Config) error {
	return LoadEnvWithPrefix(cfg, DefaultEnvPrefix)
}

// LoadEnvWithPrefix is LoadEnv with a custom variable prefix.
func LoadEnvWithPrefix(cfg *Config, prefix string) error {
	// Locales are only configured from files.
	locales := cfg.Locales
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("locale: parse env: %w", err)
	}
	cfg.Locales = locales
	cfg.applyDefaults()
	return nil
}

func (c *Config) applyDefaults() {
	if c.Strategy == "" {
		c.Strategy = DefaultStrategy
	}
	if c.RoutesNameSeparator == "" {
		c.RoutesNameSeparator = DefaultRoutesNameSeparator
	}
	if c.DefaultLocaleRouteNameSuffix == "" {
		c.DefaultLocaleRouteNameSuffix = DefaultLocaleRouteNameSuffix
	}
	if c.RedirectStatusCode == 0 {
		c.RedirectStatusCode = DefaultRedirectStatusCode
	}
	if c.RootRedirect.Enabled() && c.RootRedirect.StatusCode == 0 {
		c.RootRedirect.StatusCode = DefaultRedirectStatusCode
	}
	if c.DetectBrowserLanguage.CookieKey == "" {
		c.DetectBrowserLanguage.CookieKey = DefaultCookieKey
	}
	if c.DetectBrowserLanguage.RedirectOn == "" {
		c.DetectBrowserLanguage.RedirectOn = defaultRedirectOn
	}
}

// Validate checks the configuration and returns all problems joined.
func (c Config) Validate() error {
	var errs []error

	if len(c.Locales) == 0 {
		errs = append(errs, ErrNoLocales)
	}

	seen := make(map[string]struct{}, len(c.Locales))
	for i, l := range c.Locales {
		if l.Code == "" {
			errs = append(errs, fmt.Errorf("%w: locales[%d]", ErrEmptyCode, i))
			continue
		}
		if _, ok := seen[l.Code]; ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateCode, l.Code))
		}
		seen[l.Code] = struct{}{}
	}

	if c.DefaultLocale != "" && !c.Locales.Has(c.DefaultLocale) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownDefaultLocale, c.DefaultLocale))
	}
	if !c.Strategy.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidStrategy, c.Strategy))
	}

	d := c.DetectBrowserLanguage
	if d.Enabled && !d.RedirectOn.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidRedirectOn, d.RedirectOn))
	}
	if d.FallbackLocale != "" && !c.Locales.Has(d.FallbackLocale) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownFallback, d.FallbackLocale))
	}

	if !isRedirectStatus(c.RedirectStatusCode) {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidStatusCode, c.RedirectStatusCode))
	}
	if c.RootRedirect.Enabled() && c.RootRedirect.StatusCode != 0 && !isRedirectStatus(c.RootRedirect.StatusCode) {
		errs = append(errs, fmt.Errorf("%w: rootRedirect %d", ErrInvalidStatusCode, c.RootRedirect.StatusCode))
	}

	return errors.Join(errs...)
}

// ValidateDomains reports locales sharing a domain while strategy is
// no_prefix with different domains; such a setup cannot be resolved.
func (c Config) ValidateDomains() error {
	if c.Strategy != NoPrefix || !c.DifferentDomains {
		return nil
	}
	if dups := c.Locales.DuplicateDomains(); len(dups) > 0 {
		return fmt.Errorf("%w: %v", ErrDuplicateDomain, dups)
	}
	return nil
}

// DefaultLocales returns the locales treated as default when routes are
// generated: the configured default locale, plus domain defaults when
// MultiDomainLocales is on.
func (c Config) DefaultLocales() []string {
	var out []string
	if c.DefaultLocale != "" {
		out = append(out, c.DefaultLocale)
	}
	if c.MultiDomainLocales {
		for _, code := range c.Locales.DomainDefaults() {
			if code != c.DefaultLocale {
				out = append(out, code)
			}
		}
	}
	return out
}

func isRedirectStatus(code int) bool {
	return code >= 300 && code < 400
}
