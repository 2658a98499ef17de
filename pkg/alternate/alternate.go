package alternate

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/localeroute/pkg/domainlocale"
	"github.com/dmitrymomot/localeroute/pkg/locale"
	"github.com/dmitrymomot/localeroute/pkg/logger"
	"github.com/dmitrymomot/localeroute/pkg/routes"
)

// XDefault is the hreflang of the default locale link.
const XDefault = "x-default"

// ErrNoRoute is returned when the current route cannot be resolved.
var ErrNoRoute = errors.New("alternate: current route not found")

// Link is a <link> tag.
type Link struct {
	Rel      string `json:"rel"`
	Hreflang string `json:"hreflang,omitempty"`
	Href     string `json:"href"`
}

// Current identifies the route links are generated for.
type Current struct {
	Name   string
	Params routes.Params
	Query  url.Values
}

type config struct {
	logger           *slog.Logger
	canonicalQueries []string
}

// Option configures link generation.
type Option func(*config)

// WithLogger sets the logger used for skipped locales.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCanonicalQueries keeps the given query parameters in canonical links.
func WithCanonicalQueries(keys ...string) Option {
	return func(c *config) {
		c.canonicalQueries = append(c.canonicalQueries, keys...)
	}
}

func newConfig(opts []Option) *config {
	c := &config{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Links returns alternate links of the current route for every locale it
// resolves in. Locales without a language tag are skipped with a warning.
// A language-only link ("en") is added for the first locale of each
// language, and an x-default link for the default locale.
func Links(table *routes.Table, cur Current, cfg locale.Config, opts ...Option) ([]Link, error) {
	c := newConfig(opts)
	base, err := currentBase(table, cur)
	if err != nil {
		return nil, err
	}

	var (
		links []Link
		seen  = make(map[string]struct{})
	)
	add := func(hreflang, href string) {
		if _, ok := seen[hreflang]; ok {
			return
		}
		seen[hreflang] = struct{}{}
		links = append(links, Link{Rel: "alternate", Hreflang: hreflang, Href: href})
	}

	// Full tags are added before language-only keys so a locale's own tag
	// is never claimed by another one.
	type entry struct {
		tag  language.Tag
		href string
	}
	var (
		entries     []entry
		defaultHref string
	)

	for _, l := range cfg.Locales {
		tag, err := l.LanguageTag()
		if err != nil {
			c.logger.Warn("locale has no valid language tag, skipping alternate link",
				logger.Locale(l.Code),
				logger.Error(err),
			)
			continue
		}
		path, err := table.ResolveLocale(base, l.Code, cur.Params)
		if err != nil {
			continue
		}
		href := origin(cfg, l) + path
		entries = append(entries, entry{tag: tag, href: href})

		if l.Code == cfg.DefaultLocale {
			defaultHref = href
		}
	}

	for _, e := range entries {
		add(e.tag.String(), e.href)
	}
	for _, e := range entries {
		b, conf := e.tag.Base()
		if conf == language.No {
			continue
		}
		add(b.String(), e.href)
	}
	if defaultHref != "" {
		add(XDefault, defaultHref)
	}

	return links, nil
}

// Canonical returns the canonical link of the current route in code.
// Only query parameters allowed by WithCanonicalQueries are kept.
func Canonical(table *routes.Table, cur Current, cfg locale.Config, code string, opts ...Option) (Link, error) {
	c := newConfig(opts)
	base, err := currentBase(table, cur)
	if err != nil {
		return Link{}, err
	}

	path, err := table.ResolveLocale(base, code, cur.Params)
	if err != nil {
		return Link{}, fmt.Errorf("alternate: canonical for %q: %w", code, err)
	}

	l, _ := cfg.Locales.Find(code)
	href := origin(cfg, l) + path

	if len(c.canonicalQueries) > 0 && len(cur.Query) > 0 {
		q := url.Values{}
		for k, v := range cur.Query {
			if slices.Contains(c.canonicalQueries, k) {
				q[k] = v
			}
		}
		if len(q) > 0 {
			href += "?" + q.Encode()
		}
	}

	return Link{Rel: "canonical", Href: href}, nil
}

func currentBase(table *routes.Table, cur Current) (string, error) {
	if cur.Name == "" {
		return "", ErrNoRoute
	}
	if _, ok := table.Lookup(cur.Name); !ok {
		return "", fmt.Errorf("%w: %q", ErrNoRoute, cur.Name)
	}
	return routes.BaseName(cur.Name, table.Options().RoutesNameSeparator), nil
}

// origin returns the scheme and host links of l are built on.
func origin(cfg locale.Config, l locale.Locale) string {
	if cfg.DifferentDomains {
		if o := domainlocale.Origin(l); o != "" {
			return o
		}
	}
	return strings.TrimRight(cfg.BaseURL, "/")
}
