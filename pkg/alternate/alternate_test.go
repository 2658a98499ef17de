package alternate_test

import (
	"bytes"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localeroute/pkg/alternate"
	"github.com/dmitrymomot/localeroute/pkg/locale"
	"github.com/dmitrymomot/localeroute/pkg/routes"
)

func setup(t *testing.T, cfg locale.Config) *routes.Table {
	t.Helper()

	nodes := []routes.Node{
		{Name: "about", Path: "/about"},
		{Name: "users", Path: "/users", Children: []routes.Node{
			{Name: "users-id", Path: ":id()"},
		}},
	}
	opts := routes.OptionsFromConfig(cfg)
	localized, err := routes.Localize(nodes, opts)
	require.NoError(t, err)
	table, err := routes.NewTable(localized, opts)
	require.NoError(t, err)
	return table
}

func testConfig() locale.Config {
	cfg := locale.Default()
	cfg.DefaultLocale = "en"
	cfg.BaseURL = "https://example.com/"
	cfg.Locales = locale.Locales{
		{Code: "en", Language: "en-us"},
		{Code: "fr", Language: "fr-FR"},
		{Code: "ca", Language: "fr-CA"},
		{Code: "de"},
	}
	return cfg
}

func TestLinks(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	table := setup(t, cfg)

	var buf bytes.Buffer
	links, err := alternate.Links(table, alternate.Current{Name: "about___fr"}, cfg,
		alternate.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)
	require.NoError(t, err)
	require.Equal(t, []alternate.Link{
		{Rel: "alternate", Hreflang: "en-US", Href: "https://example.com/about"},
		{Rel: "alternate", Hreflang: "fr-FR", Href: "https://example.com/fr/about"},
		{Rel: "alternate", Hreflang: "fr-CA", Href: "https://example.com/ca/about"},
		{Rel: "alternate", Hreflang: "en", Href: "https://example.com/about"},
		{Rel: "alternate", Hreflang: "fr", Href: "https://example.com/fr/about"},
		{Rel: "alternate", Hreflang: alternate.XDefault, Href: "https://example.com/about"},
	}, links)

	require.Contains(t, buf.String(), "locale=de")
	require.Contains(t, buf.String(), "level=WARN")
}

func TestLinksDifferentDomains(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Strategy = locale.NoPrefix
	cfg.DifferentDomains = true
	cfg.Locales = locale.Locales{
		{Code: "en", Language: "en", Domain: "example.com"},
		{Code: "fr", Language: "fr", Domain: "http://example.fr"},
	}
	table := setup(t, cfg)

	links, err := alternate.Links(table, alternate.Current{Name: "users-id___en", Params: routes.Params{"id": "7"}}, cfg)
	require.NoError(t, err)
	require.Equal(t, []alternate.Link{
		{Rel: "alternate", Hreflang: "en", Href: "https://example.com/users/7"},
		{Rel: "alternate", Hreflang: "fr", Href: "http://example.fr/users/7"},
		{Rel: "alternate", Hreflang: alternate.XDefault, Href: "https://example.com/users/7"},
	}, links)
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	table := setup(t, cfg)
	cur := alternate.Current{
		Name:   "users-id___en",
		Params: routes.Params{"id": "1"},
		Query:  url.Values{"page": {"2"}, "utm_source": {"x"}},
	}

	link, err := alternate.Canonical(table, cur, cfg, "fr")
	require.NoError(t, err)
	require.Equal(t, alternate.Link{Rel: "canonical", Href: "https://example.com/fr/users/1"}, link)

	link, err = alternate.Canonical(table, cur, cfg, "fr", alternate.WithCanonicalQueries("page"))
	require.NoError(t, err)
	require.Equal(t, "https://example.com/fr/users/1?page=2", link.Href)

	_, err = alternate.Canonical(table, cur, cfg, "xx")
	require.ErrorIs(t, err, routes.ErrRouteNotFound)
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	table := setup(t, cfg)

	_, err := alternate.Links(table, alternate.Current{}, cfg)
	require.ErrorIs(t, err, alternate.ErrNoRoute)

	_, err = alternate.Links(table, alternate.Current{Name: "missing___en"}, cfg)
	require.ErrorIs(t, err, alternate.ErrNoRoute)
}
