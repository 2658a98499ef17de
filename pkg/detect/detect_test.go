package detect_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localeroute/pkg/browserlocale"
	"github.com/dmitrymomot/localeroute/pkg/detect"
	"github.com/dmitrymomot/localeroute/pkg/locale"
)

func testConfig() locale.Config {
	cfg := locale.Default()
	cfg.DefaultLocale = "en"
	cfg.Locales = locale.Locales{
		{Code: "en", Language: "en-US", Domain: "en.test"},
		{Code: "fr", Language: "fr-FR", Domain: "https://fr.test"},
		{Code: "de"},
	}
	return cfg
}

func TestDetectBrowserLanguageSkips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    func(*locale.Config)
		ctx    detect.Context
		reason detect.Reason
	}{
		{
			name:   "disabled",
			cfg:    func(c *locale.Config) { c.DetectBrowserLanguage.Enabled = false },
			ctx:    detect.Context{Path: "/", FirstAccess: true},
			reason: detect.ReasonDisabled,
		},
		{
			name:   "static generation with no_prefix",
			cfg:    func(c *locale.Config) { c.Strategy = locale.NoPrefix },
			ctx:    detect.Context{Path: "/", FirstAccess: true, SSG: true, Server: true, FirstRender: true},
			reason: detect.ReasonIgnoreOnSSG,
		},
		{
			name:   "not first access",
			ctx:    detect.Context{Path: "/"},
			reason: detect.ReasonFirstAccessOnly,
		},
		{
			name:   "redirect on root only",
			ctx:    detect.Context{Path: "/about", FirstAccess: true},
			reason: detect.ReasonNotRedirectOnRoot,
		},
		{
			name:   "path already prefixed",
			cfg:    func(c *locale.Config) { c.DetectBrowserLanguage.RedirectOn = locale.RedirectOnNoPrefix },
			ctx:    detect.Context{Path: "/fr/about", FirstAccess: true},
			reason: detect.ReasonNotRedirectOnNoPrefix,
		},
		{
			name:   "bare locale path",
			cfg:    func(c *locale.Config) { c.DetectBrowserLanguage.RedirectOn = locale.RedirectOnNoPrefix },
			ctx:    detect.Context{Path: "/de", FirstAccess: true},
			reason: detect.ReasonNotRedirectOnNoPrefix,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			ctx := tt.ctx
			ctx.BrowserLocales = []string{"fr"}
			ctx.Cookie = "fr"

			res := detect.New(cfg).DetectBrowserLanguage(ctx)
			require.Equal(t, tt.reason, res.Error)
			require.Empty(t, res.Locale)
			require.False(t, res.Found())
		})
	}
}

func TestDetectBrowserLanguageSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    func(*locale.Config)
		ctx    detect.Context
		locale string
		from   detect.From
	}{
		{
			name:   "cookie",
			ctx:    detect.Context{Cookie: "de", BrowserLocales: []string{"fr"}},
			locale: "de",
			from:   detect.FromCookie,
		},
		{
			name:   "unknown cookie is ignored",
			ctx:    detect.Context{Cookie: "pl", BrowserLocales: []string{"fr-CA", "en"}},
			locale: "fr",
			from:   detect.FromNavigator,
		},
		{
			name:   "cookie disabled",
			cfg:    func(c *locale.Config) { c.DetectBrowserLanguage.UseCookie = false },
			ctx:    detect.Context{Cookie: "de", BrowserLocales: []string{"en-US"}},
			locale: "en",
			from:   detect.FromNavigator,
		},
		{
			name:   "language without region",
			ctx:    detect.Context{BrowserLocales: []string{"de-AT"}},
			locale: "de",
			from:   detect.FromNavigator,
		},
		{
			name:   "domain",
			cfg:    func(c *locale.Config) { c.DifferentDomains = true },
			ctx:    detect.Context{Host: "fr.test", BrowserLocales: []string{"en"}},
			locale: "fr",
			from:   detect.FromNavigator,
		},
		{
			name:   "fallback locale",
			cfg:    func(c *locale.Config) { c.DetectBrowserLanguage.FallbackLocale = "de" },
			ctx:    detect.Context{BrowserLocales: []string{"ja"}},
			locale: "de",
			from:   detect.FromFallback,
		},
		{
			name: "nothing matches",
			ctx:  detect.Context{BrowserLocales: []string{"ja"}},
		},
		{
			name:   "always redirect ignores prefix",
			cfg:    func(c *locale.Config) { c.DetectBrowserLanguage.RedirectOn = locale.RedirectOnNoPrefix; c.DetectBrowserLanguage.AlwaysRedirect = true },
			ctx:    detect.Context{Path: "/fr/about", BrowserLocales: []string{"en"}},
			locale: "en",
			from:   detect.FromNavigator,
		},
		{
			name:   "no_prefix detects on every navigation",
			cfg:    func(c *locale.Config) { c.Strategy = locale.NoPrefix },
			ctx:    detect.Context{Path: "/about", BrowserLocales: []string{"fr"}, FirstAccess: false},
			locale: "fr",
			from:   detect.FromNavigator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			ctx := tt.ctx
			if ctx.Path == "" {
				ctx.Path = "/"
				ctx.FirstAccess = true
			} else if cfg.Strategy != locale.NoPrefix {
				ctx.FirstAccess = true
			}

			res := detect.New(cfg).DetectBrowserLanguage(ctx)
			require.Empty(t, res.Error)
			require.Equal(t, tt.locale, res.Locale)
			require.Equal(t, tt.from, res.From)
		})
	}
}

func TestDetectFallsBack(t *testing.T) {
	t.Parallel()

	t.Run("route locale", func(t *testing.T) {
		t.Parallel()
		res := detect.New(testConfig()).Detect(detect.Context{Path: "/fr/about", RouteLocale: "fr"})
		require.Equal(t, detect.Result{Locale: "fr", From: detect.FromRoute, Error: detect.ReasonFirstAccessOnly}, res)
	})

	t.Run("default locale", func(t *testing.T) {
		t.Parallel()
		res := detect.New(testConfig()).Detect(detect.Context{Path: "/about"})
		require.Equal(t, detect.Result{Locale: "en", From: detect.FromFallback, Error: detect.ReasonFirstAccessOnly}, res)
	})

	t.Run("domain", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.DifferentDomains = true
		res := detect.New(cfg).Detect(detect.Context{Path: "/about", Host: "fr.test"})
		require.Equal(t, "fr", res.Locale)
		require.Equal(t, detect.FromRoute, res.From)
	})

	t.Run("detected locale wins", func(t *testing.T) {
		t.Parallel()
		res := detect.New(testConfig()).Detect(detect.Context{Path: "/", FirstAccess: true, BrowserLocales: []string{"de"}, RouteLocale: "en"})
		require.Equal(t, detect.Result{Locale: "de", From: detect.FromNavigator}, res)
	})

	t.Run("deferred during static generation", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.Strategy = locale.NoPrefix
		res := detect.New(cfg).Detect(detect.Context{Path: "/", SSG: true, Server: true, FirstRender: true})
		require.Equal(t, detect.Result{Error: detect.ReasonIgnoreOnSSG}, res)
	})
}

func TestDetectorOptions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	finder := browserlocale.New(browserlocale.WithMatcher(func([]browserlocale.Locale, []string) []browserlocale.Candidate {
		return []browserlocale.Candidate{{Code: "de", Score: 1}}
	}))
	d := detect.New(testConfig(),
		detect.WithMatcher(finder),
		detect.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)

	res := d.DetectBrowserLanguage(detect.Context{Path: "/", FirstAccess: true, Cookie: "xx", BrowserLocales: []string{"en"}})
	require.Equal(t, "de", res.Locale)
	require.Contains(t, buf.String(), "locale=xx")

	require.Equal(t, "fr", d.PathLocale("/fr/about"))
	require.Equal(t, "fr", d.PathLocale("/fr"))
	require.Empty(t, d.PathLocale("/french"))
	require.Empty(t, d.PathLocale("/about"))
}

func TestLocalePrefixRegexp(t *testing.T) {
	t.Parallel()

	re := detect.LocalePrefixRegexp([]string{"en", "pt-BR"})
	require.True(t, re.MatchString("/pt-BR/x"))
	require.False(t, re.MatchString("/pt-BRx"))

	require.False(t, detect.LocalePrefixRegexp(nil).MatchString("/"))
}
