package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localeroute/middlewares"
	"github.com/dmitrymomot/localeroute/pkg/locale"
	"github.com/dmitrymomot/localeroute/pkg/routes"
)

func localeConfig() locale.Config {
	cfg := locale.Default()
	cfg.Strategy = locale.PrefixExceptDefault
	cfg.DefaultLocale = "en"
	cfg.Locales = locale.Locales{
		{Code: "en", Language: "en-US"},
		{Code: "fr", Language: "fr-FR"},
	}
	return cfg
}

func localeTable(t *testing.T, cfg locale.Config) *routes.Table {
	t.Helper()

	nodes := []routes.Node{
		{Name: "index", Path: "/"},
		{Name: "about", Path: "/about"},
	}
	opts := routes.OptionsFromConfig(cfg)
	localized, err := routes.Localize(nodes, opts)
	require.NoError(t, err)
	table, err := routes.NewTable(localized, opts)
	require.NoError(t, err)
	return table
}

type localeResult struct {
	rec     *httptest.ResponseRecorder
	called  bool
	locale  string
	cookies map[string]*http.Cookie
}

func serveLocale(t *testing.T, cfg locale.Config, req *http.Request, opts ...middlewares.LocaleOption) localeResult {
	t.Helper()

	var res localeResult
	mw := middlewares.Locale(localeTable(t, cfg), cfg, opts...)
	h := mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		res.called = true
		res.locale = middlewares.GetLocale(r.Context())
	}))

	res.rec = httptest.NewRecorder()
	h.ServeHTTP(res.rec, req)

	// Last Set-Cookie per name wins, as in a browser.
	res.cookies = make(map[string]*http.Cookie)
	for _, c := range res.rec.Result().Cookies() {
		res.cookies[c.Name] = c
	}
	return res
}

func TestLocaleRedirectsFirstAccess(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.5")

	res := serveLocale(t, localeConfig(), req)

	require.False(t, res.called)
	require.Equal(t, http.StatusFound, res.rec.Code)
	require.Equal(t, "/fr", res.rec.Header().Get("Location"))
	require.Equal(t, "fr", res.cookies[locale.DefaultCookieKey].Value)
	require.Equal(t, "/fr", res.cookies[middlewares.DefaultLoopGuardCookie].Value)
	require.Contains(t, res.rec.Header().Values("Vary"), "Accept-Language")
}

func TestLocaleHTMXRedirect(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "fr")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Boosted", "true")

	res := serveLocale(t, localeConfig(), req)

	require.False(t, res.called)
	require.Equal(t, http.StatusOK, res.rec.Code)
	require.Equal(t, "/fr", res.rec.Header().Get("HX-Redirect"))
}

func TestLocaleUsesRouteLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		cookie string
		want   string
	}{
		{"prefixed route", "/fr/about", "", "fr"},
		{"default route", "/about", "fr", "en"},
		{"root with cookie", "/", "fr", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Accept-Language", "fr")
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: locale.DefaultCookieKey, Value: tt.cookie})
			}

			res := serveLocale(t, localeConfig(), req)

			require.True(t, res.called)
			require.Equal(t, http.StatusOK, res.rec.Code)
			require.Equal(t, tt.want, res.locale)
			require.Equal(t, tt.want, res.cookies[locale.DefaultCookieKey].Value)
		})
	}
}

func TestLocaleResetsUnknownCookie(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.AddCookie(&http.Cookie{Name: locale.DefaultCookieKey, Value: "xx"})

	res := serveLocale(t, localeConfig(), req)

	require.True(t, res.called)
	require.Equal(t, "en", res.locale)
	require.Equal(t, "en", res.cookies[locale.DefaultCookieKey].Value)
}

func TestLocaleUnknownCookieDetectsAgain(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "fr")
	req.AddCookie(&http.Cookie{Name: locale.DefaultCookieKey, Value: "xx"})

	res := serveLocale(t, localeConfig(), req)

	require.False(t, res.called)
	require.Equal(t, http.StatusFound, res.rec.Code)
	require.Equal(t, "/fr", res.rec.Header().Get("Location"))

	var written []string
	for _, c := range res.rec.Result().Cookies() {
		if c.Name == locale.DefaultCookieKey {
			written = append(written, c.Value)
		}
	}
	require.Equal(t, []string{"fr"}, written)
}

func TestLocaleLoopGuard(t *testing.T) {
	t.Parallel()

	t.Run("repeated target is not redirected again", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "fr")
		req.AddCookie(&http.Cookie{Name: middlewares.DefaultLoopGuardCookie, Value: "/fr"})

		res := serveLocale(t, localeConfig(), req)

		require.True(t, res.called)
		require.Equal(t, "fr", res.locale)
		require.Negative(t, res.cookies[middlewares.DefaultLoopGuardCookie].MaxAge)
	})

	t.Run("disabled guard always redirects", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "fr")
		req.AddCookie(&http.Cookie{Name: middlewares.DefaultLoopGuardCookie, Value: "/fr"})

		res := serveLocale(t, localeConfig(), req, middlewares.WithLoopGuard(nil))

		require.False(t, res.called)
		require.Equal(t, "/fr", res.rec.Header().Get("Location"))
		require.NotContains(t, res.cookies, middlewares.DefaultLoopGuardCookie)
	})
}

func TestLocaleRootRedirect(t *testing.T) {
	t.Parallel()

	cfg := localeConfig()
	cfg.DetectBrowserLanguage.Enabled = false
	cfg.RootRedirect = locale.RootRedirect{Path: "about", StatusCode: http.StatusMovedPermanently}

	res := serveLocale(t, cfg, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusMovedPermanently, res.rec.Code)
	require.Equal(t, "/about", res.rec.Header().Get("Location"))
	require.NotContains(t, res.cookies, locale.DefaultCookieKey)
}

func TestLocaleDetectionDisabled(t *testing.T) {
	t.Parallel()

	cfg := localeConfig()
	cfg.DetectBrowserLanguage.Enabled = false

	req := httptest.NewRequest(http.MethodGet, "/fr", nil)
	res := serveLocale(t, cfg, req)

	require.True(t, res.called)
	require.Equal(t, "fr", res.locale)
	require.Empty(t, res.cookies)
	require.Empty(t, res.rec.Header().Values("Vary"))
}

func TestLocaleExtractor(t *testing.T) {
	t.Parallel()

	extract := middlewares.LocaleExtractor()

	_, ok := extract(context.Background())
	require.False(t, ok)

	attr, ok := extract(middlewares.WithLocaleContext(context.Background(), "fr"))
	require.True(t, ok)
	require.Equal(t, "locale", attr.Key)
	require.Equal(t, "fr", attr.Value.String())
}
