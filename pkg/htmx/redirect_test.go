package htmx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/localeroute/pkg/htmx"
)

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("HTMX request sets HX-Redirect header and 200 status", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/about", nil)
		req.Header.Set("HX-Request", "true")

		htmx.Redirect(rec, req, "/fr/about")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/fr/about", rec.Header().Get("HX-Redirect"))
		assert.Empty(t, rec.Header().Get("Location"))
		assert.Equal(t, "HX-Request", rec.Header().Get("Vary"))
	})

	t.Run("non-HTMX request uses standard HTTP redirect", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/about", nil)

		htmx.Redirect(rec, req, "/fr/about")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/fr/about", rec.Header().Get("Location"))
		assert.Empty(t, rec.Header().Get("HX-Redirect"))
	})

	t.Run("keeps query and absolute URLs", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("HX-Request", "true")

		htmx.Redirect(rec, req, "https://fr.example.com/a?q=1#top")

		assert.Equal(t, "https://fr.example.com/a?q=1#top", rec.Header().Get("HX-Redirect"))
	})
}

func TestRedirectWithStatus(t *testing.T) {
	t.Parallel()

	t.Run("HTMX request ignores custom status and uses 200", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("HX-Request", "true")

		htmx.RedirectWithStatus(rec, req, "/en", http.StatusMovedPermanently)

		assert.Equal(t, http.StatusOK, rec.Code, "HTMX redirect must use 200")
		assert.Equal(t, "/en", rec.Header().Get("HX-Redirect"))
	})

	t.Run("non-HTMX request respects custom status code", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		htmx.RedirectWithStatus(rec, req, "/en", http.StatusMovedPermanently)

		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/en", rec.Header().Get("Location"))
	})
}

func TestPushURL(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	htmx.PushURL(rec, req, "/fr")
	assert.Empty(t, rec.Header().Get("HX-Push-Url"))

	req.Header.Set("HX-Request", "true")
	htmx.PushURL(rec, req, "/fr")
	assert.Equal(t, "/fr", rec.Header().Get("HX-Push-Url"))
}
