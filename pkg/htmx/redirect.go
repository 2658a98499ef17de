package htmx

import (
	"net/http"
)

// Redirect performs a 302 redirect for both HTMX and regular requests.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	RedirectWithStatus(w, r, url, http.StatusFound)
}

// RedirectWithStatus performs a redirect with a custom status code.
// Responses that depend on the detected locale must not be shared between
// HTMX and full page requests, so the HX-Request header is added to Vary.
func RedirectWithStatus(w http.ResponseWriter, r *http.Request, targetURL string, status int) {
	w.Header().Add(HeaderVary, HeaderHXRequest)

	if IsHTMX(r) {
		w.Header().Set(HeaderHXRedirect, targetURL)
		// HTMX requires 200 status; actual redirect happens client-side via header
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, targetURL, status)
}

// PushURL asks HTMX to update the browser history with url after a swap.
// No-op for regular requests.
func PushURL(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXPushURL, url)
	}
}
