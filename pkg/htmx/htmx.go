package htmx

import (
	"net/http"
	"net/url"
)

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// IsBoosted returns true for requests made by an hx-boost link or form.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderHXBoosted) == "true"
}

// PageURL returns the URL of the page the user is looking at.
// HTMX requests usually target a fragment endpoint, so the browser
// location comes from HX-Current-URL. Boosted requests load a whole page
// and regular requests are the page itself; both use the request URL.
func PageURL(r *http.Request) *url.URL {
	if IsHTMX(r) && !IsBoosted(r) {
		if raw := r.Header.Get(HeaderHXCurrentURL); raw != "" {
			if u, err := url.Parse(raw); err == nil {
				return u
			}
		}
	}
	return r.URL
}
