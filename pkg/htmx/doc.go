// Package htmx makes locale redirects work for HTMX requests.
//
// A plain 302 sent to an HTMX request is followed by the XHR and the
// redirected page gets swapped into the target element. RedirectWithStatus
// answers HTMX requests with 200 and an HX-Redirect header instead, so the
// browser performs a full navigation to the localized URL:
//
//	htmx.RedirectWithStatus(w, r, "/fr/about", http.StatusFound)
//
// PageURL returns the page location for HTMX requests (taken from
// HX-Current-URL), which is what locale switch links must be built from.
package htmx
