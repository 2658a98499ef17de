// Package middlewares provides net/http middleware for locale routing.
//
// # Locale
//
// Locale resolves the locale of every request against a localized route
// table. It reads the locale cookie, Accept-Language and the host, detects
// the locale and redirects to the localized variant of the route when the
// URL does not match it:
//
//	r := chi.NewRouter()
//	r.Use(middlewares.Locale(table, cfg))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    code := middlewares.GetLocale(r.Context())
//	}
//
// Redirects of HTMX requests are answered with HX-Redirect. A short lived
// cookie remembers the last redirect target so the same redirect is not
// repeated when it comes straight back; disable it with WithLoopGuard(nil).
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing and debugging.
// It checks incoming headers for existing IDs or generates a UUID.
//
// Use the extractors with logger.WithExtractors to add request_id and
// locale to all logs:
//
//	log := logger.New(logger.WithExtractors(
//	    middlewares.RequestIDExtractor(),
//	    middlewares.LocaleExtractor(),
//	))
package middlewares
