// Package localeroute adds locale aware routing to net/http applications.
//
// A Localizer rewrites a route tree into one variant per locale following
// the configured strategy, compiles the variants into a route table and
// serves them through chi behind a middleware that detects the locale of
// every request and redirects to the matching variant.
//
// # Quick Start
//
//	l, err := localeroute.New(
//	    localeroute.WithConfigFile("i18n.yaml"),
//	    localeroute.WithRoutesFile("routes.yaml"),
//	    localeroute.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//
//	r := chi.NewRouter()
//	err = l.Mount(r, map[string]http.Handler{
//	    "index":    http.HandlerFunc(home),
//	    "users-id": http.HandlerFunc(user),
//	})
//
// Handlers are keyed by base route name; every localized variant of the
// route is served by the same handler and reads its locale with
// middlewares.GetLocale.
//
// # Strategies
//
// With defaultLocale "en" and locales en, fr, the route "/about" becomes:
//
//	no_prefix              /about
//	prefix                 /en/about, /fr/about
//	prefix_except_default  /about, /fr/about
//	prefix_and_default     /about, /en/about, /fr/about
//
// Localized route names carry the locale: "about___fr". The unprefixed
// prefix_and_default variant is named "about___en___default".
//
// # Links
//
// SwitchLocalePath returns the URL of the current page in another locale
// and Alternates returns its hreflang links:
//
//	href := l.SwitchLocalePath(r, "fr") // "/fr/users/42?tab=posts"
//	links, err := l.Alternates(r)
package localeroute
