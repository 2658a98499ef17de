// Package alternate builds hreflang and canonical link data for a route.
//
//	links, err := alternate.Links(table, alternate.Current{Name: "about___fr"}, cfg)
//	// <link rel="alternate" hreflang="fr-FR" href="https://example.com/fr/about">
//
// Language tags are canonicalized with golang.org/x/text/language. Locales
// without a language are skipped. Links are absolute when Config.BaseURL is
// set or locales use different domains.
package alternate
