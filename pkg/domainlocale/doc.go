// Package domainlocale maps request hosts to configured locales.
//
// Locales declare the domains that serve them through Domain and Domains.
// Configured domains may carry a scheme ("https://fr.example.com"); it is
// stripped before matching. Matching is case-insensitive, and a domain
// without a port also matches a host that has one.
//
//	code, ok := domainlocale.Match(cfg.Locales, domainlocale.GetHost(r), "")
//
// When several locales share a domain the tie is broken by the locale
// already present in the URL path, then by DomainDefault/DefaultForDomains,
// then by declaration order. Use [Resolver] to get a logged warning for the
// last case.
package domainlocale
