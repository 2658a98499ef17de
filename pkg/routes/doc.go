// Package routes turns a route tree into per-locale variants and resolves
// the result by name or by path.
//
// Localization follows the configured strategy:
//
//	no_prefix              routes are returned unchanged (unless locales use different domains)
//	prefix                 every locale gets a "/<code>" prefix
//	prefix_except_default  every locale but the default one gets a prefix
//	prefix_and_default     like prefix, plus an unprefixed copy of the default locale
//
// Localized routes are named "<base><sep><code>", with "<sep><suffix>"
// appended for unprefixed default variants ("about___en___default").
//
//	opts := routes.OptionsFromConfig(cfg)
//	localized, err := routes.Localize(nodes, opts)
//	table, err := routes.NewTable(localized, opts)
//	path, err := table.Resolve("blog-slug___fr", routes.Params{"slug": "hello"})
//
// Custom per-locale paths come from an [OptionsResolver] and are written in
// the bracket grammar of package segment ("/blog/[slug]"). A malformed custom
// path aborts localization.
//
// [ChiPatterns] converts table patterns into chi routes.
package routes
