// Package redirect plans redirects between localized variants of a route.
//
//	planner := redirect.New(cfg, table)
//	d := planner.Plan(redirect.Current{Name: "about___en", Path: "/about"}, "fr")
//	if d.Redirect() {
//		http.Redirect(w, r, d.Path, d.StatusCode)
//	}
//
// The target path is found by route name first and by raw path second.
// No redirect is planned under no_prefix, when the route already uses the
// target locale, or when the target equals the current full path.
package redirect
