// Package detect decides which locale a navigation should use.
//
// [Detector.DetectBrowserLanguage] applies the skip rules of the
// detectBrowserLanguage configuration in order:
//
//	disabled                   detection is turned off
//	detect_ignore_on_ssg       first server render of a static no_prefix build
//	first_access_only          not the first navigation, strategy is not no_prefix
//	not_redirect_on_root       redirectOn is "root" and the path is not "/"
//	not_redirect_on_no_prefix  redirectOn is "no prefix" and the path has a locale prefix
//
// When no rule applies the locale comes from the cookie, then from the host
// (different domains) or the browser languages, then from fallbackLocale.
//
// [Detector.Detect] always yields a locale (except when detection is
// deferred during static generation) by falling back to the route locale
// and the default locale.
package detect
