// Package cookie stores the selected locale, and other small markers, in a
// named HTTP cookie.
//
// # Basic Usage
//
//	store := cookie.FromConfig(cfg.DetectBrowserLanguage)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		code, err := store.Get(r)
//		if errors.Is(err, cookie.ErrNotFound) {
//			store.Set(w, "en")
//		}
//	}
//
// # Signed Values
//
// With a 32+ byte secret, values are signed with HMAC-SHA256 and Get
// returns [ErrBadSig] for tampered cookies:
//
//	store := cookie.New("i18n_redirected", cookie.WithSecret(secret))
//
// Signed cookies cannot be read by client side code that expects a bare
// locale code, so only sign cookies the server alone consumes.
//
// # Defaults
//
// Path "/", SameSite=Lax, not HttpOnly, one year lifetime. A cross origin
// configuration switches to SameSite=None with Secure.
package cookie
