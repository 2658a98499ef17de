package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/localeroute/pkg/locale"
)

// Errors.
var (
	ErrNotFound = errors.New("cookie: not found")
	ErrBadSig   = errors.New("cookie: invalid signature")
)

// DefaultMaxAge keeps the locale cookie for a year.
const DefaultMaxAge = int(365 * 24 * time.Hour / time.Second)

// Store reads and writes a single named cookie.
type Store struct {
	name     string
	secret   []byte // nil = plain values
	domain   string
	path     string
	maxAge   int
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures the Store.
type Option func(*Store)

// New creates a Store for the cookie called name.
// Cookies are readable by scripts so client side code can share them.
func New(name string, opts ...Option) *Store {
	s := &Store{
		name:     name,
		path:     "/",
		maxAge:   DefaultMaxAge,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromConfig creates the locale cookie store described by the detection
// settings. Cross origin cookies are sent with SameSite=None and Secure.
func FromConfig(d locale.DetectBrowserLanguage, opts ...Option) *Store {
	name := d.CookieKey
	if name == "" {
		name = locale.DefaultCookieKey
	}
	base := []Option{
		WithDomain(d.CookieDomain),
		WithSecure(d.CookieSecure),
	}
	if d.CookieCrossOrigin {
		base = append(base, WithSameSite(http.SameSiteNoneMode), WithSecure(true))
	}
	return New(name, append(base, opts...)...)
}

// WithSecret signs values with HMAC-SHA256. Must be at least 32 bytes.
func WithSecret(secret string) Option {
	return func(s *Store) {
		if len(secret) >= 32 {
			s.secret = []byte(secret)
		}
	}
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(s *Store) {
		s.domain = domain
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(s *Store) {
		s.path = path
	}
}

// WithMaxAge sets the cookie lifetime in seconds.
func WithMaxAge(seconds int) Option {
	return func(s *Store) {
		s.maxAge = seconds
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(s *Store) {
		s.secure = secure
	}
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(s *Store) {
		s.httpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(s *Store) {
		s.sameSite = ss
	}
}

// Name returns the cookie name.
func (s *Store) Name() string {
	return s.name
}

// Get returns the cookie value.
// Returns ErrNotFound when the cookie is missing and ErrBadSig when a
// signed value does not verify.
func (s *Store) Get(r *http.Request) (string, error) {
	c, err := r.Cookie(s.name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	if s.secret == nil {
		return c.Value, nil
	}
	return s.verify(c.Value)
}

// Set writes the cookie.
func (s *Store) Set(w http.ResponseWriter, value string) {
	if s.secret != nil {
		value = s.sign(value)
	}
	http.SetCookie(w, s.cookie(value, s.maxAge))
}

// Delete removes the cookie.
func (s *Store) Delete(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", -1))
}

// Reset replaces a stored value with fallback, or removes the cookie when
// fallback is empty.
func (s *Store) Reset(w http.ResponseWriter, fallback string) {
	if fallback == "" {
		s.Delete(w)
		return
	}
	s.Set(w, fallback)
}

func (s *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     s.path,
		Domain:   s.domain,
		MaxAge:   maxAge,
		Secure:   s.secure,
		HttpOnly: s.httpOnly,
		SameSite: s.sameSite,
	}
}

// Format: base64(value).base64(signature)
func (s *Store) sign(value string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString([]byte(value)) +
		"." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (s *Store) verify(raw string) (string, error) {
	encValue, encSig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrBadSig
	}
	value, err := base64.RawURLEncoding.DecodeString(encValue)
	if err != nil {
		return "", ErrBadSig
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return "", ErrBadSig
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write(value)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return "", ErrBadSig
	}
	return string(value), nil
}
