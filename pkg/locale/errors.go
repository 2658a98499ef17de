package locale

import "errors"

var (
	ErrNoLocales            = errors.New("locale: at least one locale is required")
	ErrEmptyCode            = errors.New("locale: locale code cannot be empty")
	ErrDuplicateCode        = errors.New("locale: duplicate locale code")
	ErrUnknownDefaultLocale = errors.New("locale: default locale is not configured")
	ErrUnknownFallback      = errors.New("locale: fallback locale is not configured")
	ErrInvalidStrategy      = errors.New("locale: invalid strategy")
	ErrInvalidRedirectOn    = errors.New("locale: invalid redirectOn value")
	ErrInvalidStatusCode    = errors.New("locale: redirect status code must be 3xx")
	ErrDuplicateDomain      = errors.New("locale: domain is shared by several locales")
	ErrNoLanguage           = errors.New("locale: language tag is not set")
)
