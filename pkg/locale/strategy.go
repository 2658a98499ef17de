package locale

import "fmt"

// Strategy controls how locales are encoded in URLs.
type Strategy string

const (
	// NoPrefix never adds a locale prefix.
	NoPrefix Strategy = "no_prefix"
	// Prefix adds a prefix for every locale.
	Prefix Strategy = "prefix"
	// PrefixExceptDefault adds a prefix for every locale but the default one.
	PrefixExceptDefault Strategy = "prefix_except_default"
	// PrefixAndDefault prefixes every locale and also serves the default
	// locale without a prefix.
	PrefixAndDefault Strategy = "prefix_and_default"
)

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = PrefixExceptDefault

// ParseStrategy converts a string into a Strategy.
// An empty string yields DefaultStrategy.
func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return DefaultStrategy, nil
	}
	st := Strategy(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
	}
	return st, nil
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case NoPrefix, Prefix, PrefixExceptDefault, PrefixAndDefault:
		return true
	}
	return false
}

// Prefixes reports whether the strategy encodes locales in paths at all.
func (s Strategy) Prefixes() bool {
	return s != NoPrefix
}

func (s Strategy) String() string {
	return string(s)
}

// RedirectOn limits where browser language detection may redirect.
type RedirectOn string

const (
	// RedirectOnRoot detects only on "/".
	RedirectOnRoot RedirectOn = "root"
	// RedirectOnNoPrefix detects only on paths without a locale prefix.
	RedirectOnNoPrefix RedirectOn = "no prefix"
	// RedirectOnAll detects on every path.
	RedirectOnAll RedirectOn = "all"
)

// Valid reports whether r is a known value.
func (r RedirectOn) Valid() bool {
	switch r {
	case RedirectOnRoot, RedirectOnNoPrefix, RedirectOnAll:
		return true
	}
	return false
}
