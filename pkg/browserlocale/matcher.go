package browserlocale

import (
	"cmp"
	"slices"
	"strings"
)

// Locale is a configured locale as seen by the matcher.
// An empty Language falls back to Code.
type Locale struct {
	Code     string
	Language string
}

// Candidate is a scored match produced by a Matcher.
type Candidate struct {
	Code  string
	Score float64
}

// Matcher produces scored candidates for the given browser locales.
// browserLocales are ordered by descending preference.
type Matcher func(locales []Locale, browserLocales []string) []Candidate

// Comparer orders two candidates; a negative result means a ranks first.
type Comparer func(a, b Candidate) int

// Finder picks the best configured locale for a list of browser locales.
type Finder struct {
	matcher  Matcher
	comparer Comparer
}

// Option configures a Finder.
type Option func(*Finder)

// WithMatcher replaces the default two-pass matcher.
func WithMatcher(m Matcher) Option {
	return func(f *Finder) {
		if m != nil {
			f.matcher = m
		}
	}
}

// WithComparer replaces the default candidate ordering.
func WithComparer(c Comparer) Option {
	return func(f *Finder) {
		if c != nil {
			f.comparer = c
		}
	}
}

// New creates a Finder. Without options it uses DefaultMatcher and DefaultComparer.
func New(opts ...Option) *Finder {
	f := &Finder{
		matcher:  DefaultMatcher,
		comparer: DefaultComparer,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find returns the code of the best matching locale, or "" if none matched.
func (f *Finder) Find(locales []Locale, browserLocales []string) string {
	if len(locales) == 0 || len(browserLocales) == 0 {
		return ""
	}

	normalized := make([]Locale, len(locales))
	for i, l := range locales {
		if l.Language == "" {
			l.Language = l.Code
		}
		normalized[i] = l
	}

	candidates := f.matcher(normalized, browserLocales)
	if len(candidates) == 0 {
		return ""
	}

	slices.SortStableFunc(candidates, f.comparer)
	return candidates[0].Code
}

var defaultFinder = New()

// Find matches browser locales against configured locales with the default
// matcher and comparer.
//
//	Find([]Locale{{Code: "en"}, {Code: "en-US"}}, []string{"en-US", "en"}) // "en-US"
//	Find([]Locale{{Code: "en"}, {Code: "fr"}}, []string{"en-US", "en-GB"}) // "en"
//	Find([]Locale{{Code: "pl"}, {Code: "fr"}}, []string{"en-US", "en"})    // ""
func Find(locales []Locale, browserLocales []string) string {
	return defaultFinder.Find(locales, browserLocales)
}

// DefaultMatcher runs two independent passes and returns up to two candidates.
//
// The exact pass compares full tags case-insensitively and scores 1 - i/n.
// The language pass compares only the primary subtag and scores 0.999 - i/n,
// so an exact match at the same position always wins.
// Each pass stops at its first hit.
func DefaultMatcher(locales []Locale, browserLocales []string) []Candidate {
	var out []Candidate
	n := float64(len(browserLocales))

	if c, ok := exactMatch(locales, browserLocales, n); ok {
		out = append(out, c)
	}
	if c, ok := languageMatch(locales, browserLocales, n); ok {
		out = append(out, c)
	}

	return out
}

func exactMatch(locales []Locale, browserLocales []string, n float64) (Candidate, bool) {
	for i, tag := range browserLocales {
		for _, l := range locales {
			if strings.EqualFold(l.Language, tag) {
				return Candidate{Code: l.Code, Score: 1 - float64(i)/n}, true
			}
		}
	}
	return Candidate{}, false
}

func languageMatch(locales []Locale, browserLocales []string, n float64) (Candidate, bool) {
	for i, tag := range browserLocales {
		primary := primarySubtag(tag)
		for _, l := range locales {
			if strings.EqualFold(primarySubtag(l.Language), primary) {
				return Candidate{Code: l.Code, Score: 0.999 - float64(i)/n}, true
			}
		}
	}
	return Candidate{}, false
}

// DefaultComparer ranks higher scores first and breaks exact ties in favor of
// the longer, more specific code.
func DefaultComparer(a, b Candidate) int {
	if a.Score == b.Score {
		return cmp.Compare(len(b.Code), len(a.Code))
	}
	return cmp.Compare(b.Score, a.Score)
}

func primarySubtag(tag string) string {
	primary, _, _ := strings.Cut(tag, "-")
	return primary
}
