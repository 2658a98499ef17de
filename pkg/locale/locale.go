package locale

import (
	"slices"

	"golang.org/x/text/language"
)

// Direction is the text direction of a locale.
type Direction string

const (
	LTR  Direction = "ltr"
	RTL  Direction = "rtl"
	Auto Direction = "auto"
)

// Locale describes one configured locale.
type Locale struct {
	// Code is the unique identifier used in URLs and route names.
	Code string `yaml:"code" json:"code"`
	// Language is a BCP 47 tag used for browser matching and hreflang.
	Language string `yaml:"language,omitempty" json:"language,omitempty"`
	// Name is a human readable label.
	Name string    `yaml:"name,omitempty" json:"name,omitempty"`
	Dir  Direction `yaml:"dir,omitempty" json:"dir,omitempty"`

	Domain            string   `yaml:"domain,omitempty" json:"domain,omitempty"`
	Domains           []string `yaml:"domains,omitempty" json:"domains,omitempty"`
	DomainDefault     bool     `yaml:"domainDefault,omitempty" json:"domainDefault,omitempty"`
	DefaultForDomains []string `yaml:"defaultForDomains,omitempty" json:"defaultForDomains,omitempty"`
}

// Direction returns the locale direction, defaulting to LTR.
func (l Locale) Direction() Direction {
	if l.Dir == "" {
		return LTR
	}
	return l.Dir
}

// LanguageTag parses Language as a BCP 47 tag.
// Returns ErrNoLanguage when Language is empty.
func (l Locale) LanguageTag() (language.Tag, error) {
	if l.Language == "" {
		return language.Und, ErrNoLanguage
	}
	return language.Parse(l.Language)
}

// Locales is an ordered list of configured locales.
type Locales []Locale

// Codes returns locale codes in declaration order.
func (ls Locales) Codes() []string {
	codes := make([]string, 0, len(ls))
	for _, l := range ls {
		codes = append(codes, l.Code)
	}
	return codes
}

// Find returns the locale with the given code.
func (ls Locales) Find(code string) (Locale, bool) {
	for _, l := range ls {
		if l.Code == code {
			return l, true
		}
	}
	return Locale{}, false
}

// Has reports whether code is configured.
func (ls Locales) Has(code string) bool {
	_, ok := ls.Find(code)
	return ok
}

// DomainDefaults returns codes of locales flagged as the default for their domain.
func (ls Locales) DomainDefaults() []string {
	var out []string
	for _, l := range ls {
		if l.DomainDefault || len(l.DefaultForDomains) > 0 {
			out = append(out, l.Code)
		}
	}
	return out
}

// DuplicateDomains returns every domain declared by more than one locale
// through the Domain field, sorted.
func (ls Locales) DuplicateDomains() []string {
	seen := make(map[string]int, len(ls))
	for _, l := range ls {
		if l.Domain == "" {
			continue
		}
		seen[l.Domain]++
	}

	var dups []string
	for d, n := range seen {
		if n > 1 {
			dups = append(dups, d)
		}
	}
	slices.Sort(dups)
	return dups
}
