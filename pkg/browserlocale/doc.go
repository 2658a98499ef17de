// Package browserlocale matches client-preferred language tags against
// configured locales.
//
// Browser locales come from navigator.languages on the client or from the
// Accept-Language header on the server ([ParseAcceptLanguage]). They are
// ordered by preference, index 0 being the most preferred.
//
// Matching runs two passes: an exact, case-insensitive tag match and a
// primary-subtag match ("en-US" vs "en"). Each pass yields at most one scored
// candidate; the best candidate wins:
//
//	code := browserlocale.Find(
//		[]browserlocale.Locale{{Code: "en"}, {Code: "fr", Language: "fr-FR"}},
//		browserlocale.ParseAcceptLanguage(r.Header.Get("Accept-Language")),
//	)
//
// Both the matcher and the comparer can be swapped:
//
//	f := browserlocale.New(browserlocale.WithComparer(myComparer))
//	code := f.Find(locales, tags)
package browserlocale
