// Package switcher changes the active locale after its messages are loaded.
//
//	s := switcher.New("en", loader, switcher.WithSkipSettingLocaleOnNavigate())
//	if err := s.Switch(ctx, "fr"); err != nil { ... }
//	s.Pending() // "fr"
//	s.Finalize()
//	s.Current() // "fr"
//
// Concurrent loads of the same locale run once.
package switcher
