package switcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/localeroute/pkg/logger"
)

var (
	ErrEmptyLocale = errors.New("switcher: empty locale code")
	// ErrSuperseded is returned by Switch when a newer Switch started
	// while the messages were loading.
	ErrSuperseded = errors.New("switcher: superseded by a newer switch")
)

// Loader loads the messages of a locale.
type Loader interface {
	Load(ctx context.Context, code string) error
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, code string) error

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, code string) error {
	return f(ctx, code)
}

// Switcher tracks the active locale and an optional pending one.
//
// Switch loads the messages of the new locale and applies it, unless
// skipping on navigate is enabled: then the locale stays pending until
// Finalize. The latest Switch wins; loads of the same locale are shared.
type Switcher struct {
	loader Loader
	group  singleflight.Group

	mu             sync.Mutex
	current        string
	pending        string
	seq            uint64
	skipOnNavigate bool
	onChange       func(from, to string)
	logger         *slog.Logger
}

// Option configures a Switcher.
type Option func(*Switcher)

// WithSkipSettingLocaleOnNavigate keeps switched locales pending until Finalize.
func WithSkipSettingLocaleOnNavigate() Option {
	return func(s *Switcher) {
		s.skipOnNavigate = true
	}
}

// WithOnChange registers a callback invoked after the active locale changes.
func WithOnChange(fn func(from, to string)) Option {
	return func(s *Switcher) {
		s.onChange = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Switcher) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Switcher with initial as the active locale.
// A nil loader loads nothing.
func New(initial string, loader Loader, opts ...Option) *Switcher {
	if loader == nil {
		loader = LoaderFunc(func(context.Context, string) error { return nil })
	}
	s := &Switcher{
		loader:  loader,
		current: initial,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Switch loads code and applies it or leaves it pending.
func (s *Switcher) Switch(ctx context.Context, code string) error {
	if code == "" {
		return ErrEmptyLocale
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	if code == s.current {
		s.pending = ""
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	_, err, shared := s.group.Do(code, func() (any, error) {
		return nil, s.loader.Load(ctx, code)
	})
	if err != nil {
		return fmt.Errorf("switcher: load %q: %w", code, err)
	}
	if shared {
		s.logger.DebugContext(ctx, "shared locale load", logger.Locale(code))
	}

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return ErrSuperseded
	}
	if s.skipOnNavigate {
		s.pending = code
		s.mu.Unlock()
		return nil
	}
	from := s.apply(code)
	s.mu.Unlock()

	s.notify(from, code)
	return nil
}

// Finalize applies the pending locale. It reports false when nothing was pending.
func (s *Switcher) Finalize() (string, bool) {
	s.mu.Lock()
	code := s.pending
	if code == "" {
		s.mu.Unlock()
		return "", false
	}
	from := s.apply(code)
	s.mu.Unlock()

	s.notify(from, code)
	return code, true
}

// apply must be called with mu held.
func (s *Switcher) apply(code string) string {
	from := s.current
	s.current = code
	s.pending = ""
	return from
}

func (s *Switcher) notify(from, to string) {
	s.logger.Debug("locale switched", slog.String("from", from), logger.Locale(to))
	if s.onChange != nil && from != to {
		s.onChange(from, to)
	}
}

// Current returns the active locale.
func (s *Switcher) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Pending returns the locale waiting for Finalize, or "".
func (s *Switcher) Pending() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
