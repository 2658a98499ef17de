package localeroute

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/localeroute/pkg/cookie"
	"github.com/dmitrymomot/localeroute/pkg/locale"
	"github.com/dmitrymomot/localeroute/pkg/routes"
)

// Option configures the Localizer.
type Option func(*Localizer)

// WithConfig sets the locale configuration.
func WithConfig(cfg locale.Config) Option {
	return func(l *Localizer) {
		l.cfg = cfg
	}
}

// WithConfigFile loads the locale configuration from a YAML file and
// overlays I18N_* environment variables.
func WithConfigFile(path string) Option {
	return func(l *Localizer) {
		cfg, err := locale.LoadFile(path)
		if err == nil {
			err = locale.LoadEnv(&cfg)
		}
		if err != nil {
			l.errs = append(l.errs, err)
			return
		}
		l.cfg = cfg
	}
}

// WithRoutes appends nodes to the route tree.
func WithRoutes(nodes ...routes.Node) Option {
	return func(l *Localizer) {
		l.nodes = append(l.nodes, nodes...)
	}
}

// WithRoutesFile appends the routes declared in a YAML file.
func WithRoutesFile(path string) Option {
	return func(l *Localizer) {
		f, err := os.Open(path)
		if err != nil {
			l.errs = append(l.errs, fmt.Errorf("localeroute: open routes %q: %w", path, err))
			return
		}
		defer f.Close()

		nodes, err := routes.LoadNodes(f)
		if err != nil {
			l.errs = append(l.errs, fmt.Errorf("localeroute: routes %q: %w", path, err))
			return
		}
		l.nodes = append(l.nodes, nodes...)
	}
}

// WithLogger sets the logger.
// If nil, logging is disabled.
func WithLogger(log *slog.Logger) Option {
	return func(l *Localizer) {
		if log != nil {
			l.logger = log
		}
	}
}

// WithOptionsResolver sets the per-route locale and custom path resolver.
func WithOptionsResolver(fn routes.OptionsResolver) Option {
	return func(l *Localizer) {
		l.resolver = fn
	}
}

// WithPrefixable overrides which localized paths get a locale prefix.
func WithPrefixable(fn routes.PrefixableFunc) Option {
	return func(l *Localizer) {
		l.prefixable = fn
	}
}

// WithCookieOptions configures the locale cookie on top of the
// detectBrowserLanguage settings.
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(l *Localizer) {
		l.cookieOpts = append(l.cookieOpts, opts...)
	}
}

// WithLoopGuardCookie sets the name of the cookie guarding against redirect
// loops. A secret of 32+ bytes signs it. An empty name disables the guard.
func WithLoopGuardCookie(name, secret string) Option {
	return func(l *Localizer) {
		l.guardName = name
		l.guardSecret = secret
	}
}
