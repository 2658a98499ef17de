package logger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel selects what reaches Sentry: slog.LevelWarn sends warnings
	// (misconfigured domains, unknown cookies) and errors.
	MinLevel slog.Level
}

// SentryConfigFromEnv reads SENTRY_DSN and SENTRY_ENVIRONMENT.
func SentryConfigFromEnv() (SentryConfig, error) {
	cfg := SentryConfig{MinLevel: slog.LevelWarn}
	if err := env.Parse(&cfg); err != nil {
		return SentryConfig{}, fmt.Errorf("logger: parse sentry env: %w", err)
	}
	return cfg, nil
}

// NewWithSentry creates a logger that writes locally and to Sentry.
// With an empty DSN, or if Sentry fails to initialize, only local output is used.
func NewWithSentry(cfg SentryConfig, opts ...Option) *slog.Logger {
	c := newConfig(opts)
	local := c.handler()

	if cfg.DSN == "" {
		return slog.New(NewContextHandler(local, c.extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize Sentry", Error(err))
		return slog.New(NewContextHandler(local, c.extractors...))
	}

	eventLevel := []slog.Level{slog.LevelError}
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	remote := sentryslog.Option{
		EventLevel: eventLevel,
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(fanout{local, remote}, c.extractors...))
}
