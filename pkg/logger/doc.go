// Package logger builds the slog loggers used across the module.
//
// Loggers write JSON (or text) to stdout by default and can carry context
// extractors that add request-scoped attributes on every call:
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithExtractors(
//			middlewares.RequestIDExtractor(),
//			middlewares.LocaleExtractor(),
//		),
//	)
//	log.InfoContext(r.Context(), "locale redirect", logger.Locale("fr"))
//
// Components that accept a logger default to [NewNope].
//
// # Sentry
//
// [NewWithSentry] additionally forwards warnings and errors to Sentry.
// Configuration errors reported by the routing packages are logged at Warn
// level, so they show up there too. An empty DSN falls back to local output:
//
//	cfg, err := logger.SentryConfigFromEnv()
//	log := logger.NewWithSentry(cfg, logger.WithExtractors(middlewares.LocaleExtractor()))
package logger
