package logger

import (
	"io"
	"log/slog"
	"os"
)

// Format selects the log output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type config struct {
	output     io.Writer
	level      slog.Leveler
	format     Format
	extractors []ContextExtractor
}

// Option configures a logger.
type Option func(*config)

// WithOutput sets the log destination. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithLevel sets the minimum level. Defaults to slog.LevelInfo.
func WithLevel(l slog.Leveler) Option {
	return func(c *config) {
		if l != nil {
			c.level = l
		}
	}
}

// WithFormat selects JSON (default) or text output.
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithExtractors adds context extractors applied on every log call.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		c.extractors = append(c.extractors, extractors...)
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		output: os.Stdout,
		level:  slog.LevelInfo,
		format: FormatJSON,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) handler() slog.Handler {
	ho := &slog.HandlerOptions{Level: c.level}
	if c.format == FormatText {
		return slog.NewTextHandler(c.output, ho)
	}
	return slog.NewJSONHandler(c.output, ho)
}

// New creates a structured logger. Context extractors, if any, add
// request-scoped attributes such as the resolved locale.
func New(opts ...Option) *slog.Logger {
	c := newConfig(opts)
	return slog.New(NewContextHandler(c.handler(), c.extractors...))
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Locale returns the attribute used for locale codes across the module.
func Locale(code string) slog.Attr {
	return slog.String("locale", code)
}

// Error returns an attribute for an error value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}
