package snirf

import (
	"io"
	"log/slog"
)

// config carries per-document settings. Its lifecycle is the document's:
// the logger is bound at open and goes away with Close, never to global
// state.
type config struct {
	lazy   bool
	logger *slog.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures a document at load/creation time.
type Option func(*config)

// WithLazyLoading defers dataset reads until first field access. Large
// series then cost nothing to open and never load unless touched.
func WithLazyLoading() Option {
	return func(c *config) { c.lazy = true }
}

// WithLogger attaches a structured logger to the document. Load, save, copy
// and close events are reported through it; the default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
