package engine

import (
	"io"
	"log"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for ApplyIndicators, CrossTabulate,
// BuildTable
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Logger      *log.Logger
	Title       string // BuildTable title; derived from column keys when empty
	Margins     bool   // BuildTable adds row/column totals
	MarginLabel string // label for the totals column and summary row
}

// WithLogger routes engine log lines to l.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithQuiet discards engine log lines.
func WithQuiet() Option {
	return func(c *config) {
		c.Logger = log.New(io.Discard, "", 0)
	}
}

// WithTitle sets the TableData title.
func WithTitle(title string) Option {
	return func(c *config) {
		c.Title = title
	}
}

// WithMargins adds a totals column and a totals summary row to BuildTable output.
func WithMargins() Option {
	return func(c *config) {
		c.Margins = true
	}
}

// WithMarginLabel overrides the "All" label used for margins.
func WithMarginLabel(label string) Option {
	return func(c *config) {
		c.MarginLabel = label
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Logger:      log.Default(),
		MarginLabel: "All",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
