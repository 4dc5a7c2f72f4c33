package engine

import (
	"context"

	"github.com/arealens-org/arealens/extract"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute()
// ============================================================================

// Summarizer optionally rewrites the deterministic summary text. The engine
// depends only on this interface; implementations live in the summarizer
// package. Any error or empty output leaves the deterministic text in place.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Option configures engine behavior via functional options.
type Option func(*config)

type config struct {
	tunables      Tunables
	extractOpts   extract.Options
	defaultMetric extract.Metric
	summarizer    Summarizer
}

// WithTunables overrides the analytics thresholds and weights.
func WithTunables(t Tunables) Option {
	return func(c *config) { c.tunables = t }
}

// WithTableLimit caps the number of table rows in the bundle.
func WithTableLimit(limit int) Option {
	return func(c *config) {
		if limit > 0 {
			c.tunables.TableLimit = limit
		}
	}
}

// WithExtractOptions tunes the fuzzy locality matching.
func WithExtractOptions(opts extract.Options) Option {
	return func(c *config) { c.extractOpts = opts }
}

// WithDefaultMetric sets the metric used when the text names none.
func WithDefaultMetric(m extract.Metric) Option {
	return func(c *config) { c.defaultMetric = m }
}

// WithSummarizer enables the optional summary rewrite.
func WithSummarizer(s Summarizer) Option {
	return func(c *config) { c.summarizer = s }
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		tunables:      DefaultTunables(),
		extractOpts:   extract.DefaultOptions(),
		defaultMetric: extract.MetricPrice,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
