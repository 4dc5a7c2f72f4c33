// Package summarizer provides the optional natural-language rewrite of the
// engine's deterministic summary. This is the only package that may call an
// external service, and it is strictly enrichment: on any failure, timeout,
// or absence of a remote backend, the deterministic text passes through
// unchanged. The core never depends on it being available.
package summarizer

import (
	"context"
	"log"
	"strings"
	"time"
)

// Summarizer rewrites a deterministic summary into friendlier prose.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Config holds remote summarizer configuration.
type Config struct {
	APIKey   string // provider API key; empty disables the remote backend
	Model    string // model name (empty = provider default)
	Endpoint string // API endpoint override (empty = provider default)
}

// ============================================================================
// LOCAL — null implementation
// ============================================================================

// Local is the null summarizer: the deterministic text is the answer.
type Local struct{}

func (Local) Summarize(_ context.Context, text string) (string, error) {
	return text, nil
}

// ============================================================================
// SAFE — timeout + fallback decorator
// ============================================================================

// Safe wraps a summarizer with a deadline and a fall-through to the input
// text. A slow or unavailable backend can delay a request by at most the
// timeout and can never fail it.
type Safe struct {
	inner   Summarizer
	timeout time.Duration
}

// NewSafe decorates inner. A nil inner or non-positive timeout yields a
// summarizer that always returns the input text.
func NewSafe(inner Summarizer, timeout time.Duration) *Safe {
	return &Safe{inner: inner, timeout: timeout}
}

func (s *Safe) Summarize(ctx context.Context, text string) (string, error) {
	if s.inner == nil || s.timeout <= 0 {
		return text, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		out, err := s.inner.Summarize(ctx, text)
		done <- outcome{text: out, err: err}
	}()

	select {
	case <-ctx.Done():
		log.Printf("⚠️ Summarizer: rewrite timed out after %s, using deterministic text", s.timeout)
		return text, nil
	case o := <-done:
		if o.err != nil || strings.TrimSpace(o.text) == "" {
			if o.err != nil {
				log.Printf("⚠️ Summarizer: rewrite failed, using deterministic text: %v", o.err)
			}
			return text, nil
		}
		return o.text, nil
	}
}

// FromConfig builds the request-path summarizer: a Safe-wrapped Gemini when
// an API key is configured, otherwise Local.
func FromConfig(cfg Config, timeout time.Duration) Summarizer {
	if cfg.APIKey == "" {
		return Local{}
	}
	return NewSafe(NewGemini(cfg), timeout)
}
