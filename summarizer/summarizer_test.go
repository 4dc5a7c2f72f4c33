package summarizer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// ============================================================================
// SUMMARIZER TESTS
// ============================================================================

func TestLocalEchoesInput(t *testing.T) {
	got, err := Local{}.Summarize(context.Background(), "the summary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "the summary" {
		t.Errorf("got %q", got)
	}
}

// ----------------------------------------------------------------------------
// Safe decorator
// ----------------------------------------------------------------------------

type fakeSummarizer struct {
	out   string
	err   error
	delay time.Duration
}

func (f *fakeSummarizer) Summarize(ctx context.Context, _ string) (string, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.out, f.err
}

func TestSafePassesThroughSuccess(t *testing.T) {
	s := NewSafe(&fakeSummarizer{out: "rewritten"}, time.Second)

	got, err := s.Summarize(context.Background(), "original")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "rewritten" {
		t.Errorf("got %q, want %q", got, "rewritten")
	}
}

func TestSafeFallsBackOnError(t *testing.T) {
	s := NewSafe(&fakeSummarizer{err: errors.New("backend down")}, time.Second)

	got, err := s.Summarize(context.Background(), "original")
	if err != nil {
		t.Fatalf("Safe must not surface errors: %v", err)
	}
	if got != "original" {
		t.Errorf("got %q, want fallback to input", got)
	}
}

func TestSafeFallsBackOnBlankOutput(t *testing.T) {
	s := NewSafe(&fakeSummarizer{out: "   \n"}, time.Second)

	got, _ := s.Summarize(context.Background(), "original")
	if got != "original" {
		t.Errorf("got %q, want fallback to input", got)
	}
}

func TestSafeFallsBackOnTimeout(t *testing.T) {
	s := NewSafe(&fakeSummarizer{out: "too late", delay: 5 * time.Second}, 20*time.Millisecond)

	start := time.Now()
	got, err := s.Summarize(context.Background(), "original")
	if err != nil {
		t.Fatalf("Safe must not surface errors: %v", err)
	}
	if got != "original" {
		t.Errorf("got %q, want fallback to input", got)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("fallback took %s, should honor the timeout", elapsed)
	}
}

func TestSafeNilInnerEchoes(t *testing.T) {
	s := NewSafe(nil, time.Second)

	got, err := s.Summarize(context.Background(), "original")
	if err != nil || got != "original" {
		t.Errorf("got (%q, %v)", got, err)
	}
}

// ----------------------------------------------------------------------------
// Configuration wiring
// ----------------------------------------------------------------------------

func TestFromConfigWithoutKeyIsLocal(t *testing.T) {
	s := FromConfig(Config{}, time.Second)
	if _, ok := s.(Local); !ok {
		t.Errorf("expected Local, got %T", s)
	}
}

func TestFromConfigWithKeyIsSafe(t *testing.T) {
	s := FromConfig(Config{APIKey: "k"}, time.Second)
	if _, ok := s.(*Safe); !ok {
		t.Errorf("expected *Safe, got %T", s)
	}
}

// ----------------------------------------------------------------------------
// Gemini backend against a stub server
// ----------------------------------------------------------------------------

func TestGeminiParsesCandidateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s", r.Method)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  rewritten text  "}]}}]}`))
	}))
	defer srv.Close()

	g := NewGemini(Config{APIKey: "k", Endpoint: srv.URL})
	got, err := g.Summarize(context.Background(), "original")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "rewritten text" {
		t.Errorf("got %q", got)
	}
}

func TestGeminiSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"key invalid"}}`))
	}))
	defer srv.Close()

	g := NewGemini(Config{APIKey: "bad", Endpoint: srv.URL})
	if _, err := g.Summarize(context.Background(), "original"); err == nil {
		t.Fatal("expected an error for a 403 response")
	}
}

func TestGeminiEmptyCandidatesIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	g := NewGemini(Config{APIKey: "k", Endpoint: srv.URL})
	if _, err := g.Summarize(context.Background(), "original"); err == nil {
		t.Fatal("expected an error for empty candidates")
	}
}
