package engine

import (
	"context"
	"log"
	"strings"

	"github.com/arealens-org/arealens/dataset"
	"github.com/arealens-org/arealens/extract"
)

// ============================================================================
// EXECUTOR — Query pipeline
// ============================================================================
// Control flow: raw text → entity extraction → filter → {chart, table,
// insights} → summary → result bundle. Export paths call ExecuteQuery with
// explicit parameters and skip extraction entirely.
//
// Single-request, synchronous, CPU-bound: the only potentially blocking step
// is the optional summary rewrite, which the Summarizer contract bounds with
// its own timeout and fallback.
// ============================================================================

// maxSuggestions caps the sample localities attached to an empty result.
const maxSuggestions = 10

// ExtractQuery parses free text into query parameters against the dataset's
// known localities and cities. Absent entities widen the query, never fail it.
func ExtractQuery(ds *dataset.Dataset, text string, opts ...Option) Query {
	cfg := applyOptions(opts)
	return Query{
		Areas:     extract.Areas(ds, text, cfg.extractOpts),
		Cities:    extract.Cities(ds, text),
		YearRange: extract.YearRangeFromText(text),
		Metric:    extract.DetectMetric(text, cfg.defaultMetric),
	}
}

// Execute answers a free-text query and returns the render-ready bundle.
func Execute(ds *dataset.Dataset, text string, opts ...Option) *Result {
	cfg := applyOptions(opts)
	q := ExtractQuery(ds, text, opts...)

	log.Printf("🔎 Arealens: query=%q areas=%v cities=%v years=%v metric=%s",
		truncate(text, 80), q.Areas, q.Cities, q.YearRange, q.Metric)

	return run(ds, q, cfg)
}

// ExecuteQuery answers a query from explicit parameters, bypassing free-text
// extraction. An empty metric defaults to price.
func ExecuteQuery(ds *dataset.Dataset, q Query, opts ...Option) *Result {
	cfg := applyOptions(opts)
	if q.Metric == "" {
		q.Metric = cfg.defaultMetric
	}
	return run(ds, q, cfg)
}

func run(ds *dataset.Dataset, q Query, cfg *config) *Result {
	sub := Filter(ds, q)

	if sub.Len() == 0 {
		log.Printf("🔎 Arealens: no rows matched (areas=%v cities=%v)", q.Areas, q.Cities)
		return emptyResult(ds, q)
	}

	log.Printf("🔎 Arealens: %d rows after filtering (from %d)", sub.Len(), ds.Len())

	res := &Result{
		Chart:     BuildChart(sub, q.Metric),
		Table:     BuildTable(sub, cfg.tunables.TableLimit),
		Areas:     emptyIfNil(q.Areas),
		Cities:    emptyIfNil(q.Cities),
		Metric:    q.Metric,
		YearRange: q.YearRange,
		Insights:  BuildInsights(sub, q.YearRange, q.Metric, cfg.tunables),
	}

	res.Summary = BuildSummary(sub, q, cfg.tunables)
	if cfg.summarizer != nil {
		res.Summary = rewriteSummary(cfg.summarizer, res.Summary)
	}

	return res
}

// emptyResult is the structured no-match bundle: canonical no-data summary,
// empty chart/table/insights, and a sample of valid localities as hints.
func emptyResult(ds *dataset.Dataset, q Query) *Result {
	suggestions := ds.Localities()
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return &Result{
		Summary:   NoDataMessage,
		Chart:     ChartData{Labels: []int{}, Datasets: []Series{}},
		Table:     []TableRow{},
		Areas:     emptyIfNil(q.Areas),
		Cities:    emptyIfNil(q.Cities),
		Metric:    q.Metric,
		YearRange: q.YearRange,
		Insights: Insights{
			Areas:       map[string]*AreaStats{},
			RankedAreas: []RankedArea{},
			YearRange:   q.YearRange,
			Metric:      q.Metric,
		},
		Suggestions: suggestions,
	}
}

// rewriteSummary applies the optional external rewrite. Failures and empty
// output degrade silently to the deterministic text.
func rewriteSummary(s Summarizer, text string) string {
	out, err := s.Summarize(context.Background(), text)
	if err != nil || strings.TrimSpace(out) == "" {
		if err != nil {
			log.Printf("⚠️ Arealens: summary rewrite failed, keeping deterministic text: %v", err)
		}
		return text
	}
	return out
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
