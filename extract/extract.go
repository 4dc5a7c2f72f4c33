// Package extract parses free-text queries into dataset entities: locality
// candidates, city candidates, an inclusive year range, and a metric
// selector. Extraction is heuristic — a miss is a valid outcome that widens
// the query rather than an error.
package extract

import (
	"regexp"
	"strings"

	"github.com/arealens-org/arealens/dataset"
)

// Metric selects which measures a query is about.
type Metric string

const (
	MetricPrice  Metric = "price"
	MetricDemand Metric = "demand"
	MetricBoth   Metric = "both"
)

// YearRange is an inclusive [Start, End] bound on observation years.
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Options tunes the fuzzy phase of locality extraction.
type Options struct {
	FuzzyCutoff   float64 // minimum similarity ratio, default 0.8
	MaxNGram      int     // longest word n-gram tried, default 3
	MaxCandidates int     // close matches kept per n-gram, default 3
}

// DefaultOptions returns the production tuning.
func DefaultOptions() Options {
	return Options{FuzzyCutoff: 0.8, MaxNGram: 3, MaxCandidates: 3}
}

// ============================================================================
// YEAR RANGE
// ============================================================================

var yearRe = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

// YearRangeFromText scans for 4-digit year tokens (19xx/20xx). One distinct
// year yields (y, y); several yield (min, max) — gaps are tolerated, this is
// not a contiguity check. No token yields nil.
func YearRangeFromText(text string) *YearRange {
	matches := yearRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	min, max := 0, 0
	for _, m := range matches {
		y := atoi(m)
		if min == 0 || y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	return &YearRange{Start: min, End: max}
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// ============================================================================
// METRIC DETECTION
// ============================================================================

var (
	demandWords = []string{"demand", "sales", "interest", "popularity"}
	priceWords  = []string{"price", "rate", "cost", "value"}
)

// DetectMetric classifies a query as price, demand, or both. Priority order
// matters: "both" wins when the word appears or when price and demand
// keywords co-occur; then demand keywords; then price keywords; then the
// default. Matching is case-insensitive substring containment.
func DetectMetric(text string, def Metric) Metric {
	msg := strings.ToLower(text)

	hasDemand := containsAny(msg, demandWords)
	hasPrice := containsAny(msg, priceWords)

	switch {
	case strings.Contains(msg, "both"), hasPrice && hasDemand:
		return MetricBoth
	case hasDemand:
		return MetricDemand
	case hasPrice:
		return MetricPrice
	default:
		return def
	}
}

func containsAny(msg string, words []string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}

// ============================================================================
// CITY EXTRACTION
// ============================================================================

var spaceRe = regexp.MustCompile(`\s+`)

func normalizeText(s string) string {
	return spaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// Cities returns every distinct dataset city whose normalized name appears
// in the normalized text, in dataset encounter order.
func Cities(ds *dataset.Dataset, text string) []string {
	msg := normalizeText(text)

	var out []string
	for _, city := range ds.Cities() {
		if strings.Contains(msg, normalizeText(city)) {
			out = append(out, city)
		}
	}
	return out
}

// ============================================================================
// AREA EXTRACTION — exact word-boundary phase, then fuzzy fallback
// ============================================================================

// Areas extracts locality names from text. The exact phase matches each
// locality as a whole-word(s) boundary hit ("Thane" never matches inside
// "Thaneshwar"); only when it finds nothing does the fuzzy phase compare
// word n-grams against locality names by similarity ratio.
func Areas(ds *dataset.Dataset, text string, opts Options) []string {
	if opts.MaxNGram <= 0 {
		opts = DefaultOptions()
	}

	msg := strings.ToLower(text)
	localities := ds.LocalitiesInOrder()

	var exact []string
	for _, loc := range localities {
		pattern := `\b` + regexp.QuoteMeta(strings.ToLower(loc)) + `\b`
		if matched, err := regexp.MatchString(pattern, msg); err == nil && matched {
			exact = append(exact, loc)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	return fuzzyAreas(localities, msg, opts)
}

func fuzzyAreas(localities []string, msg string, opts Options) []string {
	tokens := strings.Fields(msg)
	if len(tokens) == 0 {
		return nil
	}

	// Candidate n-grams in reading order, deduped, so repeated calls on the
	// same input walk the same sequence.
	maxN := opts.MaxNGram
	if maxN > len(tokens) {
		maxN = len(tokens)
	}
	seen := make(map[string]bool)
	var candidates []string
	for n := 1; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			gram := strings.Join(tokens[i:i+n], " ")
			if !seen[gram] {
				seen[gram] = true
				candidates = append(candidates, gram)
			}
		}
	}

	// Lowercased name → first original spelling.
	lowered := make([]string, len(localities))
	original := make(map[string]string, len(localities))
	for i, loc := range localities {
		lowered[i] = strings.ToLower(loc)
		if _, ok := original[lowered[i]]; !ok {
			original[lowered[i]] = loc
		}
	}

	matchedSet := make(map[string]bool)
	var matched []string
	for _, cand := range candidates {
		for _, m := range closeMatches(cand, lowered, opts.MaxCandidates, opts.FuzzyCutoff) {
			loc := original[m]
			if !matchedSet[loc] {
				matchedSet[loc] = true
				matched = append(matched, loc)
			}
		}
	}
	return matched
}
