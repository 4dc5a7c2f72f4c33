package engine

import (
	"sort"
	"strings"

	"github.com/arealens-org/arealens/dataset"
)

// ============================================================================
// FILTER — Subset views over the canonical dataset
// ============================================================================
// Filtering never copies or mutates records: a Subset is an index list into
// the dataset, in original row order. All active predicates AND together;
// requested areas OR together within the area predicate.
//
// Asymmetry by design: city matching is exact after normalization (small
// closed set of names), area matching is substring containment (localities
// are free-text micro-markets, partial mention is the norm).
// ============================================================================

// Subset is the row view remaining after filtering.
type Subset struct {
	ds      *dataset.Dataset
	indices []int
}

// Len returns the number of rows in the view.
func (s *Subset) Len() int { return len(s.indices) }

// Record returns the i-th row of the view.
func (s *Subset) Record(i int) dataset.Record {
	return s.ds.Records()[s.indices[i]]
}

// Dataset returns the canonical dataset behind the view.
func (s *Subset) Dataset() *dataset.Dataset { return s.ds }

// Localities returns distinct non-empty locality names in view order.
func (s *Subset) Localities() []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < s.Len(); i++ {
		loc := s.Record(i).Locality
		if loc != "" && !seen[loc] {
			seen[loc] = true
			out = append(out, loc)
		}
	}
	return out
}

// Years returns the distinct observation years in the view, ascending.
func (s *Subset) Years() []int {
	seen := make(map[int]bool)
	var out []int
	for i := 0; i < s.Len(); i++ {
		y := s.Record(i).Year
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	sort.Ints(out)
	return out
}

// Filter applies the query's area, city, and year predicates to the dataset.
// A query with no constraints returns every row in original order.
func Filter(ds *dataset.Dataset, q Query) *Subset {
	areas := normalizeAll(q.Areas)
	cities := toSet(normalizeAll(q.Cities))

	records := ds.Records()
	indices := make([]int, 0, len(records))

	for i, r := range records {
		if len(cities) > 0 && !cities[normalize(r.City)] {
			continue
		}
		if len(areas) > 0 && !containsAnyTerm(normalize(r.Locality), areas) {
			continue
		}
		if q.YearRange != nil && (r.Year < q.YearRange.Start || r.Year > q.YearRange.End) {
			continue
		}
		indices = append(indices, i)
	}

	return &Subset{ds: ds, indices: indices}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if n := normalize(it); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

// containsAnyTerm reports whether any requested term occurs in the
// normalized locality value.
func containsAnyTerm(value string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(value, t) {
			return true
		}
	}
	return false
}
