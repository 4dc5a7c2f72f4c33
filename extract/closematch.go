package extract

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// closeMatches returns up to n possibilities whose similarity ratio to word
// meets the cutoff, best first. Same contract as difflib's get_close_matches:
// the cheap ratio bounds gate the expensive one, and equal ratios keep the
// order the possibilities were given in.
func closeMatches(word string, possibilities []string, n int, cutoff float64) []string {
	if n <= 0 || len(possibilities) == 0 {
		return nil
	}

	type scored struct {
		value string
		ratio float64
	}

	m := difflib.NewMatcher(nil, chars(word))

	var results []scored
	for _, p := range possibilities {
		m.SetSeq1(chars(p))
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		if r := m.Ratio(); r >= cutoff {
			results = append(results, scored{value: p, ratio: r})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ratio > results[j].ratio
	})
	if len(results) > n {
		results = results[:n]
	}

	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.value
	}
	return out
}

// chars splits a string into per-rune elements for the sequence matcher.
func chars(s string) []string {
	return strings.Split(s, "")
}
