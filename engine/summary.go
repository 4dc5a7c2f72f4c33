package engine

import (
	"fmt"
	"strings"

	"github.com/arealens-org/arealens/extract"
)

// ============================================================================
// SUMMARY BUILDER — Deterministic natural-language synopsis
// ============================================================================
// This text is the authoritative summary output. Any external paraphrasing
// is optional post-processing that must fall back to exactly this text.
// ============================================================================

// NoDataMessage is the fixed summary for an empty filtered subset.
const NoDataMessage = "No matching data found for this query."

// BuildSummary renders the synopsis of a filtered subset: scope, observed
// year span, price and/or demand range depending on the metric, and a trend
// classification from first-year vs last-year mean price.
func BuildSummary(sub *Subset, q Query, t Tunables) string {
	if sub.Len() == 0 {
		return NoDataMessage
	}

	years := sub.Years()

	scope := "the dataset"
	if len(q.Areas) > 0 {
		scope = strings.Join(q.Areas, ", ")
	} else if len(q.Cities) > 0 {
		scope = strings.Join(q.Cities, ", ")
	}

	parts := []string{
		fmt.Sprintf("Here’s the market analysis for %s.", scope),
		fmt.Sprintf("Data is available from %d to %d.", years[0], years[len(years)-1]),
	}

	if q.Metric == extract.MetricPrice || q.Metric == extract.MetricBoth {
		pmin, pmax := rangeOf(sub, func(r int) float64 { return sub.Record(r).Price })
		parts = append(parts, fmt.Sprintf("Average flat prices range from ₹%s to ₹%s.",
			FormatAmount(pmin), FormatAmount(pmax)))
	}

	if q.Metric == extract.MetricDemand || q.Metric == extract.MetricBoth {
		dmin, dmax := rangeOf(sub, func(r int) float64 { return sub.Record(r).Demand })
		parts = append(parts, fmt.Sprintf("Annual demand varies between %s and %s units.",
			FormatAmount(dmin), FormatAmount(dmax)))
	}

	parts = append(parts, priceTrendSentence(sub, years, t))

	return strings.Join(parts, " ")
}

func priceTrendSentence(sub *Subset, years []int, t Tunables) string {
	first := meanPriceInYear(sub, years[0])
	last := meanPriceInYear(sub, years[len(years)-1])

	switch {
	case last > first*t.PriceUpRatio:
		return "Prices show an upward trend."
	case last < first*t.PriceDownRatio:
		return "Prices appear to be softening."
	default:
		return "Prices are relatively stable."
	}
}

func meanPriceInYear(sub *Subset, year int) float64 {
	var total float64
	var count int
	for i := 0; i < sub.Len(); i++ {
		if r := sub.Record(i); r.Year == year {
			total += r.Price
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func rangeOf(sub *Subset, value func(i int) float64) (min, max float64) {
	for i := 0; i < sub.Len(); i++ {
		v := value(i)
		if i == 0 || v < min {
			min = v
		}
		if i == 0 || v > max {
			max = v
		}
	}
	return min, max
}

// FormatAmount formats a value rounded to a whole number with comma-grouped
// thousands: 1234567.8 → "1,234,568". Exported for the report exporters.
func FormatAmount(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}

	intStr := fmt.Sprintf("%.0f", v)
	if len(intStr) > 3 {
		var parts []string
		for len(intStr) > 3 {
			parts = append([]string{intStr[len(intStr)-3:]}, parts...)
			intStr = intStr[:len(intStr)-3]
		}
		parts = append([]string{intStr}, parts...)
		intStr = strings.Join(parts, ",")
	}

	if negative {
		return "-" + intStr
	}
	return intStr
}
