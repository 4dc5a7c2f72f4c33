package engine

import (
	"fmt"

	"github.com/arealens-org/arealens/extract"
)

// ============================================================================
// CHART BUILDER — Year labels × per-locality series
// ============================================================================

type yearLocality struct {
	year     int
	locality string
}

// BuildChart produces chart data from a filtered subset. Labels are the
// distinct years ascending. One series per (locality × selected metric);
// each point is the mean of that metric over the (year, locality) group, or
// nil when the combination has no rows. Series are grouped by locality in
// subset encounter order, then price before demand when both are requested.
func BuildChart(sub *Subset, metric extract.Metric) ChartData {
	if sub.Len() == 0 {
		return ChartData{Labels: []int{}, Datasets: []Series{}}
	}

	metrics := []extract.Metric{metric}
	if metric == extract.MetricBoth {
		metrics = []extract.Metric{extract.MetricPrice, extract.MetricDemand}
	}

	labels := sub.Years()

	type acc struct {
		sum   float64
		count int
	}
	means := make(map[extract.Metric]map[yearLocality]*acc, len(metrics))
	for _, m := range metrics {
		means[m] = make(map[yearLocality]*acc)
	}

	for i := 0; i < sub.Len(); i++ {
		r := sub.Record(i)
		key := yearLocality{year: r.Year, locality: r.Locality}
		for _, m := range metrics {
			a := means[m][key]
			if a == nil {
				a = &acc{}
				means[m][key] = a
			}
			if m == extract.MetricPrice {
				a.sum += r.Price
			} else {
				a.sum += r.Demand
			}
			a.count++
		}
	}

	datasets := make([]Series, 0, len(sub.Localities())*len(metrics))
	for _, loc := range sub.Localities() {
		for _, m := range metrics {
			data := make([]*float64, len(labels))
			for j, year := range labels {
				if a := means[m][yearLocality{year: year, locality: loc}]; a != nil {
					v := a.sum / float64(a.count)
					data[j] = &v
				}
			}

			label := loc
			if metric == extract.MetricBoth {
				label = fmt.Sprintf("%s (%s)", loc, m)
			}
			datasets = append(datasets, Series{Label: label, Metric: m, Data: data})
		}
	}

	return ChartData{Labels: labels, Datasets: datasets}
}
