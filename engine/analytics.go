package engine

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/arealens-org/arealens/extract"
)

// ============================================================================
// ANALYTICS — Per-locality statistics and investment ranking
// ============================================================================
// Everything is computed fresh from the filtered subset per request. The
// yearly price signal is the mean price per (locality, year); the yearly
// demand signal is the summed units per (locality, year). Numeric edge
// cases degrade to defined defaults (0 or absent), never errors.
// ============================================================================

// localityYearly is one locality's per-year price/demand series, years
// ascending.
type localityYearly struct {
	years  []int
	price  []float64 // mean price per year
	demand []float64 // total demand per year
}

// BuildInsights computes area statistics, scores them across the batch, and
// ranks localities by blended investment score descending. Ties keep the
// locality encounter order of the subset.
func BuildInsights(sub *Subset, yearRange *extract.YearRange, metric extract.Metric, t Tunables) Insights {
	order, stats := computeAreaStats(sub, t)
	if len(order) == 0 {
		return Insights{
			Areas:       map[string]*AreaStats{},
			RankedAreas: []RankedArea{},
			YearRange:   yearRange,
			Metric:      metric,
		}
	}

	scoreBatch(order, stats, t)

	ranked := make([]RankedArea, 0, len(order))
	for _, area := range order {
		ranked = append(ranked, RankedArea{Area: area, InvestmentScore: stats[area].InvestmentScore})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].InvestmentScore > ranked[j].InvestmentScore
	})
	for i := range ranked {
		ranked[i].InvestmentScore = roundTo1(ranked[i].InvestmentScore)
	}

	return Insights{
		Areas:       stats,
		RankedAreas: ranked,
		YearRange:   yearRange,
		Metric:      metric,
	}
}

// computeAreaStats returns the locality encounter order and one stats record
// per locality with at least one matching row.
func computeAreaStats(sub *Subset, t Tunables) ([]string, map[string]*AreaStats) {
	if sub.Len() == 0 {
		return nil, nil
	}

	series := groupYearly(sub)
	order := sub.Localities()

	stats := make(map[string]*AreaStats, len(order))
	for _, area := range order {
		s := series[area]
		stats[area] = areaStatsFromSeries(s, t)
	}
	return order, stats
}

func groupYearly(sub *Subset) map[string]*localityYearly {
	type acc struct {
		priceSum   float64
		priceCount int
		demandSum  float64
	}

	byArea := make(map[string]map[int]*acc)
	for i := 0; i < sub.Len(); i++ {
		r := sub.Record(i)
		if r.Locality == "" {
			continue
		}
		years := byArea[r.Locality]
		if years == nil {
			years = make(map[int]*acc)
			byArea[r.Locality] = years
		}
		a := years[r.Year]
		if a == nil {
			a = &acc{}
			years[r.Year] = a
		}
		a.priceSum += r.Price
		a.priceCount++
		a.demandSum += r.Demand
	}

	out := make(map[string]*localityYearly, len(byArea))
	for area, years := range byArea {
		ly := &localityYearly{}
		for y := range years {
			ly.years = append(ly.years, y)
		}
		sort.Ints(ly.years)
		for _, y := range ly.years {
			a := years[y]
			ly.price = append(ly.price, a.priceSum/float64(a.priceCount))
			ly.demand = append(ly.demand, a.demandSum)
		}
		out[area] = ly
	}
	return out
}

func areaStatsFromSeries(s *localityYearly, t Tunables) *AreaStats {
	n := len(s.years)
	st := &AreaStats{
		YearStart: s.years[0],
		YearEnd:   s.years[n-1],
		AvgPrice:  mean(s.price),
		MinPrice:  minOf(s.price),
		MaxPrice:  maxOf(s.price),

		AvgDemand:   mean(s.demand),
		TotalDemand: sum(s.demand),
		DemandTrend: demandTrend(s.demand, t),
	}

	// CAGR over first→last yearly mean price. Fewer than two distinct
	// years, or a non-positive starting price, degrades to 0.
	if n >= 2 {
		p0, pN := s.price[0], s.price[n-1]
		if p0 > 0 {
			st.PriceCAGR = math.Pow(pN/p0, 1/float64(n-1)) - 1
		}
	}

	// Volatility: sample std of year-over-year percentage price change.
	if n >= 3 {
		st.PriceVolatility = volatility(s.price)
	}

	// Forecast: least-squares line over (year, mean price), evaluated one
	// year past the end. Absent with fewer than two distinct years.
	if n >= 2 {
		xs := make([]float64, n)
		for i, y := range s.years {
			xs[i] = float64(y)
		}
		alpha, beta := stat.LinearRegression(xs, s.price, nil, false)
		forecast := beta*float64(s.years[n-1]+1) + alpha
		if !math.IsNaN(forecast) && !math.IsInf(forecast, 0) {
			st.PriceForecastNextYear = &forecast
		}
	}

	return st
}

func demandTrend(demand []float64, t Tunables) string {
	if len(demand) < 2 {
		return TrendUnknown
	}
	d0, dN := demand[0], demand[len(demand)-1]
	switch {
	case dN > d0*t.DemandRiseRatio:
		return TrendRising
	case dN < d0*t.DemandFallRatio:
		return TrendFalling
	default:
		return TrendStable
	}
}

// volatility computes the sample standard deviation of the first-difference
// ratio series. A zero prior-year price has no defined change and is skipped.
func volatility(price []float64) float64 {
	var changes []float64
	for i := 1; i < len(price); i++ {
		if price[i-1] != 0 {
			changes = append(changes, price[i]/price[i-1]-1)
		}
	}
	if len(changes) < 2 {
		return 0
	}
	return stat.StdDev(changes, nil)
}

// ============================================================================
// SCORING — computed across the current batch of localities
// ============================================================================

func scoreBatch(order []string, stats map[string]*AreaStats, t Tunables) {
	maxDemand, maxVol := 0.0, 0.0
	for _, area := range order {
		s := stats[area]
		if s.AvgDemand > maxDemand {
			maxDemand = s.AvgDemand
		}
		if s.PriceVolatility > maxVol {
			maxVol = s.PriceVolatility
		}
	}
	// Denominators floor at 1 when the whole batch is zero.
	if maxDemand <= 0 {
		maxDemand = 1
	}
	if maxVol <= 0 {
		maxVol = 1
	}

	for _, area := range order {
		s := stats[area]
		s.GrowthScore = clamp10((s.PriceCAGR - t.CAGRFloor) / t.CAGRSpan * 10)
		s.DemandScore = clamp10(s.AvgDemand / maxDemand * 10)
		s.RiskScore = 10 - clamp10(s.PriceVolatility/maxVol*10)
		s.InvestmentScore = t.GrowthWeight*s.GrowthScore +
			t.DemandWeight*s.DemandScore +
			t.RiskWeight*s.RiskScore
	}
}

func clamp10(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ============================================================================
// SMALL NUMERIC HELPERS
// ============================================================================

func sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return sum(xs) / float64(len(xs))
}

func minOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
