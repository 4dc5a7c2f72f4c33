package engine

import (
	"github.com/arealens-org/arealens/extract"
)

// ============================================================================
// ENGINE TYPES — Query parameters and the render-ready result bundle
// ============================================================================
// The bundle shape mirrors what frontends already consume from the query
// endpoint: summary text, chart labels/datasets, capped table rows, the
// entities the query resolved to, and ranked investment insights.
// ============================================================================

// Query holds the resolved parameters of one request. All fields are
// optional; an omitted field imposes no constraint.
type Query struct {
	Areas     []string
	Cities    []string
	YearRange *extract.YearRange
	Metric    extract.Metric
}

// Merge returns q with any non-empty field of explicit taking precedence.
// Free-text extraction never overrides parameters a caller set directly.
func (q Query) Merge(explicit Query) Query {
	if len(explicit.Areas) > 0 {
		q.Areas = explicit.Areas
	}
	if len(explicit.Cities) > 0 {
		q.Cities = explicit.Cities
	}
	if explicit.YearRange != nil {
		q.YearRange = explicit.YearRange
	}
	if explicit.Metric != "" {
		q.Metric = explicit.Metric
	}
	return q
}

// Result is the render-ready answer bundle for one query.
type Result struct {
	Summary     string             `json:"summary"`
	Chart       ChartData          `json:"chart"`
	Table       []TableRow         `json:"table"`
	Areas       []string           `json:"areas"`
	Cities      []string           `json:"cities"`
	Metric      extract.Metric     `json:"metric"`
	YearRange   *extract.YearRange `json:"year_range"`
	Insights    Insights           `json:"insights"`
	Suggestions []string           `json:"suggestions,omitempty"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartData is a label axis of years plus one series per locality × metric.
type ChartData struct {
	Labels   []int    `json:"labels"`
	Datasets []Series `json:"datasets"`
}

// Series is one plotted line/bar group. Data holds one value per label year;
// nil marks a year with no observations for this locality.
type Series struct {
	Label  string         `json:"label"`
	Metric extract.Metric `json:"metric"`
	Data   []*float64     `json:"data"`
}

// TableRow is a flat column→value mapping mirroring one subset row.
type TableRow map[string]interface{}

// ============================================================================
// INSIGHT TYPES
// ============================================================================

// Demand trend classifications.
const (
	TrendRising  = "Rising"
	TrendFalling = "Falling"
	TrendStable  = "Stable"
	TrendUnknown = "Unknown"
)

// AreaStats is the per-locality statistics record. Scores are computed
// across the statistics batch of one request, never globally, and are kept
// at full precision here.
type AreaStats struct {
	YearStart             int      `json:"year_start"`
	YearEnd               int      `json:"year_end"`
	AvgPrice              float64  `json:"avg_price"`
	MinPrice              float64  `json:"min_price"`
	MaxPrice              float64  `json:"max_price"`
	PriceCAGR             float64  `json:"price_cagr"`
	PriceVolatility       float64  `json:"price_volatility"`
	AvgDemand             float64  `json:"avg_demand"`
	TotalDemand           float64  `json:"total_demand"`
	DemandTrend           string   `json:"demand_trend"`
	PriceForecastNextYear *float64 `json:"price_forecast_next_year"`

	GrowthScore     float64 `json:"growth_score"`
	DemandScore     float64 `json:"demand_score"`
	RiskScore       float64 `json:"risk_score"`
	InvestmentScore float64 `json:"investment_score"`
}

// RankedArea is one entry of the descending investment ranking. The score
// is rounded to one decimal for display.
type RankedArea struct {
	Area            string  `json:"area"`
	InvestmentScore float64 `json:"investment_score"`
}

// Insights bundles the per-locality stats with their ranking.
type Insights struct {
	Areas       map[string]*AreaStats `json:"areas"`
	RankedAreas []RankedArea          `json:"ranked_areas"`
	YearRange   *extract.YearRange    `json:"year_range"`
	Metric      extract.Metric        `json:"metric"`
}

// ============================================================================
// TUNABLES — empirically chosen constants, kept visible and overridable
// ============================================================================

// Tunables collects the analytics thresholds and weights. The defaults are
// the values the scoring model was calibrated with; they are configuration,
// not derived quantities.
type Tunables struct {
	// Demand is Rising when last-year demand exceeds first-year demand by
	// this ratio, Falling when below DemandFallRatio, Stable between.
	DemandRiseRatio float64
	DemandFallRatio float64

	// Growth score maps CAGR linearly onto [0,10]: CAGRFloor scores 0,
	// CAGRFloor+CAGRSpan scores 10.
	CAGRFloor float64
	CAGRSpan  float64

	// Investment score blend weights.
	GrowthWeight float64
	DemandWeight float64
	RiskWeight   float64

	// Summary trend thresholds on last-year vs first-year mean price.
	PriceUpRatio   float64
	PriceDownRatio float64

	// Maximum table rows returned in a bundle.
	TableLimit int
}

// DefaultTunables returns the calibrated production values.
func DefaultTunables() Tunables {
	return Tunables{
		DemandRiseRatio: 1.1,
		DemandFallRatio: 0.9,
		CAGRFloor:       -0.05,
		CAGRSpan:        0.20,
		GrowthWeight:    0.4,
		DemandWeight:    0.4,
		RiskWeight:      0.2,
		PriceUpRatio:    1.05,
		PriceDownRatio:  0.95,
		TableLimit:      200,
	}
}
