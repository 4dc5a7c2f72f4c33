package dataset

import (
	"regexp"
	"strings"
)

// ============================================================================
// FIELD MAPPING — Logical fields → physical dataset columns
// ============================================================================
// The store resolves five semantic fields against the backing table. The
// mapping is configuration, not code: callers working with a differently
// labelled export swap the physical names and nothing else changes.
// Physical names are compared after normalization (trim, lowercase,
// whitespace collapsed to underscore).
// ============================================================================

// FieldMapping names the physical column backing each semantic field.
type FieldMapping struct {
	Area   string `json:"area"`   // locality / micro-market name
	Year   string `json:"year"`   // observation year
	City   string `json:"city"`   // parent city
	Price  string `json:"price"`  // average flat rate for the year
	Demand string `json:"demand"` // units sold in the year
}

// DefaultFieldMapping matches the canonical residential dataset export.
func DefaultFieldMapping() FieldMapping {
	return FieldMapping{
		Area:   "final_location",
		Year:   "year",
		City:   "city",
		Price:  "flat_-_weighted_average_rate",
		Demand: "total_sold_-_igr",
	}
}

// columns returns the physical names in a fixed order for validation.
func (m FieldMapping) columns() []string {
	return []string{m.Area, m.Year, m.City, m.Price, m.Demand}
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeColumn converts a raw header to its normalized physical name:
// "Flat - Weighted Average Rate" → "flat_-_weighted_average_rate".
func NormalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return whitespaceRe.ReplaceAllString(name, "_")
}
