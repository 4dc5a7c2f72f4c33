package engine

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/arealens-org/arealens/dataset"
)

// ============================================================================
// SHARED TEST FIXTURES
// ============================================================================

// row is one fixture observation.
type row struct {
	loc    string
	year   int
	city   string
	price  float64
	demand float64
}

// buildDataset loads fixture rows through the real store path so tests
// exercise the same parsing the production loader does.
func buildDataset(t *testing.T, rows []row) *dataset.Dataset {
	t.Helper()

	var b strings.Builder
	b.WriteString("Final Location,Year,City,Flat - Weighted Average Rate,Total Sold - IGR\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s,%d,%s,%g,%g\n", r.loc, r.year, r.city, r.price, r.demand)
	}

	store := dataset.NewStore(
		&dataset.CSVReaderSource{Name: "fixture.csv", Reader: strings.NewReader(b.String())},
		dataset.DefaultFieldMapping(),
	)
	ds, err := store.Load()
	if err != nil {
		t.Fatalf("fixture load failed: %v", err)
	}
	return ds
}

// abTestRows is the two-locality growth scenario: A grows 100→121, B
// declines 100→90, over 2020–2022.
func abTestRows() []row {
	return []row{
		{"A", 2020, "Pune", 100, 50},
		{"A", 2021, "Pune", 110, 60},
		{"A", 2022, "Pune", 121, 70},
		{"B", 2020, "Pune", 100, 40},
		{"B", 2021, "Pune", 95, 40},
		{"B", 2022, "Pune", 90, 38},
	}
}

func approx(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, eps)
	}
}
