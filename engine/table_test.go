package engine

import (
	"testing"
)

// ============================================================================
// TABLE BUILDER TESTS
// ============================================================================

func TestTableMirrorsSubsetRows(t *testing.T) {
	ds := buildDataset(t, []row{
		{"Wakad", 2020, "Pune", 5400, 120},
		{"Baner", 2021, "Pune", 6100, 95},
	})
	rows := BuildTable(Filter(ds, Query{}), 200)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	m := ds.Mapping()
	first := rows[0]
	if first[m.Area] != "Wakad" || first[m.City] != "Pune" {
		t.Errorf("text columns: %v", first)
	}
	if first[m.Year] != 2020 {
		t.Errorf("year column: got %v (%T)", first[m.Year], first[m.Year])
	}
	if first[m.Price] != 5400.0 || first[m.Demand] != 120.0 {
		t.Errorf("numeric columns: %v", first)
	}

	for _, col := range ds.Columns() {
		if _, ok := first[col]; !ok {
			t.Errorf("missing column %q", col)
		}
	}
	if len(first) != len(ds.Columns()) {
		t.Errorf("row has %d keys, dataset has %d columns", len(first), len(ds.Columns()))
	}
}

func TestTableCapsRowCount(t *testing.T) {
	var rows []row
	for i := 0; i < 250; i++ {
		rows = append(rows, row{"A", 2020, "Pune", 100, 10})
	}
	ds := buildDataset(t, rows)

	if got := len(BuildTable(Filter(ds, Query{}), 200)); got != 200 {
		t.Errorf("capped length: got %d, want 200", got)
	}
	if got := len(BuildTable(Filter(ds, Query{}), 10)); got != 10 {
		t.Errorf("custom cap: got %d, want 10", got)
	}
}

func TestTableZeroLimitUsesDefault(t *testing.T) {
	var rows []row
	for i := 0; i < 210; i++ {
		rows = append(rows, row{"A", 2020, "Pune", 100, 10})
	}
	ds := buildDataset(t, rows)

	if got := len(BuildTable(Filter(ds, Query{}), 0)); got != DefaultTunables().TableLimit {
		t.Errorf("default cap: got %d, want %d", got, DefaultTunables().TableLimit)
	}
}

func TestTableEmptySubset(t *testing.T) {
	ds := buildDataset(t, abTestRows())
	rows := BuildTable(Filter(ds, Query{Areas: []string{"nowhere"}}), 200)

	if rows == nil || len(rows) != 0 {
		t.Errorf("expected empty non-nil table, got %v", rows)
	}
}
