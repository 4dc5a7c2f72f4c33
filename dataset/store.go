package dataset

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ============================================================================
// DATASET STORE — Single-flight cached load of the canonical dataset
// ============================================================================
// The dataset is loaded at most once per process. Concurrent first callers
// are serialized behind sync.Once; every caller observes either the fully
// loaded dataset or the same load failure. There is no re-read and no
// file-watching — restart the process to pick up new data.
// ============================================================================

// LoadError is the hard failure for a missing backing file or a required
// column absent after header normalization.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dataset: %s (%s): %v", e.Reason, e.Path, e.Err)
	}
	return fmt.Sprintf("dataset: %s (%s)", e.Reason, e.Path)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Record is one typed dataset row. Cells keeps the raw source values in
// column order so tables and CSV export can mirror the full row.
type Record struct {
	Locality string
	Year     int
	City     string
	Price    float64
	Demand   float64
	Cells    []string
}

// Dataset is the immutable in-memory table. Never mutated after load;
// filtering produces index views, never copies.
type Dataset struct {
	records []Record
	columns []string // normalized, source order
	mapping FieldMapping
}

// Records returns the backing rows. Callers must not modify them.
func (d *Dataset) Records() []Record { return d.records }

// Len returns the row count.
func (d *Dataset) Len() int { return len(d.records) }

// Columns returns the normalized column names in source order.
func (d *Dataset) Columns() []string { return d.columns }

// Mapping returns the logical→physical field mapping in effect.
func (d *Dataset) Mapping() FieldMapping { return d.mapping }

// Localities returns the distinct locality names, sorted.
func (d *Dataset) Localities() []string {
	out := d.LocalitiesInOrder()
	sort.Strings(out)
	return out
}

// LocalitiesInOrder returns distinct locality names in encounter order.
func (d *Dataset) LocalitiesInOrder() []string {
	return distinct(d.records, func(r Record) string { return r.Locality })
}

// Cities returns distinct city names in encounter order.
func (d *Dataset) Cities() []string {
	return distinct(d.records, func(r Record) string { return r.City })
}

func distinct(records []Record, key func(Record) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		v := key(r)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// ============================================================================
// STORE
// ============================================================================

// Store loads and caches a Dataset from a Source.
type Store struct {
	source  Source
	mapping FieldMapping

	once sync.Once
	ds   *Dataset
	err  error
}

// NewStore creates a store. Load is lazy; construction never touches the source.
func NewStore(source Source, mapping FieldMapping) *Store {
	return &Store{source: source, mapping: mapping}
}

// Load returns the cached dataset, reading the source on first call only.
// A failed load is cached too: the process has no partial dataset state.
func (s *Store) Load() (*Dataset, error) {
	s.once.Do(func() {
		s.ds, s.err = s.load()
		if s.err == nil {
			log.Printf("📦 Dataset: loaded %d rows, %d localities, %d cities",
				s.ds.Len(), len(s.ds.LocalitiesInOrder()), len(s.ds.Cities()))
		}
	})
	return s.ds, s.err
}

func (s *Store) load() (*Dataset, error) {
	headers, rows, err := s.source.Read()
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(headers))
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		columns[i] = NormalizeColumn(h)
		if _, dup := index[columns[i]]; !dup {
			index[columns[i]] = i
		}
	}

	var missing []string
	for _, col := range s.mapping.columns() {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &LoadError{Reason: "missing expected columns: " + strings.Join(missing, ", ")}
	}

	areaIdx := index[s.mapping.Area]
	yearIdx := index[s.mapping.Year]
	cityIdx := index[s.mapping.City]
	priceIdx := index[s.mapping.Price]
	demandIdx := index[s.mapping.Demand]

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		if len(row) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, row)
			row = padded
		}

		year, err := parseYear(row[yearIdx])
		if err != nil {
			continue // rows without a usable year carry no signal
		}

		records = append(records, Record{
			Locality: strings.TrimSpace(row[areaIdx]),
			Year:     year,
			City:     strings.TrimSpace(row[cityIdx]),
			Price:    parseNumber(row[priceIdx]),
			Demand:   parseNumber(row[demandIdx]),
			Cells:    row,
		})
	}

	return &Dataset{records: records, columns: columns, mapping: s.mapping}, nil
}

func parseYear(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	// Excel sometimes serves years as "2019.0"
	if i := strings.Index(cell, "."); i > 0 {
		cell = cell[:i]
	}
	return strconv.Atoi(cell)
}

// parseNumber reads a numeric cell, tolerating thousands separators.
// Unparsable cells read as 0, mirroring coercion at the source.
func parseNumber(cell string) float64 {
	cell = strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return f
}
