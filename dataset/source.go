package dataset

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	_ "github.com/lib/pq"
	"github.com/xuri/excelize/v2"
)

// ============================================================================
// SOURCES — Row-oriented backends for the Dataset Store
// ============================================================================
// A Source reads raw headers + string cells from wherever the data lives.
// The Store normalizes, validates, and types the rows; sources stay dumb.
//
// Implementations:
//   ExcelSource    — first sheet of an .xlsx workbook
//   CSVSource      — plain CSV file
//   PostgresSource — SELECT * from a table
// ============================================================================

// Source provides raw tabular data: one header row plus data rows.
type Source interface {
	Read() (headers []string, rows [][]string, err error)
}

// ============================================================================
// EXCEL SOURCE
// ============================================================================

// ExcelSource reads the first sheet of an Excel workbook.
type ExcelSource struct {
	Path string
}

// NewExcelSource creates a source for the workbook at path.
func NewExcelSource(path string) *ExcelSource {
	return &ExcelSource{Path: path}
}

func (s *ExcelSource) Read() ([]string, [][]string, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return nil, nil, &LoadError{Path: s.Path, Reason: "dataset file not found", Err: err}
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, nil, &LoadError{Path: s.Path, Reason: "failed to open workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, &LoadError{Path: s.Path, Reason: "workbook has no sheets"}
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, &LoadError{Path: s.Path, Reason: "failed to read sheet", Err: err}
	}
	if len(all) == 0 {
		return nil, nil, &LoadError{Path: s.Path, Reason: "sheet is empty"}
	}

	return all[0], all[1:], nil
}

// ============================================================================
// CSV SOURCE
// ============================================================================

// CSVSource reads a CSV file from disk.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a source for the CSV file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Read() ([]string, [][]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, nil, &LoadError{Path: s.Path, Reason: "dataset file not found", Err: err}
	}
	defer f.Close()

	return readCSV(f, s.Path)
}

// CSVReaderSource reads CSV data from an in-memory reader. Handy for tests
// and for callers that fetch the bytes themselves.
type CSVReaderSource struct {
	Name   string
	Reader io.Reader
}

func (s *CSVReaderSource) Read() ([]string, [][]string, error) {
	return readCSV(s.Reader, s.Name)
}

func readCSV(r io.Reader, name string) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, &LoadError{Path: name, Reason: "failed to read CSV headers", Err: err}
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

// ============================================================================
// POSTGRES SOURCE
// ============================================================================

// PostgresSource reads every row of a table over a lib/pq connection.
// Column order follows the table definition; cells are scanned as text.
type PostgresSource struct {
	DSN   string
	Table string
}

// NewPostgresSource creates a source for the named table.
func NewPostgresSource(dsn, table string) *PostgresSource {
	return &PostgresSource{DSN: dsn, Table: table}
}

func (s *PostgresSource) Read() ([]string, [][]string, error) {
	db, err := sql.Open("postgres", s.DSN)
	if err != nil {
		return nil, nil, &LoadError{Path: s.Table, Reason: "postgres open", Err: err}
	}
	defer db.Close()

	if !validTableName(s.Table) {
		return nil, nil, &LoadError{Path: s.Table, Reason: "invalid table name"}
	}

	rows, err := db.Query(fmt.Sprintf(`SELECT * FROM %q`, s.Table))
	if err != nil {
		return nil, nil, &LoadError{Path: s.Table, Reason: "postgres query", Err: err}
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, nil, &LoadError{Path: s.Table, Reason: "postgres columns", Err: err}
	}

	var out [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(headers))
		dest := make([]interface{}, len(headers))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			continue
		}
		row := make([]string, len(headers))
		for i, c := range cells {
			row[i] = c.String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &LoadError{Path: s.Table, Reason: "postgres scan", Err: err}
	}

	return headers, out, nil
}

func validTableName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, `"';`)
}
