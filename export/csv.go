// Package export renders filtered data and insights as downloadable CSV and
// PDF report files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/arealens-org/arealens/engine"
)

// WriteCSV streams a filtered subset as CSV: the dataset's normalized column
// headers followed by every subset row's raw cells, in subset order.
func WriteCSV(w io.Writer, sub *engine.Subset) error {
	cw := csv.NewWriter(w)

	columns := sub.Dataset().Columns()
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for i := 0; i < sub.Len(); i++ {
		cells := sub.Record(i).Cells
		row := make([]string, len(columns))
		copy(row, cells)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
