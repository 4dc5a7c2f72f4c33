package engine

// ============================================================================
// TABLE BUILDER — Capped row mirror of a filtered subset
// ============================================================================

// BuildTable returns the first limit rows of the subset in its current row
// order, each as a flat column→value mapping over the dataset's columns.
// The five semantic columns carry typed values; other columns keep their
// raw cell text.
func BuildTable(sub *Subset, limit int) []TableRow {
	if limit <= 0 {
		limit = DefaultTunables().TableLimit
	}

	n := sub.Len()
	if n > limit {
		n = limit
	}

	ds := sub.Dataset()
	columns := ds.Columns()
	m := ds.Mapping()

	rows := make([]TableRow, 0, n)
	for i := 0; i < n; i++ {
		r := sub.Record(i)
		row := make(TableRow, len(columns))
		for j, col := range columns {
			switch col {
			case m.Area:
				row[col] = r.Locality
			case m.Year:
				row[col] = r.Year
			case m.City:
				row[col] = r.City
			case m.Price:
				row[col] = r.Price
			case m.Demand:
				row[col] = r.Demand
			default:
				if j < len(r.Cells) {
					row[col] = r.Cells[j]
				} else {
					row[col] = ""
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}
