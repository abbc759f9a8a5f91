// Package dataset parses time-series CSV exports into in-memory tables.
package dataset

// Dataset is an in-memory table produced from one source CSV file: named
// columns from the header row, ordered data rows with values kept verbatim
// as strings.
type Dataset struct {
	// Name is the base name of the source file.
	Name string
	// Columns are the header field names, whitespace-trimmed.
	Columns []string
	// Rows holds the data rows in file order. Every row has exactly
	// len(Columns) fields.
	Rows [][]string
	// SkippedRows counts malformed rows dropped under PolicySkip.
	SkippedRows int
}

// NumRows returns the number of data rows.
func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int {
	return len(d.Columns)
}

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all values of the named column in row order.
func (d *Dataset) Column(name string) ([]string, bool) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx]
	}
	return values, true
}
