// Package ingestion turns a raw sales table into normalized sales records.
//
// The pipeline is a fixed sequence: the schema validator gates the table on its
// original headers, the currency is detected from those same headers, and the
// coercer normalizes the headers and converts every row into an
// entity.SalesRecord. Every function here is pure and safe for concurrent use.
package ingestion

// Table is a raw tabular input as read from a spreadsheet.
// Each row is positionally aligned with Headers; a blank cell is "".
type Table struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the value at row i, column j, or "" when the row is short.
func (t *Table) Cell(i, j int) string {
	if i < 0 || i >= len(t.Rows) || j < 0 {
		return ""
	}
	row := t.Rows[i]
	if j >= len(row) {
		return ""
	}
	return row[j]
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
