package rawtable

import (
	"gokinet/domain/core"
)

// RawTable is parsed tabular file content prior to semantic column mapping.
// It is immutable once built: every later stage reads it, none modify it.
// Invariant: len of every row equals len(Headers).
type RawTable struct {
	SheetName string   `json:"sheet_name,omitempty"`
	Headers   []string `json:"headers"`
	Rows      [][]Cell `json:"rows"`
}

// FromStringRows builds a RawTable from decoded rows of text. When hasHeader
// is true the first row becomes the header row (blanks replaced by
// "Column N"); otherwise all headers are synthesized and every row is data.
// The table width is the widest row seen, so ragged input is padded with
// null cells rather than truncated.
func FromStringRows(sheetName string, rows [][]string, hasHeader bool) (*RawTable, error) {
	if len(rows) == 0 {
		return nil, core.NewNoHeaderRowError(sheetName)
	}

	var headerRaw []string
	dataRaw := rows
	if hasHeader {
		headerRaw = rows[0]
		dataRaw = rows[1:]
	}

	width := len(headerRaw)
	for _, row := range dataRaw {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil, core.NewNoHeaderRowError(sheetName)
	}

	headers := make([]string, width)
	for i := range headers {
		raw := ""
		if i < len(headerRaw) {
			raw = headerRaw[i]
		}
		headers[i] = HeaderName(raw, i)
	}

	cellRows := make([][]Cell, len(dataRaw))
	for r, row := range dataRaw {
		cells := make([]Cell, width)
		for i := range cells {
			if i < len(row) {
				cells[i] = CoerceString(row[i])
			} else {
				cells[i] = NullCell()
			}
		}
		cellRows[r] = cells
	}

	return &RawTable{
		SheetName: sheetName,
		Headers:   headers,
		Rows:      cellRows,
	}, nil
}

// Width returns the number of columns
func (t *RawTable) Width() int {
	return len(t.Headers)
}

// RowCount returns the number of data rows
func (t *RawTable) RowCount() int {
	return len(t.Rows)
}

// ColumnName returns the header for a column, or empty when out of range
func (t *RawTable) ColumnName(index int) string {
	if index < 0 || index >= len(t.Headers) {
		return ""
	}
	return t.Headers[index]
}

// Column returns the cells of one column in row order
func (t *RawTable) Column(index int) []Cell {
	if index < 0 || index >= len(t.Headers) {
		return nil
	}
	cells := make([]Cell, len(t.Rows))
	for r, row := range t.Rows {
		cells[r] = row[index]
	}
	return cells
}
