package rawtable

import (
	"errors"
	"testing"

	"gokinet/domain/core"
)

func TestFromStringRowsHeaders(t *testing.T) {
	table, err := FromStringRows("Sheet1", [][]string{
		{"time", "", "  ", "signal"},
		{"0", "a", "b", "1.5"},
	}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantHeaders := []string{"time", "Column 2", "Column 3", "signal"}
	if len(table.Headers) != len(wantHeaders) {
		t.Fatalf("got %d headers, want %d", len(table.Headers), len(wantHeaders))
	}
	for i, want := range wantHeaders {
		if table.Headers[i] != want {
			t.Errorf("header %d = %q, want %q", i, table.Headers[i], want)
		}
	}
}

func TestFromStringRowsPadsRagged(t *testing.T) {
	table, err := FromStringRows("data", [][]string{
		{"a", "b"},
		{"1"},
		{"2", "3", "4"},
	}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Width() != 3 {
		t.Fatalf("width = %d, want 3 (widest row wins)", table.Width())
	}
	if table.Headers[2] != "Column 3" {
		t.Errorf("header 3 = %q, want synthesized placeholder", table.Headers[2])
	}
	for r, row := range table.Rows {
		if len(row) != table.Width() {
			t.Errorf("row %d has %d cells, want %d", r, len(row), table.Width())
		}
	}
	if !table.Rows[0][1].IsNull() || !table.Rows[0][2].IsNull() {
		t.Error("short row should be padded with null cells")
	}
	if got, _ := table.Rows[1][2].AsNumber(); got != 4 {
		t.Errorf("long row cell = %v, want 4", got)
	}
}

func TestFromStringRowsHeaderless(t *testing.T) {
	table, err := FromStringRows("plate", [][]string{
		{"0", "1.5"},
		{"1", "2.5"},
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Headers[0] != "Column 1" || table.Headers[1] != "Column 2" {
		t.Errorf("headers = %v, want synthesized Column 1..N", table.Headers)
	}
	if table.RowCount() != 2 {
		t.Errorf("row count = %d, want 2 (first row stays data)", table.RowCount())
	}
}

func TestFromStringRowsFailures(t *testing.T) {
	tests := []struct {
		name      string
		rows      [][]string
		hasHeader bool
	}{
		{"no rows at all", nil, true},
		{"empty slice", [][]string{}, false},
		{"zero-width header", [][]string{{}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromStringRows("Sheet1", tt.rows, tt.hasHeader)
			if !errors.Is(err, core.ErrNoHeaderRow) {
				t.Errorf("expected ErrNoHeaderRow, got %v", err)
			}
		})
	}
}

func TestColumnAccessors(t *testing.T) {
	table, err := FromStringRows("Sheet1", [][]string{
		{"time", "signal"},
		{"0", "1"},
		{"10", "2"},
	}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	col := table.Column(1)
	if len(col) != 2 {
		t.Fatalf("column length = %d, want 2", len(col))
	}
	if got, _ := col[1].AsNumber(); got != 2 {
		t.Errorf("column cell = %v, want 2", got)
	}

	if table.ColumnName(0) != "time" {
		t.Errorf("ColumnName(0) = %q, want %q", table.ColumnName(0), "time")
	}
	if table.ColumnName(5) != "" {
		t.Error("out-of-range column name should be empty")
	}
	if table.Column(-1) != nil {
		t.Error("out-of-range column should be nil")
	}
}
