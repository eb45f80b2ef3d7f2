package testkit

import (
	"bytes"
	"testing"
)

func TestKineticsGeneratorDeterministic(t *testing.T) {
	cfg := DefaultKineticsConfig()

	first := NewKineticsGenerator(cfg).CSV()
	second := NewKineticsGenerator(cfg).CSV()

	if !bytes.Equal(first, second) {
		t.Error("same seed should generate identical output")
	}

	cfg.Seed = 7
	reseeded := NewKineticsGenerator(cfg).CSV()
	if bytes.Equal(first, reseeded) {
		t.Error("different seed should change the noise")
	}
}

func TestKineticsGeneratorShape(t *testing.T) {
	cfg := DefaultKineticsConfig()
	cfg.Experiments = 3
	cfg.Replicates = 2
	cfg.Points = 5

	rows := NewKineticsGenerator(cfg).Rows()

	wantRows := 1 + 3*2*5
	if len(rows) != wantRows {
		t.Fatalf("generated %d rows, want %d", len(rows), wantRows)
	}
	if len(rows[0]) != 5 || rows[0][0] != "time" {
		t.Errorf("header = %v", rows[0])
	}

	table := NewKineticsGenerator(cfg).Table()
	if table.RowCount() != wantRows-1 {
		t.Errorf("table rows = %d, want %d", table.RowCount(), wantRows-1)
	}
	if table.SheetName != "synthetic" {
		t.Errorf("sheet = %q", table.SheetName)
	}
}
