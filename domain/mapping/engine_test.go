package mapping

import (
	"testing"

	"gokinet/domain/rawtable"
	"gokinet/domain/timeaxis"
)

func mustTable(t *testing.T, rows [][]string) *rawtable.RawTable {
	t.Helper()
	table, err := rawtable.FromStringRows("Sheet1", rows, true)
	if err != nil {
		t.Fatalf("building table: %v", err)
	}
	return table
}

func intPtr(i int) *int { return &i }

func TestValidateRejectsIncompleteSelection(t *testing.T) {
	table := mustTable(t, [][]string{
		{"time", "signal"},
		{"0", "1"},
	})

	tests := []struct {
		name      string
		selection Selection
		wantCodes []string
	}{
		{
			name:      "nothing chosen",
			selection: NewSelection(),
			wantCodes: []string{CodeTimeColumnMissing, CodeNoValueColumns},
		},
		{
			name:      "missing value columns",
			selection: Selection{TimeColumn: 0},
			wantCodes: []string{CodeNoValueColumns},
		},
		{
			name:      "time column out of range",
			selection: Selection{TimeColumn: 9, ValueColumns: []int{1}},
			wantCodes: []string{CodeColumnOutOfRange},
		},
		{
			name:      "experiment column out of range",
			selection: Selection{TimeColumn: 0, ValueColumns: []int{1}, ExperimentColumn: intPtr(7)},
			wantCodes: []string{CodeColumnOutOfRange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, errs := Apply(table, tt.selection)
			if result != nil {
				t.Fatal("expected no result when pre-check fails")
			}
			if len(errs) != len(tt.wantCodes) {
				t.Fatalf("got %d errors %v, want %d", len(errs), errs, len(tt.wantCodes))
			}
			for i, want := range tt.wantCodes {
				if errs[i].Code != want {
					t.Errorf("error %d code = %s, want %s", i, errs[i].Code, want)
				}
			}
		})
	}
}

func TestApplyGroupsByExperiment(t *testing.T) {
	table := mustTable(t, [][]string{
		{"time", "value", "exp"},
		{"0", "1", "A"},
		{"1", "2", "A"},
		{"0", "3", "B"},
	})

	result, errs := Apply(table, Selection{
		TimeColumn:       0,
		ValueColumns:     []int{1},
		ExperimentColumn: intPtr(2),
	})
	if len(errs) > 0 {
		t.Fatalf("unexpected config errors: %v", errs)
	}

	if result.Stats.ExperimentCount != 2 || result.Stats.SeriesCount != 2 || result.Stats.PointCount != 3 {
		t.Fatalf("stats = %+v, want 2 experiments, 2 series, 3 points", result.Stats)
	}

	exps := result.Dataset.Experiments
	if exps[0].Name != "A" || exps[1].Name != "B" {
		t.Fatalf("experiment order = [%s %s], want first-seen [A B]", exps[0].Name, exps[1].Name)
	}
	if got := exps[0].Series[0].PointCount(); got != 2 {
		t.Errorf("experiment A points = %d, want 2", got)
	}
	if got := exps[1].Series[0].PointCount(); got != 1 {
		t.Errorf("experiment B points = %d, want 1", got)
	}
}

func TestApplyDiscardsRowsWithUnparsableTime(t *testing.T) {
	rows := [][]string{{"time", "value"}}
	// rows 1..7 are junk, rows 8..9 parse
	for i := 0; i < 7; i++ {
		rows = append(rows, []string{"junk", "1"})
	}
	rows = append(rows, []string{"8", "2"}, []string{"9", "3"})

	result, errs := Apply(mustTable(t, rows), Selection{TimeColumn: 0, ValueColumns: []int{1}})
	if len(errs) > 0 {
		t.Fatalf("unexpected config errors: %v", errs)
	}

	if result.RowErrors.Count != 7 {
		t.Errorf("row error count = %d, want 7", result.RowErrors.Count)
	}
	wantRows := []int{1, 2, 3, 4, 5}
	if len(result.RowErrors.Rows) != len(wantRows) {
		t.Fatalf("verbatim rows = %v, want first %d only", result.RowErrors.Rows, len(wantRows))
	}
	for i, want := range wantRows {
		if result.RowErrors.Rows[i] != want {
			t.Errorf("verbatim row %d = %d, want %d", i, result.RowErrors.Rows[i], want)
		}
	}
	if result.Stats.PointCount != 2 {
		t.Errorf("point count = %d, want 2 surviving points", result.Stats.PointCount)
	}
}

func TestApplyDropsValueCellsIndependently(t *testing.T) {
	table := mustTable(t, [][]string{
		{"time", "od600", "fluor"},
		{"0", "1.0", "5.0"},
		{"1", "bad", "6.0"},
		{"2", "3.0", ""},
	})

	result, errs := Apply(table, Selection{TimeColumn: 0, ValueColumns: []int{1, 2}})
	if len(errs) > 0 {
		t.Fatalf("unexpected config errors: %v", errs)
	}
	if result.RowErrors.Count != 0 {
		t.Fatalf("value failures must not discard rows, got %d row errors", result.RowErrors.Count)
	}

	series := result.Dataset.Experiments[0].Series
	if len(series) != 2 {
		t.Fatalf("series count = %d, want 2", len(series))
	}

	od := series[0]
	if od.Meta.ValueColumn != "od600" || od.PointCount() != 2 || od.Meta.DroppedPoints != 1 {
		t.Errorf("od600 series = %d points %d dropped, want 2 points 1 dropped", od.PointCount(), od.Meta.DroppedPoints)
	}
	fluor := series[1]
	if fluor.PointCount() != 2 || fluor.Meta.DroppedPoints != 1 {
		t.Errorf("fluor series = %d points %d dropped, want 2 points 1 dropped", fluor.PointCount(), fluor.Meta.DroppedPoints)
	}
}

func TestApplySeparatesReplicates(t *testing.T) {
	table := mustTable(t, [][]string{
		{"time", "signal", "rep"},
		{"0", "1", "1"},
		{"0", "2", "2"},
		{"1", "3", "1"},
		{"1", "4", ""},
	})

	result, errs := Apply(table, Selection{
		TimeColumn:      0,
		ValueColumns:    []int{1},
		ReplicateColumn: intPtr(2),
	})
	if len(errs) > 0 {
		t.Fatalf("unexpected config errors: %v", errs)
	}

	series := result.Dataset.Experiments[0].Series
	if len(series) != 3 {
		t.Fatalf("series count = %d, want 3 (rep 1, rep 2, no replicate)", len(series))
	}
	if series[0].Name != "signal (rep 1)" || series[0].PointCount() != 2 {
		t.Errorf("first series = %q with %d points, want signal (rep 1) with 2", series[0].Name, series[0].PointCount())
	}
	if series[1].Name != "signal (rep 2)" || series[1].Meta.Replicate == nil {
		t.Errorf("second series = %q, want signal (rep 2) with replicate label", series[1].Name)
	}
	if series[2].Name != "signal" || series[2].Meta.Replicate != nil {
		t.Errorf("blank replicate cell should map to the bare series, got %q", series[2].Name)
	}
}

func TestApplyExperimentLabelFallbacks(t *testing.T) {
	t.Run("blank cell becomes unlabeled", func(t *testing.T) {
		table := mustTable(t, [][]string{
			{"time", "value", "exp"},
			{"0", "1", ""},
			{"1", "2", "A"},
		})
		result, _ := Apply(table, Selection{
			TimeColumn:       0,
			ValueColumns:     []int{1},
			ExperimentColumn: intPtr(2),
		})
		if result.Dataset.Experiments[0].Name != DefaultExperimentLabel {
			t.Errorf("first experiment = %q, want %q", result.Dataset.Experiments[0].Name, DefaultExperimentLabel)
		}
	})

	t.Run("absent column uses sheet name", func(t *testing.T) {
		table := mustTable(t, [][]string{
			{"time", "value"},
			{"0", "1"},
		})
		result, _ := Apply(table, Selection{TimeColumn: 0, ValueColumns: []int{1}})
		if got := result.Dataset.Experiments[0].Name; got != "Sheet1" {
			t.Errorf("experiment name = %q, want sheet name", got)
		}
	})
}

func TestApplyDeterministic(t *testing.T) {
	table := mustTable(t, [][]string{
		{"time", "od600", "fluor", "exp", "temp"},
		{"0", "1", "10", "B", "37"},
		{"1", "2", "bad", "A", "37"},
		{"2", "3", "30", "B", "42"},
		{"junk", "4", "40", "A", "37"},
	})
	sel := Selection{
		TimeColumn:       0,
		ValueColumns:     []int{1, 2},
		ExperimentColumn: intPtr(3),
	}

	first, errs := Apply(table, sel)
	if len(errs) > 0 {
		t.Fatalf("unexpected config errors: %v", errs)
	}
	second, _ := Apply(table, sel)

	if first.Stats != second.Stats {
		t.Errorf("stats differ across runs: %+v vs %+v", first.Stats, second.Stats)
	}
	if first.Dataset.Fingerprint() != second.Dataset.Fingerprint() {
		t.Error("datasets from identical inputs should fingerprint identically")
	}
	if first.Dataset.ID == second.Dataset.ID {
		t.Error("generated IDs should still differ between runs")
	}
}

func TestApplyHonorsDeclaredUnit(t *testing.T) {
	table := mustTable(t, [][]string{
		{"Time (min)", "value"},
		{"0", "1"},
		{"1", "2"},
	})

	// selection says seconds, header declares minutes: the declaration wins
	result, _ := Apply(table, Selection{
		TimeColumn:   0,
		ValueColumns: []int{1},
		TimeUnit:     timeaxis.UnitSeconds,
	})

	series := result.Dataset.Experiments[0].Series[0]
	if series.Time[1] != 60 {
		t.Errorf("time[1] = %v, want 60 (declared minutes)", series.Time[1])
	}
	if result.TimeAxis.Unit != timeaxis.UnitMinutes {
		t.Errorf("axis unit = %q, want minutes", result.TimeAxis.Unit)
	}
}

func TestApplyReportsSerialSuspects(t *testing.T) {
	table := mustTable(t, [][]string{
		{"time", "value"},
		{"45123.5", "1"},
		{"45123.6", "2"},
	})

	result, _ := Apply(table, Selection{TimeColumn: 0, ValueColumns: []int{1}})
	if result.TimeAxis.SerialSuspectCount != 2 {
		t.Fatalf("serial suspect count = %d, want 2", result.TimeAxis.SerialSuspectCount)
	}
	if got := result.TimeAxis.SerialSuspectRows; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("serial suspect rows = %v, want 1-based [1 2]", got)
	}
	// informational only: both rows still mapped
	if result.Stats.PointCount != 2 {
		t.Errorf("point count = %d, want 2", result.Stats.PointCount)
	}
}

func TestApplyDatetimeColumn(t *testing.T) {
	table := mustTable(t, [][]string{
		{"timestamp", "value"},
		{"2023-06-01 10:00:00", "1"},
		{"2023-06-01 10:00:01", "2"},
		{"2023-06-01 10:00:03.5", "3"},
	})

	result, _ := Apply(table, Selection{TimeColumn: 0, ValueColumns: []int{1}})

	series := result.Dataset.Experiments[0].Series[0]
	want := []float64{0, 1, 3.5}
	for i, w := range want {
		if series.Time[i] != w {
			t.Errorf("time[%d] = %v, want %v", i, series.Time[i], w)
		}
	}
	if result.TimeAxis.Kind != timeaxis.KindDatetime {
		t.Errorf("axis kind = %q, want datetime", result.TimeAxis.Kind)
	}
	if result.TimeAxis.Reference == nil {
		t.Error("reference timestamp should be exposed for display")
	}
}
