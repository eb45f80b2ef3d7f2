package mapping

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gokinet/domain/core"
	"gokinet/domain/dataset"
	"gokinet/domain/rawtable"
	"gokinet/domain/timeaxis"
)

// maxVerbatimRowErrors caps how many offending row indices are kept
// verbatim before the remainder rolls into the count.
const maxVerbatimRowErrors = 5

// Stats summarizes one mapping pass
type Stats struct {
	ExperimentCount int `json:"experiment_count"`
	SeriesCount     int `json:"series_count"`
	PointCount      int `json:"point_count"`
}

// RowErrors records rows discarded for unparsable time: the first few
// 1-based data-row indices verbatim, the rest only counted.
type RowErrors struct {
	Rows  []int `json:"rows,omitempty"`
	Count int   `json:"count"`
}

// TimeAxisInfo is the displayable summary of the normalized time column.
// Row indices are 1-based over data rows, like RowErrors.
type TimeAxisInfo struct {
	Kind               timeaxis.Kind `json:"kind"`
	Unit               timeaxis.Unit `json:"unit,omitempty"`
	Reference          *time.Time    `json:"reference,omitempty"`
	SerialSuspectRows  []int         `json:"serial_suspect_rows,omitempty"`
	SerialSuspectCount int           `json:"serial_suspect_count"`
}

// Result bundles everything one mapping pass produces
type Result struct {
	Dataset   *dataset.Dataset `json:"dataset"`
	Stats     Stats            `json:"stats"`
	RowErrors RowErrors        `json:"row_errors"`
	TimeAxis  TimeAxisInfo     `json:"time_axis"`
}

// Apply builds a Dataset from a table and a selection in one pass over the
// rows. A failed pre-check returns only the error list, never a partial
// Dataset. Soft failures never abort: a row with unparsable time is
// discarded and counted, an unparsable value cell only bumps its series'
// droppedPoints. Re-applying the same inputs is idempotent up to
// generated IDs.
func Apply(table *rawtable.RawTable, sel Selection) (*Result, []ConfigError) {
	if errs := sel.Validate(table); len(errs) > 0 {
		return nil, errs
	}

	unit := sel.TimeUnit
	if unit == "" {
		unit = timeaxis.UnitSeconds
	}
	var declared *timeaxis.Unit
	if u, ok := timeaxis.DeclaredUnit(table.ColumnName(sel.TimeColumn)); ok {
		declared = &u
	}
	axis := timeaxis.Normalize(table.Column(sel.TimeColumn), declared, unit)

	structural := map[int]bool{sel.TimeColumn: true}
	for _, vc := range sel.ValueColumns {
		structural[vc] = true
	}
	if sel.ExperimentColumn != nil {
		structural[*sel.ExperimentColumn] = true
	}
	if sel.ReplicateColumn != nil {
		structural[*sel.ReplicateColumn] = true
	}

	b := newBuilder(table.SheetName)
	var rowErrs RowErrors

	for r, row := range table.Rows {
		secs := axis.Seconds[r]
		if math.IsNaN(secs) {
			rowErrs.Count++
			if len(rowErrs.Rows) < maxVerbatimRowErrors {
				rowErrs.Rows = append(rowErrs.Rows, r+1)
			}
			continue
		}

		exp := b.experiment(resolveLabel(row, sel, table.SheetName))

		var replicate *string
		if sel.ReplicateColumn != nil {
			if label := row[*sel.ReplicateColumn].Display(); label != "" {
				replicate = &label
			}
		}

		for _, vc := range sel.ValueColumns {
			ser := b.series(exp, table.ColumnName(vc), replicate)
			if y, ok := row[vc].AsNumber(); ok {
				ser.AppendPoint(secs, y)
			} else {
				ser.Meta.DroppedPoints++
			}
		}

		for col, cell := range row {
			if structural[col] || cell.IsNull() {
				continue
			}
			b.observeMeta(exp, table.ColumnName(col), cell)
		}
	}

	ds := b.finish()

	return &Result{
		Dataset: ds,
		Stats: Stats{
			ExperimentCount: ds.ExperimentCount(),
			SeriesCount:     ds.SeriesCount(),
			PointCount:      ds.PointCount(),
		},
		RowErrors: rowErrs,
		TimeAxis: TimeAxisInfo{
			Kind:               axis.Kind,
			Unit:               axis.Unit,
			Reference:          axis.Reference,
			SerialSuspectRows:  oneBased(axis.SerialSuspects),
			SerialSuspectCount: len(axis.SerialSuspects),
		},
	}, nil
}

// resolveLabel picks the experiment label for one row
func resolveLabel(row []rawtable.Cell, sel Selection, fallback string) string {
	if sel.ExperimentColumn != nil {
		if label := row[*sel.ExperimentColumn].Display(); strings.TrimSpace(label) != "" {
			return label
		}
		return DefaultExperimentLabel
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return DefaultExperimentLabel
}

func oneBased(indices []int) []int {
	if len(indices) == 0 {
		return nil
	}
	shifted := make([]int, len(indices))
	for i, idx := range indices {
		shifted[i] = idx + 1
	}
	return shifted
}

// seriesKey identifies a series inside one mapping pass. Replicate labels
// are never empty (blank cells mean no replicate), so "" encodes nil.
type seriesKey struct {
	experiment string
	column     string
	replicate  string
}

// builder accumulates the dataset behind explicit insertion-ordered
// lookups: slices carry the order, maps only speed up the get-or-create.
// Output order never depends on map iteration.
type builder struct {
	ds       *dataset.Dataset
	expIndex map[string]*dataset.Experiment
	serIndex map[seriesKey]*dataset.Series
	meta     map[string]*metaAccumulator
}

func newBuilder(name string) *builder {
	if strings.TrimSpace(name) == "" {
		name = "dataset"
	}
	return &builder{
		ds: &dataset.Dataset{
			ID:        core.DatasetID(core.NewID()),
			Name:      name,
			CreatedAt: core.Now(),
		},
		expIndex: make(map[string]*dataset.Experiment),
		serIndex: make(map[seriesKey]*dataset.Series),
		meta:     make(map[string]*metaAccumulator),
	}
}

// experiment gets or creates the experiment for a label, first-seen order
func (b *builder) experiment(label string) *dataset.Experiment {
	if exp, ok := b.expIndex[label]; ok {
		return exp
	}
	exp := &dataset.Experiment{
		ID:   core.ExperimentID(core.NewID()),
		Name: label,
	}
	b.ds.Experiments = append(b.ds.Experiments, exp)
	b.expIndex[label] = exp
	b.meta[label] = newMetaAccumulator()
	return exp
}

// series gets or creates a series under an experiment, first-seen order
func (b *builder) series(exp *dataset.Experiment, column string, replicate *string) *dataset.Series {
	key := seriesKey{experiment: exp.Name, column: column}
	if replicate != nil {
		key.replicate = *replicate
	}
	if ser, ok := b.serIndex[key]; ok {
		return ser
	}

	name := column
	if replicate != nil {
		name = fmt.Sprintf("%s (rep %s)", column, *replicate)
	}
	ser := &dataset.Series{
		ID:   core.SeriesID(core.NewID()),
		Name: name,
		Meta: dataset.SeriesMeta{
			ValueColumn: column,
			Replicate:   replicate,
		},
	}
	exp.Series = append(exp.Series, ser)
	b.serIndex[key] = ser
	return ser
}

func (b *builder) observeMeta(exp *dataset.Experiment, column string, cell rawtable.Cell) {
	b.meta[exp.Name].observe(column, cell)
}

// finish folds the metadata accumulators into the experiments
func (b *builder) finish() *dataset.Dataset {
	for _, exp := range b.ds.Experiments {
		raw, consistency := b.meta[exp.Name].finalize()
		exp.MetaRaw = raw
		exp.MetaConsistency = consistency
	}
	return b.ds
}
