package mapping

import (
	"gokinet/domain/dataset"
	"gokinet/domain/rawtable"
)

// metaAccumulator tallies non-structural column values for one experiment.
// Columns and values both keep first-seen order so the frequency tie-break
// is deterministic build-to-build.
type metaAccumulator struct {
	columns []string
	tallies map[string]*columnTally
}

type columnTally struct {
	order  []string
	counts map[string]int
	cells  map[string]rawtable.Cell
}

func newMetaAccumulator() *metaAccumulator {
	return &metaAccumulator{tallies: make(map[string]*columnTally)}
}

// observe folds one non-null cell into the tally for its column
func (m *metaAccumulator) observe(column string, cell rawtable.Cell) {
	tally, ok := m.tallies[column]
	if !ok {
		tally = &columnTally{
			counts: make(map[string]int),
			cells:  make(map[string]rawtable.Cell),
		}
		m.tallies[column] = tally
		m.columns = append(m.columns, column)
	}

	display := cell.Display()
	if _, seen := tally.counts[display]; !seen {
		tally.order = append(tally.order, display)
		tally.cells[display] = cell
	}
	tally.counts[display]++
}

// finalize resolves each column to its winning value: most frequent, with
// ties broken by first-seen order. Disagreement is preserved in the
// consistency record rather than silently overwritten.
func (m *metaAccumulator) finalize() (map[string]rawtable.Cell, map[string]dataset.MetaConsistency) {
	if len(m.columns) == 0 {
		return nil, nil
	}

	raw := make(map[string]rawtable.Cell, len(m.columns))
	consistency := make(map[string]dataset.MetaConsistency, len(m.columns))

	for _, column := range m.columns {
		tally := m.tallies[column]

		winner := tally.order[0]
		for _, candidate := range tally.order[1:] {
			if tally.counts[candidate] > tally.counts[winner] {
				winner = candidate
			}
		}

		raw[column] = tally.cells[winner]
		consistency[column] = dataset.MetaConsistency{
			Consistent:     len(tally.order) == 1,
			DistinctValues: append([]string(nil), tally.order...),
		}
	}

	return raw, consistency
}
