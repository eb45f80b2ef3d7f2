package dataset

import (
	"strconv"

	"gokinet/domain/core"
	"gokinet/domain/rawtable"
)

// Series is one time/value curve belonging to an Experiment. Points sit in
// row-encounter order; monotonicity is never enforced here, only checked by
// validation. Invariant: len(Time) == len(Y), maintained by AppendPoint.
type Series struct {
	ID   core.SeriesID `json:"id"`
	Name string        `json:"name"`
	Time []float64     `json:"time"`
	Y    []float64     `json:"y"`
	Meta SeriesMeta    `json:"meta"`
}

// SeriesMeta carries per-series bookkeeping from the mapping pass
type SeriesMeta struct {
	DroppedPoints int     `json:"dropped_points"`
	ValueColumn   string  `json:"value_column"`
	Replicate     *string `json:"replicate,omitempty"`
}

// AppendPoint adds one (time, value) pair
func (s *Series) AppendPoint(t, y float64) {
	s.Time = append(s.Time, t)
	s.Y = append(s.Y, y)
}

// PointCount returns the number of points in the series
func (s *Series) PointCount() int {
	return len(s.Time)
}

// MetaConsistency records cross-row agreement for one metadata column
type MetaConsistency struct {
	Consistent     bool     `json:"consistent"`
	DistinctValues []string `json:"distinct_values"`
}

// Experiment is a named group of Series sharing metadata, derived from the
// experiment column (or a default label when that column is absent).
// Experiments keep first-seen order inside Dataset.Experiments.
type Experiment struct {
	ID     core.ExperimentID `json:"id"`
	Name   string            `json:"name"`
	Series []*Series         `json:"series"`

	// Folded non-structural columns: winning value per column, plus the
	// distinct values observed so disagreement is never silently lost.
	MetaRaw         map[string]rawtable.Cell   `json:"meta_raw,omitempty"`
	MetaConsistency map[string]MetaConsistency `json:"meta_consistency,omitempty"`
}

// Dataset is the mapped output of one table: experiments in first-seen
// order, each holding its series. Rebuilt wholesale when inputs change.
type Dataset struct {
	ID          core.DatasetID `json:"id"`
	Name        string         `json:"name"`
	CreatedAt   core.Timestamp `json:"created_at"`
	Experiments []*Experiment  `json:"experiments"`
}

// ExperimentCount returns the number of experiments
func (d *Dataset) ExperimentCount() int {
	return len(d.Experiments)
}

// SeriesCount returns the total number of series across experiments
func (d *Dataset) SeriesCount() int {
	count := 0
	for _, exp := range d.Experiments {
		count += len(exp.Series)
	}
	return count
}

// PointCount returns the total number of points across all series
func (d *Dataset) PointCount() int {
	count := 0
	for _, exp := range d.Experiments {
		for _, s := range exp.Series {
			count += s.PointCount()
		}
	}
	return count
}

// DroppedPointCount returns the total dropped points across all series
func (d *Dataset) DroppedPointCount() int {
	count := 0
	for _, exp := range d.Experiments {
		for _, s := range exp.Series {
			count += s.Meta.DroppedPoints
		}
	}
	return count
}

// Fingerprint identifies the dataset's content independent of generated
// IDs and creation time: two datasets built from the same table and
// selection fingerprint identically.
func (d *Dataset) Fingerprint() core.Fingerprint {
	parts := []string{d.Name}
	for _, exp := range d.Experiments {
		parts = append(parts, exp.Name)
		for _, s := range exp.Series {
			parts = append(parts, s.Name, s.Meta.ValueColumn)
			if s.Meta.Replicate != nil {
				parts = append(parts, *s.Meta.Replicate)
			}
			parts = append(parts, strconv.Itoa(s.Meta.DroppedPoints))
			for i := range s.Time {
				parts = append(parts,
					strconv.FormatFloat(s.Time[i], 'g', -1, 64),
					strconv.FormatFloat(s.Y[i], 'g', -1, 64))
			}
		}
	}
	return core.NewFingerprint(parts...)
}
