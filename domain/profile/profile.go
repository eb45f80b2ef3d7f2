package profile

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"gokinet/domain/core"
	"gokinet/domain/dataset"
)

// ValueStats holds descriptive statistics for the measured values of one series.
type ValueStats struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// SeriesProfile summarizes the shape of one series before any model fitting.
type SeriesProfile struct {
	SeriesID     core.SeriesID `json:"series_id"`
	SeriesName   string        `json:"series_name"`
	PointCount   int           `json:"point_count"`
	TimeSpan     float64       `json:"time_span"`
	MeanInterval float64       `json:"mean_interval"`
	Values       ValueStats    `json:"values"`
}

// ExperimentProfile groups series profiles under their experiment.
type ExperimentProfile struct {
	ExperimentID   core.ExperimentID `json:"experiment_id"`
	ExperimentName string            `json:"experiment_name"`
	Series         []SeriesProfile   `json:"series"`
}

// DatasetProfile is the full descriptive summary of a mapped dataset.
type DatasetProfile struct {
	DatasetID   core.DatasetID      `json:"dataset_id"`
	DatasetName string              `json:"dataset_name"`
	Experiments []ExperimentProfile `json:"experiments"`
}

// ProfileSeries computes descriptive statistics for a single series.
// Degenerate inputs produce zeroed statistics rather than NaN.
func ProfileSeries(s *dataset.Series) SeriesProfile {
	p := SeriesProfile{
		SeriesID:   s.ID,
		SeriesName: s.Name,
		PointCount: s.PointCount(),
	}

	if len(s.Time) > 1 {
		t := stats.Float64Data(s.Time)
		first := sanitize(stats.Min(t))
		last := sanitize(stats.Max(t))
		p.TimeSpan = last - first
		p.MeanInterval = p.TimeSpan / float64(len(s.Time)-1)
	}

	p.Values = describeValues(s.Y)
	return p
}

// ProfileDataset profiles every series in the dataset, grouped by experiment.
func ProfileDataset(ds *dataset.Dataset) *DatasetProfile {
	dp := &DatasetProfile{
		DatasetID:   ds.ID,
		DatasetName: ds.Name,
		Experiments: make([]ExperimentProfile, 0, len(ds.Experiments)),
	}

	for _, exp := range ds.Experiments {
		ep := ExperimentProfile{
			ExperimentID:   exp.ID,
			ExperimentName: exp.Name,
			Series:         make([]SeriesProfile, 0, len(exp.Series)),
		}
		for _, s := range exp.Series {
			ep.Series = append(ep.Series, ProfileSeries(s))
		}
		dp.Experiments = append(dp.Experiments, ep)
	}

	return dp
}

func describeValues(y []float64) ValueStats {
	vs := ValueStats{}
	if len(y) == 0 {
		return vs
	}

	data := stats.Float64Data(y)
	vs.Min = sanitize(stats.Min(data))
	vs.Max = sanitize(stats.Max(data))
	vs.Mean = sanitize(stats.Mean(data))
	vs.Median = sanitize(stats.Median(data))
	vs.StdDev = sanitize(stats.StandardDeviationPopulation(data))
	vs.Q25 = sanitize(stats.Percentile(data, 25))
	vs.Q75 = sanitize(stats.Percentile(data, 75))
	vs.Skewness = sanitize(stat.Skew(y, nil), nil)
	vs.Kurtosis = sanitize(stat.ExKurtosis(y, nil), nil)
	return vs
}

// sanitize maps failed or non-finite computations to zero so profiles
// stay JSON-serializable.
func sanitize(v float64, err error) float64 {
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
