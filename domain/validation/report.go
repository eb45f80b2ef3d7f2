package validation

import (
	"gokinet/domain/core"
	"gokinet/domain/dataset"
)

// Counts are plain sums across the dataset
type Counts struct {
	Experiments   int `json:"experiments"`
	Series        int `json:"series"`
	Points        int `json:"points"`
	DroppedPoints int `json:"dropped_points"`
}

// ExperimentSummary carries one experiment's findings and derived status
type ExperimentSummary struct {
	ExperimentID   core.ExperimentID `json:"experiment_id"`
	ExperimentName string            `json:"experiment_name"`
	Status         Status            `json:"status"`
	Findings       []Finding         `json:"findings"`
}

// Report is the assembled outcome of one validation pass. It is rebuilt
// wholesale whenever the dataset changes.
type Report struct {
	Status              Status              `json:"status"`
	Counts              Counts              `json:"counts"`
	DatasetFindings     []Finding           `json:"dataset_findings"`
	ExperimentSummaries []ExperimentSummary `json:"experiment_summaries"`
	GeneratedAt         core.Timestamp      `json:"generated_at"`
}

// Evaluate runs every rule over the dataset and assembles the report.
// Nothing is deduplicated or suppressed: the engine enumerates, callers
// triage. Overall status escalates from dataset-level findings plus every
// experiment's findings.
func Evaluate(ds *dataset.Dataset) *Report {
	report := &Report{
		Counts: Counts{
			Experiments:   ds.ExperimentCount(),
			Series:        ds.SeriesCount(),
			Points:        ds.PointCount(),
			DroppedPoints: ds.DroppedPointCount(),
		},
		DatasetFindings:     CheckDataset(ds),
		ExperimentSummaries: make([]ExperimentSummary, 0, len(ds.Experiments)),
		GeneratedAt:         core.Now(),
	}

	all := append([]Finding(nil), report.DatasetFindings...)
	for _, exp := range ds.Experiments {
		findings := make([]Finding, 0)
		for _, s := range exp.Series {
			findings = append(findings, CheckSeries(s)...)
		}
		report.ExperimentSummaries = append(report.ExperimentSummaries, ExperimentSummary{
			ExperimentID:   exp.ID,
			ExperimentName: exp.Name,
			Status:         Escalate(findings),
			Findings:       findings,
		})
		all = append(all, findings...)
	}

	report.Status = Escalate(all)
	return report
}
