package validation

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"gokinet/domain/dataset"
)

// Rule thresholds
const (
	// MinPointsPerSeries is the smallest series size that supports any
	// meaningful kinetic readout.
	MinPointsPerSeries = 5

	// ConstantSignalEpsilon bounds the population standard deviation
	// below which a signal counts as flat.
	ConstantSignalEpsilon = 1e-6
)

type seriesCheck func(*dataset.Series) *Finding

// seriesChecks is the fixed battery. Every check runs unconditionally and
// independently; one series can collect several findings at once.
var seriesChecks = []seriesCheck{
	checkTimeMonotonic,
	checkTimeDuplicates,
	checkTooFewPoints,
	checkDroppedPoints,
	checkNegativeValues,
	checkConstantSignal,
}

// CheckSeries runs the full battery over one series
func CheckSeries(s *dataset.Series) []Finding {
	findings := make([]Finding, 0)
	for _, check := range seriesChecks {
		if f := check(s); f != nil {
			f.Scope = ScopeSeries
			f.SeriesID = s.ID
			f.SeriesName = s.Name
			findings = append(findings, *f)
		}
	}
	return findings
}

// CheckDataset runs the dataset-level rules
func CheckDataset(ds *dataset.Dataset) []Finding {
	findings := make([]Finding, 0)
	if len(ds.Experiments) == 0 {
		findings = append(findings, Finding{
			Code:        CodeNoExperiments,
			Severity:    SeverityError,
			Scope:       ScopeDataset,
			Title:       "No experiments were produced",
			Description: "Mapping produced zero experiments, so there is nothing to analyze.",
			Hint:        "Check the column selection and whether any rows survived the time column.",
		})
	}
	return findings
}

func checkTimeMonotonic(s *dataset.Series) *Finding {
	issues := 0
	for i := 1; i < len(s.Time); i++ {
		if s.Time[i] <= s.Time[i-1] {
			issues++
		}
	}
	if issues == 0 {
		return nil
	}
	return &Finding{
		Code:        CodeTimeNotMonotonic,
		Severity:    SeverityError,
		Title:       "Time values are not strictly increasing",
		Description: fmt.Sprintf("%d transition(s) step backwards or repeat the previous timepoint.", issues),
		Hint:        "Sort rows by time, or split runs that were exported interleaved.",
		Details:     map[string]interface{}{"timeIssueCount": issues},
	}
}

func checkTimeDuplicates(s *dataset.Series) *Finding {
	unique := make(map[float64]struct{}, len(s.Time))
	for _, t := range s.Time {
		unique[t] = struct{}{}
	}
	duplicates := len(s.Time) - len(unique)
	if duplicates == 0 {
		return nil
	}
	return &Finding{
		Code:        CodeTimeDuplicates,
		Severity:    SeverityWarn,
		Title:       "Duplicate timepoints",
		Description: fmt.Sprintf("%d timepoint(s) appear more than once.", duplicates),
		Hint:        "Duplicated timepoints usually mean replicates were not split out.",
		Details:     map[string]interface{}{"duplicateCount": duplicates},
	}
}

func checkTooFewPoints(s *dataset.Series) *Finding {
	points := s.PointCount()
	if points >= MinPointsPerSeries {
		return nil
	}
	return &Finding{
		Code:        CodeTooFewPoints,
		Severity:    SeverityWarn,
		Title:       "Too few points",
		Description: fmt.Sprintf("Series has %d point(s); at least %d are needed for a usable curve.", points, MinPointsPerSeries),
		Details:     map[string]interface{}{"pointCount": points},
	}
}

func checkDroppedPoints(s *dataset.Series) *Finding {
	if s.Meta.DroppedPoints == 0 {
		return nil
	}
	return &Finding{
		Code:        CodeNanOrNonnumeric,
		Severity:    SeverityWarn,
		Title:       "Non-numeric values dropped",
		Description: fmt.Sprintf("%d cell(s) in column %q could not be read as numbers and were dropped.", s.Meta.DroppedPoints, s.Meta.ValueColumn),
		Hint:        "Look for placeholder text such as 'n/a' or overflow markers in the source column.",
		Details:     map[string]interface{}{"droppedPoints": s.Meta.DroppedPoints},
	}
}

func checkNegativeValues(s *dataset.Series) *Finding {
	negatives := 0
	for _, y := range s.Y {
		if y < 0 {
			negatives++
		}
	}
	if negatives == 0 {
		return nil
	}
	return &Finding{
		Code:        CodeNegativeValues,
		Severity:    SeverityInfo,
		Title:       "Negative signal values",
		Description: fmt.Sprintf("%d value(s) are below zero.", negatives),
		Hint:        "Negative readings can be legitimate after blank subtraction; confirm the baseline.",
		Details:     map[string]interface{}{"negativeCount": negatives},
	}
}

func checkConstantSignal(s *dataset.Series) *Finding {
	if len(s.Y) < 2 {
		return nil
	}
	stddev, err := stats.StandardDeviationPopulation(stats.Float64Data(s.Y))
	if err != nil || stddev > ConstantSignalEpsilon {
		return nil
	}
	return &Finding{
		Code:        CodeConstantSignal,
		Severity:    SeverityInfo,
		Title:       "Constant signal",
		Description: "The signal never changes across the series.",
		Hint:        "A flat trace often means the wrong column was selected as the value.",
	}
}
