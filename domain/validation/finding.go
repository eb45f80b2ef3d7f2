package validation

import (
	"gokinet/domain/core"
)

// Severity grades a finding
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Scope says what a finding is about
type Scope string

const (
	ScopeDataset Scope = "dataset"
	ScopeSeries  Scope = "series"
)

// Status is the escalated three-level state of a set of findings
type Status string

const (
	StatusClean     Status = "clean"
	StatusNeedsInfo Status = "needs-info"
	StatusBroken    Status = "broken"
)

// Code identifies a validation rule. The set is closed: rules are added
// here, never invented downstream.
type Code string

const (
	CodeTimeNotMonotonic Code = "TIME_NOT_MONOTONIC"
	CodeTimeDuplicates   Code = "TIME_DUPLICATES"
	CodeTooFewPoints     Code = "TOO_FEW_POINTS"
	CodeNanOrNonnumeric  Code = "NAN_OR_NONNUMERIC"
	CodeNegativeValues   Code = "NEGATIVE_VALUES"
	CodeConstantSignal   Code = "CONSTANT_SIGNAL"
	CodeNoExperiments    Code = "NO_EXPERIMENTS"
)

// Finding is one rule's outcome. Findings are data, not exceptions: every
// rule always runs and reports what it saw.
type Finding struct {
	Code        Code                   `json:"code"`
	Severity    Severity               `json:"severity"`
	Scope       Scope                  `json:"scope"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Hint        string                 `json:"hint,omitempty"`
	Details     map[string]interface{} `json:"details,omitempty"`

	// Set on series-scoped findings so callers can attach them without
	// parsing descriptions.
	SeriesID   core.SeriesID `json:"series_id,omitempty"`
	SeriesName string        `json:"series_name,omitempty"`
}

// Escalate derives a status from findings: any error-severity finding
// means broken, any finding at all means needs-info, none means clean.
// Status is always derived on demand, never stored on domain entities.
func Escalate(findings []Finding) Status {
	if len(findings) == 0 {
		return StatusClean
	}
	for _, f := range findings {
		if f.Severity == SeverityError {
			return StatusBroken
		}
	}
	return StatusNeedsInfo
}
