package advisory

import (
	"gokinet/domain/mapping"
	"gokinet/domain/timeaxis"
)

// ColumnRole classifies what a table column contributes to a mapping.
type ColumnRole string

const (
	RoleTime       ColumnRole = "time"
	RoleValue      ColumnRole = "value"
	RoleExperiment ColumnRole = "experiment"
	RoleReplicate  ColumnRole = "replicate"
	RoleMetadata   ColumnRole = "metadata"
	RoleIgnore     ColumnRole = "ignore"
)

// ColumnSuggestion assigns a role to a single zero-based column index.
type ColumnSuggestion struct {
	Column     int        `json:"column"`
	Role       ColumnRole `json:"role"`
	Confidence float64    `json:"confidence"`
	Rationale  string     `json:"rationale,omitempty"`
}

// ColumnAdvice is a complete role assignment for one table.
// It is advice only: it must pass ValidateColumnAdvice before anything
// downstream may act on it.
type ColumnAdvice struct {
	Suggestions []ColumnSuggestion `json:"suggestions"`
	TimeUnit    timeaxis.Unit      `json:"time_unit,omitempty"`
}

// Selection converts accepted advice into a mapping selection.
func (a *ColumnAdvice) Selection() mapping.Selection {
	sel := mapping.NewSelection()
	if a.TimeUnit != "" {
		sel.TimeUnit = a.TimeUnit
	}

	for _, s := range a.Suggestions {
		col := s.Column
		switch s.Role {
		case RoleTime:
			sel.TimeColumn = col
		case RoleValue:
			sel.ValueColumns = append(sel.ValueColumns, col)
		case RoleExperiment:
			if sel.ExperimentColumn == nil {
				c := col
				sel.ExperimentColumn = &c
			}
		case RoleReplicate:
			if sel.ReplicateColumn == nil {
				c := col
				sel.ReplicateColumn = &c
			}
		}
	}

	return sel
}

// CanonicalGroup folds raw experiment labels into one canonical name.
type CanonicalGroup struct {
	Canonical string   `json:"canonical"`
	Members   []string `json:"members"`
}

// GroupingAdvice proposes canonical groups for the distinct raw values of
// a label column. Advice only; ValidateGroupingAdvice gates acceptance.
type GroupingAdvice struct {
	Groups []CanonicalGroup `json:"groups"`
}
