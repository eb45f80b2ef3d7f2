package mapping

import (
	"fmt"

	"gokinet/domain/rawtable"
	"gokinet/domain/timeaxis"
)

// NoColumn marks an unselected column index
const NoColumn = -1

// DefaultExperimentLabel names experiments whose grouping cell is blank
// and tables that offer no label at all.
const DefaultExperimentLabel = "Unlabeled experiment"

// Selection is the caller-declared column mapping. It is built up
// interactively outside the core; the engine treats it as read-only.
// UseHeaderRow is consumed by the parse stage (it decides whether the
// first file row is a header row); the engine maps the table as given.
type Selection struct {
	UseHeaderRow     bool          `json:"use_header_row"`
	TimeColumn       int           `json:"time_column"`
	ValueColumns     []int         `json:"value_columns"`
	ExperimentColumn *int          `json:"experiment_column,omitempty"`
	ReplicateColumn  *int          `json:"replicate_column,omitempty"`
	TimeUnit         timeaxis.Unit `json:"time_unit,omitempty"`
}

// NewSelection returns a selection with nothing chosen yet
func NewSelection() Selection {
	return Selection{
		UseHeaderRow: true,
		TimeColumn:   NoColumn,
		TimeUnit:     timeaxis.UnitSeconds,
	}
}

// Validate pre-checks the selection against a table. A non-empty result
// blocks mapping entirely: no partial Dataset is ever produced from a
// selection that cannot work.
func (s Selection) Validate(table *rawtable.RawTable) []ConfigError {
	var errs []ConfigError
	width := table.Width()

	if s.TimeColumn == NoColumn {
		errs = append(errs, ConfigError{
			Code:    CodeTimeColumnMissing,
			Message: "select a time column before mapping",
		})
	} else if s.TimeColumn < 0 || s.TimeColumn >= width {
		errs = append(errs, outOfRange("time", s.TimeColumn, width))
	}

	if len(s.ValueColumns) == 0 {
		errs = append(errs, ConfigError{
			Code:    CodeNoValueColumns,
			Message: "select at least one value column",
		})
	}
	for _, vc := range s.ValueColumns {
		if vc < 0 || vc >= width {
			errs = append(errs, outOfRange("value", vc, width))
		}
	}

	if s.ExperimentColumn != nil && (*s.ExperimentColumn < 0 || *s.ExperimentColumn >= width) {
		errs = append(errs, outOfRange("experiment", *s.ExperimentColumn, width))
	}
	if s.ReplicateColumn != nil && (*s.ReplicateColumn < 0 || *s.ReplicateColumn >= width) {
		errs = append(errs, outOfRange("replicate", *s.ReplicateColumn, width))
	}

	return errs
}

func outOfRange(role string, index, width int) ConfigError {
	return ConfigError{
		Code:    CodeColumnOutOfRange,
		Message: fmt.Sprintf("%s column %d is out of range (table has %d columns)", role, index, width),
	}
}
