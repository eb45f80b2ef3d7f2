package advisory

import (
	"fmt"
	"sort"
	"strings"

	"gokinet/domain/core"
	"gokinet/domain/rawtable"
)

// ValidateColumnAdvice re-checks column advice against the table it was
// issued for. Suggestions are never trusted as-is.
func ValidateColumnAdvice(table *rawtable.RawTable, advice *ColumnAdvice) error {
	if advice == nil || len(advice.Suggestions) == 0 {
		return core.NewAdviceRejectedError("no suggestions returned")
	}

	width := table.Width()
	seen := make(map[int]bool, len(advice.Suggestions))
	timeCount := 0
	valueCount := 0

	for _, s := range advice.Suggestions {
		if s.Column < 0 || s.Column >= width {
			return core.NewAdviceRejectedError(
				fmt.Sprintf("column %d out of range (table has %d columns)", s.Column, width))
		}
		if seen[s.Column] {
			return core.NewAdviceRejectedError(
				fmt.Sprintf("column %d assigned more than one role", s.Column))
		}
		seen[s.Column] = true

		switch s.Role {
		case RoleTime:
			timeCount++
		case RoleValue:
			valueCount++
		case RoleExperiment, RoleReplicate, RoleMetadata, RoleIgnore:
		default:
			return core.NewAdviceRejectedError(fmt.Sprintf("unknown role %q", s.Role))
		}
	}

	if timeCount != 1 {
		return core.NewAdviceRejectedError(
			fmt.Sprintf("expected exactly one time column, got %d", timeCount))
	}
	if valueCount == 0 {
		return core.NewAdviceRejectedError("no value columns suggested")
	}

	return nil
}

// CoverageError describes how grouping advice failed to exactly cover the
// observed distinct values.
type CoverageError struct {
	Missing    []string
	Duplicated []string
	Unknown    []string
}

func (e *CoverageError) Error() string {
	parts := make([]string, 0, 3)
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing %v", e.Missing))
	}
	if len(e.Duplicated) > 0 {
		parts = append(parts, fmt.Sprintf("duplicated %v", e.Duplicated))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, fmt.Sprintf("unknown %v", e.Unknown))
	}
	return fmt.Sprintf("%v: grouping does not cover observed values: %s",
		core.ErrAdviceRejected, strings.Join(parts, "; "))
}

// Unwrap lets errors.Is match the advice rejection sentinel.
func (e *CoverageError) Unwrap() error {
	return core.ErrAdviceRejected
}

// ValidateGroupingAdvice checks that every observed distinct value is
// assigned to exactly one group and that no group invents values.
func ValidateGroupingAdvice(observed []string, advice *GroupingAdvice) error {
	if advice == nil {
		return core.NewAdviceRejectedError("no grouping returned")
	}

	observedSet := make(map[string]bool, len(observed))
	for _, v := range observed {
		observedSet[v] = true
	}

	covered := make(map[string]int)
	for _, g := range advice.Groups {
		for _, m := range g.Members {
			covered[m]++
		}
	}

	cerr := &CoverageError{}
	for _, v := range observed {
		if covered[v] == 0 && !contains(cerr.Missing, v) {
			cerr.Missing = append(cerr.Missing, v)
		}
	}
	for m, n := range covered {
		if !observedSet[m] {
			cerr.Unknown = append(cerr.Unknown, m)
		} else if n > 1 {
			cerr.Duplicated = append(cerr.Duplicated, m)
		}
	}

	if len(cerr.Missing) > 0 || len(cerr.Duplicated) > 0 || len(cerr.Unknown) > 0 {
		sort.Strings(cerr.Duplicated)
		sort.Strings(cerr.Unknown)
		return cerr
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
