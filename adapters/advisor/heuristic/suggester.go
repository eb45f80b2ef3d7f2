package heuristic

import (
	"context"
	"strings"

	"gokinet/domain/advisory"
	"gokinet/domain/core"
	"gokinet/domain/rawtable"
	"gokinet/domain/timeaxis"
	"gokinet/ports"
)

var timeNames = map[string]bool{
	"time": true, "t": true, "elapsed": true, "timestamp": true,
	"date": true, "datetime": true, "timepoint": true, "time point": true,
}

var experimentNames = map[string]bool{
	"experiment": true, "condition": true, "sample": true, "group": true,
	"treatment": true, "label": true, "strain": true,
}

var replicateNames = map[string]bool{
	"replicate": true, "rep": true, "well": true, "run": true, "trial": true,
}

// Suggester assigns column roles and groups labels from header names and
// column contents alone. It serves the advisor port when no LLM endpoint
// is configured, and its advice passes the same validation gate.
type Suggester struct{}

// NewSuggester creates the offline suggester.
func NewSuggester() *Suggester {
	return &Suggester{}
}

var _ ports.Advisor = (*Suggester)(nil)

// SuggestColumnRoles proposes a role for every column of the table.
func (s *Suggester) SuggestColumnRoles(_ context.Context, req ports.ColumnRoleRequest) (*advisory.ColumnAdvice, error) {
	table := req.Table
	width := table.Width()

	timeCol := chooseTimeColumn(table)
	if timeCol < 0 {
		return nil, core.NewAdviceRejectedError("no plausible time column identified")
	}

	expCol := chooseByName(table, experimentNames, timeCol, -1)
	repCol := chooseByName(table, replicateNames, timeCol, expCol)
	if expCol < 0 {
		expCol = chooseLabelColumn(table, timeCol, repCol)
	}

	advice := &advisory.ColumnAdvice{}
	if unit, ok := timeaxis.DeclaredUnit(table.ColumnName(timeCol)); ok {
		advice.TimeUnit = unit
	}

	valueCount := 0
	for i := 0; i < width; i++ {
		sug := advisory.ColumnSuggestion{Column: i}

		switch {
		case i == timeCol:
			sug.Role = advisory.RoleTime
			sug.Confidence = 0.9
			sug.Rationale = "time-like header or datetime contents"
		case i == expCol:
			sug.Role = advisory.RoleExperiment
			sug.Confidence = 0.7
			sug.Rationale = "label-like column with few distinct values"
		case i == repCol:
			sug.Role = advisory.RoleReplicate
			sug.Confidence = 0.7
			sug.Rationale = "replicate-like header"
		case timeaxis.Detect(table.Column(i)) == timeaxis.KindNumeric:
			sug.Role = advisory.RoleValue
			sug.Confidence = 0.8
			sug.Rationale = "numeric-majority column"
			valueCount++
		case hasAnyValue(table.Column(i)):
			sug.Role = advisory.RoleMetadata
			sug.Confidence = 0.5
			sug.Rationale = "non-numeric annotation column"
		default:
			sug.Role = advisory.RoleIgnore
			sug.Confidence = 0.5
			sug.Rationale = "column is empty"
		}

		advice.Suggestions = append(advice.Suggestions, sug)
	}

	if valueCount == 0 {
		return nil, core.NewAdviceRejectedError("no numeric value columns found")
	}

	return advice, nil
}

// SuggestCanonicalGroups folds values that differ only in case or
// whitespace into one group per normalized form.
func (s *Suggester) SuggestCanonicalGroups(_ context.Context, req ports.GroupingRequest) (*advisory.GroupingAdvice, error) {
	advice := &advisory.GroupingAdvice{}
	index := make(map[string]int)

	for _, v := range req.Values {
		key := normalizeLabel(v)
		if i, ok := index[key]; ok {
			advice.Groups[i].Members = append(advice.Groups[i].Members, v)
			continue
		}
		index[key] = len(advice.Groups)
		advice.Groups = append(advice.Groups, advisory.CanonicalGroup{
			Canonical: strings.Join(strings.Fields(v), " "),
			Members:   []string{v},
		})
	}

	return advice, nil
}

func chooseTimeColumn(table *rawtable.RawTable) int {
	best, bestScore := -1, 0

	for i := 0; i < table.Width(); i++ {
		kind := timeaxis.Detect(table.Column(i))

		score := 0
		if isTimeName(table.ColumnName(i)) {
			score += 2
		}
		switch kind {
		case timeaxis.KindDatetime:
			score += 2
		case timeaxis.KindNumeric:
			score++
		default:
			continue
		}

		// A bare numeric column without a time-like name is not enough.
		if score >= 2 && score > bestScore {
			best, bestScore = i, score
		}
	}

	return best
}

func isTimeName(header string) bool {
	l := strings.ToLower(strings.TrimSpace(header))
	if timeNames[l] || strings.HasPrefix(l, "time") {
		return true
	}
	_, ok := timeaxis.DeclaredUnit(header)
	return ok
}

func chooseByName(table *rawtable.RawTable, names map[string]bool, taken ...int) int {
	for i := 0; i < table.Width(); i++ {
		if intsContain(taken, i) {
			continue
		}
		l := strings.ToLower(strings.TrimSpace(table.ColumnName(i)))
		if names[l] {
			return i
		}
	}
	return -1
}

// chooseLabelColumn falls back to the text column with the fewest distinct
// values, the usual shape of a condition column.
func chooseLabelColumn(table *rawtable.RawTable, taken ...int) int {
	best, bestDistinct := -1, 0

	for i := 0; i < table.Width(); i++ {
		if intsContain(taken, i) {
			continue
		}
		cells := table.Column(i)
		if timeaxis.Detect(cells) != timeaxis.KindInvalid {
			continue
		}

		distinct := make(map[string]bool)
		for _, c := range cells {
			if !c.IsNull() {
				distinct[c.Display()] = true
			}
		}
		if len(distinct) == 0 || len(distinct) > len(cells)/2+1 {
			continue
		}
		if best < 0 || len(distinct) < bestDistinct {
			best, bestDistinct = i, len(distinct)
		}
	}

	return best
}

func hasAnyValue(cells []rawtable.Cell) bool {
	for _, c := range cells {
		if !c.IsNull() {
			return true
		}
	}
	return false
}

func normalizeLabel(v string) string {
	return strings.ToLower(strings.Join(strings.Fields(v), " "))
}

func intsContain(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
