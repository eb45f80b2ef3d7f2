package advisor

import (
	"context"
	"fmt"
	"strings"

	"gokinet/domain/advisory"
	"gokinet/domain/rawtable"
	"gokinet/ports"
)

const columnSystemPrompt = `You label the columns of kinetic time-series tables from lab exports.
Assign each column exactly one role: time, value, experiment, replicate, metadata, or ignore.
There must be exactly one time column and at least one value column.
Respond with JSON of the form:
{"suggestions":[{"column":0,"role":"time","confidence":0.9,"rationale":"short reason"}],"time_unit":"minutes"}
Columns are zero-based. time_unit is one of seconds, minutes, hours, days; omit it when unsure.`

const groupingSystemPrompt = `You consolidate messy experiment labels from lab exports.
Group the given raw values into canonical experiments: every raw value must appear in exactly one group,
and you must not invent values. Respond with JSON of the form:
{"groups":[{"canonical":"Control","members":["ctrl","Control "]}]}`

// Suggester proposes column roles and label groupings through an
// OpenAI-compatible endpoint. Results are advice only; callers re-validate.
type Suggester struct {
	roles  *StructuredClient[advisory.ColumnAdvice]
	groups *StructuredClient[advisory.GroupingAdvice]
}

// NewSuggester creates a suggester over one endpoint configuration.
func NewSuggester(config ClientConfig) *Suggester {
	return &Suggester{
		roles:  NewStructuredClient[advisory.ColumnAdvice](config),
		groups: NewStructuredClient[advisory.GroupingAdvice](config),
	}
}

var _ ports.Advisor = (*Suggester)(nil)

// SuggestColumnRoles asks the model to assign a role to every column.
func (s *Suggester) SuggestColumnRoles(ctx context.Context, req ports.ColumnRoleRequest) (*advisory.ColumnAdvice, error) {
	return s.roles.GetJSONResponse(ctx, columnSystemPrompt, buildColumnPrompt(req.Table, req.MaxSampleRows))
}

// SuggestCanonicalGroups asks the model to fold raw labels into canonical groups.
func (s *Suggester) SuggestCanonicalGroups(ctx context.Context, req ports.GroupingRequest) (*advisory.GroupingAdvice, error) {
	return s.groups.GetJSONResponse(ctx, groupingSystemPrompt, buildGroupingPrompt(req))
}

// buildColumnPrompt renders headers plus a bounded sample of rows. The
// advisor only ever sees this read-only view.
func buildColumnPrompt(table *rawtable.RawTable, maxSampleRows int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Sheet: %s\nColumns:\n", table.SheetName)
	for i, h := range table.Headers {
		fmt.Fprintf(&b, "  %d: %s\n", i, h)
	}

	n := len(table.Rows)
	if maxSampleRows > 0 && n > maxSampleRows {
		n = maxSampleRows
	}

	b.WriteString("Sample rows:\n")
	for _, row := range table.Rows[:n] {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = c.Display()
		}
		fmt.Fprintf(&b, "  %s\n", strings.Join(cells, " | "))
	}

	return b.String()
}

func buildGroupingPrompt(req ports.GroupingRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Label column %q holds %d distinct raw values:\n", req.Header, len(req.Values))
	for _, v := range req.Values {
		fmt.Fprintf(&b, "  %q\n", v)
	}

	return b.String()
}
