package ports

import (
	"context"

	"gokinet/domain/advisory"
	"gokinet/domain/rawtable"
)

// ColumnRoleRequest carries the read-only table context an advisor may inspect.
type ColumnRoleRequest struct {
	Table         *rawtable.RawTable
	MaxSampleRows int
}

// GroupingRequest asks for canonical groups over one label column's
// observed distinct values.
type GroupingRequest struct {
	Column int
	Header string
	Values []string
}

// Advisor proposes column roles and label groupings for a raw table.
// Implementations are advisory only: callers re-validate every result
// with the deterministic checks in domain/advisory before acting on it.
type Advisor interface {
	SuggestColumnRoles(ctx context.Context, req ColumnRoleRequest) (*advisory.ColumnAdvice, error)
	SuggestCanonicalGroups(ctx context.Context, req GroupingRequest) (*advisory.GroupingAdvice, error)
}
