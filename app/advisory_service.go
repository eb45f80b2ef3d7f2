package app

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"gokinet/domain/advisory"
	"gokinet/domain/core"
	"gokinet/domain/mapping"
	"gokinet/domain/rawtable"
	"gokinet/domain/timeaxis"
	"gokinet/internal"
	apperrors "gokinet/internal/errors"
	"gokinet/ports"
)

// Advice carries both advisory results together with their acceptance
// verdicts. Rejected advice is reported, never merged into a selection.
type Advice struct {
	Columns     *advisory.ColumnAdvice
	ColumnsErr  error
	Grouping    *advisory.GroupingAdvice
	GroupingCol int
	GroupingErr error
}

// Selection returns the column advice as a ready selection when it
// passed validation.
func (a *Advice) Selection() (mapping.Selection, bool) {
	if a.Columns == nil || a.ColumnsErr != nil {
		return mapping.Selection{}, false
	}
	return a.Columns.Selection(), true
}

// AdvisoryService fans out advisor calls and gates every result through
// the deterministic validators.
type AdvisoryService struct {
	advisor       ports.Advisor
	maxSampleRows int
	logger        *internal.Logger
}

// NewAdvisoryService creates the service over one advisor port.
func NewAdvisoryService(advisor ports.Advisor, maxSampleRows int, logger *internal.Logger) *AdvisoryService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AdvisoryService{advisor: advisor, maxSampleRows: maxSampleRows, logger: logger}
}

// Advise requests column roles and, when a label-like column exists,
// canonical groups for it. Transport failures are hard errors; rejected
// suggestions come back in the verdict fields.
func (s *AdvisoryService) Advise(ctx context.Context, table *rawtable.RawTable) (*Advice, error) {
	advice := &Advice{GroupingCol: mapping.NoColumn}
	groupCol, groupValues := chooseGroupingColumn(table)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cols, err := s.advisor.SuggestColumnRoles(gctx, ports.ColumnRoleRequest{
			Table:         table,
			MaxSampleRows: s.maxSampleRows,
		})
		if err != nil {
			if errors.Is(err, core.ErrAdviceRejected) {
				advice.ColumnsErr = err
				return nil
			}
			return err
		}
		advice.Columns = cols
		advice.ColumnsErr = advisory.ValidateColumnAdvice(table, cols)
		return nil
	})

	if groupCol >= 0 {
		advice.GroupingCol = groupCol
		g.Go(func() error {
			groups, err := s.advisor.SuggestCanonicalGroups(gctx, ports.GroupingRequest{
				Column: groupCol,
				Header: table.ColumnName(groupCol),
				Values: groupValues,
			})
			if err != nil {
				if errors.Is(err, core.ErrAdviceRejected) {
					advice.GroupingErr = err
					return nil
				}
				return err
			}
			advice.Grouping = groups
			advice.GroupingErr = advisory.ValidateGroupingAdvice(groupValues, groups)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("advisory request failed: %v", err)
		return nil, apperrors.AdvisoryFailed(err)
	}

	if advice.ColumnsErr != nil {
		s.logger.Warn("column advice rejected: %v", advice.ColumnsErr)
	}
	if advice.GroupingErr != nil {
		s.logger.Warn("grouping advice rejected: %v", advice.GroupingErr)
	}

	return advice, nil
}

// chooseGroupingColumn picks the text column with the fewest distinct
// values worth grouping, and returns those values in first-seen order.
func chooseGroupingColumn(table *rawtable.RawTable) (int, []string) {
	best := -1
	var bestValues []string

	for i := 0; i < table.Width(); i++ {
		cells := table.Column(i)
		if timeaxis.Detect(cells) != timeaxis.KindInvalid {
			continue
		}

		seen := make(map[string]bool)
		var values []string
		for _, c := range cells {
			if c.IsNull() {
				continue
			}
			v := c.Display()
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}

		if len(values) < 2 || len(values) > len(cells)/2+1 {
			continue
		}
		if best < 0 || len(values) < len(bestValues) {
			best, bestValues = i, values
		}
	}

	return best, bestValues
}
