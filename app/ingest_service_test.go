package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gokinet/adapters/tabular"
	"gokinet/domain/mapping"
	"gokinet/domain/validation"
	apperrors "gokinet/internal/errors"
	"gokinet/internal/testkit"
)

func kineticsSelection() mapping.Selection {
	sel := mapping.NewSelection()
	sel.TimeColumn = 0
	sel.ValueColumns = []int{1}
	exp, rep := 2, 3
	sel.ExperimentColumn = &exp
	sel.ReplicateColumn = &rep
	return sel
}

func TestIngestEndToEnd(t *testing.T) {
	cfg := testkit.DefaultKineticsConfig()
	data := testkit.NewKineticsGenerator(cfg).CSV()

	svc := NewIngestService(tabular.NewReader(0), nil)
	result, err := svc.Ingest("synthetic.csv", data, kineticsSelection())
	require.NoError(t, err)
	require.Empty(t, result.ConfigErrors)
	require.NotNil(t, result.Dataset)

	assert.Equal(t, cfg.Experiments, result.Dataset.ExperimentCount())
	assert.Equal(t, cfg.Experiments*cfg.Replicates, result.Dataset.SeriesCount())
	assert.Equal(t, cfg.Experiments*cfg.Replicates*cfg.Points, result.Dataset.PointCount())
	assert.Zero(t, result.Dataset.DroppedPointCount())

	require.NotNil(t, result.Report)
	assert.Equal(t, validation.StatusClean, result.Report.Status)
	assert.Zero(t, result.Mapping.RowErrors.Count)

	require.NotNil(t, result.Profile)
	assert.Len(t, result.Profile.Experiments, cfg.Experiments)

	require.NotNil(t, result.Workbook)
	assert.Equal(t, "synthetic", result.Workbook.ActiveTable().SheetName)
}

func TestIngestParseFailure(t *testing.T) {
	svc := NewIngestService(tabular.NewReader(0), nil)

	_, err := svc.Ingest("notes.txt", []byte("hello"), mapping.NewSelection())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeParseFailed, apperrors.GetCode(err))
}

func TestIngestCarriesConfigErrors(t *testing.T) {
	data := testkit.NewKineticsGenerator(testkit.DefaultKineticsConfig()).CSV()
	svc := NewIngestService(tabular.NewReader(0), nil)

	// Nothing selected yet: the parse succeeds and the selection problems
	// come back in the result for the caller to fix.
	result, err := svc.Ingest("synthetic.csv", data, mapping.NewSelection())
	require.NoError(t, err)
	require.NotEmpty(t, result.ConfigErrors)
	assert.Nil(t, result.Dataset)
	assert.NotNil(t, result.Workbook)

	// Fixing the selection remaps the already-parsed table.
	fixed := svc.MapTable(result.Workbook.ActiveTable(), kineticsSelection())
	require.Empty(t, fixed.ConfigErrors)
	assert.NotNil(t, fixed.Dataset)
	assert.Equal(t, validation.StatusClean, fixed.Report.Status)
}

func TestIngestValidationFindingsFlowThrough(t *testing.T) {
	cfg := testkit.DefaultKineticsConfig()
	cfg.Points = 3 // below the minimum points threshold
	data := testkit.NewKineticsGenerator(cfg).CSV()

	svc := NewIngestService(tabular.NewReader(0), nil)
	result, err := svc.Ingest("synthetic.csv", data, kineticsSelection())
	require.NoError(t, err)

	assert.Equal(t, validation.StatusNeedsInfo, result.Report.Status)
	for _, summary := range result.Report.ExperimentSummaries {
		for _, f := range summary.Findings {
			assert.Equal(t, validation.CodeTooFewPoints, f.Code)
		}
	}
}
