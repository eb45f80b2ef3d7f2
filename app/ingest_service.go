package app

import (
	"gokinet/adapters/tabular"
	"gokinet/domain/dataset"
	"gokinet/domain/mapping"
	"gokinet/domain/profile"
	"gokinet/domain/rawtable"
	"gokinet/domain/validation"
	"gokinet/internal"
	apperrors "gokinet/internal/errors"
)

// IngestResult bundles everything one ingestion pass produces. A result
// with ConfigErrors set carries no dataset; the selection must be fixed
// and the table remapped, without re-reading the file.
type IngestResult struct {
	Workbook     *tabular.Workbook       `json:"workbook,omitempty"`
	Dataset      *dataset.Dataset        `json:"dataset,omitempty"`
	Mapping      *mapping.Result         `json:"mapping,omitempty"`
	Report       *validation.Report      `json:"report,omitempty"`
	Profile      *profile.DatasetProfile `json:"profile,omitempty"`
	ConfigErrors []mapping.ConfigError   `json:"config_errors,omitempty"`
}

// IngestService runs the parse, map, validate, profile pipeline.
// It holds no mutable state between calls.
type IngestService struct {
	reader *tabular.Reader
	logger *internal.Logger
}

// NewIngestService creates the service over one parser configuration.
func NewIngestService(reader *tabular.Reader, logger *internal.Logger) *IngestService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &IngestService{reader: reader, logger: logger}
}

// Ingest parses the upload and runs the full pipeline over the active table.
// Parse failures are hard errors; selection problems come back in the result.
func (s *IngestService) Ingest(filename string, data []byte, sel mapping.Selection) (*IngestResult, error) {
	wb, err := s.reader.Parse(filename, data, sel.UseHeaderRow)
	if err != nil {
		s.logger.Error("parse failed for %s: %v", filename, err)
		return nil, apperrors.ParseFailed(filename, err)
	}

	table := wb.ActiveTable()
	s.logger.Info("parsed %s: %d tables, active sheet %q (%d rows x %d cols)",
		filename, len(wb.Tables), table.SheetName, table.RowCount(), table.Width())

	result := s.MapTable(table, sel)
	result.Workbook = wb
	return result, nil
}

// MapTable runs mapping, validation, and profiling over an already-parsed
// table. Sheet switches and selection changes go through here.
func (s *IngestService) MapTable(table *rawtable.RawTable, sel mapping.Selection) *IngestResult {
	mapped, configErrs := mapping.Apply(table, sel)
	if len(configErrs) > 0 {
		s.logger.Warn("selection rejected for sheet %q: %d config errors", table.SheetName, len(configErrs))
		return &IngestResult{ConfigErrors: configErrs}
	}

	report := validation.Evaluate(mapped.Dataset)
	prof := profile.ProfileDataset(mapped.Dataset)

	s.logger.Info("mapped sheet %q: %d experiments, %d series, %d points, %d dropped, status %s",
		table.SheetName, mapped.Stats.ExperimentCount, mapped.Stats.SeriesCount,
		mapped.Stats.PointCount, mapped.Dataset.DroppedPointCount(), report.Status)

	return &IngestResult{
		Dataset: mapped.Dataset,
		Mapping: mapped,
		Report:  report,
		Profile: prof,
	}
}
