package tabular

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"gokinet/domain/core"
	"gokinet/domain/rawtable"
)

func parseXLSX(data []byte, useHeaderRow bool) ([]*rawtable.RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.ErrNoSheets
	}

	tables := make([]*rawtable.RawTable, 0, len(sheets))
	for _, sheet := range sheets {
		// GetRows returns formatted strings: dates and booleans arrive as
		// text and stay text under cell coercion, numbers coerce back.
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}

		usable := make([][]string, 0, len(rows))
		for _, row := range rows {
			if !allBlank(row) {
				usable = append(usable, row)
			}
		}

		table, err := rawtable.FromStringRows(sheet, usable, useHeaderRow)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	return tables, nil
}
