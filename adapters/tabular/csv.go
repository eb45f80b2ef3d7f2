package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"gokinet/domain/rawtable"
)

// DetectDelimiter chooses between semicolon and comma by counting plain
// occurrences in the first non-blank line. More semicolons selects ';',
// everything else (ties included) selects ','.
func DetectDelimiter(data []byte) rune {
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Count(line, ";") > strings.Count(line, ",") {
			return ';'
		}
		return ','
	}
	return ','
}

func parseCSV(filename string, data []byte, useHeaderRow bool) (*rawtable.RawTable, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = DetectDelimiter(data)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	// Rows whose every field trims to empty carry nothing; exports often
	// end with them.
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		if !allBlank(rec) {
			rows = append(rows, rec)
		}
	}

	base := filepath.Base(filename)
	sheetName := strings.TrimSuffix(base, filepath.Ext(base))
	return rawtable.FromStringRows(sheetName, rows, useHeaderRow)
}

func allBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
