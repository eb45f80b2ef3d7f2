package tabular

import (
	"bytes"
	"log"
	"path/filepath"
	"strings"

	"gokinet/domain/core"
	"gokinet/domain/rawtable"
)

// Workbook holds every table parsed from one uploaded file. Tables keeps
// sheet order; Active is the nominated table, always the first.
type Workbook struct {
	Tables []*rawtable.RawTable `json:"tables"`
	Active int                  `json:"active"`
}

// ActiveTable returns the nominated table, or nil for an empty workbook.
func (w *Workbook) ActiveTable() *rawtable.RawTable {
	if w == nil || w.Active < 0 || w.Active >= len(w.Tables) {
		return nil
	}
	return w.Tables[w.Active]
}

// Reader parses uploaded spreadsheet bytes into raw tables.
type Reader struct {
	maxFileBytes int64
}

// NewReader creates a reader. maxFileBytes of zero disables the size limit.
func NewReader(maxFileBytes int64) *Reader {
	return &Reader{maxFileBytes: maxFileBytes}
}

// Parse dispatches on the lower-cased file extension and returns all parsed
// tables. Any failure returns no workbook at all, never a partial one.
func (r *Reader) Parse(filename string, data []byte, useHeaderRow bool) (*Workbook, error) {
	if r.maxFileBytes > 0 && int64(len(data)) > r.maxFileBytes {
		return nil, core.NewFileTooLargeError(int64(len(data)), r.maxFileBytes)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, core.ErrEmptyFile
	}

	ext := strings.ToLower(filepath.Ext(filename))
	var tables []*rawtable.RawTable
	var err error

	switch ext {
	case ".csv":
		var table *rawtable.RawTable
		table, err = parseCSV(filename, data, useHeaderRow)
		if table != nil {
			tables = []*rawtable.RawTable{table}
		}
	case ".xlsx":
		tables, err = parseXLSX(data, useHeaderRow)
	default:
		return nil, core.NewUnsupportedFileError(ext)
	}

	if err != nil {
		return nil, err
	}

	log.Printf("[TabularReader] Parsed %s (%d tables, active=%s)",
		filename, len(tables), tables[0].SheetName)
	return &Workbook{Tables: tables, Active: 0}, nil
}
