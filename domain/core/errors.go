package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Parse errors
	ErrEmptyFile       = errors.New("file is empty")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrNoSheets        = errors.New("workbook contains no sheets")
	ErrNoHeaderRow     = errors.New("no header-producing row")
	ErrFileTooLarge    = errors.New("file exceeds size limit")

	// Advisory errors
	ErrAdviceRejected = errors.New("advisory suggestion rejected")
	ErrAdvisorDown    = errors.New("advisor unavailable")
)

// Error constructors with context
func NewUnsupportedFileError(ext string) error {
	return fmt.Errorf("%w: %q (expected .csv or .xlsx)", ErrUnsupportedFile, ext)
}

func NewNoHeaderRowError(sheet string) error {
	return fmt.Errorf("%w: sheet %q", ErrNoHeaderRow, sheet)
}

func NewFileTooLargeError(size, limit int64) error {
	return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, limit)
}

func NewAdviceRejectedError(reason string) error {
	return fmt.Errorf("%w: %s", ErrAdviceRejected, reason)
}

// Error checking helpers
func IsParseError(err error) bool {
	return errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrUnsupportedFile) ||
		errors.Is(err, ErrNoSheets) ||
		errors.Is(err, ErrNoHeaderRow) ||
		errors.Is(err, ErrFileTooLarge)
}

func IsAdvisoryError(err error) bool {
	return errors.Is(err, ErrAdviceRejected) ||
		errors.Is(err, ErrAdvisorDown)
}
