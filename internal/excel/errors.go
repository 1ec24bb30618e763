package excel

import (
	"errors"
	"fmt"
)

// ErrSheetNotFound is the cause recorded when a by-name lookup misses.
var ErrSheetNotFound = errors.New("sheet not found")

// NotFoundError reports a file path that does not resolve to an
// existing, readable file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("excel file not found: %s", e.Path)
}

// WorkbookError represents errors related to workbook operations
type WorkbookError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *WorkbookError) Error() string {
	return fmt.Sprintf("workbook error during %s on %s: %v", e.Operation, e.Path, e.Cause)
}

func (e *WorkbookError) Unwrap() error {
	return e.Cause
}

// SheetError represents errors related to worksheet operations
type SheetError struct {
	Operation string
	SheetName string
	Cause     error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("worksheet error during %s on sheet '%s': %v", e.Operation, e.SheetName, e.Cause)
}

func (e *SheetError) Unwrap() error {
	return e.Cause
}

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}
