package excel

import (
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Workbook is an opened handle to a spreadsheet file. A Workbook is
// owned by the operation that opened it and must be closed when that
// operation completes.
type Workbook struct {
	file *excelize.File
	path string
}

// OpenWorkbook opens the spreadsheet at path. A path that does not
// resolve to an existing regular file yields a NotFoundError; a file that
// exists but cannot be parsed yields a WorkbookError wrapping the
// parser's message.
func OpenWorkbook(path string) (*Workbook, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, &WorkbookError{Operation: "stat", Path: path, Cause: err}
	}
	// A directory is not a readable workbook file
	if info.IsDir() {
		return nil, &NotFoundError{Path: path}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &WorkbookError{
			Operation: "open",
			Path:      path,
			Cause:     fmt.Errorf("failed to open workbook: %w", err),
		}
	}

	return &Workbook{file: f, path: path}, nil
}

// Close releases the workbook handle.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Path returns the path the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns all sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// SheetCount returns the number of sheets in the workbook.
func (w *Workbook) SheetCount() int {
	return len(w.file.GetSheetList())
}

// SheetByName resolves a sheet by exact, case-sensitive name match.
func (w *Workbook) SheetByName(name string) (*Sheet, error) {
	for _, n := range w.file.GetSheetList() {
		if n == name {
			return &Sheet{wb: w, name: n}, nil
		}
	}
	return nil, &SheetError{
		Operation: "resolve",
		SheetName: name,
		Cause:     ErrSheetNotFound,
	}
}

// SheetByIndex resolves a sheet by its 0-based position in workbook
// order. Out-of-range indexes fail stating the valid range.
func (w *Workbook) SheetByIndex(index int) (*Sheet, error) {
	names := w.file.GetSheetList()
	if index < 0 || index >= len(names) {
		return nil, &ValidationError{
			Field:   "sheet_index",
			Value:   index,
			Message: fmt.Sprintf("sheet index %d out of range, valid range is [0,%d)", index, len(names)),
		}
	}
	return &Sheet{wb: w, name: names[index]}, nil
}

// Sheet is one named grid of cells within an open workbook. It stays
// valid only for the lifetime of its Workbook handle.
type Sheet struct {
	wb   *Workbook
	name string
}

// Name returns the sheet's own name as declared in the workbook.
func (s *Sheet) Name() string {
	return s.name
}

// Rows returns the sheet's used range as raw cells, rows in document
// order. Rows may be ragged; a sheet with no used rows returns an
// empty slice.
func (s *Sheet) Rows() ([][]Cell, error) {
	raw, err := s.wb.file.GetRows(s.name)
	if err != nil {
		return nil, &SheetError{
			Operation: "read",
			SheetName: s.name,
			Cause:     fmt.Errorf("failed to get rows: %w", err),
		}
	}

	rows := make([][]Cell, len(raw))
	for r, rawRow := range raw {
		row := make([]Cell, len(rawRow))
		for c, value := range rawRow {
			row[c] = s.classify(r+1, c+1, value)
		}
		rows[r] = row
	}
	return rows, nil
}

// classify turns one formatted cell value into its raw variant. The
// coordinates are 1-based.
func (s *Sheet) classify(row, col int, value string) Cell {
	if value == "" {
		return EmptyCell()
	}

	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return TextCell(value)
	}

	cellType, err := s.wb.file.GetCellType(s.name, cellName)
	if err != nil {
		return TextCell(value)
	}

	switch cellType {
	case excelize.CellTypeBool:
		return BoolCell(value == "TRUE")
	case excelize.CellTypeDate:
		return TemporalCell(value)
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeFormula:
		// Date-formatted numbers render as display strings that no
		// longer parse as decimals; keep those as temporal values.
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return NumberCell(n)
		}
		if cellType == excelize.CellTypeNumber {
			return TemporalCell(value)
		}
		return TextCell(value)
	default:
		return TextCell(value)
	}
}
