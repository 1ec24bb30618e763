package excel

import (
	"bytes"
	"encoding/json"
)

// Selector identifies the target sheet of a read: by name, by 0-based
// index, or the default (first sheet).
type Selector struct {
	name    string
	index   int
	byIndex bool
}

// SelectByName targets the sheet with the given name (exact match).
func SelectByName(name string) Selector {
	return Selector{name: name}
}

// SelectByIndex targets the sheet at the given 0-based position.
func SelectByIndex(index int) Selector {
	return Selector{index: index, byIndex: true}
}

// SelectDefault targets the workbook's first sheet.
func SelectDefault() Selector {
	return Selector{byIndex: true}
}

func (sel Selector) resolve(wb *Workbook) (*Sheet, error) {
	if sel.name != "" {
		return wb.SheetByName(sel.name)
	}
	return wb.SheetByIndex(sel.index)
}

// ReadSheet resolves the selector against the workbook and returns the
// resolved sheet's own name together with its normalized grid.
func ReadSheet(wb *Workbook, sel Selector) (string, [][]string, error) {
	sheet, err := sel.resolve(wb)
	if err != nil {
		return "", nil, err
	}
	grid, err := readGrid(sheet)
	if err != nil {
		return "", nil, err
	}
	return sheet.Name(), grid, nil
}

// ReadAllSheets reads every sheet in the workbook, preserving workbook
// sheet order in the envelope.
func ReadAllSheets(wb *Workbook) (*Envelope, error) {
	env := NewEnvelope()
	for _, name := range wb.SheetNames() {
		sheet, err := wb.SheetByName(name)
		if err != nil {
			return nil, err
		}
		grid, err := readGrid(sheet)
		if err != nil {
			return nil, err
		}
		env.Add(sheet.Name(), grid)
	}
	return env, nil
}

// readGrid normalizes a sheet's used range into rows of strings. Every
// row is padded to the sheet's maximum used column count so the result
// is rectangular.
func readGrid(sheet *Sheet) ([][]string, error) {
	rows, err := sheet.Rows()
	if err != nil {
		return nil, err
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	grid := make([][]string, len(rows))
	for r, row := range rows {
		out := make([]string, width)
		for c, cell := range row {
			out[c] = cell.Normalize()
		}
		grid[r] = out
	}
	return grid, nil
}

// Envelope is the response mapping from sheet name to normalized grid.
// Unlike a plain map it keeps workbook sheet order, and marshals to a
// JSON object with keys in that order, so repeated reads of an
// unmodified file produce byte-identical output.
type Envelope struct {
	names []string
	grids map[string][][]string
}

func NewEnvelope() *Envelope {
	return &Envelope{grids: make(map[string][][]string)}
}

// Add appends a sheet's grid under its name. Adding an existing name
// replaces the grid without changing its position.
func (e *Envelope) Add(name string, grid [][]string) {
	if _, ok := e.grids[name]; !ok {
		e.names = append(e.names, name)
	}
	e.grids[name] = grid
}

// Len returns the number of sheets in the envelope.
func (e *Envelope) Len() int {
	return len(e.names)
}

// SheetNames returns the sheet names in insertion (workbook) order.
func (e *Envelope) SheetNames() []string {
	names := make([]string, len(e.names))
	copy(names, e.names)
	return names
}

// Grid returns the normalized grid for a sheet name.
func (e *Envelope) Grid(name string) ([][]string, bool) {
	grid, ok := e.grids[name]
	return grid, ok
}

// MarshalJSON writes the envelope as a JSON object with keys in
// workbook sheet order.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range e.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		grid := e.grids[name]
		if grid == nil {
			grid = [][]string{}
		}
		value, err := json.Marshal(grid)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
