package excel

import "strconv"

// CellKind identifies the variant of a raw cell value.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindText
	KindNumber
	KindBool
	KindTemporal
)

// Cell is one raw cell value as produced by the workbook parser.
// Exactly one variant is populated, identified by Kind.
type Cell struct {
	Kind   CellKind
	Text   string // KindText and KindTemporal
	Number float64
	Bool   bool
}

func EmptyCell() Cell            { return Cell{Kind: KindEmpty} }
func TextCell(s string) Cell     { return Cell{Kind: KindText, Text: s} }
func NumberCell(n float64) Cell  { return Cell{Kind: KindNumber, Number: n} }
func BoolCell(b bool) Cell       { return Cell{Kind: KindBool, Bool: b} }
func TemporalCell(s string) Cell { return Cell{Kind: KindTemporal, Text: s} }

// Normalize renders the cell as its canonical string. The rendering is
// part of the public contract:
//   - empty cells render as ""
//   - numbers render as their shortest round-trip decimal form ("42", "3.14")
//   - booleans render as "TRUE" or "FALSE"
//   - temporal values keep the display string the parser produced
//
// Normalize is total over the variant and never fails.
func (c Cell) Normalize() string {
	switch c.Kind {
	case KindEmpty:
		return ""
	case KindText:
		return c.Text
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindBool:
		if c.Bool {
			return "TRUE"
		}
		return "FALSE"
	case KindTemporal:
		return c.Text
	default:
		return ""
	}
}
