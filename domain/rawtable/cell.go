package rawtable

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// CellKind identifies what a parsed cell holds
type CellKind string

const (
	CellNull   CellKind = "null"
	CellNumber CellKind = "number"
	CellString CellKind = "string"
)

// Cell is one parsed table value: a string, a number, or null.
// Cells marshal to bare JSON values rather than wrapper objects.
type Cell struct {
	Kind CellKind
	Text string
	Num  float64
}

// NullCell creates an empty cell
func NullCell() Cell {
	return Cell{Kind: CellNull}
}

// NumberCell creates a numeric cell
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Num: v}
}

// StringCell creates a text cell
func StringCell(s string) Cell {
	return Cell{Kind: CellString, Text: s}
}

// IsNull checks whether the cell is empty
func (c Cell) IsNull() bool {
	return c.Kind == CellNull
}

// AsNumber returns the numeric value when the cell holds one
func (c Cell) AsNumber() (float64, bool) {
	if c.Kind != CellNumber {
		return 0, false
	}
	return c.Num, true
}

// AsString returns the text value when the cell holds one
func (c Cell) AsString() (string, bool) {
	if c.Kind != CellString {
		return "", false
	}
	return c.Text, true
}

// Display returns the canonical label form of the cell: empty for null,
// shortest round-trip form for numbers, the text itself for strings.
func (c Cell) Display() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	case CellString:
		return c.Text
	default:
		return ""
	}
}

// MarshalJSON emits the bare value: null, a number, or a string
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellNumber:
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(c.Num)
	case CellString:
		return json.Marshal(c.Text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts the bare value forms produced by MarshalJSON
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*c = NullCell()
	case float64:
		*c = NumberCell(v)
	case string:
		*c = StringCell(v)
	default:
		return fmt.Errorf("cell must be string, number, or null, got %T", raw)
	}
	return nil
}
