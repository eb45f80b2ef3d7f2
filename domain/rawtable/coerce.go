package rawtable

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericPattern accepts an optional sign, digits, an optional decimal part
// separated by period or comma, and an optional exponent. Thousands
// separators are deliberately not accepted: "1,234" is one-point-two-three-four.
var numericPattern = regexp.MustCompile(`^[+-]?\d+([.,]\d+)?([eE][+-]?\d+)?$`)

// Coerce deterministically converts a raw parser value into a typed Cell.
// Already-typed values pass through unchanged, so coercion is idempotent.
func Coerce(raw interface{}) Cell {
	switch v := raw.(type) {
	case nil:
		return NullCell()
	case Cell:
		return v
	case string:
		return CoerceString(v)
	case float64:
		return NumberCell(v)
	case float32:
		return NumberCell(float64(v))
	case int:
		return NumberCell(float64(v))
	case int32:
		return NumberCell(float64(v))
	case int64:
		return NumberCell(float64(v))
	case bool:
		return StringCell(strconv.FormatBool(v))
	default:
		return CoerceString(fmt.Sprintf("%v", v))
	}
}

// CoerceString applies the cell coercion rule to raw text: trim, empty
// becomes null, numeric-looking text becomes a number (comma decimals
// normalized to periods), anything else stays the trimmed string.
func CoerceString(s string) Cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return NullCell()
	}

	if numericPattern.MatchString(trimmed) {
		normalized := strings.Replace(trimmed, ",", ".", 1)
		if val, err := strconv.ParseFloat(normalized, 64); err == nil {
			if !math.IsInf(val, 0) && !math.IsNaN(val) {
				return NumberCell(val)
			}
		}
	}

	return StringCell(trimmed)
}

// HeaderName returns the trimmed header text, or the synthesized
// "Column N" placeholder (1-based) when the header cell is blank.
func HeaderName(raw string, index int) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fmt.Sprintf("Column %d", index+1)
	}
	return trimmed
}
