package timeaxis

import (
	"math"
	"time"

	"gokinet/domain/rawtable"
)

// Kind classifies what a raw time column holds
type Kind string

const (
	KindNumeric  Kind = "numeric"
	KindDatetime Kind = "datetime"
	KindInvalid  Kind = "invalid"
)

// serialMagnitude is the threshold above which a fractional numeric time
// value looks like a spreadsheet date serial rather than elapsed time.
const serialMagnitude = 1e4

// datetimeFormats tried in order. time.Parse accepts fractional seconds
// after any seconds field, so sub-second inputs parse without extra layouts.
var datetimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"02-Jan-2006 15:04:05",
	"02-Jan-2006",
	"15:04:05",
	"15:04",
}

// ParseDatetime parses a timestamp in any supported format
func ParseDatetime(s string) (time.Time, bool) {
	for _, format := range datetimeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Axis is the normalized form of a time column. Seconds holds one entry per
// input row with NaN marking unparsable positions; NaN entries are consumed
// by the mapping stage (row dropped) and never reach serialized output.
type Axis struct {
	Kind           Kind
	Unit           Unit
	Seconds        []float64
	Reference      *time.Time
	SerialSuspects []int
}

// Detect classifies a raw time column. A column is datetime only when
// every non-null cell parses as a timestamp; one that merely contains
// timestamps is invalid as a whole. A column free of timestamps is numeric
// as soon as it holds any number (stray junk stays a per-row problem), and
// invalid otherwise, including when it has no non-null cells at all.
func Detect(cells []rawtable.Cell) Kind {
	nonNull := 0
	numeric := 0
	datetime := 0

	for _, c := range cells {
		if c.IsNull() {
			continue
		}
		nonNull++
		if _, ok := c.AsNumber(); ok {
			numeric++
			continue
		}
		if s, ok := c.AsString(); ok {
			if _, parsed := ParseDatetime(s); parsed {
				datetime++
			}
		}
	}

	switch {
	case nonNull == 0:
		return KindInvalid
	case datetime == nonNull:
		return KindDatetime
	case datetime > 0:
		return KindInvalid
	case numeric > 0:
		return KindNumeric
	default:
		return KindInvalid
	}
}

// Normalize converts a raw time column into elapsed seconds. Numeric
// columns are scaled by the declared unit when the header carries one, else
// by the caller-selected unit. Datetime columns are made relative to the
// FIRST encountered timestamp (not the minimum), which is exposed as
// Reference; negative elapsed values are therefore possible and left for
// validation to flag. Identical inputs always produce identical output.
func Normalize(cells []rawtable.Cell, declared *Unit, selected Unit) Axis {
	kind := Detect(cells)
	axis := Axis{
		Kind:    kind,
		Seconds: make([]float64, len(cells)),
	}

	switch kind {
	case KindNumeric:
		unit := selected
		if declared != nil {
			unit = *declared
		}
		axis.Unit = unit
		factor := unit.Factor()
		for i, c := range cells {
			num, ok := c.AsNumber()
			if !ok {
				axis.Seconds[i] = math.NaN()
				continue
			}
			if math.Abs(num) > serialMagnitude && num != math.Trunc(num) {
				axis.SerialSuspects = append(axis.SerialSuspects, i)
			}
			axis.Seconds[i] = num * factor
		}

	case KindDatetime:
		var ref time.Time
		haveRef := false
		for i, c := range cells {
			s, ok := c.AsString()
			if !ok {
				axis.Seconds[i] = math.NaN()
				continue
			}
			t, parsed := ParseDatetime(s)
			if !parsed {
				axis.Seconds[i] = math.NaN()
				continue
			}
			if !haveRef {
				ref = t
				haveRef = true
				axis.Reference = &ref
			}
			axis.Seconds[i] = t.Sub(ref).Seconds()
		}

	default:
		for i := range axis.Seconds {
			axis.Seconds[i] = math.NaN()
		}
	}

	return axis
}
