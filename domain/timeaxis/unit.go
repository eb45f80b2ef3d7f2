package timeaxis

import (
	"regexp"
	"strings"
)

// Unit is a time unit for numeric time columns
type Unit string

const (
	UnitSeconds Unit = "seconds"
	UnitMinutes Unit = "minutes"
	UnitHours   Unit = "hours"
	UnitDays    Unit = "days"
)

// Factor returns the multiplier converting a value in this unit to seconds.
// Unknown units behave as seconds.
func (u Unit) Factor() float64 {
	switch u {
	case UnitMinutes:
		return 60
	case UnitHours:
		return 3600
	case UnitDays:
		return 86400
	default:
		return 1
	}
}

// unitAliases maps lowercased unit spellings to canonical units
var unitAliases = map[string]Unit{
	"s":       UnitSeconds,
	"sec":     UnitSeconds,
	"secs":    UnitSeconds,
	"second":  UnitSeconds,
	"seconds": UnitSeconds,
	"m":       UnitMinutes,
	"min":     UnitMinutes,
	"mins":    UnitMinutes,
	"minute":  UnitMinutes,
	"minutes": UnitMinutes,
	"h":       UnitHours,
	"hr":      UnitHours,
	"hrs":     UnitHours,
	"hour":    UnitHours,
	"hours":   UnitHours,
	"d":       UnitDays,
	"day":     UnitDays,
	"days":    UnitDays,
}

// ParseUnit resolves a unit spelling ("min", "hrs", "Seconds", ...)
func ParseUnit(s string) (Unit, bool) {
	unit, ok := unitAliases[strings.ToLower(strings.TrimSpace(s))]
	return unit, ok
}

// bracketSuffix captures a trailing parenthesised or bracketed annotation,
// as in "Time (min)" or "t [h]".
var bracketSuffix = regexp.MustCompile(`[(\[]([^)\]]+)[)\]]\s*$`)

// DeclaredUnit reads a unit declaration out of a column header. It checks a
// trailing bracketed annotation first, then the last separator-delimited
// token ("time_s", "elapsed min"). Headers without a recognizable unit
// return false and leave the caller-selected unit in charge.
func DeclaredUnit(header string) (Unit, bool) {
	if m := bracketSuffix.FindStringSubmatch(header); m != nil {
		if unit, ok := ParseUnit(m[1]); ok {
			return unit, true
		}
		return "", false
	}

	fields := strings.FieldsFunc(header, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '\t'
	})
	if len(fields) == 0 {
		return "", false
	}
	return ParseUnit(fields[len(fields)-1])
}
