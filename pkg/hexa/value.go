package hexa

import (
	"strconv"
	"strings"
	"time"
)

// ValueType represents the type tag of a typed value
type ValueType uint16

const (
	// Frozen numeric values; these are written to disk by the codec
	ValueTypeNull ValueType = iota
	ValueTypeBoolean
	ValueTypeInteger
	ValueTypeFloat
	ValueTypeString
	ValueTypeDate
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeNull:
		return "null"
	case ValueTypeBoolean:
		return "boolean"
	case ValueTypeInteger:
		return "integer"
	case ValueTypeFloat:
		return "float"
	case ValueTypeString:
		return "string"
	case ValueTypeDate:
		return "date"
	default:
		return "unknown"
	}
}

// IsValid reports whether the tag is one of the enumerated types
func (t ValueType) IsValid() bool {
	return t <= ValueTypeDate
}

// Ordering is the result of comparing two typed values
type Ordering int

const (
	Less Ordering = iota - 1
	Equal
	Greater
	// Incomparable means the two values have no defined ordering
	Incomparable
)

// Value is the object side of a triple: canonical text, a type tag, and a
// flag marking the text as the name of another subject (a graph edge)
type Value struct {
	Raw  string
	Type ValueType
	IsID bool
}

// NewValue creates a value with an explicit type tag
func NewValue(raw string, t ValueType) Value {
	return Value{Raw: raw, Type: t}
}

// NewID creates a value naming another subject
func NewID(subject string) Value {
	return Value{Raw: subject, Type: ValueTypeString, IsID: true}
}

// Date layouts accepted by FromRaw, tried in order
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// FromRaw infers a type tag from the canonical text form.
// Parsers are tried in order: null, boolean, integer, float, date;
// anything else is a string.
func FromRaw(raw string) Value {
	if raw == "" || raw == "null" {
		return Value{Raw: raw, Type: ValueTypeNull}
	}
	if raw == "true" || raw == "false" {
		return Value{Raw: raw, Type: ValueTypeBoolean}
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Value{Raw: raw, Type: ValueTypeInteger}
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		return Value{Raw: raw, Type: ValueTypeFloat}
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, raw); err == nil {
			return Value{Raw: raw, Type: ValueTypeDate}
		}
	}
	return Value{Raw: raw, Type: ValueTypeString}
}

// IsNumeric reports whether the value carries a numeric tag
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeInteger || v.Type == ValueTypeFloat
}

// Float returns the numeric form; integers widen to float64
func (v Value) Float() (float64, bool) {
	switch v.Type {
	case ValueTypeInteger:
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	case ValueTypeFloat:
		f, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Time parses the value as a date
func (v Value) Time() (time.Time, bool) {
	if v.Type != ValueTypeDate {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v.Raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Equals reports structural equality of two values
func (v Value) Equals(other Value) bool {
	return v.Raw == other.Raw && v.Type == other.Type && v.IsID == other.IsID
}

// Compare orders two typed values.
// Numeric against numeric compares as real numbers, strings
// lexicographically, dates chronologically, booleans false before true.
// Everything else is Incomparable.
func Compare(a, b Value) Ordering {
	if a.IsNumeric() && b.IsNumeric() {
		af, aok := a.Float()
		bf, bok := b.Float()
		if !aok || !bok {
			return Incomparable
		}
		return orderFloat(af, bf)
	}

	if a.Type != b.Type {
		return Incomparable
	}

	switch a.Type {
	case ValueTypeString:
		return orderInt(strings.Compare(a.Raw, b.Raw))
	case ValueTypeBoolean:
		return orderBool(a.Raw == "true", b.Raw == "true")
	case ValueTypeDate:
		at, aok := a.Time()
		bt, bok := b.Time()
		if !aok || !bok {
			return Incomparable
		}
		if at.Before(bt) {
			return Less
		}
		if at.After(bt) {
			return Greater
		}
		return Equal
	default:
		return Incomparable
	}
}

// Contains reports whether needle is a substring of v.
// Defined for strings only.
func Contains(v Value, needle string) bool {
	if v.Type != ValueTypeString {
		return false
	}
	return strings.Contains(v.Raw, needle)
}

func orderFloat(a, b float64) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func orderInt(c int) Ordering {
	switch {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	default:
		return Equal
	}
}

func orderBool(a, b bool) Ordering {
	switch {
	case a == b:
		return Equal
	case !a:
		return Less
	default:
		return Greater
	}
}
