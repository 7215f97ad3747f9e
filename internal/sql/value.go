// Package sql implements the lexer, parser, and typed value model shared
// between the storage engine and the query executor.
package sql

import "fmt"

// DataType is the declared type of a column.
type DataType int

const (
	TypeInteger DataType = iota
	TypeFloat
	TypeText
	TypeBoolean
)

func (t DataType) String() string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeFloat:
		return "FLOAT"
	case TypeText:
		return "TEXT"
	case TypeBoolean:
		return "BOOLEAN"
	default:
		return "UNKNOWN"
	}
}

// ValueKind tags the variant held by a Value. NULL is not a DataType (a
// column never declares NULL as its type) so it gets its own tag.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInteger
	KindFloat
	KindText
	KindBoolean
)

// Value is a tagged scalar: exactly one of the Kind-matching fields is
// meaningful, the rest sit at their zero value.
type Value struct {
	Kind ValueKind

	I int64
	F float64
	S string
	B bool
}

// Null is the NULL value.
var Null = Value{Kind: KindNull}

func IntValue(i int64) Value     { return Value{Kind: KindInteger, I: i} }
func FloatValue(f float64) Value { return Value{Kind: KindFloat, F: f} }
func TextValue(s string) Value   { return Value{Kind: KindText, S: s} }
func BoolValue(b bool) Value     { return Value{Kind: KindBoolean, B: b} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindInteger:
		return fmt.Sprintf("%d", v.I)
	case KindFloat:
		return fmt.Sprintf("%g", v.F)
	case KindText:
		return v.S
	case KindBoolean:
		if v.B {
			return "true"
		}
		return "false"
	default:
		return "?"
	}
}

// asFloat widens an Integer or Float value to float64. Ok is false for any
// other kind.
func (v Value) asFloat() (float64, bool) {
	switch v.Kind {
	case KindInteger:
		return float64(v.I), true
	case KindFloat:
		return v.F, true
	default:
		return 0, false
	}
}

// Equal reports whether a and b compare equal. ok is false when the
// comparison is unknown (either side is NULL) — per spec.md §3, any
// comparison involving NULL yields unknown.
func Equal(a, b Value) (equal bool, ok bool) {
	cmp, ok := Compare(a, b)
	if !ok {
		return false, false
	}
	return cmp == 0, true
}

// Compare orders a relative to b: -1, 0, 1. ok is false when either side is
// NULL, or when the two sides are non-numeric and of different kinds (a
// comparison the planner should have rejected at plan time).
func Compare(a, b Value) (cmp int, ok bool) {
	if a.IsNull() || b.IsNull() {
		return 0, false
	}

	af, aIsNum := a.asFloat()
	bf, bIsNum := b.asFloat()
	if aIsNum && bIsNum {
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}

	if a.Kind != b.Kind {
		return 0, false
	}

	switch a.Kind {
	case KindText:
		switch {
		case a.S < b.S:
			return -1, true
		case a.S > b.S:
			return 1, true
		default:
			return 0, true
		}
	case KindBoolean:
		switch {
		case a.B == b.B:
			return 0, true
		case !a.B && b.B:
			return -1, true
		default:
			return 1, true
		}
	default:
		return 0, false
	}
}

// Less orders a strictly before b, with NULL sorting least — the ordering
// used by the B-Tree index and by ORDER BY (spec.md §4.3, §4.5).
func Less(a, b Value) bool {
	if a.IsNull() && b.IsNull() {
		return false
	}
	if a.IsNull() {
		return true
	}
	if b.IsNull() {
		return false
	}
	cmp, ok := Compare(a, b)
	if !ok {
		return false
	}
	return cmp < 0
}

// ConformsTo reports whether v's variant matches ct, treating an Integer
// value as conforming to a FLOAT column (it is widened at write time by
// CoerceTo, not here).
func (v Value) ConformsTo(ct DataType) bool {
	if v.IsNull() {
		return true
	}
	switch ct {
	case TypeInteger:
		return v.Kind == KindInteger
	case TypeFloat:
		return v.Kind == KindFloat || v.Kind == KindInteger
	case TypeText:
		return v.Kind == KindText
	case TypeBoolean:
		return v.Kind == KindBoolean
	default:
		return false
	}
}

// CoerceTo widens an Integer value to Float when the column declares
// FLOAT; every other value passes through unchanged. Call only after
// ConformsTo has returned true.
func (v Value) CoerceTo(ct DataType) Value {
	if ct == TypeFloat && v.Kind == KindInteger {
		return FloatValue(float64(v.I))
	}
	return v
}

// Column is immutable metadata for one table column.
type Column struct {
	Name       string
	Type       DataType
	PrimaryKey bool
	Unique     bool
	NotNull    bool
}

// Row maps column name to Value, per spec.md §3.
type Row map[string]Value

// Assignment is one `column = literal` pair from a SET clause.
type Assignment struct {
	Column string
	Value  Value
}
