package model

import (
	"github.com/cockroachdb/apd/v3"
)

// ValueKind tags the payload a default-value holder carries.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueNull
	ValueBool
	ValueInt
	ValueDouble
	ValueString
	ValueArray
	ValueUnresolved
)

// Value is the default-value holder described in spec.md §3: a
// ValueAvailable flag plus a tagged payload. DNumber literals are kept as
// apd.Decimal rather than float64 so a default like `3.14` round-trips
// exactly instead of through binary float rounding.
type Value struct {
	Available bool
	Kind      ValueKind
	Bool      bool
	Int       int64
	Double    *apd.Decimal
	Str       string
	// Array default values are tokenized but never evaluated (spec.md §9
	// open question a): presence is recorded, contents are not.
}

// Unavailable is the zero Value with Available left false, returned when a
// default-value position never produced a literal.
func Unavailable() Value { return Value{} }

func NullValue() Value                { return Value{Available: true, Kind: ValueNull} }
func BoolValue(b bool) Value          { return Value{Available: true, Kind: ValueBool, Bool: b} }
func IntValue(n int64) Value          { return Value{Available: true, Kind: ValueInt, Int: n} }
func StringValue(s string) Value      { return Value{Available: true, Kind: ValueString, Str: s} }
func ArrayValue() Value               { return Value{Available: true, Kind: ValueArray} }
func UnresolvedValue() Value          { return Value{Available: true, Kind: ValueUnresolved} }
func DoubleValue(d *apd.Decimal) Value {
	return Value{Available: true, Kind: ValueDouble, Double: d}
}
