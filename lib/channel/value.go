// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"strconv"
)

// Value is a decoded channel value. Exactly one of the payload fields
// is meaningful, selected by Kind.
type Value struct {
	Kind Kind

	boolean  bool
	signed   int64
	unsigned uint64
	float    float64
}

// BoolValue wraps a boolean.
func BoolValue(value bool) Value { return Value{Kind: KindBool, boolean: value} }

// IntValue wraps a signed integer of the given kind.
func IntValue(kind Kind, value int64) Value { return Value{Kind: kind, signed: value} }

// UintValue wraps an unsigned integer of the given kind.
func UintValue(kind Kind, value uint64) Value { return Value{Kind: kind, unsigned: value} }

// FloatValue wraps a float of the given kind.
func FloatValue(kind Kind, value float64) Value { return Value{Kind: kind, float: value} }

// Zero returns the zero value for a kind.
func Zero(kind Kind) Value { return Value{Kind: kind} }

// Bool returns the boolean payload. Non-boolean values report whether
// they are non-zero.
func (value Value) Bool() bool {
	switch {
	case value.Kind.IsBoolean():
		return value.boolean
	default:
		return value.Float() != 0
	}
}

// Int returns the value as a signed integer. Floats are truncated.
func (value Value) Int() int64 {
	switch {
	case value.Kind.IsBoolean():
		if value.boolean {
			return 1
		}
		return 0
	case value.Kind.IsFloat():
		return int64(value.float)
	case value.Kind.Signed():
		return value.signed
	default:
		return int64(value.unsigned)
	}
}

// Float returns the value as a float64. Booleans map to 0 and 1. This
// is the representation used for plotting.
func (value Value) Float() float64 {
	switch {
	case value.Kind.IsBoolean():
		if value.boolean {
			return 1
		}
		return 0
	case value.Kind.IsFloat():
		return value.float
	case value.Kind.Signed():
		return float64(value.signed)
	default:
		return float64(value.unsigned)
	}
}

// Equal reports whether two values have the same kind and payload.
func (value Value) Equal(other Value) bool {
	return value == other
}

// String formats the value without padding: "true", "42", "0.5".
func (value Value) String() string {
	switch {
	case value.Kind.IsBoolean():
		return strconv.FormatBool(value.boolean)
	case value.Kind.IsFloat():
		return strconv.FormatFloat(value.float, 'g', -1, value.Kind.Bits())
	case value.Kind.Signed():
		return strconv.FormatInt(value.signed, 10)
	default:
		return strconv.FormatUint(value.unsigned, 10)
	}
}
