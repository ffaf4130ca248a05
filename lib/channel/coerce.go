// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseValue coerces a raw string into a value of the given kind. For
// enum channels the raw string may be an item name or the integer of
// a declared item. Errors name the problem without naming the channel;
// [Environment.Set] wraps them into a *SetError.
func ParseValue(kind Kind, enum *Enum, raw string) (Value, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Value{}, errors.New("empty value")
	}

	switch {
	case kind.IsBoolean():
		return parseBool(trimmed)
	case kind.IsFloat():
		parsed, err := strconv.ParseFloat(trimmed, kind.Bits())
		if err != nil {
			return Value{}, numeralError(kind, trimmed, err)
		}
		return FloatValue(kind, parsed), nil
	case enum != nil:
		return parseEnum(kind, enum, trimmed)
	case kind.Signed():
		parsed, err := strconv.ParseInt(trimmed, 0, kind.Bits())
		if err != nil {
			return Value{}, numeralError(kind, trimmed, err)
		}
		return IntValue(kind, parsed), nil
	default:
		parsed, err := strconv.ParseUint(trimmed, 0, kind.Bits())
		if err != nil {
			return Value{}, numeralError(kind, trimmed, err)
		}
		return UintValue(kind, parsed), nil
	}
}

func parseBool(raw string) (Value, error) {
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "on", "y", "t":
		return BoolValue(true), nil
	case "false", "0", "no", "off", "n", "f":
		return BoolValue(false), nil
	}
	return Value{}, fmt.Errorf("'%s' is not a boolean", raw)
}

func parseEnum(kind Kind, enum *Enum, raw string) (Value, error) {
	if value, ok := enum.Value(raw); ok {
		return integerValue(kind, value)
	}
	if number, err := strconv.ParseInt(raw, 0, 64); err == nil {
		if _, ok := enum.ItemName(number); ok {
			return integerValue(kind, number)
		}
	}
	return Value{}, fmt.Errorf("unknown %s name or value '%s' (choose from %s)",
		enum.Name, raw, strings.Join(enum.Names(), ", "))
}

// integerValue stores an enum integer in the channel's integer kind,
// rejecting values that do not fit its width.
func integerValue(kind Kind, value int64) (Value, error) {
	minimum, maximum := IntegerRange(kind)
	if kind.Signed() {
		if value < minimum || value > maximum {
			return Value{}, fmt.Errorf("%d out of range for %s [%d, %d]", value, kind, minimum, maximum)
		}
		return IntValue(kind, value), nil
	}
	if value < 0 || (kind.Bits() < 64 && value > maximum) {
		return Value{}, fmt.Errorf("%d out of range for %s", value, kind)
	}
	return UintValue(kind, uint64(value)), nil
}

// IntegerRange returns the inclusive signed range representable by an
// integer kind. For uint64 the maximum is clamped to math.MaxInt64.
func IntegerRange(kind Kind) (int64, int64) {
	bits := kind.Bits()
	if kind.Signed() {
		if bits == 64 {
			return math.MinInt64, math.MaxInt64
		}
		return -(1 << (bits - 1)), (1 << (bits - 1)) - 1
	}
	if bits == 64 {
		return 0, math.MaxInt64
	}
	return 0, (1 << bits) - 1
}

func numeralError(kind Kind, raw string, err error) error {
	var numError *strconv.NumError
	if errors.As(err, &numError) && errors.Is(numError.Err, strconv.ErrRange) {
		if kind.IsInteger() {
			minimum, maximum := IntegerRange(kind)
			if kind == KindUint64 {
				return fmt.Errorf("'%s' out of range for %s [0, %d]", raw, kind, uint64(math.MaxUint64))
			}
			return fmt.Errorf("'%s' out of range for %s [%d, %d]", raw, kind, minimum, maximum)
		}
		return fmt.Errorf("'%s' out of range for %s", raw, kind)
	}
	return fmt.Errorf("'%s' is not a valid %s", raw, kind)
}
