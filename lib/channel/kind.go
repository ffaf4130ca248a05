// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import "fmt"

// Kind is the primitive type of a channel's value.
type Kind int

const (
	KindBool Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat
	KindDouble
)

var kindNames = [...]string{
	KindBool:   "bool",
	KindInt8:   "int8",
	KindInt16:  "int16",
	KindInt32:  "int32",
	KindInt64:  "int64",
	KindUint8:  "uint8",
	KindUint16: "uint16",
	KindUint32: "uint32",
	KindUint64: "uint64",
	KindFloat:  "float",
	KindDouble: "double",
}

// String returns the kind's type name ("bool", "int32", "double", ...).
func (kind Kind) String() string {
	if kind < 0 || int(kind) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(kind))
	}
	return kindNames[kind]
}

// ParseKind resolves a type name as produced by [Kind.String].
func ParseKind(name string) (Kind, error) {
	for index, candidate := range kindNames {
		if candidate == name {
			return Kind(index), nil
		}
	}
	return 0, fmt.Errorf("unknown channel kind %q", name)
}

// IsBoolean reports whether the kind is KindBool.
func (kind Kind) IsBoolean() bool { return kind == KindBool }

// IsFloat reports whether the kind is a floating-point kind.
func (kind Kind) IsFloat() bool { return kind == KindFloat || kind == KindDouble }

// IsInteger reports whether the kind is a signed or unsigned integer.
func (kind Kind) IsInteger() bool { return kind >= KindInt8 && kind <= KindUint64 }

// Signed reports whether an integer kind is signed. Floats are signed;
// booleans are not.
func (kind Kind) Signed() bool {
	return (kind >= KindInt8 && kind <= KindInt64) || kind.IsFloat()
}

// Bits returns the storage width in bits. Booleans report 1.
func (kind Kind) Bits() int {
	switch kind {
	case KindBool:
		return 1
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat:
		return 32
	default:
		return 64
	}
}
