// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"fmt"
	"sort"
)

// Enum is an ordered name <-> integer mapping attached to integer
// channels. Items keep the order in which they were declared.
type Enum struct {
	// Name identifies the enum within its environment ("SampleEnum").
	Name string

	names  []string
	values map[string]int64
	byID   map[int64]string
}

// NewEnum builds an enum from a name -> value map. Items are ordered
// by value, then by name, so the declaration order is deterministic
// regardless of map iteration. Duplicate values are rejected.
func NewEnum(name string, items map[string]int64) (*Enum, error) {
	names := make([]string, 0, len(items))
	for itemName := range items {
		names = append(names, itemName)
	}
	sort.Slice(names, func(i, j int) bool {
		left, right := items[names[i]], items[names[j]]
		if left != right {
			return left < right
		}
		return names[i] < names[j]
	})

	enum := &Enum{
		Name:   name,
		names:  names,
		values: make(map[string]int64, len(items)),
		byID:   make(map[int64]string, len(items)),
	}
	for _, itemName := range names {
		value := items[itemName]
		if existing, duplicate := enum.byID[value]; duplicate {
			return nil, fmt.Errorf("enum %s: items %q and %q share value %d", name, existing, itemName, value)
		}
		enum.values[itemName] = value
		enum.byID[value] = itemName
	}
	return enum, nil
}

// Value returns the integer for an item name.
func (enum *Enum) Value(name string) (int64, bool) {
	value, ok := enum.values[name]
	return value, ok
}

// ItemName returns the item name for an integer.
func (enum *Enum) ItemName(value int64) (string, bool) {
	name, ok := enum.byID[value]
	return name, ok
}

// Names returns the item names in order.
func (enum *Enum) Names() []string {
	return append([]string(nil), enum.names...)
}

// Len returns the number of items.
func (enum *Enum) Len() int { return len(enum.names) }
