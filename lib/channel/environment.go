// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bureau-foundation/console/lib/clock"
)

// Environment is an in-memory [Provider]. Channels are registered once
// and keep their ID and position for the environment's lifetime;
// values change through Set/Toggle (commands) or the typed setters
// (producers).
//
// All methods are safe for concurrent use.
type Environment struct {
	name  string
	clock clock.Clock

	mutex   sync.RWMutex
	entries []*entry
	byName  map[string]*entry
	enums   map[string]*Enum
	nextID  uint64

	// prefix holds the name segments pushed by PushName. Registration
	// joins them in front of the channel name.
	prefix []string
}

type entry struct {
	channel Channel
	value   Value
	updated time.Time
}

// Option adjusts a channel at registration time.
type Option func(*registration)

type registration struct {
	commandable bool
	enumName    string
	initial     *Value
}

// Commandable marks the channel as mutable without the force flag.
func Commandable() Option {
	return func(reg *registration) { reg.commandable = true }
}

// WithEnum attaches a previously registered enum to an integer channel.
func WithEnum(name string) Option {
	return func(reg *registration) { reg.enumName = name }
}

// Initial sets the channel's starting value. Without it the channel
// starts at the zero value of its kind.
func Initial(value Value) Option {
	return func(reg *registration) { reg.initial = &value }
}

// NewEnvironment creates an empty environment. The clock stamps every
// update so Age and LastUpdated are deterministic under a fake clock.
func NewEnvironment(name string, clk clock.Clock) *Environment {
	return &Environment{
		name:   name,
		clock:  clk,
		byName: make(map[string]*entry),
		enums:  make(map[string]*Enum),
		nextID: 1,
	}
}

// Name returns the environment's display name.
func (environment *Environment) Name() string { return environment.name }

// Len returns the number of registered channels.
func (environment *Environment) Len() int {
	environment.mutex.RLock()
	defer environment.mutex.RUnlock()
	return len(environment.entries)
}

// RegisterEnum declares a named enum that integer channels can
// reference with [WithEnum].
func (environment *Environment) RegisterEnum(name string, items map[string]int64) (*Enum, error) {
	enum, err := NewEnum(name, items)
	if err != nil {
		return nil, err
	}

	environment.mutex.Lock()
	defer environment.mutex.Unlock()
	if _, exists := environment.enums[name]; exists {
		return nil, fmt.Errorf("enum %q already registered", name)
	}
	environment.enums[name] = enum
	return enum, nil
}

// Enum returns a registered enum by name.
func (environment *Environment) Enum(name string) (*Enum, bool) {
	environment.mutex.RLock()
	defer environment.mutex.RUnlock()
	enum, ok := environment.enums[name]
	return enum, ok
}

// PushName appends a segment to the registration prefix. Channels
// registered afterwards are named "<segments>.<name>" until the
// matching PopName.
func (environment *Environment) PushName(segment string) {
	environment.mutex.Lock()
	defer environment.mutex.Unlock()
	environment.prefix = append(environment.prefix, segment)
}

// PopName removes the most recently pushed segment.
func (environment *Environment) PopName() {
	environment.mutex.Lock()
	defer environment.mutex.Unlock()
	if len(environment.prefix) > 0 {
		environment.prefix = environment.prefix[:len(environment.prefix)-1]
	}
}

// WithNames runs register with segment pushed onto the prefix.
func (environment *Environment) WithNames(segment string, register func() error) error {
	environment.PushName(segment)
	defer environment.PopName()
	return register()
}

// Register adds a channel. The full name is the current prefix joined
// with name by dots. Registering a duplicate name is an error.
func (environment *Environment) Register(name string, kind Kind, options ...Option) (*Channel, error) {
	var reg registration
	for _, option := range options {
		option(&reg)
	}

	environment.mutex.Lock()
	defer environment.mutex.Unlock()

	fullName := strings.Join(append(append([]string(nil), environment.prefix...), name), ".")
	if fullName == "" || strings.ContainsAny(fullName, " \t\n") {
		return nil, fmt.Errorf("invalid channel name %q", fullName)
	}
	if _, exists := environment.byName[fullName]; exists {
		return nil, fmt.Errorf("channel %q already registered", fullName)
	}

	var enum *Enum
	if reg.enumName != "" {
		if !kind.IsInteger() {
			return nil, fmt.Errorf("channel %q: enum %s requires an integer kind, not %s", fullName, reg.enumName, kind)
		}
		var ok bool
		enum, ok = environment.enums[reg.enumName]
		if !ok {
			return nil, fmt.Errorf("channel %q: unknown enum %q", fullName, reg.enumName)
		}
	}

	value := Zero(kind)
	if reg.initial != nil {
		converted, err := convert(kind, *reg.initial)
		if err != nil {
			return nil, fmt.Errorf("channel %q: %w", fullName, err)
		}
		value = converted
	} else if enum != nil && enum.Len() > 0 {
		first, _ := enum.Value(enum.names[0])
		if converted, err := convert(kind, IntValue(KindInt64, first)); err == nil {
			value = converted
		}
	}

	registered := &entry{
		channel: Channel{
			ID:          environment.nextID,
			Name:        fullName,
			Kind:        kind,
			Enum:        enum,
			Commandable: reg.commandable,
		},
		value:   value,
		updated: environment.clock.Now(),
	}
	environment.nextID++
	environment.entries = append(environment.entries, registered)
	environment.byName[fullName] = registered

	channel := registered.channel
	return &channel, nil
}

// BoolChannel registers a boolean channel.
func (environment *Environment) BoolChannel(name string, options ...Option) (*Channel, error) {
	return environment.Register(name, KindBool, options...)
}

// IntChannel registers an integer channel of the given kind.
func (environment *Environment) IntChannel(name string, kind Kind, options ...Option) (*Channel, error) {
	if !kind.IsInteger() {
		return nil, fmt.Errorf("channel %q: %s is not an integer kind", name, kind)
	}
	return environment.Register(name, kind, options...)
}

// FloatChannel registers a float or double channel.
func (environment *Environment) FloatChannel(name string, kind Kind, options ...Option) (*Channel, error) {
	if !kind.IsFloat() {
		return nil, fmt.Errorf("channel %q: %s is not a float kind", name, kind)
	}
	return environment.Register(name, kind, options...)
}

// Names implements [Provider].
func (environment *Environment) Names() []string {
	environment.mutex.RLock()
	defer environment.mutex.RUnlock()

	names := make([]string, len(environment.entries))
	for index, registered := range environment.entries {
		names[index] = registered.channel.Name
	}
	return names
}

// Lookup implements [Provider].
func (environment *Environment) Lookup(name string) (*Channel, bool) {
	environment.mutex.RLock()
	defer environment.mutex.RUnlock()

	registered, ok := environment.byName[name]
	if !ok {
		return nil, false
	}
	channel := registered.channel
	return &channel, true
}

// Value implements [Provider].
func (environment *Environment) Value(name string) (Value, error) {
	environment.mutex.RLock()
	defer environment.mutex.RUnlock()

	registered, err := environment.find(name)
	if err != nil {
		return Value{}, err
	}
	return registered.value, nil
}

// LastUpdated implements [Provider].
func (environment *Environment) LastUpdated(name string) (time.Time, error) {
	environment.mutex.RLock()
	defer environment.mutex.RUnlock()

	registered, err := environment.find(name)
	if err != nil {
		return time.Time{}, err
	}
	return registered.updated, nil
}

// Sample implements [Provider].
func (environment *Environment) Sample(name string) (Value, time.Time, error) {
	environment.mutex.RLock()
	defer environment.mutex.RUnlock()

	registered, err := environment.find(name)
	if err != nil {
		return Value{}, time.Time{}, err
	}
	return registered.value, registered.updated, nil
}

// Age implements [Provider].
func (environment *Environment) Age(name string) (time.Duration, error) {
	updated, err := environment.LastUpdated(name)
	if err != nil {
		return 0, err
	}
	return environment.clock.Now().Sub(updated), nil
}

// Set implements [Provider]. The raw string is coerced with
// [ParseValue]; failures leave the current value untouched.
func (environment *Environment) Set(name string, raw string) error {
	environment.mutex.Lock()
	defer environment.mutex.Unlock()

	registered, err := environment.find(name)
	if err != nil {
		return err
	}

	value, err := ParseValue(registered.channel.Kind, registered.channel.Enum, raw)
	if err != nil {
		return &SetError{Channel: name, Raw: raw, Reason: err.Error(), Err: err}
	}
	environment.store(registered, value)
	return nil
}

// Toggle implements [Provider].
func (environment *Environment) Toggle(name string) error {
	environment.mutex.Lock()
	defer environment.mutex.Unlock()

	registered, err := environment.find(name)
	if err != nil {
		return err
	}
	if !registered.channel.Kind.IsBoolean() {
		return fmt.Errorf("%w: %s is %s", ErrNotBoolean, name, registered.channel.Kind)
	}
	environment.store(registered, BoolValue(!registered.value.boolean))
	return nil
}

// SetValue stores a typed value from a producer. The value is
// converted to the channel's kind; integers out of range for the
// channel's width are rejected.
func (environment *Environment) SetValue(name string, value Value) error {
	environment.mutex.Lock()
	defer environment.mutex.Unlock()

	registered, err := environment.find(name)
	if err != nil {
		return err
	}
	converted, err := convert(registered.channel.Kind, value)
	if err != nil {
		return fmt.Errorf("channel %q: %w", name, err)
	}
	environment.store(registered, converted)
	return nil
}

// SetBool is shorthand for SetValue(name, BoolValue(value)).
func (environment *Environment) SetBool(name string, value bool) error {
	return environment.SetValue(name, BoolValue(value))
}

// SetInt is shorthand for SetValue with a signed integer.
func (environment *Environment) SetInt(name string, value int64) error {
	return environment.SetValue(name, IntValue(KindInt64, value))
}

// SetFloat is shorthand for SetValue with a double.
func (environment *Environment) SetFloat(name string, value float64) error {
	return environment.SetValue(name, FloatValue(KindDouble, value))
}

// find resolves a name. Callers hold the mutex.
func (environment *Environment) find(name string) (*entry, error) {
	registered, ok := environment.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, name)
	}
	return registered, nil
}

// store writes a value and stamps the update time. Callers hold the
// write lock.
func (environment *Environment) store(registered *entry, value Value) {
	registered.value = value
	registered.updated = environment.clock.Now()
}

// convert coerces a value into kind, range-checking integers.
func convert(kind Kind, value Value) (Value, error) {
	switch {
	case kind.IsBoolean():
		return BoolValue(value.Bool()), nil
	case kind.IsFloat():
		if kind == KindFloat {
			return FloatValue(kind, float64(float32(value.Float()))), nil
		}
		return FloatValue(kind, value.Float()), nil
	case !kind.Signed() && kind.Bits() == 64 && !value.Kind.Signed() && !value.Kind.IsBoolean():
		return UintValue(kind, value.unsigned), nil
	default:
		return integerValue(kind, value.Int())
	}
}
