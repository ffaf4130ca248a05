// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownChannel is returned when a name does not resolve to a
// registered channel.
var ErrUnknownChannel = errors.New("unknown channel")

// ErrNotBoolean is returned by Toggle for non-boolean channels.
var ErrNotBoolean = errors.New("channel is not boolean")

// Channel describes one registered channel. The struct is a snapshot
// of static metadata; the current value is read through the Provider.
type Channel struct {
	// ID is stable for the lifetime of the provider.
	ID uint64

	// Name is the dotted hierarchical path ("a.3.random").
	Name string

	// Kind is the primitive type of the value.
	Kind Kind

	// Enum is non-nil for integer channels with named values.
	Enum *Enum

	// Commandable is true when external mutation is permitted without
	// the force flag.
	Commandable bool
}

// TypeName returns the enum name for enum channels and the primitive
// type name otherwise. This is what the channel table displays.
func (channel *Channel) TypeName() string {
	if channel.Enum != nil {
		return channel.Enum.Name
	}
	return channel.Kind.String()
}

// Provider is the capability set the console needs from a channel
// source. Local task environments, connection environments, and the
// console's own environment all satisfy it.
type Provider interface {
	// Names returns every registered channel name. The order is stable
	// across calls as long as no channels are registered in between.
	Names() []string

	// Lookup resolves a name to its channel metadata.
	Lookup(name string) (*Channel, bool)

	// Value returns the current value of a channel.
	Value(name string) (Value, error)

	// LastUpdated returns the time of the channel's most recent update.
	LastUpdated(name string) (time.Time, error)

	// Sample returns the current value together with the time it was
	// written, read in one step so a concurrent write cannot pair one
	// update's timestamp with another's value.
	Sample(name string) (Value, time.Time, error)

	// Age returns the time elapsed since the channel's last update.
	Age(name string) (time.Duration, error)

	// Set coerces raw into the channel's type and stores it. Coercion,
	// range, and enum failures are reported as *SetError.
	Set(name string, raw string) error

	// Toggle inverts a boolean channel in place.
	Toggle(name string) error
}

// SetError reports a value that could not be coerced into a channel's
// type. The message is suitable for display to the user as-is.
type SetError struct {
	Channel string
	Raw     string
	Reason  string
	Err     error
}

func (setError *SetError) Error() string {
	return fmt.Sprintf("Can't set '%s' to '%s': %s.", setError.Channel, setError.Raw, setError.Reason)
}

func (setError *SetError) Unwrap() error { return setError.Err }
