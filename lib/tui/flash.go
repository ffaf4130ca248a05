// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"
)

// FlashDecayDuration is how long a row stays highlighted after a
// command touched it. Intensity starts at 1.0 and decays linearly.
const FlashDecayDuration = 2 * time.Second

// FlashKind selects the flash color.
type FlashKind int

const (
	// FlashSuccess marks a channel a command changed.
	FlashSuccess FlashKind = iota
	// FlashFailure marks a channel a command was rejected for.
	FlashFailure
)

type flashEntry struct {
	ignition time.Time
	kind     FlashKind
}

// FlashTracker maps channel names to the time a command last touched
// them, for fading row highlights.
type FlashTracker struct {
	entries map[string]flashEntry
}

// NewFlashTracker creates an empty tracker.
func NewFlashTracker() *FlashTracker {
	return &FlashTracker{entries: make(map[string]flashEntry)}
}

// Ignite starts (or restarts) the flash for a channel.
func (tracker *FlashTracker) Ignite(name string, kind FlashKind, now time.Time) {
	tracker.entries[name] = flashEntry{ignition: now, kind: kind}
}

// Intensity returns 1.0 at ignition, decaying linearly to 0.0 over
// [FlashDecayDuration]. Channels never ignited return 0.
func (tracker *FlashTracker) Intensity(name string, now time.Time) float64 {
	entry, exists := tracker.entries[name]
	if !exists {
		return 0
	}
	elapsed := now.Sub(entry.ignition)
	if elapsed >= FlashDecayDuration {
		return 0
	}
	return 1 - float64(elapsed)/float64(FlashDecayDuration)
}

// Kind returns the flash kind for a channel. Only meaningful while
// Intensity is positive.
func (tracker *FlashTracker) Kind(name string) FlashKind {
	return tracker.entries[name].kind
}

// Prune drops fully decayed entries and reports whether any remain.
func (tracker *FlashTracker) Prune(now time.Time) bool {
	for name, entry := range tracker.entries {
		if now.Sub(entry.ignition) >= FlashDecayDuration {
			delete(tracker.entries, name)
		}
	}
	return len(tracker.entries) > 0
}
