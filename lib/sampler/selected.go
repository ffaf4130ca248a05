// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sampler records the recent history of one channel for
// plotting. A [SelectedChannel] polls a [channel.Provider] and keeps a
// bounded window of (elapsed seconds, value) samples, appending only
// when the channel's update timestamp has advanced.
package sampler

import (
	"sync"
	"time"

	"github.com/bureau-foundation/console/lib/channel"
	"github.com/bureau-foundation/console/lib/clock"
)

type sample struct {
	// updated is the provider's raw update timestamp. New samples must
	// be strictly later than the newest recorded one.
	updated time.Time
	elapsed float64
	value   float64
}

// SelectedChannel is the sampling state for one channel. All methods
// are safe for concurrent use: the UI may re-select on one goroutine
// while a tick polls on another.
type SelectedChannel struct {
	name     string
	provider channel.Provider
	clock    clock.Clock

	mutex   sync.Mutex
	start   time.Time
	samples ring[sample]
}

// New creates a sampler for name with an empty history. The start
// time is taken from clk.
func New(name string, provider channel.Provider, clk clock.Clock) *SelectedChannel {
	return &SelectedChannel{
		name:     name,
		provider: provider,
		clock:    clk,
		start:    clk.Now(),
	}
}

// Name returns the sampled channel's name.
func (selected *SelectedChannel) Name() string { return selected.name }

// Provider returns the provider the channel is read from.
func (selected *SelectedChannel) Provider() channel.Provider { return selected.provider }

// Reset discards every sample and restarts the elapsed-time origin at
// the clock's current time.
func (selected *SelectedChannel) Reset() {
	selected.mutex.Lock()
	defer selected.mutex.Unlock()
	selected.samples.Clear()
	selected.start = selected.clock.Now()
}

// Poll reads the channel once and appends a sample if its update
// timestamp is strictly later than the newest recorded one (or nothing
// is recorded yet). Afterwards the oldest samples are evicted until at
// most maxSamples remain. Read failures record nothing. A maxSamples
// below 1 is treated as 1.
func (selected *SelectedChannel) Poll(maxSamples int) {
	maxSamples = max(maxSamples, 1)

	value, updated, err := selected.provider.Sample(selected.name)
	if err != nil {
		return
	}

	selected.mutex.Lock()
	defer selected.mutex.Unlock()

	selected.samples.Reserve(maxSamples + 1)
	newest, ok := selected.samples.Back()
	if !ok || updated.After(newest.updated) {
		selected.samples.Push(sample{
			updated: updated,
			elapsed: updated.Sub(selected.start).Seconds(),
			value:   value.Float(),
		})
	}
	for selected.samples.Len() > maxSamples {
		selected.samples.PopFront()
	}
}

// Len returns the number of recorded samples.
func (selected *SelectedChannel) Len() int {
	selected.mutex.Lock()
	defer selected.mutex.Unlock()
	return selected.samples.Len()
}

// Timestamps returns the elapsed seconds of every sample, oldest
// first. The slice is a copy.
func (selected *SelectedChannel) Timestamps() []float64 {
	selected.mutex.Lock()
	defer selected.mutex.Unlock()
	result := make([]float64, selected.samples.Len())
	for index := range result {
		result[index] = selected.samples.At(index).elapsed
	}
	return result
}

// Values returns every sample's value, oldest first. The slice is a
// copy.
func (selected *SelectedChannel) Values() []float64 {
	selected.mutex.Lock()
	defer selected.mutex.Unlock()
	result := make([]float64, selected.samples.Len())
	for index := range result {
		result[index] = selected.samples.At(index).value
	}
	return result
}

// Latest returns the newest sample's elapsed time and value.
func (selected *SelectedChannel) Latest() (elapsed, value float64, ok bool) {
	selected.mutex.Lock()
	defer selected.mutex.Unlock()
	newest, ok := selected.samples.Back()
	if !ok {
		return 0, 0, false
	}
	return newest.elapsed, newest.value, true
}
