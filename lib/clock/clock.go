// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts wall-clock reads and periodic tickers.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// NewTicker returns a Ticker delivering ticks every d. Panics if
	// d <= 0, matching time.NewTicker.
	NewTicker(d time.Duration) *Ticker
}

// Ticker delivers periodic ticks on C. The channel has capacity 1;
// ticks are dropped when the consumer falls behind.
type Ticker struct {
	C <-chan time.Time

	stop func()
}

// Stop turns the ticker off. C is not closed.
func (ticker *Ticker) Stop() { ticker.stop() }

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTicker(d time.Duration) *Ticker {
	ticker := time.NewTicker(d)
	return &Ticker{C: ticker.C, stop: ticker.Stop}
}
