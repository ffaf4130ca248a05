// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// FakeClock is a deterministic Clock. Time stands still until Advance
// or Set is called; tickers fire during Advance for every interval
// boundary crossed (coalesced into the single buffered slot).
//
// FakeClock is safe for concurrent use.
type FakeClock struct {
	mutex   sync.Mutex
	current time.Time
	tickers []*fakeTicker
	changed *sync.Cond
}

type fakeTicker struct {
	channel  chan time.Time
	next     time.Time
	interval time.Duration
	stopped  bool
}

// Fake returns a FakeClock reading initial.
func Fake(initial time.Time) *FakeClock {
	clock := &FakeClock{current: initial}
	clock.changed = sync.NewCond(&clock.mutex)
	return clock
}

// Now returns the fake time.
func (clock *FakeClock) Now() time.Time {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	return clock.current
}

// NewTicker registers a ticker that fires as Advance crosses each
// multiple of d.
func (clock *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	clock.mutex.Lock()
	defer clock.mutex.Unlock()

	ticker := &fakeTicker{
		channel:  make(chan time.Time, 1),
		next:     clock.current.Add(d),
		interval: d,
	}
	clock.tickers = append(clock.tickers, ticker)
	clock.changed.Broadcast()

	return &Ticker{
		C: ticker.channel,
		stop: func() {
			clock.mutex.Lock()
			defer clock.mutex.Unlock()
			ticker.stopped = true
		},
	}
}

// Advance moves time forward by d and fires due tickers.
func (clock *FakeClock) Advance(d time.Duration) {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()

	clock.current = clock.current.Add(d)
	live := clock.tickers[:0]
	for _, ticker := range clock.tickers {
		if ticker.stopped {
			continue
		}
		for !ticker.next.After(clock.current) {
			select {
			case ticker.channel <- ticker.next:
			default:
			}
			ticker.next = ticker.next.Add(ticker.interval)
		}
		live = append(live, ticker)
	}
	clock.tickers = live
}

// Set jumps to an absolute time without firing tickers. Setting a time
// earlier than Now simulates a clock regression.
func (clock *FakeClock) Set(now time.Time) {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	clock.current = now
}

// WaitForTickers blocks until at least n live tickers are registered.
// Use it before Advance when a goroutine creates its ticker
// asynchronously.
func (clock *FakeClock) WaitForTickers(n int) {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	for clock.liveTickersLocked() < n {
		clock.changed.Wait()
	}
}

func (clock *FakeClock) liveTickersLocked() int {
	count := 0
	for _, ticker := range clock.tickers {
		if !ticker.stopped {
			count++
		}
	}
	return count
}
