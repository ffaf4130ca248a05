// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for the console.
//
// Channel environments stamp every update with Clock.Now, the sampler
// measures elapsed plot time against it, and periodic producers tick
// from Clock.NewTicker. Production code passes Real(); tests pass a
// FakeClock and move time explicitly:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	environment := channel.NewEnvironment("test", c)
//	c.Advance(250 * time.Millisecond)
//
// Only the operations the console needs are abstracted. Code that
// runs inside the bubbletea loop schedules with tea.Tick instead.
package clock
