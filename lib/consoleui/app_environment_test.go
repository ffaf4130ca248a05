// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"testing"
	"time"

	"github.com/bureau-foundation/console/lib/clock"
)

func TestAppEnvironmentChannels(t *testing.T) {
	t.Parallel()

	fake := clock.Fake(time.Unix(1735689600, 0))
	app, err := newAppEnvironment(fake, 10, 256)
	if err != nil {
		t.Fatalf("newAppEnvironment: %v", err)
	}

	want := []string{channelUptime, channelPaused, channelRate, channelMaxSamples, channelTickCount, channelTickPeriod}
	got := app.environment.Names()
	if len(got) != len(want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	for index := range want {
		if got[index] != want[index] {
			t.Fatalf("Names = %v, want %v", got, want)
		}
	}

	if interval := app.tickInterval(); interval != 100*time.Millisecond {
		t.Errorf("tickInterval = %v, want 100ms", interval)
	}
	if samples := app.maxSamples(); samples != 256 {
		t.Errorf("maxSamples = %d, want 256", samples)
	}
	if app.paused() {
		t.Error("paused at startup")
	}
}

func TestAppEnvironmentCommands(t *testing.T) {
	t.Parallel()

	fake := clock.Fake(time.Unix(1735689600, 0))
	app, err := newAppEnvironment(fake, 10, 256)
	if err != nil {
		t.Fatalf("newAppEnvironment: %v", err)
	}

	if err := app.environment.Toggle(channelPaused); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !app.paused() {
		t.Error("paused not set by toggle")
	}

	tests := []struct {
		rate string
		want time.Duration
	}{
		{"4", 250 * time.Millisecond},
		{"0", time.Second},
		{"-2", time.Second},
		{"5000", time.Millisecond},
	}
	for _, test := range tests {
		if err := app.environment.Set(channelRate, test.rate); err != nil {
			t.Fatalf("Set(rate, %s): %v", test.rate, err)
		}
		if got := app.tickInterval(); got != test.want {
			t.Errorf("rate %s: tickInterval = %v, want %v", test.rate, got, test.want)
		}
	}

	if err := app.environment.Set(channelMaxSamples, "0"); err != nil {
		t.Fatalf("Set(max_samples): %v", err)
	}
	if got := app.maxSamples(); got != 1 {
		t.Errorf("maxSamples = %d, want clamp to 1", got)
	}
}

func TestAppEnvironmentRecordTick(t *testing.T) {
	t.Parallel()

	fake := clock.Fake(time.Unix(1735689600, 0))
	app, err := newAppEnvironment(fake, 10, 256)
	if err != nil {
		t.Fatalf("newAppEnvironment: %v", err)
	}

	fake.Advance(250 * time.Millisecond)
	app.recordTick(fake.Now())
	fake.Advance(250 * time.Millisecond)
	app.recordTick(fake.Now())

	count, _ := app.environment.Value(channelTickCount)
	if count.Int() != 2 {
		t.Errorf("tick.count = %d, want 2", count.Int())
	}
	uptime, _ := app.environment.Value(channelUptime)
	if uptime.Float() != 0.5 {
		t.Errorf("uptime = %v, want 0.5", uptime.Float())
	}
	period, _ := app.environment.Value(channelTickPeriod)
	if period.Float() != 250 {
		t.Errorf("tick.period = %v, want 250", period.Float())
	}
	if got := app.uptime(fake.Now()); got != 500*time.Millisecond {
		t.Errorf("uptime() = %v, want 500ms", got)
	}
}
