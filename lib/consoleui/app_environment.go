// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"time"

	"github.com/bureau-foundation/console/lib/channel"
	"github.com/bureau-foundation/console/lib/clock"
)

// AppEnvironmentName is the name of the console's own environment.
const AppEnvironmentName = "ui"

// Channel names in the ui environment.
const (
	channelUptime     = "uptime"
	channelPaused     = "paused"
	channelRate       = "rate"
	channelMaxSamples = "max_samples"
	channelTickCount  = "tick.count"
	channelTickPeriod = "tick.period"
)

// maxRate caps the commandable refresh rate.
const maxRate = 1000

// appEnvironment holds the console's self-describing channels. The
// operator can pause refresh and retune the rate and plot history with
// ordinary commands against it.
type appEnvironment struct {
	environment *channel.Environment
	clock       clock.Clock
	started     time.Time
	lastTick    time.Time
	ticks       uint64
}

func newAppEnvironment(clk clock.Clock, rate float64, maxSamples int) (*appEnvironment, error) {
	environment := channel.NewEnvironment(AppEnvironmentName, clk)
	register := []struct {
		name    string
		kind    channel.Kind
		options []channel.Option
	}{
		{channelUptime, channel.KindDouble, nil},
		{channelPaused, channel.KindBool, []channel.Option{channel.Commandable()}},
		{channelRate, channel.KindDouble, []channel.Option{
			channel.Commandable(),
			channel.Initial(channel.FloatValue(channel.KindDouble, rate)),
		}},
		{channelMaxSamples, channel.KindUint32, []channel.Option{
			channel.Commandable(),
			channel.Initial(channel.UintValue(channel.KindUint32, uint64(maxSamples))),
		}},
		{channelTickCount, channel.KindUint64, nil},
		{channelTickPeriod, channel.KindDouble, nil},
	}
	for _, definition := range register {
		if _, err := environment.Register(definition.name, definition.kind, definition.options...); err != nil {
			return nil, fmt.Errorf("registering %s.%s: %w", AppEnvironmentName, definition.name, err)
		}
	}

	now := clk.Now()
	return &appEnvironment{
		environment: environment,
		clock:       clk,
		started:     now,
		lastTick:    now,
	}, nil
}

// recordTick updates uptime and tick statistics.
func (app *appEnvironment) recordTick(now time.Time) {
	app.ticks++
	period := now.Sub(app.lastTick)
	app.lastTick = now

	// The setters only fail for unknown names or out-of-range values,
	// neither of which can happen for these registrations.
	_ = app.environment.SetFloat(channelUptime, now.Sub(app.started).Seconds())
	_ = app.environment.SetValue(channelTickCount, channel.UintValue(channel.KindUint64, app.ticks))
	_ = app.environment.SetFloat(channelTickPeriod, float64(period)/float64(time.Millisecond))
}

// uptime is the time since the console started.
func (app *appEnvironment) uptime(now time.Time) time.Duration {
	return now.Sub(app.started)
}

func (app *appEnvironment) paused() bool {
	value, err := app.environment.Value(channelPaused)
	return err == nil && value.Bool()
}

// tickInterval derives the refresh period from the rate channel,
// clamped to (0, maxRate] ticks per second.
func (app *appEnvironment) tickInterval() time.Duration {
	value, err := app.environment.Value(channelRate)
	rate := value.Float()
	if err != nil || rate <= 0 {
		rate = 1
	}
	rate = min(rate, maxRate)
	return time.Duration(float64(time.Second) / rate)
}

func (app *appEnvironment) maxSamples() int {
	value, err := app.environment.Value(channelMaxSamples)
	if err != nil || value.Int() < 1 {
		return 1
	}
	return int(value.Int())
}
