// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sample provides a demonstration producer that fills a
// channel environment with a grid of changing channels. It exists so
// the console has something to show without a real data source, and
// gives the tests a realistic workload.
//
// For each prefix (default "a", "b", "c") and index 0..count-1 the
// task registers:
//
//	<prefix>.<index>.random  double, uniformly random in [0, 1)
//	<prefix>.<index>.enum    int32 SampleEnum, cycling one..ten
//	<prefix>.<index>.bool    bool, true for even indices
//
// plus the task's own "sample.dispatches" counter and
// "sample.dispatch_ms" timing channel.
package sample

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/bureau-foundation/console/lib/channel"
	"github.com/bureau-foundation/console/lib/clock"
)

// EnumName is the enum registered for the ".enum" channels.
const EnumName = "SampleEnum"

var enumItems = map[string]int64{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// Config controls the shape and pace of the task.
type Config struct {
	// Period between dispatches. Zero means one second.
	Period time.Duration

	// Prefixes are the top-level name segments. Empty means a, b, c.
	Prefixes []string

	// Count is the number of indices per prefix. Zero means 10.
	Count int

	// Seed makes the random channel sequence reproducible. Zero means
	// a random seed.
	Seed uint64
}

func (config Config) withDefaults() Config {
	if config.Period <= 0 {
		config.Period = time.Second
	}
	if len(config.Prefixes) == 0 {
		config.Prefixes = []string{"a", "b", "c"}
	}
	if config.Count <= 0 {
		config.Count = 10
	}
	return config
}

// Task owns the channels it registers and updates them on Dispatch.
type Task struct {
	environment *channel.Environment
	clock       clock.Clock
	logger      *slog.Logger
	config      Config
	random      *rand.Rand
	dispatches  uint64
}

// New registers the task's enum and channels in environment. It fails
// if any of the names are already taken.
func New(environment *channel.Environment, clk clock.Clock, config Config, logger *slog.Logger) (*Task, error) {
	config = config.withDefaults()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	task := &Task{
		environment: environment,
		clock:       clk,
		logger:      logger,
		config:      config,
		random:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}

	if _, err := environment.RegisterEnum(EnumName, enumItems); err != nil {
		return nil, fmt.Errorf("registering %s: %w", EnumName, err)
	}
	for _, prefix := range config.Prefixes {
		err := environment.WithNames(prefix, func() error {
			for index := range config.Count {
				err := environment.WithNames(strconv.Itoa(index), func() error {
					if _, err := environment.FloatChannel("random", channel.KindDouble); err != nil {
						return err
					}
					if _, err := environment.IntChannel("enum", channel.KindInt32, channel.WithEnum(EnumName)); err != nil {
						return err
					}
					_, err := environment.BoolChannel("bool")
					return err
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("registering sample channels: %w", err)
		}
	}
	if _, err := environment.IntChannel("sample.dispatches", channel.KindUint64); err != nil {
		return nil, fmt.Errorf("registering sample channels: %w", err)
	}
	if _, err := environment.FloatChannel("sample.dispatch_ms", channel.KindDouble); err != nil {
		return nil, fmt.Errorf("registering sample channels: %w", err)
	}
	return task, nil
}

// Dispatches returns how many times Dispatch has run.
func (task *Task) Dispatches() uint64 { return task.dispatches }

// Dispatch performs one update of every channel. Not safe for
// concurrent use with itself; Run calls it from a single goroutine.
func (task *Task) Dispatch() error {
	started := task.clock.Now()
	cycle := int64(task.dispatches % 10)

	for _, prefix := range task.config.Prefixes {
		for index := range task.config.Count {
			base := prefix + "." + strconv.Itoa(index) + "."
			if err := task.environment.SetFloat(base+"random", task.random.Float64()); err != nil {
				return err
			}
			if err := task.environment.SetInt(base+"enum", (cycle+int64(index))%10+1); err != nil {
				return err
			}
			if err := task.environment.SetBool(base+"bool", index%2 == 0); err != nil {
				return err
			}
		}
	}

	task.dispatches++
	if err := task.environment.SetValue("sample.dispatches", channel.UintValue(channel.KindUint64, task.dispatches)); err != nil {
		return err
	}
	elapsed := task.clock.Now().Sub(started)
	return task.environment.SetFloat("sample.dispatch_ms", float64(elapsed)/float64(time.Millisecond))
}

// Run dispatches once immediately and then every period until ctx is
// cancelled. A dispatch error stops the task and is returned.
func (task *Task) Run(ctx context.Context) error {
	ticker := task.clock.NewTicker(task.config.Period)
	defer ticker.Stop()

	task.logger.Info("sample task started",
		"environment", task.environment.Name(),
		"period", task.config.Period,
		"channels", len(task.config.Prefixes)*task.config.Count*3,
	)

	if err := task.Dispatch(); err != nil {
		return fmt.Errorf("sample dispatch: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			task.logger.Info("sample task stopped", "dispatches", task.dispatches)
			return nil
		case <-ticker.C:
			if err := task.Dispatch(); err != nil {
				return fmt.Errorf("sample dispatch: %w", err)
			}
		}
	}
}
