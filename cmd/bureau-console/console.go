// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/console/lib/channel"
	"github.com/bureau-foundation/console/lib/clock"
	"github.com/bureau-foundation/console/lib/config"
	"github.com/bureau-foundation/console/lib/consoleui"
	"github.com/bureau-foundation/console/lib/pattern"
	"github.com/bureau-foundation/console/lib/sample"
)

// localEnvironmentName is the environment the sample task populates.
const localEnvironmentName = "local"

// console is everything run needs to start the program.
type console struct {
	model        consoleui.Model
	task         *sample.Task // Nil when the sample task is disabled.
	environments []consoleui.Environment
}

// buildConsole creates the environments, the sample task, and the UI
// model from cfg. Pattern flags from the command line are added to
// every environment's configured filter.
func buildConsole(cfg *config.Config, parsed *flags, logger *slog.Logger, clk clock.Clock) (*console, error) {
	override, err := pattern.Compile(parsed.includes, parsed.excludes)
	if err != nil {
		return nil, err
	}
	filterFor := func(name string) (pattern.PatternPair, error) {
		configured, err := cfg.Filter(name)
		if err != nil {
			return pattern.PatternPair{}, err
		}
		return configured.Merge(override), nil
	}

	built := &console{}
	if cfg.Sample.Enabled {
		period, err := cfg.SamplePeriod()
		if err != nil {
			return nil, err
		}
		local := channel.NewEnvironment(localEnvironmentName, clk)
		built.task, err = sample.New(local, clk, sample.Config{
			Period:   period,
			Prefixes: cfg.Sample.Prefixes,
			Count:    cfg.Sample.Count,
			Seed:     cfg.Sample.Seed,
		}, logger.With("component", "sample"))
		if err != nil {
			return nil, err
		}
		filter, err := filterFor(localEnvironmentName)
		if err != nil {
			return nil, err
		}
		built.environments = append(built.environments, consoleui.Environment{
			Name:     localEnvironmentName,
			Provider: local,
			Filter:   filter,
		})
	}

	known := map[string]bool{consoleui.AppEnvironmentName: true}
	for _, environment := range built.environments {
		known[environment.Name] = true
	}
	for _, name := range cfg.EnvironmentNames() {
		if !known[name] {
			logger.Warn("configured filter names no environment", "environment", name)
		}
	}

	appFilter, err := filterFor(consoleui.AppEnvironmentName)
	if err != nil {
		return nil, err
	}
	stopAfter, err := cfg.StopAfterDuration()
	if err != nil {
		return nil, err
	}

	built.model, err = consoleui.NewModel(consoleui.Options{
		Environments:  built.environments,
		Clock:         clk,
		Logger:        logger,
		Rate:          cfg.Rate,
		MaxSamples:    cfg.MaxSamples,
		StopAfter:     stopAfter,
		AppFilter:     appFilter,
		InitialFilter: cfg.DefaultFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("building console: %w", err)
	}
	return built, nil
}

// environmentNames lists every tab, the "ui" tab first.
func (built *console) environmentNames() []string {
	names := []string{consoleui.AppEnvironmentName}
	for _, environment := range built.environments {
		names = append(names, environment.Name)
	}
	return names
}

// channelCount is the number of channels across the non-ui
// environments.
func (built *console) channelCount() int {
	count := 0
	for _, environment := range built.environments {
		count += len(environment.Provider.Names())
	}
	return count
}
