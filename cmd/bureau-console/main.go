// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// bureau-console is an interactive terminal console for channel
// environments: a table of live channel values per environment, a
// command line for set/toggle with channel-name completion, a plot of
// the selected channel, and a log pane.
//
// The console always has a "ui" environment describing itself (uptime,
// pause, refresh rate). With the sample task enabled (the default) a
// "local" environment holds a few dozen demonstration channels updated
// once per sample period.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/console/lib/clock"
	"github.com/bureau-foundation/console/lib/config"
	"github.com/bureau-foundation/console/lib/consoleui"
	"github.com/bureau-foundation/console/lib/version"
)

const binaryName = "bureau-console"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// flags holds the parsed command line. Fields with a Changed check
// override the configuration only when given.
type flags struct {
	configPath string
	rate       float64
	maxSamples int
	logOutput  string
	initOnly   bool
	noSample   bool
	includes   []string
	excludes   []string
	version    bool
	help       bool

	set *pflag.FlagSet
}

func parseFlags(args []string) (*flags, error) {
	parsed := &flags{}
	flagSet := pflag.NewFlagSet(binaryName, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&parsed.configPath, "config", "", "configuration file (default: $"+config.EnvironmentVariable+", else built-in defaults)")
	flagSet.Float64Var(&parsed.rate, "rate", 0, "refresh rate in ticks per second")
	flagSet.IntVar(&parsed.maxSamples, "max-samples", 0, "samples kept for the plot")
	flagSet.StringVar(&parsed.logOutput, "log-output", "", "write JSON log records to this file (in addition to the log pane)")
	flagSet.BoolVar(&parsed.initOnly, "init-only", false, "build every component, then exit")
	flagSet.BoolVar(&parsed.noSample, "no-sample", false, "do not run the sample task")
	flagSet.StringArrayVar(&parsed.includes, "include", nil, "only list channels matching this pattern (repeatable)")
	flagSet.StringArrayVar(&parsed.excludes, "exclude", nil, "hide channels matching this pattern (repeatable)")
	flagSet.BoolVar(&parsed.version, "version", false, "print version information")
	flagSet.BoolVarP(&parsed.help, "help", "h", false, "show help")
	parsed.set = flagSet

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			parsed.help = true
			return parsed, nil
		}
		return nil, err
	}
	if remaining := flagSet.Args(); len(remaining) > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", remaining[0])
	}
	return parsed, nil
}

// apply overlays explicitly given flags onto cfg.
func (parsed *flags) apply(cfg *config.Config) {
	if parsed.set.Changed("rate") {
		cfg.Rate = parsed.rate
	}
	if parsed.set.Changed("max-samples") {
		cfg.MaxSamples = parsed.maxSamples
	}
	if parsed.logOutput != "" {
		cfg.LogOutput = parsed.logOutput
	}
	if parsed.noSample {
		cfg.Sample.Enabled = false
	}
}

func run() error {
	parsed, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}
	if parsed.help {
		printHelp(parsed.set)
		return nil
	}
	if parsed.version {
		version.Fprint(os.Stdout, binaryName)
		return nil
	}

	cfg, err := config.Resolve(parsed.configPath)
	if err != nil {
		return err
	}
	parsed.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	session := uuid.NewString()

	if parsed.initOnly {
		logger := newStderrLogger().With("session", session)
		console, err := buildConsole(cfg, parsed, logger, clock.Real())
		if err != nil {
			return err
		}
		logger.Info("initialized",
			"environments", console.environmentNames(),
			"channels", console.channelCount(),
			"version", version.Short(),
		)
		return nil
	}

	tuiHandler := consoleui.NewTUILogHandler(slog.LevelInfo)
	defer tuiHandler.Close()

	var handler slog.Handler = tuiHandler
	if cfg.LogOutput != "" {
		fileHandler, closeFile, err := openFileLogHandler(cfg.LogOutput)
		if err != nil {
			return fmt.Errorf("cannot open log file %s: %w", cfg.LogOutput, err)
		}
		defer closeFile()
		handler = fanoutHandler{tuiHandler, fileHandler}
	}
	logger := slog.New(handler).With("session", session)

	console, err := buildConsole(cfg, parsed, logger, clock.Real())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	var producers sync.WaitGroup
	if console.task != nil {
		producers.Add(1)
		go func() {
			defer producers.Done()
			if err := console.task.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("sample task failed", "error", err)
			}
		}()
	}
	defer func() {
		cancel()
		producers.Wait()
	}()

	logger.Info("console started", "version", version.Info(), "environments", console.environmentNames())

	program := tea.NewProgram(console.model, tea.WithAltScreen())
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Bureau console: live channel table, set/toggle commands, and plots.

Configuration comes from --config, else $%s, else built-in
defaults. Flags override the file.

Usage:
  %s [flags]

Examples:
  # Run with the sample channels
  %s

  # Only list the "a" sample channels, refresh 30 times a second
  %s --include '^a\.' --rate 30

  # Validate a configuration and exit
  %s --config console.yaml --init-only

Keys:
  Enter     run the command (input) or plot the row (table)
  Tab       complete a channel name (input) or next environment (table)
  Esc       switch from the command line to the table
  :         switch from the table to the command line
  /         quick filter
  q, C-c    quit

Flags:
`, config.EnvironmentVariable, binaryName, binaryName, binaryName, binaryName)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
