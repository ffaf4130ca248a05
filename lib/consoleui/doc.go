// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package consoleui is the interactive channel console: a bubbletea
// program that shows one tab per channel environment, a filterable
// table of channels with live values, a plot of the selected channel,
// a log pane, and a command input with channel-name completion.
//
// The console owns a "ui" environment of its own (uptime, tick
// statistics, refresh rate, pause switch) which is always the first
// tab and accepts commands like any other environment.
//
// Log records reach the log pane through [TUILogHandler], an slog
// handler that forwards records into the running program.
package consoleui
