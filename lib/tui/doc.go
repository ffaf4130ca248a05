// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal UI building blocks the console is
// assembled from: the color theme and per-type value styles, a
// scrollbar, fzf-backed fuzzy matching, a dropdown overlay, row flash
// animation after commands, and a text line plot.
//
// Everything here is stateless rendering or small value types. The
// bubbletea model that owns state and routes input lives in
// lib/consoleui.
package tui
