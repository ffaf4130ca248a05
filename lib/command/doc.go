// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package command turns operator input lines into channel mutations.
//
// The grammar is small:
//
//	<action> [-f|--force] <channel> [<value>...]
//
// where action is "set" or "toggle". [Parse] produces a [Request] or a
// [*ParseError]; [Processor] resolves the request against a
// [channel.Provider], enforces the commandable check, dispatches the
// mutation, and reports a [Result]. The processor also completes
// partially typed channel names for the input line.
package command
