// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package channel defines the named, typed values ("channels") that the
// console inspects and commands, and the [Provider] capability that
// exposes them.
//
// A channel has a stable numeric ID, a dotted hierarchical name such as
// "a.3.random", a primitive [Kind] (boolean, sized integer, or float),
// optional [Enum] metadata, and a commandable flag. Providers own their
// channels: the console never creates or destroys channels, it only
// reads and writes through the Provider interface.
//
// [Environment] is the in-memory Provider used by local tasks and by
// the console itself. It is safe for concurrent use: producer
// goroutines update values while the UI tick reads them.
//
// [Suggest] implements namespace completion: given a name prefix it
// returns the longest continuation shared by every registered name
// that starts with the prefix.
package channel
