// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the console.
//
// Configuration is loaded from a single file specified by either the
// BUREAU_CONSOLE_CONFIG environment variable (via [Load]) or a
// --config flag (via [LoadFile]). There is no automatic file search.
// Without either, [Default] applies.
//
// Files ending in .json or .jsonc are read as JSON with comments;
// everything else is read as YAML. Values in the file override the
// defaults field by field.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded.
//
// Key exports:
//
//   - [Config] -- refresh rate, sample history, demo task, environment filters
//   - [Default] -- returns a Config with built-in defaults
//   - [Load], [LoadFile], and [Resolve] -- the entry points for loading
//   - [Config.Validate] -- reports every problem at once
package config
