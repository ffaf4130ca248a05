// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pattern decides which channel names are visible. A
// [PatternPair] holds compiled include and exclude regular
// expressions; a name is visible when it matches at least one include
// (or there are no includes) and matches no exclude.
//
// Patterns use unanchored search semantics: "random" matches
// "a.0.random". Anchor explicitly with ^ and $ when needed.
package pattern

import (
	"fmt"
	"regexp"
)

// PatternPair is an immutable include/exclude rule set.
type PatternPair struct {
	Includes []*regexp.Regexp
	Excludes []*regexp.Regexp
}

// ConfigError reports a pattern that failed to compile. It is a
// configuration problem and is returned at construction, never at
// match time.
type ConfigError struct {
	// Key is the configuration key the pattern came from ("include",
	// "exclude", ...).
	Key     string
	Pattern string
	Err     error
}

func (configError *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s pattern %q: %v", configError.Key, configError.Pattern, configError.Err)
}

func (configError *ConfigError) Unwrap() error { return configError.Err }

// Compile builds a PatternPair from pattern strings.
func Compile(includes, excludes []string) (PatternPair, error) {
	var pair PatternPair
	var err error
	if pair.Includes, err = compileAll("include", includes); err != nil {
		return PatternPair{}, err
	}
	if pair.Excludes, err = compileAll("exclude", excludes); err != nil {
		return PatternPair{}, err
	}
	return pair, nil
}

// MustCompile is like Compile but panics on error. For tests and
// package-level defaults.
func MustCompile(includes, excludes []string) PatternPair {
	pair, err := Compile(includes, excludes)
	if err != nil {
		panic(err)
	}
	return pair
}

func compileAll(key string, patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, source := range patterns {
		expression, err := regexp.Compile(source)
		if err != nil {
			return nil, &ConfigError{Key: key, Pattern: source, Err: err}
		}
		compiled = append(compiled, expression)
	}
	return compiled, nil
}

// Matches reports whether name is visible. Excludes are only
// consulted for names that pass the include check.
func (pair PatternPair) Matches(name string) bool {
	included := len(pair.Includes) == 0
	for _, include := range pair.Includes {
		if include.MatchString(name) {
			included = true
			break
		}
	}
	if !included {
		return false
	}

	for _, exclude := range pair.Excludes {
		if exclude.MatchString(name) {
			return false
		}
	}
	return true
}

// Filter returns the names that match, preserving order.
func (pair PatternPair) Filter(names []string) []string {
	visible := make([]string, 0, len(names))
	for _, name := range names {
		if pair.Matches(name) {
			visible = append(visible, name)
		}
	}
	return visible
}

// IsEmpty reports whether the pair has no rules (every name matches).
func (pair PatternPair) IsEmpty() bool {
	return len(pair.Includes) == 0 && len(pair.Excludes) == 0
}

// Merge returns a pair whose includes and excludes are the union of
// both pairs' rules.
func (pair PatternPair) Merge(other PatternPair) PatternPair {
	return PatternPair{
		Includes: append(append([]*regexp.Regexp(nil), pair.Includes...), other.Includes...),
		Excludes: append(append([]*regexp.Regexp(nil), pair.Excludes...), other.Excludes...),
	}
}
