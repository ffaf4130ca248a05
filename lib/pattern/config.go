// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pattern

import "fmt"

// includeKeys and excludeKeys are the accepted spellings in
// configuration maps.
var (
	includeKeys = []string{"include", "includes", "included"}
	excludeKeys = []string{"exclude", "excludes", "excluded"}
)

// FromConfig builds a PatternPair from a decoded configuration map.
// Each recognized key holds either a single pattern string or a list
// of pattern strings; empty values are ignored. Unrecognized keys are
// ignored so the map can be a larger configuration section.
func FromConfig(data map[string]any) (PatternPair, error) {
	includes, err := collect(data, includeKeys)
	if err != nil {
		return PatternPair{}, err
	}
	excludes, err := collect(data, excludeKeys)
	if err != nil {
		return PatternPair{}, err
	}
	return Compile(includes, excludes)
}

// FromString builds a PatternPair with a single include pattern. An
// empty string yields the match-everything pair.
func FromString(include string) (PatternPair, error) {
	if include == "" {
		return PatternPair{}, nil
	}
	return Compile([]string{include}, nil)
}

func collect(data map[string]any, keys []string) ([]string, error) {
	var patterns []string
	for _, key := range keys {
		value, ok := data[key]
		if !ok || value == nil {
			continue
		}
		switch typed := value.(type) {
		case string:
			if typed != "" {
				patterns = append(patterns, typed)
			}
		case []string:
			patterns = append(patterns, typed...)
		case []any:
			for index, item := range typed {
				text, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("%s[%d]: expected a string pattern, got %T", key, index, item)
				}
				patterns = append(patterns, text)
			}
		default:
			return nil, fmt.Errorf("%s: expected a string or list of strings, got %T", key, value)
		}
	}
	return patterns, nil
}
