// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import "strings"

// Suggest returns the longest continuation of prefix that every name
// starting with prefix shares. ok is false when no name starts with
// prefix. An empty suffix with ok true means the prefix is already as
// complete as the namespace allows: either it names a channel exactly
// or the matching names diverge immediately.
//
//	Suggest([]string{"a.0.random"}, "a.0.ran")            // "dom", true
//	Suggest([]string{"a.0.random", "a.0.range"}, "a.0.ra") // "n", true
//	Suggest([]string{"a.0.random"}, "b")                  // "", false
func Suggest(names []string, prefix string) (string, bool) {
	var common string
	matched := false

	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := name[len(prefix):]
		if !matched {
			common = rest
			matched = true
			continue
		}
		common = commonPrefix(common, rest)
	}

	return common, matched
}

// SuggestFull returns prefix extended by [Suggest]'s continuation.
func SuggestFull(names []string, prefix string) (string, bool) {
	suffix, ok := Suggest(names, prefix)
	if !ok {
		return "", false
	}
	return prefix + suffix, true
}

// commonPrefix returns the longest shared prefix of two strings,
// never splitting a multi-byte rune.
func commonPrefix(left, right string) string {
	limit := min(len(left), len(right))
	index := 0
	for index < limit && left[index] == right[index] {
		index++
	}
	for index > 0 && index < len(left) && !utf8Start(left[index]) {
		index--
	}
	return left[:index]
}

func utf8Start(b byte) bool { return b&0xC0 != 0x80 }
