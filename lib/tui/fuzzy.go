// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"slices"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching one text against a pattern.
// A zero Score means no match.
type FuzzyResult struct {
	Score int

	// Positions are the rune indices of matched characters in the
	// text, ascending.
	Positions []int
}

// Matched reports whether the pattern matched.
func (result FuzzyResult) Matched() bool { return result.Score > 0 }

// FuzzyMatch runs fzf's V2 algorithm over text. Matching is
// case-insensitive: both sides are lowercased. An empty pattern never
// matches; callers treat an empty filter as "show everything" before
// calling. slab may be nil; passing a reused slab avoids per-call
// allocation when matching many texts.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	lowered := make([]rune, len(pattern))
	for index, character := range pattern {
		lowered[index] = []rune(strings.ToLower(string(character)))[0]
	}

	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return FuzzyResult{}
	}

	var matched []int
	if positions != nil {
		matched = slices.Clone(*positions)
		slices.Sort(matched)
	}
	return FuzzyResult{Score: result.Score, Positions: matched}
}

// HighlightMatches renders text with the runes at positions styled by
// highlight and the rest by base. The render funcs take the shape of
// lipgloss.Style.Render.
func HighlightMatches(text string, positions []int, base, highlight func(...string) string) string {
	if len(positions) == 0 {
		return base(text)
	}

	marked := make(map[int]bool, len(positions))
	for _, position := range positions {
		marked[position] = true
	}

	var builder strings.Builder
	var run []rune
	runHighlighted := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runHighlighted {
			builder.WriteString(highlight(string(run)))
		} else {
			builder.WriteString(base(string(run)))
		}
		run = run[:0]
	}
	for index, character := range []rune(text) {
		if marked[index] != runHighlighted {
			flush()
			runHighlighted = marked[index]
		}
		run = append(run, character)
	}
	flush()
	return builder.String()
}
