// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/console/lib/channel"
	"github.com/bureau-foundation/console/lib/tui"
)

// FilterModel is the quick filter: fzf-style fuzzy matching against
// channel names. It composes with the environment's pattern filter;
// the pattern chooses the base set and the quick filter narrows and
// ranks it.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true when the filter input has keyboard focus
	// (the user pressed / to start typing).
	Active bool

	slab *util.Slab
}

// newFilterModel allocates the slab reused across matches.
func newFilterModel() FilterModel {
	return FilterModel{slab: util.MakeSlab(100*1024, 2048)}
}

// Apply turns channels into table rows. An empty query keeps
// registration order. Otherwise only matching channels remain, best
// score first, ties in registration order.
func (filter *FilterModel) Apply(channels []*channel.Channel) []tableRow {
	rows := make([]tableRow, 0, len(channels))
	if filter.Input == "" {
		for _, described := range channels {
			rows = append(rows, tableRow{channel: described})
		}
		return rows
	}

	pattern := []rune(filter.Input)
	scores := make(map[string]int, len(channels))
	for _, described := range channels {
		result := tui.FuzzyMatch(described.Name, pattern, filter.slab)
		if !result.Matched() {
			continue
		}
		scores[described.Name] = result.Score
		rows = append(rows, tableRow{channel: described, positions: result.Positions})
	}
	slices.SortStableFunc(rows, func(left, right tableRow) int {
		return cmp.Compare(scores[right.channel.Name], scores[left.channel.Name])
	})
	return rows
}

// HandleRune processes a character typed while the filter is active.
func (filter *FilterModel) HandleRune(character rune) {
	filter.Input += string(character)
}

// HandleBackspace removes the last character from the filter input.
// Returns true if the input changed.
func (filter *FilterModel) HandleBackspace() bool {
	if len(filter.Input) == 0 {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the filter input and deactivates it.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar. When active, shows the input with a
// cursor. When inactive with text, shows the filter text. When
// inactive with no text, returns empty string (hidden).
func (filter *FilterModel) View(theme tui.Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		style := lipgloss.NewStyle().Foreground(theme.NormalText)
		return fitLine(style.Render(" / "+filter.Input)+cursor, width)
	}

	dimStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	return fitLine(dimStyle.Render(" filter: "+filter.Input), width)
}
