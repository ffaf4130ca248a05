// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text shown in the dropdown.
	Value string // Value submitted on selection.
}

// DropdownOverlay renders a floating menu anchored at a screen
// position. The owning model routes keys to it while it is open
// (up/down to navigate, enter to select, escape to dismiss).
type DropdownOverlay struct {
	Title   string
	Options []DropdownOption
	Cursor  int
	AnchorX int // Screen X coordinate of the top-left corner.
	AnchorY int // Screen Y coordinate of the top-left corner.

	// Channel is the channel the selection will be applied to.
	Channel string
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.Options) {
		dropdown.Cursor = 0
	}
}

// Selected returns the currently highlighted option.
func (dropdown *DropdownOverlay) Selected() DropdownOption {
	return dropdown.Options[dropdown.Cursor]
}

// Width returns the visible width of the rendered dropdown in columns.
func (dropdown *DropdownOverlay) Width() int {
	return dropdown.innerWidth() + 2
}

// Height returns the number of rendered lines.
func (dropdown *DropdownOverlay) Height() int {
	if dropdown.Title == "" {
		return len(dropdown.Options)
	}
	return len(dropdown.Options) + 1
}

// innerWidth is the widest of the title and the "> label" rows.
func (dropdown *DropdownOverlay) innerWidth() int {
	width := ansi.StringWidth(dropdown.Title)
	for _, option := range dropdown.Options {
		width = max(width, 2+ansi.StringWidth(option.Label))
	}
	return width
}

// Render produces the dropdown lines for [SpliceOverlay]. Every line
// has the same visible width and a solid background; the highlighted
// option uses the selection colors.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	innerWidth := dropdown.innerWidth()

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.OverlayForeground)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	lines := make([]string, 0, dropdown.Height())
	if dropdown.Title != "" {
		title := backgroundStyle.Bold(true).Foreground(theme.HeaderForeground).Render(dropdown.Title)
		lines = append(lines, PadOverlayLine(title, innerWidth, backgroundStyle))
	}
	for index, option := range dropdown.Options {
		if index == dropdown.Cursor {
			lines = append(lines, PadOverlayLine(selectedStyle.Render("> "+option.Label), innerWidth, selectedStyle))
			continue
		}
		lines = append(lines, PadOverlayLine(backgroundStyle.Render("  "+option.Label), innerWidth, backgroundStyle))
	}
	return lines
}
