// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/console/lib/channel"
)

// Theme defines the color palette for the console. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Channel value colors by type. Enum channels render bold in the
	// integer color.
	BoolColor    lipgloss.Color
	FloatColor   lipgloss.Color
	IntegerColor lipgloss.Color

	// Command outcomes in the log pane and row flashes.
	SuccessColor lipgloss.Color
	FailureColor lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	AccentColor      lipgloss.Color // Focused pane borders, active tab, scrollbar thumb.

	// Row flash backgrounds after a command touched a channel.
	FlashSuccessBackground lipgloss.Color
	FlashFailureBackground lipgloss.Color

	// Quick filter match highlighting.
	SearchHighlightBackground lipgloss.Color

	// Dropdown overlays.
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color

	// Plot.
	PlotLine lipgloss.Color
	PlotAxis lipgloss.Color
}

// KindColor returns the value color for a channel kind.
func (theme Theme) KindColor(kind channel.Kind) lipgloss.Color {
	switch {
	case kind.IsBoolean():
		return theme.BoolColor
	case kind.IsFloat():
		return theme.FloatColor
	case kind.IsInteger():
		return theme.IntegerColor
	default:
		return theme.NormalText
	}
}

// ValueStyle returns the style for a channel's value and type cells:
// colored by kind, bold for enum channels.
func (theme Theme) ValueStyle(described *channel.Channel) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(theme.KindColor(described.Kind))
	if described.Enum != nil {
		style = style.Bold(true)
	}
	return style
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	BoolColor:    lipgloss.Color("51"),  // cyan
	FloatColor:   lipgloss.Color("61"),  // indigo
	IntegerColor: lipgloss.Color("135"), // purple

	SuccessColor: lipgloss.Color("114"), // green
	FailureColor: lipgloss.Color("196"), // red

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	AccentColor:      lipgloss.Color("220"), // amber

	FlashSuccessBackground: lipgloss.Color("22"),
	FlashFailureBackground: lipgloss.Color("52"),

	SearchHighlightBackground: lipgloss.Color("58"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),

	PlotLine: lipgloss.Color("75"),
	PlotAxis: lipgloss.Color("245"),
}
