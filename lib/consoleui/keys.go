// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the console. Bindings are
// context-sensitive: the same key may act on the table or the command
// input depending on focus.
type KeyMap struct {
	// Table navigation.
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Table actions.
	Select key.Binding // Plot the channel under the cursor.
	Toggle key.Binding // Toggle the boolean channel under the cursor.
	Edit   key.Binding // Enum picker, or prefill a set command.
	Pause  key.Binding // Toggle ui.paused.
	Copy   key.Binding // Copy the channel name to the clipboard.

	// Log pane scrolling.
	LogUp   key.Binding
	LogDown key.Binding

	// Focus switching.
	FocusInput key.Binding
	FocusTable key.Binding

	// Environment tabs.
	NextEnvironment     key.Binding
	PreviousEnvironment key.Binding

	// Quick filter.
	FilterActivate key.Binding
	FilterClear    key.Binding

	// Command input.
	Submit          key.Binding
	HistoryPrevious key.Binding
	HistoryNext     key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("PgUp", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("PgDn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "plot"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "toggle"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy name"),
	),
	LogUp: key.NewBinding(
		key.WithKeys("ctrl+u", "shift+up"),
		key.WithHelp("C-u", "log up"),
	),
	LogDown: key.NewBinding(
		key.WithKeys("ctrl+d", "shift+down"),
		key.WithHelp("C-d", "log down"),
	),
	FocusInput: key.NewBinding(
		key.WithKeys(":", "i"),
		key.WithHelp(":", "command"),
	),
	FocusTable: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "table"),
	),
	NextEnvironment: key.NewBinding(
		key.WithKeys("tab", "ctrl+n"),
		key.WithHelp("Tab", "next env"),
	),
	PreviousEnvironment: key.NewBinding(
		key.WithKeys("shift+tab", "ctrl+p"),
		key.WithHelp("S-Tab", "prev env"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "run"),
	),
	HistoryPrevious: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	HistoryNext: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
