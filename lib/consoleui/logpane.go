// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/console/lib/tui"
)

// MaxLogLines bounds the log pane's history. The oldest lines are
// dropped first.
const MaxLogLines = 1000

type logEntry struct {
	line  string
	level slog.Level
}

// LogPane is the scrollable log history under the channel table. It
// follows new output while scrolled to the bottom and stays put while
// the operator is reading older lines.
type LogPane struct {
	entries  []logEntry
	viewport viewport.Model
	theme    tui.Theme
}

// NewLogPane creates an empty log pane.
func NewLogPane(theme tui.Theme) *LogPane {
	return &LogPane{
		viewport: viewport.New(0, 0),
		theme:    theme,
	}
}

// Append adds a record, evicting the oldest lines beyond MaxLogLines.
// Multi-line records (usage text) occupy one row per line.
func (pane *LogPane) Append(line string, level slog.Level) {
	following := pane.viewport.AtBottom()
	for _, part := range strings.Split(line, "\n") {
		pane.entries = append(pane.entries, logEntry{line: part, level: level})
	}
	if overflow := len(pane.entries) - MaxLogLines; overflow > 0 {
		pane.entries = append(pane.entries[:0], pane.entries[overflow:]...)
	}
	pane.refresh()
	if following {
		pane.viewport.GotoBottom()
	}
}

// Len returns the number of retained lines.
func (pane *LogPane) Len() int { return len(pane.entries) }

// Lines returns the retained lines, oldest first, without styling.
func (pane *LogPane) Lines() []string {
	lines := make([]string, len(pane.entries))
	for index, entry := range pane.entries {
		lines[index] = entry.line
	}
	return lines
}

// SetSize resizes the pane and keeps the bottom in view.
func (pane *LogPane) SetSize(width, height int) {
	pane.viewport.Width = width
	pane.viewport.Height = max(height, 1)
	pane.refresh()
	pane.viewport.GotoBottom()
}

// Scroll moves the view by delta lines; negative scrolls up.
func (pane *LogPane) Scroll(delta int) {
	pane.viewport.SetYOffset(pane.viewport.YOffset + delta)
}

// Height returns the visible line count.
func (pane *LogPane) Height() int { return pane.viewport.Height }

func (pane *LogPane) refresh() {
	normal := lipgloss.NewStyle().Foreground(pane.theme.NormalText)
	warning := lipgloss.NewStyle().Foreground(pane.theme.AccentColor)
	failure := lipgloss.NewStyle().Foreground(pane.theme.FailureColor)
	faint := lipgloss.NewStyle().Foreground(pane.theme.FaintText)

	width := pane.viewport.Width
	lines := make([]string, len(pane.entries))
	for index, entry := range pane.entries {
		text := entry.line
		if width > 0 {
			text = ansi.Truncate(text, width, "…")
		}
		style := normal
		switch {
		case entry.level >= slog.LevelError:
			style = failure
		case entry.level >= slog.LevelWarn:
			style = warning
		case entry.level < slog.LevelInfo:
			style = faint
		}
		lines[index] = style.Render(text)
	}
	pane.viewport.SetContent(strings.Join(lines, "\n"))
}

// View renders the visible window of the log.
func (pane *LogPane) View() string {
	return pane.viewport.View()
}
