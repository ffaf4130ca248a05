// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/console/lib/command"
	"github.com/bureau-foundation/console/lib/tui"
)

// initialCommandText pre-fills the input so the common case is a
// channel name away.
const initialCommandText = "set "

// maxHistory bounds the submitted-command history.
const maxHistory = 100

// commandInput is the single-line command editor: a textinput with
// channel-name completion and a submitted-command history.
type commandInput struct {
	input textinput.Model

	history      []string
	historyIndex int    // len(history) when not browsing.
	draft        string // Text being edited before browsing started.
}

func newCommandInput(theme tui.Theme) commandInput {
	input := textinput.New()
	input.Prompt = "> "
	input.PromptStyle = lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
	input.TextStyle = lipgloss.NewStyle().Foreground(theme.NormalText)
	input.CompletionStyle = lipgloss.NewStyle().Foreground(theme.FaintText)
	input.ShowSuggestions = true
	// Up and down browse history, and ctrl+n/ctrl+p switch tabs.
	input.KeyMap.NextSuggestion.SetEnabled(false)
	input.KeyMap.PrevSuggestion.SetEnabled(false)
	input.SetValue(initialCommandText)
	input.CursorEnd()
	input.Focus()
	return commandInput{input: input}
}

// Value returns the current text.
func (editor *commandInput) Value() string { return editor.input.Value() }

// SetValue replaces the text and moves the cursor to the end.
func (editor *commandInput) SetValue(text string, processor *command.Processor) {
	editor.input.SetValue(text)
	editor.input.CursorEnd()
	editor.refreshSuggestion(processor)
}

// Focus and Blur forward to the textinput.
func (editor *commandInput) Focus() tea.Cmd { return editor.input.Focus() }

func (editor *commandInput) Blur() { editor.input.Blur() }

// Update forwards a message to the textinput, then recomputes the
// completion for the new text against processor's channels.
func (editor *commandInput) Update(message tea.Msg, processor *command.Processor) tea.Cmd {
	var cmd tea.Cmd
	editor.input, cmd = editor.input.Update(message)
	editor.refreshSuggestion(processor)
	return cmd
}

// refreshSuggestion offers the completed command as the textinput's
// only suggestion. The suggestion keeps the typed text verbatim and
// appends the completion so it stays a prefix match.
func (editor *commandInput) refreshSuggestion(processor *command.Processor) {
	if processor == nil {
		editor.input.SetSuggestions(nil)
		return
	}
	if completion, ok := completeCommand(editor.input.Value(), processor); ok {
		editor.input.SetSuggestions([]string{completion})
		return
	}
	editor.input.SetSuggestions(nil)
}

// completeCommand extends the channel token at the end of text with
// the processor's suggestion.
func completeCommand(text string, processor *command.Processor) (string, bool) {
	full, ok := processor.Suggestion(text)
	if !ok {
		return "", false
	}
	if !strings.HasPrefix(full, text) {
		return "", false
	}
	return full, true
}

// Submit takes the current text, records it in history, and clears
// the input.
func (editor *commandInput) Submit(processor *command.Processor) string {
	text := editor.input.Value()
	if strings.TrimSpace(text) != "" {
		if count := len(editor.history); count == 0 || editor.history[count-1] != text {
			editor.history = append(editor.history, text)
		}
		if overflow := len(editor.history) - maxHistory; overflow > 0 {
			editor.history = append(editor.history[:0], editor.history[overflow:]...)
		}
	}
	editor.historyIndex = len(editor.history)
	editor.draft = ""
	editor.SetValue("", processor)
	return text
}

// HistoryPrevious steps back through submitted commands.
func (editor *commandInput) HistoryPrevious(processor *command.Processor) {
	if editor.historyIndex > len(editor.history) {
		editor.historyIndex = len(editor.history)
	}
	if editor.historyIndex == 0 {
		return
	}
	if editor.historyIndex == len(editor.history) {
		editor.draft = editor.input.Value()
	}
	editor.historyIndex--
	editor.SetValue(editor.history[editor.historyIndex], processor)
}

// HistoryNext steps forward, returning to the draft past the newest
// entry.
func (editor *commandInput) HistoryNext(processor *command.Processor) {
	if editor.historyIndex >= len(editor.history) {
		return
	}
	editor.historyIndex++
	if editor.historyIndex == len(editor.history) {
		editor.SetValue(editor.draft, processor)
		return
	}
	editor.SetValue(editor.history[editor.historyIndex], processor)
}

// View renders the input line at width columns.
func (editor *commandInput) View(width int) string {
	editor.input.Width = max(width-lipgloss.Width(editor.input.Prompt)-1, 1)
	return fitLine(editor.input.View(), width)
}
