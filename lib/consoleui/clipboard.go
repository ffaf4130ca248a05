// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// noticeFadeMsg clears the status notice after noticeFadeDelay.
type noticeFadeMsg struct {
	generation int
}

// noticeFadeDelay is how long a status notice ("copied a.0.random")
// stays visible.
const noticeFadeDelay = 2 * time.Second

// scheduleNoticeFade returns a command that clears the notice set at
// generation, unless a newer notice replaced it.
func scheduleNoticeFade(generation int) tea.Cmd {
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{generation: generation}
	})
}

// copyToClipboard writes text to the system clipboard via the OSC 52
// terminal escape sequence, written directly to /dev/tty so it
// bypasses bubbletea's renderer. OSC 52 has no visible effect.
//
// BEL terminates the sequence: it survives SSH and tmux intact where
// the two-byte ST can be mangled. Under tmux the sequence is sent both
// wrapped in DCS passthrough and bare, covering allow-passthrough and
// set-clipboard configurations.
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			return nil
		}
		defer tty.Close()

		osc52 := fmt.Sprintf("\x1b]52;c;%s\x07", base64.StdEncoding.EncodeToString([]byte(text)))

		inTmux := os.Getenv("TMUX") != "" ||
			strings.HasPrefix(os.Getenv("TERM"), "tmux") ||
			strings.HasPrefix(os.Getenv("TERM"), "screen")
		if inTmux {
			fmt.Fprintf(tty, "\x1bPtmux;\x1b%s\x1b\\", osc52)
		}
		tty.WriteString(osc52)
		return nil
	}
}
