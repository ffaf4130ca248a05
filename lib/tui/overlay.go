// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay content, placed with its top-left corner at (anchorX,
// anchorY). Truncation is ANSI-aware, so styling in the underlying
// view survives on both sides of the overlay.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		viewLineIndex := anchorY + index
		if viewLineIndex < 0 || viewLineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[viewLineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		// Build: prefix + reset + overlay + reset + suffix.
		var result strings.Builder

		// Prefix: everything before the overlay anchor.
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			result.WriteString(prefix)
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		// Suffix: everything after the overlay region.
		suffixStart := anchorX + overlayWidth
		if suffixStart < viewLineWidth {
			suffix := ansi.TruncateLeft(viewLine, suffixStart, "")
			result.WriteString(suffix)
		}

		viewLines[viewLineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// PadOverlayLine pads styled content to an overlay line of
// innerWidth+2 columns: one leading space, the content, and trailing
// background-colored spaces.
func PadOverlayLine(styledContent string, innerWidth int, backgroundStyle lipgloss.Style) string {
	contentWidth := ansi.StringWidth(styledContent)
	rightPad := innerWidth - contentWidth
	if rightPad < 0 {
		rightPad = 0
	}
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad+1))
}
