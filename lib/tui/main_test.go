// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	// Render without escape codes so assertions can compare text.
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}
