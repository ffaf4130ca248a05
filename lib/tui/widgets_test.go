// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestScrollbarFitsContent(t *testing.T) {
	t.Parallel()
	bar := RenderScrollbar(DefaultTheme, 4, 3, 10, 0, true)
	if strings.Count(bar, "┃") != 4 {
		t.Errorf("content that fits should fill the track with thumb:\n%s", bar)
	}
}

func TestScrollbarThumbMoves(t *testing.T) {
	t.Parallel()
	top := strings.Split(RenderScrollbar(DefaultTheme, 10, 100, 10, 0, false), "\n")
	bottom := strings.Split(RenderScrollbar(DefaultTheme, 10, 100, 10, 90, false), "\n")
	if top[0] != "┃" || top[9] != "│" {
		t.Errorf("thumb should be at the top: %v", top)
	}
	if bottom[0] != "│" || bottom[9] != "┃" {
		t.Errorf("thumb should be at the bottom: %v", bottom)
	}
}

func TestDropdownNavigationWraps(t *testing.T) {
	t.Parallel()
	dropdown := DropdownOverlay{Options: []DropdownOption{{Label: "one"}, {Label: "two"}, {Label: "three"}}}
	dropdown.MoveUp()
	if dropdown.Selected().Label != "three" {
		t.Errorf("MoveUp from the top should wrap, got %q", dropdown.Selected().Label)
	}
	dropdown.MoveDown()
	if dropdown.Selected().Label != "one" {
		t.Errorf("MoveDown from the bottom should wrap, got %q", dropdown.Selected().Label)
	}
}

func TestDropdownRenderUniformWidth(t *testing.T) {
	t.Parallel()
	dropdown := DropdownOverlay{
		Title:   "a.0.enum",
		Options: []DropdownOption{{Label: "one"}, {Label: "seven"}},
		Cursor:  1,
	}
	lines := dropdown.Render(DefaultTheme)
	if len(lines) != dropdown.Height() {
		t.Fatalf("rendered %d lines, want %d", len(lines), dropdown.Height())
	}
	for index, line := range lines {
		if got := ansi.StringWidth(line); got != dropdown.Width() {
			t.Errorf("line %d width = %d, want %d", index, got, dropdown.Width())
		}
	}
	if !strings.Contains(lines[2], "> seven") {
		t.Errorf("cursor row should carry the marker: %q", lines[2])
	}
}

func TestSpliceOverlay(t *testing.T) {
	t.Parallel()
	view := "aaaaaa\nbbbbbb\ncccccc"
	got := SpliceOverlay(view, []string{"XX"}, 2, 1)
	lines := strings.Split(got, "\n")
	if ansi.Strip(lines[1]) != "bbXXbb" {
		t.Errorf("spliced line = %q, want bbXXbb", ansi.Strip(lines[1]))
	}
	if lines[0] != "aaaaaa" || lines[2] != "cccccc" {
		t.Error("lines outside the overlay changed")
	}
}

func TestFlashTrackerDecays(t *testing.T) {
	t.Parallel()
	start := time.Unix(1735689600, 0)
	tracker := NewFlashTracker()
	tracker.Ignite("lights.on", FlashFailure, start)

	if got := tracker.Intensity("lights.on", start); got != 1 {
		t.Errorf("Intensity at ignition = %v, want 1", got)
	}
	if got := tracker.Intensity("lights.on", start.Add(FlashDecayDuration/2)); got != 0.5 {
		t.Errorf("Intensity halfway = %v, want 0.5", got)
	}
	if tracker.Kind("lights.on") != FlashFailure {
		t.Error("Kind should be FlashFailure")
	}
	if !tracker.Prune(start.Add(time.Second)) {
		t.Error("Prune should report a live flash")
	}
	if tracker.Prune(start.Add(FlashDecayDuration)) {
		t.Error("Prune should drop a decayed flash")
	}
	if got := tracker.Intensity("never", start); got != 0 {
		t.Errorf("Intensity of unknown channel = %v", got)
	}
}
