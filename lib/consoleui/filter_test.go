// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"testing"

	"github.com/bureau-foundation/console/lib/channel"
)

func testChannels(names ...string) []*channel.Channel {
	channels := make([]*channel.Channel, len(names))
	for index, name := range names {
		channels[index] = &channel.Channel{ID: uint64(index + 1), Name: name, Kind: channel.KindDouble}
	}
	return channels
}

func rowNames(rows []tableRow) []string {
	names := make([]string, len(rows))
	for index, row := range rows {
		names[index] = row.channel.Name
	}
	return names
}

func TestFilterEmptyKeepsOrder(t *testing.T) {
	t.Parallel()

	filter := newFilterModel()
	rows := filter.Apply(testChannels("b.x", "a.y", "c.z"))
	got := rowNames(rows)
	want := []string{"b.x", "a.y", "c.z"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for index := range want {
		if got[index] != want[index] {
			t.Fatalf("got %v, want %v", got, want)
		}
		if rows[index].positions != nil {
			t.Errorf("row %s has highlight positions without a query", got[index])
		}
	}
}

func TestFilterFuzzyNarrows(t *testing.T) {
	t.Parallel()

	filter := newFilterModel()
	filter.Input = "a1r"
	rows := filter.Apply(testChannels("a.0.random", "a.1.random", "b.1.enum", "ui.rate"))
	got := rowNames(rows)
	if len(got) != 1 || got[0] != "a.1.random" {
		t.Fatalf("got %v, want [a.1.random]", got)
	}
	if len(rows[0].positions) != 3 {
		t.Errorf("positions = %v, want 3 matched runes", rows[0].positions)
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	t.Parallel()

	filter := newFilterModel()
	filter.Input = "RATE"
	got := rowNames(filter.Apply(testChannels("ui.rate", "a.0.random")))
	if len(got) != 1 || got[0] != "ui.rate" {
		t.Fatalf("got %v, want [ui.rate]", got)
	}
}

func TestFilterEditing(t *testing.T) {
	t.Parallel()

	filter := newFilterModel()
	filter.Active = true
	filter.HandleRune('a')
	filter.HandleRune('é')
	if filter.Input != "aé" {
		t.Fatalf("Input = %q, want %q", filter.Input, "aé")
	}
	if !filter.HandleBackspace() || filter.Input != "a" {
		t.Fatalf("after backspace Input = %q, want %q", filter.Input, "a")
	}
	filter.Clear()
	if filter.Input != "" || filter.Active {
		t.Errorf("after Clear: Input=%q Active=%v", filter.Input, filter.Active)
	}
	if filter.HandleBackspace() {
		t.Error("backspace on empty input reported a change")
	}
}
