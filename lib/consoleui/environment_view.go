// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"github.com/bureau-foundation/console/lib/channel"
	"github.com/bureau-foundation/console/lib/command"
	"github.com/bureau-foundation/console/lib/pattern"
)

// Environment is one tab of the console: a channel provider, the
// pattern filter choosing which of its channels are listed, and the
// processor commands typed on that tab run through.
type Environment struct {
	Name     string
	Provider channel.Provider
	Filter   pattern.PatternPair
}

// environmentView is the per-tab table state.
type environmentView struct {
	name      string
	provider  channel.Provider
	processor *command.Processor
	filter    pattern.PatternPair

	// listed is the number of channels passing the pattern filter,
	// before the quick filter narrows them.
	listed int

	rows      []tableRow
	snapshots map[string]cellSnapshot

	cursor       int
	scrollOffset int
	selectedName string // Stable focus: the cursor follows the name across rebuilds.
}

func newEnvironmentView(environment Environment, processor *command.Processor) *environmentView {
	return &environmentView{
		name:      environment.Name,
		provider:  environment.Provider,
		processor: processor,
		filter:    environment.Filter,
		snapshots: make(map[string]cellSnapshot),
	}
}

// channels returns the channels passing the pattern filter, in the
// provider's order.
func (view *environmentView) channels() []*channel.Channel {
	names := view.filter.Filter(view.provider.Names())
	channels := make([]*channel.Channel, 0, len(names))
	for _, name := range names {
		if described, ok := view.provider.Lookup(name); ok {
			channels = append(channels, described)
		}
	}
	return channels
}

// rebuild recomputes the rows through both filters and restores the
// cursor onto the previously selected name when it is still listed.
func (view *environmentView) rebuild(filter *FilterModel) {
	channels := view.channels()
	view.listed = len(channels)
	view.rows = filter.Apply(channels)

	view.cursor = min(view.cursor, max(len(view.rows)-1, 0))
	if view.selectedName != "" {
		for index, row := range view.rows {
			if row.channel.Name == view.selectedName {
				view.cursor = index
				break
			}
		}
	}
	view.syncSelection()
}

// snapshot captures the displayed value and age of every row.
func (view *environmentView) snapshot() {
	for _, row := range view.rows {
		name := row.channel.Name
		value, err := view.provider.Value(name)
		if err != nil {
			continue
		}
		age, err := view.provider.Age(name)
		if err != nil {
			age = 0
		}
		view.snapshots[name] = cellSnapshot{
			value: formatValue(row.channel, value),
			age:   formatAge(age),
		}
	}
}

// selected returns the channel under the cursor.
func (view *environmentView) selected() (*channel.Channel, bool) {
	if view.cursor < 0 || view.cursor >= len(view.rows) {
		return nil, false
	}
	return view.rows[view.cursor].channel, true
}

func (view *environmentView) syncSelection() {
	if described, ok := view.selected(); ok {
		view.selectedName = described.Name
	}
}

// moveCursor moves by delta rows, clamped to the table.
func (view *environmentView) moveCursor(delta int) {
	if len(view.rows) == 0 {
		view.cursor = 0
		return
	}
	view.cursor = min(max(view.cursor+delta, 0), len(view.rows)-1)
	view.syncSelection()
}

// ensureVisible adjusts the scroll offset so the cursor is within the
// visible rows.
func (view *environmentView) ensureVisible(visible int) {
	if visible <= 0 {
		return
	}
	if view.cursor < view.scrollOffset {
		view.scrollOffset = view.cursor
	}
	if view.cursor >= view.scrollOffset+visible {
		view.scrollOffset = view.cursor - visible + 1
	}
	maxOffset := max(len(view.rows)-visible, 0)
	view.scrollOffset = min(max(view.scrollOffset, 0), maxOffset)
}
