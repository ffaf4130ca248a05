// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/console/lib/channel"
	"github.com/bureau-foundation/console/lib/tui"
)

// Column labels, in display order.
const (
	idColumnLabel    = "id"
	typeColumnLabel  = "type"
	nameColumnLabel  = "name"
	valueColumnLabel = "value"
	ageColumnLabel   = "age"
)

// tableRow is one visible channel. positions holds the quick-filter
// match positions in the name, for highlighting.
type tableRow struct {
	channel   *channel.Channel
	positions []int
}

// cellSnapshot is the value and age text captured at the last refresh.
// Rendering reads snapshots so a paused table stays frozen.
type cellSnapshot struct {
	value string
	age   string
}

// formatValue renders a value for the table: booleans as true/false,
// floats fixed to six decimals, integers right-aligned, enum channels
// followed by the item name.
func formatValue(described *channel.Channel, value channel.Value) string {
	switch {
	case described.Kind.IsBoolean():
		if value.Bool() {
			return "true"
		}
		return "false"

	case described.Kind.IsFloat():
		return fmt.Sprintf("% 15.6f", value.Float())

	default:
		text := value.String()
		if !strings.HasPrefix(text, "-") {
			text = " " + text
		}
		text = fmt.Sprintf("%8s", text)
		if described.Enum != nil {
			if name, ok := described.Enum.ItemName(value.Int()); ok {
				text += " " + name
			}
		}
		return text
	}
}

// formatAge renders the time since a channel's last update compactly:
// "0.4s", "12s", "3m05s", "2h10m".
func formatAge(age time.Duration) string {
	if age < 0 {
		age = 0
	}
	switch {
	case age < 10*time.Second:
		return strconv.FormatFloat(age.Seconds(), 'f', 1, 64) + "s"
	case age < time.Minute:
		return fmt.Sprintf("%ds", int(age.Seconds()))
	case age < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(age.Minutes()), int(age.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(age.Hours()), int(age.Minutes())%60)
	}
}

// columnWidths holds the width of each column, at least its label.
type columnWidths struct {
	id, kind, name, value, age int
}

func computeWidths(rows []tableRow, snapshots map[string]cellSnapshot) columnWidths {
	widths := columnWidths{
		id:    len(idColumnLabel),
		kind:  len(typeColumnLabel),
		name:  len(nameColumnLabel),
		value: len(valueColumnLabel),
		age:   len(ageColumnLabel),
	}
	for _, row := range rows {
		widths.id = max(widths.id, len(strconv.FormatUint(row.channel.ID, 10)))
		widths.kind = max(widths.kind, ansi.StringWidth(row.channel.TypeName()))
		widths.name = max(widths.name, ansi.StringWidth(row.channel.Name))
		snapshot := snapshots[row.channel.Name]
		widths.value = max(widths.value, ansi.StringWidth(snapshot.value))
		widths.age = max(widths.age, ansi.StringWidth(snapshot.age))
	}
	return widths
}

// tableRender carries everything needed to draw the table pane.
type tableRender struct {
	theme        tui.Theme
	environment  string
	rows         []tableRow
	snapshots    map[string]cellSnapshot
	cursor       int
	scrollOffset int
	width        int
	height       int // Including the header line.
	focused      bool
	flashes      *tui.FlashTracker
	plotted      string
	now          time.Time
}

// pad left-aligns text in width columns.
func pad(text string, width int) string {
	return text + strings.Repeat(" ", max(width-ansi.StringWidth(text), 0))
}

// render draws the header line and the visible rows, one scrollbar
// column on the right. Every line is exactly width columns.
func (table tableRender) render() string {
	if table.width < 2 || table.height < 1 {
		return ""
	}
	widths := computeWidths(table.rows, table.snapshots)
	contentWidth := table.width - 1

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(table.theme.HeaderForeground)
	header := strings.Join([]string{
		pad(idColumnLabel, widths.id),
		pad(typeColumnLabel, widths.kind),
		pad(nameColumnLabel, widths.name),
		pad(valueColumnLabel, widths.value),
		ageColumnLabel,
	}, "  ")
	lines := []string{fitLine(headerStyle.Render(header), table.width)}

	visible := table.height - 1
	for index := table.scrollOffset; index < len(table.rows) && index < table.scrollOffset+visible; index++ {
		lines = append(lines, table.renderRow(index, widths, contentWidth))
	}
	for len(lines) < table.height {
		lines = append(lines, strings.Repeat(" ", contentWidth))
	}

	scrollbar := strings.Split(tui.RenderScrollbar(table.theme, visible, len(table.rows), visible, table.scrollOffset, table.focused), "\n")
	for index := 1; index < len(lines); index++ {
		bar := " "
		if index-1 < len(scrollbar) {
			bar = scrollbar[index-1]
		}
		lines[index] = fitLine(lines[index], contentWidth) + bar
	}
	return strings.Join(lines, "\n")
}

func (table tableRender) renderRow(index int, widths columnWidths, contentWidth int) string {
	row := table.rows[index]
	described := row.channel
	snapshot := table.snapshots[described.Name]

	base := lipgloss.NewStyle().Foreground(table.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(table.theme.FaintText)
	valueStyle := table.theme.ValueStyle(described)
	highlight := lipgloss.NewStyle().
		Foreground(table.theme.HeaderForeground).
		Background(table.theme.SearchHighlightBackground)

	selected := index == table.cursor && table.focused
	var background lipgloss.Color
	switch {
	case selected:
		background = table.theme.SelectedBackground
	case table.flashes != nil && table.flashes.Intensity(flashKey(table.environment, described.Name), table.now) > 0:
		background = table.theme.FlashSuccessBackground
		if table.flashes.Kind(flashKey(table.environment, described.Name)) == tui.FlashFailure {
			background = table.theme.FlashFailureBackground
		}
	}
	if background != "" {
		base = base.Background(background)
		faint = faint.Background(background)
		valueStyle = valueStyle.Background(background)
	}

	marker := " "
	if described.Name == table.plotted {
		marker = "▸"
	}

	nameText := tui.HighlightMatches(described.Name, row.positions, base.Render, highlight.Render)
	nameText += base.Render(strings.Repeat(" ", max(widths.name-ansi.StringWidth(described.Name), 0)))

	separator := base.Render("  ")
	line := faint.Render(pad(strconv.FormatUint(described.ID, 10), widths.id)) + separator +
		valueStyle.Render(pad(described.TypeName(), widths.kind)) + separator +
		nameText + separator +
		valueStyle.Render(pad(snapshot.value, widths.value)) + separator +
		faint.Render(pad(snapshot.age, widths.age))
	line = base.Render(marker) + line

	lineWidth := ansi.StringWidth(line)
	if lineWidth < contentWidth {
		line += base.Render(strings.Repeat(" ", contentWidth-lineWidth))
	}
	return line
}

// fitLine truncates or pads a rendered line to exactly width columns.
func fitLine(line string, width int) string {
	lineWidth := ansi.StringWidth(line)
	if lineWidth > width {
		return ansi.Truncate(line, width, "")
	}
	return line + strings.Repeat(" ", width-lineWidth)
}
