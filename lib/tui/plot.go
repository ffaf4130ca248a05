// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	plotPoint    = '•'
	plotRiser    = '│'
	plotAxis     = "┤"
	plotAxisRule = "│"
)

// RenderPlot draws a line chart of (xs[i], ys[i]) into exactly height
// lines of exactly width columns. The left gutter carries the y range
// labels and the last line is the x axis with the first and last x
// values in seconds. xs must be ascending. Slices of different length
// are truncated to the shorter.
func RenderPlot(theme Theme, xs, ys []float64, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	count := min(len(xs), len(ys))

	axisStyle := lipgloss.NewStyle().Foreground(theme.PlotAxis)
	lineStyle := lipgloss.NewStyle().Foreground(theme.PlotLine)

	if count == 0 || height < 3 {
		message := ""
		if count == 0 {
			message = "no samples"
		}
		lines := make([]string, height)
		lines[0] = fitWidth(axisStyle.Render(message), width)
		for index := 1; index < height; index++ {
			lines[index] = strings.Repeat(" ", width)
		}
		return strings.Join(lines, "\n")
	}

	yMin, yMax := ys[0], ys[0]
	for _, value := range ys[:count] {
		yMin = math.Min(yMin, value)
		yMax = math.Max(yMax, value)
	}
	if yMin == yMax {
		yMin -= 0.5
		yMax += 0.5
	}
	xMin, xMax := xs[0], xs[count-1]
	xSpan := xMax - xMin
	if xSpan <= 0 {
		xSpan = 1
	}

	topLabel := formatAxisValue(yMax)
	bottomLabel := formatAxisValue(yMin)
	gutter := max(len(topLabel), len(bottomLabel))

	plotHeight := height - 1
	plotWidth := width - gutter - 1
	if plotWidth < 1 {
		return strings.Repeat(strings.Repeat(" ", width)+"\n", height-1) + strings.Repeat(" ", width)
	}

	grid := make([][]rune, plotHeight)
	for row := range grid {
		grid[row] = []rune(strings.Repeat(" ", plotWidth))
	}

	previousColumn, previousRow := -1, -1
	for index := range count {
		column := scale(xs[index]-xMin, xSpan, plotWidth)
		row := plotHeight - 1 - scale(ys[index]-yMin, yMax-yMin, plotHeight)

		if previousColumn >= 0 && column != previousColumn && row != previousRow {
			step := 1
			if row < previousRow {
				step = -1
			}
			for fill := previousRow + step; fill != row; fill += step {
				grid[fill][column] = plotRiser
			}
		}
		grid[row][column] = plotPoint
		previousColumn, previousRow = column, row
	}

	lines := make([]string, 0, height)
	for row := range grid {
		label := ""
		axis := plotAxisRule
		switch row {
		case 0:
			label, axis = topLabel, plotAxis
		case plotHeight - 1:
			label, axis = bottomLabel, plotAxis
		}
		lines = append(lines,
			axisStyle.Render(fmt.Sprintf("%*s%s", gutter, label, axis))+
				lineStyle.Render(string(grid[row])))
	}

	left := fmt.Sprintf("%.1fs", xMin)
	right := fmt.Sprintf("%.1fs", xMax)
	rule := plotWidth - len(left) - len(right)
	var xAxis string
	if rule >= 1 {
		xAxis = left + strings.Repeat("─", rule) + right
	} else {
		xAxis = strings.Repeat("─", plotWidth)
	}
	lines = append(lines, axisStyle.Render(strings.Repeat(" ", gutter)+"└"+xAxis))

	return strings.Join(lines, "\n")
}

// scale maps offset in [0, span] onto [0, cells-1], rounding.
func scale(offset, span float64, cells int) int {
	if cells <= 1 || span <= 0 {
		return 0
	}
	position := int(math.Round(offset / span * float64(cells-1)))
	return min(max(position, 0), cells-1)
}

func formatAxisValue(value float64) string {
	return fmt.Sprintf("%.4g", value)
}

// fitWidth truncates or pads a styled string to exactly width columns.
func fitWidth(styled string, width int) string {
	visible := ansi.StringWidth(styled)
	if visible > width {
		return ansi.Truncate(styled, width, "")
	}
	return styled + strings.Repeat(" ", width-visible)
}
