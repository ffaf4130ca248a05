// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/console/lib/channel"
	"github.com/bureau-foundation/console/lib/clock"
	"github.com/bureau-foundation/console/lib/command"
	"github.com/bureau-foundation/console/lib/pattern"
	"github.com/bureau-foundation/console/lib/sampler"
	"github.com/bureau-foundation/console/lib/tui"
)

// FocusRegion identifies which part of the screen has keyboard focus.
type FocusRegion int

const (
	// FocusInput means keystrokes edit the command line.
	FocusInput FocusRegion = iota
	// FocusTable means navigation keys move the table cursor.
	FocusTable
	// FocusFilter means keystrokes go to the quick filter input.
	FocusFilter
	// FocusDropdown means the enum picker is open. All keyboard input
	// routes to it until the user selects an option or dismisses it.
	FocusDropdown
)

// Fixed chrome lines: header, plot title, log title, input, help.
const chromeLines = 5

// tickMsg drives the refresh loop. The period comes from ui.rate.
type tickMsg struct{}

// Options configures a Model.
type Options struct {
	// Environments are listed after the console's own "ui" tab.
	Environments []Environment

	// Clock stamps ticks and samples. Defaults to the real clock.
	Clock clock.Clock

	// Logger receives command records. They reach the log pane when
	// the logger's handler is a TUILogHandler attached to the program.
	Logger *slog.Logger

	// Theme defaults to tui.DefaultTheme.
	Theme *tui.Theme

	// Rate is the initial refresh rate in ticks per second.
	Rate float64

	// MaxSamples is the initial plot history length.
	MaxSamples int

	// StopAfter quits the program once this much time has passed.
	// Zero runs until the user quits.
	StopAfter time.Duration

	// AppFilter chooses which of the "ui" environment's channels are
	// listed.
	AppFilter pattern.PatternPair

	// InitialFilter pre-fills the quick filter.
	InitialFilter string
}

// Model is the bubbletea model for the channel console.
type Model struct {
	theme  tui.Theme
	keys   KeyMap
	clock  clock.Clock
	logger *slog.Logger

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	app     *appEnvironment
	views   []*environmentView
	active  int
	started time.Time

	filter      FilterModel
	focusRegion FocusRegion
	priorFocus  FocusRegion // Saved focus when entering filter mode.
	input       commandInput
	logPane     *LogPane

	// Plot state. plotted is nil until a row is selected.
	plotted            *sampler.SelectedChannel
	plottedEnvironment string

	flashes  *tui.FlashTracker
	dropdown *tui.DropdownOverlay // Non-nil when the enum picker is visible.

	// Status notice, cleared by noticeFadeMsg.
	notice           string
	noticeGeneration int

	stopAfter time.Duration
}

// NewModel builds the console over the given environments. The "ui"
// environment is created here and always occupies the first tab; the
// first caller-supplied environment is active initially.
func NewModel(options Options) (Model, error) {
	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	theme := tui.DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}
	rate := options.Rate
	if rate <= 0 {
		rate = 10
	}
	maxSamples := max(options.MaxSamples, 1)

	app, err := newAppEnvironment(clk, rate, maxSamples)
	if err != nil {
		return Model{}, err
	}

	model := Model{
		theme:     theme,
		keys:      DefaultKeyMap,
		clock:     clk,
		logger:    logger,
		app:       app,
		started:   clk.Now(),
		filter:    newFilterModel(),
		input:     newCommandInput(theme),
		logPane:   NewLogPane(theme),
		flashes:   tui.NewFlashTracker(),
		stopAfter: options.StopAfter,
	}
	model.filter.Input = options.InitialFilter

	model.views = append(model.views, newEnvironmentView(
		Environment{Name: AppEnvironmentName, Provider: app.environment, Filter: options.AppFilter},
		command.NewProcessor(app.environment, logger.With("environment", AppEnvironmentName)),
	))
	seen := map[string]bool{AppEnvironmentName: true}
	for _, environment := range options.Environments {
		if environment.Provider == nil {
			return Model{}, fmt.Errorf("environment %q has no provider", environment.Name)
		}
		if seen[environment.Name] {
			return Model{}, fmt.Errorf("duplicate environment %q", environment.Name)
		}
		seen[environment.Name] = true
		processor := command.NewProcessor(environment.Provider, logger.With("environment", environment.Name))
		model.views = append(model.views, newEnvironmentView(environment, processor))
	}
	if len(model.views) > 1 {
		model.active = 1
	}

	for _, view := range model.views {
		view.rebuild(&model.filter)
	}
	model.activeView().snapshot()
	return model, nil
}

// Init implements tea.Model. Starts the cursor blink and the refresh
// loop.
func (model Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, model.scheduleTick())
}

// scheduleTick returns a command that sends a tickMsg after the
// current ui.rate period.
func (model Model) scheduleTick() tea.Cmd {
	return tea.Tick(model.app.tickInterval(), func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update implements tea.Model. Routes keyboard events based on the
// current focus region and handles ticks, log lines, and layout
// changes.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		switch model.focusRegion {
		case FocusDropdown:
			return model.handleDropdownKeys(message)
		case FocusFilter:
			return model.handleFilterKeys(message)
		case FocusInput:
			return model.handleInputKeys(message)
		default:
			return model.handleTableKeys(message)
		}

	case tickMsg:
		return model.handleTick()

	case logLineMsg:
		model.logPane.Append(message.Line, message.Level)

	case noticeFadeMsg:
		if message.generation == model.noticeGeneration {
			model.notice = ""
		}

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.updatePaneSizes()

	default:
		if model.focusRegion == FocusInput {
			cmd := model.input.Update(message, model.activeView().processor)
			return model, cmd
		}
	}
	return model, nil
}

// handleTick advances the ui environment, refreshes the table and the
// plot unless paused, and schedules the next tick.
func (model Model) handleTick() (tea.Model, tea.Cmd) {
	now := model.clock.Now()
	model.app.recordTick(now)

	if model.stopAfter > 0 && now.Sub(model.started) >= model.stopAfter {
		model.logger.Info("stop_after elapsed, exiting", "stop_after", model.stopAfter)
		return model, tea.Quit
	}

	if !model.app.paused() {
		model.refresh()
		if model.plotted != nil {
			model.plotted.Poll(model.app.maxSamples())
		}
	}
	model.flashes.Prune(now)
	return model, model.scheduleTick()
}

// refresh rebuilds every tab's rows (the header shows their counts)
// and snapshots the active tab's values.
func (model *Model) refresh() {
	for _, view := range model.views {
		view.rebuild(&model.filter)
	}
	view := model.activeView()
	view.snapshot()
	view.ensureVisible(model.visibleRows())
}

func (model Model) activeView() *environmentView {
	return model.views[model.active]
}

func (model *Model) switchEnvironment(delta int) {
	count := len(model.views)
	model.active = ((model.active+delta)%count + count) % count
	view := model.activeView()
	view.rebuild(&model.filter)
	view.snapshot()
	view.ensureVisible(model.visibleRows())
	model.input.refreshSuggestion(view.processor)
}

// handleInputKeys processes keys while the command line has focus.
// Tab is left to the textinput, where it accepts the suggestion.
func (model Model) handleInputKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := model.activeView()
	switch {
	case key.Matches(message, model.keys.Submit):
		text := model.input.Submit(view.processor)
		model.runCommand(view, text)

	case key.Matches(message, model.keys.FocusTable):
		model.focusRegion = FocusTable
		model.input.Blur()

	case key.Matches(message, model.keys.HistoryPrevious):
		model.input.HistoryPrevious(view.processor)

	case key.Matches(message, model.keys.HistoryNext):
		model.input.HistoryNext(view.processor)

	case message.Type != tea.KeyTab && key.Matches(message, model.keys.NextEnvironment):
		model.switchEnvironment(1)

	case key.Matches(message, model.keys.PreviousEnvironment):
		model.switchEnvironment(-1)

	// ctrl+u and ctrl+d stay with the textinput for line editing.
	case message.Type == tea.KeyShiftUp:
		model.logPane.Scroll(-model.logPane.Height() / 2)

	case message.Type == tea.KeyShiftDown:
		model.logPane.Scroll(model.logPane.Height() / 2)

	default:
		cmd := model.input.Update(message, view.processor)
		return model, cmd
	}
	return model, nil
}

// handleTableKeys processes keys while the table has focus.
func (model Model) handleTableKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := model.activeView()
	visible := model.visibleRows()

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.FocusInput):
		model.focusRegion = FocusInput
		return model, model.input.Focus()

	case key.Matches(message, model.keys.FilterActivate):
		model.priorFocus = model.focusRegion
		model.focusRegion = FocusFilter
		model.filter.Active = true
		view.cursor = 0
		view.scrollOffset = 0

	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Input != "" {
			model.filter.Clear()
			model.refresh()
		}

	case key.Matches(message, model.keys.NextEnvironment):
		model.switchEnvironment(1)

	case key.Matches(message, model.keys.PreviousEnvironment):
		model.switchEnvironment(-1)

	case key.Matches(message, model.keys.Up):
		view.moveCursor(-1)
	case key.Matches(message, model.keys.Down):
		view.moveCursor(1)
	case key.Matches(message, model.keys.PageUp):
		view.moveCursor(-max(visible, 1))
	case key.Matches(message, model.keys.PageDown):
		view.moveCursor(max(visible, 1))
	case key.Matches(message, model.keys.Home):
		view.moveCursor(-len(view.rows))
	case key.Matches(message, model.keys.End):
		view.moveCursor(len(view.rows))

	case key.Matches(message, model.keys.Select):
		if described, ok := view.selected(); ok {
			model.selectChannel(view, described.Name)
		}

	case key.Matches(message, model.keys.Toggle):
		if described, ok := view.selected(); ok {
			if !described.Kind.IsBoolean() {
				return model, model.setNotice(fmt.Sprintf("%s is %s, not boolean", described.Name, described.TypeName()))
			}
			model.runCommand(view, "toggle "+described.Name)
		}

	case key.Matches(message, model.keys.Edit):
		if described, ok := view.selected(); ok {
			if described.Enum != nil {
				model.openEnumPicker(view, described)
				return model, nil
			}
			model.input.SetValue("set "+described.Name+" ", view.processor)
			model.focusRegion = FocusInput
			return model, model.input.Focus()
		}

	case key.Matches(message, model.keys.Pause):
		model.runCommand(model.views[0], "toggle "+channelPaused)

	case key.Matches(message, model.keys.Copy):
		if described, ok := view.selected(); ok {
			return model, tea.Batch(copyToClipboard(described.Name), model.setNotice("copied "+described.Name))
		}

	case key.Matches(message, model.keys.LogUp):
		model.logPane.Scroll(-model.logPane.Height() / 2)
	case key.Matches(message, model.keys.LogDown):
		model.logPane.Scroll(model.logPane.Height() / 2)
	}

	view.ensureVisible(visible)
	return model, nil
}

// handleFilterKeys routes keystrokes to the quick filter. Escape
// clears it, enter keeps the text and returns to the table.
func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		model.filter.Clear()
		model.focusRegion = model.priorFocus
		model.refresh()
		return model, nil

	case tea.KeyEnter:
		model.filter.Active = false
		model.focusRegion = FocusTable
		return model, nil

	case tea.KeyBackspace:
		if !model.filter.HandleBackspace() {
			return model, nil
		}

	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}

	default:
		return model, nil
	}

	view := model.activeView()
	view.cursor = 0
	view.scrollOffset = 0
	view.selectedName = ""
	model.refresh()
	return model, nil
}

// openEnumPicker shows the enum's items under the value column of the
// cursor row, with the current value highlighted.
func (model *Model) openEnumPicker(view *environmentView, described *channel.Channel) {
	current := int64(0)
	if value, err := view.provider.Value(described.Name); err == nil {
		current = value.Int()
	}

	dropdown := &tui.DropdownOverlay{
		Title:   described.Enum.Name,
		Channel: described.Name,
	}
	for index, name := range described.Enum.Names() {
		number, _ := described.Enum.Value(name)
		dropdown.Options = append(dropdown.Options, tui.DropdownOption{
			Label: fmt.Sprintf("%s (%d)", name, number),
			Value: name,
		})
		if number == current {
			dropdown.Cursor = index
		}
	}
	if len(dropdown.Options) == 0 {
		return
	}

	widths := computeWidths(view.rows, view.snapshots)
	dropdown.AnchorX = 1 + widths.id + 2 + widths.kind + 2 + widths.name + 2
	// Header line, table header, then the row itself.
	dropdown.AnchorY = 2 + (view.cursor - view.scrollOffset) + 1
	if model.height > 0 && dropdown.AnchorY+dropdown.Height() > model.height {
		dropdown.AnchorY = max(model.height-dropdown.Height(), 0)
	}

	model.dropdown = dropdown
	model.focusRegion = FocusDropdown
}

func (model Model) handleDropdownKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyUp:
		model.dropdown.MoveUp()
	case tea.KeyDown:
		model.dropdown.MoveDown()
	case tea.KeyEnter:
		dropdown := model.dropdown
		model.dismissDropdown()
		model.runCommand(model.activeView(), "set "+dropdown.Channel+" "+dropdown.Selected().Value)
	case tea.KeyEscape:
		model.dismissDropdown()
	default:
		switch message.String() {
		case "k":
			model.dropdown.MoveUp()
		case "j":
			model.dropdown.MoveDown()
		case "q":
			model.dismissDropdown()
		}
	}
	return model, nil
}

func (model *Model) dismissDropdown() {
	model.dropdown = nil
	model.focusRegion = FocusTable
}

// runCommand executes text through the view's processor, flashes the
// targeted row, and refreshes the table so the result shows at once.
func (model *Model) runCommand(view *environmentView, text string) command.Result {
	result := view.processor.Command(text)

	if request, err := command.Parse(text); err == nil {
		if _, exists := view.provider.Lookup(request.Channel); exists {
			kind := tui.FlashSuccess
			if !result.OK() {
				kind = tui.FlashFailure
			}
			model.flashes.Ignite(flashKey(view.name, request.Channel), kind, model.clock.Now())
		}
	} else if !errors.Is(err, command.ErrHelpRequested) {
		model.logger.Debug("command not parsed", "input", text, "error", err)
	}

	current := model.activeView()
	current.rebuild(&model.filter)
	current.snapshot()
	return result
}

// flashKey qualifies a channel name by environment so equal names on
// different tabs flash independently.
func flashKey(environment, name string) string {
	return environment + "/" + name
}

// selectChannel starts plotting name. Selecting the channel already
// plotted restarts its history.
func (model *Model) selectChannel(view *environmentView, name string) {
	if model.plotted != nil && model.plotted.Name() == name && model.plottedEnvironment == view.name {
		model.plotted.Reset()
	} else {
		model.plotted = sampler.New(name, view.provider, model.clock)
		model.plottedEnvironment = view.name
	}
	model.plotted.Poll(model.app.maxSamples())
	model.logger.Info("plotting channel", "environment", view.name, "channel", name)
}

// setNotice shows text in the help line until it fades.
func (model *Model) setNotice(text string) tea.Cmd {
	model.noticeGeneration++
	model.notice = text
	return scheduleNoticeFade(model.noticeGeneration)
}

// paneHeights splits the space between the fixed chrome lines.
type paneHeights struct {
	table, plot, log int
}

func (model Model) paneHeights() paneHeights {
	rest := max(model.height-chromeLines, 0)
	log := max(rest/4, 2)
	plot := max(rest/3, 3)
	table := rest - log - plot
	if table < 3 {
		table = min(rest, 3)
		plot = max(rest-table-log, 0)
		log = max(rest-table-plot, 0)
	}
	return paneHeights{table: table, plot: plot, log: log}
}

// visibleRows is the number of table rows below the column header.
func (model Model) visibleRows() int {
	return max(model.paneHeights().table-1, 0)
}

func (model *Model) updatePaneSizes() {
	model.logPane.SetSize(model.width, model.paneHeights().log)
	model.activeView().ensureVisible(model.visibleRows())
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	heights := model.paneHeights()
	view := model.activeView()
	now := model.clock.Now()

	var sections []string

	// The filter bar replaces the tab bar so the layout doesn't shift.
	if filterView := model.filter.View(model.theme, model.width); filterView != "" {
		sections = append(sections, filterView)
	} else {
		sections = append(sections, model.renderHeader())
	}

	if heights.table > 0 {
		plottedName := ""
		if model.plotted != nil && model.plottedEnvironment == view.name {
			plottedName = model.plotted.Name()
		}
		sections = append(sections, tableRender{
			theme:        model.theme,
			environment:  view.name,
			rows:         view.rows,
			snapshots:    view.snapshots,
			cursor:       view.cursor,
			scrollOffset: view.scrollOffset,
			width:        model.width,
			height:       heights.table,
			focused:      model.focusRegion != FocusInput,
			flashes:      model.flashes,
			plotted:      plottedName,
			now:          now,
		}.render())
	}

	sections = append(sections, model.renderRule(model.plotTitle()))
	if heights.plot > 0 {
		var xs, ys []float64
		if model.plotted != nil {
			xs, ys = model.plotted.Timestamps(), model.plotted.Values()
		}
		sections = append(sections, tui.RenderPlot(model.theme, xs, ys, model.width, heights.plot))
	}

	sections = append(sections, model.renderRule("log"))
	if heights.log > 0 {
		sections = append(sections, model.logPane.View())
	}

	sections = append(sections, model.input.View(model.width))
	sections = append(sections, model.renderHelp())

	output := strings.Join(sections, "\n")

	if model.dropdown != nil {
		output = tui.SpliceOverlay(output, model.dropdown.Render(model.theme),
			model.dropdown.AnchorX, model.dropdown.AnchorY)
	}
	return output
}

// renderHeader draws the tab bar: ─── ui 6 ─── local 93 ─────────
func (model Model) renderHeader() string {
	separatorStyle := lipgloss.NewStyle().Foreground(model.theme.BorderColor)
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	inactiveStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	countStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	sep := separatorStyle.Render("─")
	header := strings.Repeat(sep, 3)
	for _, view := range model.views {
		label := inactiveStyle.Render(view.name)
		if view == model.activeView() {
			label = activeStyle.Render(view.name)
		}
		count := fmt.Sprintf("%d", view.listed)
		if model.filter.Input != "" {
			count = fmt.Sprintf("%d/%d", len(view.rows), view.listed)
		}
		header += " " + label + " " + countStyle.Render(count) + " " + strings.Repeat(sep, 3)
	}

	if model.app.paused() {
		header += " " + lipgloss.NewStyle().Bold(true).Foreground(model.theme.AccentColor).Render("PAUSED") + " "
	}
	return fitRule(header, model.width, sep)
}

// renderRule draws a section divider with a title.
func (model Model) renderRule(title string) string {
	sep := lipgloss.NewStyle().Foreground(model.theme.BorderColor).Render("─")
	titleStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground)
	return fitRule(sep+" "+titleStyle.Render(title)+" ", model.width, sep)
}

// fitRule pads line to width with the rendered separator, or
// truncates it.
func fitRule(line string, width int, sep string) string {
	if gap := width - lipgloss.Width(line); gap > 0 {
		return line + strings.Repeat(sep, gap)
	}
	return fitLine(line, width)
}

func (model Model) plotTitle() string {
	if model.plotted == nil {
		return "plot: Enter on a row to plot it"
	}
	title := fmt.Sprintf("plot: %s/%s", model.plottedEnvironment, model.plotted.Name())
	if elapsed, value, ok := model.plotted.Latest(); ok {
		title += fmt.Sprintf("  latest %g at %.1fs  %d samples", value, elapsed, model.plotted.Len())
	}
	return title
}

// renderHelp renders the bottom help bar with key hints and the
// status notice.
func (model Model) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	var focusIndicator, hints string
	switch model.focusRegion {
	case FocusInput:
		focusIndicator = "INPUT"
		hints = "Enter run  Tab complete  ↑↓ history  C-n/C-p env  S-↑↓ log  Esc table  C-c quit"
	case FocusFilter:
		focusIndicator = "FILTER"
		hints = "type to filter  Enter keep  Esc clear"
	case FocusDropdown:
		focusIndicator = "SELECT"
		hints = "↑↓ choose  Enter set  Esc cancel"
	default:
		focusIndicator = "TABLE"
		hints = "q quit  ↑↓ navigate  Enter plot  Space toggle  e edit  p pause  y copy  / filter  Tab env  : command"
	}

	help := fmt.Sprintf(" [%s] %s", focusIndicator, hints)
	if model.notice != "" {
		notice := lipgloss.NewStyle().Foreground(model.theme.AccentColor).Render(model.notice)
		return fitLine(style.Render(help)+"  "+notice, model.width)
	}
	return fitLine(style.Render(help), model.width)
}
