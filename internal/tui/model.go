package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/npratt/powerdash/internal/dashboard"
	"github.com/npratt/powerdash/internal/export"
	"github.com/npratt/powerdash/internal/fetch"
	"github.com/npratt/powerdash/internal/forecast"
)

// Layout size constants.
const (
	// fixedRows is every line outside the table and chart panels:
	// container borders (2), header (1), metrics (2), table title (1),
	// chart title and radio lines (2), footer (1) and dividers (4).
	fixedRows = 13
	// minTableRows is the smallest table viewport including its header.
	minTableRows = 4
	// minColWidth is the narrowest preview column.
	minColWidth = 6
)

// model is the bubbletea model for the TUI.
type model struct {
	ctx  context.Context
	ctrl *dashboard.Controller

	// Optional collaborators
	exporter    Exporter
	autoRefresh time.Duration
	onQuit      func()

	// Widgets
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	spinning bool
	table    table.Model

	// UI state
	width     int
	height    int
	notice    string
	noticeErr bool
	exporting bool
}

// completionMsg carries a finished fetch task into the update loop.
type completionMsg struct {
	comp fetch.Completion
}

// refreshTickMsg signals that the auto-refresh interval elapsed.
type refreshTickMsg time.Time

// exportResultMsg carries the outcome of an export.
type exportResultMsg struct {
	paths []string
	err   error
}

// newModel creates a new model with the given configuration.
func newModel(
	ctx context.Context,
	ctrl *dashboard.Controller,
	exporter Exporter,
	autoRefresh time.Duration,
	onQuit func(),
) model {
	if ctx == nil {
		ctx = context.Background()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := model{
		ctx:         ctx,
		ctrl:        ctrl,
		exporter:    exporter,
		autoRefresh: autoRefresh,
		onQuit:      onQuit,
		keys:        defaultKeyMap(),
		help:        help.New(),
		spinner:     sp,
		spinning:    true,
		table: table.New(
			table.WithColumns(previewColumns(0)),
			table.WithFocused(true),
			table.WithHeight(minTableRows),
		),
	}
	m.syncTable()
	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(
		runTasks(m.ctrl.Init(m.ctx)),
		m.spinner.Tick,
		refreshTick(m.autoRefresh),
	)
}

// Update, handleKey and friends are implemented in update.go
// View is implemented in view.go

// runTask runs one fetch task as a command.
func runTask(task fetch.Task) tea.Cmd {
	if task == nil {
		return nil
	}
	return func() tea.Msg {
		return completionMsg{comp: task()}
	}
}

// runTasks runs fetch tasks concurrently.
func runTasks(tasks []fetch.Task) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(tasks))
	for _, task := range tasks {
		cmds = append(cmds, runTask(task))
	}
	return tea.Batch(cmds...)
}

// refreshTick waits for the auto-refresh interval. It returns nil when
// auto-refresh is off.
func refreshTick(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// exportCmd writes the current panels in the background.
func exportCmd(e Exporter, in export.Inputs) tea.Cmd {
	return func() tea.Msg {
		paths, err := e.Write(in)
		return exportResultMsg{paths: paths, err: err}
	}
}

// busy reports whether any resource is still loading.
func (m model) busy() bool {
	for _, r := range dashboard.Resources {
		if m.ctrl.Status(r).Status == fetch.Loading.String() {
			return true
		}
	}
	return false
}

// syncTable copies the controller's preview rows into the table widget.
func (m *model) syncTable() {
	ts := m.ctrl.Table()
	rows := make([]table.Row, len(ts.Rows))
	for i, r := range ts.Rows {
		rows[i] = table.Row(r.Cells())
	}
	m.table.SetRows(rows)
}

// updateSizes recalculates widget dimensions for the terminal size.
func (m *model) updateSizes() {
	inner := safeWidth(m.width - 4)
	m.table.SetColumns(previewColumns(inner))
	m.table.SetWidth(inner)
	m.table.SetHeight(m.tableHeight())
	m.help.Width = inner
}

// tableHeight gives the table a third of the space left by the fixed rows.
func (m model) tableHeight() int {
	free := m.height - fixedRows
	return max(minTableRows, free/3)
}

// chartHeight gives the charts whatever the table leaves.
func (m model) chartHeight() int {
	free := m.height - fixedRows - m.tableHeight()
	return max(minPlotHeight, free)
}

// previewColumns splits width evenly across the preview fields.
func previewColumns(width int) []table.Column {
	n := len(forecast.PreviewHeaders)
	// Each cell carries one column of padding on either side.
	w := max(minColWidth, width/n-2)
	cols := make([]table.Column, n)
	for i, h := range forecast.PreviewHeaders {
		cols[i] = table.Column{Title: h, Width: w}
	}
	return cols
}
