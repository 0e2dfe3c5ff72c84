package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/powerdash/internal/dashboard"
	"github.com/npratt/powerdash/internal/export"
	"github.com/npratt/powerdash/internal/fetch"
	"github.com/npratt/powerdash/internal/forecast"
	"github.com/npratt/powerdash/internal/selection"
)

// Update implements tea.Model. It handles all message types and updates the model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case completionMsg:
		if m.ctrl.Apply(msg.comp) && msg.comp.ResourceName() == dashboard.ResourcePreview {
			m.syncTable()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case refreshTickMsg:
		slog.Debug("auto refresh")
		cmd := m.issue(m.ctrl.Refresh(m.ctx)...)
		return m, tea.Batch(cmd, refreshTick(m.autoRefresh))

	case exportResultMsg:
		m.exporting = false
		switch {
		case msg.err != nil:
			slog.Error("export failed", "error", msg.err, "written", len(msg.paths))
			m.setNotice(fmt.Sprintf("export failed: %v", msg.err), true)
		case len(msg.paths) == 0:
			m.setNotice("nothing to export", false)
		default:
			m.setNotice("exported "+strings.Join(msg.paths, ", "), false)
		}
		return m, nil

	default:
		return m, nil
	}
}

// handleKey processes keyboard input and returns the updated model and command.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.onQuit != nil {
			m.onQuit()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.LineChart):
		m.logIfErr("set chart type", m.ctrl.SetChartType(selection.ChartLine))
		return m, nil

	case key.Matches(msg, m.keys.SeasonalChart):
		m.logIfErr("set chart type", m.ctrl.SetChartType(selection.ChartSeasonal))
		return m, nil

	case key.Matches(msg, m.keys.ARIMA):
		m.logIfErr("set forecast model", m.ctrl.SetForecastModel(forecast.ModelARIMA))
		return m, nil

	case key.Matches(msg, m.keys.SARIMA):
		m.logIfErr("set forecast model", m.ctrl.SetForecastModel(forecast.ModelSARIMA))
		return m, nil

	case key.Matches(msg, m.keys.NextSeries):
		m.ctrl.CycleActiveSeries(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevSeries):
		m.ctrl.CycleActiveSeries(-1)
		return m, nil

	case key.Matches(msg, m.keys.NextComponent):
		m.ctrl.CycleComponent(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevComponent):
		m.ctrl.CycleComponent(-1)
		return m, nil

	case key.Matches(msg, m.keys.MoreRows):
		cmd := m.issue(m.ctrl.NextRowLimit(m.ctx))
		return m, cmd

	case key.Matches(msg, m.keys.FewerRows):
		cmd := m.issue(m.ctrl.PrevRowLimit(m.ctx))
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.issue(m.ctrl.Refresh(m.ctx)...)
		return m, cmd

	case key.Matches(msg, m.keys.Export):
		return m.startExport()

	default:
		// Remaining keys scroll the preview table.
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

// issue runs newly issued tasks and restarts the spinner if it stopped.
func (m *model) issue(tasks ...fetch.Task) tea.Cmd {
	var cmds []tea.Cmd
	for _, task := range tasks {
		if task != nil {
			cmds = append(cmds, runTask(task))
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// startExport snapshots the displayed panels and writes them in the background.
func (m model) startExport() (tea.Model, tea.Cmd) {
	if m.exporter == nil {
		m.setNotice("export is not configured", true)
		return m, nil
	}
	if m.exporting {
		return m, nil
	}
	m.exporting = true
	m.setNotice("exporting...", false)
	in := export.Inputs{
		Consumption: m.ctrl.View(),
		Forecast:    m.ctrl.ForecastView(),
		Rows:        m.ctrl.Table().Rows,
	}
	return m, exportCmd(m.exporter, in)
}

func (m *model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m model) logIfErr(action string, err error) {
	if err != nil {
		slog.Warn(action+" failed", "error", err)
	}
}
