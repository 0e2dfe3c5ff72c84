package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/npratt/powerdash/internal/chart"
	"github.com/npratt/powerdash/internal/dashboard"
	"github.com/npratt/powerdash/internal/fetch"
	"github.com/npratt/powerdash/internal/forecast"
	"github.com/npratt/powerdash/internal/selection"
)

const (
	minWidth  = 60
	minHeight = 20
)

// Placeholder texts.
const (
	dashboardTitle = "Electric Power Consumption Dashboard"
	loadingText    = "Loading forecast data..."
	noDataText     = "No data available for the selected model."
	noSeriesText   = "No data available."
)

// View implements tea.Model. This renders the full TUI display.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Handle too small terminal
	if m.width < minWidth || m.height < minHeight {
		return m.renderTooSmall()
	}

	if m.ctrl.Loading() {
		return m.renderLoading()
	}

	return m.renderDashboard()
}

// renderLoading renders the full-screen loading indicator shown until both
// forecast bundles have resolved.
func (m model) renderLoading() string {
	w := safeWidth(m.width - 2)
	text := m.spinner.View() + " " + loadingText
	body := lipgloss.Place(w, safeWidth(m.height-2), lipgloss.Center, lipgloss.Center, text)
	return styles.Container.Width(w).Render(body)
}

// renderDashboard renders every panel in a single container.
func (m model) renderDashboard() string {
	w := safeWidth(m.width - 4) // Account for container borders and padding

	var sections []string
	sections = append(sections, m.renderHeader(w))
	sections = append(sections, m.renderDivider(w))
	sections = append(sections, m.renderMetrics(w))
	sections = append(sections, m.renderDivider(w))
	sections = append(sections, m.renderTable(w))
	sections = append(sections, m.renderDivider(w))
	sections = append(sections, m.renderCharts(w))
	sections = append(sections, m.renderDivider(w))
	sections = append(sections, m.renderFooter())

	content := strings.Join(sections, "\n")

	rendered := styles.Container.
		Width(safeWidth(m.width - 2)).
		Padding(0, 1).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, rendered)
}

// renderHeader renders the title and the overall fetch status.
func (m model) renderHeader(w int) string {
	title := styles.Title.Render(dashboardTitle)

	var status string
	switch {
	case m.busy():
		status = m.spinner.View() + " " + styles.Status.Render("loading")
	default:
		status = styles.Status.Render("ready")
	}
	if n := len(m.failedResources()); n > 0 {
		status = styles.Error.Render(fmt.Sprintf("%d failed", n)) + "  " + status
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", max(1, w-lipgloss.Width(title)-lipgloss.Width(status))),
		status,
	)
}

// renderMetrics renders the data information panel on two lines.
func (m model) renderMetrics(w int) string {
	st := m.ctrl.Info()
	if st.Status == fetch.Failed {
		return styles.Error.Render(truncate("Data information unavailable: "+st.Err, w)) + "\n"
	}

	summary, ok := m.ctrl.Summary()
	if !ok {
		return styles.Placeholder.Render("Loading data information...") + "\n"
	}

	metrics := summary.Metrics()
	parts := make([]string, len(metrics))
	for i, mt := range metrics {
		parts[i] = styles.MetricLabel.Render(mt.Label+": ") + styles.MetricValue.Render(mt.Value)
	}
	split := (len(parts) + 1) / 2
	return strings.Join(parts[:split], "   ") + "\n" + strings.Join(parts[split:], "   ")
}

// renderTable renders the table preview with its row-limit line.
func (m model) renderTable(w int) string {
	ts := m.ctrl.Table()

	title := styles.PanelTitle.Render("Power Consumption Data")
	limit := fmt.Sprintf("rows: %d", ts.RowLimit)
	if ts.RowsInTotal > 0 {
		limit += fmt.Sprintf(" of %d", ts.RowsInTotal)
	}
	line := title + "  " + styles.Status.Render(limit)
	if ts.Loading {
		line += "  " + m.spinner.View()
	}
	if ts.Err != "" {
		line += "  " + styles.Error.Render(truncate(ts.Err, max(10, w-lipgloss.Width(line)-2)))
	}

	var body string
	switch {
	case len(ts.Rows) > 0:
		body = m.table.View()
	case ts.Loading:
		body = placeholder(w, m.tableHeight(), "Loading rows...")
	default:
		body = placeholder(w, m.tableHeight(), noSeriesText)
	}
	return line + "\n" + body
}

// renderCharts renders the consumption and forecast panels side by side.
func (m model) renderCharts(w int) string {
	pw := (w - 1) / 2
	h := m.chartHeight()

	left := lipgloss.NewStyle().Width(pw).Render(m.renderConsumption(pw, h))
	right := lipgloss.NewStyle().Width(pw).Render(m.renderForecast(pw, h))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// renderConsumption renders the line or seasonal decomposition panel.
func (m model) renderConsumption(w, h int) string {
	sel := m.ctrl.Selection()

	var title, radio string
	if sel.ChartType == selection.ChartSeasonal {
		title = chart.TitleDecomposition
		items := make([]radioItem, len(forecast.Components))
		for i, c := range forecast.Components {
			items[i] = radioItem{Label: chart.ComponentStyle(c).Label, Active: c == sel.Component}
		}
		radio = renderRadio(items)
	} else {
		title = chart.TitleConsumption + " Trend (kWh)"
		radio = renderRadio([]radioItem{
			{Label: "Line Chart", Active: true},
			{Label: "Seasonal Decomposition"},
		})
	}

	body := m.renderPanelBody(m.ctrl.ConsumptionResource(), m.ctrl.View(), w, h, noSeriesText)
	return styles.PanelTitle.Render(title) + "\n" + truncateStyled(radio, w) + "\n" + body
}

// renderForecast renders the forecast panel for the selected model.
func (m model) renderForecast(w, h int) string {
	sel := m.ctrl.Selection()
	title := fmt.Sprintf("%s (%s)", chart.TitleForecast, strings.ToUpper(sel.Model.String()))

	v := m.ctrl.ForecastView()
	var items []radioItem
	for _, ds := range seriesOf(v) {
		items = append(items, radioItem{Label: ds.Label, Active: ds.Key == v.Active})
	}
	radio := renderRadio(items)

	body := m.renderPanelBody(m.ctrl.ForecastResource(), v, w, h, noDataText)
	return styles.PanelTitle.Render(title) + "\n" + truncateStyled(radio, w) + "\n" + body
}

// renderPanelBody draws v, or the resource's error or loading state.
func (m model) renderPanelBody(resource string, v *chart.View, w, h int, empty string) string {
	st := m.ctrl.Status(resource)
	switch {
	case st.Status == fetch.Failed.String():
		return placeholder(w, h, truncate("Error: "+st.Error, w))
	case v == nil && st.Status == fetch.Loading.String():
		return placeholder(w, h, m.spinner.View()+" Loading...")
	default:
		return plotView(v, w, h, empty)
	}
}

// renderFooter renders the notice line or the key help.
func (m model) renderFooter() string {
	if m.notice != "" {
		if m.noticeErr {
			return styles.Error.Render(m.notice)
		}
		return styles.Notice.Render(m.notice)
	}
	return styles.Footer.Render(m.help.View(m.keys))
}

// renderDivider renders a horizontal divider line.
func (m model) renderDivider(w int) string {
	return styles.Divider.Render(strings.Repeat("─", w))
}

// renderTooSmall renders a minimal message for terminals that are too small.
func (m model) renderTooSmall() string {
	msg := fmt.Sprintf("Terminal too small (%dx%d). Need %dx%d minimum.",
		m.width, m.height, minWidth, minHeight)
	return msg
}

// failedResources lists resources whose latest fetch failed.
func (m model) failedResources() []string {
	var failed []string
	for _, r := range dashboard.Resources {
		if m.ctrl.Status(r).Status == fetch.Failed.String() {
			failed = append(failed, r)
		}
	}
	return failed
}

// radioItem is one option of a radio line.
type radioItem struct {
	Label  string
	Active bool
}

// renderRadio renders options as "(•) a  ( ) b".
func renderRadio(items []radioItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		if it.Active {
			parts[i] = styles.RadioActive.Render("(•) " + it.Label)
		} else {
			parts[i] = styles.Radio.Render("( ) " + it.Label)
		}
	}
	return strings.Join(parts, "  ")
}

func seriesOf(v *chart.View) []chart.Dataset {
	if v == nil {
		return nil
	}
	return v.Series
}

// safeWidth returns a width that is at least 1 to prevent negative values.
func safeWidth(w int) int {
	if w < 1 {
		return 1
	}
	return w
}

// truncateStyled cuts a rendered string to w cells.
func truncateStyled(s string, w int) string {
	return lipgloss.NewStyle().MaxWidth(safeWidth(w)).Render(s)
}
