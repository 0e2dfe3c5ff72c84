package tui

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/npratt/powerdash/internal/dashboard"
	"github.com/npratt/powerdash/internal/viewmodel"
)

const (
	maxErrorLength    = 200
	truncateIndicator = "..."
)

// FormatSnapshot renders a snapshot as plain text for non-interactive output.
func FormatSnapshot(snap viewmodel.Snapshot) string {
	var b strings.Builder

	b.WriteString(dashboardTitle + "\n")

	b.WriteString("\nResources\n")
	for _, r := range snap.Resources {
		line := fmt.Sprintf("  %s %-14s %s", statusSymbol(r.Status), r.Name, r.Status)
		if r.Error != "" {
			line += ": " + truncate(r.Error, maxErrorLength)
		}
		b.WriteString(line + "\n")
	}

	if len(snap.Metrics) > 0 {
		b.WriteString("\nData Information\n")
		for _, mt := range snap.Metrics {
			fmt.Fprintf(&b, "  %s: %s\n", mt.Label, mt.Value)
		}
	}

	if len(snap.Columns) > 0 {
		b.WriteString("\nColumn Statistics\n")
		rows := make([][]string, len(snap.Columns))
		for i, c := range snap.Columns {
			rows[i] = append([]string{c.Column}, c.Values...)
		}
		headers := append([]string{"Column"}, dashboard.StatLabels...)
		b.WriteString(renderTable(headers, rows) + "\n")
	}

	sel := snap.Selection
	b.WriteString("\nSelection\n")
	fmt.Fprintf(&b, "  chart: %s  model: %s  series: %s  component: %s\n",
		sel.ChartType, sel.Model, orNone(sel.ActiveSeries), sel.Component)

	b.WriteString("\nCharts\n")
	b.WriteString("  " + formatChart(snap.Consumption, noSeriesText) + "\n")
	b.WriteString("  " + formatChart(snap.Forecast, noDataText) + "\n")

	t := snap.Table
	fmt.Fprintf(&b, "\nTable Preview (%d rows", t.RowLimit)
	if t.RowsInTotal > 0 {
		fmt.Fprintf(&b, " of %d", t.RowsInTotal)
	}
	b.WriteString(")\n")
	switch {
	case t.Error != "" && len(t.Rows) == 0:
		b.WriteString("  error: " + truncate(t.Error, maxErrorLength) + "\n")
	case len(t.Rows) == 0:
		b.WriteString("  " + noSeriesText + "\n")
	default:
		b.WriteString(renderTable(t.Headers, t.Rows) + "\n")
	}

	return b.String()
}

// formatChart describes a chart panel on one line.
func formatChart(cs *viewmodel.ChartSummary, empty string) string {
	if cs == nil {
		return empty
	}
	series := make([]string, len(cs.Series))
	for i, s := range cs.Series {
		if s == cs.Active {
			s += "*"
		}
		series[i] = s
	}
	out := fmt.Sprintf("%s [%s] %d/%d points", cs.Title, strings.Join(series, " "), cs.ValidPoints, cs.AxisLength)
	if cs.First != "" {
		out += fmt.Sprintf(" %s .. %s", cs.First, cs.Last)
	}
	return out
}

// renderTable draws a bordered plain table.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// truncate shortens text to maxLen, adding indicator if truncated.
func truncate(s string, maxLen int) string {
	s = safeString(s)
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= len(truncateIndicator) {
		return truncateIndicator
	}
	return s[:maxLen-len(truncateIndicator)] + truncateIndicator
}

// safeString sanitizes a string for display by removing control characters
// and limiting newlines.
func safeString(s string) string {
	// Remove ANSI escape sequences
	s = stripANSI(s)

	// Replace newlines with spaces
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	// Remove other control characters (except space)
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == ' ' || !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}

	// Collapse multiple spaces
	result := sb.String()
	for strings.Contains(result, "  ") {
		result = strings.ReplaceAll(result, "  ", " ")
	}

	return strings.TrimSpace(result)
}

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// statusSymbol returns a symbol for a resource status.
func statusSymbol(status string) string {
	switch status {
	case "ready":
		return "+"
	case "loading":
		return "~"
	case "failed":
		return "!"
	default:
		return "-"
	}
}
