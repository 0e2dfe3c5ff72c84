package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart"
	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/npratt/powerdash/internal/chart"
)

const (
	// minPlotWidth and minPlotHeight are below what ntcharts can label.
	minPlotWidth  = 20
	minPlotHeight = 5
)

// axisEpoch anchors axis positions on the time scale. Position i is drawn
// at axisEpoch plus i days; labels map back to the view's axis.
var axisEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func axisTime(i int) time.Time {
	return axisEpoch.AddDate(0, 0, i)
}

func axisIndex(v float64) int {
	return int(math.Round((v - float64(axisEpoch.Unix())) / (24 * 60 * 60)))
}

// axisLabelFormatter prints the view's own label for a plotted position.
func axisLabelFormatter(axis []string) linechart.LabelFormatter {
	return func(_ int, v float64) string {
		i := axisIndex(v)
		if i < 0 || i >= len(axis) {
			return ""
		}
		return axis[i]
	}
}

func valueLabelFormatter(lo, hi float64) linechart.LabelFormatter {
	format := "%.2f"
	if math.Max(math.Abs(lo), math.Abs(hi)) >= 100 {
		format = "%.0f"
	}
	return func(_ int, v float64) string {
		return fmt.Sprintf(format, v)
	}
}

// plotView draws the active dataset of v as a braille line chart.
// Only valid points are drawn, each at its axis position. empty is shown
// when there is nothing to draw.
func plotView(v *chart.View, width, height int, empty string) string {
	ds := v.ActiveDataset()
	if ds == nil || ds.ValidCount() == 0 {
		return placeholder(width, height, empty)
	}
	if width < minPlotWidth || height < minPlotHeight {
		return placeholder(width, height, fmt.Sprintf("%s: %d points", ds.Label, ds.ValidCount()))
	}

	lo, hi, _ := ds.Bounds()
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	start, end := axisTime(0), axisTime(max(len(v.Axis)-1, 1))

	c := tslc.New(width, height)
	c.AxisStyle = styles.Axis
	c.LabelStyle = styles.Label
	c.SetStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(ds.Style.Color)))
	c.SetTimeRange(start, end)
	c.SetViewTimeRange(start, end)
	c.SetYRange(lo, hi)
	c.SetViewYRange(lo, hi)
	c.Model.XLabelFormatter = axisLabelFormatter(v.Axis)
	c.Model.YLabelFormatter = valueLabelFormatter(lo, hi)

	for i, p := range ds.Points {
		if p.Valid {
			c.Push(tslc.TimePoint{Time: axisTime(i), Value: p.Value})
		}
	}

	c.DrawBraille()
	return c.View()
}

// placeholder centers msg in a width x height block.
func placeholder(width, height int, msg string) string {
	width = safeWidth(width)
	lines := make([]string, max(height, 1))
	lines[len(lines)/2] = lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.Placeholder.Render(msg))
	return strings.Join(lines, "\n")
}
