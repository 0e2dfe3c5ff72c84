package dashboard

import (
	"regexp"
	"strconv"

	"github.com/npratt/powerdash/internal/forecast"
	"github.com/npratt/powerdash/internal/viewmodel"
)

var totalColumnsPattern = regexp.MustCompile(`total (\d+) columns`)

// StatLabels are the per-column statistic labels in display order.
var StatLabels = []string{"Count", "Mean", "Min", "25%", "50%", "75%", "Max", "Std"}

// ColumnSummary is the statistics of one dataset column.
type ColumnSummary struct {
	Name  string
	Stats forecast.ColumnStats
}

// Values returns the statistics in StatLabels order. Count is rendered as
// received; everything else with two decimals.
func (c ColumnSummary) Values() []string {
	s := c.Stats
	return []string{
		s.Count.String(),
		s.Mean.Format(),
		s.Min.Format(),
		s.P25.Format(),
		s.P50.Format(),
		s.P75.Format(),
		s.Max.Format(),
		s.Std.Format(),
	}
}

// Summary holds the headline metrics derived from /data-info.
type Summary struct {
	TotalEntries     float64
	TotalColumns     int
	MissingRows      float64 // Date.count - Sub_metering_3.count; can be negative
	MaxSubMetering3  float64
	MeanSubMetering3 float64
	Columns          []ColumnSummary
}

// Summarize derives the metrics panel from a dataset description.
// Missing fields yield zero rather than an error.
func Summarize(info *forecast.DataInfo) Summary {
	if info == nil {
		return Summary{}
	}

	date := info.Description[forecast.FieldDate]
	sub3 := info.Description[forecast.FieldSubMetering3]

	var s Summary
	s.TotalEntries, _ = date.Count.Float()
	s.MaxSubMetering3, _ = sub3.Max.Float()
	s.MeanSubMetering3, _ = sub3.Mean.Float()

	dateCount, okDate := date.Count.Float()
	sub3Count, okSub3 := sub3.Count.Float()
	if okDate && okSub3 {
		s.MissingRows = dateCount - sub3Count
	}

	if m := totalColumnsPattern.FindStringSubmatch(info.Info); m != nil {
		s.TotalColumns, _ = strconv.Atoi(m[1])
	}

	for _, name := range info.Columns() {
		s.Columns = append(s.Columns, ColumnSummary{Name: name, Stats: info.Description[name]})
	}
	return s
}

// Metrics returns the headline figures in display order.
func (s Summary) Metrics() []viewmodel.Metric {
	return []viewmodel.Metric{
		{Label: "Total Entries", Value: formatCount(s.TotalEntries)},
		{Label: "Total Columns", Value: strconv.Itoa(s.TotalColumns)},
		{Label: "Rows With Missing Data", Value: formatCount(s.MissingRows)},
		{Label: "Max Value of Sub_metering_3", Value: strconv.FormatFloat(s.MaxSubMetering3, 'f', 2, 64)},
		{Label: "Mean Value of Sub_metering_3", Value: strconv.FormatFloat(s.MeanSubMetering3, 'f', 2, 64)},
	}
}

// ColumnStats returns the per-column statistics table.
func (s Summary) ColumnStats() []viewmodel.ColumnStats {
	out := make([]viewmodel.ColumnStats, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = viewmodel.ColumnStats{Column: c.Name, Values: c.Values()}
	}
	return out
}

func formatCount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
