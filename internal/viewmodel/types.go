// Package viewmodel provides plain snapshot types for displaying dashboard state
// outside the interactive TUI (summary output, non-TTY fallback, JSON).
package viewmodel

import "github.com/npratt/powerdash/internal/selection"

// ResourceStatus is the fetch status of one remote resource.
type ResourceStatus struct {
	Name   string `json:"name"`            // Resource name (e.g. "arima")
	Status string `json:"status"`          // idle, loading, ready, failed
	Error  string `json:"error,omitempty"` // Failure message when Status is failed
}

// Metric is one headline figure of the data information panel.
type Metric struct {
	Label string `json:"label"` // Display label (e.g. "Total Entries")
	Value string `json:"value"` // Formatted value
}

// ColumnStats is one row of the per-column statistics table.
type ColumnStats struct {
	Column string   `json:"column"` // Dataset column name
	Values []string `json:"values"` // count, mean, min, 25%, 50%, 75%, max, std
}

// ChartSummary describes a derived chart view without its points.
type ChartSummary struct {
	Title       string   `json:"title"`        // Panel title
	Series      []string `json:"series"`       // Dataset keys in axis order
	Active      string   `json:"active"`       // Dataset drawn
	AxisLength  int      `json:"axis_length"`  // Number of axis labels
	ValidPoints int      `json:"valid_points"` // Valid points in the active dataset
	First       string   `json:"first,omitempty"`
	Last        string   `json:"last,omitempty"`
}

// TablePreview is the table preview panel.
type TablePreview struct {
	RowLimit    int        `json:"row_limit"`
	RowsInTotal int        `json:"rows_in_total,omitempty"`
	Loading     bool       `json:"loading"`
	Error       string     `json:"error,omitempty"`
	Headers     []string   `json:"headers"`
	Rows        [][]string `json:"rows"`
}

// Snapshot is a point-in-time copy of everything the dashboard displays.
type Snapshot struct {
	Loading     bool             `json:"loading"` // True while either forecast bundle is unresolved
	Selection   selection.State  `json:"selection"`
	Resources   []ResourceStatus `json:"resources"`
	Metrics     []Metric         `json:"metrics,omitempty"`
	Columns     []ColumnStats    `json:"columns,omitempty"`
	Consumption *ChartSummary    `json:"consumption,omitempty"` // nil when no data
	Forecast    *ChartSummary    `json:"forecast,omitempty"`    // nil when no data
	Table       TablePreview     `json:"table"`
}

// Failed returns the resources whose latest fetch failed.
func (s Snapshot) Failed() []ResourceStatus {
	var failed []ResourceStatus
	for _, r := range s.Resources {
		if r.Error != "" {
			failed = append(failed, r)
		}
	}
	return failed
}
