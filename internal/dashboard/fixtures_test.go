package dashboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/npratt/powerdash/internal/fetch"
	"github.com/npratt/powerdash/internal/forecast"
)

func previewRows(n int) []forecast.Row {
	rows := make([]forecast.Row, n)
	for i := range rows {
		rows[i] = forecast.Row{
			forecast.FieldDate:              forecast.Text("16/12/2006"),
			forecast.FieldTime:              forecast.Text(fmt.Sprintf("17:%02d:00", i%60)),
			forecast.FieldGlobalActivePower: forecast.Number(float64(i)),
		}
	}
	return rows
}

func arimaFixture() *forecast.ForecastBundle {
	return &forecast.ForecastBundle{
		Model: forecast.ModelARIMA,
		Segments: map[string]*forecast.RawSeries{
			forecast.SegmentTrain:    {X: []string{"d1", "d2"}, Y: []float64{1, 2}},
			forecast.SegmentTest:     {X: []string{"d3"}, Y: []float64{3}},
			forecast.SegmentForecast: nil,
		},
	}
}

func sarimaFixture() *forecast.ForecastBundle {
	return &forecast.ForecastBundle{
		Model: forecast.ModelSARIMA,
		Segments: map[string]*forecast.RawSeries{
			forecast.SegmentHistorical: {X: []string{"d1", "d2"}, Y: []float64{1, 2}},
			forecast.SegmentForecast:   {X: []string{"d3"}, Y: []float64{2.5}},
		},
	}
}

// fullSource returns a mock serving every resource successfully.
func fullSource() *forecast.MockSource {
	m := forecast.NewMockSource()
	m.DataInfoResponse = &forecast.DataInfo{
		Description: map[string]forecast.ColumnStats{
			forecast.FieldDate:         {Count: forecast.Number(100)},
			forecast.FieldSubMetering3: {Count: forecast.Number(98), Max: forecast.Number(31), Mean: forecast.Number(6.458)},
		},
		Info: "RangeIndex: 100 entries\nData columns (total 9 columns):",
	}
	m.EnergyResponse = &forecast.RawSeries{X: []string{"d1", "d2", "d3"}, Y: []float64{10, 11, 12}}
	m.ForecastResponses[forecast.ModelARIMA] = arimaFixture()
	m.ForecastResponses[forecast.ModelSARIMA] = sarimaFixture()
	m.DecompositionResponse = &forecast.DecompositionBundle{
		X:        []string{"d1", "d2"},
		Trend:    []float64{1, 1.5},
		Seasonal: []float64{0.2, -0.2},
		Residual: []float64{0, 0},
	}
	m.PreviewRows = previewRows(200)
	return m
}

// runTasks runs tasks in order and applies each completion.
func runTasks(t *testing.T, c *Controller, tasks ...fetch.Task) {
	t.Helper()
	for _, task := range tasks {
		c.Apply(task())
	}
}

// loadAll initializes c and applies every completion.
func loadAll(t *testing.T, c *Controller) {
	t.Helper()
	if err := RunAll(context.Background(), c, c.Init(context.Background())); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
}
