package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/npratt/powerdash/internal/chart"
)

// emptyValue is the ECharts placeholder for a missing data point.
const emptyValue = "-"

// HTML renders every dataset of v as an interactive ECharts line chart.
// Gaps stay gaps; they are never drawn as zero.
func HTML(w io.Writer, v *chart.View, o Options) error {
	if v == nil || len(v.Series) == 0 {
		return ErrNoData
	}

	width, height := o.size()
	title := o.Title
	if title == "" {
		title = v.Title
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     fmt.Sprintf("%dpx", width),
			Height:    fmt.Sprintf("%dpx", height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%s to %s", v.Axis[0], v.Axis[len(v.Axis)-1]),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: chart.XLabelDate,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: v.YLabel,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	line.SetXAxis(v.Axis)
	for _, ds := range v.Series {
		data := make([]opts.LineData, len(ds.Points))
		for i, p := range ds.Points {
			if p.Valid {
				data[i] = opts.LineData{Value: p.Value}
			} else {
				data[i] = opts.LineData{Value: emptyValue}
			}
		}
		line.AddSeries(ds.Label, data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: ds.Style.Color, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ds.Style.Color}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render html chart: %w", err)
	}
	return nil
}
