package export

import (
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/npratt/powerdash/internal/chart"
)

// PNG renders every dataset of v as a static line chart. Points are placed
// by axis position and labelled with the axis label; invalid points are
// left out.
func PNG(w io.Writer, v *chart.View, o Options) error {
	if v == nil || len(v.Series) == 0 {
		return ErrNoData
	}

	var series []gochart.Series
	xs := make(map[int]bool)
	for _, ds := range v.Series {
		var xv, yv []float64
		for i, p := range ds.Points {
			if !p.Valid {
				continue
			}
			xv = append(xv, float64(i))
			yv = append(yv, p.Value)
			xs[i] = true
		}
		if len(xv) == 0 {
			continue
		}
		color := drawing.ColorFromHex(ds.Style.Color)
		series = append(series, gochart.ContinuousSeries{
			Name: ds.Label,
			Style: gochart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
			},
			XValues: xv,
			YValues: yv,
		})
	}
	// go-chart needs two distinct x positions to compute a range
	if len(xs) < 2 {
		return ErrNoData
	}

	width, height := o.size()
	title := o.Title
	if title == "" {
		title = v.Title
	}

	axis := v.Axis
	graph := gochart.Chart{
		Title: title,
		TitleStyle: gochart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  width,
		Height: height,
		XAxis: gochart.XAxis{
			Name: chart.XLabelDate,
			NameStyle: gochart.Style{
				FontSize: 12,
			},
			Style: gochart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(val interface{}) string {
				f, ok := val.(float64)
				if !ok {
					return ""
				}
				i := int(math.Round(f))
				if i < 0 || i >= len(axis) {
					return ""
				}
				return axis[i]
			},
		},
		YAxis: gochart.YAxis{
			Name: v.YLabel,
			NameStyle: gochart.Style{
				FontSize: 12,
			},
			Style: gochart.Style{
				FontSize: 10,
			},
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render png chart: %w", err)
	}
	return nil
}
