// Package chart reshapes fetched bundles into renderable datasets.
//
// Every function here is pure: the same inputs always produce an equal View
// and nothing is retained between calls. Values pass through unmodified;
// rounding is left to whatever draws the View.
package chart

import (
	"github.com/npratt/powerdash/internal/forecast"
	"github.com/npratt/powerdash/internal/selection"
)

// Point is one position on a View's axis.
// Valid is false where the dataset has no value at that position.
type Point struct {
	Label string
	Value float64
	Valid bool
}

// Dataset is one named, styled series aligned to its View's axis.
type Dataset struct {
	Key    string
	Label  string
	Points []Point
	Style  Style
}

// ValidCount returns the number of points carrying a value.
func (d *Dataset) ValidCount() int {
	n := 0
	for _, p := range d.Points {
		if p.Valid {
			n++
		}
	}
	return n
}

// Bounds returns the min and max of the valid points. ok is false when no
// point is valid.
func (d *Dataset) Bounds() (lo, hi float64, ok bool) {
	for _, p := range d.Points {
		if !p.Valid {
			continue
		}
		if !ok {
			lo, hi, ok = p.Value, p.Value, true
			continue
		}
		lo = min(lo, p.Value)
		hi = max(hi, p.Value)
	}
	return lo, hi, ok
}

// View is a renderable chart: a shared label axis and datasets positioned
// against it. Every dataset has exactly len(Axis) points. Active names the
// dataset to draw.
type View struct {
	Title  string
	YLabel string
	Axis   []string
	Series []Dataset
	Active string
}

// Keys returns the dataset keys in order.
func (v *View) Keys() []string {
	if v == nil {
		return nil
	}
	keys := make([]string, len(v.Series))
	for i, ds := range v.Series {
		keys[i] = ds.Key
	}
	return keys
}

// Dataset returns the dataset with the given key, or nil.
func (v *View) Dataset(key string) *Dataset {
	if v == nil {
		return nil
	}
	for i := range v.Series {
		if v.Series[i].Key == key {
			return &v.Series[i]
		}
	}
	return nil
}

// ActiveDataset returns the dataset named by Active, or nil.
func (v *View) ActiveDataset() *Dataset {
	if v == nil {
		return nil
	}
	return v.Dataset(v.Active)
}

// Forecast builds the view of a forecast bundle.
//
// The axis concatenates the x-axes of the present segments in the model's
// fixed order. Each segment becomes a dataset that is valid only over its
// own span of the axis. Absent segments contribute nothing. It returns nil
// when the bundle is nil or every segment is absent. activeKey falls back
// to the first present segment when it is not one of them.
func Forecast(bundle *forecast.ForecastBundle, activeKey string) *View {
	keys := bundle.PresentKeys()
	if len(keys) == 0 {
		return nil
	}

	var axis []string
	offsets := make([]int, len(keys))
	for i, key := range keys {
		offsets[i] = len(axis)
		axis = append(axis, bundle.Segment(key).X...)
	}

	v := &View{
		Title:  TitleForecast,
		YLabel: YLabelPower,
		Axis:   axis,
		Series: make([]Dataset, 0, len(keys)),
		Active: keys[0],
	}
	for i, key := range keys {
		seg := bundle.Segment(key)
		points := gapPoints(axis)
		// Values past the segment's own labels have no axis slot.
		for j := range min(len(seg.X), len(seg.Y)) {
			points[offsets[i]+j] = Point{Label: axis[offsets[i]+j], Value: seg.Y[j], Valid: true}
		}
		style := SegmentStyle(bundle.Model, key)
		v.Series = append(v.Series, Dataset{Key: key, Label: style.Label, Points: points, Style: style})
		if key == activeKey {
			v.Active = key
		}
	}
	return v
}

// Decomposition builds the view of one decomposition component over the
// shared axis. It returns nil when the bundle or the component is absent.
func Decomposition(bundle *forecast.DecompositionBundle, component string) *View {
	values, ok := bundle.Component(component)
	if !ok || len(bundle.X) == 0 {
		return nil
	}

	style := ComponentStyle(component)
	return &View{
		Title:  TitleDecomposition,
		YLabel: YLabelValue,
		Axis:   bundle.X,
		Series: []Dataset{{
			Key:    component,
			Label:  style.Label,
			Points: fullPoints(bundle.X, values),
			Style:  style,
		}},
		Active: component,
	}
}

// Energy builds the daily consumption view. It returns nil for an empty series.
func Energy(series *forecast.RawSeries) *View {
	if series.Len() == 0 {
		return nil
	}
	return &View{
		Title:  TitleConsumption,
		YLabel: YLabelEnergy,
		Axis:   series.X,
		Series: []Dataset{{
			Key:    KeyConsumption,
			Label:  consumptionStyle.Label,
			Points: fullPoints(series.X, series.Y),
			Style:  consumptionStyle,
		}},
		Active: KeyConsumption,
	}
}

// Sources are the bundles currently held by the dashboard.
// Any of them may be nil.
type Sources struct {
	Energy        *forecast.RawSeries
	Decomposition *forecast.DecompositionBundle
	Forecasts     map[forecast.Model]*forecast.ForecastBundle
}

// Derive builds the consumption and forecast panels for a selection.
func Derive(src Sources, sel selection.State) (consumption, forecastView *View) {
	switch sel.ChartType {
	case selection.ChartSeasonal:
		consumption = Decomposition(src.Decomposition, sel.Component)
	default:
		consumption = Energy(src.Energy)
	}
	forecastView = Forecast(src.Forecasts[sel.Model], sel.ActiveSeries)
	return consumption, forecastView
}

func gapPoints(axis []string) []Point {
	points := make([]Point, len(axis))
	for i, label := range axis {
		points[i] = Point{Label: label}
	}
	return points
}

func fullPoints(axis []string, values []float64) []Point {
	points := gapPoints(axis)
	for i := range points {
		if i < len(values) {
			points[i].Value = values[i]
			points[i].Valid = true
		}
	}
	return points
}
