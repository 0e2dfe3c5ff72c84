// Package selection tracks which chart, model, and sub-series the user is looking at.
//
// Transitions are pure and synchronous. They never trigger a fetch; the
// caller re-derives chart views from data it already holds.
package selection

import (
	"errors"
	"fmt"
	"slices"

	"github.com/npratt/powerdash/internal/forecast"
)

// ErrInvalidTransition is returned for unknown chart types, models, or keys.
var ErrInvalidTransition = errors.New("invalid selection transition")

// ChartType selects the consumption panel rendering.
type ChartType string

const (
	// ChartLine plots the daily consumption series.
	ChartLine ChartType = "line"
	// ChartSeasonal plots one seasonal decomposition component.
	ChartSeasonal ChartType = "seasonal"
)

// Valid reports whether t is a known chart type.
func (t ChartType) Valid() bool {
	return t == ChartLine || t == ChartSeasonal
}

// State is the user's current selection.
//
// ActiveSeries is always a key present in the held bundle for Model, or
// empty when that bundle has no data. Component is one of
// forecast.Components and, once a decomposition is held, one of its
// present components.
type State struct {
	ChartType    ChartType      `json:"chart_type"`
	Model        forecast.Model `json:"forecast_model"`
	ActiveSeries string         `json:"active_series,omitempty"`
	Component    string         `json:"component"`
}

// Default returns the initial selection: line chart, ARIMA, trend.
func Default() State {
	return State{
		ChartType: ChartLine,
		Model:     forecast.ModelARIMA,
		Component: forecast.ComponentTrend,
	}
}

// Validate checks the enum fields of s. ActiveSeries is not checked since
// it depends on fetched data.
func (s State) Validate() error {
	if !s.ChartType.Valid() {
		return fmt.Errorf("%w: chart type %q", ErrInvalidTransition, s.ChartType)
	}
	if !s.Model.Valid() {
		return fmt.Errorf("%w: model %q", ErrInvalidTransition, s.Model)
	}
	if !slices.Contains(forecast.Components, s.Component) {
		return fmt.Errorf("%w: component %q", ErrInvalidTransition, s.Component)
	}
	return nil
}

// KeySource reports which sub-series currently hold data.
type KeySource interface {
	// ForecastKeys returns the non-null segment keys for model, in display order.
	ForecastKeys(model forecast.Model) []string
	// ComponentKeys returns the decomposition components with data, or nil
	// when no decomposition is held.
	ComponentKeys() []string
}

// Machine owns a State and enforces its invariants.
type Machine struct {
	state State
}

// New creates a Machine. Invalid fields of initial fall back to Default.
func New(initial State) *Machine {
	def := Default()
	if !initial.ChartType.Valid() {
		initial.ChartType = def.ChartType
	}
	if !initial.Model.Valid() {
		initial.Model = def.Model
	}
	if !slices.Contains(forecast.Components, initial.Component) {
		initial.Component = def.Component
	}
	return &Machine{state: initial}
}

// State returns a copy of the current selection.
func (m *Machine) State() State {
	return m.state
}

// SetChartType switches the consumption panel.
func (m *Machine) SetChartType(t ChartType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: chart type %q", ErrInvalidTransition, t)
	}
	m.state.ChartType = t
	return nil
}

// SetForecastModel switches the forecast model and repairs ActiveSeries
// against the new model's keys.
func (m *Machine) SetForecastModel(model forecast.Model, keys KeySource) error {
	if !model.Valid() {
		return fmt.Errorf("%w: model %q", ErrInvalidTransition, model)
	}
	m.state.Model = model
	m.Repair(keys)
	return nil
}

// SetActiveSeries selects a forecast segment. The key must be present in
// the current model's bundle.
func (m *Machine) SetActiveSeries(key string, keys KeySource) error {
	if !slices.Contains(forecastKeys(keys, m.state.Model), key) {
		return fmt.Errorf("%w: series %q not available for %s", ErrInvalidTransition, key, m.state.Model)
	}
	m.state.ActiveSeries = key
	return nil
}

// SetComponent selects a decomposition component. Once a decomposition is
// held, the component must be present in it.
func (m *Machine) SetComponent(component string, keys KeySource) error {
	if !slices.Contains(componentKeys(keys), component) {
		return fmt.Errorf("%w: component %q", ErrInvalidTransition, component)
	}
	m.state.Component = component
	return nil
}

// CycleActiveSeries moves ActiveSeries by delta through the available keys,
// wrapping at both ends. It is a no-op when nothing is available.
func (m *Machine) CycleActiveSeries(keys KeySource, delta int) {
	available := forecastKeys(keys, m.state.Model)
	if len(available) == 0 {
		m.state.ActiveSeries = ""
		return
	}
	m.state.ActiveSeries = cycle(available, m.state.ActiveSeries, delta)
}

// CycleComponent moves Component by delta through the present components,
// wrapping at both ends.
func (m *Machine) CycleComponent(keys KeySource, delta int) {
	m.state.Component = cycle(componentKeys(keys), m.state.Component, delta)
}

// Repair resets ActiveSeries to the first available key when the current
// one is not present for the selected model, or to "" when none are.
// Component is reset to the first present component when the held
// decomposition lacks it; it is never emptied.
func (m *Machine) Repair(keys KeySource) {
	if present := componentKeys(keys); !slices.Contains(present, m.state.Component) {
		m.state.Component = present[0]
	}

	available := forecastKeys(keys, m.state.Model)
	if slices.Contains(available, m.state.ActiveSeries) {
		return
	}
	if len(available) == 0 {
		m.state.ActiveSeries = ""
		return
	}
	m.state.ActiveSeries = available[0]
}

func forecastKeys(keys KeySource, model forecast.Model) []string {
	if keys == nil {
		return nil
	}
	return keys.ForecastKeys(model)
}

// componentKeys returns the selectable components: the present ones when a
// decomposition with data is held, otherwise every known component.
func componentKeys(keys KeySource) []string {
	if keys != nil {
		if present := keys.ComponentKeys(); len(present) > 0 {
			return present
		}
	}
	return forecast.Components
}

// cycle returns the element delta steps from current, wrapping around.
// An unknown current starts from the first element.
func cycle(items []string, current string, delta int) string {
	n := len(items)
	i := slices.Index(items, current)
	if i < 0 {
		return items[0]
	}
	return items[((i+delta)%n+n)%n]
}
