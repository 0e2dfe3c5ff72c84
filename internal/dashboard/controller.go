// Package dashboard orchestrates the dashboard's remote resources.
//
// A Controller owns one fetcher per resource and the user's selection. It
// never performs I/O itself: Init, Refresh and the row-limit setters return
// fetch.Tasks for the caller to run, and completions come back through Apply.
// All methods must be called from a single goroutine (the bubbletea Update
// loop, or the goroutine driving RunAll).
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/npratt/powerdash/internal/chart"
	"github.com/npratt/powerdash/internal/fetch"
	"github.com/npratt/powerdash/internal/forecast"
	"github.com/npratt/powerdash/internal/selection"
	"github.com/npratt/powerdash/internal/viewmodel"
)

// Resource names, one per fetcher.
const (
	ResourceDataInfo      = "data-info"
	ResourceEnergy        = "plot-energy"
	ResourceARIMA         = "arima"
	ResourceSARIMA        = "sarima"
	ResourceDecomposition = "decomposition"
	ResourcePreview       = "table-preview"
)

// Resources lists every resource in display order.
var Resources = []string{
	ResourceDataInfo,
	ResourceEnergy,
	ResourceARIMA,
	ResourceSARIMA,
	ResourceDecomposition,
	ResourcePreview,
}

// Controller owns the dashboard's fetch states and selection.
type Controller struct {
	source  forecast.Source
	logger  *slog.Logger
	timeout time.Duration

	info          *fetch.Fetcher[*forecast.DataInfo]
	energy        *fetch.Fetcher[*forecast.RawSeries]
	forecasts     map[forecast.Model]*fetch.Fetcher[*forecast.ForecastBundle]
	decomposition *fetch.Fetcher[*forecast.DecompositionBundle]
	table         *Table

	sel *selection.Machine
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	rowLimit  int
	selection selection.State
	timeout   time.Duration
}

// WithLogger sets the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRowLimit sets the initial table preview size. Invalid values fall
// back to DefaultRowLimit.
func WithRowLimit(n int) Option {
	return func(o *options) {
		o.rowLimit = n
	}
}

// WithSelection sets the initial selection.
func WithSelection(s selection.State) Option {
	return func(o *options) {
		o.selection = s
	}
}

// WithRequestTimeout bounds every load. Zero leaves loads unbounded beyond
// the source's own timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// New creates a Controller with every resource Idle.
func New(source forecast.Source, opts ...Option) *Controller {
	o := options{
		logger:    slog.Default(),
		rowLimit:  DefaultRowLimit,
		selection: selection.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger.With("component", "dashboard")
	c := &Controller{
		source:        source,
		logger:        logger,
		timeout:       o.timeout,
		info:          fetch.New[*forecast.DataInfo](ResourceDataInfo, logger),
		energy:        fetch.New[*forecast.RawSeries](ResourceEnergy, logger),
		decomposition: fetch.New[*forecast.DecompositionBundle](ResourceDecomposition, logger),
		forecasts: map[forecast.Model]*fetch.Fetcher[*forecast.ForecastBundle]{
			forecast.ModelARIMA:  fetch.New[*forecast.ForecastBundle](ResourceARIMA, logger),
			forecast.ModelSARIMA: fetch.New[*forecast.ForecastBundle](ResourceSARIMA, logger),
		},
		table: newTable(source, o.rowLimit, logger),
		sel:   selection.New(o.selection),
	}
	c.table.wrap = bound[*forecast.Preview](c.timeout)
	return c
}

// Init issues every resource. The returned tasks are independent and may
// run concurrently in any order.
func (c *Controller) Init(ctx context.Context) []fetch.Task {
	c.logger.Info("loading dashboard", "resources", len(Resources))
	return c.issueAll(ctx)
}

// Refresh re-issues every resource. Results of earlier requests still in
// flight are discarded when they arrive.
func (c *Controller) Refresh(ctx context.Context) []fetch.Task {
	c.logger.Info("refreshing dashboard")
	return c.issueAll(ctx)
}

func (c *Controller) issueAll(ctx context.Context) []fetch.Task {
	src := c.source
	tasks := []fetch.Task{
		c.info.Issue(ctx, bound[*forecast.DataInfo](c.timeout)(func(ctx context.Context) (*forecast.DataInfo, error) {
			info, err := src.DataInfo(ctx)
			if err != nil {
				return nil, fmt.Errorf("fetch data info: %w", err)
			}
			return info, nil
		})),
		c.energy.Issue(ctx, bound[*forecast.RawSeries](c.timeout)(func(ctx context.Context) (*forecast.RawSeries, error) {
			s, err := src.Energy(ctx)
			if err != nil {
				return nil, fmt.Errorf("fetch energy series: %w", err)
			}
			return s, nil
		})),
	}
	for _, model := range forecast.Models {
		tasks = append(tasks, c.forecasts[model].Issue(ctx, bound[*forecast.ForecastBundle](c.timeout)(func(ctx context.Context) (*forecast.ForecastBundle, error) {
			b, err := src.Forecast(ctx, model)
			if err != nil {
				return nil, fmt.Errorf("fetch %s forecast: %w", model, err)
			}
			return b, nil
		})))
	}
	tasks = append(tasks,
		c.decomposition.Issue(ctx, bound[*forecast.DecompositionBundle](c.timeout)(func(ctx context.Context) (*forecast.DecompositionBundle, error) {
			d, err := src.Decomposition(ctx)
			if err != nil {
				return nil, fmt.Errorf("fetch decomposition: %w", err)
			}
			return d, nil
		})),
		c.table.Issue(ctx),
	)
	return tasks
}

// bound wraps a load with a per-request timeout when d is positive.
func bound[T any](d time.Duration) func(fetch.LoadFunc[T]) fetch.LoadFunc[T] {
	return func(load fetch.LoadFunc[T]) fetch.LoadFunc[T] {
		if d <= 0 {
			return load
		}
		return func(ctx context.Context) (T, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return load(ctx)
		}
	}
}

// Apply routes a completion to the fetcher that issued it and repairs the
// selection. It returns false when the completion was stale or unknown.
func (c *Controller) Apply(comp fetch.Completion) bool {
	var applied bool
	switch r := comp.(type) {
	case fetch.Result[*forecast.DataInfo]:
		applied = c.info.Apply(r)
	case fetch.Result[*forecast.RawSeries]:
		applied = c.energy.Apply(r)
	case fetch.Result[*forecast.ForecastBundle]:
		for _, f := range c.forecasts {
			if f.Resource() == r.Resource {
				applied = f.Apply(r)
				break
			}
		}
	case fetch.Result[*forecast.DecompositionBundle]:
		applied = c.decomposition.Apply(r)
	case fetch.Result[*forecast.Preview]:
		applied = c.table.Apply(r)
	default:
		c.logger.Warn("unknown completion", "type", fmt.Sprintf("%T", comp))
		return false
	}
	if applied {
		c.sel.Repair(c)
	}
	return applied
}

// Loading reports whether either forecast bundle is still unresolved.
// The other resources load independently and do not affect it.
func (c *Controller) Loading() bool {
	for _, f := range c.forecasts {
		if f.State().Pending() {
			return true
		}
	}
	return false
}

// Info returns the dataset description fetch state.
func (c *Controller) Info() fetch.State[*forecast.DataInfo] {
	return c.info.State()
}

// Energy returns the consumption series fetch state.
func (c *Controller) Energy() fetch.State[*forecast.RawSeries] {
	return c.energy.State()
}

// Forecast returns the fetch state of one model's bundle.
func (c *Controller) Forecast(model forecast.Model) fetch.State[*forecast.ForecastBundle] {
	f, ok := c.forecasts[model]
	if !ok {
		return fetch.State[*forecast.ForecastBundle]{}
	}
	return f.State()
}

// Decomposition returns the decomposition fetch state.
func (c *Controller) Decomposition() fetch.State[*forecast.DecompositionBundle] {
	return c.decomposition.State()
}

// Table returns the table preview as displayed.
func (c *Controller) Table() TableState {
	return c.table.State()
}

// Summary derives the metrics panel. ok is false until data info is Ready.
func (c *Controller) Summary() (Summary, bool) {
	st := c.info.State()
	if st.Status != fetch.Ready {
		return Summary{}, false
	}
	return Summarize(st.Value), true
}

// ForecastKeys implements selection.KeySource over the last successfully
// fetched bundle, so a reload does not reset the user's choice.
func (c *Controller) ForecastKeys(model forecast.Model) []string {
	f, ok := c.forecasts[model]
	if !ok {
		return nil
	}
	b, _ := f.Last()
	return b.PresentKeys()
}

// ComponentKeys implements selection.KeySource over the last successfully
// fetched decomposition.
func (c *Controller) ComponentKeys() []string {
	d, ok := c.decomposition.Last()
	if !ok {
		return nil
	}
	return d.PresentKeys()
}

// Selection returns the current selection.
func (c *Controller) Selection() selection.State {
	return c.sel.State()
}

// SetChartType switches the consumption panel. No request is issued.
func (c *Controller) SetChartType(t selection.ChartType) error {
	return c.sel.SetChartType(t)
}

// SetForecastModel switches the forecast panel. No request is issued.
func (c *Controller) SetForecastModel(m forecast.Model) error {
	return c.sel.SetForecastModel(m, c)
}

// SetActiveSeries selects a forecast segment. No request is issued.
func (c *Controller) SetActiveSeries(key string) error {
	return c.sel.SetActiveSeries(key, c)
}

// SetComponent selects a decomposition component. No request is issued.
func (c *Controller) SetComponent(component string) error {
	return c.sel.SetComponent(component, c)
}

// CycleActiveSeries steps through the forecast segments.
func (c *Controller) CycleActiveSeries(delta int) {
	c.sel.CycleActiveSeries(c, delta)
}

// CycleComponent steps through the decomposition components.
func (c *Controller) CycleComponent(delta int) {
	c.sel.CycleComponent(c, delta)
}

// SetRowLimit re-fetches the table preview at n rows.
func (c *Controller) SetRowLimit(ctx context.Context, n int) (fetch.Task, error) {
	return c.table.SetRowLimit(ctx, n)
}

// NextRowLimit steps the table to the next larger size. It returns nil at the top.
func (c *Controller) NextRowLimit(ctx context.Context) fetch.Task {
	return c.table.NextRowLimit(ctx)
}

// PrevRowLimit steps the table to the next smaller size. It returns nil at the bottom.
func (c *Controller) PrevRowLimit(ctx context.Context) fetch.Task {
	return c.table.PrevRowLimit(ctx)
}

// Sources returns the Ready bundles for chart derivation.
func (c *Controller) Sources() chart.Sources {
	src := chart.Sources{Forecasts: make(map[forecast.Model]*forecast.ForecastBundle)}
	if st := c.energy.State(); st.Status == fetch.Ready {
		src.Energy = st.Value
	}
	if st := c.decomposition.State(); st.Status == fetch.Ready {
		src.Decomposition = st.Value
	}
	for model, f := range c.forecasts {
		if st := f.State(); st.Status == fetch.Ready {
			src.Forecasts[model] = st.Value
		}
	}
	return src
}

// View returns the consumption panel for the current chart type, or nil
// when its data is not available.
func (c *Controller) View() *chart.View {
	v, _ := chart.Derive(c.Sources(), c.sel.State())
	return v
}

// ForecastView returns the forecast panel for the current model, or nil
// when the bundle is unavailable or has no data.
func (c *Controller) ForecastView() *chart.View {
	_, v := chart.Derive(c.Sources(), c.sel.State())
	return v
}

// ConsumptionResource names the resource backing the consumption panel.
func (c *Controller) ConsumptionResource() string {
	if c.sel.State().ChartType == selection.ChartSeasonal {
		return ResourceDecomposition
	}
	return ResourceEnergy
}

// ForecastResource names the resource backing the forecast panel.
func (c *Controller) ForecastResource() string {
	return c.forecasts[c.sel.State().Model].Resource()
}

// Status returns the fetch status of a named resource.
func (c *Controller) Status(resource string) viewmodel.ResourceStatus {
	rs := viewmodel.ResourceStatus{Name: resource}
	var status fetch.Status
	switch resource {
	case ResourceDataInfo:
		st := c.info.State()
		status, rs.Error = st.Status, st.Err
	case ResourceEnergy:
		st := c.energy.State()
		status, rs.Error = st.Status, st.Err
	case ResourceARIMA:
		st := c.forecasts[forecast.ModelARIMA].State()
		status, rs.Error = st.Status, st.Err
	case ResourceSARIMA:
		st := c.forecasts[forecast.ModelSARIMA].State()
		status, rs.Error = st.Status, st.Err
	case ResourceDecomposition:
		st := c.decomposition.State()
		status, rs.Error = st.Status, st.Err
	case ResourcePreview:
		st := c.table.FetchState()
		status, rs.Error = st.Status, st.Err
	}
	rs.Status = status.String()
	return rs
}

// Snapshot copies the displayed state into plain view-model types.
func (c *Controller) Snapshot() viewmodel.Snapshot {
	snap := viewmodel.Snapshot{
		Loading:     c.Loading(),
		Selection:   c.sel.State(),
		Consumption: summarizeView(c.View()),
		Forecast:    summarizeView(c.ForecastView()),
	}
	for _, r := range Resources {
		snap.Resources = append(snap.Resources, c.Status(r))
	}
	if s, ok := c.Summary(); ok {
		snap.Metrics = s.Metrics()
		snap.Columns = s.ColumnStats()
	}

	ts := c.table.State()
	snap.Table = viewmodel.TablePreview{
		RowLimit:    ts.RowLimit,
		RowsInTotal: ts.RowsInTotal,
		Loading:     ts.Loading,
		Error:       ts.Err,
		Headers:     forecast.PreviewHeaders,
		Rows:        make([][]string, len(ts.Rows)),
	}
	for i, row := range ts.Rows {
		snap.Table.Rows[i] = row.Cells()
	}
	return snap
}

func summarizeView(v *chart.View) *viewmodel.ChartSummary {
	if v == nil {
		return nil
	}
	cs := &viewmodel.ChartSummary{
		Title:      v.Title,
		Series:     v.Keys(),
		Active:     v.Active,
		AxisLength: len(v.Axis),
	}
	if ds := v.ActiveDataset(); ds != nil {
		cs.ValidPoints = ds.ValidCount()
	}
	if len(v.Axis) > 0 {
		cs.First = v.Axis[0]
		cs.Last = v.Axis[len(v.Axis)-1]
	}
	return cs
}
