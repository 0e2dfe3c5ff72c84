// Package forecast provides the wire types and HTTP client for the Forecast Service.
// Payloads are decoded and validated here so the rest of the dashboard only
// ever sees well-formed bundles.
package forecast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Model identifies a forecasting model served by the Forecast Service.
type Model string

const (
	// ModelARIMA is the ARIMA(5,1,0) train/test/forecast bundle.
	ModelARIMA Model = "arima"
	// ModelSARIMA is the seasonal historical/forecast bundle.
	ModelSARIMA Model = "sarima"
)

// Models lists the supported models in display order.
var Models = []Model{ModelARIMA, ModelSARIMA}

// Segment names used by the forecast bundles.
const (
	SegmentTrain      = "train"
	SegmentTest       = "test"
	SegmentForecast   = "forecast"
	SegmentHistorical = "historical"
)

// Decomposition component names.
const (
	ComponentTrend    = "trend"
	ComponentSeasonal = "seasonal"
	ComponentResidual = "residual"
)

// Components lists the decomposition components in display order.
var Components = []string{ComponentTrend, ComponentSeasonal, ComponentResidual}

// Valid reports whether m is a known model.
func (m Model) Valid() bool {
	return m == ModelARIMA || m == ModelSARIMA
}

// String implements fmt.Stringer.
func (m Model) String() string {
	return string(m)
}

// SegmentOrder returns the fixed left-to-right segment order for the model.
// Charts concatenate segment axes in this order.
func (m Model) SegmentOrder() []string {
	switch m {
	case ModelARIMA:
		return []string{SegmentTrain, SegmentTest, SegmentForecast}
	case ModelSARIMA:
		return []string{SegmentHistorical, SegmentForecast}
	default:
		return nil
	}
}

// RawSeries is one named time series segment: labels and values of equal length.
type RawSeries struct {
	X []string  `json:"x"`
	Y []float64 `json:"y"`
}

// Len returns the number of points in the series.
func (s *RawSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.X)
}

// Validate checks that labels and values line up.
func (s *RawSeries) Validate() error {
	if s == nil {
		return nil
	}
	if len(s.X) != len(s.Y) {
		return fmt.Errorf("series has %d labels but %d values", len(s.X), len(s.Y))
	}
	return nil
}

// ForecastBundle maps segment names to optional series for one model.
// A nil segment means the backend omitted it or sent null.
type ForecastBundle struct {
	Model    Model
	Segments map[string]*RawSeries
}

// Segment returns the named segment, or nil if absent.
func (b *ForecastBundle) Segment(name string) *RawSeries {
	if b == nil {
		return nil
	}
	return b.Segments[name]
}

// PresentKeys returns the non-null segments in the model's fixed order.
func (b *ForecastBundle) PresentKeys() []string {
	if b == nil {
		return nil
	}
	var keys []string
	for _, name := range b.Model.SegmentOrder() {
		if b.Segments[name] != nil {
			keys = append(keys, name)
		}
	}
	return keys
}

// DecodeForecastBundle decodes a forecast response for the given model.
// Keys outside the model's segment order are ignored.
func DecodeForecastBundle(model Model, data []byte) (*ForecastBundle, error) {
	var raw map[string]*RawSeries
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s bundle: %w", model, err)
	}

	bundle := &ForecastBundle{Model: model, Segments: make(map[string]*RawSeries)}
	for _, name := range model.SegmentOrder() {
		seg := raw[name]
		if err := seg.Validate(); err != nil {
			return nil, fmt.Errorf("decode %s bundle: segment %s: %w", model, name, err)
		}
		bundle.Segments[name] = seg
	}
	return bundle, nil
}

// DecompositionBundle is the additive seasonal decomposition sharing one label axis.
type DecompositionBundle struct {
	X        []string  `json:"x"`
	Trend    []float64 `json:"trend"`
	Seasonal []float64 `json:"seasonal"`
	Residual []float64 `json:"residual"`
}

// Component returns the values for the named component and whether it exists.
func (d *DecompositionBundle) Component(name string) ([]float64, bool) {
	if d == nil {
		return nil, false
	}
	switch name {
	case ComponentTrend:
		return d.Trend, d.Trend != nil
	case ComponentSeasonal:
		return d.Seasonal, d.Seasonal != nil
	case ComponentResidual:
		return d.Residual, d.Residual != nil
	default:
		return nil, false
	}
}

// PresentKeys returns the components with data, in display order.
func (d *DecompositionBundle) PresentKeys() []string {
	var keys []string
	for _, name := range Components {
		if _, ok := d.Component(name); ok {
			keys = append(keys, name)
		}
	}
	return keys
}

// DecodeDecomposition decodes and validates a decomposition response.
func DecodeDecomposition(data []byte) (*DecompositionBundle, error) {
	var d DecompositionBundle
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode decomposition: %w", err)
	}
	for _, name := range Components {
		values, ok := d.Component(name)
		if ok && len(values) != len(d.X) {
			return nil, fmt.Errorf("decode decomposition: %s has %d values for %d labels", name, len(values), len(d.X))
		}
	}
	return &d, nil
}

// DecodeSeries decodes a single {x, y} series such as /plot-energy.
func DecodeSeries(data []byte) (*RawSeries, error) {
	var s RawSeries
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode series: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("decode series: %w", err)
	}
	return &s, nil
}

// Kind tags the shape of a Value.
type Kind int

const (
	// KindAbsent means the field was missing or null.
	KindAbsent Kind = iota
	// KindNumber means the field held a JSON number.
	KindNumber
	// KindString means the field held anything else, kept as text.
	KindString
)

// Value is a field whose JSON type is not fixed by the backend.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

// Number returns a numeric Value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Text returns a string Value.
func Text(s string) Value { return Value{Kind: KindString, Str: s} }

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*v = Number(f)
	default:
		*v = Text(string(data))
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindString:
		return json.Marshal(v.Str)
	default:
		return []byte("null"), nil
	}
}

// Float returns the numeric value, or 0 and false if v is not a number.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

// String renders v as it was received. Absent values render empty.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return v.Str
	default:
		return ""
	}
}

// Format renders numbers with two decimals and everything else unchanged.
func (v Value) Format() string {
	if v.Kind == KindNumber {
		return strconv.FormatFloat(v.Num, 'f', 2, 64)
	}
	return v.String()
}

// ColumnStats is one column of the pandas describe() table.
type ColumnStats struct {
	Count Value `json:"count"`
	Mean  Value `json:"mean"`
	Std   Value `json:"std"`
	Min   Value `json:"min"`
	P25   Value `json:"25%"`
	P50   Value `json:"50%"`
	P75   Value `json:"75%"`
	Max   Value `json:"max"`
}

// DataInfo is the /data-info response.
type DataInfo struct {
	Description map[string]ColumnStats `json:"description"`
	Info        string                 `json:"info"`

	// order holds the description keys as the service sent them.
	order []string
}

// UnmarshalJSON decodes the response and records the column order of
// description, which a map alone would lose.
func (d *DataInfo) UnmarshalJSON(data []byte) error {
	var raw struct {
		Description json.RawMessage `json:"description"`
		Info        string          `json:"info"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = DataInfo{Info: raw.Info}
	if len(raw.Description) == 0 || bytes.Equal(bytes.TrimSpace(raw.Description), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw.Description, &d.Description); err != nil {
		return err
	}
	order, err := objectKeys(raw.Description)
	if err != nil {
		return err
	}
	d.order = order
	return nil
}

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if key, ok := tok.(string); ok {
			keys = append(keys, key)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// Columns returns the described column names in the order the service sent
// them. Columns without a recorded order, as in a DataInfo built in code,
// follow in sorted order.
func (d *DataInfo) Columns() []string {
	if d == nil {
		return nil
	}
	cols := make([]string, 0, len(d.Description))
	seen := make(map[string]bool, len(d.Description))
	for _, name := range d.order {
		if _, ok := d.Description[name]; ok && !seen[name] {
			seen[name] = true
			cols = append(cols, name)
		}
	}
	var rest []string
	for name := range d.Description {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(cols, rest...)
}

// DecodeDataInfo decodes a /data-info response.
func DecodeDataInfo(data []byte) (*DataInfo, error) {
	var info DataInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decode data info: %w", err)
	}
	return &info, nil
}

// Preview record field names, in table order.
const (
	FieldDate                = "Date"
	FieldTime                = "Time"
	FieldGlobalActivePower   = "Global_active_power"
	FieldGlobalReactivePower = "Global_reactive_power"
	FieldVoltage             = "Voltage"
	FieldGlobalIntensity     = "Global_intensity"
	FieldSubMetering1        = "Sub_metering_1"
	FieldSubMetering2        = "Sub_metering_2"
	FieldSubMetering3        = "Sub_metering_3"
)

// PreviewFields is the fixed record schema of /fetch-dataset rows.
var PreviewFields = []string{
	FieldDate,
	FieldTime,
	FieldGlobalActivePower,
	FieldGlobalReactivePower,
	FieldVoltage,
	FieldGlobalIntensity,
	FieldSubMetering1,
	FieldSubMetering2,
	FieldSubMetering3,
}

// PreviewHeaders are the display headers matching PreviewFields.
var PreviewHeaders = []string{
	"Date",
	"Time",
	"Global Active Power (kW)",
	"Global Reactive Power (kW)",
	"Voltage (V)",
	"Global Intensity",
	"Sub Metering 1",
	"Sub Metering 2",
	"Sub Metering 3",
}

// Row is one preview record keyed by field name.
type Row map[string]Value

// Field returns the named field. Missing fields are absent values.
func (r Row) Field(name string) Value {
	return r[name]
}

// Cells renders the row in PreviewFields order.
func (r Row) Cells() []string {
	cells := make([]string, len(PreviewFields))
	for i, name := range PreviewFields {
		cells[i] = r.Field(name).String()
	}
	return cells
}

// Preview is the /fetch-dataset response.
type Preview struct {
	Message       string `json:"message,omitempty"`
	RowsInPreview int    `json:"rows_in_preview,omitempty"`
	RowsInTotal   int    `json:"rows_in_total,omitempty"`
	Rows          []Row  `json:"preview_data"`
}

// DecodePreview decodes a /fetch-dataset response.
func DecodePreview(data []byte) (*Preview, error) {
	var p Preview
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode preview: %w", err)
	}
	return &p, nil
}
