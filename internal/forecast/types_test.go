package forecast

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantStr  string
	}{
		{"number", `1.5`, KindNumber, "1.5"},
		{"negative", `-2`, KindNumber, "-2"},
		{"string", `"16/12/2006"`, KindString, "16/12/2006"},
		{"question mark", `"?"`, KindString, "?"},
		{"null", `null`, KindAbsent, ""},
		{"bool kept as text", `true`, KindString, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			if err := json.Unmarshal([]byte(tt.input), &v); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if v.Kind != tt.wantKind {
				t.Errorf("Kind = %d, want %d", v.Kind, tt.wantKind)
			}
			if v.String() != tt.wantStr {
				t.Errorf("String() = %q, want %q", v.String(), tt.wantStr)
			}
		})
	}
}

func TestValue_MissingFieldIsAbsent(t *testing.T) {
	var stats ColumnStats
	if err := json.Unmarshal([]byte(`{"count": 10}`), &stats); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stats.Count.Kind != KindNumber {
		t.Errorf("count should be a number")
	}
	if stats.Mean.Kind != KindAbsent {
		t.Errorf("missing mean should be absent, got kind %d", stats.Mean.Kind)
	}
}

func TestValue_Format(t *testing.T) {
	if got := Number(4.2161).Format(); got != "4.22" {
		t.Errorf("Format() = %q, want %q", got, "4.22")
	}
	if got := Text("?").Format(); got != "?" {
		t.Errorf("Format() = %q, want %q", got, "?")
	}
	if got := (Value{}).Format(); got != "" {
		t.Errorf("absent Format() = %q, want empty", got)
	}
}

func TestValue_Float(t *testing.T) {
	if f, ok := Number(3).Float(); !ok || f != 3 {
		t.Errorf("Float() = %v, %v", f, ok)
	}
	if _, ok := Text("3").Float(); ok {
		t.Error("string value should not report a float")
	}
}

func TestDecodeForecastBundle_ARIMA(t *testing.T) {
	data := []byte(`{
		"train": {"x": ["2007-01-01", "2007-01-02"], "y": [1, 2]},
		"test": {"x": ["2007-01-03"], "y": [3]},
		"forecast": {"x": ["2007-01-04"], "y": [4]},
		"extra": {"x": [], "y": []}
	}`)

	b, err := DecodeForecastBundle(ModelARIMA, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{SegmentTrain, SegmentTest, SegmentForecast}
	if got := b.PresentKeys(); !reflect.DeepEqual(got, want) {
		t.Errorf("PresentKeys() = %v, want %v", got, want)
	}
	if _, ok := b.Segments["extra"]; ok {
		t.Error("unknown keys should be dropped")
	}
	if b.Segment(SegmentTrain).Len() != 2 {
		t.Errorf("train length = %d, want 2", b.Segment(SegmentTrain).Len())
	}
}

func TestDecodeForecastBundle_NullSegment(t *testing.T) {
	data := []byte(`{"historical": null, "forecast": {"x": ["a"], "y": [1]}}`)

	b, err := DecodeForecastBundle(ModelSARIMA, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := b.PresentKeys(); !reflect.DeepEqual(got, []string{SegmentForecast}) {
		t.Errorf("PresentKeys() = %v", got)
	}
}

func TestDecodeForecastBundle_AllNullIsEmpty(t *testing.T) {
	b, err := DecodeForecastBundle(ModelARIMA, []byte(`{"train": null, "test": null, "forecast": null}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := b.PresentKeys(); len(got) != 0 {
		t.Errorf("expected no present segments, got %v", got)
	}
}

func TestDecodeForecastBundle_LengthMismatch(t *testing.T) {
	_, err := DecodeForecastBundle(ModelARIMA, []byte(`{"train": {"x": ["a", "b"], "y": [1]}}`))
	if err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestDecodeForecastBundle_Malformed(t *testing.T) {
	if _, err := DecodeForecastBundle(ModelARIMA, []byte(`[1, 2`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestDecodeDecomposition(t *testing.T) {
	data := []byte(`{"x": ["a", "b"], "trend": [1, 2], "seasonal": [0.1, -0.1], "residual": [0, 0]}`)

	d, err := DecodeDecomposition(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := d.PresentKeys(); !reflect.DeepEqual(got, Components) {
		t.Errorf("PresentKeys() = %v, want %v", got, Components)
	}
	if v, ok := d.Component(ComponentSeasonal); !ok || v[1] != -0.1 {
		t.Errorf("seasonal = %v, %v", v, ok)
	}
	if _, ok := d.Component("bogus"); ok {
		t.Error("unknown component should not exist")
	}
}

func TestDecodeDecomposition_MissingComponent(t *testing.T) {
	d, err := DecodeDecomposition([]byte(`{"x": ["a"], "trend": [1]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := d.PresentKeys(); !reflect.DeepEqual(got, []string{ComponentTrend}) {
		t.Errorf("PresentKeys() = %v", got)
	}
}

func TestDecodeDecomposition_LengthMismatch(t *testing.T) {
	if _, err := DecodeDecomposition([]byte(`{"x": ["a"], "trend": [1, 2]}`)); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestDecodeDataInfo(t *testing.T) {
	data := []byte(`{
		"description": {
			"Sub_metering_3": {"count": 2049280, "mean": 6.45, "max": 31},
			"Date": {"count": 2075259, "unique": 1442, "top": "6/12/2008"}
		},
		"info": "<class 'pandas.core.frame.DataFrame'>\nData columns (total 9 columns):"
	}`)

	info, err := DecodeDataInfo(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := info.Columns(); !reflect.DeepEqual(got, []string{"Sub_metering_3", "Date"}) {
		t.Errorf("Columns() = %v, want service order", got)
	}
	if f, _ := info.Description["Date"].Count.Float(); f != 2075259 {
		t.Errorf("Date count = %v", f)
	}
}

func TestDataInfoColumns_KeepsServiceOrder(t *testing.T) {
	data := []byte(`{"description": {
		"Global_active_power": {"count": 3},
		"Date": {"count": 3},
		"Voltage": {"count": 3},
		"Time": {"count": 3}
	}}`)

	info, err := DecodeDataInfo(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"Global_active_power", "Date", "Voltage", "Time"}
	if got := info.Columns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
}

func TestDataInfoColumns_BuiltInCode(t *testing.T) {
	info := &DataInfo{Description: map[string]ColumnStats{"Time": {}, "Date": {}}}
	if got := info.Columns(); !reflect.DeepEqual(got, []string{"Date", "Time"}) {
		t.Errorf("Columns() = %v", got)
	}
}

func TestDecodeDataInfo_NullDescription(t *testing.T) {
	info, err := DecodeDataInfo([]byte(`{"description": null, "info": "x"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Info != "x" || len(info.Columns()) != 0 {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestDecodePreview(t *testing.T) {
	data := []byte(`{
		"message": "Dataset fetched successfully",
		"rows_in_preview": 1,
		"rows_in_total": 2075259,
		"preview_data": [{"Date": "16/12/2006", "Time": "17:24:00", "Global_active_power": 4.216, "Voltage": "?"}]
	}`)

	p, err := DecodePreview(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(p.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(p.Rows))
	}

	cells := p.Rows[0].Cells()
	if len(cells) != len(PreviewFields) {
		t.Fatalf("cells = %d, want %d", len(cells), len(PreviewFields))
	}
	if cells[0] != "16/12/2006" || cells[2] != "4.216" || cells[4] != "?" {
		t.Errorf("unexpected cells %v", cells)
	}
	if cells[8] != "" {
		t.Errorf("missing field should render empty, got %q", cells[8])
	}
}

func TestModel_SegmentOrder(t *testing.T) {
	if got := ModelSARIMA.SegmentOrder(); !reflect.DeepEqual(got, []string{SegmentHistorical, SegmentForecast}) {
		t.Errorf("SARIMA order = %v", got)
	}
	if Model("prophet").Valid() {
		t.Error("unknown model should be invalid")
	}
	if Model("prophet").SegmentOrder() != nil {
		t.Error("unknown model should have no segments")
	}
}
