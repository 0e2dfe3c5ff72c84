package chart

import "github.com/npratt/powerdash/internal/forecast"

// Style is the display label and color of one dataset.
// Color is a hex RGB string usable by lipgloss and the exporters.
type Style struct {
	Label string
	Color string
}

// Palette colors.
const (
	ColorTeal   = "#4BC0C0"
	ColorBlue   = "#36A2EB"
	ColorRed    = "#FF6384"
	ColorOrange = "#FF9F40"
	ColorPurple = "#9966FF"
	ColorGreen  = "#228B22"
)

// Dataset keys that are not forecast segments or decomposition components.
const (
	KeyConsumption = "consumption"
)

// Axis and panel titles.
const (
	TitleConsumption   = "Power Consumption"
	TitleDecomposition = "Seasonal Decomposition"
	TitleForecast      = "Forecast Analysis"
	YLabelPower        = "Power Consumption (kW)"
	YLabelEnergy       = "Power Consumption (kWh)"
	YLabelValue        = "Value"
	XLabelDate         = "Date"
)

var (
	consumptionStyle = Style{Label: "Power Consumption (kWh)", Color: ColorBlue}

	arimaStyles = map[string]Style{
		forecast.SegmentTrain:    {Label: "Train Data", Color: ColorTeal},
		forecast.SegmentTest:     {Label: "Test Data", Color: ColorBlue},
		forecast.SegmentForecast: {Label: "Forecast Data", Color: ColorRed},
	}

	sarimaStyles = map[string]Style{
		forecast.SegmentHistorical: {Label: "Historical Data", Color: ColorPurple},
		forecast.SegmentForecast:   {Label: "Forecast Data", Color: ColorOrange},
	}

	componentStyles = map[string]Style{
		forecast.ComponentTrend:    {Label: "Trend", Color: ColorRed},
		forecast.ComponentSeasonal: {Label: "Seasonal", Color: ColorBlue},
		forecast.ComponentResidual: {Label: "Residual", Color: ColorGreen},
	}
)

// SegmentStyle returns the style for a forecast segment of model.
func SegmentStyle(model forecast.Model, key string) Style {
	styles := arimaStyles
	if model == forecast.ModelSARIMA {
		styles = sarimaStyles
	}
	if s, ok := styles[key]; ok {
		return s
	}
	return Style{Label: key, Color: ColorBlue}
}

// ComponentStyle returns the style for a decomposition component.
func ComponentStyle(component string) Style {
	if s, ok := componentStyles[component]; ok {
		return s
	}
	return Style{Label: component, Color: ColorBlue}
}
