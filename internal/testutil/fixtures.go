package testutil

import (
	"encoding/json"
	"fmt"
)

// Sample Forecast Service responses

// DataInfoJSON is a typical /data-info response.
var DataInfoJSON = `{
  "description": {
    "Date": {"count": 2075259, "unique": 1442, "top": "6/12/2008", "freq": 1440},
    "Global_active_power": {"count": 2049280, "mean": 1.0916, "std": 1.0573, "min": 0.076, "25%": 0.308, "50%": 0.602, "75%": 1.528, "max": 11.122},
    "Sub_metering_3": {"count": 2049280, "mean": 6.4584, "std": 8.4372, "min": 0, "25%": 0, "50%": 1, "75%": 17, "max": 31}
  },
  "info": "<class 'pandas.core.frame.DataFrame'>\nRangeIndex: 2075259 entries, 0 to 2075258\nData columns (total 9 columns):\n"
}`

// EnergyJSON is a /plot-energy response with three days.
var EnergyJSON = `{"x": ["2006-12-16", "2006-12-17", "2006-12-18"], "y": [1209.176, 3390.46, 2203.826]}`

// ARIMAJSON is an /arima-forecast response with all three segments.
var ARIMAJSON = `{
  "train": {"x": ["2010-11-20", "2010-11-21"], "y": [1.2, 1.4]},
  "test": {"x": ["2010-11-22"], "y": [1.3]},
  "forecast": {"x": ["2010-11-23", "2010-11-24"], "y": [1.25, 1.27]}
}`

// ARIMANoForecastJSON is an /arima-forecast response whose forecast is null.
var ARIMANoForecastJSON = `{
  "train": {"x": ["d1", "d2"], "y": [1, 2]},
  "test": {"x": ["d3"], "y": [3]},
  "forecast": null
}`

// SARIMAJSON is a /sarima-forecast response.
var SARIMAJSON = `{
  "historical": {"x": ["2010-11-20", "2010-11-21", "2010-11-22"], "y": [1.2, 1.4, 1.3]},
  "forecast": {"x": ["2010-11-23"], "y": [1.31]}
}`

// DecompositionJSON is a /seasonal-decomposition response.
var DecompositionJSON = `{
  "x": ["2006-12-16", "2006-12-17", "2006-12-18"],
  "trend": [1800.1, 1810.4, 1820.9],
  "seasonal": [120.5, -40.2, -80.3],
  "residual": [-711.4, 1620.3, 463.2]
}`

// PreviewJSON returns a /fetch-dataset response with n generated rows.
func PreviewJSON(n int) string {
	rows := make([]map[string]interface{}, n)
	for i := range rows {
		rows[i] = map[string]interface{}{
			"Date":                  "16/12/2006",
			"Time":                  fmt.Sprintf("17:%02d:00", (24+i)%60),
			"Global_active_power":   4.216 + float64(i)/100,
			"Global_reactive_power": 0.418,
			"Voltage":               234.84,
			"Global_intensity":      18.4,
			"Sub_metering_1":        0,
			"Sub_metering_2":        1,
			"Sub_metering_3":        17,
		}
	}
	data, _ := json.Marshal(map[string]interface{}{
		"message":         "Dataset fetched successfully",
		"rows_in_preview": n,
		"rows_in_total":   2075259,
		"preview_data":    rows,
	})
	return string(data)
}
