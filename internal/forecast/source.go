package forecast

import "context"

// Endpoint paths served by the Forecast Service.
const (
	EndpointDataInfo      = "/data-info"
	EndpointFetchDataset  = "/fetch-dataset"
	EndpointPlotEnergy    = "/plot-energy"
	EndpointARIMA         = "/arima-forecast"
	EndpointSARIMA        = "/sarima-forecast"
	EndpointDecomposition = "/seasonal-decomposition"
)

// ModelEndpoint returns the endpoint serving the given model's bundle.
func ModelEndpoint(m Model) string {
	if m == ModelSARIMA {
		return EndpointSARIMA
	}
	return EndpointARIMA
}

// InfoReader reads dataset-level descriptions.
type InfoReader interface {
	// DataInfo retrieves column statistics and the dataframe info dump.
	DataInfo(ctx context.Context) (*DataInfo, error)

	// Preview retrieves the first rowLimit records of the dataset.
	Preview(ctx context.Context, rowLimit int) (*Preview, error)
}

// SeriesReader reads pre-computed time series.
type SeriesReader interface {
	// Energy retrieves the daily power consumption series.
	Energy(ctx context.Context) (*RawSeries, error)

	// Forecast retrieves the bundle for one model.
	Forecast(ctx context.Context, model Model) (*ForecastBundle, error)

	// Decomposition retrieves the seasonal decomposition.
	Decomposition(ctx context.Context) (*DecompositionBundle, error)
}

// Source combines every read the dashboard performs.
// All endpoints are read-only.
type Source interface {
	InfoReader
	SeriesReader
}
