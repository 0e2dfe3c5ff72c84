package forecast

import (
	"context"
	"sync"
)

// DynamicPreviewFunc is a callback for dynamic Preview responses.
type DynamicPreviewFunc func(ctx context.Context, rowLimit int) (*Preview, error, bool)

// MockSource is a mock implementation of Source for testing.
// It records all calls and returns configured responses.
type MockSource struct {
	mu sync.Mutex

	// Configured responses
	DataInfoResponse      *DataInfo
	DataInfoError         error
	EnergyResponse        *RawSeries
	EnergyError           error
	ForecastResponses     map[Model]*ForecastBundle
	ForecastErrors        map[Model]error
	DecompositionResponse *DecompositionBundle
	DecompositionError    error
	PreviewError          error

	// PreviewRows is the full dataset; Preview returns its first rowLimit rows.
	PreviewRows []Row

	// Dynamic response callbacks
	DynamicPreview DynamicPreviewFunc

	// Call tracking
	DataInfoCalls      int
	EnergyCalls        int
	ForecastCalls      []Model
	DecompositionCalls int
	PreviewCalls       []int
}

// NewMockSource creates a new MockSource with initialized maps.
func NewMockSource() *MockSource {
	return &MockSource{
		ForecastResponses: make(map[Model]*ForecastBundle),
		ForecastErrors:    make(map[Model]error),
	}
}

// DataInfo implements InfoReader.
func (m *MockSource) DataInfo(ctx context.Context) (*DataInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DataInfoCalls++
	if m.DataInfoError != nil {
		return nil, m.DataInfoError
	}
	return m.DataInfoResponse, nil
}

// Preview implements InfoReader.
func (m *MockSource) Preview(ctx context.Context, rowLimit int) (*Preview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PreviewCalls = append(m.PreviewCalls, rowLimit)

	if m.DynamicPreview != nil {
		if p, err, handled := m.DynamicPreview(ctx, rowLimit); handled {
			return p, err
		}
	}

	if m.PreviewError != nil {
		return nil, m.PreviewError
	}

	n := min(rowLimit, len(m.PreviewRows))
	rows := make([]Row, n)
	copy(rows, m.PreviewRows[:n])
	return &Preview{RowsInPreview: n, RowsInTotal: len(m.PreviewRows), Rows: rows}, nil
}

// Energy implements SeriesReader.
func (m *MockSource) Energy(ctx context.Context) (*RawSeries, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EnergyCalls++
	if m.EnergyError != nil {
		return nil, m.EnergyError
	}
	return m.EnergyResponse, nil
}

// Forecast implements SeriesReader.
func (m *MockSource) Forecast(ctx context.Context, model Model) (*ForecastBundle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ForecastCalls = append(m.ForecastCalls, model)
	if err, ok := m.ForecastErrors[model]; ok && err != nil {
		return nil, err
	}
	return m.ForecastResponses[model], nil
}

// Decomposition implements SeriesReader.
func (m *MockSource) Decomposition(ctx context.Context) (*DecompositionBundle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DecompositionCalls++
	if m.DecompositionError != nil {
		return nil, m.DecompositionError
	}
	return m.DecompositionResponse, nil
}

// PreviewCallCount returns the number of Preview calls made so far.
func (m *MockSource) PreviewCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.PreviewCalls)
}

var _ Source = (*MockSource)(nil)
var _ Source = (*Client)(nil)
