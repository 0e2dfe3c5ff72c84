package testutil

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/npratt/powerdash/internal/forecast"
)

// FakeService is an httptest-backed Forecast Service.
// Every endpoint serves a fixture by default; responses, status codes and
// delays can be changed per endpoint while the server runs.
type FakeService struct {
	server *httptest.Server

	mu           sync.Mutex
	bodies       map[string]string
	status       map[string]int
	delays       map[string]time.Duration
	previewDelay func(rowLimit int) time.Duration
	calls        map[string]int
	rowLimits    []int
}

// NewFakeService starts a FakeService that is closed when the test ends.
func NewFakeService(t *testing.T) *FakeService {
	t.Helper()
	s := &FakeService{
		bodies: map[string]string{
			forecast.EndpointDataInfo:      DataInfoJSON,
			forecast.EndpointPlotEnergy:    EnergyJSON,
			forecast.EndpointARIMA:         ARIMAJSON,
			forecast.EndpointSARIMA:        SARIMAJSON,
			forecast.EndpointDecomposition: DecompositionJSON,
		},
		status: make(map[string]int),
		delays: make(map[string]time.Duration),
		calls:  make(map[string]int),
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)
	return s
}

// URL returns the base URL of the service.
func (s *FakeService) URL() string {
	return s.server.URL
}

// Close stops the server. Later requests fail with connection errors.
func (s *FakeService) Close() {
	s.server.Close()
}

// SetResponse overrides the body served for endpoint.
// For the preview endpoint this replaces the generated rows.
func (s *FakeService) SetResponse(endpoint, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies[endpoint] = body
}

// SetStatus makes endpoint answer with code and a short error body.
func (s *FakeService) SetStatus(endpoint string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[endpoint] = code
}

// SetDelay delays every response from endpoint.
func (s *FakeService) SetDelay(endpoint string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[endpoint] = d
}

// SetPreviewDelay delays preview responses by row limit, which lets tests
// force out-of-order completions.
func (s *FakeService) SetPreviewDelay(fn func(rowLimit int) time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.previewDelay = fn
}

// Calls returns how many requests endpoint has received.
func (s *FakeService) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

// RowLimits returns the row_limit values received, in arrival order.
func (s *FakeService) RowLimits() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.rowLimits))
	copy(out, s.rowLimits)
	return out
}

func (s *FakeService) handle(w http.ResponseWriter, r *http.Request) {
	endpoint := r.URL.Path

	s.mu.Lock()
	s.calls[endpoint]++
	body, hasBody := s.bodies[endpoint]
	code := s.status[endpoint]
	delay := s.delays[endpoint]

	rowLimit := 0
	if endpoint == forecast.EndpointFetchDataset {
		rowLimit, _ = strconv.Atoi(r.URL.Query().Get("row_limit"))
		s.rowLimits = append(s.rowLimits, rowLimit)
		if s.previewDelay != nil {
			delay += s.previewDelay(rowLimit)
		}
		if !hasBody {
			body, hasBody = PreviewJSON(rowLimit), true
		}
	}
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if !hasBody {
		http.NotFound(w, r)
		return
	}
	if code != 0 && (code < 200 || code > 299) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"detail": "` + http.StatusText(code) + `"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}
