package forecast

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, WithTimeout(2*time.Second))
}

func TestClient_Forecast(t *testing.T) {
	var gotPath string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"historical": {"x": ["a"], "y": [1]}, "forecast": {"x": ["b"], "y": [2]}}`))
	})

	b, err := c.Forecast(context.Background(), ModelSARIMA)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if gotPath != EndpointSARIMA {
		t.Errorf("path = %q, want %q", gotPath, EndpointSARIMA)
	}
	if b.Model != ModelSARIMA || len(b.PresentKeys()) != 2 {
		t.Errorf("unexpected bundle %+v", b)
	}
}

func TestClient_Forecast_UnknownModel(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	if _, err := c.Forecast(context.Background(), Model("prophet")); err == nil {
		t.Fatal("expected error for unknown model")
	}
}

func TestClient_Preview_SendsRowLimit(t *testing.T) {
	var gotLimit string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("row_limit")
		_, _ = w.Write([]byte(`{"preview_data": []}`))
	})

	if _, err := c.Preview(context.Background(), 50); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if gotLimit != "50" {
		t.Errorf("row_limit = %q, want 50", gotLimit)
	}
}

func TestClient_StatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "model failed"}`))
	})

	_, err := c.Energy(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", se.StatusCode)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should mention status: %q", err.Error())
	}
}

func TestClient_ParseError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"x": ["a", "b"], "trend": [1]`))
	})

	_, err := c.Decomposition(context.Background())
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
	if pe.Endpoint != EndpointDecomposition {
		t.Errorf("Endpoint = %q", pe.Endpoint)
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, WithTimeout(time.Second))
	_, err := c.DataInfo(context.Background())
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
}

func TestClient_DataInfo(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointDataInfo {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"description": {"Date": {"count": 3}}, "info": "total 9 columns"}`))
	})

	info, err := c.DataInfo(context.Background())
	if err != nil {
		t.Fatalf("DataInfo: %v", err)
	}
	if info.Info != "total 9 columns" {
		t.Errorf("Info = %q", info.Info)
	}
}

func TestTruncateBody(t *testing.T) {
	if got := truncateBody([]byte("short"), 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncateBody([]byte("0123456789abc"), 10); got != "0123456789..." {
		t.Errorf("got %q", got)
	}
}
