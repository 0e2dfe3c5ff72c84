package config

import (
	"strings"
	"testing"
	"time"

	"github.com/npratt/powerdash/internal/forecast"
	"github.com/npratt/powerdash/internal/selection"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg == nil {
		t.Fatal("Default() returned nil")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() should validate: %v", err)
	}
}

func TestDefaultServiceConfig(t *testing.T) {
	cfg := Default()

	if cfg.Service.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("Service.BaseURL = %q", cfg.Service.BaseURL)
	}
	if cfg.Service.Timeout != 30*time.Second {
		t.Errorf("Service.Timeout = %v, want %v", cfg.Service.Timeout, 30*time.Second)
	}
}

func TestDefaultDashboardConfig(t *testing.T) {
	cfg := Default()

	if cfg.Dashboard.RowLimit != 5 {
		t.Errorf("Dashboard.RowLimit = %d, want 5", cfg.Dashboard.RowLimit)
	}
	if cfg.Dashboard.AutoRefreshInterval != 0 {
		t.Errorf("Dashboard.AutoRefreshInterval = %v, want disabled", cfg.Dashboard.AutoRefreshInterval)
	}
	if got := cfg.Selection(); got != selection.Default() {
		t.Errorf("Selection() = %+v, want %+v", got, selection.Default())
	}
}

func TestDefaultPathsConfig(t *testing.T) {
	cfg := Default()

	if cfg.Paths.Log != ".powerdash/powerdash-debug.log" {
		t.Errorf("Paths.Log = %q", cfg.Paths.Log)
	}
	if cfg.Paths.ExportDir != "exports" {
		t.Errorf("Paths.ExportDir = %q", cfg.Paths.ExportDir)
	}
}

func TestDefaultExportConfig(t *testing.T) {
	cfg := Default()

	if len(cfg.Export.Formats) != 3 {
		t.Errorf("Export.Formats = %v, want all three", cfg.Export.Formats)
	}
	if cfg.Export.Width <= 0 || cfg.Export.Height <= 0 {
		t.Errorf("Export size = %dx%d", cfg.Export.Width, cfg.Export.Height)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"no scheme", func(c *Config) { c.Service.BaseURL = "127.0.0.1:8000" }, "service.base_url"},
		{"ftp scheme", func(c *Config) { c.Service.BaseURL = "ftp://host" }, "service.base_url"},
		{"zero timeout", func(c *Config) { c.Service.Timeout = 0 }, "service.timeout"},
		{"row limit", func(c *Config) { c.Dashboard.RowLimit = 25 }, "dashboard.row_limit"},
		{"chart type", func(c *Config) { c.Dashboard.ChartType = "bar" }, "chart type"},
		{"model", func(c *Config) { c.Dashboard.Model = "prophet" }, "model"},
		{"component", func(c *Config) { c.Dashboard.Component = "noise" }, "component"},
		{"refresh too fast", func(c *Config) { c.Dashboard.AutoRefreshInterval = 100 * time.Millisecond }, "auto_refresh_interval"},
		{"export format", func(c *Config) { c.Export.Formats = []string{"pdf"} }, "export.formats"},
		{"export size", func(c *Config) { c.Export.Width = 0 }, "width and height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Service.Timeout = -time.Second
	cfg.Dashboard.RowLimit = 3

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "service.timeout") || !strings.Contains(err.Error(), "dashboard.row_limit") {
		t.Errorf("expected both problems reported, got %q", err)
	}
}

func TestSelection(t *testing.T) {
	cfg := Default()
	cfg.Dashboard.ChartType = "seasonal"
	cfg.Dashboard.Model = "sarima"
	cfg.Dashboard.Component = "residual"

	got := cfg.Selection()
	want := selection.State{ChartType: selection.ChartSeasonal, Model: forecast.ModelSARIMA, Component: forecast.ComponentResidual}
	if got != want {
		t.Errorf("Selection() = %+v, want %+v", got, want)
	}
}
