// Package config provides configuration types and defaults for powerdash.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/npratt/powerdash/internal/dashboard"
	"github.com/npratt/powerdash/internal/export"
	"github.com/npratt/powerdash/internal/forecast"
	"github.com/npratt/powerdash/internal/selection"
)

// Config holds all configuration for powerdash.
type Config struct {
	Service     ServiceConfig     `yaml:"service" mapstructure:"service"`
	Dashboard   DashboardConfig   `yaml:"dashboard" mapstructure:"dashboard"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
	Export      ExportConfig      `yaml:"export" mapstructure:"export"`
}

// ServiceConfig locates the Forecast Service.
type ServiceConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"` // Per-request timeout
}

// DashboardConfig holds the initial dashboard selection.
type DashboardConfig struct {
	RowLimit            int           `yaml:"row_limit" mapstructure:"row_limit"`                         // One of 5, 10, 15, 20, 50, 100, 200
	ChartType           string        `yaml:"chart_type" mapstructure:"chart_type"`                       // "line" or "seasonal"
	Model               string        `yaml:"model" mapstructure:"model"`                                 // "arima" or "sarima"
	Component           string        `yaml:"component" mapstructure:"component"`                         // "trend", "seasonal" or "residual"
	AutoRefreshInterval time.Duration `yaml:"auto_refresh_interval" mapstructure:"auto_refresh_interval"` // 0 = disabled, min 1s
}

// PathsConfig holds file paths for logs and exports.
type PathsConfig struct {
	Log       string `yaml:"log" mapstructure:"log"`
	ExportDir string `yaml:"export_dir" mapstructure:"export_dir"`
}

// LogRotationConfig holds settings for log file rotation.
// Used for the TUI debug log (lumberjack-based automatic rotation).
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// ExportConfig holds settings for chart and table export.
type ExportConfig struct {
	Formats []string `yaml:"formats" mapstructure:"formats"` // Any of html, png, xlsx
	Width   int      `yaml:"width" mapstructure:"width"`     // Chart width in pixels
	Height  int      `yaml:"height" mapstructure:"height"`   // Chart height in pixels
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL: forecast.DefaultBaseURL,
			Timeout: forecast.DefaultTimeout,
		},
		Dashboard: DashboardConfig{
			RowLimit:            dashboard.DefaultRowLimit,
			ChartType:           string(selection.ChartLine),
			Model:               string(forecast.ModelARIMA),
			Component:           forecast.ComponentTrend,
			AutoRefreshInterval: 0,
		},
		Paths: PathsConfig{
			Log:       ".powerdash/powerdash-debug.log",
			ExportDir: "exports",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Export: ExportConfig{
			Formats: []string{string(export.FormatHTML), string(export.FormatPNG), string(export.FormatXLSX)},
			Width:   1024,
			Height:  512,
		},
	}
}

// Selection returns the configured initial selection.
func (c *Config) Selection() selection.State {
	return selection.State{
		ChartType: selection.ChartType(c.Dashboard.ChartType),
		Model:     forecast.Model(c.Dashboard.Model),
		Component: c.Dashboard.Component,
	}
}

// Validate checks that every setting is usable. All problems are reported.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.Service.BaseURL)
	if err != nil {
		errs = append(errs, fmt.Errorf("service.base_url: %w", err))
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("service.base_url: %q must be an http(s) URL with a host", c.Service.BaseURL))
	}
	if c.Service.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("service.timeout: must be positive, got %s", c.Service.Timeout))
	}

	if !dashboard.ValidRowLimit(c.Dashboard.RowLimit) {
		errs = append(errs, fmt.Errorf("dashboard.row_limit: %d not one of %v", c.Dashboard.RowLimit, dashboard.RowLimits))
	}
	if err := c.Selection().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("dashboard: %w", err))
	}
	if d := c.Dashboard.AutoRefreshInterval; d != 0 && d < time.Second {
		errs = append(errs, fmt.Errorf("dashboard.auto_refresh_interval: %s is below the 1s minimum", d))
	}

	if _, err := export.ParseFormats(c.Export.Formats); err != nil {
		errs = append(errs, fmt.Errorf("export.formats: %w", err))
	}
	if c.Export.Width <= 0 || c.Export.Height <= 0 {
		errs = append(errs, fmt.Errorf("export: width and height must be positive, got %dx%d", c.Export.Width, c.Export.Height))
	}

	return errors.Join(errs...)
}
