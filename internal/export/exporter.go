package export

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/npratt/powerdash/internal/chart"
	"github.com/npratt/powerdash/internal/forecast"
)

// Inputs are the dashboard panels to export. Nil views are skipped.
type Inputs struct {
	Consumption *chart.View
	Forecast    *chart.View
	Rows        []forecast.Row
}

// Exporter writes Inputs into a directory in a fixed set of formats.
type Exporter struct {
	dir     string
	formats []Format
	opts    Options
	logger  *slog.Logger
}

// NewExporter creates an Exporter writing to dir.
func NewExporter(dir string, formats []Format, o Options, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		dir:     dir,
		formats: formats,
		opts:    o,
		logger:  logger.With("component", "export"),
	}
}

// Write exports every requested panel and returns the paths written.
// Panels without data are skipped; other failures are collected and
// returned together after all files have been attempted.
func (e *Exporter) Write(in Inputs) ([]string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	var written []string
	var errs []error

	charts := []struct {
		name string
		view *chart.View
	}{
		{"consumption", in.Consumption},
		{"forecast", in.Forecast},
	}
	for _, c := range charts {
		for _, format := range []Format{FormatHTML, FormatPNG} {
			if !slices.Contains(e.formats, format) {
				continue
			}
			path := filepath.Join(e.dir, c.name+"."+string(format))
			err := writeFile(path, func(f *os.File) error {
				o := e.opts
				if format == FormatHTML {
					return HTML(f, c.view, o)
				}
				return PNG(f, c.view, o)
			})
			switch {
			case errors.Is(err, ErrNoData):
				e.logger.Warn("skipping export with no data", "panel", c.name, "format", format)
			case err != nil:
				errs = append(errs, fmt.Errorf("export %s: %w", path, err))
			default:
				e.logger.Info("exported chart", "path", path)
				written = append(written, path)
			}
		}
	}

	if slices.Contains(e.formats, FormatXLSX) {
		path := filepath.Join(e.dir, "preview.xlsx")
		if err := writeFile(path, func(f *os.File) error { return XLSX(f, in.Rows) }); err != nil {
			errs = append(errs, fmt.Errorf("export %s: %w", path, err))
		} else {
			e.logger.Info("exported table preview", "path", path, "rows", len(in.Rows))
			written = append(written, path)
		}
	}

	return written, errors.Join(errs...)
}

// writeFile creates path, runs fn, and removes the file again if fn fails.
func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
