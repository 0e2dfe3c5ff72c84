package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/npratt/powerdash/internal/config"
	"github.com/npratt/powerdash/internal/dashboard"
	"github.com/npratt/powerdash/internal/export"
	"github.com/npratt/powerdash/internal/forecast"
	"github.com/npratt/powerdash/internal/selection"
	"github.com/npratt/powerdash/internal/shutdown"
	"github.com/npratt/powerdash/internal/tui"
)

var version = "dev"

// shutdownTimeout bounds the wait for in-flight requests after a signal.
const shutdownTimeout = 5 * time.Second

// cli holds what every command shares.
type cli struct {
	v        *viper.Viper
	logLevel *slog.LevelVar
	logger   *slog.Logger
}

func newCLI(stderr io.Writer) *cli {
	logLevel := &slog.LevelVar{}
	return &cli{
		v:        newViper(),
		logLevel: logLevel,
		logger:   newJSONLogger(stderr, logLevel),
	}
}

// loadConfig loads the layered config and raises the log level when
// --verbose is set.
func (c *cli) loadConfig() (*config.Config, error) {
	if c.v.GetBool(FlagVerbose) {
		c.logLevel.Set(slog.LevelDebug)
		c.logger.Debug("verbose logging enabled")
	}

	cfg, err := config.LoadConfig(c.v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newController wires the Forecast Service client into a dashboard controller.
func newController(cfg *config.Config, logger *slog.Logger) *dashboard.Controller {
	client := forecast.NewClient(cfg.Service.BaseURL,
		forecast.WithTimeout(cfg.Service.Timeout),
		forecast.WithLogger(logger),
	)
	return dashboard.New(client,
		dashboard.WithLogger(logger),
		dashboard.WithRowLimit(cfg.Dashboard.RowLimit),
		dashboard.WithSelection(cfg.Selection()),
		dashboard.WithRequestTimeout(cfg.Service.Timeout),
	)
}

func newExporter(cfg *config.Config, logger *slog.Logger) (*export.Exporter, error) {
	formats, err := export.ParseFormats(cfg.Export.Formats)
	if err != nil {
		return nil, err
	}
	opts := export.Options{Width: cfg.Export.Width, Height: cfg.Export.Height}
	return export.NewExporter(cfg.Paths.ExportDir, formats, opts, logger), nil
}

// loadAll issues every resource and waits for all of them, or for a
// shutdown signal. Failed resources are reported by the controller, not
// returned as errors.
func loadAll(ctx context.Context, ctrl *dashboard.Controller, logger *slog.Logger) error {
	return shutdown.Run(ctx, logger, shutdownTimeout,
		func(runCtx context.Context) error {
			return dashboard.RunAll(runCtx, ctrl, ctrl.Init(runCtx))
		},
		nil,
	)
}

func (c *cli) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "powerdash",
		Short: "Electric power consumption and forecast dashboard",
		Long: `powerdash is a terminal dashboard for a household electric power
consumption dataset and the ARIMA/SARIMA forecasts computed for it by a
Forecast Service.

It loads dataset statistics, the daily consumption series, its seasonal
decomposition, both forecast models, and a preview of the raw records,
and keeps each panel usable when other resources fail.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			bindFlags(c.v, cmd.Flags())
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path (default: .powerdash/config.yaml)")
	rootCmd.PersistentFlags().String(FlagBaseURL, forecast.DefaultBaseURL, "Forecast Service base URL")
	rootCmd.PersistentFlags().Duration(FlagTimeout, forecast.DefaultTimeout, "Per-request timeout")
	rootCmd.PersistentFlags().String(FlagLogFile, "", "TUI debug log path")

	rootCmd.AddCommand(
		c.versionCommand(),
		c.dashboardCommand(),
		c.summaryCommand(),
		c.exportCommand(),
	)
	return rootCmd
}

// addSelectionFlags registers the flags choosing the initial panels.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().Int(FlagRows, dashboard.DefaultRowLimit, fmt.Sprintf("Table preview rows %v", dashboard.RowLimits))
	cmd.Flags().String(FlagModel, string(forecast.ModelARIMA), "Forecast model (arima/sarima)")
	cmd.Flags().String(FlagChart, string(selection.ChartLine), "Consumption chart (line/seasonal)")
	cmd.Flags().String(FlagComponent, forecast.ComponentTrend, "Decomposition component (trend/seasonal/residual)")
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "powerdash %s\n", version)
		},
	}
}

func (c *cli) dashboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Open the interactive terminal dashboard.

The TUI is enabled automatically when stdout is a terminal. Without a
terminal, or with --tui=false, every resource is loaded once and a plain
snapshot is printed instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			// Explicit flag > auto-detect from TTY
			tuiEnabled := c.v.GetBool(FlagTUI)
			if !cmd.Flags().Changed(FlagTUI) {
				tuiEnabled = term.IsTerminal(int(os.Stdout.Fd()))
			}

			if !tuiEnabled {
				ctrl := newController(cfg, c.logger)
				if err := loadAll(cmd.Context(), ctrl, c.logger); err != nil {
					c.logger.Warn("load interrupted", "error", err)
				}
				_, err := fmt.Fprint(cmd.OutOrStdout(), tui.FormatSnapshot(ctrl.Snapshot()))
				return err
			}

			// Redirect logging to a file before the TUI owns the terminal
			logResult, err := SetupTUILogger(cfg.Paths.Log, c.logLevel, cfg.LogRotation)
			if err != nil {
				return err
			}
			defer func() { _ = logResult.Close() }()
			logger := logResult.Logger
			slog.SetDefault(logger)

			exporter, err := newExporter(cfg, logger)
			if err != nil {
				return err
			}

			logger.Info("powerdash starting",
				"version", version,
				"base_url", cfg.Service.BaseURL,
				"log_file", logResult.FilePath,
				"auto_refresh", cfg.Dashboard.AutoRefreshInterval,
			)

			app := tui.New(newController(cfg, logger),
				tui.WithExporter(exporter),
				tui.WithAutoRefresh(cfg.Dashboard.AutoRefreshInterval),
				tui.WithLogger(logger),
				tui.WithOnQuit(func() { logger.Info("dashboard closed") }),
			)
			return shutdown.Run(cmd.Context(), logger, shutdownTimeout, app.Run, nil)
		},
	}

	cmd.Flags().Bool(FlagTUI, false, "Enable terminal UI (default: auto-detect)")
	cmd.Flags().Duration(FlagAutoRefresh, 0, "Reload every resource at this interval (0 = off)")
	addSelectionFlags(cmd)
	return cmd
}

func (c *cli) summaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Load every resource once and print the dashboard contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			ctrl := newController(cfg, c.logger)
			if err := loadAll(cmd.Context(), ctrl, c.logger); err != nil {
				c.logger.Warn("load interrupted", "error", err)
			}
			snap := ctrl.Snapshot()

			if c.v.GetBool(FlagJSON) {
				data, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal summary: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), tui.FormatSnapshot(snap))
			return err
		},
	}

	cmd.Flags().Bool(FlagJSON, false, "Output summary as JSON")
	addSelectionFlags(cmd)
	return cmd
}

func (c *cli) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dashboard charts and table preview to files",
		Long: `Load every resource once and write the consumption chart, the forecast
chart, and the table preview to the output directory.

Charts are written as interactive HTML and static PNG; the preview as XLSX.
Panels without data are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			exporter, err := newExporter(cfg, c.logger)
			if err != nil {
				return err
			}

			ctrl := newController(cfg, c.logger)
			if err := loadAll(cmd.Context(), ctrl, c.logger); err != nil {
				return fmt.Errorf("load dashboard: %w", err)
			}
			for _, r := range ctrl.Snapshot().Failed() {
				c.logger.Warn("resource failed", "resource", r.Name, "error", r.Error)
			}

			paths, err := exporter.Write(export.Inputs{
				Consumption: ctrl.View(),
				Forecast:    ctrl.ForecastView(),
				Rows:        ctrl.Table().Rows,
			})
			for _, p := range paths {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
			}
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return errors.New("nothing to export")
			}
			return nil
		},
	}

	cmd.Flags().StringSlice(FlagFormat, []string{string(export.FormatHTML), string(export.FormatPNG), string(export.FormatXLSX)}, "Export formats (html,png,xlsx)")
	cmd.Flags().String(FlagOut, "exports", "Output directory")
	addSelectionFlags(cmd)
	return cmd
}

func main() {
	c := newCLI(os.Stderr)
	if err := c.rootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
