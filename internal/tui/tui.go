// Package tui provides a terminal dashboard for the Forecast Service using bubbletea.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/powerdash/internal/dashboard"
	"github.com/npratt/powerdash/internal/export"
)

// Exporter writes the displayed panels to files.
type Exporter interface {
	Write(in export.Inputs) ([]string, error)
}

// TUI is the terminal dashboard.
type TUI struct {
	ctrl        *dashboard.Controller
	exporter    Exporter
	autoRefresh time.Duration
	onQuit      func()
	logger      *slog.Logger
}

// Option configures the TUI.
type Option func(*TUI)

// New creates a new TUI driving the given controller.
func New(ctrl *dashboard.Controller, opts ...Option) *TUI {
	t := &TUI{
		ctrl:   ctrl,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithExporter enables the export key.
func WithExporter(e Exporter) Option {
	return func(t *TUI) {
		t.exporter = e
	}
}

// WithAutoRefresh reloads every resource on the given interval. Zero disables it.
func WithAutoRefresh(d time.Duration) Option {
	return func(t *TUI) {
		t.autoRefresh = d
	}
}

// WithOnQuit sets the callback invoked when the user quits.
func WithOnQuit(fn func()) Option {
	return func(t *TUI) {
		t.onQuit = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *TUI) {
		if l != nil {
			t.logger = l
		}
	}
}

// Run starts the TUI and blocks until it exits. Without a usable terminal
// it loads everything once and prints a plain snapshot instead.
func (t *TUI) Run(ctx context.Context) error {
	if !isTerminal() || terminalTooSmall() {
		t.logger.Info("no interactive terminal, printing snapshot")
		return t.runSimple(ctx, os.Stdout)
	}

	m := newModel(ctx, t.ctrl, t.exporter, t.autoRefresh, t.onQuit)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
