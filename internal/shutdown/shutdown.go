// Package shutdown runs blocking commands until they return or the process
// receives SIGINT or SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Signals trigger a graceful shutdown.
var Signals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// Run calls run with a context that is cancelled when a shutdown signal
// arrives. After a signal, cleanup (if non-nil) is called with a context
// bounded by timeout, and Run waits at most that long for run to return.
// A run that ends with context.Canceled after a signal is a clean exit.
func Run(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	run func(ctx context.Context) error,
	cleanup func(ctx context.Context) error,
) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, Signals...)
	defer signal.Stop(sigCh)

	return runUntil(ctx, logger, timeout, sigCh, run, cleanup)
}

func runUntil(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	sigCh <-chan os.Signal,
	run func(ctx context.Context) error,
	cleanup func(ctx context.Context) error,
) error {
	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	runDone := make(chan error, 1)
	go func() {
		runDone <- run(runCtx)
	}()

	select {
	case err := <-runDone:
		return err

	case sig := <-sigCh:
		logger.Info("received signal, initiating shutdown", "signal", sig)
		runCancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			if err := cleanup(shutdownCtx); err != nil {
				logger.Error("shutdown error", "error", err)
			}
		}

		select {
		case err := <-runDone:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		case <-shutdownCtx.Done():
			logger.Warn("shutdown timeout exceeded", "timeout", timeout)
		}

		logger.Info("shutdown complete")
		return nil
	}
}
