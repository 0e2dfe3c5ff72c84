package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/npratt/powerdash/internal/dashboard"
)

// isTerminal returns true if both stdout and stdin are TTYs.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// terminalSize returns the current terminal width and height.
// Returns 0, 0 if the terminal size cannot be determined.
func terminalSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return width, height
}

// terminalTooSmall returns true if the terminal is below the minimum size.
func terminalTooSmall() bool {
	width, height := terminalSize()
	return width < minWidth || height < minHeight
}

// runSimple provides plain output for non-interactive environments.
// It loads every resource once, then prints the snapshot to w.
// An interrupt stops loading and prints whatever has arrived.
func (t *TUI) runSimple(ctx context.Context, w io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dashboard.RunAll(ctx, t.ctrl, t.ctrl.Init(ctx)); err != nil {
		t.logger.Warn("loading interrupted", "error", err)
	}

	_, err := fmt.Fprint(w, FormatSnapshot(t.ctrl.Snapshot()))
	return err
}
