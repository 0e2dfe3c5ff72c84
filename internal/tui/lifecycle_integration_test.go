package tui

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/npratt/powerdash/internal/dashboard"
	"github.com/npratt/powerdash/internal/forecast"
)

// TestTUILifecycleSmoke verifies the full bubbletea program lifecycle:
// start, load every resource, handle keyboard input, and quit cleanly.
// This test uses teatest to run the TUI headlessly without a real TTY.
func TestTUILifecycleSmoke(t *testing.T) {
	src := fixtureSource(t)
	ctrl := dashboard.New(src, dashboard.WithLogger(discardLogger))

	var quitCalled bool
	m := newModel(context.Background(), ctrl, nil, 0, func() { quitCalled = true })

	tm := teatest.NewTestModel(
		t,
		m,
		teatest.WithInitialTermSize(100, 40),
	)

	// Wait for the forecasts to load and the dashboard to render
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Power Consumption Data"))
	}, teatest.WithDuration(5*time.Second))

	// Switch to SARIMA and step its series
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})

	// Grow the table
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})

	// Send quit key to trigger clean exit
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	final, ok := fm.(model)
	if !ok {
		t.Fatalf("final model has type %T", fm)
	}

	if !quitCalled {
		t.Error("quit callback was not invoked")
	}
	sel := final.ctrl.Selection()
	if sel.Model != forecast.ModelSARIMA {
		t.Errorf("model = %s, want sarima", sel.Model)
	}
	if sel.ActiveSeries != forecast.SegmentForecast {
		t.Errorf("active series = %q, want forecast", sel.ActiveSeries)
	}
	if final.ctrl.Table().RowLimit != 10 {
		t.Errorf("row limit = %d, want 10", final.ctrl.Table().RowLimit)
	}
	if len(src.ForecastCalls) != 2 {
		t.Errorf("forecast calls = %d, want 2", len(src.ForecastCalls))
	}
}

// TestTUILifecycleCtrlCQuit verifies that ctrl+c also triggers quit.
func TestTUILifecycleCtrlCQuit(t *testing.T) {
	ctrl := dashboard.New(fixtureSource(t), dashboard.WithLogger(discardLogger))

	var quitCalled bool
	m := newModel(context.Background(), ctrl, nil, 0, func() { quitCalled = true })

	tm := teatest.NewTestModel(
		t,
		m,
		teatest.WithInitialTermSize(100, 40),
	)

	// Wait for Init
	time.Sleep(50 * time.Millisecond)

	// Send ctrl+c to quit
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	if fm == nil {
		t.Fatal("FinalModel returned nil")
	}
	if !quitCalled {
		t.Error("quit callback was not invoked")
	}
}
