package tui

import (
	"context"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/powerdash/internal/dashboard"
	"github.com/npratt/powerdash/internal/forecast"
	"github.com/npratt/powerdash/internal/testutil"
)

var discardLogger = slog.New(slog.DiscardHandler)

// fixtureSource returns a mock serving the sample service responses.
func fixtureSource(t *testing.T) *forecast.MockSource {
	t.Helper()
	src := forecast.NewMockSource()

	var err error
	if src.DataInfoResponse, err = forecast.DecodeDataInfo([]byte(testutil.DataInfoJSON)); err != nil {
		t.Fatal(err)
	}
	if src.EnergyResponse, err = forecast.DecodeSeries([]byte(testutil.EnergyJSON)); err != nil {
		t.Fatal(err)
	}
	arima, err := forecast.DecodeForecastBundle(forecast.ModelARIMA, []byte(testutil.ARIMAJSON))
	if err != nil {
		t.Fatal(err)
	}
	sarima, err := forecast.DecodeForecastBundle(forecast.ModelSARIMA, []byte(testutil.SARIMAJSON))
	if err != nil {
		t.Fatal(err)
	}
	src.ForecastResponses[forecast.ModelARIMA] = arima
	src.ForecastResponses[forecast.ModelSARIMA] = sarima
	if src.DecompositionResponse, err = forecast.DecodeDecomposition([]byte(testutil.DecompositionJSON)); err != nil {
		t.Fatal(err)
	}
	preview, err := forecast.DecodePreview([]byte(testutil.PreviewJSON(200)))
	if err != nil {
		t.Fatal(err)
	}
	src.PreviewRows = preview.Rows
	return src
}

// newTestModel builds a sized model over src with nothing loaded yet.
func newTestModel(t *testing.T, src forecast.Source) model {
	t.Helper()
	ctrl := dashboard.New(src, dashboard.WithLogger(discardLogger))
	m := newModel(context.Background(), ctrl, nil, 0, nil)
	return step(m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

// loadModel issues every resource and applies the completions in order.
func loadModel(t *testing.T, m model) model {
	t.Helper()
	for _, task := range m.ctrl.Init(context.Background()) {
		m = step(m, completionMsg{comp: task()})
	}
	return m
}

func step(m model, msg tea.Msg) model {
	nm, _ := m.Update(msg)
	return nm.(model)
}

// keyMsg builds the key message bubbletea sends for a key name.
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func press(m model, key string) (model, tea.Cmd) {
	nm, cmd := m.Update(keyMsg(key))
	return nm.(model), cmd
}

// drain runs cmd and feeds completion and export results back into m.
// Other messages are dropped.
func drain(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
	case completionMsg, exportResultMsg:
		m = step(m, msg)
	}
	return m
}
