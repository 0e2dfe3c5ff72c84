package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the dashboard key bindings.
type keyMap struct {
	LineChart     key.Binding
	SeasonalChart key.Binding
	ARIMA         key.Binding
	SARIMA        key.Binding
	NextSeries    key.Binding
	PrevSeries    key.Binding
	NextComponent key.Binding
	PrevComponent key.Binding
	MoreRows      key.Binding
	FewerRows     key.Binding
	Refresh       key.Binding
	Export        key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		LineChart: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "line chart"),
		),
		SeasonalChart: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "seasonal"),
		),
		ARIMA: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "arima"),
		),
		SARIMA: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sarima"),
		),
		NextSeries: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next series"),
		),
		PrevSeries: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev series"),
		),
		NextComponent: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "next component"),
		),
		PrevComponent: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "prev component"),
		),
		MoreRows: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more rows"),
		),
		FewerRows: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer rows"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LineChart, k.SeasonalChart, k.ARIMA, k.SARIMA, k.NextSeries, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LineChart, k.SeasonalChart, k.NextComponent, k.PrevComponent},
		{k.ARIMA, k.SARIMA, k.NextSeries, k.PrevSeries},
		{k.MoreRows, k.FewerRows, k.Refresh, k.Export},
		{k.Help, k.Quit},
	}
}
