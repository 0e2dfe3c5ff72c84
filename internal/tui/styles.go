package tui

import "github.com/charmbracelet/lipgloss"

// styles contains all lipgloss styles used by the TUI.
var styles = struct {
	// Layout styles
	Container lipgloss.Style
	Panel     lipgloss.Style
	Divider   lipgloss.Style

	// Header styles
	Title  lipgloss.Style
	Status lipgloss.Style

	// Panel content
	PanelTitle  lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	Radio       lipgloss.Style
	RadioActive lipgloss.Style
	Placeholder lipgloss.Style
	Error       lipgloss.Style
	Notice      lipgloss.Style

	// Chart styles
	Axis  lipgloss.Style
	Label lipgloss.Style

	// Footer style
	Footer lipgloss.Style
}{
	// Layout styles
	Container: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")),

	Panel: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")),

	Divider: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),

	// Header styles
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")),

	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	// Panel content
	PanelTitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("33")),

	MetricLabel: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	MetricValue: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("252")),

	Radio: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	RadioActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82")),

	Placeholder: lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("245")),

	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),

	Notice: lipgloss.NewStyle().
		Foreground(lipgloss.Color("114")),

	// Chart styles
	Axis: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),

	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	// Footer style
	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),
}
