package status

import "github.com/charmbracelet/lipgloss"

var (
	// LabelStyle renders the role name of an item
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	// ValueStyle renders a selected value
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	// UnsetStyle renders a value that falls back to a default
	UnsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	// ReleaseStyle highlights optimized builds
	ReleaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	// SeparatorStyle renders the gap between items
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444")).
			Padding(0, 1)
)
