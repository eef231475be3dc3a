package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#CE422B")
	muted  = lipgloss.Color("#888888")
	good   = lipgloss.Color("#04B575")

	// TitleStyle renders prompt titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1)

	// SelectedStyle renders the option under the cursor
	SelectedStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	CheckedStyle = lipgloss.NewStyle().
			Foreground(good).
			Bold(true)

	UncheckedStyle = lipgloss.NewStyle().
			Foreground(muted)

	// DescStyle renders option descriptions
	DescStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(good).
			Bold(true)
)

// NewHuhTheme returns the huh theme used by every form.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accent)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(good)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(good)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(lipgloss.Color("#DDDDDD"))

	t.Blurred = t.Focused
	t.Blurred.Title = t.Blurred.Title.Foreground(muted).Bold(false)

	return t
}
