package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jakoblorz/cargo-ws/internal/tui"
)

// RadioOption represents a single radio option
type RadioOption struct {
	Value       string
	Label       string
	Description string
}

// RadioModel is a single-choice list. The current value starts marked and
// under the cursor.
type RadioModel struct {
	title    string
	options  []RadioOption
	cursor   int
	selected int
	done     bool
	aborted  bool
}

// NewRadio creates a radio list with current preselected.
func NewRadio(title string, options []RadioOption, current string) RadioModel {
	m := RadioModel{
		title:    title,
		options:  options,
		selected: -1,
	}
	for i, option := range options {
		if option.Value == current {
			m.cursor = i
			m.selected = i
			break
		}
	}
	return m
}

// Init initializes the component
func (m RadioModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m RadioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.options) - 1
	case "enter", " ":
		if len(m.options) > 0 {
			m.selected = m.cursor
		}
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "q", "esc":
		m.aborted = true
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the component
func (m RadioModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	if m.title != "" {
		b.WriteString(tui.TitleStyle.Render(m.title))
		b.WriteString("\n")
	}

	for i, option := range m.options {
		cursor := " "
		labelStyle := lipgloss.NewStyle()
		if m.cursor == i {
			cursor = tui.SelectedStyle.Render("›")
			labelStyle = tui.SelectedStyle
		}

		radio := tui.UncheckedStyle.Render("( )")
		if m.selected == i {
			radio = tui.CheckedStyle.Render("(•)")
		}

		label := labelStyle.Render(option.Label)
		if option.Description != "" {
			label += "  " + tui.DescStyle.Render(option.Description)
		}

		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, radio, label))
	}

	b.WriteString(tui.HelpStyle.Render("↑/↓ move • enter select • esc cancel"))
	return b.String()
}

// Selected returns the chosen value and whether the user confirmed a choice.
func (m RadioModel) Selected() (string, bool) {
	if m.aborted || m.selected < 0 || m.selected >= len(m.options) {
		return "", false
	}
	return m.options[m.selected].Value, true
}

// IsDone returns whether the user finished selecting
func (m RadioModel) IsDone() bool {
	return m.done
}

// RunRadio shows the list and blocks until the user picks or cancels.
func RunRadio(title string, options []RadioOption, current string, programOptions ...tea.ProgramOption) (string, bool, error) {
	final, err := tea.NewProgram(NewRadio(title, options, current), programOptions...).Run()
	if err != nil {
		return "", false, fmt.Errorf("radio prompt failed: %w", err)
	}

	value, ok := final.(RadioModel).Selected()
	return value, ok, nil
}
