package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// sizingSpinner is the indicator shown in the detail pane while a
// directory is being walked.
type sizingSpinner struct {
	spinner spinner.Model
	message string
}

func newSizingSpinner() sizingSpinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return sizingSpinner{
		spinner: s,
		message: "sizing…",
	}
}

// Tick starts the animation.
func (s sizingSpinner) Tick() tea.Msg {
	return s.spinner.Tick()
}

// Update advances the animation.
func (s sizingSpinner) Update(msg spinner.TickMsg) (sizingSpinner, tea.Cmd) {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner and its message.
func (s sizingSpinner) View() string {
	return s.spinner.View() + " " + MutedStyle.Render(s.message)
}
