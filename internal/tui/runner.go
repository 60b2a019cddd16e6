package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RunBrowser runs the browser full-screen until the user quits and returns
// the final model.
func RunBrowser(b Browser) (Browser, error) {
	p := tea.NewProgram(b, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return b, fmt.Errorf("browser failed: %w", err)
	}
	if fb, ok := final.(Browser); ok {
		return fb, nil
	}
	return b, nil
}

// Confirm asks a yes/no question on out and reads the answer from in.
// An empty answer selects defaultYes.
func Confirm(in io.Reader, out io.Writer, message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(out, "%s %s: ", message, hint)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	}
	return false
}
