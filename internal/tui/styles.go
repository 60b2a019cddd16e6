package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
	ColorLink      = lipgloss.Color("51")  // Cyan
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	PathStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	// Listing rows
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Reverse(true)

	DirStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	FileStyle = lipgloss.NewStyle()

	LinkStyle = lipgloss.NewStyle().
			Foreground(ColorLink)

	ParentStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Detail pane
	DetailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Width(10)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

// Symbols for visual feedback.
const (
	SymbolCursor = "›"
	SymbolCross  = "✗"
	SymbolArrow  = "→"
)
