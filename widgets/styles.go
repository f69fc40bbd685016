package widgets

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("42")
	colorBorder = lipgloss.Color("240")
	colorMuted  = lipgloss.Color("245")
	colorError  = lipgloss.Color("203")

	titleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)

	activeTabStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	tabSepStyle      = lipgloss.NewStyle().Foreground(colorBorder)
)

// ErrorLine styles an inline form error.
func ErrorLine(text string) string {
	return errorStyle.Render(text)
}

// Muted styles secondary text.
func Muted(text string) string {
	return mutedStyle.Render(text)
}
