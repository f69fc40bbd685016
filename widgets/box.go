package widgets

import "github.com/charmbracelet/lipgloss"

type Box struct {
	Title   string
	Content string
}

func (b Box) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(max(10, width-2))
	title := titleStyle.Render(b.Title)
	return style.Render(title + "\n" + b.Content)
}
