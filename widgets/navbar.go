package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// NavEntry is one tab button.
type NavEntry struct {
	Title  string
	Active bool
}

// NavBar renders the tab row plus the signed-in user's name on the right.
type NavBar struct {
	Entries []NavEntry
	User    string
}

func (n NavBar) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	parts := make([]string, 0, len(n.Entries))
	for _, e := range n.Entries {
		if e.Active {
			parts = append(parts, activeTabStyle.Render(e.Title))
		} else {
			parts = append(parts, inactiveTabStyle.Render(e.Title))
		}
	}
	row := strings.Join(parts, tabSepStyle.Render("|"))
	if n.User != "" {
		user := mutedStyle.Render(n.User)
		pad := width - lipgloss.Width(row) - lipgloss.Width(user)
		if pad > 0 {
			row += strings.Repeat(" ", pad) + user
		}
	}
	return row
}
