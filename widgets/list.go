package widgets

import "strings"

type List struct {
	Title string
	Items []string
	Empty string // shown when Items is empty
}

func (l List) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(l.Items) == 0 {
		return Box{Title: l.Title, Content: mutedStyle.Render(l.Empty)}.Render(width, height)
	}
	rows := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		rows = append(rows, "• "+item)
	}
	return Box{Title: l.Title, Content: strings.Join(rows, "\n")}.Render(width, height)
}
