// Package widgets renders named content fragments for the terminal UI. It
// is the view renderer: screens and tabs build widgets, the program loop
// asks them to render at the current size.
package widgets

import "strings"

type Widget interface {
	Render(width, height int) string
}

// VStack stacks widgets top to bottom with a blank line between them.
type VStack struct {
	Widgets []Widget
}

func (v VStack) Render(width, height int) string {
	if len(v.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	parts := make([]string, 0, len(v.Widgets))
	for _, w := range v.Widgets {
		if w == nil {
			continue
		}
		parts = append(parts, w.Render(width, height))
	}
	return strings.Join(parts, "\n")
}

// Text is a plain paragraph.
type Text string

func (t Text) Render(width, height int) string {
	return string(t)
}
