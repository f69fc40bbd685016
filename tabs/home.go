// Package tabs implements the tabs hosted by the home view. Each tab owns
// its gate and content; interactive operations validate locally, submit
// through the typed facade bindings and surface business errors inline.
package tabs

import (
	"lounge/core"
	"lounge/widgets"
)

// HomeTab is the landing tab for registered users.
type HomeTab struct {
	actor *core.Actor
}

func NewHome(actor *core.Actor) *HomeTab {
	return &HomeTab{actor: actor}
}

func (t *HomeTab) Name() string  { return core.TabHome }
func (t *HomeTab) Title() string { return "Home" }

func (t *HomeTab) CanView() bool {
	return t.actor.IsRegistered()
}

func (t *HomeTab) Init() widgets.Widget {
	return widgets.Box{
		Title:   "Home",
		Content: "Hello, " + t.actor.DisplayName + ".\n\nUse the tab keys to look around.",
	}
}
