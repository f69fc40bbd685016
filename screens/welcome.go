// Package screens holds the top-level views: Welcome, AccessDenied and
// Home. Views are constructed fresh on every activation and call back into
// the session controller rather than reaching external services directly.
package screens

import (
	"lounge/core"
	"lounge/widgets"
)

// WelcomeView lets an anonymous user sign in.
type WelcomeView struct {
	ctx     *core.AppContext
	content widgets.Widget
}

func NewWelcome(ctx *core.AppContext, _ *core.Actor) core.View {
	return &WelcomeView{ctx: ctx}
}

func (v *WelcomeView) Name() string  { return "Welcome Page" }
func (v *WelcomeView) CanView() bool { return true }

func (v *WelcomeView) Open(_ string) {
	v.content = widgets.Box{
		Title:   "Welcome to Lounge",
		Content: "A members-only community.\n\nPress s to sign in.",
	}
}

func (v *WelcomeView) Close() {
	v.content = nil
}

// SignIn is bound to the sign-in key.
func (v *WelcomeView) SignIn() {
	v.ctx.Loading().Show("waiting user login")
	v.ctx.SignIn()
}

func (v *WelcomeView) Render(width, height int) string {
	if v.content == nil {
		return ""
	}
	return v.content.Render(width, height)
}
