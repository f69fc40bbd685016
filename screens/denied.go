package screens

import (
	"fmt"

	"lounge/core"
	"lounge/widgets"
)

// AccessDeniedView is shown when the signed-in user has no usable roles.
type AccessDeniedView struct {
	ctx     *core.AppContext
	actor   *core.Actor
	content widgets.Widget
}

func NewAccessDenied(ctx *core.AppContext, actor *core.Actor) core.View {
	return &AccessDeniedView{ctx: ctx, actor: actor}
}

func (v *AccessDeniedView) Name() string  { return "Access Denied" }
func (v *AccessDeniedView) CanView() bool { return true }

func (v *AccessDeniedView) Open(_ string) {
	email, status := "", ""
	if v.actor != nil {
		email = v.actor.Email
		status = v.actor.Status
	}
	v.content = widgets.Box{
		Title: "Access Denied",
		Content: fmt.Sprintf("%s\n%s\n\nPress o to sign out.",
			email, widgets.Muted(status)),
	}
}

func (v *AccessDeniedView) Close() {
	v.content = nil
}

// SignOut is bound to the sign-out key.
func (v *AccessDeniedView) SignOut() {
	v.ctx.SignOut()
}

func (v *AccessDeniedView) Render(width, height int) string {
	if v.content == nil {
		return ""
	}
	return v.content.Render(width, height)
}
