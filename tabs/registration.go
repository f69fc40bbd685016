package tabs

import (
	"lounge/core"
	"lounge/widgets"
)

// RegistrationTab is the consent flow for unregistered users. It never
// appears in the navigation menu; the tab resolver funnels unregistered
// actors to it instead.
type RegistrationTab struct {
	ctx    *core.AppContext
	actor  *core.Actor
	reopen func()

	status []string
}

func NewRegistration(ctx *core.AppContext, actor *core.Actor, reopen func()) *RegistrationTab {
	return &RegistrationTab{ctx: ctx, actor: actor, reopen: reopen}
}

func (t *RegistrationTab) Name() string  { return core.TabRegistration }
func (t *RegistrationTab) Title() string { return "Registration" }

func (t *RegistrationTab) CanView() bool {
	return !t.actor.IsRegistered()
}

func (t *RegistrationTab) CanShowInMenu() bool { return false }

func (t *RegistrationTab) Init() widgets.Widget {
	body := "Signing up as " + t.actor.Email + ".\n\n" +
		"By continuing you accept the community terms and the\n" +
		"privacy notice.\n\nPress a to accept all terms and register."
	ws := []widgets.Widget{widgets.Box{Title: "Registration", Content: body}}
	for _, s := range t.status {
		ws = append(ws, widgets.Text(widgets.ErrorLine(s)))
	}
	return widgets.VStack{Widgets: ws}
}

// Register completes registration once every term is accepted. The refusal
// message stays inline; nothing is sent to the server.
func (t *RegistrationTab) Register(allAccepted bool) {
	t.status = nil
	if !allAccepted {
		t.status = []string{"You must accept all terms to continue."}
		return
	}
	t.ctx.API().RegisterCurrentUser(func() {
		t.reopen()
	})
}
