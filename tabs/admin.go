package tabs

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"lounge/core"
	"lounge/widgets"
)

// AdminTab shows diagnostics and controls impersonation. Its gate checks
// the actor's own roles, so it stays reachable while impersonating.
type AdminTab struct {
	ctx   *core.AppContext
	actor *core.Actor

	status []string
}

func NewAdmin(ctx *core.AppContext, actor *core.Actor) *AdminTab {
	return &AdminTab{ctx: ctx, actor: actor}
}

func (t *AdminTab) Name() string  { return "admin" }
func (t *AdminTab) Title() string { return "Admin" }

func (t *AdminTab) CanView() bool {
	return t.actor.IsAdmin()
}

func (t *AdminTab) Init() widgets.Widget {
	caption := "Impersonate (press i)"
	if roles := t.actor.ImpersonationRoles(); roles != nil {
		caption = "Impersonating [" + strings.Join(roles, ",") + "] (press i to change)"
	}

	online := "NA"
	if n, ok := t.ctx.UsersOnline(); ok {
		online = strconv.Itoa(n)
	}

	ws := []widgets.Widget{
		widgets.Box{Title: "Impersonation", Content: caption},
		widgets.Box{Title: "Users Online", Content: online},
		widgets.Box{Title: "Application Metadata", Content: dump(t.ctx.App())},
		widgets.Box{Title: "Server Metadata", Content: dump(t.ctx.Server())},
		widgets.Box{Title: "User Metadata", Content: dump(t.actor.ActorFields)},
	}
	for _, s := range t.status {
		ws = append(ws, widgets.Text(widgets.ErrorLine(s)))
	}
	return widgets.VStack{Widgets: ws}
}

// Impersonate parses a comma-delimited role list and installs it as the
// impersonation override; an empty input stops impersonating. Permission
// and validation failures stay inline.
func (t *AdminTab) Impersonate(input string) {
	t.status = nil

	parts := strings.Split(input, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		roles = append(roles, strings.TrimSpace(p))
	}

	if err := t.actor.SetImpersonationRoles(roles); err != nil {
		var validation *core.ValidationError
		if errors.As(err, &validation) {
			t.ctx.Loading().Show(validation.Error())
		}
		t.status = []string{err.Error()}
	}
}

func dump(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "NA"
	}
	return string(b)
}
