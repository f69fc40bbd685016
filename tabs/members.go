package tabs

import (
	"sort"
	"strings"

	"lounge/core"
	"lounge/widgets"
)

// MembersTab is the member directory.
type MembersTab struct {
	ctx   *core.AppContext
	actor *core.Actor

	members []core.Member
}

func NewMembers(ctx *core.AppContext, actor *core.Actor) *MembersTab {
	return &MembersTab{ctx: ctx, actor: actor}
}

func (t *MembersTab) Name() string  { return "members" }
func (t *MembersTab) Title() string { return "Members" }

func (t *MembersTab) CanView() bool {
	return t.actor.IsRegistered()
}

func (t *MembersTab) Init() widgets.Widget {
	t.ctx.API().ListMembers(func(members []core.Member) {
		t.members = members
	})
	return t.render()
}

func (t *MembersTab) render() widgets.Widget {
	visible := t.visibleMembers()
	publicKey := t.ctx.Schema().Profile.Visibility.Keys["public"]

	items := make([]string, 0, len(visible))
	for _, m := range visible {
		name := m.Registration.DisplayName
		if first, _, found := strings.Cut(name, " "); found {
			name = first
		}
		line := name

		profile := m.Profile
		if profile == nil {
			profile = &core.Profile{}
		}
		if profile.Visibility != publicKey {
			line += widgets.Muted(" UNLISTED")
		}
		if profile.Title != "" {
			line += widgets.Muted(" - " + profile.Title)
		}
		if profile.Location != "" {
			line += widgets.Muted(" (" + profile.Location + ")")
		}
		items = append(items, line)
	}
	return widgets.List{Title: "Members", Items: items, Empty: "no public members"}
}

// visibleMembers sorts by display name and applies the listing rules:
// unregistered members never show; members without a profile show only to
// admins.
func (t *MembersTab) visibleMembers() []core.Member {
	members := make([]core.Member, 0, len(t.members))
	for _, m := range t.members {
		if m.Registration == nil {
			continue
		}
		if m.Profile == nil && !t.actor.IsAdmin() {
			continue
		}
		members = append(members, m)
	}
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Registration.DisplayName < members[j].Registration.DisplayName
	})
	return members
}
