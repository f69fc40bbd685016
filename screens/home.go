package screens

import (
	"lounge/core"
	"lounge/tabs"
	"lounge/widgets"
)

// HomeView hosts the tab set for a signed-in user.
type HomeView struct {
	ctx     *core.AppContext
	actor   *core.Actor
	tabset  *core.TabSet
	content widgets.Widget
}

func NewHome(ctx *core.AppContext, actor *core.Actor) core.View {
	return &HomeView{ctx: ctx, actor: actor}
}

func (v *HomeView) Name() string { return "Home Page" }

func (v *HomeView) CanView() bool {
	return v.actor != nil
}

// Open builds the tab registry and opens the requested tab. Registration
// order defines the navigation menu order.
func (v *HomeView) Open(fragment string) {
	set := core.NewTabSet(v.ctx)
	set.Register(tabs.NewHome(v.actor))
	set.Register(tabs.NewPosts(v.ctx, v.actor))
	set.Register(tabs.NewMembers(v.ctx, v.actor))
	set.Register(tabs.NewRegistration(v.ctx, v.actor, func() { v.OpenTab("") }))
	set.Register(tabs.NewSettings(v.ctx, v.actor))
	set.Register(tabs.NewAdmin(v.ctx, v.actor))
	v.tabset = set

	v.content = set.Open(fragment)
}

// OpenTab switches to the named tab within the already open view.
func (v *HomeView) OpenTab(name string) {
	if v.tabset == nil {
		return
	}
	v.content = v.tabset.Open(name)
}

func (v *HomeView) Close() {
	v.tabset = nil
	v.content = nil
}

// OnPopState re-opens the view at the fragment history navigated to.
func (v *HomeView) OnPopState(fragment string) {
	v.OpenTab(fragment)
}

// Tabs exposes the registry for menu rendering and key routing.
func (v *HomeView) Tabs() *core.TabSet { return v.tabset }

func (v *HomeView) Render(width, height int) string {
	if v.tabset == nil {
		return ""
	}
	entries := v.tabset.MenuEntries()
	nav := make([]widgets.NavEntry, 0, len(entries))
	for _, e := range entries {
		nav = append(nav, widgets.NavEntry{Title: e.Title, Active: e.Active})
	}
	bar := widgets.NavBar{Entries: nav, User: v.actor.DisplayName}
	return widgets.VStack{Widgets: []widgets.Widget{bar, v.content}}.Render(width, height)
}
