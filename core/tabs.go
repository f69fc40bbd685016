package core

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"lounge/widgets"
)

// Tab is a named tab inside the home view.
type Tab interface {
	// Name is the location fragment for the tab, without the leading '#'.
	Name() string
	Title() string
	// CanView gates entry to the tab.
	CanView() bool
	// Init renders the tab content.
	Init() widgets.Widget
}

// MenuGate hides a viewable tab from the navigation menu. Tabs without it
// are shown whenever CanView holds.
type MenuGate interface {
	CanShowInMenu() bool
}

// MenuEntry is one button of the navigation menu.
type MenuEntry struct {
	Name   string
	Title  string
	Active bool
}

// reserved tab names the resolution rules depend on
const (
	TabHome         = "home"
	TabRegistration = "registration"
)

// TabSet is the registry of tabs for the home view. Registration order
// defines the navigation menu order.
type TabSet struct {
	ctx    *AppContext
	order  []Tab
	byName map[string]Tab
	active Tab
}

func NewTabSet(ctx *AppContext) *TabSet {
	return &TabSet{ctx: ctx, byName: map[string]Tab{}}
}

// Register adds a tab. Registering a duplicate name is a configuration
// error and panics.
func (s *TabSet) Register(tab Tab) {
	if _, exists := s.byName[tab.Name()]; exists {
		panic(fmt.Sprintf("tab already registered: %s", tab.Name()))
	}
	s.byName[tab.Name()] = tab
	s.order = append(s.order, tab)
}

// Resolve maps a requested tab name to the tab to open:
//
//  1. a registered, viewable tab of that name wins;
//  2. else, if the registration tab is viewable the actor is not registered
//     yet and is funneled there no matter what was requested;
//  3. else the home tab.
//
// The order is load-bearing: an unregistered actor always lands on
// registration, even from a deep link.
func (s *TabSet) Resolve(name string) Tab {
	name = strings.TrimPrefix(name, "#")

	if name != "" {
		if tab, ok := s.byName[name]; ok {
			if tab.CanView() {
				return tab
			}
		} else {
			s.suggest(name)
		}
	}

	if reg, ok := s.byName[TabRegistration]; ok && reg.CanView() {
		return reg
	}

	home, ok := s.byName[TabHome]
	if !ok {
		// same class of configuration error as a duplicate registration
		panic("tab set has no home tab to fall back to")
	}
	return home
}

// suggest flashes a nearby tab name for a typoed deep link. Purely
// advisory: resolution is unaffected.
func (s *TabSet) suggest(name string) {
	best, bestDist := "", 4
	for _, tab := range s.order {
		if d := levenshtein.ComputeDistance(name, tab.Name()); d < bestDist {
			best, bestDist = tab.Name(), d
		}
	}
	if best != "" {
		s.ctx.ShowFlash(fmt.Sprintf("Unknown tab %q, did you mean %q?", name, best))
	}
}

// Open resolves name, renders the tab and records its fragment. The
// fragment update is self-generated, so the history handler is suppressed
// for its duration; the suppression is released even if rendering panics.
func (s *TabSet) Open(name string) widgets.Widget {
	tab := s.Resolve(name)
	content := tab.Init()
	s.active = tab

	s.ctx.EmitEvent("activateTab: "+tab.Name(), nil)
	s.ctx.History().SetFragment(tab.Name())
	return content
}

// Active returns the open tab, nil before the first Open.
func (s *TabSet) Active() Tab { return s.active }

// MenuEntries lists the menu in registration order. A tab appears iff it is
// viewable and does not opt out of the menu.
func (s *TabSet) MenuEntries() []MenuEntry {
	entries := make([]MenuEntry, 0, len(s.order))
	for _, tab := range s.order {
		if !tab.CanView() {
			continue
		}
		if gate, ok := tab.(MenuGate); ok && !gate.CanShowInMenu() {
			continue
		}
		entries = append(entries, MenuEntry{
			Name:   tab.Name(),
			Title:  tab.Title(),
			Active: s.active != nil && s.active.Name() == tab.Name(),
		})
	}
	return entries
}
