package core

import (
	"strings"
	"testing"

	"lounge/widgets"
)

type stubTab struct {
	name     string
	viewable bool
	inits    int
}

func (s *stubTab) Name() string  { return s.name }
func (s *stubTab) Title() string { return strings.ToUpper(s.name[:1]) + s.name[1:] }
func (s *stubTab) CanView() bool { return s.viewable }

func (s *stubTab) Init() widgets.Widget {
	s.inits++
	return widgets.Text(s.name)
}

type hiddenTab struct{ stubTab }

func (h *hiddenTab) CanShowInMenu() bool { return false }

func newTestTabSet(tabs ...Tab) (*TabSet, *AppContext) {
	ctx := NewAppContext(Options{Store: newMemStore(), History: NewHistory()})
	set := NewTabSet(ctx)
	for _, tab := range tabs {
		set.Register(tab)
	}
	return set, ctx
}

func TestResolveRequestedViewableWins(t *testing.T) {
	posts := &stubTab{name: "posts", viewable: true}
	set, _ := newTestTabSet(
		&stubTab{name: TabHome, viewable: true},
		posts,
		&hiddenTab{stubTab{name: TabRegistration, viewable: false}},
	)

	if got := set.Resolve("posts"); got != posts {
		t.Fatalf("Resolve(posts) = %v", got)
	}
	if got := set.Resolve("#posts"); got != posts {
		t.Fatalf("hash prefix must be stripped, got %v", got)
	}
}

func TestResolveFunnelsToRegistration(t *testing.T) {
	reg := &hiddenTab{stubTab{name: TabRegistration, viewable: true}}
	set, _ := newTestTabSet(
		&stubTab{name: TabHome, viewable: true},
		&stubTab{name: "posts", viewable: false},
		reg,
	)

	// an unregistered actor lands on registration no matter what was asked
	if got := set.Resolve("posts"); got != reg {
		t.Fatalf("Resolve(posts) = %v, want registration", got)
	}
	if got := set.Resolve(""); got != reg {
		t.Fatalf("Resolve(\"\") = %v, want registration", got)
	}
}

func TestResolveFallsBackToHome(t *testing.T) {
	home := &stubTab{name: TabHome, viewable: true}
	set, _ := newTestTabSet(
		home,
		&stubTab{name: "posts", viewable: false},
		&hiddenTab{stubTab{name: TabRegistration, viewable: false}},
	)

	if got := set.Resolve("posts"); got != home {
		t.Fatalf("unviewable tab must fall back to home, got %v", got)
	}
	if got := set.Resolve(""); got != home {
		t.Fatalf("empty fragment must resolve to home, got %v", got)
	}
}

func TestResolveSuggestsNearbyName(t *testing.T) {
	home := &stubTab{name: TabHome, viewable: true}
	set, ctx := newTestTabSet(
		home,
		&stubTab{name: "posts", viewable: true},
	)

	if got := set.Resolve("poxts"); got != home {
		t.Fatalf("typo must still fall back, got %v", got)
	}
	flash := ctx.FlashText()
	if !strings.Contains(flash, "did you mean") || !strings.Contains(flash, "posts") {
		t.Fatalf("flash = %q, want a posts suggestion", flash)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	set, _ := newTestTabSet(&stubTab{name: "posts", viewable: true})

	defer func() {
		if recover() == nil {
			t.Fatalf("duplicate registration must panic")
		}
	}()
	set.Register(&stubTab{name: "posts"})
}

func TestResolveWithoutHomePanics(t *testing.T) {
	set, _ := newTestTabSet(&stubTab{name: "posts", viewable: false})

	defer func() {
		if recover() == nil {
			t.Fatalf("resolving without a home tab must panic")
		}
	}()
	set.Resolve("posts")
}

func TestOpenRecordsFragmentWithoutNotify(t *testing.T) {
	posts := &stubTab{name: "posts", viewable: true}
	set, ctx := newTestTabSet(&stubTab{name: TabHome, viewable: true}, posts)

	var notified []string
	ctx.History().Bind(func(fragment string) { notified = append(notified, fragment) })

	set.Open("posts")

	if posts.inits != 1 {
		t.Fatalf("tab initialized %d times, want 1", posts.inits)
	}
	if set.Active() != posts {
		t.Fatalf("Active = %v, want posts", set.Active())
	}
	if ctx.History().Fragment() != "posts" {
		t.Fatalf("Fragment = %q, want posts", ctx.History().Fragment())
	}
	if len(notified) != 0 {
		t.Fatalf("self-generated fragment update re-entered the router: %v", notified)
	}
}

func TestMenuEntriesOrderAndGates(t *testing.T) {
	set, _ := newTestTabSet(
		&stubTab{name: TabHome, viewable: true},
		&stubTab{name: "posts", viewable: true},
		&stubTab{name: "admin", viewable: false},
		&hiddenTab{stubTab{name: TabRegistration, viewable: true}},
	)
	set.Open("posts")

	entries := set.MenuEntries()
	if len(entries) != 2 {
		t.Fatalf("entries = %v, want home and posts only", entries)
	}
	if entries[0].Name != TabHome || entries[1].Name != "posts" {
		t.Fatalf("menu order must follow registration order: %v", entries)
	}
	if entries[0].Active || !entries[1].Active {
		t.Fatalf("active flags wrong: %v", entries)
	}
}
