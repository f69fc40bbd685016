package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lounge/core"
	"lounge/screens"
	"lounge/tabs"
)

// Restart records a controller restart request so the outer run loop can
// tear the whole stack down and build it again. The session controller
// treats a restart as the terminal for invalid sessions and sign-out.
type Restart struct {
	requested bool
	reason    error
}

func (r *Restart) Trigger(reason error) {
	r.requested = true
	r.reason = reason
}

func (r *Restart) Requested() bool { return r.requested }
func (r *Restart) Reason() error   { return r.reason }

// PresenceMsg delivers an updated users-online count from the poller.
type PresenceMsg int

type startMsg struct{}

// App drives the session controller from the terminal: it routes keys to
// the active view and renders whatever the controller says is current.
type App struct {
	ctx     *core.AppContext
	restart *Restart

	width  int
	height int
	active *prompt
}

func New(ctx *core.AppContext, restart *Restart) *App {
	return &App{ctx: ctx, restart: restart}
}

func (a *App) Init() tea.Cmd {
	return func() tea.Msg { return startMsg{} }
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case startMsg:
		a.ctx.Start()
		return a.checkRestart()
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case PresenceMsg:
		a.ctx.SetUsersOnline(int(m))
		a.refreshTab()
	case tea.KeyMsg:
		if a.active != nil {
			return a.handlePromptKey(m)
		}
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "b":
		a.ctx.History().Back()
		return a, nil
	}

	switch view := a.ctx.CurrentView().(type) {
	case *screens.WelcomeView:
		if m.String() == "s" {
			view.SignIn()
			return a.checkRestart()
		}
	case *screens.AccessDeniedView:
		if m.String() == "o" {
			view.SignOut()
			return a.checkRestart()
		}
	case *screens.HomeView:
		return a.handleHomeKey(m, view)
	}
	return a, nil
}

func (a *App) handleHomeKey(m tea.KeyMsg, view *screens.HomeView) (tea.Model, tea.Cmd) {
	key := m.String()

	if key == "o" {
		a.ctx.SignOut()
		return a.checkRestart()
	}

	if view.Tabs() == nil {
		return a, nil
	}

	// digits switch to the nth menu entry
	if n, err := strconv.Atoi(key); err == nil && n >= 1 {
		entries := view.Tabs().MenuEntries()
		if n <= len(entries) {
			view.OpenTab(entries[n-1].Name)
		}
		return a, nil
	}

	switch tab := view.Tabs().Active().(type) {
	case *tabs.PostsTab:
		switch key {
		case "n":
			a.active = newPrompt(func(values []string) {
				tab.SubmitPost(strings.TrimSpace(values[0]))
			}, "New post")
		case "x":
			a.promptForPost(tab, "Delete post number", func(uid string) { tab.Delete(uid) })
		case "+", "=":
			a.promptForPost(tab, "Vote up post number", func(uid string) { tab.Vote(uid, 1) })
		case "-":
			a.promptForPost(tab, "Vote down post number", func(uid string) { tab.Vote(uid, -1) })
		}
	case *tabs.RegistrationTab:
		if key == "a" {
			tab.Register(true)
			a.refreshTab()
		}
	case *tabs.SettingsTab:
		if key == "e" {
			a.openProfileEditor(tab)
		}
	case *tabs.AdminTab:
		if key == "i" {
			a.active = newPrompt(func(values []string) {
				tab.Impersonate(values[0])
			}, "Impersonate roles (comma separated, blank to stop)")
		}
	}
	return a, nil
}

// promptForPost asks for a 1-based post number and resolves it to a post
// uid before invoking act.
func (a *App) promptForPost(tab *tabs.PostsTab, label string, act func(uid string)) {
	a.active = newPrompt(func(values []string) {
		n, err := strconv.Atoi(strings.TrimSpace(values[0]))
		posts := tab.Posts()
		if err != nil || n < 1 || n > len(posts) {
			a.ctx.ShowFlash("No such post.")
			return
		}
		act(posts[n-1].UID)
	}, label)
}

func (a *App) openProfileEditor(tab *tabs.SettingsTab) {
	p := newPrompt(func(values []string) {
		tab.UpdateProfile(core.Profile{
			Visibility: strings.TrimSpace(values[0]),
			Pronouns:   strings.TrimSpace(values[1]),
			Title:      strings.TrimSpace(values[2]),
			Location:   strings.TrimSpace(values[3]),
			About:      strings.TrimSpace(values[4]),
			Tags:       splitList(values[5]),
		})
	}, "Visibility", "Pronouns", "Title", "Location", "About", "Tags (comma separated)")

	if settings := a.ctx.Actor().Settings; settings != nil && settings.Profile != nil {
		existing := settings.Profile
		p.prefill(0, existing.Visibility)
		p.prefill(1, existing.Pronouns)
		p.prefill(2, existing.Title)
		p.prefill(3, existing.Location)
		p.prefill(4, existing.About)
		p.prefill(5, strings.Join(existing.Tags, ", "))
	}
	a.active = p
}

func (a *App) handlePromptKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.active = nil
	case tea.KeyEnter:
		if a.active.enter() {
			a.active = nil
			a.refreshTab()
			return a.checkRestart()
		}
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		a.active.backspace()
	case tea.KeySpace:
		a.active.typeRune(' ')
	case tea.KeyRunes:
		for _, r := range m.Runes {
			a.active.typeRune(r)
		}
	}
	return a, nil
}

// refreshTab re-opens the active tab so content rendered before a mutation
// reflects the reloaded state.
func (a *App) refreshTab() {
	view, ok := a.ctx.CurrentView().(*screens.HomeView)
	if !ok || view.Tabs() == nil {
		return
	}
	if active := view.Tabs().Active(); active != nil {
		view.OpenTab(active.Name())
	}
}

func (a *App) checkRestart() (tea.Model, tea.Cmd) {
	if a.restart.Requested() {
		return a, tea.Quit
	}
	return a, nil
}

// renderable is satisfied by every screen in this application.
type renderable interface {
	Render(width, height int) string
}

var footerStyle = lipgloss.NewStyle().Faint(true)

func (a *App) View() string {
	body := ""
	if r, ok := a.ctx.CurrentView().(renderable); ok {
		body = r.Render(a.width, a.height-2)
	}
	return body + "\n" + a.footer()
}

func (a *App) footer() string {
	if a.active != nil {
		return fmt.Sprintf("%s: %s█  [enter] OK  [esc] Cancel", a.active.label(), a.active.value())
	}

	line := a.hints()
	if loading := a.ctx.Loading(); loading.Busy() {
		line = loading.Text() + "..."
	} else if loading.Stopped() {
		line = "error: " + loading.Text()
	} else if flash := a.ctx.FlashText(); flash != "" {
		line = flash + "  " + line
	}
	return footerStyle.Render(line)
}

func (a *App) hints() string {
	switch view := a.ctx.CurrentView().(type) {
	case *screens.WelcomeView:
		return "[s] Sign in  [q] Quit"
	case *screens.AccessDeniedView:
		return "[o] Sign out  [q] Quit"
	case *screens.HomeView:
		base := "[1-9] Tabs  [b] Back  [o] Sign out  [q] Quit"
		if view.Tabs() == nil {
			return base
		}
		switch view.Tabs().Active().(type) {
		case *tabs.PostsTab:
			return "[n] New post  [x] Delete  [+/-] Vote  " + base
		case *tabs.RegistrationTab:
			return "[a] Accept terms and register  " + base
		case *tabs.SettingsTab:
			return "[e] Edit profile  " + base
		case *tabs.AdminTab:
			return "[i] Impersonate  " + base
		}
		return base
	}
	return "[q] Quit"
}

func splitList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
