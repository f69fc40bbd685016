package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lounge/core"
	"lounge/internal/api"
	"lounge/internal/config"
	"lounge/internal/identity"
	"lounge/internal/presence"
	"lounge/internal/session"
	"lounge/internal/signal"
	"lounge/internal/tui"
	"lounge/screens"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Session.JournalPath), 0o755); err != nil {
		log.Fatalf("mkdir data dir: %v", err)
	}

	if err := signal.RunMigrations(cfg.Session.JournalPath, "internal/signal/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	journal, err := signal.Open(cfg.Session.JournalPath)
	if err != nil {
		log.Fatalf("open journal: %v", err)
	}
	defer journal.Close()

	// a restart rebuilds everything from the persisted session, the same
	// way a page reload would
	for {
		reason, err := run(cfg, journal)
		if err != nil {
			log.Fatalf("run: %v", err)
		}
		if reason == nil {
			return
		}
		var invalid *core.SessionInvalidError
		if errors.As(reason, &invalid) {
			// the next program instance takes the alternate screen, so the
			// notice must block until it is acknowledged
			blockOnNotice(os.Stdin, os.Stdout, invalid)
		}
	}
}

// blockOnNotice prints the session-end notice and waits for Enter before
// the restart loop brings the alternate screen back up.
func blockOnNotice(in io.Reader, out io.Writer, reason error) {
	fmt.Fprintf(out, "%v (press Enter to continue)\n", reason)
	_, _ = bufio.NewReader(in).ReadString('\n')
}

// run builds one application instance and blocks until it quits. A non-nil
// reason means the controller asked for a restart.
func run(cfg config.Config, journal *signal.Journal) (reason error, fatal error) {
	store := session.Open(cfg.Session.StorePath)
	provider := identity.New(func() (string, error) {
		if t := cfg.ResolveToken(); t != "" {
			return t, nil
		}
		return "", errors.New("no id token configured")
	}, store)
	client := api.New(cfg.Server.URL, provider.AuthHeaders)

	restart := &tui.Restart{}
	ctx := core.NewAppContext(core.Options{
		Provider: provider,
		Facade:   client,
		Store:    store,
		Signals:  journal,
		History:  core.NewHistory(),
		Restart:  restart.Trigger,
		Welcome:  screens.NewWelcome,
		Denied:   screens.NewAccessDenied,
		Home:     screens.NewHome,
	})

	p := tea.NewProgram(tui.New(ctx, restart), tea.WithAltScreen())

	var poller *presence.Poller
	if cfg.Presence.Enabled {
		interval := time.Duration(cfg.Presence.IntervalSeconds) * time.Second
		poller = presence.New(interval, fetchUsersOnline(client), func(n int) {
			p.Send(tui.PresenceMsg(n))
		})
		poller.Start()
		defer poller.Stop()
	}

	if _, err := p.Run(); err != nil {
		return nil, err
	}

	if restart.Requested() {
		reason := restart.Reason()
		if reason == nil {
			// sign-out restarts with reason nil; start over at welcome
			reason = errRestart
		}
		return reason, nil
	}
	return nil, nil
}

var errRestart = errors.New("restart")

// fetchUsersOnline reads the presence count the server reports alongside
// every response.
func fetchUsersOnline(client *api.Client) presence.FetchFunc {
	return func() (int, error) {
		resp, err := client.Invoke("/api/rest/v1/whoami", http.MethodGet, nil)
		if err != nil {
			return 0, err
		}
		if n, ok := resp.Server["usersOnline"].(float64); ok {
			return int(n), nil
		}
		return 0, errors.New("no presence count in response")
	}
}
