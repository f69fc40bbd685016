// Package presence polls the users-online count. Entirely optional: the
// poller only exists when a count callback is configured.
package presence

import "time"

// FetchFunc returns the current users-online count.
type FetchFunc func() (int, error)

// Poller delivers periodic counts to the callback. Fetch failures are
// skipped silently; the next tick tries again.
type Poller struct {
	interval time.Duration
	fetch    FetchFunc
	onCount  func(int)
	stop     chan struct{}
}

func New(interval time.Duration, fetch FetchFunc, onCount func(int)) *Poller {
	return &Poller{interval: interval, fetch: fetch, onCount: onCount, stop: make(chan struct{})}
}

// Start begins polling in the background. One immediate fetch happens
// before the first tick so the count shows up promptly.
func (p *Poller) Start() {
	go func() {
		p.poll()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.poll()
			case <-p.stop:
				return
			}
		}
	}()
}

// Stop ends polling. Safe to call once.
func (p *Poller) Stop() {
	close(p.stop)
}

func (p *Poller) poll() {
	count, err := p.fetch()
	if err != nil {
		return
	}
	p.onCount(count)
}
