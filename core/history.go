package core

// History mirrors the browser location fragment for the terminal client: a
// stack of visited fragments plus a single pop-state style handler. Updates
// the router performs itself go through SetFragment, which suppresses the
// handler for the duration of the update so a self-generated change cannot
// re-enter the router. The suppression window is restored even if the
// handler or a renderer panics.
type History struct {
	stack    []string
	handler  func(fragment string)
	suppress bool
}

func NewHistory() *History {
	return &History{}
}

// Bind installs the navigation handler. Only one handler exists at a time.
func (h *History) Bind(handler func(fragment string)) {
	h.handler = handler
}

// Fragment returns the current fragment, empty when none was set.
func (h *History) Fragment() string {
	if len(h.stack) == 0 {
		return ""
	}
	return h.stack[len(h.stack)-1]
}

// Navigate records an externally requested fragment change (a deep link)
// and notifies the handler.
func (h *History) Navigate(fragment string) {
	h.push(fragment)
}

// SetFragment records a self-generated fragment change without triggering
// the handler.
func (h *History) SetFragment(fragment string) {
	h.suppress = true
	defer func() { h.suppress = false }()
	h.push(fragment)
}

// Back pops the current fragment and notifies the handler with the one
// underneath, mirroring the browser back button.
func (h *History) Back() {
	if len(h.stack) < 2 {
		return
	}
	h.stack = h.stack[:len(h.stack)-1]
	h.notify(h.stack[len(h.stack)-1])
}

func (h *History) push(fragment string) {
	if h.Fragment() != fragment {
		h.stack = append(h.stack, fragment)
	}
	h.notify(fragment)
}

func (h *History) notify(fragment string) {
	if h.suppress || h.handler == nil {
		return
	}
	h.handler(fragment)
}
