package core

// Loading is the busy indicator: one message at a time, either in progress
// or stopped on an error. The TUI reads it each frame.
type Loading struct {
	text    string
	busy    bool
	stopped bool
}

// Show starts progress with a message.
func (l *Loading) Show(text string) {
	l.text = text
	l.busy = true
	l.stopped = false
}

// Hide stops progress and clears the message.
func (l *Loading) Hide() {
	l.text = ""
	l.busy = false
	l.stopped = false
}

// Stop halts progress but keeps the message visible, usually an error.
func (l *Loading) Stop(text string) {
	l.text = text
	l.busy = false
	l.stopped = true
}

func (l *Loading) Busy() bool    { return l.busy }
func (l *Loading) Stopped() bool { return l.stopped }
func (l *Loading) Text() string  { return l.text }

// Flash is the floating result message: "Posted.", "Saved.", "Error.".
type Flash struct {
	text string
}

func (f *Flash) Show(text string) { f.text = text }
func (f *Flash) Text() string     { return f.text }
