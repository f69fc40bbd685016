package core

// View is one of the top-level screens. At most one view is open at a time;
// the controller evaluates CanView before Open and closes the previous view
// only once the gate passes.
type View interface {
	Name() string
	CanView() bool
	// Open renders the view. The fragment is the requested tab for views
	// that host tabs; others ignore it.
	Open(fragment string)
	Close()
}

// PopStateHandler is implemented by views that respond to back/forward
// navigation. Views without it ignore history changes.
type PopStateHandler interface {
	OnPopState(fragment string)
}

// ViewFactory builds a view bound to the controller and the current actor.
// A fresh view instance is constructed on every activation, so views never
// carry state across entries.
type ViewFactory func(ctx *AppContext, actor *Actor) View
