package core

import (
	"errors"
	"net/url"
)

// Identity is what the identity provider knows about the signed-in user.
// Immutable for the duration of one sign-in.
type Identity struct {
	UID         string
	DisplayName string
	Email       string
	PhotoURL    string
}

func (i *Identity) sameAs(other *Identity) bool {
	if i == nil || other == nil {
		return i == other
	}
	return i.UID == other.UID
}

func emailOrAnonymous(i *Identity) string {
	if i == nil {
		return "anonymous"
	}
	return i.Email
}

// IdentityProvider abstracts sign-in, sign-out and auth-state notification.
type IdentityProvider interface {
	// Bind registers the auth-state callbacks and delivers the current
	// state. Only one binding exists at a time.
	Bind(onChange func(*Identity), onError func(error))
	// Unbind drops the callbacks so no notification outlives a sign-out.
	Unbind()
	// SignIn acquires an identity. Completion is signalled through the
	// bound auth-state callback, not through this call's return.
	SignIn() error
	SignOut() error
	// AuthHeaders returns the request headers that authenticate the
	// current user. Fails when no identity is bound.
	AuthHeaders() (map[string]string, error)
}

// Facade is the transport to the API server. Errors are either a
// *BusinessError (recognized structured server error) or a *TransportError.
type Facade interface {
	Invoke(path, method string, body url.Values) (*Response, error)
}

// SignalSink receives diagnostic events.
type SignalSink interface {
	Emit(name string, value any)
}

// Options carries the collaborators the controller is built from. All of
// them are substitutable in tests.
type Options struct {
	Provider IdentityProvider
	Facade   Facade
	Store    SessionStore
	Signals  SignalSink
	History  *History

	// Restart forces a full application restart, the moral equivalent of
	// location.reload(). The reason is a *SessionInvalidError when a live
	// session lost its identity.
	Restart func(reason error)

	Welcome ViewFactory
	Denied  ViewFactory
	Home    ViewFactory
}

// AppContext is the session controller: it owns authentication state, the
// actor registry, the app/server metadata and the active view, and it is the
// only component views and tabs call back into.
type AppContext struct {
	opts    Options
	api     *API
	loading Loading
	flash   Flash

	registry    *ActorRegistry
	currentUser *Identity
	currentView View

	app         *AppMeta
	server      map[string]any
	usersOnline int
	hasPresence bool
}

func NewAppContext(opts Options) *AppContext {
	if opts.History == nil {
		opts.History = NewHistory()
	}
	if opts.Restart == nil {
		opts.Restart = func(error) {}
	}
	c := &AppContext{opts: opts}
	c.registry = NewActorRegistry(opts.Store, c.Schema)
	c.api = &API{ctx: c}
	return c
}

// Start binds auth-state and history notifications and reports readiness.
// The provider delivers the current identity during Bind, which drives the
// first view activation.
func (c *AppContext) Start() {
	c.EmitEvent("appContext: started", nil)

	c.opts.History.Bind(func(fragment string) {
		if h, ok := c.currentView.(PopStateHandler); ok {
			h.OnPopState(fragment)
		}
	})

	c.opts.Provider.Bind(c.UserChanged, c.HandleError)
	c.ShowFlash("Ready.")
}

// UserChanged reconciles an identity-provider auth event with session state.
//
//	absent  -> present: reset actor, activate the home flow
//	present -> absent:  session expired, restart
//	present -> other:   unexpected, restart
//	present -> same:    duplicate event, ignored
func (c *AppContext) UserChanged(user *Identity) {
	c.EmitEvent("userChanged", emailOrAnonymous(user))

	if c.currentUser != nil && user == nil {
		c.opts.Restart(&SessionInvalidError{Email: c.currentUser.Email})
		return
	}

	if c.currentUser != nil && user != nil && !c.currentUser.sameAs(user) {
		// we expect an absent event first; bailing out beats guessing
		c.opts.Restart(errors.New("unexpected identity change"))
		return
	}

	if c.currentUser != nil && c.currentUser.sameAs(user) {
		return
	}

	if user == nil {
		// anonymous and staying anonymous; only the first such event
		// needs to put the welcome view up
		if c.currentView == nil {
			// the welcome gate is unconditional; a denial cannot occur here
			_ = c.ActivateView(c.opts.Welcome)
		}
		return
	}

	c.currentUser = user
	c.registry.Replace(ActorFields{})
	// home and denied both gate on "actor present", which holds on this
	// path; a gate failure would already have emitted its event
	_ = c.ActivateView(c.opts.Home)
}

// ActivateView routes to a view. When a user is signed in the activation
// always goes through a fresh whoAmI so the gate sees current roles, and
// zero-role users are redirected to the access-denied view.
func (c *AppContext) ActivateView(factory ViewFactory) error {
	if c.currentUser != nil {
		return c.checkUserStatusAndEnter(factory)
	}
	return c.enterView(factory, nil)
}

func (c *AppContext) checkUserStatusAndEnter(factory ViewFactory) error {
	var err error
	c.api.CheckWhoAmI(func(user *ActorFields) {
		if user != nil {
			c.registry.Replace(*user)
		} else {
			c.registry.Replace(ActorFields{})
		}
		if user != nil && len(user.Roles) > 0 {
			err = c.enterView(factory, c.registry.Current())
		} else {
			err = c.enterView(c.opts.Denied, c.registry.Current())
		}
	})
	return err
}

func (c *AppContext) enterView(factory ViewFactory, actor *Actor) error {
	view := factory(c, actor)

	if !view.CanView() {
		denied := &AccessDeniedError{View: view.Name(), Email: emailOrAnonymous(c.currentUser)}
		c.EmitEvent("viewAccessDenied", denied.Error())
		return denied
	}

	if c.currentView != nil {
		c.EmitEvent("leaveView: "+c.currentView.Name(), emailOrAnonymous(c.currentUser))
		c.currentView.Close()
	}

	c.EmitEvent("enterView: "+view.Name(), emailOrAnonymous(c.currentUser))
	c.loading.Show("loading " + view.Name())
	c.currentView = view
	view.Open(c.opts.History.Fragment())
	c.loading.Hide()
	return nil
}

// SignIn delegates to the identity provider. The provider's auth-state
// notification, not this call, advances the session state machine.
func (c *AppContext) SignIn() {
	c.EmitEvent("signIn", emailOrAnonymous(c.currentUser))
	if err := c.opts.Provider.SignIn(); err != nil {
		c.HandleError(err)
	}
}

// SignOut tears the session down and restarts the application. Unbinding
// before the provider round trip guarantees no stale listener survives, at
// the cost of losing in-memory route state.
func (c *AppContext) SignOut() {
	c.EmitEvent("signOut", emailOrAnonymous(c.currentUser))

	c.currentUser = nil
	c.registry.Replace(ActorFields{})
	c.currentView = nil

	c.opts.Provider.Unbind()
	if err := c.opts.Provider.SignOut(); err != nil {
		c.EmitEvent("signOutError", err.Error())
	}

	c.opts.Restart(nil)
}

// HandleError is the generic terminal for transport and provider failures:
// stop the busy indicator on the error and record a diagnostic event.
func (c *AppContext) HandleError(err error) {
	c.EmitEvent("handleError", err.Error())
	c.loading.Stop(err.Error())
}

// EmitEvent records a diagnostic event.
func (c *AppContext) EmitEvent(name string, value any) {
	if c.opts.Signals != nil {
		c.opts.Signals.Emit(name, value)
	}
}

// ShowFlash shows a short-lived result message.
func (c *AppContext) ShowFlash(text string) {
	c.flash.Show(text)
}

// API returns the typed server facade bindings.
func (c *AppContext) API() *API { return c.api }

// Actor returns the stable current-actor handle.
func (c *AppContext) Actor() *Actor { return c.registry.Current() }

// Registry exposes the actor registry, mainly for tests.
func (c *AppContext) Registry() *ActorRegistry { return c.registry }

// CurrentUser returns the provider identity, nil when signed out.
func (c *AppContext) CurrentUser() *Identity { return c.currentUser }

// CurrentView returns the open view, nil when none is.
func (c *AppContext) CurrentView() View { return c.currentView }

// App returns the latest application metadata, nil before the first
// response carrying one.
func (c *AppContext) App() *AppMeta { return c.app }

// Server returns the latest server metadata document.
func (c *AppContext) Server() map[string]any { return c.server }

// Schema returns the current application schema, zero before metadata
// arrives.
func (c *AppContext) Schema() Schema {
	if c.app == nil {
		return Schema{}
	}
	return c.app.Schema
}

// History returns the route history.
func (c *AppContext) History() *History { return c.opts.History }

// Loading returns the busy indicator state.
func (c *AppContext) Loading() *Loading { return &c.loading }

// Flash returns the flash message state.
func (c *AppContext) FlashText() string { return c.flash.Text() }

// SetUsersOnline records a presence count delivery.
func (c *AppContext) SetUsersOnline(n int) {
	c.usersOnline = n
	c.hasPresence = true
}

// UsersOnline returns the latest presence count; ok is false until the
// presence service delivered one.
func (c *AppContext) UsersOnline() (int, bool) {
	return c.usersOnline, c.hasPresence
}

func (c *AppContext) updateAppSchema(resp *Response) {
	if resp.App != nil {
		c.app = resp.App
	}
	if resp.Server != nil {
		c.server = resp.Server
	}
}
