package core

import (
	"fmt"
	"slices"
)

const impersonationKey = "impersonationRoles"

// SessionStore is key/value persistence scoped to one client session.
type SessionStore interface {
	// Get decodes the value stored under name into out and reports whether
	// one was present.
	Get(name string, out any) bool
	// Set stores value under name. A nil value clears the entry.
	Set(name string, value any) error
}

// Profile is the server-side user profile edited on the settings tab.
type Profile struct {
	Visibility string   `json:"visibility"`
	Pronouns   string   `json:"pronouns"`
	Title      string   `json:"title"`
	Location   string   `json:"location"`
	About      string   `json:"about"`
	Tags       []string `json:"tags"`
}

// Settings is the registration state the server keeps for a user.
type Settings struct {
	Registered bool     `json:"registered"`
	Profile    *Profile `json:"profile"`
}

// ActorFields is the server snapshot of the authenticated user. Identity
// fields come from the identity provider via the server; registration and
// role fields are the server's own.
type ActorFields struct {
	DisplayName  string    `json:"displayName"`
	Email        string    `json:"email"`
	PhotoURL     string    `json:"photoURL"`
	Status       string    `json:"status"`
	Roles        []string  `json:"roles"`
	Settings     *Settings `json:"settings"`
	SettingsEtag string    `json:"settings_etag"`
}

// Actor is the unified local representation of "who is using the app".
// Exactly one Actor exists per application lifetime: replacing who the actor
// is happens by rewriting this object's fields in place, never by allocating
// a new one, so every component holding the pointer keeps observing current
// data.
type Actor struct {
	ActorFields

	store  SessionStore
	schema func() Schema
}

// IsRegistered reports whether the user completed registration.
func (a *Actor) IsRegistered() bool {
	return a.Settings != nil && a.Settings.Registered
}

// IsAdmin checks the actor's own roles, never the impersonation overlay:
// an admin impersonating a lesser role must keep the right to stop.
func (a *Actor) IsAdmin() bool {
	return slices.Contains(a.Roles, a.schema().RoleID("admin"))
}

// IsModerator checks effective roles, so it honors impersonation.
func (a *Actor) IsModerator() bool {
	return slices.Contains(a.EffectiveRoles(), a.schema().RoleID("moderator"))
}

// EffectiveRoles is the single source of truth for access decisions: the
// impersonation override when one is set and non-empty, else the actor's
// own roles, else empty.
func (a *Actor) EffectiveRoles() []string {
	if roles := a.ImpersonationRoles(); len(roles) > 0 {
		return roles
	}
	if a.Roles != nil {
		return a.Roles
	}
	return []string{}
}

// ImpersonationRoles returns the session-local role override, nil if unset.
func (a *Actor) ImpersonationRoles() []string {
	var roles []string
	if !a.store.Get(impersonationKey, &roles) || len(roles) == 0 {
		return nil
	}
	return roles
}

// SetImpersonationRoles installs a session-local role override, or clears it
// when roles is empty. Only admins may impersonate, and every role must be
// one the application schema declares. The underlying Roles field is never
// touched.
func (a *Actor) SetImpersonationRoles(roles []string) error {
	if !a.IsAdmin() {
		return &PermissionError{Op: `only "admin" role can impersonate other roles`}
	}

	// the empty-string shorthand from the admin prompt means "stop"
	if len(roles) == 1 && roles[0] == "" {
		roles = nil
	}

	schema := a.schema()
	for _, role := range roles {
		if !schema.KnownRole(role) {
			return &ValidationError{Messages: []string{fmt.Sprintf("Unknown role %q.", role)}}
		}
	}

	if len(roles) == 0 {
		return a.store.Set(impersonationKey, nil)
	}
	return a.store.Set(impersonationKey, roles)
}

// ActorRegistry owns the single mutable Actor record.
type ActorRegistry struct {
	actor *Actor
}

// NewActorRegistry creates the registry holding an empty actor. The schema
// callback is consulted lazily because application metadata only arrives
// with the first server response.
func NewActorRegistry(store SessionStore, schema func() Schema) *ActorRegistry {
	return &ActorRegistry{actor: &Actor{store: store, schema: schema}}
}

// Current returns the one Actor. The pointer is stable for the lifetime of
// the registry.
func (r *ActorRegistry) Current() *Actor {
	return r.actor
}

// Replace clears every field of the current actor and copies fields in.
// The Actor's identity is preserved across calls.
func (r *ActorRegistry) Replace(fields ActorFields) {
	r.actor.ActorFields = fields
}
