// Package identity is the identity provider adapter: it turns a bearer
// id token into the signed-in identity and the request auth headers. The
// token is taken on trust client-side; the server verifies it on every
// request.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lounge/core"
)

const (
	headerName  = "Lounge-Authorization"
	valuePrefix = "Bearer "

	// signedOutKey marks an explicit sign-out in the session store. The
	// token source is static config, so without the marker a restart would
	// sign the user straight back in.
	signedOutKey = "identitySignedOut"
)

// TokenSource returns the current raw id token, empty when none is
// configured.
type TokenSource func() (string, error)

type idClaims struct {
	jwt.RegisteredClaims
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Provider implements core.IdentityProvider over a token source. The
// store persists the signed-out marker across application restarts.
type Provider struct {
	source TokenSource
	store  core.SessionStore

	token    string
	current  *core.Identity
	onChange func(*core.Identity)
	onError  func(error)
}

func New(source TokenSource, store core.SessionStore) *Provider {
	return &Provider{source: source, store: store}
}

// Bind registers the auth-state callbacks and delivers the current state:
// the configured identity when a valid token exists and the user did not
// explicitly sign out, absent otherwise.
func (p *Provider) Bind(onChange func(*core.Identity), onError func(error)) {
	p.onChange = onChange
	p.onError = onError
	p.current = nil

	if p.signedOut() {
		p.notify(nil, "")
		return
	}

	token, err := p.source()
	if err != nil || token == "" {
		p.notify(nil, "")
		return
	}
	identity, err := parseToken(token)
	if err != nil {
		p.notify(nil, "")
		p.fail(err)
		return
	}
	p.notify(identity, token)
}

// Unbind drops the callbacks so no notification outlives a sign-out.
func (p *Provider) Unbind() {
	p.onChange = nil
	p.onError = nil
	p.current = nil
}

// SignIn clears any signed-out marker, re-reads the token source and
// advances the auth state through the bound callback.
func (p *Provider) SignIn() error {
	if p.store != nil {
		if err := p.store.Set(signedOutKey, nil); err != nil {
			return fmt.Errorf("clear sign-out marker: %w", err)
		}
	}
	token, err := p.source()
	if err != nil {
		return fmt.Errorf("read identity token: %w", err)
	}
	if token == "" {
		return errors.New("no identity token configured")
	}
	identity, err := parseToken(token)
	if err != nil {
		return err
	}
	p.notify(identity, token)
	return nil
}

// SignOut forgets the token and persists the signed-out marker so the next
// run binds as absent. No notification is sent; the controller restarts the
// application right after.
func (p *Provider) SignOut() error {
	p.current = nil
	p.token = ""
	if p.store != nil {
		return p.store.Set(signedOutKey, true)
	}
	return nil
}

func (p *Provider) signedOut() bool {
	if p.store == nil {
		return false
	}
	var out bool
	return p.store.Get(signedOutKey, &out) && out
}

// AuthHeaders returns the request headers authenticating the current user.
func (p *Provider) AuthHeaders() (map[string]string, error) {
	if p.current == nil {
		return nil, errors.New("no user in session")
	}
	return map[string]string{headerName: valuePrefix + p.token}, nil
}

// notify propagates an auth-state change, suppressing duplicates for the
// same identity so re-binds and repeated sign-ins stay quiet.
func (p *Provider) notify(identity *core.Identity, token string) {
	if identity != nil && p.current != nil && identity.UID == p.current.UID {
		return
	}
	p.current = identity
	p.token = token
	if p.onChange != nil {
		p.onChange(identity)
	}
}

func (p *Provider) fail(err error) {
	if p.onError != nil {
		p.onError(err)
	}
}

func parseToken(token string) (*core.Identity, error) {
	var claims idClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("parse identity token: %w", err)
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("identity token expired")
	}
	if claims.Subject == "" && claims.Email == "" {
		return nil, errors.New("identity token carries no subject")
	}
	uid := claims.Subject
	if uid == "" {
		uid = claims.Email
	}
	return &core.Identity{
		UID:         uid,
		DisplayName: claims.Name,
		Email:       claims.Email,
		PhotoURL:    claims.Picture,
	}, nil
}
