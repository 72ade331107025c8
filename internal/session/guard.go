package session

import (
	"fmt"
	"sync"

	"golang.org/x/oauth2"

	"taskboard/internal/service"
)

// Ensure Guard can authorize requests through oauth2.Transport.
var _ oauth2.TokenSource = (*Guard)(nil)

// Guard gates every remote call on the presence of an access credential.
// When the credential is missing or rejected it hands control to the
// authentication surface through the redirect callback.
type Guard struct {
	store    Store
	mu       sync.Mutex
	redirect func()
}

// NewGuard creates a guard over store. redirect may be nil.
func NewGuard(store Store, redirect func()) *Guard {
	return &Guard{store: store, redirect: redirect}
}

// SetRedirect replaces the redirect callback.
func (g *Guard) SetRedirect(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.redirect = fn
}

// Authenticated reports whether an access credential is stored.
func (g *Guard) Authenticated() bool {
	_, ok := g.store.Get(AccessTokenKey)
	return ok
}

// Require returns the access credential. If absent it redirects and
// returns ErrUnauthenticated; the caller must not proceed.
func (g *Guard) Require() (string, error) {
	token, ok := g.store.Get(AccessTokenKey)
	if !ok {
		g.doRedirect()
		return "", service.ErrUnauthenticated
	}
	return token, nil
}

// Token implements oauth2.TokenSource.
func (g *Guard) Token() (*oauth2.Token, error) {
	access, err := g.Require()
	if err != nil {
		return nil, err
	}
	refresh, _ := g.store.Get(RefreshTokenKey)
	return &oauth2.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}, nil
}

// Establish stores a freshly issued credential pair.
func (g *Guard) Establish(t service.Tokens) error {
	if t.AccessToken == "" {
		return &service.AuthError{Reason: "server returned no access token"}
	}
	if err := g.store.Set(AccessTokenKey, t.AccessToken); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}
	if err := g.store.Set(RefreshTokenKey, t.RefreshToken); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Invalidate clears both stored credentials.
func (g *Guard) Invalidate() error {
	return g.store.Delete(AccessTokenKey, RefreshTokenKey)
}

// Reject handles an authorization failure from the server:
// credentials are cleared and control goes to the authentication surface.
func (g *Guard) Reject() {
	_ = g.Invalidate()
	g.doRedirect()
}

func (g *Guard) doRedirect() {
	g.mu.Lock()
	fn := g.redirect
	g.mu.Unlock()
	if fn != nil {
		fn()
	}
}
