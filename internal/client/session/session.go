// Package session holds the durable auth state: the token and identity
// written on successful login and cleared on logout or cold start at the
// root route.
//
// The state is a single shared value with last-writer-wins semantics. Every
// read goes to the store, so a concurrent logout is always observed; callers
// must not cache the token across blocking operations.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storyshare/internal/client/models"
	"storyshare/internal/client/repositories/metadata"
)

// authKey is the metadata key carrying the serialized auth record.
const authKey = "auth_data"

// Manager reads and writes the session record through the metadata
// partition of the local record store.
type Manager struct {
	repo metadata.Repository
}

func NewManager(repo metadata.Repository) *Manager {
	return &Manager{repo: repo}
}

// Set persists the auth record.
func (m *Manager) Set(ctx context.Context, auth models.SessionAuth) error {
	data, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to encode auth data: %w", err)
	}
	return m.repo.Set(ctx, authKey, data)
}

// Get returns the current auth record. Absent or unreadable state comes
// back as the zero value — "signed out" is never an error.
func (m *Manager) Get(ctx context.Context) models.SessionAuth {
	data, err := m.repo.Get(ctx, authKey)
	if err != nil || data == nil {
		return models.SessionAuth{}
	}
	var auth models.SessionAuth
	if err := json.Unmarshal(data, &auth); err != nil {
		return models.SessionAuth{}
	}
	return auth
}

// Token returns the current token, freshly read. Empty when signed out.
func (m *Manager) Token(ctx context.Context) string {
	return m.Get(ctx).Token
}

// Clear removes the auth record.
func (m *Manager) Clear(ctx context.Context) error {
	return m.repo.Delete(ctx, authKey)
}

// SignedIn reports whether a usable token is present. A token that parses
// as a JWT with an expiry in the past counts as signed out; a token that
// does not parse is still accepted — the server is authoritative.
func (m *Manager) SignedIn(ctx context.Context) bool {
	auth := m.Get(ctx)
	if auth.Empty() {
		return false
	}
	return !tokenExpired(auth.Token)
}

// ClearAtRoot clears the session when the app cold-starts at the root
// route, so the login page is always the first thing a fresh visit sees.
func (m *Manager) ClearAtRoot(ctx context.Context, hash string) error {
	if hash == "" || hash == "#" || hash == "#/" {
		return m.Clear(ctx)
	}
	return nil
}

func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
