package session

import (
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"

	"sweetshop/internal/models"
)

// Manager holds the current authenticated user for the lifetime of the
// program. It is hydrated once from the Store at startup; afterwards login
// and logout write through to the Store so both stay in sync. Mutations run
// inside command goroutines while the event loop reads state, so every
// accessor takes the lock.
type Manager struct {
	store Store

	mu      sync.Mutex
	user    *models.User
	loading bool
}

// NewManager creates a manager in the loading state; call Hydrate before
// trusting User.
func NewManager(store Store) *Manager {
	return &Manager{store: store, loading: true}
}

// Hydrate reads the persisted session. A pair with an expired token is
// cleared instead of greeting the user and failing on the first request.
func (m *Manager) Hydrate() {
	token, user := m.store.Get()
	if token != "" && user != nil && tokenExpired(token, time.Now()) {
		_ = m.store.Clear()
		user = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if token != "" && user != nil {
		m.user = user
	}
	m.loading = false
}

// Loading reports whether the session is still unknown. Views must render a
// neutral waiting state while true.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// User returns the current user, or nil when signed out.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Login stores the pair durably and updates state. No network call is made;
// the caller already holds validated credentials.
func (m *Manager) Login(token string, user *models.User) error {
	if err := m.store.Set(token, user); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	return nil
}

// Logout clears both the store and the in-memory state.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	return m.store.Clear()
}

// tokenExpired reads the exp claim without verifying the signature (the
// client does not hold the signing secret). Tokens that are not JWTs or
// carry no exp claim are treated as opaque and never expire client-side.
func tokenExpired(raw string, now time.Time) bool {
	parser := new(jwt.Parser)
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return false
	}
	if _, ok := claims["exp"]; !ok {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), false)
}
