// ABOUTME: Process-wide authentication state for the booking client
// ABOUTME: Holds the bearer token and current user, mirrored to a persistent token slot

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abhinavhh/hotel-booking-client/internal/models"
)

// ErrEmptyToken is returned when authenticating with an empty token
var ErrEmptyToken = errors.New("empty token")

// Manager owns the session. A token is held if and only if the session is authenticated.
// The zero value is not usable; construct with New.
type Manager struct {
	mu    sync.RWMutex
	store Store
	token string
	user  *models.User
}

// New creates an anonymous session backed by store.
// A nil store keeps the token in memory only.
func New(store Store) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Manager{store: store}
}

// Init reads the persisted token, if any. A missing slot leaves the session anonymous.
func (m *Manager) Init(ctx context.Context) error {
	token, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading token: %w", err)
	}

	m.mu.Lock()
	m.token = token
	m.user = nil
	m.mu.Unlock()
	return nil
}

// Token returns the held bearer token, or "" when anonymous
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// IsAuthenticated reports whether a token is held
func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}

// User returns a copy of the recorded user, or nil
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// SetAuthenticated persists token and records user. An empty token is rejected.
func (m *Manager) SetAuthenticated(ctx context.Context, token string, user *models.User) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := m.store.Save(ctx, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	m.mu.Lock()
	m.token = token
	m.user = copyUser(user)
	m.mu.Unlock()
	return nil
}

// SetUser records user without changing the token
func (m *Manager) SetUser(user *models.User) {
	m.mu.Lock()
	m.user = copyUser(user)
	m.mu.Unlock()
}

// Clear drops the token, the user, and the persisted slot.
// In-memory state is cleared even when the store fails.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
