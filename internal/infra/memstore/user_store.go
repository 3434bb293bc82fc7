// Package memstore implements the user and session stores in process
// memory. Nothing here survives a restart: the system explicitly scopes
// out persistence, so the stores are maps behind the port interfaces and
// can be swapped for real storage without touching the services.
package memstore

import (
	"context"
	"strings"
	"sync"

	"github.com/DharmikCH/altscore-bfa-go/internal/domain"
)

// UserStore is an in-memory user registry keyed by email.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewUserStore creates an empty registry.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*domain.User)}
}

// GetByEmail returns the user with that email, or (nil, nil) when absent.
func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[normalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

// Create registers a new user. Email uniqueness is the invariant: a
// duplicate fails with ErrConflict and leaves the set unchanged.
func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(user.Email)
	if _, exists := s.users[key]; exists {
		return &domain.ErrConflict{Message: "email already registered"}
	}

	copied := *user
	copied.Email = key
	s.users[key] = &copied
	return nil
}

// UpdateDisplayName changes the rendered name of a registered user.
func (s *UserStore) UpdateDisplayName(_ context.Context, email, name string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[normalizeEmail(email)]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "user", ID: email}
	}
	u.DisplayName = name
	copied := *u
	return &copied, nil
}

// Len reports the registered user count.
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
