// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/DharmikCH/altscore-bfa-go/internal/domain"
)

// Scorer delivers a canonical request to the scoring service. Exactly one
// exchange is attempted per call; retrying is the caller's decision.
type Scorer interface {
	Score(ctx context.Context, req *domain.ScoreRequest) (*domain.ScoreResult, error)
}

// UserStore holds the registered borrower set. The in-memory implementation
// is deliberately swappable for a real credential store later.
type UserStore interface {
	// GetByEmail returns (nil, nil) when no user exists with that email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create fails with domain.ErrConflict, without mutation, when the
	// email is already registered.
	Create(ctx context.Context, user *domain.User) error
	UpdateDisplayName(ctx context.Context, email, name string) (*domain.User, error)
}

// SessionStore holds live sessions.
type SessionStore interface {
	Create(ctx context.Context) (*domain.Session, error)
	// Get returns (nil, nil) for an unknown or expired session id.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string)
	// Len reports the number of live sessions (for the sessions gauge).
	Len() int
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	Len() int
}
