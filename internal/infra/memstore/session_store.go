package memstore

import (
	"context"
	"time"

	"github.com/DharmikCH/altscore-bfa-go/internal/domain"
	"github.com/DharmikCH/altscore-bfa-go/internal/infra/cache"

	"github.com/google/uuid"
)

// SessionStore keeps live sessions in the TTL cache; an idle session
// simply ages out and its token stops resolving.
type SessionStore struct {
	sessions *cache.InMemory[*domain.Session]
}

// NewSessionStore creates a session store whose entries live for ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{sessions: cache.New[*domain.Session](ttl)}
}

// Create allocates a fresh session in its initial state.
func (s *SessionStore) Create(_ context.Context) (*domain.Session, error) {
	sess := domain.NewSession(uuid.NewString())
	s.sessions.Set(sess.ID, sess)
	return sess, nil
}

// Get resolves a session id; (nil, nil) when unknown or expired.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, nil
	}
	return sess, nil
}

// Delete drops a session immediately.
func (s *SessionStore) Delete(_ context.Context, id string) {
	s.sessions.Delete(id)
}

// Len reports the live session count.
func (s *SessionStore) Len() int {
	return s.sessions.Len()
}
