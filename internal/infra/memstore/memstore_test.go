package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DharmikCH/altscore-bfa-go/internal/domain"
	"github.com/DharmikCH/altscore-bfa-go/internal/infra/memstore"
)

func TestUserStore_CreateAndGet(t *testing.T) {
	store := memstore.NewUserStore()
	ctx := context.Background()

	err := store.Create(ctx, &domain.User{Email: "Asha@example.com", Password: "pw", DisplayName: "Asha"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Lookup is case-insensitive on email.
	u, err := store.GetByEmail(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if u == nil || u.DisplayName != "Asha" {
		t.Errorf("expected user Asha, got %+v", u)
	}
}

func TestUserStore_DuplicateEmailNoMutation(t *testing.T) {
	store := memstore.NewUserStore()
	ctx := context.Background()

	if err := store.Create(ctx, &domain.User{Email: "x@y.com", Password: "one"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	err := store.Create(ctx, &domain.User{Email: "x@y.com", Password: "two"})
	var conflict *domain.ErrConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if store.Len() != 1 {
		t.Errorf("expected user set cardinality 1, got %d", store.Len())
	}
	u, _ := store.GetByEmail(ctx, "x@y.com")
	if u.Password != "one" {
		t.Errorf("duplicate sign-up must not mutate the existing user")
	}
}

func TestUserStore_GetMissingIsNilNil(t *testing.T) {
	store := memstore.NewUserStore()

	u, err := store.GetByEmail(context.Background(), "ghost@example.com")
	if err != nil || u != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", u, err)
	}
}

func TestSessionStore_CreateGetDelete(t *testing.T) {
	store := memstore.NewSessionStore(time.Minute)
	ctx := context.Background()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.CurrentStep != domain.StepLanding {
		t.Errorf("new session must start at landing, got %q", sess.CurrentStep)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil || got == nil {
		t.Fatalf("expected session back, got (%v, %v)", got, err)
	}

	store.Delete(ctx, sess.ID)
	got, _ = store.Get(ctx, sess.ID)
	if got != nil {
		t.Errorf("expected deleted session to be gone")
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	store := memstore.NewSessionStore(50 * time.Millisecond)
	ctx := context.Background()

	sess, _ := store.Create(ctx)
	time.Sleep(100 * time.Millisecond)

	got, err := store.Get(ctx, sess.ID)
	if err != nil || got != nil {
		t.Errorf("expected expired session to resolve to (nil, nil), got (%v, %v)", got, err)
	}
}
