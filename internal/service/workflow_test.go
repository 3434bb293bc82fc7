package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DharmikCH/altscore-bfa-go/internal/domain"
	"github.com/DharmikCH/altscore-bfa-go/internal/infra/memstore"
	"github.com/DharmikCH/altscore-bfa-go/internal/service"

	"go.uber.org/zap"
)

func newWorkflow(t *testing.T) (*service.WorkflowService, *memstore.UserStore) {
	t.Helper()
	users := memstore.NewUserStore()
	sessions := memstore.NewSessionStore(time.Minute)
	return service.NewWorkflowService(users, sessions, "test-secret", time.Minute, zap.NewNop()), users
}

func startSession(t *testing.T, svc *service.WorkflowService) *domain.Session {
	t.Helper()
	_, sess, err := svc.StartSession(context.Background())
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	return sess
}

// --- Guard ---

func TestResolveStep(t *testing.T) {
	tests := []struct {
		loggedIn  bool
		requested domain.Step
		want      domain.Step
	}{
		{false, domain.StepLanding, domain.StepLanding},
		{false, domain.StepAuth, domain.StepAuth},
		{false, domain.StepProfileSelect, domain.StepAuth},
		{false, domain.StepForm, domain.StepAuth},
		{false, domain.StepDashboard, domain.StepAuth},
		{false, domain.StepSettings, domain.StepAuth},
		{true, domain.StepDashboard, domain.StepDashboard},
		{true, domain.StepSettings, domain.StepSettings},
		{true, domain.StepLanding, domain.StepLanding},
	}

	for _, tt := range tests {
		got := service.ResolveStep(tt.loggedIn, tt.requested)
		if got != tt.want {
			t.Errorf("ResolveStep(%v, %q) = %q, want %q", tt.loggedIn, tt.requested, got, tt.want)
		}
	}
}

func TestNavigate_ProtectedWhileLoggedOut(t *testing.T) {
	svc, _ := newWorkflow(t)
	sess := startSession(t, svc)

	actual, err := svc.Navigate(context.Background(), sess, "dashboard")
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if actual != domain.StepAuth {
		t.Errorf("expected redirect to auth, got %q", actual)
	}
	if snap := sess.Snapshot(); snap.CurrentStep != domain.StepAuth {
		t.Errorf("expected committed step auth, got %q", snap.CurrentStep)
	}
}

func TestNavigate_UnknownStep(t *testing.T) {
	svc, _ := newWorkflow(t)
	sess := startSession(t, svc)

	_, err := svc.Navigate(context.Background(), sess, "treasure-room")
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// --- Sign-up ---

func TestSignUp_Success(t *testing.T) {
	svc, _ := newWorkflow(t)
	sess := startSession(t, svc)

	resp, err := svc.SignUp(context.Background(), sess, &domain.SignUpRequest{
		Email:    "Ravi.Kumar@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	if resp.UserName != "Ravi.kumar" {
		t.Errorf("expected display name 'Ravi.kumar', got %q", resp.UserName)
	}
	if resp.CurrentStep != domain.StepProfileSelect {
		t.Errorf("expected step profile-select, got %q", resp.CurrentStep)
	}

	snap := sess.Snapshot()
	if !snap.LoggedIn {
		t.Error("expected session logged in after sign-up")
	}
}

func TestSignUp_EmptyLocalPartFallsBackToUser(t *testing.T) {
	svc, _ := newWorkflow(t)
	sess := startSession(t, svc)

	resp, err := svc.SignUp(context.Background(), sess, &domain.SignUpRequest{
		Email:    "@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if resp.UserName != "User" {
		t.Errorf("expected display name 'User', got %q", resp.UserName)
	}
}

func TestSignUp_MissingFields(t *testing.T) {
	svc, _ := newWorkflow(t)

	for _, req := range []*domain.SignUpRequest{
		{Email: "", Password: "pw"},
		{Email: "a@b.com", Password: ""},
	} {
		sess := startSession(t, svc)
		_, err := svc.SignUp(context.Background(), sess, req)
		var validation *domain.ErrValidation
		if !errors.As(err, &validation) {
			t.Errorf("req %+v: expected ErrValidation, got %v", req, err)
		}
		if snap := sess.Snapshot(); snap.LoggedIn {
			t.Errorf("req %+v: failed sign-up must not log in", req)
		}
	}
}

func TestSignUp_DuplicateEmailNoMutation(t *testing.T) {
	svc, users := newWorkflow(t)
	first := startSession(t, svc)

	if _, err := svc.SignUp(context.Background(), first, &domain.SignUpRequest{
		Email: "dup@example.com", Password: "one",
	}); err != nil {
		t.Fatalf("first sign up: %v", err)
	}

	second := startSession(t, svc)
	_, err := svc.SignUp(context.Background(), second, &domain.SignUpRequest{
		Email: "dup@example.com", Password: "two",
	})
	var conflict *domain.ErrConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if users.Len() != 1 {
		t.Errorf("expected user set cardinality 1, got %d", users.Len())
	}
	if snap := second.Snapshot(); snap.LoggedIn {
		t.Error("duplicate sign-up must not log the session in")
	}
}

// --- Sign-in ---

func TestSignIn_Success(t *testing.T) {
	svc, _ := newWorkflow(t)
	signup := startSession(t, svc)
	if _, err := svc.SignUp(context.Background(), signup, &domain.SignUpRequest{
		Email: "meera@example.com", Password: "pw123",
	}); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	sess := startSession(t, svc)
	resp, err := svc.SignIn(context.Background(), sess, &domain.SignInRequest{
		Email: "meera@example.com", Password: "pw123",
	})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if resp.CurrentStep != domain.StepDashboard {
		t.Errorf("expected step dashboard, got %q", resp.CurrentStep)
	}
	if snap := sess.Snapshot(); !snap.LoggedIn || snap.UserName != "Meera" {
		t.Errorf("expected logged-in session for Meera, got %+v", snap)
	}
}

func TestSignIn_WrongPassword(t *testing.T) {
	svc, users := newWorkflow(t)
	signup := startSession(t, svc)
	if _, err := svc.SignUp(context.Background(), signup, &domain.SignUpRequest{
		Email: "meera@example.com", Password: "pw123",
	}); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	sess := startSession(t, svc)
	_, err := svc.SignIn(context.Background(), sess, &domain.SignInRequest{
		Email: "meera@example.com", Password: "wrong",
	})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	// The message must not reveal whether the email exists.
	if unauthorized.Error() != "invalid credentials" {
		t.Errorf("expected opaque 'invalid credentials', got %q", unauthorized.Error())
	}
	if snap := sess.Snapshot(); snap.LoggedIn {
		t.Error("failed sign-in must not log in")
	}
	if users.Len() != 1 {
		t.Errorf("failed sign-in must not mutate the user set")
	}
}

func TestSignIn_UnknownEmail(t *testing.T) {
	svc, _ := newWorkflow(t)
	sess := startSession(t, svc)

	_, err := svc.SignIn(context.Background(), sess, &domain.SignInRequest{
		Email: "nobody@example.com", Password: "pw",
	})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if unauthorized.Error() != "invalid credentials" {
		t.Errorf("unknown email must produce the same message as a wrong password")
	}
}

// --- Logout ---

func TestSignOut_ClearsScoreKeepsHistory(t *testing.T) {
	svc, _ := newWorkflow(t)
	sess := startSession(t, svc)
	if _, err := svc.SignUp(context.Background(), sess, &domain.SignUpRequest{
		Email: "x@y.com", Password: "pw",
	}); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	sess.ApplyScore(&domain.ScoreResult{AlternativeCreditScore: 712, RiskBand: "low"}, "2026-09-01")

	resp := svc.SignOut(context.Background(), sess)
	if resp.CurrentStep != domain.StepLanding {
		t.Errorf("expected step landing, got %q", resp.CurrentStep)
	}

	snap := sess.Snapshot()
	if snap.LoggedIn {
		t.Error("expected logged out")
	}
	if snap.CreditScore != nil || snap.RiskBand != "" {
		t.Errorf("logout must clear score and risk band, got %+v", snap)
	}
	if len(snap.ScoreHistory) != 1 {
		t.Errorf("logout must preserve score history, got %d entries", len(snap.ScoreHistory))
	}
}

// --- Tokens ---

func TestSessionFromToken_RoundTrip(t *testing.T) {
	svc, _ := newWorkflow(t)
	token, sess, err := svc.StartSession(context.Background())
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	got, err := svc.SessionFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve token: %v", err)
	}
	if got.ID != sess.ID {
		t.Errorf("expected session %q, got %q", sess.ID, got.ID)
	}
}

func TestSessionFromToken_Garbage(t *testing.T) {
	svc, _ := newWorkflow(t)

	_, err := svc.SessionFromToken(context.Background(), "not-a-token")
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
