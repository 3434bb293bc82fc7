// Package service — WorkflowService owns the application step machine:
// session lifecycle, the login guard over protected steps, and the sign-up /
// sign-in / logout transitions. ScoringService (scoring.go) owns the
// submission flow.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/DharmikCH/altscore-bfa-go/internal/domain"
	"github.com/DharmikCH/altscore-bfa-go/internal/port"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var workflowTracer = otel.Tracer("service/workflow")

// ResolveStep is the workflow guard as a pure transition function:
// given the login state and a requested step, it returns the step actually
// reached. A protected step requested by a logged-out session resolves to
// auth; everything else passes through. It runs on every committed step
// change, so a protected page is never rendered to a logged-out session,
// not even for one frame.
func ResolveStep(loggedIn bool, requested domain.Step) domain.Step {
	if requested.Protected() && !loggedIn {
		return domain.StepAuth
	}
	return requested
}

// WorkflowService orchestrates session and auth transitions.
type WorkflowService struct {
	users     port.UserStore
	sessions  port.SessionStore
	jwtSecret []byte
	accessTTL time.Duration
	logger    *zap.Logger
}

// NewWorkflowService creates a new workflow service.
func NewWorkflowService(users port.UserStore, sessions port.SessionStore, jwtSecret string, accessTTL time.Duration, logger *zap.Logger) *WorkflowService {
	return &WorkflowService{
		users:     users,
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
		logger:    logger,
	}
}

// ============================================================
// Sessions
// ============================================================

// StartSession allocates a fresh session and signs a bearer token for it.
func (s *WorkflowService) StartSession(ctx context.Context) (string, *domain.Session, error) {
	ctx, span := workflowTracer.Start(ctx, "WorkflowService.StartSession")
	defer span.End()

	sess, err := s.sessions.Create(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sess.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.Info("session started", zap.String("session_id", sess.ID))
	return token, sess, nil
}

// SessionFromToken validates a bearer token and resolves its session.
func (s *WorkflowService) SessionFromToken(ctx context.Context, token string) (*domain.Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, &domain.ErrUnauthorized{Message: "invalid session token"}
	}

	claims := parsed.Claims.(*jwt.RegisteredClaims)
	sess, err := s.sessions.Get(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess == nil {
		return nil, &domain.ErrUnauthorized{Message: "session expired"}
	}
	return sess, nil
}

// Navigate commits a step change through the guard and returns the step
// actually reached.
func (s *WorkflowService) Navigate(_ context.Context, sess *domain.Session, requested string) (domain.Step, error) {
	step := domain.Step(requested)
	if !step.Valid() {
		return "", &domain.ErrValidation{Field: "step", Message: "unknown step"}
	}
	actual := sess.Navigate(step, ResolveStep)
	if actual != step {
		s.logger.Debug("navigation redirected",
			zap.String("session_id", sess.ID),
			zap.String("requested", string(step)),
			zap.String("actual", string(actual)),
		)
	}
	return actual, nil
}

// SelectProfile records the chosen borrower profile. Profile selection is a
// protected page, so a logged-out session is refused.
func (s *WorkflowService) SelectProfile(_ context.Context, sess *domain.Session, profile string) error {
	snap := sess.Snapshot()
	if !snap.LoggedIn {
		return &domain.ErrUnauthorized{Message: "login required"}
	}
	sess.SelectProfile(profile)
	return nil
}

// UpdateForm merges form field writes into the session.
func (s *WorkflowService) UpdateForm(_ context.Context, sess *domain.Session, fields map[string]string) {
	sess.UpdateForm(fields)
}

// ============================================================
// Sign-up — POST /v1/auth/signup
// ============================================================

func (s *WorkflowService) SignUp(ctx context.Context, sess *domain.Session, req *domain.SignUpRequest) (*domain.AuthResponse, error) {
	ctx, span := workflowTracer.Start(ctx, "WorkflowService.SignUp")
	defer span.End()

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, &domain.ErrValidation{Field: "email", Message: "email is required"}
	}
	if req.Password == "" {
		return nil, &domain.ErrValidation{Field: "password", Message: "password is required"}
	}

	user := &domain.User{
		Email:       email,
		Password:    req.Password,
		DisplayName: deriveDisplayName(email),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	sess.Login(user, domain.StepProfileSelect)

	s.logger.Info("user signed up",
		zap.String("session_id", sess.ID),
		zap.String("display_name", user.DisplayName),
	)

	return &domain.AuthResponse{
		UserName:    user.DisplayName,
		CurrentStep: domain.StepProfileSelect,
	}, nil
}

// ============================================================
// Sign-in — POST /v1/auth/signin
// ============================================================

func (s *WorkflowService) SignIn(ctx context.Context, sess *domain.Session, req *domain.SignInRequest) (*domain.AuthResponse, error) {
	ctx, span := workflowTracer.Start(ctx, "WorkflowService.SignIn")
	defer span.End()

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	// One message for both unknown email and wrong password: the response
	// must not reveal whether the email is registered.
	if user == nil || user.Password != req.Password {
		s.logger.Warn("sign-in failed", zap.String("session_id", sess.ID))
		return nil, &domain.ErrUnauthorized{Message: "invalid credentials"}
	}

	sess.Login(user, domain.StepDashboard)

	s.logger.Info("user signed in",
		zap.String("session_id", sess.ID),
		zap.String("display_name", user.DisplayName),
	)

	return &domain.AuthResponse{
		UserName:    user.DisplayName,
		CurrentStep: domain.StepDashboard,
	}, nil
}

// ============================================================
// Logout — POST /v1/auth/logout
// ============================================================

func (s *WorkflowService) SignOut(_ context.Context, sess *domain.Session) *domain.AuthResponse {
	sess.Logout()
	s.logger.Info("user signed out", zap.String("session_id", sess.ID))
	return &domain.AuthResponse{CurrentStep: domain.StepLanding}
}

// ============================================================
// Profile update — PUT /v1/auth/profile
// ============================================================

func (s *WorkflowService) UpdateDisplayName(ctx context.Context, sess *domain.Session, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &domain.ErrValidation{Field: "displayName", Message: "display name is required"}
	}

	snap := sess.Snapshot()
	if !snap.LoggedIn {
		return &domain.ErrUnauthorized{Message: "login required"}
	}

	sessUser, err := s.sessionUser(ctx, sess)
	if err != nil {
		return err
	}
	if _, err := s.users.UpdateDisplayName(ctx, sessUser.Email, name); err != nil {
		return err
	}
	sess.SetDisplayName(name)
	return nil
}

func (s *WorkflowService) sessionUser(ctx context.Context, sess *domain.Session) (*domain.User, error) {
	email := sess.Email()
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, &domain.ErrNotFound{Resource: "user", ID: email}
	}
	return user, nil
}

// deriveDisplayName turns the local part of an email into a rendered name:
// lower-cased, first letter capitalized. An empty local part falls back to
// the literal "User".
func deriveDisplayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	local = strings.ToLower(strings.TrimSpace(local))
	if local == "" {
		return "User"
	}
	first, size := utf8.DecodeRuneInString(local)
	return string(unicode.ToUpper(first)) + local[size:]
}
