package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DharmikCH/altscore-bfa-go/internal/domain"
	"github.com/DharmikCH/altscore-bfa-go/internal/handler"
	"github.com/DharmikCH/altscore-bfa-go/internal/infra/memstore"
	"github.com/DharmikCH/altscore-bfa-go/internal/infra/observability"
	"github.com/DharmikCH/altscore-bfa-go/internal/service"

	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	users := memstore.NewUserStore()
	sessions := memstore.NewSessionStore(time.Minute)
	metrics := observability.NewMetrics(sessions.Len)
	workflow := service.NewWorkflowService(users, sessions, "test-secret", time.Minute, zap.NewNop())
	scoring := service.NewScoringService(nil, metrics, zap.NewNop())
	return handler.NewRouter(workflow, scoring, sessions, metrics, zap.NewNop())
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestCreateSessionIssuesToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/session", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp domain.SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
}

func TestSessionRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}

func TestNavigateGuardOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	// Bootstrap a session.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/session", nil))
	var created domain.SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Ask for the dashboard while logged out.
	body, _ := json.Marshal(domain.NavigateRequest{Step: "dashboard"})
	req := httptest.NewRequest(http.MethodPost, "/v1/session/navigate", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+created.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var nav domain.NavigateResponse
	if err := json.NewDecoder(rec.Body).Decode(&nav); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if nav.CurrentStep != domain.StepAuth {
		t.Errorf("expected auth step, got %q", nav.CurrentStep)
	}
}

func TestScoringMetricsSnapshot(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/metrics/scoring", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var snap domain.ScoringMetrics
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Period != "all_time" {
		t.Errorf("expected all_time period, got %q", snap.Period)
	}
}
