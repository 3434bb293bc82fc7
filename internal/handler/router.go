package handler

import (
	"net/http"

	"github.com/DharmikCH/altscore-bfa-go/internal/infra/observability"
	"github.com/DharmikCH/altscore-bfa-go/internal/port"
	"github.com/DharmikCH/altscore-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract defined for the scoring frontend.
func NewRouter(workflow *service.WorkflowService, scoring *service.ScoringService, sessions port.SessionStore, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// Session bootstrap — the only route without a bearer token.
		r.Post("/session", createSessionHandler(workflow, logger))

		// Everything else operates on an existing session.
		r.Group(func(r chi.Router) {
			r.Use(sessionMiddleware(workflow, logger))

			// Session state
			r.Get("/session", getSessionHandler())
			r.Patch("/session/form", patchFormHandler(workflow, logger))
			r.Post("/session/navigate", navigateHandler(workflow, logger))
			r.Put("/session/profile", selectProfileHandler(workflow, logger))

			// Auth transitions
			r.Post("/auth/signup", signUpHandler(workflow, logger))
			r.Post("/auth/signin", signInHandler(workflow, logger))
			r.Post("/auth/logout", signOutHandler(workflow, logger))
			r.Put("/auth/profile", updateDisplayNameHandler(workflow, logger))

			// Scoring
			r.Post("/score", submitScoreHandler(scoring, logger))
		})

		// Scoring counters snapshot (unauthenticated, like /metrics)
		r.Get("/metrics/scoring", scoringMetricsHandler(metrics, sessions))
	})

	return r
}
