package handler

import (
	"net/http"

	"github.com/DharmikCH/altscore-bfa-go/internal/infra/observability"
	"github.com/DharmikCH/altscore-bfa-go/internal/port"
	"github.com/DharmikCH/altscore-bfa-go/internal/service"

	"go.uber.org/zap"
)

// submitScoreHandler runs the submission flow for the session's form.
// POST /v1/score
func submitScoreHandler(scoring *service.ScoringService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		result, err := scoring.Submit(r.Context(), sess)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// scoringMetricsHandler serves the JSON counters snapshot.
// GET /v1/metrics/scoring
func scoringMetricsHandler(metrics *observability.Metrics, sessions port.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := 0
		if sessions != nil {
			active = sessions.Len()
		}
		writeJSON(w, http.StatusOK, metrics.ScoringSnapshot(active))
	}
}
