package handler

import (
	"encoding/json"
	"net/http"

	"github.com/DharmikCH/altscore-bfa-go/internal/domain"
	"github.com/DharmikCH/altscore-bfa-go/internal/service"

	"go.uber.org/zap"
)

// createSessionHandler starts a fresh anonymous session.
// POST /v1/session
func createSessionHandler(workflow *service.WorkflowService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _, err := workflow.StartSession(r.Context())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, domain.SessionResponse{Token: token})
	}
}

// getSessionHandler returns the full session snapshot.
// GET /v1/session
func getSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		writeJSON(w, http.StatusOK, sess.Snapshot())
	}
}

// patchFormHandler merges form field writes into the session.
// PATCH /v1/session/form
func patchFormHandler(workflow *service.WorkflowService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.FormPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.Fields) == 0 {
			writeError(w, http.StatusBadRequest, "no fields to update")
			return
		}

		sess := sessionFromContext(r.Context())
		workflow.UpdateForm(r.Context(), sess, req.Fields)
		writeJSON(w, http.StatusOK, sess.Snapshot())
	}
}

// navigateHandler commits a step change through the guard.
// POST /v1/session/navigate
func navigateHandler(workflow *service.WorkflowService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.NavigateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		sess := sessionFromContext(r.Context())
		actual, err := workflow.Navigate(r.Context(), sess, req.Step)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.NavigateResponse{CurrentStep: actual})
	}
}

// selectProfileHandler records the chosen borrower profile.
// PUT /v1/session/profile
func selectProfileHandler(workflow *service.WorkflowService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SelectProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		sess := sessionFromContext(r.Context())
		if err := workflow.SelectProfile(r.Context(), sess, req.Profile); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, sess.Snapshot())
	}
}
