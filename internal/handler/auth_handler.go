package handler

import (
	"encoding/json"
	"net/http"

	"github.com/DharmikCH/altscore-bfa-go/internal/domain"
	"github.com/DharmikCH/altscore-bfa-go/internal/service"

	"go.uber.org/zap"
)

// signUpHandler registers a new user and logs the session in.
// POST /v1/auth/signup
func signUpHandler(workflow *service.WorkflowService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SignUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		sess := sessionFromContext(r.Context())
		resp, err := workflow.SignUp(r.Context(), sess, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

// signInHandler authenticates an existing user.
// POST /v1/auth/signin
func signInHandler(workflow *service.WorkflowService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SignInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		sess := sessionFromContext(r.Context())
		resp, err := workflow.SignIn(r.Context(), sess, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// signOutHandler resets the session to its initial state.
// POST /v1/auth/logout
func signOutHandler(workflow *service.WorkflowService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		resp := workflow.SignOut(r.Context(), sess)
		writeJSON(w, http.StatusOK, resp)
	}
}

// updateDisplayNameHandler changes the rendered user name (settings page).
// PUT /v1/auth/profile
func updateDisplayNameHandler(workflow *service.WorkflowService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateDisplayNameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		sess := sessionFromContext(r.Context())
		if err := workflow.UpdateDisplayName(r.Context(), sess, req.DisplayName); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, sess.Snapshot())
	}
}
