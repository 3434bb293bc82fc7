package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/DharmikCH/altscore-bfa-go/internal/domain"
	"github.com/DharmikCH/altscore-bfa-go/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const sessionKey contextKey = "session"

// sessionMiddleware resolves the bearer token into a live session and puts
// it on the request context. 401 on a missing, invalid or expired token;
// an expired session means the client starts a new one.
func sessionMiddleware(workflow *service.WorkflowService, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "missing session token")
				return
			}

			sess, err := workflow.SessionFromToken(r.Context(), token)
			if err != nil {
				var unauthorized *domain.ErrUnauthorized
				if errors.As(err, &unauthorized) {
					writeError(w, http.StatusUnauthorized, err.Error())
					return
				}
				logger.Error("session lookup failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFromContext pulls the session the middleware resolved.
func sessionFromContext(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(sessionKey).(*domain.Session)
	return sess
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", false
	}
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
