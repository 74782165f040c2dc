package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"goldrateservice/internal/auth"
)

const identityKey contextKey = "identity"

// TokenVerifier validates an Authorization header value.
type TokenVerifier interface {
	Verify(authorization string) (auth.Identity, error)
}

// IdentityFromContext returns the identity bound by BearerAuth, or the zero value.
func IdentityFromContext(ctx context.Context) auth.Identity {
	id, _ := ctx.Value(identityKey).(auth.Identity)
	return id
}

type authFailure struct {
	Message string `json:"message"`
}

// BearerAuth rejects requests without the static bearer token: 401 when no
// token is supplied, 403 when it does not match.
func BearerAuth(verifier TokenVerifier, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := verifier.Verify(r.Header.Get("Authorization"))
			if err != nil {
				status := http.StatusForbidden
				msg := "Unauthorized: invalid token"
				if errors.Is(err, auth.ErrMissingCredential) {
					status = http.StatusUnauthorized
					msg = "Unauthorized: no token provided"
				}
				logger.Warnw("Bearer authentication failed",
					"request_id", RequestIDFromContext(r.Context()),
					"path", r.URL.Path,
					"status", status,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_ = json.NewEncoder(w).Encode(authFailure{Message: msg})
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
