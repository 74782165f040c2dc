package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"
)

type rateLimitFailure struct {
	Error string `json:"error"`
}

// RateLimit throttles requests per client IP using the given limiter.
func RateLimit(l *limiter.Limiter, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := l.GetIPKey(r)

			lctx, err := l.Get(r.Context(), key)
			if err != nil {
				logger.Errorw("Failed to get rate limit context", "ip", key, "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(rateLimitFailure{Error: "Internal server error during rate limit check"})
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

			if lctx.Reached {
				logger.Warnw("Rate limit exceeded",
					"request_id", RequestIDFromContext(r.Context()),
					"ip", key,
					"limit", lctx.Limit,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(rateLimitFailure{Error: "Too many requests. Please try again later."})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
