package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"silentsos-server/utils/errors"
)

// AuthRateLimitMiddleware limits signup and login attempts per client IP.
// A limit of 0 disables it.
func AuthRateLimitMiddleware(requestsPerMinute int) func(http.Handler) http.Handler {
	if requestsPerMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			WriteError(w, errors.NewAPIError("RATE_LIMITED", "Too many requests, try again later", http.StatusTooManyRequests))
		}),
	)
}
