package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/jaidev/gold-tracker-backend/internal/api/response"
)

// APIKeyMiddleware guards a route group with a shared key supplied in the
// X-API-Key header and configured through the INTERNAL_API_KEY environment
// variable. When no key is configured, the group is closed entirely.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusServiceUnavailable, "unauthorized", "API key not configured")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
