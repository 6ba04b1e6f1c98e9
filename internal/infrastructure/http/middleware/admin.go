package middleware

import (
	"net/http"

	"github.com/pksaconstruction/pksa-api/internal/infrastructure/auth"
)

// RequireAdminSession gates admin-only routes on the session cookie. It runs
// before any validation or store call; unauthenticated requests never reach
// the handler.
func RequireAdminSession(sessions *auth.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.VerifyRequest(r) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"success":false,"message":"Unauthorized. Admin access required."}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
