package middleware

import (
	"encoding/json"
	"net/http"

	"portfolio-app/backend/handlers"
)

// RequireAuth rejects requests without a logged-in identity in the session.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := handlers.GetCurrentUser(r)
		if user == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Authentication required"})
			return
		}
		next(w, r)
	}
}
