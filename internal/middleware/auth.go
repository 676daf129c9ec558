package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/dukanam/internal/auth"
	"github.com/dukerupert/dukanam/internal/model"
)

// Users reports the logged-in user.
type Users interface {
	Get() (model.AuthUser, bool)
}

// RequireSession rejects requests with 401 while nobody is logged in and
// otherwise puts the user on the request context.
func RequireSession(users Users) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := users.Get()
			if !ok {
				writeError(w, http.StatusUnauthorized, "not logged in")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), u)))
		})
	}
}

// RequireAdmin checks that the authenticated user has the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsAdmin(r.Context()) {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
