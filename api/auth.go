package api

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"swmmout/internal/rlog"
)

// bearerAuth returns middleware that requires a "Bearer <token>"
// Authorization header whose token matches tokenHash under
// bcrypt.CompareHashAndPassword. An empty tokenHash disables auth
// entirely, for local/dev use.
func bearerAuth(tokenHash string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if tokenHash == "" {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				rlog.Warn("request %s %s: missing bearer token", r.Method, r.URL.Path)
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			token := strings.TrimPrefix(header, prefix)
			if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err != nil {
				rlog.Warn("request %s %s: bearer token rejected", r.Method, r.URL.Path)
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}
}
