package middleware

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"media-parser/internal/logging"
)

// unauthenticatedPaths are reachable without a token: probes and metrics
// scrapes come from infrastructure that holds no credentials.
var unauthenticatedPaths = map[string]bool{
	"/health":  true,
	"/healthz": true,
	"/livez":   true,
	"/readyz":  true,
	"/version": true,
}

// Auth returns middleware that checks a bearer token against the
// bcrypt-hashed token from configuration. An empty hash disables
// authentication entirely, which is the expected deployment next to a
// trusted host application.
func Auth(tokenHash string) func(http.Handler) http.Handler {
	enabled := tokenHash != ""
	if !enabled {
		logging.Warn("API_TOKEN_HASH not set, API authentication is disabled")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled || unauthenticatedPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok || bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)) != nil {
				logging.Debug("Rejected unauthenticated request: %s %s", r.Method, r.URL.Path)
				w.Header().Set("WWW-Authenticate", `Bearer realm="media-parser"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, prefix))
	return token, token != ""
}
