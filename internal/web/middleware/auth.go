// Package middleware provides HTTP middleware for the web server.
package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jordanshaw/crmgrid/internal/config"
)

// BearerAuth returns middleware validating the Authorization bearer
// token against the configured API keys. When RequireAuth is false all
// requests pass; when it is true and no keys are configured, all
// requests are rejected (startup validation should prevent that state).
func BearerAuth(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.RequireAuth {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				slog.Warn("auth: missing bearer token",
					"path", r.URL.Path, "remote_addr", r.RemoteAddr)
				unauthorized(w, "missing bearer token")
				return
			}

			if !tokenValid(token, cfg.APIKeys) {
				slog.Warn("auth: invalid bearer token",
					"path", r.URL.Path, "remote_addr", r.RemoteAddr)
				unauthorized(w, "invalid bearer token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// tokenValid compares against every configured key in constant time so
// the comparison duration leaks nothing about which key matched.
func tokenValid(token string, keys []string) bool {
	valid := 0
	for _, key := range keys {
		valid |= subtle.ConstantTimeCompare([]byte(token), []byte(key))
	}
	return valid == 1
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
