package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/choretrack/internal/auth"
	"github.com/dukerupert/choretrack/internal/token"
)

// TokenHeader is the request header carrying the bearer token.
const TokenHeader = "X-Auth-Token"

// RequireAuth validates the bearer token and populates AuthContext.
// Requests with a missing, malformed, expired, or forged token are
// rejected before any handler logic runs.
func RequireAuth(tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(TokenHeader)
			if raw == "" {
				unauthorized(w, "no token, authorization denied")
				return
			}

			userID, err := tokens.Parse(raw)
			if err != nil {
				unauthorized(w, "token is not valid")
				return
			}

			ctx := auth.WithAuth(r.Context(), auth.AuthContext{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
