package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"estatedesk/internal/util"
)

type contextKey string

// ClaimsContextKey holds the decoded admin claims for downstream handlers
const ClaimsContextKey contextKey = "claims"

// RequireAuth guards admin routes with a bearer token. A missing token is
// 401; a token that fails verification or has expired is 403.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"error": "Invalid authorization header format"})
			return
		}

		claims, err := util.ValidateToken(parts[1])
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, util.ErrExpiredToken) {
				message = "Token expired"
			}
			writeJSON(w, http.StatusForbidden, map[string]interface{}{"error": message})
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the admin claims attached by RequireAuth
func ClaimsFromContext(ctx context.Context) (*util.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*util.Claims)
	return claims, ok
}
