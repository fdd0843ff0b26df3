package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/ilyaedelshtein/kornit-chat/pkg/auth"
)

// ContextKey is the type for context keys
type ContextKey string

// ContextKeyUsername is the context key for the authenticated username
const ContextKeyUsername ContextKey = "username"

// AuthMiddleware verifies session tokens and adds the username to the context.
func AuthMiddleware(tokens *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get token from Authorization header or query parameter (for WebSocket)
			authHeader := r.Header.Get("Authorization")
			token := ""
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					token = parts[1]
				}
			}
			if token == "" {
				// Fallback to token query parameter (used for WebSocket where headers can be tricky)
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"error": "Missing authorization token"})
				return
			}

			username, err := tokens.Validate(token)
			if err != nil {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"error": "Invalid or expired token"})
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUsername, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUsernameFromContext retrieves the authenticated username from the request context
func GetUsernameFromContext(ctx context.Context) string {
	username, ok := ctx.Value(ContextKeyUsername).(string)
	if !ok {
		return ""
	}
	return username
}
