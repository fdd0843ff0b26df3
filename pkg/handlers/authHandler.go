package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ilyaedelshtein/kornit-chat/pkg/auth"
	"github.com/ilyaedelshtein/kornit-chat/pkg/metrics"
	"github.com/ilyaedelshtein/kornit-chat/pkg/models"
	"github.com/ilyaedelshtein/kornit-chat/pkg/store"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	store         *store.Store
	authenticator *auth.Authenticator
	tokens        *auth.TokenIssuer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(s *store.Store, authenticator *auth.Authenticator, tokens *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{
		store:         s,
		authenticator: authenticator,
		tokens:        tokens,
	}
}

// Routes returns auth routes
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(h.tokens))
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
	})

	return r
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	User  models.AuthUser `json:"user"`
	Token string          `json:"token"`
}

// Login verifies the demo credentials and issues a session token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Username and password are required"})
		return
	}

	h.store.LoginStart()

	if err := h.authenticator.Login(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.store.LoginFailure("Invalid username or password")
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, map[string]string{"error": "Invalid username or password"})
			return
		}
		log.Error().Err(err).Msg("Login aborted")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "Login failed"})
		return
	}

	token, err := h.tokens.Issue(req.Username)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue session token")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "Failed to generate token"})
		return
	}

	h.store.LoginSuccess(req.Username)
	metrics.LoginAttempts.WithLabelValues("success").Inc()

	render.JSON(w, r, AuthResponse{
		User:  models.AuthUser{Username: req.Username},
		Token: token,
	})
}

// Logout clears the session. Conversations survive a logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Logout()
	render.Status(r, http.StatusNoContent)
	render.NoContent(w, r)
}

// Me returns the authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	username := GetUsernameFromContext(r.Context())
	render.JSON(w, r, models.AuthUser{Username: username})
}
