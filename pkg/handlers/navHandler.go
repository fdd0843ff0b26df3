package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/ilyaedelshtein/kornit-chat/pkg/nav"
)

// NavHandler lets the client shell reconcile its URL against the store
type NavHandler struct {
	binder *nav.Binder
}

// NewNavHandler creates a new navigation handler
func NewNavHandler(binder *nav.Binder) *NavHandler {
	return &NavHandler{binder: binder}
}

// Routes returns navigation routes
func (h *NavHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/resolve", h.Resolve)
	r.Post("/select", h.Select)
	return r
}

// SelectRequest represents an explicit chat selection
type SelectRequest struct {
	ChatID string `json:"chatId"`
}

// Resolve reconciles the chat id from the client's URL with the store.
// An absent chat parameter means the chat root.
func (h *NavHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	chatID := r.URL.Query().Get("chat")
	render.JSON(w, r, h.binder.Resolve(chatID))
}

// Select activates a chat the user explicitly picked
func (h *NavHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Invalid request body"})
		return
	}
	if req.ChatID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Chat ID is required"})
		return
	}
	render.JSON(w, r, h.binder.Select(req.ChatID))
}
