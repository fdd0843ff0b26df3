package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ilyaedelshtein/kornit-chat/pkg/bot"
	"github.com/ilyaedelshtein/kornit-chat/pkg/nav"
	"github.com/ilyaedelshtein/kornit-chat/pkg/store"
)

// ConversationsHandler handles conversation endpoints
type ConversationsHandler struct {
	store     *store.Store
	responder *bot.Responder
	binder    *nav.Binder
}

// NewConversationsHandler creates a new conversations handler
func NewConversationsHandler(s *store.Store, responder *bot.Responder, binder *nav.Binder) *ConversationsHandler {
	return &ConversationsHandler{
		store:     s,
		responder: responder,
		binder:    binder,
	}
}

// Routes returns conversation routes
func (h *ConversationsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListConversations)
	r.Post("/", h.CreateConversation)
	r.Get("/{id}", h.GetConversation)
	r.Put("/{id}", h.UpdateConversation)
	r.Delete("/{id}", h.DeleteConversation)

	return r
}

// CreateConversationRequest represents a request to create a conversation
type CreateConversationRequest struct {
	Title string `json:"title"`
}

// UpdateConversationRequest represents a request to update a conversation
type UpdateConversationRequest struct {
	Title string `json:"title"`
}

// DeleteConversationResponse tells the client where to navigate after a delete
type DeleteConversationResponse struct {
	Navigation nav.Decision `json:"navigation"`
}

// ListConversations returns all conversations, most recently created first
func (h *ConversationsHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.store.ListChats())
}

// CreateConversation creates a new conversation and activates it
func (h *ConversationsHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req CreateConversationRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Invalid request body"})
			return
		}
	}

	chatID := h.store.CreateChat(req.Title)
	h.binder.Select(chatID)

	chat, ok := h.store.Chat(chatID)
	if !ok {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "Failed to create conversation"})
		return
	}

	log.Debug().Str("chat_id", chatID).Msg("Created conversation")

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, chat)
}

// GetConversation returns a specific conversation
func (h *ConversationsHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "id")

	chat, ok := h.store.Chat(chatID)
	if !ok {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "Conversation not found"})
		return
	}

	render.JSON(w, r, chat)
}

// UpdateConversation renames a conversation
func (h *ConversationsHandler) UpdateConversation(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "id")

	var req UpdateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Invalid request body"})
		return
	}
	if req.Title == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Title is required"})
		return
	}

	if err := h.store.SetChatTitle(chatID, req.Title); err != nil {
		if errors.Is(err, store.ErrChatNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, map[string]string{"error": "Conversation not found"})
			return
		}
		log.Error().Err(err).Msg("Failed to update conversation")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "Failed to update conversation"})
		return
	}

	chat, _ := h.store.Chat(chatID)
	render.JSON(w, r, chat)
}

// DeleteConversation removes a conversation with its messages and tells the
// client what to show next
func (h *ConversationsHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "id")
	activeChatID := h.store.CurrentChatID()

	// Drop any reply still in flight so it cannot land in a dead chat.
	h.responder.CancelForChat(chatID)

	if err := h.store.DeleteChatCascade(chatID); err != nil {
		if errors.Is(err, store.ErrChatNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, map[string]string{"error": "Conversation not found"})
			return
		}
		log.Error().Err(err).Msg("Failed to delete conversation")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "Failed to delete conversation"})
		return
	}

	decision := h.binder.AfterDelete(chatID, activeChatID)

	log.Debug().Str("chat_id", chatID).Msg("Deleted conversation")

	render.JSON(w, r, DeleteConversationResponse{Navigation: decision})
}
