package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ilyaedelshtein/kornit-chat/pkg/models"
	"github.com/ilyaedelshtein/kornit-chat/pkg/store"
)

// MessageActionsHandler handles per-message mutations
type MessageActionsHandler struct {
	store  *store.Store
	export *ExportHandler
}

// NewMessageActionsHandler creates a new message actions handler
func NewMessageActionsHandler(s *store.Store) *MessageActionsHandler {
	return &MessageActionsHandler{
		store:  s,
		export: NewExportHandler(s),
	}
}

// Routes returns message action routes
func (h *MessageActionsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.GetMessage)
	r.Put("/{id}/viewmode", h.SetViewMode)
	r.Post("/{id}/feedback", h.ToggleFeedback)
	r.Put("/{id}/feedback/comment", h.SetFeedbackComment)
	r.Post("/{id}/export", h.export.Export)

	return r
}

// SetViewModeRequest represents a request to switch a result presentation
type SetViewModeRequest struct {
	ViewMode string `json:"viewMode"`
}

// FeedbackRequest represents a feedback toggle
type FeedbackRequest struct {
	Feedback string `json:"feedback"`
}

// FeedbackCommentRequest carries the free-text comment for a dislike
type FeedbackCommentRequest struct {
	Comment string `json:"comment"`
}

// GetMessage returns a single message
func (h *MessageActionsHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "id")

	message, ok := h.store.Message(messageID)
	if !ok {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "Message not found"})
		return
	}

	render.JSON(w, r, message)
}

// SetViewMode switches a bot message between table, chart and combined views
func (h *MessageActionsHandler) SetViewMode(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "id")

	var req SetViewModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Invalid request body"})
		return
	}

	mode := models.ViewMode(req.ViewMode)
	if !mode.Valid() {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Invalid view mode"})
		return
	}

	if err := h.store.SetMessageViewMode(messageID, mode); err != nil {
		h.renderStoreError(w, r, err, "Failed to set view mode")
		return
	}

	message, _ := h.store.Message(messageID)
	render.JSON(w, r, message)
}

// ToggleFeedback applies like/dislike with toggle semantics: repeating the
// same feedback withdraws it
func (h *MessageActionsHandler) ToggleFeedback(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "id")

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Invalid request body"})
		return
	}

	fb := models.Feedback(req.Feedback)
	if fb == models.FeedbackNone || !fb.Valid() {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Invalid feedback value"})
		return
	}

	if err := h.store.ToggleMessageFeedback(messageID, fb); err != nil {
		h.renderStoreError(w, r, err, "Failed to set feedback")
		return
	}

	message, _ := h.store.Message(messageID)
	render.JSON(w, r, message)
}

// SetFeedbackComment attaches the free-text comment of a dislike
func (h *MessageActionsHandler) SetFeedbackComment(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "id")

	var req FeedbackCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := h.store.SetMessageFeedbackComment(messageID, req.Comment); err != nil {
		h.renderStoreError(w, r, err, "Failed to set feedback comment")
		return
	}

	message, _ := h.store.Message(messageID)
	render.JSON(w, r, message)
}

func (h *MessageActionsHandler) renderStoreError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, store.ErrMessageNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "Message not found"})
		return
	}
	log.Error().Err(err).Msg(fallback)
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, map[string]string{"error": fallback})
}
