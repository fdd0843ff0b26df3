package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ilyaedelshtein/kornit-chat/pkg/bot"
	"github.com/ilyaedelshtein/kornit-chat/pkg/models"
	"github.com/ilyaedelshtein/kornit-chat/pkg/store"
)

// MessagesHandler handles message endpoints
type MessagesHandler struct {
	store     *store.Store
	responder *bot.Responder
	upgrader  websocket.Upgrader
}

// NewMessagesHandler creates a new messages handler
func NewMessagesHandler(s *store.Store, responder *bot.Responder) *MessagesHandler {
	return &MessagesHandler{
		store:     s,
		responder: responder,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in development
			},
		},
	}
}

// Routes returns message routes
func (h *MessagesHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListMessages)
	r.Post("/", h.SendMessage)
	r.Get("/stream", h.StreamEvents)

	return r
}

// SendMessageRequest represents a request to send a message
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse acknowledges an accepted message; the reply follows
// asynchronously
type SendMessageResponse struct {
	UserMessage models.Message `json:"userMessage"`
	ReplyStatus string         `json:"replyStatus"`
}

// ListMessages returns all messages in a conversation in thread order
func (h *MessagesHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "id")

	messages, err := h.store.MessagesForChat(chatID)
	if err != nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "Conversation not found"})
		return
	}

	render.JSON(w, r, messages)
}

// SendMessage appends a user message and schedules the assistant's reply
func (h *MessagesHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "id")

	if _, ok := h.store.Chat(chatID); !ok {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "Conversation not found"})
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Invalid request body"})
		return
	}
	if req.Content == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Message content is required"})
		return
	}

	// One question at a time per conversation.
	if h.responder.Pending(chatID) {
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, map[string]string{"error": "A reply is already pending for this conversation"})
		return
	}

	messageID, err := h.store.PostUserMessage(chatID, req.Content)
	if err != nil {
		if errors.Is(err, store.ErrChatNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, map[string]string{"error": "Conversation not found"})
			return
		}
		log.Error().Err(err).Msg("Failed to save user message")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "Failed to save message"})
		return
	}
	if err := h.responder.Schedule(chatID, req.Content); err != nil {
		if errors.Is(err, bot.ErrReplyPending) {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, map[string]string{"error": "A reply is already pending for this conversation"})
			return
		}
		log.Error().Err(err).Msg("Failed to schedule reply")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "Failed to schedule reply"})
		return
	}

	message, _ := h.store.Message(messageID)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, SendMessageResponse{
		UserMessage: message,
		ReplyStatus: "pending",
	})
}

// StreamEvents pushes store events for a conversation over a WebSocket, so the
// client sees the deferred reply and typing changes without polling
func (h *MessagesHandler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "id")

	if _, ok := h.store.Chat(chatID); !ok {
		http.Error(w, "Conversation not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade to WebSocket")
		return
	}
	defer conn.Close()

	log.Debug().Str("chat_id", chatID).Msg("WebSocket connection established")

	events := make(chan store.Event, 32)
	unsubscribe := h.store.Subscribe(func(ev store.Event) {
		// Typing changes carry no chat id and pass the filter.
		if ev.ChatID != "" && ev.ChatID != chatID {
			return
		}
		select {
		case events <- ev:
		default:
			// Slow consumer, drop rather than block the store.
		}
	})
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Debug().Err(err).Msg("WebSocket read error")
				}
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case ev := <-events:
			if err := conn.WriteJSON(ev); err != nil {
				log.Debug().Err(err).Msg("WebSocket write error")
				return
			}
			if ev.Type == store.EventChatDeleted {
				return
			}
		}
	}
}
