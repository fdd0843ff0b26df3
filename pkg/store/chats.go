package store

import (
	"github.com/ilyaedelshtein/kornit-chat/pkg/models"
)

// CreateChat allocates a chat, makes it current and clears the empty-state
// flag. It never fails. An empty title defaults to "New Chat".
func (s *Store) CreateChat(title string) string {
	if title == "" {
		title = models.DefaultChatTitle
	}

	s.mu.Lock()
	id := s.newID()
	now := s.now()
	s.chats.ByID[id] = &models.Chat{
		ID:         id,
		Title:      title,
		MessageIDs: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	// Prepend for recent-first creation order.
	s.chats.AllIDs = append([]string{id}, s.chats.AllIDs...)
	s.chats.CurrentChatID = id
	s.chats.ShowEmptyState = false
	s.flushLocked()
	s.mu.Unlock()

	s.publish(Event{Type: EventChatCreated, ChatID: id})
	return id
}

// DeleteChat removes the chat record only. Callers that want the observable
// cascade should use DeleteChatCascade; this primitive mirrors the original
// two-step protocol and leaves the chat's messages untouched.
func (s *Store) DeleteChat(chatID string) error {
	s.mu.Lock()
	if _, ok := s.chats.ByID[chatID]; !ok {
		s.mu.Unlock()
		return ErrChatNotFound
	}
	s.deleteChatLocked(chatID)
	s.flushLocked()
	s.mu.Unlock()

	s.publish(Event{Type: EventChatDeleted, ChatID: chatID})
	return nil
}

// DeleteChatCascade removes the chat together with every message it owns.
// After it returns no message of the chat is reachable and the current-chat
// pointer no longer dangles.
func (s *Store) DeleteChatCascade(chatID string) error {
	s.mu.Lock()
	chat, ok := s.chats.ByID[chatID]
	if !ok {
		s.mu.Unlock()
		return ErrChatNotFound
	}
	s.deleteMessagesLocked(chat.MessageIDs)
	s.deleteChatLocked(chatID)
	s.flushLocked()
	s.mu.Unlock()

	s.publish(Event{Type: EventChatDeleted, ChatID: chatID})
	return nil
}

func (s *Store) deleteChatLocked(chatID string) {
	delete(s.chats.ByID, chatID)
	ids := s.chats.AllIDs[:0]
	for _, id := range s.chats.AllIDs {
		if id != chatID {
			ids = append(ids, id)
		}
	}
	s.chats.AllIDs = ids
	if s.chats.CurrentChatID == chatID {
		s.chats.CurrentChatID = ""
	}
}

// SetCurrentChat sets the pointer without validating existence; dangling
// references are reconciled by the navigation binder, not here.
func (s *Store) SetCurrentChat(chatID string) {
	s.mu.Lock()
	s.chats.CurrentChatID = chatID
	s.flushLocked()
	s.mu.Unlock()
}

// SetShowEmptyState toggles the empty-state flag.
func (s *Store) SetShowEmptyState(show bool) {
	s.mu.Lock()
	s.chats.ShowEmptyState = show
	s.flushLocked()
	s.mu.Unlock()
}

// ResetChatView clears the current chat and forces the empty state. Wired as
// the subscriber reaction to a successful login.
func (s *Store) ResetChatView() {
	s.mu.Lock()
	s.chats.CurrentChatID = ""
	s.chats.ShowEmptyState = true
	s.flushLocked()
	s.mu.Unlock()
}

// SetChatTitle renames a chat and bumps its updatedAt.
func (s *Store) SetChatTitle(chatID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats.ByID[chatID]
	if !ok {
		return ErrChatNotFound
	}
	chat.Title = title
	chat.UpdatedAt = s.now()
	s.flushLocked()
	return nil
}

// TouchChatUpdated bumps a chat's updatedAt.
func (s *Store) TouchChatUpdated(chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats.ByID[chatID]
	if !ok {
		return ErrChatNotFound
	}
	chat.UpdatedAt = s.now()
	s.flushLocked()
	return nil
}

// AddMessageToChat appends an already-created message id to the chat's
// ordered list and bumps updatedAt. Part of the granular protocol; most
// callers want PostUserMessage/PostBotMessage instead.
func (s *Store) AddMessageToChat(chatID, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addMessageToChatLocked(chatID, messageID, true)
}

func (s *Store) addMessageToChatLocked(chatID, messageID string, flush bool) error {
	chat, ok := s.chats.ByID[chatID]
	if !ok {
		return ErrChatNotFound
	}
	chat.MessageIDs = append(chat.MessageIDs, messageID)
	chat.UpdatedAt = s.now()
	if flush {
		s.flushLocked()
	}
	return nil
}

// Chat returns a copy of the chat.
func (s *Store) Chat(chatID string) (models.Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats.ByID[chatID]
	if !ok {
		return models.Chat{}, false
	}
	out := *chat
	out.MessageIDs = append([]string{}, chat.MessageIDs...)
	return out, true
}

// ListChats returns chats in creation order, most recent first. Sorting by
// updatedAt for display is the consumer's concern.
func (s *Store) ListChats() []models.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Chat, 0, len(s.chats.AllIDs))
	for _, id := range s.chats.AllIDs {
		chat := s.chats.ByID[id]
		c := *chat
		c.MessageIDs = append([]string{}, chat.MessageIDs...)
		out = append(out, c)
	}
	return out
}

// CurrentChatID returns the active chat pointer, empty when no chat is
// selected.
func (s *Store) CurrentChatID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chats.CurrentChatID
}

// ChatCount returns the number of chats.
func (s *Store) ChatCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chats.AllIDs)
}

// ShowEmptyState reports the empty-state flag.
func (s *Store) ShowEmptyState() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chats.ShowEmptyState
}

// MostRecentChatID returns the newest remaining chat id, or empty when no
// chats exist. Used when the active chat is deleted.
func (s *Store) MostRecentChatID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.chats.AllIDs) == 0 {
		return ""
	}
	return s.chats.AllIDs[0]
}
