package store

import (
	"github.com/ilyaedelshtein/kornit-chat/pkg/mockengine"
	"github.com/ilyaedelshtein/kornit-chat/pkg/models"
)

// AddUserMessage allocates a user message in the flat map without attaching
// it to any chat; chatID is accepted for interface compatibility but only a
// later AddMessageToChat call establishes ownership. Granular primitive:
// forgetting that second call orphans the message, which is why
// PostUserMessage exists.
func (s *Store) AddUserMessage(chatID, text string) string {
	_ = chatID
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addMessageLocked(&models.Message{
		Role: models.MessageRoleUser,
		Text: text,
	})
}

// AddBotMessage allocates a bot message in the flat map without attaching it
// to any chat. See AddUserMessage.
func (s *Store) AddBotMessage(chatID, text, sql, datasetKey string) string {
	_ = chatID
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addMessageLocked(&models.Message{
		Role:       models.MessageRoleBot,
		Text:       text,
		SQL:        sql,
		ViewMode:   models.ViewModeTable,
		DatasetKey: datasetKey,
	})
}

func (s *Store) addMessageLocked(msg *models.Message) string {
	msg.ID = s.newID()
	msg.CreatedAt = s.now()
	s.messages.ByID[msg.ID] = msg
	s.messages.AllIDs = append(s.messages.AllIDs, msg.ID)
	s.flushLocked()
	return msg.ID
}

// PostUserMessage atomically creates a user message, attaches it to the chat
// and, when it is the chat's first message, derives the chat title from it.
func (s *Store) PostUserMessage(chatID, text string) (string, error) {
	s.mu.Lock()
	chat, ok := s.chats.ByID[chatID]
	if !ok {
		s.mu.Unlock()
		return "", ErrChatNotFound
	}
	first := len(chat.MessageIDs) == 0

	msg := &models.Message{
		ID:        s.newID(),
		Role:      models.MessageRoleUser,
		Text:      text,
		CreatedAt: s.now(),
	}
	s.messages.ByID[msg.ID] = msg
	s.messages.AllIDs = append(s.messages.AllIDs, msg.ID)
	chat.MessageIDs = append(chat.MessageIDs, msg.ID)
	chat.UpdatedAt = s.now()
	if first {
		chat.Title = mockengine.InferTitle(text)
	}
	s.flushLocked()
	s.mu.Unlock()

	s.publish(Event{Type: EventMessagePosted, ChatID: chatID, MessageID: msg.ID, Role: models.MessageRoleUser})
	return msg.ID, nil
}

// PostBotMessage atomically creates a bot message and attaches it to the
// chat. The view mode starts as table; datasetKey records which dataset backs
// the result rows.
func (s *Store) PostBotMessage(chatID, text, sql, datasetKey string) (string, error) {
	s.mu.Lock()
	chat, ok := s.chats.ByID[chatID]
	if !ok {
		s.mu.Unlock()
		return "", ErrChatNotFound
	}

	msg := &models.Message{
		ID:         s.newID(),
		Role:       models.MessageRoleBot,
		Text:       text,
		SQL:        sql,
		ViewMode:   models.ViewModeTable,
		DatasetKey: datasetKey,
		CreatedAt:  s.now(),
	}
	s.messages.ByID[msg.ID] = msg
	s.messages.AllIDs = append(s.messages.AllIDs, msg.ID)
	chat.MessageIDs = append(chat.MessageIDs, msg.ID)
	chat.UpdatedAt = s.now()
	s.flushLocked()
	s.mu.Unlock()

	s.publish(Event{Type: EventMessagePosted, ChatID: chatID, MessageID: msg.ID, Role: models.MessageRoleBot})
	return msg.ID, nil
}

// SetMessageViewMode changes how a bot message's result set is rendered.
func (s *Store) SetMessageViewMode(messageID string, mode models.ViewMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages.ByID[messageID]
	if !ok {
		return ErrMessageNotFound
	}
	msg.ViewMode = mode
	s.flushLocked()
	return nil
}

// SetMessageFeedback sets the raw feedback field.
func (s *Store) SetMessageFeedback(messageID string, fb models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages.ByID[messageID]
	if !ok {
		return ErrMessageNotFound
	}
	msg.Feedback = fb
	s.flushLocked()
	return nil
}

// ToggleMessageFeedback applies the user-facing feedback action: pressing the
// same reaction again cancels it, a like marks the message as a verified
// query candidate, and a dislike withdraws a previous like.
func (s *Store) ToggleMessageFeedback(messageID string, fb models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages.ByID[messageID]
	if !ok {
		return ErrMessageNotFound
	}

	next := fb
	if msg.Feedback == fb {
		next = models.FeedbackNone
	}
	msg.Feedback = next

	switch fb {
	case models.FeedbackLike:
		msg.Liked = next == models.FeedbackLike
	case models.FeedbackDislike:
		if msg.Liked {
			msg.Liked = false
		}
	}
	s.flushLocked()
	return nil
}

// SetMessageFeedbackComment stores free-text feedback on a message.
func (s *Store) SetMessageFeedbackComment(messageID, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages.ByID[messageID]
	if !ok {
		return ErrMessageNotFound
	}
	msg.FeedbackComment = comment
	s.flushLocked()
	return nil
}

// SetMessageLike sets the verified-query marker directly.
func (s *Store) SetMessageLike(messageID string, liked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages.ByID[messageID]
	if !ok {
		return ErrMessageNotFound
	}
	msg.Liked = liked
	s.flushLocked()
	return nil
}

// DeleteMessagesForChat bulk-removes messages from the flat map. It does not
// touch any chat's MessageIDs, mirroring the creation asymmetry; the cascade
// caller owns both sides.
func (s *Store) DeleteMessagesForChat(messageIDs []string) {
	s.mu.Lock()
	s.deleteMessagesLocked(messageIDs)
	s.flushLocked()
	s.mu.Unlock()
}

func (s *Store) deleteMessagesLocked(messageIDs []string) {
	doomed := make(map[string]struct{}, len(messageIDs))
	for _, id := range messageIDs {
		doomed[id] = struct{}{}
		delete(s.messages.ByID, id)
	}
	ids := s.messages.AllIDs[:0]
	for _, id := range s.messages.AllIDs {
		if _, gone := doomed[id]; !gone {
			ids = append(ids, id)
		}
	}
	s.messages.AllIDs = ids
}

// Message returns a copy of the message.
func (s *Store) Message(messageID string) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages.ByID[messageID]
	if !ok {
		return models.Message{}, false
	}
	return *msg, true
}

// MessagesForChat returns the chat's messages in conversation order.
func (s *Store) MessagesForChat(chatID string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats.ByID[chatID]
	if !ok {
		return nil, ErrChatNotFound
	}
	out := make([]models.Message, 0, len(chat.MessageIDs))
	for _, id := range chat.MessageIDs {
		if msg, ok := s.messages.ByID[id]; ok {
			out = append(out, *msg)
		}
	}
	return out, nil
}

// MessageCount returns the number of messages across all chats.
func (s *Store) MessageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages.AllIDs)
}

// VerifiedQuery is a liked bot message promoted into the recall list, keyed
// by the question that produced it.
type VerifiedQuery struct {
	Question  string `json:"question"`
	MessageID string `json:"messageId"`
	ChatID    string `json:"chatId"`
	SQL       string `json:"sql"`
}

// VerifiedQueries collects liked bot messages across all chats, walking each
// conversation in order so every bot message pairs with the user question
// preceding it.
func (s *Store) VerifiedQueries() []VerifiedQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []VerifiedQuery{}
	for _, chatID := range s.chats.AllIDs {
		chat := s.chats.ByID[chatID]
		lastQuestion := ""
		for _, msgID := range chat.MessageIDs {
			msg, ok := s.messages.ByID[msgID]
			if !ok {
				continue
			}
			if msg.Role == models.MessageRoleUser {
				lastQuestion = msg.Text
				continue
			}
			if msg.Liked {
				out = append(out, VerifiedQuery{
					Question:  lastQuestion,
					MessageID: msg.ID,
					ChatID:    chatID,
					SQL:       msg.SQL,
				})
			}
		}
	}
	return out
}

// QuestionForMessage returns the user question that precedes the given bot
// message in its owning chat. Used by the export path to re-derive the
// result rows the message was answering.
func (s *Store) QuestionForMessage(messageID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, chatID := range s.chats.AllIDs {
		chat := s.chats.ByID[chatID]
		lastQuestion := ""
		for _, msgID := range chat.MessageIDs {
			msg, ok := s.messages.ByID[msgID]
			if !ok {
				continue
			}
			if msg.Role == models.MessageRoleUser {
				lastQuestion = msg.Text
			}
			if msgID == messageID {
				return lastQuestion, true
			}
		}
	}
	return "", false
}
