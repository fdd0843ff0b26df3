package store

import "github.com/ilyaedelshtein/kornit-chat/pkg/models"

// EventType enumerates store transitions other components can react to.
type EventType string

const (
	EventChatCreated    EventType = "chat_created"
	EventChatDeleted    EventType = "chat_deleted"
	EventMessagePosted  EventType = "message_posted"
	EventTypingChanged  EventType = "typing_changed"
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoggedOut      EventType = "logged_out"
)

// Event describes one store transition. Cross-aggregate reactions (the login
// to chat-view reset in particular) subscribe to these rather than being
// folded into the originating aggregate's mutation, which keeps each
// aggregate testable in isolation.
type Event struct {
	Type      EventType          `json:"type"`
	ChatID    string             `json:"chatId,omitempty"`
	MessageID string             `json:"messageId,omitempty"`
	Role      models.MessageRole `json:"role,omitempty"`
	Username  string             `json:"username,omitempty"`
	Typing    bool               `json:"typing,omitempty"`
}

// Subscribe registers a handler for store events and returns a function that
// removes it again. Handlers run synchronously after the mutation commits,
// outside the store lock, so they may call back into the store.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subSeq++
	id := s.subSeq
	if s.subs == nil {
		s.subs = make(map[uint64]func(Event))
	}
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) publish(events ...Event) {
	s.subMu.RLock()
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.RUnlock()
	for _, ev := range events {
		for _, fn := range subs {
			fn(ev)
		}
	}
}
