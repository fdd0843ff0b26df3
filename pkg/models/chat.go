package models

import "time"

// DefaultChatTitle is the placeholder title a chat carries until its first
// user message names it.
const DefaultChatTitle = "New Chat"

// Chat is one conversation thread. It owns the ordered list of its message
// ids; the messages themselves live in the messages aggregate.
type Chat struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	MessageIDs []string  `json:"messageIds"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ChatsState is the normalized chats aggregate: a flat map, creation order
// (most recent first) and the two view-selection fields.
type ChatsState struct {
	ByID           map[string]*Chat `json:"byId"`
	AllIDs         []string         `json:"allIds"`
	CurrentChatID  string           `json:"currentChatId"`
	ShowEmptyState bool             `json:"showEmptyState"`
}

// NewChatsState returns an empty chats aggregate showing the empty state.
func NewChatsState() ChatsState {
	return ChatsState{
		ByID:           map[string]*Chat{},
		AllIDs:         []string{},
		ShowEmptyState: true,
	}
}

// Clone returns a deep copy of the aggregate.
func (s ChatsState) Clone() ChatsState {
	out := ChatsState{
		ByID:           make(map[string]*Chat, len(s.ByID)),
		AllIDs:         append([]string{}, s.AllIDs...),
		CurrentChatID:  s.CurrentChatID,
		ShowEmptyState: s.ShowEmptyState,
	}
	for id, c := range s.ByID {
		cc := *c
		cc.MessageIDs = append([]string{}, c.MessageIDs...)
		out.ByID[id] = &cc
	}
	return out
}
