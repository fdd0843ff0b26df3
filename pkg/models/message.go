package models

import "time"

// MessageRole defines the possible roles for a message
type MessageRole string

const (
	MessageRoleUser MessageRole = "user"
	MessageRoleBot  MessageRole = "bot"
)

// ViewMode defines how a bot message's result set is rendered
type ViewMode string

const (
	ViewModeTable ViewMode = "table"
	ViewModeChart ViewMode = "chart"
	ViewModeBoth  ViewMode = "both"
)

// Valid reports whether the view mode is one a consumer can render.
func (v ViewMode) Valid() bool {
	switch v {
	case ViewModeTable, ViewModeChart, ViewModeBoth:
		return true
	}
	return false
}

// Feedback is the user's reaction to a bot message
type Feedback string

const (
	FeedbackNone    Feedback = ""
	FeedbackLike    Feedback = "like"
	FeedbackDislike Feedback = "dislike"
)

// Valid reports whether the feedback value is settable by a caller.
func (f Feedback) Valid() bool {
	switch f {
	case FeedbackLike, FeedbackDislike:
		return true
	}
	return false
}

// Message represents a single utterance in a chat. Bot messages additionally
// carry the generated SQL, the backing dataset key and a view-mode preference.
// Messages never point back at their chat; ownership lives in Chat.MessageIDs.
type Message struct {
	ID              string      `json:"id"`
	Role            MessageRole `json:"role"`
	Text            string      `json:"text"`
	SQL             string      `json:"sql,omitempty"`
	ViewMode        ViewMode    `json:"viewMode,omitempty"`
	DatasetKey      string      `json:"datasetKey,omitempty"`
	Feedback        Feedback    `json:"feedback,omitempty"`
	FeedbackComment string      `json:"feedbackComment,omitempty"`
	Liked           bool        `json:"liked,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// MessagesState is the normalized messages aggregate, a flat map plus
// insertion order.
type MessagesState struct {
	ByID   map[string]*Message `json:"byId"`
	AllIDs []string            `json:"allIds"`
}

// NewMessagesState returns an empty messages aggregate.
func NewMessagesState() MessagesState {
	return MessagesState{
		ByID:   map[string]*Message{},
		AllIDs: []string{},
	}
}

// Clone returns a deep copy of the aggregate.
func (s MessagesState) Clone() MessagesState {
	out := MessagesState{
		ByID:   make(map[string]*Message, len(s.ByID)),
		AllIDs: append([]string{}, s.AllIDs...),
	}
	for id, m := range s.ByID {
		mm := *m
		out.ByID[id] = &mm
	}
	return out
}
