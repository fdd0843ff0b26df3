package models

// SnapshotSchemaVersion is bumped whenever the persisted shape changes.
const SnapshotSchemaVersion = 1

// Snapshot is the durable persistence envelope. UI state is intentionally
// not part of it; only chats, messages and auth survive a restart.
type Snapshot struct {
	SchemaVersion int           `json:"schemaVersion"`
	Chats         ChatsState    `json:"chats"`
	Messages      MessagesState `json:"messages"`
	Auth          AuthState     `json:"auth"`
}

// NewSnapshot returns an empty snapshot at the current schema version.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		SchemaVersion: SnapshotSchemaVersion,
		Chats:         NewChatsState(),
		Messages:      NewMessagesState(),
		Auth:          AuthState{},
	}
}

// Normalize fills nil maps and slices after JSON decoding so consumers can
// rely on non-nil aggregates.
func (s *Snapshot) Normalize() {
	if s.Chats.ByID == nil {
		s.Chats.ByID = map[string]*Chat{}
	}
	if s.Chats.AllIDs == nil {
		s.Chats.AllIDs = []string{}
	}
	if s.Messages.ByID == nil {
		s.Messages.ByID = map[string]*Message{}
	}
	if s.Messages.AllIDs == nil {
		s.Messages.AllIDs = []string{}
	}
	for _, c := range s.Chats.ByID {
		if c.MessageIDs == nil {
			c.MessageIDs = []string{}
		}
	}
}
