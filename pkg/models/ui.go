package models

// ThemeMode selects the UI theme.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Snackbar is a depth-1 notification queue.
type Snackbar struct {
	Open    bool   `json:"open"`
	Message string `json:"message"`
}

// SQLOnlyView is a transient projection showing a single bot message's SQL
// together with the question that produced it.
type SQLOnlyView struct {
	IsActive     bool   `json:"isActive"`
	MessageID    string `json:"messageId,omitempty"`
	UserQuestion string `json:"userQuestion,omitempty"`
}

// UIState holds transient view state. It is deliberately excluded from the
// persisted snapshot.
type UIState struct {
	ExportBusyMessageIDs []string    `json:"exportBusyMessageIds"`
	ThemeMode            ThemeMode   `json:"themeMode"`
	Snackbar             Snackbar    `json:"snackbar"`
	IsTyping             bool        `json:"isTyping"`
	FocusedSQLMessageID  string      `json:"focusedSqlMessageId,omitempty"`
	SQLOnlyView          SQLOnlyView `json:"sqlOnlyView"`
}

// NewUIState returns the initial transient state.
func NewUIState() UIState {
	return UIState{
		ExportBusyMessageIDs: []string{},
		ThemeMode:            ThemeLight,
	}
}

// Clone returns a deep copy of the aggregate.
func (s UIState) Clone() UIState {
	out := s
	out.ExportBusyMessageIDs = append([]string{}, s.ExportBusyMessageIDs...)
	return out
}

// ExportBusy reports whether the given message currently has an export running.
func (s UIState) ExportBusy(messageID string) bool {
	for _, id := range s.ExportBusyMessageIDs {
		if id == messageID {
			return true
		}
	}
	return false
}
