package store

import "github.com/ilyaedelshtein/kornit-chat/pkg/models"

// UI state is transient: these mutations are never flushed to the backend.

// OpenSnackbar replaces the single-slot notification.
func (s *Store) OpenSnackbar(message string) {
	s.mu.Lock()
	s.ui.Snackbar = models.Snackbar{Open: true, Message: message}
	s.mu.Unlock()
}

// CloseSnackbar dismisses the notification.
func (s *Store) CloseSnackbar() {
	s.mu.Lock()
	s.ui.Snackbar = models.Snackbar{}
	s.mu.Unlock()
}

// SetThemeMode switches the UI theme.
func (s *Store) SetThemeMode(mode models.ThemeMode) {
	s.mu.Lock()
	s.ui.ThemeMode = mode
	s.mu.Unlock()
}

// SetExportBusy marks or unmarks a message as having an export in flight.
// Advisory flag, not a lock.
func (s *Store) SetExportBusy(messageID string, busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if busy {
		if !s.ui.ExportBusy(messageID) {
			s.ui.ExportBusyMessageIDs = append(s.ui.ExportBusyMessageIDs, messageID)
		}
		return
	}
	ids := s.ui.ExportBusyMessageIDs[:0]
	for _, id := range s.ui.ExportBusyMessageIDs {
		if id != messageID {
			ids = append(ids, id)
		}
	}
	s.ui.ExportBusyMessageIDs = ids
}

// SetTyping toggles the typing indicator.
func (s *Store) SetTyping(typing bool) {
	s.mu.Lock()
	changed := s.ui.IsTyping != typing
	s.ui.IsTyping = typing
	s.mu.Unlock()

	if changed {
		s.publish(Event{Type: EventTypingChanged, Typing: typing})
	}
}

// SetFocusedSQLMessage points the view at one bot message's SQL.
func (s *Store) SetFocusedSQLMessage(messageID string) {
	s.mu.Lock()
	s.ui.FocusedSQLMessageID = messageID
	s.mu.Unlock()
}

// ConsumeFocusedSQLMessage reads and clears the focused-SQL pointer, so the
// projection shows exactly once.
func (s *Store) ConsumeFocusedSQLMessage() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.ui.FocusedSQLMessageID
	s.ui.FocusedSQLMessageID = ""
	return id, id != ""
}

// SetSQLOnlyView activates or clears the SQL-only projection.
func (s *Store) SetSQLOnlyView(active bool, messageID, userQuestion string) {
	s.mu.Lock()
	s.ui.SQLOnlyView = models.SQLOnlyView{
		IsActive:     active,
		MessageID:    messageID,
		UserQuestion: userQuestion,
	}
	if !active {
		s.ui.SQLOnlyView = models.SQLOnlyView{}
	}
	s.mu.Unlock()
}

// UIState returns a copy of the transient state.
func (s *Store) UIState() models.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.Clone()
}
