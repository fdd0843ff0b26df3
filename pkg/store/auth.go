package store

import "github.com/ilyaedelshtein/kornit-chat/pkg/models"

// LoginStart clears any previous login error before a new attempt.
func (s *Store) LoginStart() {
	s.mu.Lock()
	s.auth.Error = ""
	s.flushLocked()
	s.mu.Unlock()
}

// LoginSuccess marks the session authenticated and arms the one-shot
// justLoggedIn flag. The chat-view reset that follows a login is not applied
// here; it runs in the EventLoginSucceeded subscriber.
func (s *Store) LoginSuccess(username string) {
	s.mu.Lock()
	s.auth.IsAuthenticated = true
	s.auth.User = &models.AuthUser{Username: username}
	s.auth.Error = ""
	s.auth.JustLoggedIn = true
	s.flushLocked()
	s.mu.Unlock()

	s.publish(Event{Type: EventLoginSucceeded, Username: username})
}

// LoginFailure records the failure reason and clears any partial identity.
func (s *Store) LoginFailure(reason string) {
	s.mu.Lock()
	s.auth.IsAuthenticated = false
	s.auth.User = nil
	s.auth.Error = reason
	s.flushLocked()
	s.mu.Unlock()
}

// Logout clears the auth aggregate. Chats and messages survive logout by
// design; conversation history outlives the session.
func (s *Store) Logout() {
	s.mu.Lock()
	s.auth = models.AuthState{}
	s.flushLocked()
	s.mu.Unlock()

	s.publish(Event{Type: EventLoggedOut})
}

// ClearError drops the last login failure reason.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.auth.Error = ""
	s.flushLocked()
	s.mu.Unlock()
}

// ClearJustLoggedIn disarms the one-shot redirect flag.
func (s *Store) ClearJustLoggedIn() {
	s.mu.Lock()
	s.auth.JustLoggedIn = false
	s.flushLocked()
	s.mu.Unlock()
}

// ConsumeJustLoggedIn reads and disarms the one-shot flag in one step.
func (s *Store) ConsumeJustLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	armed := s.auth.JustLoggedIn
	if armed {
		s.auth.JustLoggedIn = false
		s.flushLocked()
	}
	return armed
}

// AuthState returns a copy of the auth aggregate.
func (s *Store) AuthState() models.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth.Clone()
}
