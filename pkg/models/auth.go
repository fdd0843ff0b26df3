package models

// AuthUser is the identity attached to an authenticated session.
type AuthUser struct {
	Username string `json:"username"`
}

// AuthState gates the whole application surface.
type AuthState struct {
	IsAuthenticated bool      `json:"isAuthenticated"`
	User            *AuthUser `json:"user,omitempty"`
	Error           string    `json:"error,omitempty"`
	// JustLoggedIn is a one-shot flag consumed by the navigation binder to
	// force the post-login redirect exactly once.
	JustLoggedIn bool `json:"justLoggedIn,omitempty"`
}

// Clone returns a deep copy of the aggregate.
func (s AuthState) Clone() AuthState {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}
