package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyaedelshtein/kornit-chat/pkg/storage"
	"github.com/ilyaedelshtein/kornit-chat/pkg/store"
)

func newBinder(t *testing.T) (*Binder, *store.Store) {
	t.Helper()
	s, err := store.New(storage.Noop{})
	require.NoError(t, err)
	return NewBinder(s), s
}

func TestResolveNoChats(t *testing.T) {
	b, s := newBinder(t)

	d := b.Resolve("")
	assert.Equal(t, StateNoChats, d.State)
	assert.True(t, d.ShowEmptyState)
	assert.True(t, s.ShowEmptyState())

	// A chat id in the URL with zero chats strips the id.
	d = b.Resolve("c-unknown")
	assert.Equal(t, StatePendingRedirect, d.State)
	assert.Equal(t, ChatRootPath, d.RedirectTo)
}

func TestResolveDeepLinkResumes(t *testing.T) {
	b, s := newBinder(t)
	id := s.CreateChat("existing")
	s.SetCurrentChat("")

	d := b.Resolve(id)
	assert.Equal(t, StateChatActive, d.State)
	assert.Equal(t, id, d.ChatID)
	assert.Equal(t, id, s.CurrentChatID())
	assert.False(t, s.ShowEmptyState())
}

// The repository's history also contained the opposite policy, where direct
// visits always landed on the empty state. That alternative was rejected in
// favor of deep-link resume; this pin documents the decision.
func TestResolveDeepLinkAlwaysEmptyRejectedPolicy(t *testing.T) {
	t.Skip("rejected alternative: direct chat URLs would always show the empty state")
}

func TestResolveUnknownChatRedirects(t *testing.T) {
	b, s := newBinder(t)
	s.CreateChat("existing")

	d := b.Resolve("c-missing")
	assert.Equal(t, StatePendingRedirect, d.State)
	assert.Equal(t, ChatRootPath, d.RedirectTo)
	assert.True(t, d.ShowEmptyState)
	assert.Empty(t, s.CurrentChatID())
}

func TestResolveChatRootShowsEmptyState(t *testing.T) {
	b, s := newBinder(t)
	s.CreateChat("existing")

	d := b.Resolve("")
	assert.Equal(t, StateEmptyShown, d.State)
	assert.True(t, d.ShowEmptyState)
	assert.Empty(t, s.CurrentChatID())
}

func TestSelectActivatesAndRedirects(t *testing.T) {
	b, s := newBinder(t)
	id := s.CreateChat("picked")

	d := b.Select(id)
	assert.Equal(t, StatePendingRedirect, d.State)
	assert.Equal(t, ChatPath(id), d.RedirectTo)
	assert.Equal(t, id, s.CurrentChatID())
	assert.False(t, s.ShowEmptyState())
}

func TestAfterDeleteAdoptsMostRecent(t *testing.T) {
	b, s := newBinder(t)
	older := s.CreateChat("older")
	newer := s.CreateChat("newer")
	active := s.CreateChat("active")

	require.NoError(t, s.DeleteChatCascade(active))
	d := b.AfterDelete(active, active)

	assert.Equal(t, newer, d.ChatID)
	assert.Equal(t, newer, s.CurrentChatID())
	_ = older
}

func TestAfterDeleteLastChatFallsBackToEmpty(t *testing.T) {
	b, s := newBinder(t)
	only := s.CreateChat("only")

	require.NoError(t, s.DeleteChatCascade(only))
	d := b.AfterDelete(only, only)

	assert.Equal(t, StatePendingRedirect, d.State)
	assert.Equal(t, ChatRootPath, d.RedirectTo)
	assert.True(t, s.ShowEmptyState())
}

func TestAfterDeleteInactiveChatKeepsView(t *testing.T) {
	b, s := newBinder(t)
	active := s.CreateChat("active")
	other := s.CreateChat("other")
	s.SetCurrentChat(active)

	require.NoError(t, s.DeleteChatCascade(other))
	d := b.AfterDelete(other, active)

	assert.Equal(t, StateChatActive, d.State)
	assert.Equal(t, active, d.ChatID)
}

func TestLoginForcesEmptyStateOnce(t *testing.T) {
	b, s := newBinder(t)
	existing := s.CreateChat("from previous session")
	s.LoginSuccess("admin")

	// Even a deep link to an existing chat loses to the fresh login.
	d := b.Resolve(existing)
	assert.Equal(t, StatePendingRedirect, d.State)
	assert.Equal(t, ChatRootPath, d.RedirectTo)
	assert.True(t, d.ShowEmptyState)

	// The flag is one-shot: the next resolve resumes normally.
	d = b.Resolve(existing)
	assert.Equal(t, StateChatActive, d.State)
	assert.Equal(t, existing, d.ChatID)
}
