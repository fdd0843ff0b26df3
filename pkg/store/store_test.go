package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyaedelshtein/kornit-chat/pkg/dataset"
	"github.com/ilyaedelshtein/kornit-chat/pkg/models"
	"github.com/ilyaedelshtein/kornit-chat/pkg/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(storage.Noop{})
	require.NoError(t, err)
	return s
}

func TestCreateChatDefaults(t *testing.T) {
	s := newTestStore(t)

	id := s.CreateChat("")
	chat, ok := s.Chat(id)
	require.True(t, ok)
	assert.Equal(t, "New Chat", chat.Title)
	assert.Empty(t, chat.MessageIDs)
	assert.Equal(t, id, s.CurrentChatID())
	assert.False(t, s.ShowEmptyState())
}

func TestCreateChatRecentFirstOrder(t *testing.T) {
	s := newTestStore(t)

	first := s.CreateChat("first")
	second := s.CreateChat("second")
	third := s.CreateChat("third")

	chats := s.ListChats()
	require.Len(t, chats, 3)
	assert.Equal(t, third, chats[0].ID)
	assert.Equal(t, second, chats[1].ID)
	assert.Equal(t, first, chats[2].ID)
}

func TestCreateDeleteCountInvariant(t *testing.T) {
	s := newTestStore(t)

	seen := map[string]bool{}
	var ids []string
	for i := 0; i < 20; i++ {
		id := s.CreateChat(fmt.Sprintf("chat %d", i))
		require.False(t, seen[id], "chat ids must be unique")
		seen[id] = true
		ids = append(ids, id)
	}
	for i := 0; i < 7; i++ {
		require.NoError(t, s.DeleteChatCascade(ids[i]))
	}
	assert.Equal(t, 13, s.ChatCount())
}

func TestDeleteChatCascadeRemovesMessages(t *testing.T) {
	s := newTestStore(t)

	keep := s.CreateChat("keeper")
	keptID, err := s.PostUserMessage(keep, "keep me")
	require.NoError(t, err)

	doomed := s.CreateChat("doomed")
	m1, err := s.PostUserMessage(doomed, "show revenue")
	require.NoError(t, err)
	m2, err := s.PostBotMessage(doomed, "reply", "SELECT 1;", dataset.KeyPrinting2024)
	require.NoError(t, err)

	require.NoError(t, s.DeleteChatCascade(doomed))

	_, ok := s.Chat(doomed)
	assert.False(t, ok)
	_, ok = s.Message(m1)
	assert.False(t, ok)
	_, ok = s.Message(m2)
	assert.False(t, ok)

	// The other chat and its message are untouched.
	_, ok = s.Message(keptID)
	assert.True(t, ok)
	msgs, err := s.MessagesForChat(keep)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestDeleteActiveChatClearsPointer(t *testing.T) {
	s := newTestStore(t)
	id := s.CreateChat("active")
	require.Equal(t, id, s.CurrentChatID())

	require.NoError(t, s.DeleteChatCascade(id))
	assert.Empty(t, s.CurrentChatID())
}

func TestDeleteMissingChat(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.DeleteChat("nope"), ErrChatNotFound)
	assert.ErrorIs(t, s.DeleteChatCascade("nope"), ErrChatNotFound)
}

func TestSetCurrentChatDoesNotValidate(t *testing.T) {
	s := newTestStore(t)
	// Reconciliation of dangling pointers is the navigation binder's job.
	s.SetCurrentChat("does-not-exist")
	assert.Equal(t, "does-not-exist", s.CurrentChatID())
}

func TestPostUserMessageSetsTitleFromFirstMessage(t *testing.T) {
	s := newTestStore(t)

	c1 := s.CreateChat("")
	msgID, err := s.PostUserMessage(c1, "Show revenue by country")
	require.NoError(t, err)

	chat, ok := s.Chat(c1)
	require.True(t, ok)
	assert.Equal(t, "Show revenue by country", chat.Title)
	assert.Equal(t, []string{msgID}, chat.MessageIDs)

	// A second message must not rename the chat.
	_, err = s.PostUserMessage(c1, "and by channel")
	require.NoError(t, err)
	chat, _ = s.Chat(c1)
	assert.Equal(t, "Show revenue by country", chat.Title)
	assert.Len(t, chat.MessageIDs, 2)
}

func TestPostBotMessageDefaults(t *testing.T) {
	s := newTestStore(t)
	c1 := s.CreateChat("")
	id, err := s.PostBotMessage(c1, "reply text", "SELECT 1;", dataset.KeyPrinting2024)
	require.NoError(t, err)

	msg, ok := s.Message(id)
	require.True(t, ok)
	assert.Equal(t, models.MessageRoleBot, msg.Role)
	assert.Equal(t, models.ViewModeTable, msg.ViewMode)
	assert.Equal(t, dataset.KeyPrinting2024, msg.DatasetKey)
	assert.Equal(t, models.FeedbackNone, msg.Feedback)
}

func TestPostToMissingChat(t *testing.T) {
	s := newTestStore(t)
	_, err := s.PostUserMessage("ghost", "hello")
	assert.ErrorIs(t, err, ErrChatNotFound)
	_, err = s.PostBotMessage("ghost", "hello", "SELECT 1;", dataset.KeyPrinting2024)
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestGranularAddLeavesMessageUnattached(t *testing.T) {
	s := newTestStore(t)
	c1 := s.CreateChat("")

	msgID := s.AddUserMessage(c1, "orphan until attached")
	chat, _ := s.Chat(c1)
	assert.Empty(t, chat.MessageIDs)

	require.NoError(t, s.AddMessageToChat(c1, msgID))
	chat, _ = s.Chat(c1)
	assert.Equal(t, []string{msgID}, chat.MessageIDs)
}

func TestFeedbackToggleIsIdempotentCancel(t *testing.T) {
	s := newTestStore(t)
	c1 := s.CreateChat("")
	id, err := s.PostBotMessage(c1, "reply", "SELECT 1;", dataset.KeyPrinting2024)
	require.NoError(t, err)

	require.NoError(t, s.ToggleMessageFeedback(id, models.FeedbackLike))
	msg, _ := s.Message(id)
	assert.Equal(t, models.FeedbackLike, msg.Feedback)
	assert.True(t, msg.Liked)

	// Liking again cancels, it does not flip to dislike.
	require.NoError(t, s.ToggleMessageFeedback(id, models.FeedbackLike))
	msg, _ = s.Message(id)
	assert.Equal(t, models.FeedbackNone, msg.Feedback)
	assert.False(t, msg.Liked)
}

func TestDislikeWithdrawsLike(t *testing.T) {
	s := newTestStore(t)
	c1 := s.CreateChat("")
	id, err := s.PostBotMessage(c1, "reply", "SELECT 1;", dataset.KeyPrinting2024)
	require.NoError(t, err)

	require.NoError(t, s.ToggleMessageFeedback(id, models.FeedbackLike))
	require.NoError(t, s.ToggleMessageFeedback(id, models.FeedbackDislike))

	msg, _ := s.Message(id)
	assert.Equal(t, models.FeedbackDislike, msg.Feedback)
	assert.False(t, msg.Liked)
}

func TestVerifiedQueriesPairQuestionWithLikedReply(t *testing.T) {
	s := newTestStore(t)
	c1 := s.CreateChat("")
	_, err := s.PostUserMessage(c1, "Show revenue by country")
	require.NoError(t, err)
	botID, err := s.PostBotMessage(c1, "reply", "SELECT country;", dataset.KeyPrinting2024)
	require.NoError(t, err)

	assert.Empty(t, s.VerifiedQueries())

	require.NoError(t, s.ToggleMessageFeedback(botID, models.FeedbackLike))
	verified := s.VerifiedQueries()
	require.Len(t, verified, 1)
	assert.Equal(t, "Show revenue by country", verified[0].Question)
	assert.Equal(t, botID, verified[0].MessageID)
	assert.Equal(t, "SELECT country;", verified[0].SQL)
}

func TestQuestionForMessage(t *testing.T) {
	s := newTestStore(t)
	c1 := s.CreateChat("")
	_, err := s.PostUserMessage(c1, "units per product")
	require.NoError(t, err)
	botID, err := s.PostBotMessage(c1, "reply", "SELECT product;", dataset.KeyPrinting2024)
	require.NoError(t, err)

	q, ok := s.QuestionForMessage(botID)
	require.True(t, ok)
	assert.Equal(t, "units per product", q)

	_, ok = s.QuestionForMessage("ghost")
	assert.False(t, ok)
}

func TestLoginFlow(t *testing.T) {
	s := newTestStore(t)

	s.LoginStart()
	s.LoginFailure("Invalid username or password")
	auth := s.AuthState()
	assert.False(t, auth.IsAuthenticated)
	assert.NotEmpty(t, auth.Error)

	// A new attempt clears the previous error.
	s.LoginStart()
	assert.Empty(t, s.AuthState().Error)

	s.LoginSuccess("admin")
	auth = s.AuthState()
	assert.True(t, auth.IsAuthenticated)
	require.NotNil(t, auth.User)
	assert.Equal(t, "admin", auth.User.Username)
	assert.True(t, auth.JustLoggedIn)

	assert.True(t, s.ConsumeJustLoggedIn())
	assert.False(t, s.ConsumeJustLoggedIn())
}

func TestLogoutKeepsConversations(t *testing.T) {
	s := newTestStore(t)
	s.LoginSuccess("admin")
	c1 := s.CreateChat("history")
	_, err := s.PostUserMessage(c1, "remember me")
	require.NoError(t, err)

	s.Logout()

	auth := s.AuthState()
	assert.False(t, auth.IsAuthenticated)
	assert.Nil(t, auth.User)
	assert.Equal(t, 1, s.ChatCount())
	assert.Equal(t, 1, s.MessageCount())
}

func TestLoginResetIsASubscriberReaction(t *testing.T) {
	s := newTestStore(t)
	// Wired exactly like cmd/api does it.
	s.Subscribe(func(ev Event) {
		if ev.Type == EventLoginSucceeded {
			s.ResetChatView()
		}
	})

	c1 := s.CreateChat("from a previous session")
	require.Equal(t, c1, s.CurrentChatID())
	require.False(t, s.ShowEmptyState())

	s.LoginSuccess("admin")

	assert.Empty(t, s.CurrentChatID())
	assert.True(t, s.ShowEmptyState())
	assert.Equal(t, 1, s.ChatCount(), "login must not delete chats")
}

func TestEventsPublished(t *testing.T) {
	s := newTestStore(t)
	var events []Event
	s.Subscribe(func(ev Event) { events = append(events, ev) })

	c1 := s.CreateChat("")
	_, err := s.PostUserMessage(c1, "hello")
	require.NoError(t, err)
	s.SetTyping(true)
	s.SetTyping(true) // no change, no event
	require.NoError(t, s.DeleteChatCascade(c1))

	var types []EventType
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []EventType{EventChatCreated, EventMessagePosted, EventTypingChanged, EventChatDeleted}, types)
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	backend, err := storage.NewFileBackend(path)
	require.NoError(t, err)

	fixed := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	s, err := New(backend, WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)

	s.LoginSuccess("admin")
	c1 := s.CreateChat("")
	_, err = s.PostUserMessage(c1, "Show revenue by country")
	require.NoError(t, err)
	_, err = s.PostBotMessage(c1, "reply", "SELECT 1;", dataset.KeyPrinting2024)
	require.NoError(t, err)
	c2 := s.CreateChat("second chat")
	_, err = s.PostUserMessage(c2, "units per product")
	require.NoError(t, err)

	want := s.Snapshot()

	reloaded, err := New(backend)
	require.NoError(t, err)
	got := reloaded.Snapshot()

	assert.Equal(t, want.Chats, got.Chats)
	assert.Equal(t, want.Messages, got.Messages)
	assert.Equal(t, want.Auth, got.Auth)
}

func TestUIStateIsNotPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	backend, err := storage.NewFileBackend(path)
	require.NoError(t, err)

	s, err := New(backend)
	require.NoError(t, err)
	s.CreateChat("durable")
	s.SetThemeMode(models.ThemeDark)
	s.OpenSnackbar("transient")
	s.SetTyping(true)

	reloaded, err := New(backend)
	require.NoError(t, err)
	ui := reloaded.UIState()
	assert.Equal(t, models.ThemeLight, ui.ThemeMode)
	assert.False(t, ui.Snackbar.Open)
	assert.False(t, ui.IsTyping)
	assert.Equal(t, 1, reloaded.ChatCount())
}

func TestExportBusyFlag(t *testing.T) {
	s := newTestStore(t)
	s.SetExportBusy("m1", true)
	s.SetExportBusy("m1", true) // idempotent
	s.SetExportBusy("m2", true)

	ui := s.UIState()
	assert.Len(t, ui.ExportBusyMessageIDs, 2)
	assert.True(t, ui.ExportBusy("m1"))

	s.SetExportBusy("m1", false)
	ui = s.UIState()
	assert.False(t, ui.ExportBusy("m1"))
	assert.True(t, ui.ExportBusy("m2"))
}

func TestFocusedSQLConsumedOnce(t *testing.T) {
	s := newTestStore(t)
	s.SetFocusedSQLMessage("m7")

	id, ok := s.ConsumeFocusedSQLMessage()
	require.True(t, ok)
	assert.Equal(t, "m7", id)

	_, ok = s.ConsumeFocusedSQLMessage()
	assert.False(t, ok)
}

func TestSQLOnlyViewClears(t *testing.T) {
	s := newTestStore(t)
	s.SetSQLOnlyView(true, "m1", "show revenue")
	ui := s.UIState()
	assert.True(t, ui.SQLOnlyView.IsActive)
	assert.Equal(t, "m1", ui.SQLOnlyView.MessageID)

	s.SetSQLOnlyView(false, "", "")
	ui = s.UIState()
	assert.Equal(t, models.SQLOnlyView{}, ui.SQLOnlyView)
}

func TestMutatorsOnMissingMessage(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.SetMessageViewMode("ghost", models.ViewModeChart), ErrMessageNotFound)
	assert.ErrorIs(t, s.SetMessageFeedback("ghost", models.FeedbackLike), ErrMessageNotFound)
	assert.ErrorIs(t, s.ToggleMessageFeedback("ghost", models.FeedbackLike), ErrMessageNotFound)
	assert.ErrorIs(t, s.SetMessageFeedbackComment("ghost", "hi"), ErrMessageNotFound)
	assert.ErrorIs(t, s.SetMessageLike("ghost", true), ErrMessageNotFound)
}
