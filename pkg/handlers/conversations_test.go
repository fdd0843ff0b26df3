package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyaedelshtein/kornit-chat/internal/testutils"
	"github.com/ilyaedelshtein/kornit-chat/pkg/handlers"
	"github.com/ilyaedelshtein/kornit-chat/pkg/models"
	"github.com/ilyaedelshtein/kornit-chat/pkg/nav"
)

func TestConversationsRequireAuth(t *testing.T) {
	env := testutils.GetTestMockServer(t)

	res := env.DoRequest(t, http.MethodGet, "/api/v1/conversations", "", nil)
	testutils.RequireStatus(t, res, http.StatusUnauthorized)
}

func TestCreateConversation(t *testing.T) {
	env := testutils.GetTestMockServer(t)
	token := env.AuthToken(t)

	res := env.DoRequest(t, http.MethodPost, "/api/v1/conversations", token, handlers.CreateConversationRequest{})
	testutils.RequireStatus(t, res, http.StatusCreated)

	var chat models.Chat
	testutils.DecodeJSON(t, res, &chat)
	assert.Equal(t, models.DefaultChatTitle, chat.Title)
	require.NotEmpty(t, chat.ID)

	// The new conversation becomes the active one.
	assert.Equal(t, chat.ID, env.Store.CurrentChatID())
	assert.False(t, env.Store.ShowEmptyState())
}

func TestListConversationsRecentFirst(t *testing.T) {
	env := testutils.GetTestMockServer(t)
	token := env.AuthToken(t)

	first := env.Store.CreateChat("first")
	second := env.Store.CreateChat("second")

	res := env.DoRequest(t, http.MethodGet, "/api/v1/conversations", token, nil)
	testutils.RequireStatus(t, res, http.StatusOK)

	var chats []models.Chat
	testutils.DecodeJSON(t, res, &chats)
	require.Len(t, chats, 2)
	assert.Equal(t, second, chats[0].ID)
	assert.Equal(t, first, chats[1].ID)
}

func TestGetConversationNotFound(t *testing.T) {
	env := testutils.GetTestMockServer(t)

	res := env.DoRequest(t, http.MethodGet, "/api/v1/conversations/nope", env.AuthToken(t), nil)
	testutils.RequireStatus(t, res, http.StatusNotFound)
}

func TestRenameConversation(t *testing.T) {
	env := testutils.GetTestMockServer(t)
	token := env.AuthToken(t)
	chatID := env.Store.CreateChat("")

	res := env.DoRequest(t, http.MethodPut, "/api/v1/conversations/"+chatID, token, handlers.UpdateConversationRequest{
		Title: "Renamed",
	})
	testutils.RequireStatus(t, res, http.StatusOK)

	chat, ok := env.Store.Chat(chatID)
	require.True(t, ok)
	assert.Equal(t, "Renamed", chat.Title)
}

func TestRenameConversationValidation(t *testing.T) {
	env := testutils.GetTestMockServer(t)
	chatID := env.Store.CreateChat("")

	res := env.DoRequest(t, http.MethodPut, "/api/v1/conversations/"+chatID, env.AuthToken(t), handlers.UpdateConversationRequest{})
	testutils.RequireStatus(t, res, http.StatusBadRequest)
}

func TestDeleteConversationCascades(t *testing.T) {
	env := testutils.GetTestMockServer(t)
	token := env.AuthToken(t)
	chatID := env.Store.CreateChat("")
	_, err := env.Store.PostUserMessage(chatID, "some question")
	require.NoError(t, err)

	res := env.DoRequest(t, http.MethodDelete, "/api/v1/conversations/"+chatID, token, nil)
	testutils.RequireStatus(t, res, http.StatusOK)

	assert.Equal(t, 0, env.Store.ChatCount())
	assert.Equal(t, 0, env.Store.MessageCount())

	var body handlers.DeleteConversationResponse
	testutils.DecodeJSON(t, res, &body)
	assert.Equal(t, nav.StatePendingRedirect, body.Navigation.State)
	assert.Equal(t, nav.ChatRootPath, body.Navigation.RedirectTo)
	assert.True(t, body.Navigation.ShowEmptyState)
}

func TestDeleteActiveConversationAdoptsMostRecent(t *testing.T) {
	env := testutils.GetTestMockServer(t)
	token := env.AuthToken(t)

	keep := env.Store.CreateChat("keep")
	active := env.Store.CreateChat("active")
	env.Binder.Select(active)

	res := env.DoRequest(t, http.MethodDelete, "/api/v1/conversations/"+active, token, nil)
	testutils.RequireStatus(t, res, http.StatusOK)

	var body handlers.DeleteConversationResponse
	testutils.DecodeJSON(t, res, &body)
	assert.Equal(t, keep, body.Navigation.ChatID)
	assert.Equal(t, keep, env.Store.CurrentChatID())
}

func TestDeleteConversationNotFound(t *testing.T) {
	env := testutils.GetTestMockServer(t)

	res := env.DoRequest(t, http.MethodDelete, "/api/v1/conversations/nope", env.AuthToken(t), nil)
	testutils.RequireStatus(t, res, http.StatusNotFound)
}
