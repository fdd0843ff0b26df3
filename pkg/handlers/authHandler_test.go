package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyaedelshtein/kornit-chat/internal/testutils"
	"github.com/ilyaedelshtein/kornit-chat/pkg/handlers"
)

func TestLoginSuccess(t *testing.T) {
	env := testutils.GetTestMockServer(t)

	res := env.DoRequest(t, http.MethodPost, "/api/v1/auth/login", "", handlers.LoginRequest{
		Username: "admin",
		Password: "admin",
	})
	testutils.RequireStatus(t, res, http.StatusOK)

	var body handlers.AuthResponse
	testutils.DecodeJSON(t, res, &body)
	assert.Equal(t, "admin", body.User.Username)
	require.NotEmpty(t, body.Token)

	username, err := env.Tokens.Validate(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	state := env.Store.AuthState()
	assert.True(t, state.IsAuthenticated)
	assert.Empty(t, state.Error)
}

func TestLoginWrongPassword(t *testing.T) {
	env := testutils.GetTestMockServer(t)

	res := env.DoRequest(t, http.MethodPost, "/api/v1/auth/login", "", handlers.LoginRequest{
		Username: "admin",
		Password: "nope",
	})
	testutils.RequireStatus(t, res, http.StatusUnauthorized)

	state := env.Store.AuthState()
	assert.False(t, state.IsAuthenticated)
	assert.NotEmpty(t, state.Error)
}

func TestLoginValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"missing username", "", "admin"},
		{"missing password", "admin", ""},
	}

	env := testutils.GetTestMockServer(t)

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			res := env.DoRequest(t, http.MethodPost, "/api/v1/auth/login", "", handlers.LoginRequest{
				Username: test.username,
				Password: test.password,
			})
			testutils.RequireStatus(t, res, http.StatusBadRequest)
		})
	}
}

func TestLoginForcesEmptyState(t *testing.T) {
	env := testutils.GetTestMockServer(t)
	chatID := env.Store.CreateChat("existing")
	env.Binder.Select(chatID)

	res := env.DoRequest(t, http.MethodPost, "/api/v1/auth/login", "", handlers.LoginRequest{
		Username: "admin",
		Password: "admin",
	})
	testutils.RequireStatus(t, res, http.StatusOK)

	assert.True(t, env.Store.ShowEmptyState())
	assert.Empty(t, env.Store.CurrentChatID())
}

func TestMeRequiresToken(t *testing.T) {
	env := testutils.GetTestMockServer(t)

	res := env.DoRequest(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	testutils.RequireStatus(t, res, http.StatusUnauthorized)

	res = env.DoRequest(t, http.MethodGet, "/api/v1/auth/me", env.AuthToken(t), nil)
	testutils.RequireStatus(t, res, http.StatusOK)

	var body map[string]string
	testutils.DecodeJSON(t, res, &body)
	assert.Equal(t, "admin", body["username"])
}

func TestLogoutKeepsConversations(t *testing.T) {
	env := testutils.GetTestMockServer(t)
	env.Store.LoginSuccess("admin")
	env.Store.CreateChat("keep me")

	res := env.DoRequest(t, http.MethodPost, "/api/v1/auth/logout", env.AuthToken(t), nil)
	testutils.RequireStatus(t, res, http.StatusNoContent)

	assert.False(t, env.Store.AuthState().IsAuthenticated)
	assert.Equal(t, 1, env.Store.ChatCount())
}
