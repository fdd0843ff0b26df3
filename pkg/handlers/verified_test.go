package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyaedelshtein/kornit-chat/internal/testutils"
	"github.com/ilyaedelshtein/kornit-chat/pkg/models"
	"github.com/ilyaedelshtein/kornit-chat/pkg/store"
)

func TestListVerifiedQueries(t *testing.T) {
	env := testutils.GetTestMockServer(t)
	token := env.AuthToken(t)

	chatID, botID := seedAnsweredQuestion(t, env.Store, "monthly revenue")
	require.NoError(t, env.Store.ToggleMessageFeedback(botID, models.FeedbackLike))

	// A second, unliked answer stays out of the catalog.
	seedAnsweredQuestion(t, env.Store, "channel split")

	res := env.DoRequest(t, http.MethodGet, "/api/v1/queries/verified", token, nil)
	testutils.RequireStatus(t, res, http.StatusOK)

	var queries []store.VerifiedQuery
	testutils.DecodeJSON(t, res, &queries)
	require.Len(t, queries, 1)
	assert.Equal(t, "monthly revenue", queries[0].Question)
	assert.Equal(t, botID, queries[0].MessageID)
	assert.Equal(t, chatID, queries[0].ChatID)
	assert.Equal(t, "SELECT 1;", queries[0].SQL)
}

func TestListVerifiedQueriesEmpty(t *testing.T) {
	env := testutils.GetTestMockServer(t)

	res := env.DoRequest(t, http.MethodGet, "/api/v1/queries/verified", env.AuthToken(t), nil)
	testutils.RequireStatus(t, res, http.StatusOK)
	assert.JSONEq(t, "[]", res.Body.String())
}
