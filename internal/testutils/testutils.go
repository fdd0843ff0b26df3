// Package testutils holds helpers shared by the handler and server tests.
package testutils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/cors"
	"github.com/stretchr/testify/require"

	"github.com/ilyaedelshtein/kornit-chat/pkg/auth"
	"github.com/ilyaedelshtein/kornit-chat/pkg/bot"
	"github.com/ilyaedelshtein/kornit-chat/pkg/config"
	"github.com/ilyaedelshtein/kornit-chat/pkg/handlers"
	"github.com/ilyaedelshtein/kornit-chat/pkg/metrics"
	"github.com/ilyaedelshtein/kornit-chat/pkg/nav"
	"github.com/ilyaedelshtein/kornit-chat/pkg/server"
	"github.com/ilyaedelshtein/kornit-chat/pkg/storage"
	"github.com/ilyaedelshtein/kornit-chat/pkg/store"
)

// TestJWTSecret signs session tokens in tests
const TestJWTSecret = "test-secret"

// Env bundles the wired application for handler tests.
type Env struct {
	Server    *server.Server
	Store     *store.Store
	Responder *bot.Responder
	Binder    *nav.Binder
	Tokens    *auth.TokenIssuer
}

// GetRequestPayload converts a given object into a reader of that object as json payload
func GetRequestPayload(payload interface{}) io.Reader {
	bytes, _ := json.Marshal(payload)
	return strings.NewReader(string(bytes))
}

// GetTestMockServer creates the mocked server for tests
func GetTestMockServer(t *testing.T) *Env {
	t.Helper()

	s, err := store.New(storage.Noop{})
	require.NoError(t, err)

	responder := bot.NewResponder(s, bot.WithDelayBounds(time.Millisecond, 2*time.Millisecond))
	binder := nav.NewBinder(s)

	authenticator, err := auth.NewAuthenticator("", "", 0)
	require.NoError(t, err)
	tokens, err := auth.NewTokenIssuer([]byte(TestJWTSecret), time.Hour)
	require.NoError(t, err)

	// A fresh login forces the empty state once; the same reaction main wires.
	s.Subscribe(func(ev store.Event) {
		if ev.Type == store.EventLoginSucceeded {
			s.ResetChatView()
		}
	})

	corsOptions := config.CorsConfig([]string{"localhost"})
	srv := server.NewServer("TEST_SERVER", cors.New(corsOptions), 8, 10*time.Second)
	handlers.RegisterRoutes(srv.Mux(), s, responder, binder, authenticator, tokens, nil)
	metrics.AddBuildInfoMetric()

	return &Env{
		Server:    srv,
		Store:     s,
		Responder: responder,
		Binder:    binder,
		Tokens:    tokens,
	}
}

// AuthToken issues a valid session token for requests to protected routes
func (e *Env) AuthToken(t *testing.T) string {
	t.Helper()
	token, err := e.Tokens.Issue(auth.DefaultDemoUsername)
	require.NoError(t, err)
	return token
}

// DoRequest runs a request against the test server and returns the recorder
func (e *Env) DoRequest(t *testing.T, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		body = GetRequestPayload(payload)
	}
	request := httptest.NewRequest(method, url, body)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	writer := httptest.NewRecorder()
	e.Server.Mux().ServeHTTP(writer, request)
	return writer
}

// DecodeJSON unmarshals a response body, failing the test on bad JSON
func DecodeJSON(t *testing.T, res *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), target))
}

// RequireStatus asserts the response status with the body in the failure message
func RequireStatus(t *testing.T, res *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, res.Code, "unexpected status, body: %s", res.Body.String())
}
