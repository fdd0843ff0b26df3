package handlers

import (
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ilyaedelshtein/kornit-chat/pkg/auth"
	"github.com/ilyaedelshtein/kornit-chat/pkg/bot"
	"github.com/ilyaedelshtein/kornit-chat/pkg/config"
	"github.com/ilyaedelshtein/kornit-chat/pkg/nav"
	"github.com/ilyaedelshtein/kornit-chat/pkg/store"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(
	r chi.Router,
	s *store.Store,
	responder *bot.Responder,
	binder *nav.Binder,
	authenticator *auth.Authenticator,
	tokens *auth.TokenIssuer,
	ready func() error,
) {
	// Infrastructure routes outside the API prefix
	checksHandler := NewChecksHandler(ready)
	r.Mount("/checks", checksHandler.Routes())
	r.Mount("/metrics", promhttp.Handler())

	r.Route(config.APIPrefixV1, func(r chi.Router) {
		// Public routes (no authentication required)
		authHandler := NewAuthHandler(s, authenticator, tokens)
		r.Mount("/auth", authHandler.Routes())

		// Protected routes (authentication required)
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokens))

			// Conversations
			conversationsHandler := NewConversationsHandler(s, responder, binder)
			r.Mount("/conversations", conversationsHandler.Routes())

			// Messages (nested under conversations)
			messagesHandler := NewMessagesHandler(s, responder)
			r.Route("/conversations/{id}/messages", func(r chi.Router) {
				r.Mount("/", messagesHandler.Routes())
			})

			// Per-message mutations and exports
			messageActionsHandler := NewMessageActionsHandler(s)
			r.Mount("/messages", messageActionsHandler.Routes())

			// Verified query catalog
			verifiedHandler := NewVerifiedQueriesHandler(s)
			r.Mount("/queries", verifiedHandler.Routes())

			// Navigation reconciliation for the client shell
			navHandler := NewNavHandler(binder)
			r.Mount("/navigation", navHandler.Routes())
		})
	})
}
