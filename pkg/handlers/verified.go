package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/ilyaedelshtein/kornit-chat/pkg/store"
)

// VerifiedQueriesHandler exposes the liked bot answers as a reviewed query
// catalog
type VerifiedQueriesHandler struct {
	store *store.Store
}

// NewVerifiedQueriesHandler creates a new verified queries handler
func NewVerifiedQueriesHandler(s *store.Store) *VerifiedQueriesHandler {
	return &VerifiedQueriesHandler{store: s}
}

// Routes returns verified query routes
func (h *VerifiedQueriesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/verified", h.ListVerified)
	return r
}

// ListVerified returns every liked bot message keyed by the question that
// produced it
func (h *VerifiedQueriesHandler) ListVerified(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.store.VerifiedQueries())
}
