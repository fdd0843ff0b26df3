package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog/log"
)

// ChecksHandler is the handler responsible for k8s checks
type ChecksHandler struct {
	ready func() error
}

// NewChecksHandler initializes a new handler. The ready probe may be nil when
// nothing external can fail.
func NewChecksHandler(ready func() error) *ChecksHandler {
	return &ChecksHandler{ready: ready}
}

// Routes returns the routes for the ChecksHandler
func (h *ChecksHandler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/liveness", h.Liveness)
	router.Get("/readiness", h.Readiness)
	return router
}

// Liveness is a check that describes if the application has started
func (h *ChecksHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	// We use the stricter readiness check also for liveness to make
	// K8s restart the pod if something is wrong with the snapshot backend.
	h.Readiness(w, r)
}

// Readiness is a check if application can handle requests
func (h *ChecksHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Error().Err(err).Msg("Error writing OK to response body")
	}
}
