package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"

	"github.com/ilyaedelshtein/kornit-chat/pkg/export"
	"github.com/ilyaedelshtein/kornit-chat/pkg/metrics"
	"github.com/ilyaedelshtein/kornit-chat/pkg/mockengine"
	"github.com/ilyaedelshtein/kornit-chat/pkg/models"
	"github.com/ilyaedelshtein/kornit-chat/pkg/store"
)

// ExportHandler streams a bot message's result rows as a downloadable file
type ExportHandler struct {
	store *store.Store
}

// NewExportHandler creates a new export handler
func NewExportHandler(s *store.Store) *ExportHandler {
	return &ExportHandler{store: s}
}

// Export re-derives the rows behind a bot message and writes them in the
// requested format. The rows come from the question that produced the
// message, not from a stored copy.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "id")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Unsupported export format"})
		return
	}

	message, ok := h.store.Message(messageID)
	if !ok {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "Message not found"})
		return
	}
	if message.Role != models.MessageRoleBot {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Only assistant messages can be exported"})
		return
	}

	h.store.SetExportBusy(messageID, true)
	defer h.store.SetExportBusy(messageID, false)
	h.store.OpenSnackbar("Download started...")

	question, _ := h.store.QuestionForMessage(messageID)
	rows := mockengine.FilterRows(question)

	var buf bytes.Buffer
	var err error
	switch format {
	case "csv":
		err = export.WriteCSV(&buf, rows)
	case "xlsx":
		err = export.WriteXLSX(&buf, "Data", rows)
	}
	if err != nil {
		log.Error().Err(err).Str("format", format).Msg("Export failed")
		h.store.OpenSnackbar("Export failed")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "Export failed"})
		return
	}

	metrics.Exports.WithLabelValues(format).Inc()

	contentType := "text/csv"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="query-result.%s"`, format))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("Error writing export to response body")
	}
}
