package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"opencut-backend/application/ports"
	"opencut-backend/application/queries"
	querybus "opencut-backend/application/queries/bus"
	pkgerrors "opencut-backend/pkg/errors"
)

// ExportHandler handles export and media HTTP requests
type ExportHandler struct {
	queryBus   *querybus.QueryBus
	thumbnails ports.ThumbnailProvider
	logger     *zap.Logger
}

// NewExportHandler creates a new export handler. thumbnails may be nil
// when no thumbnail service is configured.
func NewExportHandler(queryBus *querybus.QueryBus, thumbnails ports.ThumbnailProvider, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		queryBus:   queryBus,
		thumbnails: thumbnails,
		logger:     logger,
	}
}

// ExportEDL handles GET /sessions/{sessionID}/export/edl
func (h *ExportHandler) ExportEDL(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ExportEDLQuery{
		SessionID: chi.URLParam(r, "sessionID"),
		Title:     r.URL.Query().Get("title"),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	edl, ok := result.(string)
	if !ok {
		writeError(w, h.logger, pkgerrors.NewInternal("unexpected export result type", nil))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="timeline.edl"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(edl))
}

// ThumbnailResponse returns a resolved preview frame URL
type ThumbnailResponse struct {
	URL string `json:"url"`
}

// GetThumbnail handles GET /media/{mediaID}/thumbnail
func (h *ExportHandler) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	if h.thumbnails == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "thumbnail service is not configured"})
		return
	}

	sourceTime := 0.0
	if raw := r.URL.Query().Get("time"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "time must be a number"})
			return
		}
		sourceTime = parsed
	}

	url, err := h.thumbnails.ThumbnailURL(r.Context(), chi.URLParam(r, "mediaID"), sourceTime)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ThumbnailResponse{URL: url})
}
