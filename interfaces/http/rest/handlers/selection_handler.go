package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"opencut-backend/application/commands"
	"opencut-backend/application/commands/bus"
	"opencut-backend/application/queries"
	querybus "opencut-backend/application/queries/bus"
	"opencut-backend/pkg/utils"
)

// SelectionHandler handles selection HTTP requests
type SelectionHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// SelectClipRequest is the request body for selecting one clip
type SelectClipRequest struct {
	TrackID  string `json:"track_id" validate:"required,uuid"`
	ClipID   string `json:"clip_id" validate:"required,uuid"`
	Additive bool   `json:"additive,omitempty"`
}

// SetSelectionRequest is the request body for replacing the selection
type SetSelectionRequest struct {
	Clips []commands.ClipRef `json:"clips" validate:"dive"`
}

// SplitSelectedRequest is the request body for splitting at the playhead
type SplitSelectedRequest struct {
	Playhead float64 `json:"playhead" validate:"gte=0"`
}

// GetSelection handles GET /sessions/{sessionID}/selection
func (h *SelectionHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetSelectionQuery{
		SessionID: chi.URLParam(r, "sessionID"),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SelectClip handles POST /sessions/{sessionID}/selection/select
func (h *SelectionHandler) SelectClip(w http.ResponseWriter, r *http.Request) {
	var req SelectClipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cmd := &commands.SelectClipCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		TrackID:   req.TrackID,
		ClipID:    req.ClipID,
		Additive:  req.Additive,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetSelection handles PUT /sessions/{sessionID}/selection
func (h *SelectionHandler) SetSelection(w http.ResponseWriter, r *http.Request) {
	var req SetSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cmd := &commands.SetSelectionCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		Clips:     req.Clips,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearSelection handles DELETE /sessions/{sessionID}/selection
func (h *SelectionHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.ClearSelectionCommand{SessionID: chi.URLParam(r, "sessionID")}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSelected handles POST /sessions/{sessionID}/selection/delete
func (h *SelectionHandler) DeleteSelected(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.DeleteSelectedCommand{SessionID: chi.URLParam(r, "sessionID")}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SplitSelected handles POST /sessions/{sessionID}/selection/split
func (h *SelectionHandler) SplitSelected(w http.ResponseWriter, r *http.Request) {
	var req SplitSelectedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cmd := &commands.SplitSelectedCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		Playhead:  req.Playhead,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateSelected handles POST /sessions/{sessionID}/selection/duplicate
func (h *SelectionHandler) DuplicateSelected(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.DuplicateSelectedCommand{SessionID: chi.URLParam(r, "sessionID")}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
