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

// TrackHandler handles track-related HTTP requests
type TrackHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *TrackHandler {
	return &TrackHandler{commandBus: commandBus, queryBus: queryBus, logger: logger}
}

// AddTrackRequest is the request body for adding a track
type AddTrackRequest struct {
	Type  string `json:"type" validate:"required,oneof=video audio effects"`
	Index *int   `json:"index,omitempty" validate:"omitempty,gte=0"`
}

// AddTrackResponse returns the ID of the created track
type AddTrackResponse struct {
	TrackID string `json:"track_id"`
}

// AddTrack handles POST /sessions/{sessionID}/tracks
func (h *TrackHandler) AddTrack(w http.ResponseWriter, r *http.Request) {
	var req AddTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cmd := &commands.AddTrackCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		Type:      req.Type,
		Index:     req.Index,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, AddTrackResponse{TrackID: cmd.CreatedTrackID})
}

// GetTrack handles GET /sessions/{sessionID}/tracks/{trackID}
func (h *TrackHandler) GetTrack(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetTrackQuery{
		SessionID: chi.URLParam(r, "sessionID"),
		TrackID:   chi.URLParam(r, "trackID"),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// RemoveTrack handles DELETE /sessions/{sessionID}/tracks/{trackID}
func (h *TrackHandler) RemoveTrack(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.RemoveTrackCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		TrackID:   chi.URLParam(r, "trackID"),
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenameTrack handles PATCH /sessions/{sessionID}/tracks/{trackID}
func (h *TrackHandler) RenameTrack(w http.ResponseWriter, r *http.Request) {
	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cmd := &commands.RenameTrackCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		TrackID:   chi.URLParam(r, "trackID"),
		Name:      req.Name,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleMute handles POST /sessions/{sessionID}/tracks/{trackID}/mute
func (h *TrackHandler) ToggleMute(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.ToggleTrackMuteCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		TrackID:   chi.URLParam(r, "trackID"),
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
