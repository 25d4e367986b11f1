package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"opencut-backend/application/commands"
	"opencut-backend/application/commands/bus"
	"opencut-backend/pkg/utils"
)

// ClipHandler handles clip-related HTTP requests
type ClipHandler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewClipHandler creates a new clip handler
func NewClipHandler(commandBus *bus.CommandBus, logger *zap.Logger) *ClipHandler {
	return &ClipHandler{commandBus: commandBus, logger: logger}
}

// AddClipRequest is the request body for placing a clip
type AddClipRequest struct {
	MediaID        string  `json:"media_id" validate:"required"`
	Name           string  `json:"name,omitempty" validate:"omitempty,max=200"`
	SourceDuration float64 `json:"source_duration" validate:"required,gt=0"`
	StartTime      float64 `json:"start_time" validate:"gte=0"`
}

// MoveClipRequest is the request body for relocating a clip
type MoveClipRequest struct {
	ToTrackID string  `json:"to_track_id" validate:"required,uuid"`
	StartTime float64 `json:"start_time" validate:"gte=0"`
}

// SetStartRequest is the request body for repositioning a clip
type SetStartRequest struct {
	StartTime float64 `json:"start_time" validate:"gte=0"`
}

// TrimClipRequest is the request body for trimming a clip
type TrimClipRequest struct {
	TrimStart float64 `json:"trim_start" validate:"gte=0"`
	TrimEnd   float64 `json:"trim_end" validate:"gte=0"`
}

// SplitClipRequest is the request body for splitting a clip
type SplitClipRequest struct {
	SplitAt float64 `json:"split_at" validate:"gte=0"`
}

// FreezeFrameRequest is the request body for a freeze frame insert
type FreezeFrameRequest struct {
	TargetTrackID string  `json:"target_track_id" validate:"required,uuid"`
	Playhead      float64 `json:"playhead" validate:"gte=0"`
}

// ClipResponse returns the ID of a created clip
type ClipResponse struct {
	ClipID string `json:"clip_id"`
}

func (h *ClipHandler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}
	return true
}

// AddClip handles POST /sessions/{sessionID}/tracks/{trackID}/clips
func (h *ClipHandler) AddClip(w http.ResponseWriter, r *http.Request) {
	var req AddClipRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := &commands.AddClipCommand{
		SessionID:      chi.URLParam(r, "sessionID"),
		TrackID:        chi.URLParam(r, "trackID"),
		MediaID:        req.MediaID,
		Name:           req.Name,
		SourceDuration: req.SourceDuration,
		StartTime:      req.StartTime,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, ClipResponse{ClipID: cmd.CreatedClipID})
}

// RemoveClip handles DELETE /sessions/{sessionID}/tracks/{trackID}/clips/{clipID}.
// With ?ripple=true the gap closes and later clips shift left.
func (h *ClipHandler) RemoveClip(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.RemoveClipCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		TrackID:   chi.URLParam(r, "trackID"),
		ClipID:    chi.URLParam(r, "clipID"),
		Ripple:    r.URL.Query().Get("ripple") == "true",
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveClip handles POST .../clips/{clipID}/move
func (h *ClipHandler) MoveClip(w http.ResponseWriter, r *http.Request) {
	var req MoveClipRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := &commands.MoveClipCommand{
		SessionID:   chi.URLParam(r, "sessionID"),
		FromTrackID: chi.URLParam(r, "trackID"),
		ToTrackID:   req.ToTrackID,
		ClipID:      chi.URLParam(r, "clipID"),
		StartTime:   req.StartTime,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetStart handles POST .../clips/{clipID}/start
func (h *ClipHandler) SetStart(w http.ResponseWriter, r *http.Request) {
	var req SetStartRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := &commands.SetClipStartCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		TrackID:   chi.URLParam(r, "trackID"),
		ClipID:    chi.URLParam(r, "clipID"),
		StartTime: req.StartTime,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TrimClip handles POST .../clips/{clipID}/trim
func (h *ClipHandler) TrimClip(w http.ResponseWriter, r *http.Request) {
	var req TrimClipRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := &commands.TrimClipCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		TrackID:   chi.URLParam(r, "trackID"),
		ClipID:    chi.URLParam(r, "clipID"),
		TrimStart: req.TrimStart,
		TrimEnd:   req.TrimEnd,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SplitClip handles POST .../clips/{clipID}/split
func (h *ClipHandler) SplitClip(w http.ResponseWriter, r *http.Request) {
	var req SplitClipRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := &commands.SplitClipCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		TrackID:   chi.URLParam(r, "trackID"),
		ClipID:    chi.URLParam(r, "clipID"),
		SplitAt:   req.SplitAt,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, ClipResponse{ClipID: cmd.CreatedClipID})
}

// DuplicateClip handles POST .../clips/{clipID}/duplicate
func (h *ClipHandler) DuplicateClip(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.DuplicateClipCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		TrackID:   chi.URLParam(r, "trackID"),
		ClipID:    chi.URLParam(r, "clipID"),
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, ClipResponse{ClipID: cmd.CreatedClipID})
}

// FreezeFrame handles POST .../clips/{clipID}/freeze
func (h *ClipHandler) FreezeFrame(w http.ResponseWriter, r *http.Request) {
	var req FreezeFrameRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := &commands.FreezeFrameCommand{
		SessionID:     chi.URLParam(r, "sessionID"),
		TrackID:       chi.URLParam(r, "trackID"),
		ClipID:        chi.URLParam(r, "clipID"),
		TargetTrackID: req.TargetTrackID,
		Playhead:      req.Playhead,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, ClipResponse{ClipID: cmd.CreatedClipID})
}

// ToggleMute handles POST .../clips/{clipID}/mute
func (h *ClipHandler) ToggleMute(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.ToggleClipMuteCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		TrackID:   chi.URLParam(r, "trackID"),
		ClipID:    chi.URLParam(r, "clipID"),
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenameClip handles PATCH .../clips/{clipID}
func (h *ClipHandler) RenameClip(w http.ResponseWriter, r *http.Request) {
	var req RenameRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := &commands.RenameClipCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		TrackID:   chi.URLParam(r, "trackID"),
		ClipID:    chi.URLParam(r, "clipID"),
		Name:      req.Name,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
