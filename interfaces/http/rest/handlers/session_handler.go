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

// SessionHandler handles session lifecycle HTTP requests
type SessionHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateSessionRequest is the request body for creating a session
type CreateSessionRequest struct {
	Name string `json:"name,omitempty" validate:"omitempty,max=200"`
}

// OpenSessionRequest is the request body for resuming from a snapshot
type OpenSessionRequest struct {
	SnapshotID string `json:"snapshot_id" validate:"required"`
}

// RenameRequest is the request body for rename endpoints
type RenameRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// SessionResponse returns the ID of a created or opened session
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}
	}
	if err := utils.ValidateStruct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cmd := &commands.CreateSessionCommand{Name: req.Name}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, SessionResponse{SessionID: cmd.SessionID})
}

// OpenSession handles POST /sessions/open
func (h *SessionHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cmd := &commands.OpenSessionCommand{SnapshotID: req.SnapshotID}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, SessionResponse{SessionID: cmd.SessionID})
}

// ListSessions handles GET /sessions
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListSessionsQuery{})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetTimeline handles GET /sessions/{sessionID}
func (h *SessionHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetTimelineQuery{
		SessionID: chi.URLParam(r, "sessionID"),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CloseSession handles DELETE /sessions/{sessionID}
func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.CloseSessionCommand{SessionID: chi.URLParam(r, "sessionID")}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenameTimeline handles PATCH /sessions/{sessionID}
func (h *SessionHandler) RenameTimeline(w http.ResponseWriter, r *http.Request) {
	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cmd := &commands.RenameTimelineCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		Name:      req.Name,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveSnapshot handles POST /sessions/{sessionID}/snapshot
func (h *SessionHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.SaveSnapshotCommand{SessionID: chi.URLParam(r, "sessionID")}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSnapshots handles GET /snapshots
func (h *SessionHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListSnapshotsQuery{})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetDuration handles GET /sessions/{sessionID}/duration
func (h *SessionHandler) GetDuration(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetDurationQuery{
		SessionID: chi.URLParam(r, "sessionID"),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
