package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"opencut-backend/application/commands"
	"opencut-backend/application/commands/bus"
	"opencut-backend/application/queries"
	querybus "opencut-backend/application/queries/bus"
)

// HistoryHandler handles undo/redo HTTP requests
type HistoryHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// Undo handles POST /sessions/{sessionID}/undo
func (h *HistoryHandler) Undo(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.UndoCommand{SessionID: chi.URLParam(r, "sessionID")}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Redo handles POST /sessions/{sessionID}/redo
func (h *HistoryHandler) Redo(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.RedoCommand{SessionID: chi.URLParam(r, "sessionID")}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStatus handles GET /sessions/{sessionID}/history
func (h *HistoryHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetHistoryStatusQuery{
		SessionID: chi.URLParam(r, "sessionID"),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
