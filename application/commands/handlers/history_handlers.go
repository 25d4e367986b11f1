package handlers

import (
	"context"
	"fmt"

	"opencut-backend/application/commands"
	"opencut-backend/application/commands/bus"
	"opencut-backend/application/services"
)

// UndoHandler restores pre-mutation state
type UndoHandler struct {
	editor *services.EditorService
}

// NewUndoHandler creates the handler
func NewUndoHandler(editor *services.EditorService) *UndoHandler {
	return &UndoHandler{editor: editor}
}

// Handle executes the command
func (h *UndoHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.UndoCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.editor.Undo(ctx, c.SessionID)
}

// RedoHandler reverses undos
type RedoHandler struct {
	editor *services.EditorService
}

func NewRedoHandler(editor *services.EditorService) *RedoHandler {
	return &RedoHandler{editor: editor}
}

func (h *RedoHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.RedoCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.editor.Redo(ctx, c.SessionID)
}
