package handlers

import (
	"context"
	"fmt"

	"opencut-backend/application/commands"
	"opencut-backend/application/commands/bus"
	"opencut-backend/application/services"
	"opencut-backend/domain/core/aggregates"
)

// CreateSessionHandler opens editing sessions
type CreateSessionHandler struct {
	editor *services.EditorService
}

// NewCreateSessionHandler creates the handler
func NewCreateSessionHandler(editor *services.EditorService) *CreateSessionHandler {
	return &CreateSessionHandler{editor: editor}
}

// Handle executes the command
func (h *CreateSessionHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.CreateSessionCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	timeline, err := h.editor.CreateSession(ctx, c.Name)
	if err != nil {
		return err
	}
	c.SessionID = timeline.ID().String()
	return nil
}

// OpenSessionHandler resumes sessions from persisted snapshots
type OpenSessionHandler struct {
	editor *services.EditorService
}

func NewOpenSessionHandler(editor *services.EditorService) *OpenSessionHandler {
	return &OpenSessionHandler{editor: editor}
}

func (h *OpenSessionHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.OpenSessionCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	timeline, err := h.editor.OpenFromSnapshot(ctx, c.SnapshotID)
	if err != nil {
		return err
	}
	c.SessionID = timeline.ID().String()
	return nil
}

// CloseSessionHandler ends editing sessions
type CloseSessionHandler struct {
	editor *services.EditorService
}

func NewCloseSessionHandler(editor *services.EditorService) *CloseSessionHandler {
	return &CloseSessionHandler{editor: editor}
}

func (h *CloseSessionHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.CloseSessionCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.editor.CloseSession(ctx, c.SessionID)
}

// SaveSnapshotHandler persists session state on request
type SaveSnapshotHandler struct {
	editor *services.EditorService
}

func NewSaveSnapshotHandler(editor *services.EditorService) *SaveSnapshotHandler {
	return &SaveSnapshotHandler{editor: editor}
}

func (h *SaveSnapshotHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.SaveSnapshotCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.editor.SaveSnapshot(ctx, c.SessionID)
}

// RenameTimelineHandler renames the project
type RenameTimelineHandler struct {
	editor *services.EditorService
}

func NewRenameTimelineHandler(editor *services.EditorService) *RenameTimelineHandler {
	return &RenameTimelineHandler{editor: editor}
}

func (h *RenameTimelineHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.RenameTimelineCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		return tl.Rename(c.Name)
	})
}
