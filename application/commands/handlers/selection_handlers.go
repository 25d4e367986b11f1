package handlers

import (
	"context"
	"fmt"

	"opencut-backend/application/commands"
	"opencut-backend/application/commands/bus"
	"opencut-backend/application/services"
	"opencut-backend/domain/core/valueobjects"
)

// SelectClipHandler updates the session selection
type SelectClipHandler struct {
	editor *services.EditorService
}

// NewSelectClipHandler creates the handler
func NewSelectClipHandler(editor *services.EditorService) *SelectClipHandler {
	return &SelectClipHandler{editor: editor}
}

// Handle executes the command
func (h *SelectClipHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.SelectClipCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	trackID, clipID, err := clipRef(c.TrackID, c.ClipID)
	if err != nil {
		return err
	}
	return h.editor.Select(ctx, c.SessionID, trackID, clipID, c.Additive)
}

// SetSelectionHandler replaces the selection wholesale
type SetSelectionHandler struct {
	editor *services.EditorService
}

func NewSetSelectionHandler(editor *services.EditorService) *SetSelectionHandler {
	return &SetSelectionHandler{editor: editor}
}

func (h *SetSelectionHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.SetSelectionCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	refs := make([]valueobjects.SelectionRef, 0, len(c.Clips))
	for _, entry := range c.Clips {
		trackID, clipID, err := clipRef(entry.TrackID, entry.ClipID)
		if err != nil {
			return err
		}
		ref, err := valueobjects.NewSelectionRef(trackID, clipID)
		if err != nil {
			return err
		}
		refs = append(refs, ref)
	}
	return h.editor.SetSelection(ctx, c.SessionID, refs)
}

// ClearSelectionHandler empties the selection
type ClearSelectionHandler struct {
	editor *services.EditorService
}

func NewClearSelectionHandler(editor *services.EditorService) *ClearSelectionHandler {
	return &ClearSelectionHandler{editor: editor}
}

func (h *ClearSelectionHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.ClearSelectionCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.editor.ClearSelection(c.SessionID)
}

// DeleteSelectedHandler removes all selected clips
type DeleteSelectedHandler struct {
	editor *services.EditorService
}

func NewDeleteSelectedHandler(editor *services.EditorService) *DeleteSelectedHandler {
	return &DeleteSelectedHandler{editor: editor}
}

func (h *DeleteSelectedHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.DeleteSelectedCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.editor.DeleteSelected(ctx, c.SessionID)
}

// SplitSelectedHandler splits selected clips at the playhead
type SplitSelectedHandler struct {
	editor *services.EditorService
}

func NewSplitSelectedHandler(editor *services.EditorService) *SplitSelectedHandler {
	return &SplitSelectedHandler{editor: editor}
}

func (h *SplitSelectedHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.SplitSelectedCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.editor.SplitSelected(ctx, c.SessionID, c.Playhead)
}

// DuplicateSelectedHandler duplicates selected clips
type DuplicateSelectedHandler struct {
	editor *services.EditorService
}

func NewDuplicateSelectedHandler(editor *services.EditorService) *DuplicateSelectedHandler {
	return &DuplicateSelectedHandler{editor: editor}
}

func (h *DuplicateSelectedHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.DuplicateSelectedCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.editor.DuplicateSelected(ctx, c.SessionID)
}
