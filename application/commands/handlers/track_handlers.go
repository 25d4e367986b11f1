package handlers

import (
	"context"
	"fmt"

	"opencut-backend/application/commands"
	"opencut-backend/application/commands/bus"
	"opencut-backend/application/services"
	"opencut-backend/domain/core/aggregates"
	"opencut-backend/domain/core/valueobjects"
)

// AddTrackHandler adds tracks to a session's timeline
type AddTrackHandler struct {
	editor *services.EditorService
}

// NewAddTrackHandler creates the handler
func NewAddTrackHandler(editor *services.EditorService) *AddTrackHandler {
	return &AddTrackHandler{editor: editor}
}

// Handle executes the command
func (h *AddTrackHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.AddTrackCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	ttype, err := valueobjects.ParseTrackType(c.Type)
	if err != nil {
		return err
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		var trackID valueobjects.TrackID
		var opErr error
		if c.Index != nil {
			trackID, opErr = tl.InsertTrack(ttype, *c.Index)
		} else {
			trackID, opErr = tl.AddTrack(ttype)
		}
		if opErr != nil {
			return opErr
		}
		c.CreatedTrackID = trackID.String()
		return nil
	})
}

// RemoveTrackHandler removes tracks
type RemoveTrackHandler struct {
	editor *services.EditorService
}

func NewRemoveTrackHandler(editor *services.EditorService) *RemoveTrackHandler {
	return &RemoveTrackHandler{editor: editor}
}

func (h *RemoveTrackHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.RemoveTrackCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	trackID, err := valueobjects.NewTrackIDFromString(c.TrackID)
	if err != nil {
		return err
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		tl.RemoveTrack(trackID)
		return nil
	})
}

// RenameTrackHandler renames tracks
type RenameTrackHandler struct {
	editor *services.EditorService
}

func NewRenameTrackHandler(editor *services.EditorService) *RenameTrackHandler {
	return &RenameTrackHandler{editor: editor}
}

func (h *RenameTrackHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.RenameTrackCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	trackID, err := valueobjects.NewTrackIDFromString(c.TrackID)
	if err != nil {
		return err
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		return tl.RenameTrack(trackID, c.Name)
	})
}

// ToggleTrackMuteHandler flips track mute flags
type ToggleTrackMuteHandler struct {
	editor *services.EditorService
}

func NewToggleTrackMuteHandler(editor *services.EditorService) *ToggleTrackMuteHandler {
	return &ToggleTrackMuteHandler{editor: editor}
}

func (h *ToggleTrackMuteHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.ToggleTrackMuteCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	trackID, err := valueobjects.NewTrackIDFromString(c.TrackID)
	if err != nil {
		return err
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		tl.ToggleTrackMute(trackID)
		return nil
	})
}
