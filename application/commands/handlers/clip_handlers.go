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

func clipRef(trackID, clipID string) (valueobjects.TrackID, valueobjects.ClipID, error) {
	tid, err := valueobjects.NewTrackIDFromString(trackID)
	if err != nil {
		return valueobjects.TrackID{}, valueobjects.ClipID{}, err
	}
	cid, err := valueobjects.NewClipIDFromString(clipID)
	if err != nil {
		return valueobjects.TrackID{}, valueobjects.ClipID{}, err
	}
	return tid, cid, nil
}

// AddClipHandler places new clips
type AddClipHandler struct {
	editor *services.EditorService
}

// NewAddClipHandler creates the handler
func NewAddClipHandler(editor *services.EditorService) *AddClipHandler {
	return &AddClipHandler{editor: editor}
}

// Handle executes the command
func (h *AddClipHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.AddClipCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	trackID, err := valueobjects.NewTrackIDFromString(c.TrackID)
	if err != nil {
		return err
	}
	mediaID, err := valueobjects.NewMediaIDFromString(c.MediaID)
	if err != nil {
		return err
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		clipID, opErr := tl.AddClip(trackID, aggregates.ClipSpec{
			MediaID:        mediaID,
			Name:           c.Name,
			SourceDuration: c.SourceDuration,
			StartTime:      c.StartTime,
		})
		if opErr != nil {
			return opErr
		}
		c.CreatedClipID = clipID.String()
		return nil
	})
}

// RemoveClipHandler removes clips, plain or ripple
type RemoveClipHandler struct {
	editor *services.EditorService
}

func NewRemoveClipHandler(editor *services.EditorService) *RemoveClipHandler {
	return &RemoveClipHandler{editor: editor}
}

func (h *RemoveClipHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.RemoveClipCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	trackID, clipID, err := clipRef(c.TrackID, c.ClipID)
	if err != nil {
		return err
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		if c.Ripple {
			return tl.RippleDelete(trackID, clipID)
		}
		tl.RemoveClip(trackID, clipID)
		return nil
	})
}

// MoveClipHandler relocates clips across tracks
type MoveClipHandler struct {
	editor *services.EditorService
}

func NewMoveClipHandler(editor *services.EditorService) *MoveClipHandler {
	return &MoveClipHandler{editor: editor}
}

func (h *MoveClipHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.MoveClipCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	fromID, err := valueobjects.NewTrackIDFromString(c.FromTrackID)
	if err != nil {
		return err
	}
	toID, err := valueobjects.NewTrackIDFromString(c.ToTrackID)
	if err != nil {
		return err
	}
	clipID, err := valueobjects.NewClipIDFromString(c.ClipID)
	if err != nil {
		return err
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		return tl.MoveClip(fromID, toID, clipID, c.StartTime)
	})
}

// SetClipStartHandler repositions clips on their own track
type SetClipStartHandler struct {
	editor *services.EditorService
}

func NewSetClipStartHandler(editor *services.EditorService) *SetClipStartHandler {
	return &SetClipStartHandler{editor: editor}
}

func (h *SetClipStartHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.SetClipStartCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	trackID, clipID, err := clipRef(c.TrackID, c.ClipID)
	if err != nil {
		return err
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		return tl.SetClipStart(trackID, clipID, c.StartTime)
	})
}

// TrimClipHandler replaces clip trim bounds
type TrimClipHandler struct {
	editor *services.EditorService
}

func NewTrimClipHandler(editor *services.EditorService) *TrimClipHandler {
	return &TrimClipHandler{editor: editor}
}

func (h *TrimClipHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.TrimClipCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	trackID, clipID, err := clipRef(c.TrackID, c.ClipID)
	if err != nil {
		return err
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		return tl.TrimClip(trackID, clipID, c.TrimStart, c.TrimEnd)
	})
}

// SplitClipHandler divides clips at a timeline position
type SplitClipHandler struct {
	editor *services.EditorService
}

func NewSplitClipHandler(editor *services.EditorService) *SplitClipHandler {
	return &SplitClipHandler{editor: editor}
}

func (h *SplitClipHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.SplitClipCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	trackID, clipID, err := clipRef(c.TrackID, c.ClipID)
	if err != nil {
		return err
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		newID, opErr := tl.SplitClip(trackID, clipID, c.SplitAt)
		if opErr != nil {
			return opErr
		}
		c.CreatedClipID = newID.String()
		return nil
	})
}

// DuplicateClipHandler copies clips
type DuplicateClipHandler struct {
	editor *services.EditorService
}

func NewDuplicateClipHandler(editor *services.EditorService) *DuplicateClipHandler {
	return &DuplicateClipHandler{editor: editor}
}

func (h *DuplicateClipHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.DuplicateClipCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	trackID, clipID, err := clipRef(c.TrackID, c.ClipID)
	if err != nil {
		return err
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		newID, opErr := tl.DuplicateClip(trackID, clipID)
		if opErr != nil {
			return opErr
		}
		c.CreatedClipID = newID.String()
		return nil
	})
}

// FreezeFrameHandler inserts hold clips
type FreezeFrameHandler struct {
	editor *services.EditorService
}

func NewFreezeFrameHandler(editor *services.EditorService) *FreezeFrameHandler {
	return &FreezeFrameHandler{editor: editor}
}

func (h *FreezeFrameHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.FreezeFrameCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	trackID, clipID, err := clipRef(c.TrackID, c.ClipID)
	if err != nil {
		return err
	}
	targetID, err := valueobjects.NewTrackIDFromString(c.TargetTrackID)
	if err != nil {
		return err
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		newID, opErr := tl.FreezeFrame(trackID, clipID, targetID, c.Playhead)
		if opErr != nil {
			return opErr
		}
		c.CreatedClipID = newID.String()
		return nil
	})
}

// ToggleClipMuteHandler flips clip mute flags
type ToggleClipMuteHandler struct {
	editor *services.EditorService
}

func NewToggleClipMuteHandler(editor *services.EditorService) *ToggleClipMuteHandler {
	return &ToggleClipMuteHandler{editor: editor}
}

func (h *ToggleClipMuteHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.ToggleClipMuteCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	trackID, clipID, err := clipRef(c.TrackID, c.ClipID)
	if err != nil {
		return err
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		tl.ToggleClipMute(trackID, clipID)
		return nil
	})
}

// RenameClipHandler renames clips
type RenameClipHandler struct {
	editor *services.EditorService
}

func NewRenameClipHandler(editor *services.EditorService) *RenameClipHandler {
	return &RenameClipHandler{editor: editor}
}

func (h *RenameClipHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.RenameClipCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	trackID, clipID, err := clipRef(c.TrackID, c.ClipID)
	if err != nil {
		return err
	}
	return h.editor.Mutate(ctx, c.SessionID, func(tl *aggregates.Timeline) error {
		return tl.RenameClip(trackID, clipID, c.Name)
	})
}
