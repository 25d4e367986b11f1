package commands

import (
	pkgerrors "opencut-backend/pkg/errors"
)

// ClipRef addresses one clip for selection purposes
type ClipRef struct {
	TrackID string `json:"track_id" validate:"required,uuid"`
	ClipID  string `json:"clip_id" validate:"required,uuid"`
}

// SelectClipCommand selects a clip. Additive toggles the clip in and out
// of the current selection; otherwise the selection is replaced.
type SelectClipCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	TrackID   string `json:"track_id" validate:"required,uuid"`
	ClipID    string `json:"clip_id" validate:"required,uuid"`
	Additive  bool   `json:"additive,omitempty"`
}

// Validate validates the command
func (cmd SelectClipCommand) Validate() error {
	return requireClipRef(cmd.SessionID, cmd.TrackID, cmd.ClipID)
}

// SetSelectionCommand replaces the selection wholesale, the marquee path
type SetSelectionCommand struct {
	SessionID string    `json:"session_id" validate:"required,uuid"`
	Clips     []ClipRef `json:"clips" validate:"dive"`
}

func (cmd SetSelectionCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	for _, ref := range cmd.Clips {
		if ref.TrackID == "" || ref.ClipID == "" {
			return pkgerrors.NewValidation("selection entries need both track and clip IDs")
		}
	}
	return nil
}

// ClearSelectionCommand empties the selection
type ClearSelectionCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

func (cmd ClearSelectionCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	return nil
}

// DeleteSelectedCommand removes every currently selected clip
type DeleteSelectedCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

func (cmd DeleteSelectedCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	return nil
}

// SplitSelectedCommand splits every selected clip whose span contains the
// playhead. Selected clips the playhead misses are skipped.
type SplitSelectedCommand struct {
	SessionID string  `json:"session_id" validate:"required,uuid"`
	Playhead  float64 `json:"playhead" validate:"gte=0"`
}

func (cmd SplitSelectedCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	return nil
}

// DuplicateSelectedCommand duplicates every currently selected clip
type DuplicateSelectedCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

func (cmd DuplicateSelectedCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	return nil
}
