package commands

import (
	"opencut-backend/domain/core/valueobjects"
	pkgerrors "opencut-backend/pkg/errors"
)

// AddTrackCommand appends (or inserts) a new empty track
type AddTrackCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	Type      string `json:"type" validate:"required,oneof=video audio effects"`
	// Index is the stacking position; nil appends at the bottom.
	Index *int `json:"index,omitempty"`

	// CreatedTrackID is populated by the handler.
	CreatedTrackID string `json:"-"`
}

// Validate validates the command
func (cmd AddTrackCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	if _, err := valueobjects.ParseTrackType(cmd.Type); err != nil {
		return err
	}
	return nil
}

// RemoveTrackCommand removes a track and all its clips
type RemoveTrackCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	TrackID   string `json:"track_id" validate:"required,uuid"`
}

func (cmd RemoveTrackCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	if cmd.TrackID == "" {
		return pkgerrors.NewValidation("track ID is required")
	}
	return nil
}

// RenameTrackCommand changes a track's display name
type RenameTrackCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	TrackID   string `json:"track_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,max=200"`
}

func (cmd RenameTrackCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	if cmd.TrackID == "" {
		return pkgerrors.NewValidation("track ID is required")
	}
	if cmd.Name == "" {
		return pkgerrors.NewValidation("track name is required")
	}
	return nil
}

// ToggleTrackMuteCommand flips a track's mute flag
type ToggleTrackMuteCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	TrackID   string `json:"track_id" validate:"required,uuid"`
}

func (cmd ToggleTrackMuteCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	if cmd.TrackID == "" {
		return pkgerrors.NewValidation("track ID is required")
	}
	return nil
}
