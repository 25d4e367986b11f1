package commands

import (
	pkgerrors "opencut-backend/pkg/errors"
)

// AddClipCommand places a new clip on a track. The clip always starts
// untrimmed and unmuted.
type AddClipCommand struct {
	SessionID      string  `json:"session_id" validate:"required,uuid"`
	TrackID        string  `json:"track_id" validate:"required,uuid"`
	MediaID        string  `json:"media_id" validate:"required"`
	Name           string  `json:"name" validate:"max=200"`
	SourceDuration float64 `json:"source_duration" validate:"required,gt=0"`
	StartTime      float64 `json:"start_time" validate:"gte=0"`

	// CreatedClipID is populated by the handler.
	CreatedClipID string `json:"-"`
}

// Validate validates the command
func (cmd AddClipCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	if cmd.TrackID == "" {
		return pkgerrors.NewValidation("track ID is required")
	}
	if cmd.MediaID == "" {
		return pkgerrors.NewValidation("media ID is required")
	}
	if cmd.SourceDuration <= 0 {
		return pkgerrors.NewValidation("source duration must be positive")
	}
	return nil
}

// RemoveClipCommand removes a clip from a track
type RemoveClipCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	TrackID   string `json:"track_id" validate:"required,uuid"`
	ClipID    string `json:"clip_id" validate:"required,uuid"`
	// Ripple closes the gap: clips after the removed span shift left.
	Ripple bool `json:"ripple,omitempty"`
}

func (cmd RemoveClipCommand) Validate() error {
	return requireClipRef(cmd.SessionID, cmd.TrackID, cmd.ClipID)
}

// MoveClipCommand relocates a clip, possibly across tracks
type MoveClipCommand struct {
	SessionID   string  `json:"session_id" validate:"required,uuid"`
	FromTrackID string  `json:"from_track_id" validate:"required,uuid"`
	ToTrackID   string  `json:"to_track_id" validate:"required,uuid"`
	ClipID      string  `json:"clip_id" validate:"required,uuid"`
	StartTime   float64 `json:"start_time" validate:"gte=0"`
}

func (cmd MoveClipCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	if cmd.FromTrackID == "" || cmd.ToTrackID == "" {
		return pkgerrors.NewValidation("source and destination track IDs are required")
	}
	if cmd.ClipID == "" {
		return pkgerrors.NewValidation("clip ID is required")
	}
	if cmd.StartTime < 0 {
		return pkgerrors.NewValidation("start time cannot be negative")
	}
	return nil
}

// SetClipStartCommand repositions a clip on its own track
type SetClipStartCommand struct {
	SessionID string  `json:"session_id" validate:"required,uuid"`
	TrackID   string  `json:"track_id" validate:"required,uuid"`
	ClipID    string  `json:"clip_id" validate:"required,uuid"`
	StartTime float64 `json:"start_time" validate:"gte=0"`
}

func (cmd SetClipStartCommand) Validate() error {
	if err := requireClipRef(cmd.SessionID, cmd.TrackID, cmd.ClipID); err != nil {
		return err
	}
	if cmd.StartTime < 0 {
		return pkgerrors.NewValidation("start time cannot be negative")
	}
	return nil
}

// TrimClipCommand replaces a clip's trim bounds
type TrimClipCommand struct {
	SessionID string  `json:"session_id" validate:"required,uuid"`
	TrackID   string  `json:"track_id" validate:"required,uuid"`
	ClipID    string  `json:"clip_id" validate:"required,uuid"`
	TrimStart float64 `json:"trim_start" validate:"gte=0"`
	TrimEnd   float64 `json:"trim_end" validate:"gte=0"`
}

func (cmd TrimClipCommand) Validate() error {
	if err := requireClipRef(cmd.SessionID, cmd.TrackID, cmd.ClipID); err != nil {
		return err
	}
	if cmd.TrimStart < 0 || cmd.TrimEnd < 0 {
		return pkgerrors.NewValidation("trim values cannot be negative")
	}
	return nil
}

// SplitClipCommand divides a clip into two at a timeline position
type SplitClipCommand struct {
	SessionID string  `json:"session_id" validate:"required,uuid"`
	TrackID   string  `json:"track_id" validate:"required,uuid"`
	ClipID    string  `json:"clip_id" validate:"required,uuid"`
	SplitAt   float64 `json:"split_at" validate:"gte=0"`

	// CreatedClipID is populated by the handler.
	CreatedClipID string `json:"-"`
}

func (cmd SplitClipCommand) Validate() error {
	return requireClipRef(cmd.SessionID, cmd.TrackID, cmd.ClipID)
}

// DuplicateClipCommand copies a clip onto the same track
type DuplicateClipCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	TrackID   string `json:"track_id" validate:"required,uuid"`
	ClipID    string `json:"clip_id" validate:"required,uuid"`

	// CreatedClipID is populated by the handler.
	CreatedClipID string `json:"-"`
}

func (cmd DuplicateClipCommand) Validate() error {
	return requireClipRef(cmd.SessionID, cmd.TrackID, cmd.ClipID)
}

// FreezeFrameCommand inserts a one-second hold clip at the playhead
type FreezeFrameCommand struct {
	SessionID     string  `json:"session_id" validate:"required,uuid"`
	TrackID       string  `json:"track_id" validate:"required,uuid"`
	ClipID        string  `json:"clip_id" validate:"required,uuid"`
	TargetTrackID string  `json:"target_track_id" validate:"required,uuid"`
	Playhead      float64 `json:"playhead" validate:"gte=0"`

	// CreatedClipID is populated by the handler.
	CreatedClipID string `json:"-"`
}

func (cmd FreezeFrameCommand) Validate() error {
	if err := requireClipRef(cmd.SessionID, cmd.TrackID, cmd.ClipID); err != nil {
		return err
	}
	if cmd.TargetTrackID == "" {
		return pkgerrors.NewValidation("target track ID is required")
	}
	return nil
}

// ToggleClipMuteCommand flips a clip's mute flag
type ToggleClipMuteCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	TrackID   string `json:"track_id" validate:"required,uuid"`
	ClipID    string `json:"clip_id" validate:"required,uuid"`
}

func (cmd ToggleClipMuteCommand) Validate() error {
	return requireClipRef(cmd.SessionID, cmd.TrackID, cmd.ClipID)
}

// RenameClipCommand changes a clip's display name
type RenameClipCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	TrackID   string `json:"track_id" validate:"required,uuid"`
	ClipID    string `json:"clip_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,max=200"`
}

func (cmd RenameClipCommand) Validate() error {
	if err := requireClipRef(cmd.SessionID, cmd.TrackID, cmd.ClipID); err != nil {
		return err
	}
	if cmd.Name == "" {
		return pkgerrors.NewValidation("clip name is required")
	}
	return nil
}

func requireClipRef(sessionID, trackID, clipID string) error {
	if sessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	if trackID == "" {
		return pkgerrors.NewValidation("track ID is required")
	}
	if clipID == "" {
		return pkgerrors.NewValidation("clip ID is required")
	}
	return nil
}
