package commands

import (
	pkgerrors "opencut-backend/pkg/errors"
)

// CreateSessionCommand opens a new editing session with an empty timeline.
// SessionID is populated by the handler.
type CreateSessionCommand struct {
	Name string `json:"name" validate:"max=200"`

	SessionID string `json:"-"`
}

// Validate validates the command
func (cmd CreateSessionCommand) Validate() error {
	if len(cmd.Name) > 200 {
		return pkgerrors.NewValidation("project name exceeds 200 characters")
	}
	return nil
}

// OpenSessionCommand resumes editing from a persisted snapshot.
// SessionID is populated by the handler.
type OpenSessionCommand struct {
	SnapshotID string `json:"snapshot_id" validate:"required"`

	SessionID string `json:"-"`
}

// Validate validates the command
func (cmd OpenSessionCommand) Validate() error {
	if cmd.SnapshotID == "" {
		return pkgerrors.NewValidation("snapshot ID is required")
	}
	return nil
}

// CloseSessionCommand ends an editing session and discards its history
type CloseSessionCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

func (cmd CloseSessionCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	return nil
}

// SaveSnapshotCommand persists the session's current state to the
// snapshot store
type SaveSnapshotCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

func (cmd SaveSnapshotCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	return nil
}

// RenameTimelineCommand changes the project display name
type RenameTimelineCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,max=200"`
}

func (cmd RenameTimelineCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	if cmd.Name == "" {
		return pkgerrors.NewValidation("project name is required")
	}
	if len(cmd.Name) > 200 {
		return pkgerrors.NewValidation("project name exceeds 200 characters")
	}
	return nil
}
