package commands

import (
	pkgerrors "opencut-backend/pkg/errors"
)

// UndoCommand restores the state before the most recent mutation
type UndoCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd UndoCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	return nil
}

// RedoCommand reverses the most recent undo
type RedoCommand struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

func (cmd RedoCommand) Validate() error {
	if cmd.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	return nil
}
