package queries

import (
	pkgerrors "opencut-backend/pkg/errors"
)

// GetTimelineQuery fetches the full read model of a session's timeline
type GetTimelineQuery struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

// Validate validates the query
func (q GetTimelineQuery) Validate() error {
	if q.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	return nil
}

// GetTrackQuery fetches the read model of one track
type GetTrackQuery struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	TrackID   string `json:"track_id" validate:"required,uuid"`
}

func (q GetTrackQuery) Validate() error {
	if q.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	if q.TrackID == "" {
		return pkgerrors.NewValidation("track ID is required")
	}
	return nil
}

// GetDurationQuery fetches a session's duration figures
type GetDurationQuery struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

func (q GetDurationQuery) Validate() error {
	if q.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	return nil
}

// ListSessionsQuery lists all open sessions
type ListSessionsQuery struct{}

func (q ListSessionsQuery) Validate() error { return nil }

// GetSelectionQuery fetches a session's current selection
type GetSelectionQuery struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

func (q GetSelectionQuery) Validate() error {
	if q.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	return nil
}

// GetHistoryStatusQuery reports undo/redo availability
type GetHistoryStatusQuery struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

func (q GetHistoryStatusQuery) Validate() error {
	if q.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	return nil
}

// ExportEDLQuery renders a session's timeline as a CMX3600 edit decision
// list
type ExportEDLQuery struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	Title     string `json:"title" validate:"max=70"`
}

func (q ExportEDLQuery) Validate() error {
	if q.SessionID == "" {
		return pkgerrors.NewValidation("session ID is required")
	}
	return nil
}

// ListSnapshotsQuery lists persisted project snapshots
type ListSnapshotsQuery struct{}

func (q ListSnapshotsQuery) Validate() error { return nil }
