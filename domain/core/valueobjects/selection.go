package valueobjects

import (
	pkgerrors "opencut-backend/pkg/errors"
)

// SelectionRef identifies one selected clip by its (track, clip) pair.
// Membership is keyed by the exact pair: the same clip id reached through
// a different track is a different selection entry.
type SelectionRef struct {
	trackID TrackID
	clipID  ClipID
}

// NewSelectionRef creates a selection reference with validation
func NewSelectionRef(trackID TrackID, clipID ClipID) (SelectionRef, error) {
	if trackID.IsZero() || clipID.IsZero() {
		return SelectionRef{}, pkgerrors.NewValidation("selection requires both a track ID and a clip ID")
	}
	return SelectionRef{trackID: trackID, clipID: clipID}, nil
}

// TrackID returns the track half of the pair
func (r SelectionRef) TrackID() TrackID {
	return r.trackID
}

// ClipID returns the clip half of the pair
func (r SelectionRef) ClipID() ClipID {
	return r.clipID
}

// Equals checks if two references point at the same (track, clip) pair
func (r SelectionRef) Equals(other SelectionRef) bool {
	return r.trackID.Equals(other.trackID) && r.clipID.Equals(other.clipID)
}

// Key returns a stable map key for set semantics
func (r SelectionRef) Key() string {
	return r.trackID.String() + "/" + r.clipID.String()
}
