package valueobjects

import (
	"strings"

	pkgerrors "opencut-backend/pkg/errors"
)

// TrackType tags a track with the kind of content it carries. Clips on
// different tracks may overlap in time; the type decides how parallel
// tracks are composited downstream.
type TrackType string

const (
	TrackTypeVideo   TrackType = "video"
	TrackTypeAudio   TrackType = "audio"
	TrackTypeEffects TrackType = "effects"
)

// ParseTrackType converts a string to a TrackType
func ParseTrackType(s string) (TrackType, error) {
	switch TrackType(strings.ToLower(strings.TrimSpace(s))) {
	case TrackTypeVideo:
		return TrackTypeVideo, nil
	case TrackTypeAudio:
		return TrackTypeAudio, nil
	case TrackTypeEffects:
		return TrackTypeEffects, nil
	default:
		return "", pkgerrors.NewValidation("track type must be one of video, audio, effects")
	}
}

// String returns the string representation
func (t TrackType) String() string {
	return string(t)
}

// IsValid reports whether the type is one of the known track types
func (t TrackType) IsValid() bool {
	switch t {
	case TrackTypeVideo, TrackTypeAudio, TrackTypeEffects:
		return true
	}
	return false
}

// DefaultTrackName returns the display name given to a new track of this
// type, e.g. "Video Track"
func (t TrackType) DefaultTrackName() string {
	if !t.IsValid() {
		return "Track"
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:]) + " Track"
}
