package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// TimelineID is a value object representing a unique timeline identifier
// Value objects are immutable and have no identity beyond their value
type TimelineID struct {
	value string
}

// NewTimelineID creates a new random TimelineID
func NewTimelineID() TimelineID {
	return TimelineID{value: uuid.New().String()}
}

// NewTimelineIDFromString creates a TimelineID from an existing string
func NewTimelineIDFromString(id string) (TimelineID, error) {
	if id == "" {
		return TimelineID{}, errors.New("timeline ID cannot be empty")
	}
	if !isValidUUID(id) {
		return TimelineID{}, errors.New("timeline ID must be a valid UUID")
	}
	return TimelineID{value: id}, nil
}

// String returns the string representation of the TimelineID
func (id TimelineID) String() string {
	return id.value
}

// Equals checks if two TimelineIDs are equal
func (id TimelineID) Equals(other TimelineID) bool {
	return id.value == other.value
}

// IsZero checks if the TimelineID is the zero value
func (id TimelineID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id TimelineID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *TimelineID) UnmarshalJSON(data []byte) error {
	v, err := unquoteID(data, "TimelineID")
	if err != nil {
		return err
	}
	id.value = v
	return nil
}

// TrackID is a value object representing a unique track identifier
type TrackID struct {
	value string
}

// NewTrackID creates a new random TrackID
func NewTrackID() TrackID {
	return TrackID{value: uuid.New().String()}
}

// NewTrackIDFromString creates a TrackID from an existing string
func NewTrackIDFromString(id string) (TrackID, error) {
	if id == "" {
		return TrackID{}, errors.New("track ID cannot be empty")
	}
	if !isValidUUID(id) {
		return TrackID{}, errors.New("track ID must be a valid UUID")
	}
	return TrackID{value: id}, nil
}

// String returns the string representation of the TrackID
func (id TrackID) String() string {
	return id.value
}

// Equals checks if two TrackIDs are equal
func (id TrackID) Equals(other TrackID) bool {
	return id.value == other.value
}

// IsZero checks if the TrackID is the zero value
func (id TrackID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id TrackID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *TrackID) UnmarshalJSON(data []byte) error {
	v, err := unquoteID(data, "TrackID")
	if err != nil {
		return err
	}
	id.value = v
	return nil
}

// ClipID is a value object representing a unique clip identifier
type ClipID struct {
	value string
}

// NewClipID creates a new random ClipID
func NewClipID() ClipID {
	return ClipID{value: uuid.New().String()}
}

// NewClipIDFromString creates a ClipID from an existing string
func NewClipIDFromString(id string) (ClipID, error) {
	if id == "" {
		return ClipID{}, errors.New("clip ID cannot be empty")
	}
	if !isValidUUID(id) {
		return ClipID{}, errors.New("clip ID must be a valid UUID")
	}
	return ClipID{value: id}, nil
}

// String returns the string representation of the ClipID
func (id ClipID) String() string {
	return id.value
}

// Equals checks if two ClipIDs are equal
func (id ClipID) Equals(other ClipID) bool {
	return id.value == other.value
}

// IsZero checks if the ClipID is the zero value
func (id ClipID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id ClipID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ClipID) UnmarshalJSON(data []byte) error {
	v, err := unquoteID(data, "ClipID")
	if err != nil {
		return err
	}
	id.value = v
	return nil
}

// MediaID references an external media asset. The timeline never owns the
// media bytes, only the reference, so any non-empty string is accepted.
type MediaID struct {
	value string
}

// NewMediaIDFromString creates a MediaID from an existing string
func NewMediaIDFromString(id string) (MediaID, error) {
	if id == "" {
		return MediaID{}, errors.New("media ID cannot be empty")
	}
	return MediaID{value: id}, nil
}

// String returns the string representation of the MediaID
func (id MediaID) String() string {
	return id.value
}

// Equals checks if two MediaIDs are equal
func (id MediaID) Equals(other MediaID) bool {
	return id.value == other.value
}

// IsZero checks if the MediaID is the zero value
func (id MediaID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id MediaID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *MediaID) UnmarshalJSON(data []byte) error {
	v, err := unquoteID(data, "MediaID")
	if err != nil {
		return err
	}
	id.value = v
	return nil
}

func unquoteID(data []byte, kind string) (string, error) {
	if string(data) == "null" {
		return "", nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return "", errors.New(kind + " must be a string")
	}
	return string(data[1 : len(data)-1]), nil
}

// isValidUUID validates if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
