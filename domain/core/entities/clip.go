package entities

import (
	"fmt"

	"opencut-backend/domain/core/valueobjects"
	pkgerrors "opencut-backend/pkg/errors"
)

// Clip is a placed, trimmed reference to a media asset on a track.
// The source duration is fixed at creation and never changes; resizing a
// clip only ever adjusts its trim. The clip does not own the media bytes,
// it only carries the reference.
type Clip struct {
	id             valueobjects.ClipID
	mediaID        valueobjects.MediaID
	name           string
	sourceDuration float64
	startTime      float64
	trim           valueobjects.Trim
	muted          bool
}

// NewClip creates a clip placed at startTime with no trim applied.
// Placement-time trims are deliberately not accepted; trimming is a
// separate operation on an already-placed clip.
func NewClip(mediaID valueobjects.MediaID, name string, sourceDuration, startTime float64) (*Clip, error) {
	if mediaID.IsZero() {
		return nil, pkgerrors.NewValidation("clip requires a media reference")
	}
	if sourceDuration <= 0 {
		return nil, pkgerrors.NewValidation("clip source duration must be positive")
	}
	if startTime < 0 {
		startTime = 0
	}
	if name == "" {
		name = "Clip"
	}

	return &Clip{
		id:             valueobjects.NewClipID(),
		mediaID:        mediaID,
		name:           name,
		sourceDuration: sourceDuration,
		startTime:      startTime,
		trim:           valueobjects.ZeroTrim(),
		muted:          false,
	}, nil
}

// ReconstructClip recreates a clip from stored data. Unlike NewClip it
// accepts pre-existing trim and mute state, but still refuses shapes that
// could never have been produced by the engine.
func ReconstructClip(
	id valueobjects.ClipID,
	mediaID valueobjects.MediaID,
	name string,
	sourceDuration float64,
	startTime float64,
	trim valueobjects.Trim,
	muted bool,
) (*Clip, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidation("clip ID is required for reconstruction")
	}
	if mediaID.IsZero() {
		return nil, pkgerrors.NewValidation("media ID is required for reconstruction")
	}
	if sourceDuration <= 0 {
		return nil, pkgerrors.NewValidation("clip source duration must be positive")
	}
	if trim.EffectiveDuration(sourceDuration) <= 0 {
		return nil, pkgerrors.NewValidation("stored trim leaves no visible duration")
	}
	if startTime < 0 {
		startTime = 0
	}
	if name == "" {
		name = "Clip"
	}

	return &Clip{
		id:             id,
		mediaID:        mediaID,
		name:           name,
		sourceDuration: sourceDuration,
		startTime:      startTime,
		trim:           trim,
		muted:          muted,
	}, nil
}

// ID returns the clip's unique identifier
func (c *Clip) ID() valueobjects.ClipID {
	return c.id
}

// MediaID returns the referenced media asset
func (c *Clip) MediaID() valueobjects.MediaID {
	return c.mediaID
}

// Name returns the display label
func (c *Clip) Name() string {
	return c.name
}

// SourceDuration returns the duration of the underlying media in seconds
func (c *Clip) SourceDuration() float64 {
	return c.sourceDuration
}

// StartTime returns the clip's position on its track in seconds
func (c *Clip) StartTime() float64 {
	return c.startTime
}

// Trim returns the current trim bounds
func (c *Clip) Trim() valueobjects.Trim {
	return c.trim
}

// Muted returns the clip-level mute flag, independent of track mute
func (c *Clip) Muted() bool {
	return c.muted
}

// EffectiveDuration returns the visible duration after trimming
func (c *Clip) EffectiveDuration() float64 {
	return c.trim.EffectiveDuration(c.sourceDuration)
}

// EndTime returns the exclusive end of the clip on the track timeline
func (c *Clip) EndTime() float64 {
	return c.startTime + c.EffectiveDuration()
}

// Range returns the half-open [start, end) span the clip occupies
func (c *Clip) Range() valueobjects.TimeRange {
	r, _ := valueobjects.NewTimeRange(c.startTime, c.EndTime())
	return r
}

// SetStartTime repositions the clip on its track
func (c *Clip) SetStartTime(startTime float64) error {
	if startTime < 0 {
		return pkgerrors.NewPlacement("clip cannot start before zero")
	}
	c.startTime = startTime
	return nil
}

// ApplyTrim replaces the trim bounds. The trim must leave an effective
// duration strictly above minEffective.
func (c *Clip) ApplyTrim(trim valueobjects.Trim, minEffective float64) error {
	if !trim.ValidFor(c.sourceDuration, minEffective) {
		return pkgerrors.NewPlacement(fmt.Sprintf(
			"trim %.3f/%.3f leaves no visible duration for a %.3fs source",
			trim.Start(), trim.End(), c.sourceDuration))
	}
	c.trim = trim
	return nil
}

// ToggleMute flips the clip-level mute flag and returns the new value
func (c *Clip) ToggleMute() bool {
	c.muted = !c.muted
	return c.muted
}

// Rename changes the display label
func (c *Clip) Rename(name string) error {
	if name == "" {
		return pkgerrors.NewValidation("clip name cannot be empty")
	}
	c.name = name
	return nil
}

// Clone returns a structurally independent copy with the same identity.
// History snapshots rely on clones never sharing state with the live clip.
func (c *Clip) Clone() *Clip {
	copy := *c
	return &copy
}
