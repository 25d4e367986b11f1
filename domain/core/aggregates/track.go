package aggregates

import (
	"fmt"
	"sort"

	"opencut-backend/domain/core/entities"
	"opencut-backend/domain/core/valueobjects"
	pkgerrors "opencut-backend/pkg/errors"
)

// Track is an ordered, type-tagged lane of non-overlapping clips.
// Clips are stored in insertion order; chronological order is derived from
// start times on demand and never assumed from slice position.
type Track struct {
	id    valueobjects.TrackID
	name  string
	ttype valueobjects.TrackType
	muted bool
	clips []*entities.Clip
}

// NewTrack creates an empty track. An empty name falls back to the
// type-derived default ("Video Track", "Audio Track", "Effects Track").
func NewTrack(ttype valueobjects.TrackType, name string) (*Track, error) {
	if !ttype.IsValid() {
		return nil, pkgerrors.NewValidation("track type must be one of video, audio, effects")
	}
	if name == "" {
		name = ttype.DefaultTrackName()
	}
	return &Track{
		id:    valueobjects.NewTrackID(),
		name:  name,
		ttype: ttype,
		clips: []*entities.Clip{},
	}, nil
}

// ReconstructTrack recreates a track from stored data. Clips are attached
// afterwards through AttachClip so the non-overlap invariant is re-checked
// even for round-tripped data.
func ReconstructTrack(id valueobjects.TrackID, ttype valueobjects.TrackType, name string, muted bool) (*Track, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidation("track ID is required for reconstruction")
	}
	if !ttype.IsValid() {
		return nil, pkgerrors.NewValidation("stored track type is not recognized")
	}
	if name == "" {
		name = ttype.DefaultTrackName()
	}
	return &Track{
		id:    id,
		name:  name,
		ttype: ttype,
		muted: muted,
		clips: []*entities.Clip{},
	}, nil
}

// ID returns the track's unique identifier
func (t *Track) ID() valueobjects.TrackID {
	return t.id
}

// Name returns the track's display name
func (t *Track) Name() string {
	return t.name
}

// Type returns the track's content type
func (t *Track) Type() valueobjects.TrackType {
	return t.ttype
}

// Muted returns the track-level mute flag
func (t *Track) Muted() bool {
	return t.muted
}

// ClipCount returns the number of clips on the track
func (t *Track) ClipCount() int {
	return len(t.clips)
}

// Clips returns the clips in insertion order
func (t *Track) Clips() []*entities.Clip {
	clips := make([]*entities.Clip, len(t.clips))
	copy(clips, t.clips)
	return clips
}

// ClipsInOrder returns the clips sorted by start time. Consumers that need
// chronological order (rendering, export, gap analysis) use this accessor
// instead of repeating ad hoc sorts.
func (t *Track) ClipsInOrder() []*entities.Clip {
	clips := t.Clips()
	sort.SliceStable(clips, func(i, j int) bool {
		return clips[i].StartTime() < clips[j].StartTime()
	})
	return clips
}

// FindClip retrieves a clip by ID
func (t *Track) FindClip(clipID valueobjects.ClipID) (*entities.Clip, bool) {
	for _, c := range t.clips {
		if c.ID().Equals(clipID) {
			return c, true
		}
	}
	return nil, false
}

// CanPlace reports whether the given span is free of other clips.
// The excluded clip is ignored so a clip being moved or resized never
// collides with its own current position.
func (t *Track) CanPlace(r valueobjects.TimeRange, exclude valueobjects.ClipID) bool {
	for _, c := range t.clips {
		if !exclude.IsZero() && c.ID().Equals(exclude) {
			continue
		}
		if c.Range().Overlaps(r) {
			return false
		}
	}
	return true
}

// AttachClip places a clip on the track, rejecting overlaps and enforcing
// the per-track clip limit
func (t *Track) AttachClip(clip *entities.Clip, maxClips int) error {
	if clip == nil {
		return pkgerrors.NewValidation("clip cannot be nil")
	}
	if _, exists := t.FindClip(clip.ID()); exists {
		return pkgerrors.NewConflict("clip already exists on track")
	}
	if maxClips > 0 && len(t.clips) >= maxClips {
		return fmt.Errorf("maximum clips reached: %d", maxClips)
	}
	if !t.CanPlace(clip.Range(), valueobjects.ClipID{}) {
		return pkgerrors.NewPlacement(fmt.Sprintf(
			"clip span [%.3f, %.3f) overlaps an existing clip on track %q",
			clip.StartTime(), clip.EndTime(), t.name))
	}
	t.clips = append(t.clips, clip)
	return nil
}

// DetachClip removes a clip from the track and returns it.
// A missing clip yields (nil, false); removal is idempotent.
func (t *Track) DetachClip(clipID valueobjects.ClipID) (*entities.Clip, bool) {
	for i, c := range t.clips {
		if c.ID().Equals(clipID) {
			t.clips = append(t.clips[:i], t.clips[i+1:]...)
			return c, true
		}
	}
	return nil, false
}

// End returns the exclusive end of the last clip on the track, or 0 for an
// empty track
func (t *Track) End() float64 {
	end := 0.0
	for _, c := range t.clips {
		if c.EndTime() > end {
			end = c.EndTime()
		}
	}
	return end
}

// ToggleMute flips the track-level mute flag and returns the new value
func (t *Track) ToggleMute() bool {
	t.muted = !t.muted
	return t.muted
}

// Rename changes the track's display name
func (t *Track) Rename(name string) error {
	if name == "" {
		return pkgerrors.NewValidation("track name cannot be empty")
	}
	t.name = name
	return nil
}

// Validate re-checks the non-overlap invariant and effective durations
// across the whole track
func (t *Track) Validate() error {
	ordered := t.ClipsInOrder()
	for i, c := range ordered {
		if c.EffectiveDuration() <= 0 {
			return pkgerrors.NewValidation(fmt.Sprintf("clip %s has no visible duration", c.ID()))
		}
		if i > 0 && ordered[i-1].Range().Overlaps(c.Range()) {
			return pkgerrors.NewValidation(fmt.Sprintf(
				"clips %s and %s overlap on track %q",
				ordered[i-1].ID(), c.ID(), t.name))
		}
	}
	return nil
}

// Clone returns a structurally independent copy of the track and every
// clip on it
func (t *Track) Clone() *Track {
	clips := make([]*entities.Clip, len(t.clips))
	for i, c := range t.clips {
		clips[i] = c.Clone()
	}
	return &Track{
		id:    t.id,
		name:  t.name,
		ttype: t.ttype,
		muted: t.muted,
		clips: clips,
	}
}
