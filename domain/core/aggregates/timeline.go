package aggregates

import (
	"fmt"
	"time"

	"opencut-backend/domain/config"
	"opencut-backend/domain/core/entities"
	"opencut-backend/domain/core/valueobjects"
	"opencut-backend/domain/events"
	pkgerrors "opencut-backend/pkg/errors"
)

// Timeline is the aggregate root for one edited project: an ordered stack
// of tracks plus the operations that rearrange clips on them. It is the
// sole authority for mutation: every operation either leaves the timeline
// satisfying its invariants (no same-track overlap, positive effective
// durations) or performs no mutation at all.
//
// Primitive removals and toggles on missing IDs are silent no-ops:
// interactive callers routinely race against state that just changed, and
// a second delete of an already-deleted clip is not an error. Placement
// and trim violations are rejected with typed errors before any state is
// touched.
type Timeline struct {
	id        valueobjects.TimelineID
	name      string
	tracks    []*Track
	createdAt time.Time
	updatedAt time.Time
	version   int
	events    []events.DomainEvent
	config    *config.DomainConfig
}

// ClipSpec carries the caller-supplied fields for placing a new clip.
// Trim and mute state are deliberately absent: new clips always start
// untrimmed and unmuted regardless of what the caller wants.
type ClipSpec struct {
	MediaID        valueobjects.MediaID
	Name           string
	SourceDuration float64
	StartTime      float64
}

// NewTimeline creates a new timeline aggregate with default configuration
func NewTimeline(name string) (*Timeline, error) {
	return NewTimelineWithConfig(name, config.DefaultDomainConfig())
}

// NewTimelineWithConfig creates a new timeline aggregate with specific configuration
func NewTimelineWithConfig(name string, cfg *config.DomainConfig) (*Timeline, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if name == "" {
		name = cfg.DefaultTimelineName
	}

	now := time.Now()
	tl := &Timeline{
		id:        valueobjects.NewTimelineID(),
		name:      name,
		tracks:    []*Track{},
		createdAt: now,
		updatedAt: now,
		version:   1,
		events:    []events.DomainEvent{},
		config:    cfg,
	}

	tl.addEvent(events.NewTimelineCreated(tl.id.String(), name, now))

	return tl, nil
}

// ID returns the timeline's unique identifier
func (tl *Timeline) ID() valueobjects.TimelineID {
	return tl.id
}

// Name returns the timeline's display name
func (tl *Timeline) Name() string {
	return tl.name
}

// Version returns the timeline version, bumped on every committed mutation
func (tl *Timeline) Version() int {
	return tl.version
}

// CreatedAt returns when the timeline was created
func (tl *Timeline) CreatedAt() time.Time {
	return tl.createdAt
}

// UpdatedAt returns when the timeline was last mutated
func (tl *Timeline) UpdatedAt() time.Time {
	return tl.updatedAt
}

// Rename changes the timeline's display name
func (tl *Timeline) Rename(name string) error {
	if name == "" {
		return pkgerrors.NewValidation("timeline name cannot be empty")
	}
	tl.name = name
	tl.touch()
	return nil
}

// TrackCount returns the number of tracks
func (tl *Timeline) TrackCount() int {
	return len(tl.tracks)
}

// Tracks returns the tracks in stacking order
func (tl *Timeline) Tracks() []*Track {
	tracks := make([]*Track, len(tl.tracks))
	copy(tracks, tl.tracks)
	return tracks
}

// FindTrack retrieves a track by ID
func (tl *Timeline) FindTrack(trackID valueobjects.TrackID) (*Track, bool) {
	for _, t := range tl.tracks {
		if t.ID().Equals(trackID) {
			return t, true
		}
	}
	return nil, false
}

// GetTrack retrieves a track by ID or returns a NotFound error
func (tl *Timeline) GetTrack(trackID valueobjects.TrackID) (*Track, error) {
	if t, ok := tl.FindTrack(trackID); ok {
		return t, nil
	}
	return nil, pkgerrors.NewNotFound("track " + trackID.String())
}

// FindClip locates a clip anywhere on the timeline
func (tl *Timeline) FindClip(trackID valueobjects.TrackID, clipID valueobjects.ClipID) (*entities.Clip, bool) {
	t, ok := tl.FindTrack(trackID)
	if !ok {
		return nil, false
	}
	return t.FindClip(clipID)
}

// AddTrack appends a new empty track and returns its ID
func (tl *Timeline) AddTrack(ttype valueobjects.TrackType) (valueobjects.TrackID, error) {
	return tl.InsertTrack(ttype, len(tl.tracks))
}

// InsertTrack creates a new empty track at the given stacking index.
// Indexes outside the current range are clamped.
func (tl *Timeline) InsertTrack(ttype valueobjects.TrackType, index int) (valueobjects.TrackID, error) {
	if tl.config != nil && len(tl.tracks) >= tl.config.MaxTracksPerTimeline {
		return valueobjects.TrackID{}, fmt.Errorf("maximum tracks reached: %d", tl.config.MaxTracksPerTimeline)
	}

	track, err := NewTrack(ttype, "")
	if err != nil {
		return valueobjects.TrackID{}, err
	}

	if index < 0 {
		index = 0
	}
	if index > len(tl.tracks) {
		index = len(tl.tracks)
	}
	tl.tracks = append(tl.tracks, nil)
	copy(tl.tracks[index+1:], tl.tracks[index:])
	tl.tracks[index] = track

	tl.touch()
	tl.addEvent(events.NewTrackAdded(tl.id.String(), track.ID().String(), ttype.String(), tl.updatedAt))

	return track.ID(), nil
}

// RemoveTrack removes a track and all its clips. Removing an unknown
// track ID is a silent no-op.
func (tl *Timeline) RemoveTrack(trackID valueobjects.TrackID) {
	for i, t := range tl.tracks {
		if t.ID().Equals(trackID) {
			clipCount := t.ClipCount()
			tl.tracks = append(tl.tracks[:i], tl.tracks[i+1:]...)
			tl.touch()
			tl.addEvent(events.NewTrackRemoved(tl.id.String(), trackID.String(), clipCount, tl.updatedAt))
			return
		}
	}
}

// RenameTrack changes a track's display name
func (tl *Timeline) RenameTrack(trackID valueobjects.TrackID, name string) error {
	track, err := tl.GetTrack(trackID)
	if err != nil {
		return err
	}
	if err := track.Rename(name); err != nil {
		return err
	}
	tl.touch()
	return nil
}

// AddClip places a new clip on a track. The clip always starts untrimmed
// and unmuted; a negative start time is treated as zero. Placements that
// would overlap an existing clip on the track are rejected before any
// mutation.
func (tl *Timeline) AddClip(trackID valueobjects.TrackID, spec ClipSpec) (valueobjects.ClipID, error) {
	track, err := tl.GetTrack(trackID)
	if err != nil {
		return valueobjects.ClipID{}, err
	}

	clip, err := entities.NewClip(spec.MediaID, spec.Name, spec.SourceDuration, spec.StartTime)
	if err != nil {
		return valueobjects.ClipID{}, err
	}

	maxClips := 0
	if tl.config != nil {
		maxClips = tl.config.MaxClipsPerTrack
	}
	if err := track.AttachClip(clip, maxClips); err != nil {
		return valueobjects.ClipID{}, err
	}

	tl.touch()
	tl.addEvent(events.NewClipAdded(
		tl.id.String(), trackID.String(), clip.ID().String(),
		spec.MediaID.String(), clip.StartTime(), tl.updatedAt))

	return clip.ID(), nil
}

// RemoveClip removes a clip from a track. Unknown track or clip IDs are
// silent no-ops.
func (tl *Timeline) RemoveClip(trackID valueobjects.TrackID, clipID valueobjects.ClipID) {
	track, ok := tl.FindTrack(trackID)
	if !ok {
		return
	}
	if _, removed := track.DetachClip(clipID); !removed {
		return
	}
	tl.touch()
	tl.addEvent(events.NewClipRemoved(tl.id.String(), trackID.String(), clipID.String(), tl.updatedAt))
}

// RippleDelete removes a clip and closes the gap it leaves: every clip on
// the track starting at or after the removed clip shifts left by its
// effective duration.
func (tl *Timeline) RippleDelete(trackID valueobjects.TrackID, clipID valueobjects.ClipID) error {
	track, err := tl.GetTrack(trackID)
	if err != nil {
		return err
	}
	clip, ok := track.FindClip(clipID)
	if !ok {
		return pkgerrors.NewNotFound("clip " + clipID.String())
	}

	removedStart := clip.StartTime()
	shift := clip.EffectiveDuration()
	track.DetachClip(clipID)

	// Clips after the removed span cannot collide while shifting: the span
	// they move into was owned by the removed clip.
	for _, c := range track.ClipsInOrder() {
		if c.StartTime() >= removedStart {
			if err := c.SetStartTime(c.StartTime() - shift); err != nil {
				return err
			}
		}
	}

	tl.touch()
	tl.addEvent(events.NewClipRemoved(tl.id.String(), trackID.String(), clipID.String(), tl.updatedAt))
	return nil
}

// MoveClip relocates a clip to another track (or repositions it on its
// own track) in one atomic operation. The clip keeps its identity. The
// destination placement is overlap-checked with the moving clip excluded,
// so repositioning within the same track never collides with itself.
// Nothing is mutated on failure.
func (tl *Timeline) MoveClip(
	fromTrackID, toTrackID valueobjects.TrackID,
	clipID valueobjects.ClipID,
	newStart float64,
) error {
	from, err := tl.GetTrack(fromTrackID)
	if err != nil {
		return err
	}
	to, err := tl.GetTrack(toTrackID)
	if err != nil {
		return err
	}
	clip, ok := from.FindClip(clipID)
	if !ok {
		return pkgerrors.NewNotFound("clip " + clipID.String())
	}
	if newStart < 0 {
		return pkgerrors.NewPlacement("clip cannot start before zero")
	}

	candidate, err := valueobjects.NewTimeRangeAt(newStart, clip.EffectiveDuration())
	if err != nil {
		return err
	}
	exclude := valueobjects.ClipID{}
	if from.ID().Equals(to.ID()) {
		exclude = clipID
	}
	if !to.CanPlace(candidate, exclude) {
		return pkgerrors.NewPlacement(fmt.Sprintf(
			"clip span [%.3f, %.3f) overlaps an existing clip on track %q",
			candidate.Start(), candidate.End(), to.Name()))
	}

	oldStart := clip.StartTime()
	from.DetachClip(clipID)
	if err := clip.SetStartTime(newStart); err != nil {
		// Unreachable after the checks above, but never drop the clip.
		from.AttachClip(clip, 0)
		return err
	}
	maxClips := 0
	if tl.config != nil {
		maxClips = tl.config.MaxClipsPerTrack
	}
	if err := to.AttachClip(clip, maxClips); err != nil {
		clip.SetStartTime(oldStart)
		from.AttachClip(clip, 0)
		return err
	}

	tl.touch()
	tl.addEvent(events.NewClipMoved(
		tl.id.String(), fromTrackID.String(), toTrackID.String(),
		clipID.String(), oldStart, newStart, tl.updatedAt))
	return nil
}

// SetClipStart repositions a clip on its own track
func (tl *Timeline) SetClipStart(trackID valueobjects.TrackID, clipID valueobjects.ClipID, start float64) error {
	return tl.MoveClip(trackID, trackID, clipID, start)
}

// TrimClip replaces a clip's trim bounds. The trim must leave a positive
// effective duration, and the resulting span must not overlap neighbors
// (loosening an end trim extends the clip to the right).
func (tl *Timeline) TrimClip(trackID valueobjects.TrackID, clipID valueobjects.ClipID, trimStart, trimEnd float64) error {
	track, err := tl.GetTrack(trackID)
	if err != nil {
		return err
	}
	clip, ok := track.FindClip(clipID)
	if !ok {
		return pkgerrors.NewNotFound("clip " + clipID.String())
	}

	trim, err := valueobjects.NewTrim(trimStart, trimEnd)
	if err != nil {
		return err
	}
	minEffective := 0.0
	if tl.config != nil {
		minEffective = tl.config.MinEffectiveDuration
	}
	if !trim.ValidFor(clip.SourceDuration(), minEffective) {
		return pkgerrors.NewPlacement(fmt.Sprintf(
			"trim %.3f/%.3f leaves no visible duration for a %.3fs source",
			trimStart, trimEnd, clip.SourceDuration()))
	}

	candidate, err := valueobjects.NewTimeRangeAt(clip.StartTime(), trim.EffectiveDuration(clip.SourceDuration()))
	if err != nil {
		return err
	}
	if !track.CanPlace(candidate, clipID) {
		return pkgerrors.NewPlacement(fmt.Sprintf(
			"trimmed span [%.3f, %.3f) overlaps an existing clip on track %q",
			candidate.Start(), candidate.End(), track.Name()))
	}

	if err := clip.ApplyTrim(trim, minEffective); err != nil {
		return err
	}

	tl.touch()
	tl.addEvent(events.NewClipTrimmed(
		tl.id.String(), trackID.String(), clipID.String(), trimStart, trimEnd, tl.updatedAt))
	return nil
}

// SplitClip divides a clip into two contiguous clips at time at. The
// original is shrunk to end at the split point; the new clip carries the
// remainder with " (split)" appended to its name. The two together
// reconstruct the original span with no gap and no overlap. A split point
// outside the clip's open interior is rejected with zero mutation.
func (tl *Timeline) SplitClip(trackID valueobjects.TrackID, clipID valueobjects.ClipID, at float64) (valueobjects.ClipID, error) {
	track, err := tl.GetTrack(trackID)
	if err != nil {
		return valueobjects.ClipID{}, err
	}
	clip, ok := track.FindClip(clipID)
	if !ok {
		return valueobjects.ClipID{}, pkgerrors.NewNotFound("clip " + clipID.String())
	}
	if !clip.Range().ContainsStrict(at) {
		return valueobjects.ClipID{}, pkgerrors.NewValidation(fmt.Sprintf(
			"split point %.3f is outside clip span [%.3f, %.3f)", at, clip.StartTime(), clip.EndTime()))
	}

	oldTrim := clip.Trim()
	oldEnd := clip.EndTime()
	minEffective := 0.0
	if tl.config != nil {
		minEffective = tl.config.MinEffectiveDuration
	}

	// Shrink the original so it ends at the split point.
	firstTrim, err := oldTrim.WithEnd(oldTrim.End() + (oldEnd - at))
	if err != nil {
		return valueobjects.ClipID{}, err
	}
	if err := clip.ApplyTrim(firstTrim, minEffective); err != nil {
		return valueobjects.ClipID{}, err
	}

	// The remainder picks up at the split point in both timeline position
	// and source offset.
	second, err := entities.NewClip(clip.MediaID(), clip.Name()+" (split)", clip.SourceDuration(), at)
	if err != nil {
		clip.ApplyTrim(oldTrim, minEffective)
		return valueobjects.ClipID{}, err
	}
	secondTrim, err := valueobjects.NewTrim(oldTrim.Start()+(at-clip.StartTime()), oldTrim.End())
	if err != nil {
		clip.ApplyTrim(oldTrim, minEffective)
		return valueobjects.ClipID{}, err
	}
	if err := second.ApplyTrim(secondTrim, minEffective); err != nil {
		clip.ApplyTrim(oldTrim, minEffective)
		return valueobjects.ClipID{}, err
	}

	maxClips := 0
	if tl.config != nil {
		maxClips = tl.config.MaxClipsPerTrack
	}
	if err := track.AttachClip(second, maxClips); err != nil {
		clip.ApplyTrim(oldTrim, minEffective)
		return valueobjects.ClipID{}, err
	}

	tl.touch()
	tl.addEvent(events.NewClipSplit(
		tl.id.String(), trackID.String(), clipID.String(), second.ID().String(), at, tl.updatedAt))
	return second.ID(), nil
}

// DuplicateClip copies a clip onto the same track. The copy keeps the
// original's trim and media reference, gets " (copy)" appended to its
// name, and lands one configured gap after the original's end so the two
// never abut. A landing spot already occupied is rejected.
func (tl *Timeline) DuplicateClip(trackID valueobjects.TrackID, clipID valueobjects.ClipID) (valueobjects.ClipID, error) {
	track, err := tl.GetTrack(trackID)
	if err != nil {
		return valueobjects.ClipID{}, err
	}
	clip, ok := track.FindClip(clipID)
	if !ok {
		return valueobjects.ClipID{}, pkgerrors.NewNotFound("clip " + clipID.String())
	}

	gap := 0.1
	minEffective := 0.0
	maxClips := 0
	if tl.config != nil {
		gap = tl.config.DuplicateGap
		minEffective = tl.config.MinEffectiveDuration
		maxClips = tl.config.MaxClipsPerTrack
	}

	newStart := clip.EndTime() + gap
	dup, err := entities.NewClip(clip.MediaID(), clip.Name()+" (copy)", clip.SourceDuration(), newStart)
	if err != nil {
		return valueobjects.ClipID{}, err
	}
	if err := dup.ApplyTrim(clip.Trim(), minEffective); err != nil {
		return valueobjects.ClipID{}, err
	}
	if err := track.AttachClip(dup, maxClips); err != nil {
		return valueobjects.ClipID{}, err
	}

	tl.touch()
	tl.addEvent(events.NewClipDuplicated(
		tl.id.String(), trackID.String(), clipID.String(), dup.ID().String(), newStart, tl.updatedAt))
	return dup.ID(), nil
}

// FreezeFrame inserts a short hold clip at the playhead: a clip showing
// the single source frame under the playhead for the configured duration
// (1 second by default). The playhead must sit inside the source clip,
// and the hold must land on free space on the target track.
func (tl *Timeline) FreezeFrame(
	sourceTrackID valueobjects.TrackID,
	clipID valueobjects.ClipID,
	targetTrackID valueobjects.TrackID,
	playhead float64,
) (valueobjects.ClipID, error) {
	sourceTrack, err := tl.GetTrack(sourceTrackID)
	if err != nil {
		return valueobjects.ClipID{}, err
	}
	target, err := tl.GetTrack(targetTrackID)
	if err != nil {
		return valueobjects.ClipID{}, err
	}
	clip, ok := sourceTrack.FindClip(clipID)
	if !ok {
		return valueobjects.ClipID{}, pkgerrors.NewNotFound("clip " + clipID.String())
	}
	if !clip.Range().Contains(playhead) {
		return valueobjects.ClipID{}, pkgerrors.NewValidation(fmt.Sprintf(
			"playhead %.3f is outside clip span [%.3f, %.3f)", playhead, clip.StartTime(), clip.EndTime()))
	}

	hold := 1.0
	minEffective := 0.0
	maxClips := 0
	if tl.config != nil {
		hold = tl.config.FreezeFrameDuration
		minEffective = tl.config.MinEffectiveDuration
		maxClips = tl.config.MaxClipsPerTrack
	}

	// Source offset of the frame under the playhead, clamped so the hold
	// always fits inside the source media.
	offset := clip.Trim().Start() + (playhead - clip.StartTime())
	if offset+hold > clip.SourceDuration() {
		offset = clip.SourceDuration() - hold
	}
	if offset < 0 {
		offset = 0
	}

	frozen, err := entities.NewClip(clip.MediaID(), clip.Name()+" (freeze)", clip.SourceDuration(), playhead)
	if err != nil {
		return valueobjects.ClipID{}, err
	}
	trim, err := valueobjects.NewTrim(offset, clip.SourceDuration()-offset-hold)
	if err != nil {
		return valueobjects.ClipID{}, err
	}
	if err := frozen.ApplyTrim(trim, minEffective); err != nil {
		return valueobjects.ClipID{}, err
	}
	if err := target.AttachClip(frozen, maxClips); err != nil {
		return valueobjects.ClipID{}, err
	}

	tl.touch()
	tl.addEvent(events.NewClipAdded(
		tl.id.String(), targetTrackID.String(), frozen.ID().String(),
		clip.MediaID().String(), playhead, tl.updatedAt))
	return frozen.ID(), nil
}

// ToggleTrackMute flips a track's mute flag. Unknown IDs are silent no-ops.
func (tl *Timeline) ToggleTrackMute(trackID valueobjects.TrackID) {
	track, ok := tl.FindTrack(trackID)
	if !ok {
		return
	}
	muted := track.ToggleMute()
	tl.touch()
	tl.addEvent(events.NewTrackMuted(tl.id.String(), trackID.String(), muted, tl.updatedAt))
}

// ToggleClipMute flips a clip's mute flag. Unknown IDs are silent no-ops.
func (tl *Timeline) ToggleClipMute(trackID valueobjects.TrackID, clipID valueobjects.ClipID) {
	clip, ok := tl.FindClip(trackID, clipID)
	if !ok {
		return
	}
	muted := clip.ToggleMute()
	tl.touch()
	tl.addEvent(events.NewClipMuted(tl.id.String(), trackID.String(), clipID.String(), muted, tl.updatedAt))
}

// RenameClip changes a clip's display name
func (tl *Timeline) RenameClip(trackID valueobjects.TrackID, clipID valueobjects.ClipID, name string) error {
	track, err := tl.GetTrack(trackID)
	if err != nil {
		return err
	}
	clip, ok := track.FindClip(clipID)
	if !ok {
		return pkgerrors.NewNotFound("clip " + clipID.String())
	}
	if err := clip.Rename(name); err != nil {
		return err
	}
	tl.touch()
	tl.addEvent(events.NewClipRenamed(tl.id.String(), trackID.String(), clipID.String(), name, tl.updatedAt))
	return nil
}

// TotalDuration returns the raw timeline length: the furthest clip end
// across all tracks, or 0 when nothing is placed. No floor is applied
// here; PlaybackDuration owns that.
func (tl *Timeline) TotalDuration() float64 {
	max := 0.0
	for _, t := range tl.tracks {
		if end := t.End(); end > max {
			max = end
		}
	}
	return max
}

// PlaybackDuration returns the duration the player should use: the raw
// total, floored at the configured minimum so an empty or nearly empty
// timeline still gives the playhead room to move.
func (tl *Timeline) PlaybackDuration() float64 {
	total := tl.TotalDuration()
	if tl.config != nil && total < tl.config.MinPlaybackDuration {
		return tl.config.MinPlaybackDuration
	}
	return total
}

// Validate re-checks every invariant across the whole timeline
func (tl *Timeline) Validate() error {
	if tl.config != nil && len(tl.tracks) > tl.config.MaxTracksPerTimeline {
		return pkgerrors.NewValidation("track count exceeds limit")
	}
	seen := make(map[string]bool, len(tl.tracks))
	for _, t := range tl.tracks {
		if seen[t.ID().String()] {
			return pkgerrors.NewValidation("duplicate track ID " + t.ID().String())
		}
		seen[t.ID().String()] = true
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetUncommittedEvents returns all uncommitted domain events
func (tl *Timeline) GetUncommittedEvents() []events.DomainEvent {
	out := make([]events.DomainEvent, len(tl.events))
	copy(out, tl.events)
	return out
}

// MarkEventsAsCommitted clears all uncommitted events
func (tl *Timeline) MarkEventsAsCommitted() {
	tl.events = []events.DomainEvent{}
}

// Private helper methods

func (tl *Timeline) addEvent(event events.DomainEvent) {
	tl.events = append(tl.events, event)
}

func (tl *Timeline) touch() {
	tl.updatedAt = time.Now()
	tl.version++
}
