package aggregates

import (
	"time"

	"opencut-backend/domain/config"
	"opencut-backend/domain/core/entities"
	"opencut-backend/domain/core/valueobjects"
	"opencut-backend/domain/events"
	pkgerrors "opencut-backend/pkg/errors"
)

// ClipSnapshot is the storable form of a clip
type ClipSnapshot struct {
	ID        string  `json:"id"`
	MediaID   string  `json:"media_id"`
	Name      string  `json:"name"`
	Duration  float64 `json:"duration"`
	StartTime float64 `json:"start_time"`
	TrimStart float64 `json:"trim_start"`
	TrimEnd   float64 `json:"trim_end"`
	Muted     bool    `json:"muted,omitempty"`
}

// TrackSnapshot is the storable form of a track
type TrackSnapshot struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Type  string         `json:"type"`
	Muted bool           `json:"muted,omitempty"`
	Clips []ClipSnapshot `json:"clips"`
}

// TimelineSnapshot is an immutable deep copy of timeline state at a point
// in time. History entries and persisted projects are both built from it.
// A snapshot shares no structure with the live timeline: mutating one
// never alters the other.
type TimelineSnapshot struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Tracks    []TrackSnapshot `json:"tracks"`
	Version   int             `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Snapshot captures the current timeline state as a structurally
// independent deep copy
func (tl *Timeline) Snapshot() TimelineSnapshot {
	tracks := make([]TrackSnapshot, len(tl.tracks))
	for i, t := range tl.tracks {
		clips := make([]ClipSnapshot, len(t.clips))
		for j, c := range t.clips {
			clips[j] = ClipSnapshot{
				ID:        c.ID().String(),
				MediaID:   c.MediaID().String(),
				Name:      c.Name(),
				Duration:  c.SourceDuration(),
				StartTime: c.StartTime(),
				TrimStart: c.Trim().Start(),
				TrimEnd:   c.Trim().End(),
				Muted:     c.Muted(),
			}
		}
		tracks[i] = TrackSnapshot{
			ID:    t.ID().String(),
			Name:  t.Name(),
			Type:  t.Type().String(),
			Muted: t.Muted(),
			Clips: clips,
		}
	}
	return TimelineSnapshot{
		ID:        tl.id.String(),
		Name:      tl.name,
		Tracks:    tracks,
		Version:   tl.version,
		CreatedAt: tl.createdAt,
		UpdatedAt: tl.updatedAt,
	}
}

// RestoreTracks replaces the timeline's track state wholesale from a
// snapshot. Identity and creation time are kept; this is the undo/redo
// restore path. The reason string lands in the emitted event.
func (tl *Timeline) RestoreTracks(snap TimelineSnapshot, reason string) error {
	tracks, err := tracksFromSnapshots(snap.Tracks, tl.config)
	if err != nil {
		return err
	}
	tl.tracks = tracks
	tl.touch()
	tl.addEvent(events.NewTimelineRestored(tl.id.String(), reason, tl.updatedAt))
	return nil
}

// ReconstructTimeline rebuilds a timeline aggregate from a stored
// snapshot. Missing optional fields default-fill rather than fail: stored
// projects from older format versions still load. The non-overlap
// invariant is re-checked clip by clip, so corrupted data is rejected
// instead of resurrected.
func ReconstructTimeline(snap TimelineSnapshot, cfg *config.DomainConfig) (*Timeline, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	id := valueobjects.NewTimelineID()
	if snap.ID != "" {
		parsed, err := valueobjects.NewTimelineIDFromString(snap.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "stored timeline ID is malformed")
		}
		id = parsed
	}

	name := snap.Name
	if name == "" {
		name = cfg.DefaultTimelineName
	}

	tracks, err := tracksFromSnapshots(snap.Tracks, cfg)
	if err != nil {
		return nil, err
	}

	createdAt := snap.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	updatedAt := snap.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	version := snap.Version
	if version < 1 {
		version = 1
	}

	return &Timeline{
		id:        id,
		name:      name,
		tracks:    tracks,
		createdAt: createdAt,
		updatedAt: updatedAt,
		version:   version,
		events:    nil,
		config:    cfg,
	}, nil
}

func tracksFromSnapshots(snaps []TrackSnapshot, cfg *config.DomainConfig) ([]*Track, error) {
	maxClips := 0
	if cfg != nil {
		maxClips = cfg.MaxClipsPerTrack
	}

	tracks := make([]*Track, 0, len(snaps))
	for _, ts := range snaps {
		ttype := valueobjects.TrackType(ts.Type)
		if ts.Type == "" {
			ttype = valueobjects.TrackTypeVideo
		}

		trackID := valueobjects.NewTrackID()
		if ts.ID != "" {
			parsed, err := valueobjects.NewTrackIDFromString(ts.ID)
			if err != nil {
				return nil, pkgerrors.Wrap(err, "stored track ID is malformed")
			}
			trackID = parsed
		}

		track, err := ReconstructTrack(trackID, ttype, ts.Name, ts.Muted)
		if err != nil {
			return nil, err
		}

		for _, cs := range ts.Clips {
			clip, err := clipFromSnapshot(cs)
			if err != nil {
				return nil, err
			}
			if err := track.AttachClip(clip, maxClips); err != nil {
				return nil, err
			}
		}

		tracks = append(tracks, track)
	}
	return tracks, nil
}

func clipFromSnapshot(cs ClipSnapshot) (*entities.Clip, error) {
	clipID := valueobjects.NewClipID()
	if cs.ID != "" {
		parsed, err := valueobjects.NewClipIDFromString(cs.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "stored clip ID is malformed")
		}
		clipID = parsed
	}

	mediaID, err := valueobjects.NewMediaIDFromString(cs.MediaID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "stored clip is missing its media reference")
	}

	trim, err := valueobjects.NewTrim(cs.TrimStart, cs.TrimEnd)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "stored clip trim is malformed")
	}

	return entities.ReconstructClip(clipID, mediaID, cs.Name, cs.Duration, cs.StartTime, trim, cs.Muted)
}
