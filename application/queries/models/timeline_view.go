package models

import (
	"time"

	"opencut-backend/domain/core/aggregates"
)

// ClipView is the read model of a placed clip. Effective duration and end
// time are computed so clients never re-derive them.
type ClipView struct {
	ID                string  `json:"id"`
	MediaID           string  `json:"media_id"`
	Name              string  `json:"name"`
	SourceDuration    float64 `json:"source_duration"`
	StartTime         float64 `json:"start_time"`
	TrimStart         float64 `json:"trim_start"`
	TrimEnd           float64 `json:"trim_end"`
	EffectiveDuration float64 `json:"effective_duration"`
	EndTime           float64 `json:"end_time"`
	Muted             bool    `json:"muted"`
}

// TrackView is the read model of a track with its clips in chronological
// order
type TrackView struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Type  string     `json:"type"`
	Muted bool       `json:"muted"`
	Clips []ClipView `json:"clips"`
}

// TimelineView is the full read model of a session's timeline
type TimelineView struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Tracks           []TrackView `json:"tracks"`
	TotalDuration    float64     `json:"total_duration"`
	PlaybackDuration float64     `json:"playback_duration"`
	Version          int         `json:"version"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// SessionSummary is the listing view of an open session
type SessionSummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TrackCount    int       `json:"track_count"`
	TotalDuration float64   `json:"total_duration"`
	Version       int       `json:"version"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DurationView carries both duration figures of the timeline
type DurationView struct {
	TotalDuration    float64 `json:"total_duration"`
	PlaybackDuration float64 `json:"playback_duration"`
}

// SelectionEntry is one selected clip reference
type SelectionEntry struct {
	TrackID string `json:"track_id"`
	ClipID  string `json:"clip_id"`
}

// HistoryStatus reports undo/redo availability for a session
type HistoryStatus struct {
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

// NewTrackView builds the read model of one track
func NewTrackView(track *aggregates.Track) TrackView {
	clips := make([]ClipView, 0, track.ClipCount())
	for _, clip := range track.ClipsInOrder() {
		clips = append(clips, ClipView{
			ID:                clip.ID().String(),
			MediaID:           clip.MediaID().String(),
			Name:              clip.Name(),
			SourceDuration:    clip.SourceDuration(),
			StartTime:         clip.StartTime(),
			TrimStart:         clip.Trim().Start(),
			TrimEnd:           clip.Trim().End(),
			EffectiveDuration: clip.EffectiveDuration(),
			EndTime:           clip.EndTime(),
			Muted:             clip.Muted(),
		})
	}
	return TrackView{
		ID:    track.ID().String(),
		Name:  track.Name(),
		Type:  track.Type().String(),
		Muted: track.Muted(),
		Clips: clips,
	}
}

// NewTimelineView builds the read model from a live aggregate
func NewTimelineView(tl *aggregates.Timeline) TimelineView {
	tracks := make([]TrackView, 0, tl.TrackCount())
	for _, track := range tl.Tracks() {
		tracks = append(tracks, NewTrackView(track))
	}
	return TimelineView{
		ID:               tl.ID().String(),
		Name:             tl.Name(),
		Tracks:           tracks,
		TotalDuration:    tl.TotalDuration(),
		PlaybackDuration: tl.PlaybackDuration(),
		Version:          tl.Version(),
		CreatedAt:        tl.CreatedAt(),
		UpdatedAt:        tl.UpdatedAt(),
	}
}

// NewSessionSummary builds the listing view from a live aggregate
func NewSessionSummary(tl *aggregates.Timeline) SessionSummary {
	return SessionSummary{
		ID:            tl.ID().String(),
		Name:          tl.Name(),
		TrackCount:    tl.TrackCount(),
		TotalDuration: tl.TotalDuration(),
		Version:       tl.Version(),
		UpdatedAt:     tl.UpdatedAt(),
	}
}
