package events

import (
	"time"
)

// TimelineCreated is raised when a new timeline is created
type TimelineCreated struct {
	BaseEvent
	TimelineID string `json:"timeline_id"`
	Name       string `json:"name"`
}

// NewTimelineCreated creates a TimelineCreated event
func NewTimelineCreated(timelineID, name string, timestamp time.Time) TimelineCreated {
	return TimelineCreated{
		BaseEvent: BaseEvent{
			AggregateID: timelineID,
			EventType:   TypeTimelineCreated,
			Timestamp:   timestamp,
			Version:     1,
		},
		TimelineID: timelineID,
		Name:       name,
	}
}

// TimelineRestored is raised when a timeline is replaced wholesale by a
// history snapshot (undo/redo) or a persisted project snapshot
type TimelineRestored struct {
	BaseEvent
	TimelineID string `json:"timeline_id"`
	Reason     string `json:"reason"`
}

// NewTimelineRestored creates a TimelineRestored event
func NewTimelineRestored(timelineID, reason string, timestamp time.Time) TimelineRestored {
	return TimelineRestored{
		BaseEvent: BaseEvent{
			AggregateID: timelineID,
			EventType:   TypeTimelineRestored,
			Timestamp:   timestamp,
			Version:     1,
		},
		TimelineID: timelineID,
		Reason:     reason,
	}
}

// TrackAdded is raised when a track is appended or inserted
type TrackAdded struct {
	BaseEvent
	TimelineID string `json:"timeline_id"`
	TrackID    string `json:"track_id"`
	TrackType  string `json:"track_type"`
}

// NewTrackAdded creates a TrackAdded event
func NewTrackAdded(timelineID, trackID, trackType string, timestamp time.Time) TrackAdded {
	return TrackAdded{
		BaseEvent: BaseEvent{
			AggregateID: timelineID,
			EventType:   TypeTrackAdded,
			Timestamp:   timestamp,
			Version:     1,
		},
		TimelineID: timelineID,
		TrackID:    trackID,
		TrackType:  trackType,
	}
}

// TrackRemoved is raised when a track and all its clips are removed
type TrackRemoved struct {
	BaseEvent
	TimelineID string `json:"timeline_id"`
	TrackID    string `json:"track_id"`
	ClipCount  int    `json:"clip_count"`
}

// NewTrackRemoved creates a TrackRemoved event
func NewTrackRemoved(timelineID, trackID string, clipCount int, timestamp time.Time) TrackRemoved {
	return TrackRemoved{
		BaseEvent: BaseEvent{
			AggregateID: timelineID,
			EventType:   TypeTrackRemoved,
			Timestamp:   timestamp,
			Version:     1,
		},
		TimelineID: timelineID,
		TrackID:    trackID,
		ClipCount:  clipCount,
	}
}

// TrackMuted is raised when a track's mute flag is toggled
type TrackMuted struct {
	BaseEvent
	TimelineID string `json:"timeline_id"`
	TrackID    string `json:"track_id"`
	Muted      bool   `json:"muted"`
}

// NewTrackMuted creates a TrackMuted event
func NewTrackMuted(timelineID, trackID string, muted bool, timestamp time.Time) TrackMuted {
	return TrackMuted{
		BaseEvent: BaseEvent{
			AggregateID: timelineID,
			EventType:   TypeTrackMuted,
			Timestamp:   timestamp,
			Version:     1,
		},
		TimelineID: timelineID,
		TrackID:    trackID,
		Muted:      muted,
	}
}

// ClipAdded is raised when a clip is placed on a track
type ClipAdded struct {
	BaseEvent
	TimelineID string  `json:"timeline_id"`
	TrackID    string  `json:"track_id"`
	ClipID     string  `json:"clip_id"`
	MediaID    string  `json:"media_id"`
	StartTime  float64 `json:"start_time"`
}

// NewClipAdded creates a ClipAdded event
func NewClipAdded(timelineID, trackID, clipID, mediaID string, startTime float64, timestamp time.Time) ClipAdded {
	return ClipAdded{
		BaseEvent: BaseEvent{
			AggregateID: timelineID,
			EventType:   TypeClipAdded,
			Timestamp:   timestamp,
			Version:     1,
		},
		TimelineID: timelineID,
		TrackID:    trackID,
		ClipID:     clipID,
		MediaID:    mediaID,
		StartTime:  startTime,
	}
}

// ClipRemoved is raised when a clip is removed from a track
type ClipRemoved struct {
	BaseEvent
	TimelineID string `json:"timeline_id"`
	TrackID    string `json:"track_id"`
	ClipID     string `json:"clip_id"`
}

// NewClipRemoved creates a ClipRemoved event
func NewClipRemoved(timelineID, trackID, clipID string, timestamp time.Time) ClipRemoved {
	return ClipRemoved{
		BaseEvent: BaseEvent{
			AggregateID: timelineID,
			EventType:   TypeClipRemoved,
			Timestamp:   timestamp,
			Version:     1,
		},
		TimelineID: timelineID,
		TrackID:    trackID,
		ClipID:     clipID,
	}
}

// ClipMoved is raised when a clip changes position or track
type ClipMoved struct {
	BaseEvent
	TimelineID  string  `json:"timeline_id"`
	FromTrackID string  `json:"from_track_id"`
	ToTrackID   string  `json:"to_track_id"`
	ClipID      string  `json:"clip_id"`
	OldStart    float64 `json:"old_start"`
	NewStart    float64 `json:"new_start"`
}

// NewClipMoved creates a ClipMoved event
func NewClipMoved(timelineID, fromTrackID, toTrackID, clipID string, oldStart, newStart float64, timestamp time.Time) ClipMoved {
	return ClipMoved{
		BaseEvent: BaseEvent{
			AggregateID: timelineID,
			EventType:   TypeClipMoved,
			Timestamp:   timestamp,
			Version:     1,
		},
		TimelineID:  timelineID,
		FromTrackID: fromTrackID,
		ToTrackID:   toTrackID,
		ClipID:      clipID,
		OldStart:    oldStart,
		NewStart:    newStart,
	}
}

// ClipTrimmed is raised when a clip's trim bounds change
type ClipTrimmed struct {
	BaseEvent
	TimelineID string  `json:"timeline_id"`
	TrackID    string  `json:"track_id"`
	ClipID     string  `json:"clip_id"`
	TrimStart  float64 `json:"trim_start"`
	TrimEnd    float64 `json:"trim_end"`
}

// NewClipTrimmed creates a ClipTrimmed event
func NewClipTrimmed(timelineID, trackID, clipID string, trimStart, trimEnd float64, timestamp time.Time) ClipTrimmed {
	return ClipTrimmed{
		BaseEvent: BaseEvent{
			AggregateID: timelineID,
			EventType:   TypeClipTrimmed,
			Timestamp:   timestamp,
			Version:     1,
		},
		TimelineID: timelineID,
		TrackID:    trackID,
		ClipID:     clipID,
		TrimStart:  trimStart,
		TrimEnd:    trimEnd,
	}
}

// ClipSplit is raised when a clip is divided at a point in time
type ClipSplit struct {
	BaseEvent
	TimelineID string  `json:"timeline_id"`
	TrackID    string  `json:"track_id"`
	ClipID     string  `json:"clip_id"`
	NewClipID  string  `json:"new_clip_id"`
	SplitAt    float64 `json:"split_at"`
}

// NewClipSplit creates a ClipSplit event
func NewClipSplit(timelineID, trackID, clipID, newClipID string, splitAt float64, timestamp time.Time) ClipSplit {
	return ClipSplit{
		BaseEvent: BaseEvent{
			AggregateID: timelineID,
			EventType:   TypeClipSplit,
			Timestamp:   timestamp,
			Version:     1,
		},
		TimelineID: timelineID,
		TrackID:    trackID,
		ClipID:     clipID,
		NewClipID:  newClipID,
		SplitAt:    splitAt,
	}
}

// ClipDuplicated is raised when a clip is copied onto the same track
type ClipDuplicated struct {
	BaseEvent
	TimelineID string  `json:"timeline_id"`
	TrackID    string  `json:"track_id"`
	ClipID     string  `json:"clip_id"`
	NewClipID  string  `json:"new_clip_id"`
	NewStart   float64 `json:"new_start"`
}

// NewClipDuplicated creates a ClipDuplicated event
func NewClipDuplicated(timelineID, trackID, clipID, newClipID string, newStart float64, timestamp time.Time) ClipDuplicated {
	return ClipDuplicated{
		BaseEvent: BaseEvent{
			AggregateID: timelineID,
			EventType:   TypeClipDuplicated,
			Timestamp:   timestamp,
			Version:     1,
		},
		TimelineID: timelineID,
		TrackID:    trackID,
		ClipID:     clipID,
		NewClipID:  newClipID,
		NewStart:   newStart,
	}
}

// ClipMuted is raised when a clip's mute flag is toggled
type ClipMuted struct {
	BaseEvent
	TimelineID string `json:"timeline_id"`
	TrackID    string `json:"track_id"`
	ClipID     string `json:"clip_id"`
	Muted      bool   `json:"muted"`
}

// NewClipMuted creates a ClipMuted event
func NewClipMuted(timelineID, trackID, clipID string, muted bool, timestamp time.Time) ClipMuted {
	return ClipMuted{
		BaseEvent: BaseEvent{
			AggregateID: timelineID,
			EventType:   TypeClipMuted,
			Timestamp:   timestamp,
			Version:     1,
		},
		TimelineID: timelineID,
		TrackID:    trackID,
		ClipID:     clipID,
		Muted:      muted,
	}
}

// ClipRenamed is raised when a clip's display name changes
type ClipRenamed struct {
	BaseEvent
	TimelineID string `json:"timeline_id"`
	TrackID    string `json:"track_id"`
	ClipID     string `json:"clip_id"`
	Name       string `json:"name"`
}

// NewClipRenamed creates a ClipRenamed event
func NewClipRenamed(timelineID, trackID, clipID, name string, timestamp time.Time) ClipRenamed {
	return ClipRenamed{
		BaseEvent: BaseEvent{
			AggregateID: timelineID,
			EventType:   TypeClipRenamed,
			Timestamp:   timestamp,
			Version:     1,
		},
		TimelineID: timelineID,
		TrackID:    trackID,
		ClipID:     clipID,
		Name:       name,
	}
}
