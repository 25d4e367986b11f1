package events

// Event sources - These define where events originate from
const (
	// SourceBackend is the primary editing service source
	SourceBackend = "opencut.backend"
)

// Event types - These define the types of events in the system
const (
	// Timeline events
	TypeTimelineCreated  = "timeline.created"
	TypeTimelineRestored = "timeline.restored"

	// Track events
	TypeTrackAdded   = "timeline.track_added"
	TypeTrackRemoved = "timeline.track_removed"
	TypeTrackMuted   = "timeline.track_muted"

	// Clip events
	TypeClipAdded      = "timeline.clip_added"
	TypeClipRemoved    = "timeline.clip_removed"
	TypeClipMoved      = "timeline.clip_moved"
	TypeClipTrimmed    = "timeline.clip_trimmed"
	TypeClipSplit      = "timeline.clip_split"
	TypeClipDuplicated = "timeline.clip_duplicated"
	TypeClipMuted      = "timeline.clip_muted"
	TypeClipRenamed    = "timeline.clip_renamed"
)
