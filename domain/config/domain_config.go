package config

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Timeline constraints
	MaxTracksPerTimeline int
	MaxClipsPerTrack     int
	DefaultTimelineName  string

	// Playback
	// MinPlaybackDuration is the floor applied to the computed timeline
	// duration when it is consumed for playback. The raw computation can
	// still return 0 for an empty timeline.
	MinPlaybackDuration float64

	// Editing behavior
	// DuplicateGap is the gap in seconds left between a clip and its
	// duplicate so the copy never abuts or overlaps the original.
	DuplicateGap float64
	// FreezeFrameDuration is the effective duration of a freeze-frame clip.
	FreezeFrameDuration float64
	// MinEffectiveDuration is the smallest effective duration a trim may
	// leave behind. Effective duration must stay strictly above zero.
	MinEffectiveDuration float64

	// History
	MaxUndoDepth int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxTracksPerTimeline: 100,
		MaxClipsPerTrack:     1000,
		DefaultTimelineName:  "Untitled Project",

		MinPlaybackDuration: 10,

		DuplicateGap:         0.1,
		FreezeFrameDuration:  1,
		MinEffectiveDuration: 1e-6,

		MaxUndoDepth: 200,
	}
}
