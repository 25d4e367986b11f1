package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencut-backend/domain/core/entities"
	"opencut-backend/domain/core/valueobjects"
)

func newTestClip(t *testing.T, start, duration float64) *entities.Clip {
	t.Helper()
	mediaID, err := valueobjects.NewMediaIDFromString("media-1")
	require.NoError(t, err)
	clip, err := entities.NewClip(mediaID, "clip", duration, start)
	require.NoError(t, err)
	return clip
}

func TestNewTrack(t *testing.T) {
	tests := []struct {
		name     string
		ttype    valueobjects.TrackType
		trkName  string
		wantName string
		wantErr  bool
	}{
		{name: "video with default name", ttype: valueobjects.TrackTypeVideo, wantName: "Video Track"},
		{name: "audio with explicit name", ttype: valueobjects.TrackTypeAudio, trkName: "VO", wantName: "VO"},
		{name: "effects default name", ttype: valueobjects.TrackTypeEffects, wantName: "Effects Track"},
		{name: "unknown type", ttype: valueobjects.TrackType("subtitle"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, err := NewTrack(tt.ttype, tt.trkName)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, track.Name())
			assert.Equal(t, tt.ttype, track.Type())
			assert.False(t, track.Muted())
			assert.Equal(t, 0, track.ClipCount())
		})
	}
}

func TestTrackAttachClipRejectsOverlap(t *testing.T) {
	track, err := NewTrack(valueobjects.TrackTypeVideo, "")
	require.NoError(t, err)

	require.NoError(t, track.AttachClip(newTestClip(t, 0, 5), 0))
	require.NoError(t, track.AttachClip(newTestClip(t, 5, 3), 0), "abutting clip is legal")

	// [3, 6) collides with both existing clips.
	err = track.AttachClip(newTestClip(t, 3, 3), 0)
	assert.Error(t, err)
	assert.Equal(t, 2, track.ClipCount())
}

func TestTrackCanPlaceExcludesSelf(t *testing.T) {
	track, err := NewTrack(valueobjects.TrackTypeVideo, "")
	require.NoError(t, err)

	clip := newTestClip(t, 2, 4)
	require.NoError(t, track.AttachClip(clip, 0))

	// The clip's own span is free when the clip excludes itself, occupied
	// otherwise.
	r, err := valueobjects.NewTimeRange(3, 5)
	require.NoError(t, err)
	assert.True(t, track.CanPlace(r, clip.ID()))
	assert.False(t, track.CanPlace(r, valueobjects.ClipID{}))
}

func TestTrackClipsInOrder(t *testing.T) {
	track, err := NewTrack(valueobjects.TrackTypeVideo, "")
	require.NoError(t, err)

	// Insertion order deliberately scrambled relative to time order.
	late := newTestClip(t, 10, 2)
	early := newTestClip(t, 0, 2)
	middle := newTestClip(t, 5, 2)
	require.NoError(t, track.AttachClip(late, 0))
	require.NoError(t, track.AttachClip(early, 0))
	require.NoError(t, track.AttachClip(middle, 0))

	// Storage keeps insertion order.
	stored := track.Clips()
	assert.True(t, stored[0].ID().Equals(late.ID()))

	// The derived accessor sorts by start time.
	ordered := track.ClipsInOrder()
	require.Len(t, ordered, 3)
	assert.True(t, ordered[0].ID().Equals(early.ID()))
	assert.True(t, ordered[1].ID().Equals(middle.ID()))
	assert.True(t, ordered[2].ID().Equals(late.ID()))
}

func TestTrackDetachClip(t *testing.T) {
	track, err := NewTrack(valueobjects.TrackTypeAudio, "")
	require.NoError(t, err)

	clip := newTestClip(t, 0, 3)
	require.NoError(t, track.AttachClip(clip, 0))

	detached, ok := track.DetachClip(clip.ID())
	assert.True(t, ok)
	assert.True(t, detached.ID().Equals(clip.ID()))
	assert.Equal(t, 0, track.ClipCount())

	// Second detach is an idempotent miss.
	_, ok = track.DetachClip(clip.ID())
	assert.False(t, ok)
}

func TestTrackEnd(t *testing.T) {
	track, err := NewTrack(valueobjects.TrackTypeVideo, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, track.End())

	require.NoError(t, track.AttachClip(newTestClip(t, 0, 5), 0))
	require.NoError(t, track.AttachClip(newTestClip(t, 8, 4), 0))
	assert.InDelta(t, 12.0, track.End(), 1e-9)
}

func TestTrackCloneIsIndependent(t *testing.T) {
	track, err := NewTrack(valueobjects.TrackTypeVideo, "")
	require.NoError(t, err)
	clip := newTestClip(t, 0, 5)
	require.NoError(t, track.AttachClip(clip, 0))

	clone := track.Clone()

	require.NoError(t, clip.SetStartTime(20))
	track.ToggleMute()

	clonedClip, ok := clone.FindClip(clip.ID())
	require.True(t, ok)
	assert.Equal(t, 0.0, clonedClip.StartTime())
	assert.False(t, clone.Muted())
}
