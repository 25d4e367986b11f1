package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencut-backend/domain/core/valueobjects"
)

func testMediaID(t *testing.T) valueobjects.MediaID {
	t.Helper()
	id, err := valueobjects.NewMediaIDFromString("media-1")
	require.NoError(t, err)
	return id
}

func TestNewClip(t *testing.T) {
	mediaID := testMediaID(t)

	tests := []struct {
		name      string
		media     valueobjects.MediaID
		clipName  string
		duration  float64
		startTime float64
		wantErr   bool
		wantStart float64
		wantName  string
	}{
		{name: "valid clip", media: mediaID, clipName: "intro", duration: 12, startTime: 3, wantStart: 3, wantName: "intro"},
		{name: "negative start clamps to zero", media: mediaID, clipName: "x", duration: 5, startTime: -2, wantStart: 0, wantName: "x"},
		{name: "empty name gets default", media: mediaID, duration: 5, wantStart: 0, wantName: "Clip"},
		{name: "missing media reference", clipName: "x", duration: 5, wantErr: true},
		{name: "zero duration", media: mediaID, clipName: "x", duration: 0, wantErr: true},
		{name: "negative duration", media: mediaID, clipName: "x", duration: -3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip, err := NewClip(tt.media, tt.clipName, tt.duration, tt.startTime)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, clip)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, clip)

			assert.False(t, clip.ID().IsZero())
			assert.Equal(t, tt.wantStart, clip.StartTime())
			assert.Equal(t, tt.wantName, clip.Name())
			assert.Equal(t, tt.duration, clip.SourceDuration())
			// New clips always start untrimmed and unmuted.
			assert.Equal(t, valueobjects.ZeroTrim(), clip.Trim())
			assert.False(t, clip.Muted())
			assert.InDelta(t, tt.duration, clip.EffectiveDuration(), 1e-9)
		})
	}
}

func TestClipEffectiveDuration(t *testing.T) {
	clip, err := NewClip(testMediaID(t), "x", 10, 2)
	require.NoError(t, err)

	trim, err := valueobjects.NewTrim(1, 3)
	require.NoError(t, err)
	require.NoError(t, clip.ApplyTrim(trim, 0))

	assert.InDelta(t, 6.0, clip.EffectiveDuration(), 1e-9)
	assert.InDelta(t, 8.0, clip.EndTime(), 1e-9)

	r := clip.Range()
	assert.InDelta(t, 2.0, r.Start(), 1e-9)
	assert.InDelta(t, 8.0, r.End(), 1e-9)
}

func TestClipApplyTrimRejectsEmptyResult(t *testing.T) {
	clip, err := NewClip(testMediaID(t), "x", 4, 0)
	require.NoError(t, err)

	trim, err := valueobjects.NewTrim(2, 2)
	require.NoError(t, err)
	err = clip.ApplyTrim(trim, 0)
	assert.Error(t, err)
	// The failed trim left the clip untouched.
	assert.Equal(t, valueobjects.ZeroTrim(), clip.Trim())
}

func TestClipClone(t *testing.T) {
	clip, err := NewClip(testMediaID(t), "x", 10, 1)
	require.NoError(t, err)

	clone := clip.Clone()
	assert.True(t, clone.ID().Equals(clip.ID()), "clone keeps identity")

	require.NoError(t, clip.SetStartTime(7))
	clip.ToggleMute()

	assert.Equal(t, 1.0, clone.StartTime(), "clone is unaffected by later edits")
	assert.False(t, clone.Muted())
}

func TestReconstructClip(t *testing.T) {
	mediaID := testMediaID(t)
	trim, err := valueobjects.NewTrim(1, 1)
	require.NoError(t, err)

	clip, err := ReconstructClip(valueobjects.NewClipID(), mediaID, "stored", 10, 5, trim, true)
	require.NoError(t, err)
	assert.True(t, clip.Muted())
	assert.InDelta(t, 8.0, clip.EffectiveDuration(), 1e-9)

	// A stored trim that consumed the whole source is corrupt.
	badTrim, err := valueobjects.NewTrim(5, 5)
	require.NoError(t, err)
	_, err = ReconstructClip(valueobjects.NewClipID(), mediaID, "stored", 10, 5, badTrim, false)
	assert.Error(t, err)
}
