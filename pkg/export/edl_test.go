package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencut-backend/domain/core/aggregates"
	"opencut-backend/domain/core/valueobjects"
)

func edlTimeline(t *testing.T) *aggregates.Timeline {
	t.Helper()
	tl, err := aggregates.NewTimeline("EDL Project")
	require.NoError(t, err)
	return tl
}

func placeClip(t *testing.T, tl *aggregates.Timeline, trackID valueobjects.TrackID, name string, start, duration float64) valueobjects.ClipID {
	t.Helper()
	mediaID, err := valueobjects.NewMediaIDFromString("media-" + name)
	require.NoError(t, err)
	clipID, err := tl.AddClip(trackID, aggregates.ClipSpec{
		MediaID:        mediaID,
		Name:           name,
		SourceDuration: duration,
		StartTime:      start,
	})
	require.NoError(t, err)
	return clipID
}

func TestGenerateEDL(t *testing.T) {
	tl := edlTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)

	placeClip(t, tl, trackID, "intro", 0, 4)
	clipID := placeClip(t, tl, trackID, "main", 4, 10)
	require.NoError(t, tl.TrimClip(trackID, clipID, 2, 3))

	edl := GenerateEDL(tl, Options{Title: "My Cut", FrameRate: 30})
	lines := strings.Split(edl, "\n")

	assert.Equal(t, "TITLE: My Cut", lines[0])
	assert.Equal(t, "FCM: NON-DROP FRAME", lines[1])

	// First event: untrimmed 4s clip at record zero.
	assert.Contains(t, edl, "001  AX       V     C        00:00:00:00 00:00:04:00 00:00:00:00 00:00:04:00")
	assert.Contains(t, edl, "* FROM CLIP NAME:  intro")
	assert.Contains(t, edl, "* SOURCE MEDIA:  media-intro")

	// Second event: source window [2, 7) of the trimmed clip, record [4, 9).
	assert.Contains(t, edl, "002  AX       V     C        00:00:02:00 00:00:07:00 00:00:04:00 00:00:09:00")
}

func TestGenerateEDLSkipsMutedAndEffects(t *testing.T) {
	tl := edlTimeline(t)
	videoID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	fxID, err := tl.AddTrack(valueobjects.TrackTypeEffects)
	require.NoError(t, err)

	placeClip(t, tl, videoID, "kept", 0, 2)
	mutedID := placeClip(t, tl, videoID, "silenced", 2, 2)
	tl.ToggleClipMute(videoID, mutedID)
	placeClip(t, tl, fxID, "overlay", 0, 2)

	edl := GenerateEDL(tl, Options{FrameRate: 30})
	assert.Contains(t, edl, "kept")
	assert.NotContains(t, edl, "silenced")
	assert.NotContains(t, edl, "overlay")
	assert.Contains(t, edl, "TITLE: EDL Project", "falls back to the timeline name")
}

func TestGenerateEDLDropFrame(t *testing.T) {
	tl := edlTimeline(t)
	edl := GenerateEDL(tl, Options{Title: "DF", FrameRate: 29.97})
	assert.Contains(t, edl, "FCM: DROP FRAME")
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"plain", "Clip 1", 0, "Clip 1"},
		{"control chars stripped", "a\x00b\nc", 0, "abc"},
		{"disallowed replaced", "a/b:c", 0, "a_b_c"},
		{"truncated", "abcdefgh", 4, "abcd"},
		{"trimmed", "  pad  ", 0, "pad"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in, tt.maxLen))
		})
	}
}
