package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencut-backend/domain/config"
	"opencut-backend/domain/core/valueobjects"
	pkgerrors "opencut-backend/pkg/errors"
)

func newTestTimeline(t *testing.T) *Timeline {
	t.Helper()
	tl, err := NewTimeline("Test Project")
	require.NoError(t, err)
	return tl
}

func testSpec(t *testing.T, start, duration float64) ClipSpec {
	t.Helper()
	mediaID, err := valueobjects.NewMediaIDFromString("media-1")
	require.NoError(t, err)
	return ClipSpec{MediaID: mediaID, Name: "clip", SourceDuration: duration, StartTime: start}
}

func TestNewTimeline(t *testing.T) {
	tl, err := NewTimeline("")
	require.NoError(t, err)
	assert.Equal(t, "Untitled Project", tl.Name())
	assert.Equal(t, 1, tl.Version())
	assert.Equal(t, 0, tl.TrackCount())
	assert.Len(t, tl.GetUncommittedEvents(), 1)
}

func TestAddTrack(t *testing.T) {
	tl := newTestTimeline(t)

	videoID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	audioID, err := tl.AddTrack(valueobjects.TrackTypeAudio)
	require.NoError(t, err)

	assert.Equal(t, 2, tl.TrackCount())

	video, err := tl.GetTrack(videoID)
	require.NoError(t, err)
	assert.Equal(t, "Video Track", video.Name())

	audio, err := tl.GetTrack(audioID)
	require.NoError(t, err)
	assert.Equal(t, "Audio Track", audio.Name())

	// Stacking order is append order.
	tracks := tl.Tracks()
	assert.True(t, tracks[0].ID().Equals(videoID))
	assert.True(t, tracks[1].ID().Equals(audioID))
}

func TestInsertTrack(t *testing.T) {
	tl := newTestTimeline(t)

	bottom, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	top, err := tl.InsertTrack(valueobjects.TrackTypeEffects, 0)
	require.NoError(t, err)

	tracks := tl.Tracks()
	assert.True(t, tracks[0].ID().Equals(top))
	assert.True(t, tracks[1].ID().Equals(bottom))
}

func TestRemoveTrackIsIdempotent(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)

	version := tl.Version()
	tl.RemoveTrack(trackID)
	assert.Equal(t, 0, tl.TrackCount())
	assert.Equal(t, version+1, tl.Version())

	// Removing the same track again is a silent no-op.
	tl.RemoveTrack(trackID)
	assert.Equal(t, version+1, tl.Version())

	tl.RemoveTrack(valueobjects.NewTrackID())
	assert.Equal(t, version+1, tl.Version())
}

func TestAddClip(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)

	clipID, err := tl.AddClip(trackID, testSpec(t, 2, 10))
	require.NoError(t, err)

	clip, ok := tl.FindClip(trackID, clipID)
	require.True(t, ok)
	assert.Equal(t, 2.0, clip.StartTime())
	assert.Equal(t, valueobjects.ZeroTrim(), clip.Trim(), "placement never carries a trim")
	assert.False(t, clip.Muted())

	// Unknown track is an error on the creation path.
	_, err = tl.AddClip(valueobjects.NewTrackID(), testSpec(t, 0, 5))
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestAddClipRejectsOverlap(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)

	_, err = tl.AddClip(trackID, testSpec(t, 0, 5))
	require.NoError(t, err)
	_, err = tl.AddClip(trackID, testSpec(t, 5, 3))
	require.NoError(t, err, "clip ending exactly where another begins is legal")

	// [3, 6) overlaps both existing clips.
	version := tl.Version()
	_, err = tl.AddClip(trackID, testSpec(t, 3, 3))
	assert.True(t, pkgerrors.IsPlacement(err))
	assert.Equal(t, version, tl.Version(), "rejected placements mutate nothing")
}

func TestCrossTrackOverlapIsPermitted(t *testing.T) {
	tl := newTestTimeline(t)
	videoID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	audioID, err := tl.AddTrack(valueobjects.TrackTypeAudio)
	require.NoError(t, err)

	_, err = tl.AddClip(videoID, testSpec(t, 0, 10))
	require.NoError(t, err)
	_, err = tl.AddClip(audioID, testSpec(t, 0, 10))
	assert.NoError(t, err, "parallel tracks may overlap in time")
}

func TestRemoveClipIsIdempotent(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	clipID, err := tl.AddClip(trackID, testSpec(t, 0, 5))
	require.NoError(t, err)

	tl.RemoveClip(trackID, clipID)
	_, ok := tl.FindClip(trackID, clipID)
	assert.False(t, ok)

	version := tl.Version()
	tl.RemoveClip(trackID, clipID)
	tl.RemoveClip(valueobjects.NewTrackID(), clipID)
	assert.Equal(t, version, tl.Version())
}

func TestMoveClipBetweenTracks(t *testing.T) {
	tl := newTestTimeline(t)
	fromID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	toID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)

	clipID, err := tl.AddClip(fromID, testSpec(t, 0, 5))
	require.NoError(t, err)

	require.NoError(t, tl.MoveClip(fromID, toID, clipID, 7))

	// Verified by membership, not by duration side effects.
	_, stillOnSource := tl.FindClip(fromID, clipID)
	assert.False(t, stillOnSource)
	moved, onTarget := tl.FindClip(toID, clipID)
	require.True(t, onTarget)
	assert.Equal(t, 7.0, moved.StartTime())
}

func TestMoveClipRejectsOverlapAtDestination(t *testing.T) {
	tl := newTestTimeline(t)
	fromID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	toID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)

	clipID, err := tl.AddClip(fromID, testSpec(t, 0, 5))
	require.NoError(t, err)
	_, err = tl.AddClip(toID, testSpec(t, 4, 5))
	require.NoError(t, err)

	err = tl.MoveClip(fromID, toID, clipID, 2)
	assert.True(t, pkgerrors.IsPlacement(err))

	// The failed move left the clip exactly where it was.
	clip, ok := tl.FindClip(fromID, clipID)
	require.True(t, ok)
	assert.Equal(t, 0.0, clip.StartTime())
}

func TestSetClipStartExcludesSelfFromOverlapCheck(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	clipID, err := tl.AddClip(trackID, testSpec(t, 0, 5))
	require.NoError(t, err)

	// Nudging a clip within its own current span must not collide with
	// itself.
	require.NoError(t, tl.SetClipStart(trackID, clipID, 1))
	clip, ok := tl.FindClip(trackID, clipID)
	require.True(t, ok)
	assert.Equal(t, 1.0, clip.StartTime())
}

func TestTrimClip(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	clipID, err := tl.AddClip(trackID, testSpec(t, 0, 10))
	require.NoError(t, err)

	require.NoError(t, tl.TrimClip(trackID, clipID, 2, 3))
	clip, ok := tl.FindClip(trackID, clipID)
	require.True(t, ok)
	assert.InDelta(t, 5.0, clip.EffectiveDuration(), 1e-9)

	// A trim that consumes the whole source is rejected with no mutation.
	err = tl.TrimClip(trackID, clipID, 6, 5)
	assert.True(t, pkgerrors.IsPlacement(err))
	assert.InDelta(t, 5.0, clip.EffectiveDuration(), 1e-9)

	// Negative trim values never pass validation.
	err = tl.TrimClip(trackID, clipID, -1, 0)
	assert.Error(t, err)
}

func TestTrimClipRejectsExtensionIntoNeighbor(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)

	clipID, err := tl.AddClip(trackID, testSpec(t, 0, 10))
	require.NoError(t, err)
	require.NoError(t, tl.TrimClip(trackID, clipID, 0, 5))

	// Neighbor sits right against the trimmed end.
	_, err = tl.AddClip(trackID, testSpec(t, 5, 3))
	require.NoError(t, err)

	// Loosening the end trim would extend the first clip into the
	// neighbor's span.
	err = tl.TrimClip(trackID, clipID, 0, 2)
	assert.True(t, pkgerrors.IsPlacement(err))
}

func TestSplitClip(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	clipID, err := tl.AddClip(trackID, testSpec(t, 0, 10))
	require.NoError(t, err)

	totalBefore := tl.TotalDuration()

	newClipID, err := tl.SplitClip(trackID, clipID, 4)
	require.NoError(t, err)

	first, ok := tl.FindClip(trackID, clipID)
	require.True(t, ok)
	second, ok := tl.FindClip(trackID, newClipID)
	require.True(t, ok)

	// The two halves exactly reconstruct [0, 10): no gap, no overlap.
	assert.InDelta(t, 0.0, first.StartTime(), 1e-9)
	assert.InDelta(t, 4.0, first.EndTime(), 1e-9)
	assert.InDelta(t, 4.0, second.StartTime(), 1e-9)
	assert.InDelta(t, 10.0, second.EndTime(), 1e-9)
	assert.False(t, first.Range().Overlaps(second.Range()))

	// Both halves reference the same source media, offset correctly.
	assert.True(t, second.MediaID().Equals(first.MediaID()))
	assert.InDelta(t, 4.0, second.Trim().Start(), 1e-9)
	assert.Equal(t, "clip (split)", second.Name())

	// Splitting the duration-determining clip changes nothing in total.
	assert.InDelta(t, totalBefore, tl.TotalDuration(), 1e-9)

	require.NoError(t, tl.Validate())
}

func TestSplitClipPreservesTrimOffsets(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	clipID, err := tl.AddClip(trackID, testSpec(t, 2, 10))
	require.NoError(t, err)
	// Clip shows source [1, 9) and occupies [2, 10) on the track.
	require.NoError(t, tl.TrimClip(trackID, clipID, 1, 1))

	newClipID, err := tl.SplitClip(trackID, clipID, 6)
	require.NoError(t, err)

	first, _ := tl.FindClip(trackID, clipID)
	second, _ := tl.FindClip(trackID, newClipID)

	assert.InDelta(t, 6.0, first.EndTime(), 1e-9)
	assert.InDelta(t, 1.0, first.Trim().Start(), 1e-9)
	assert.InDelta(t, 5.0, first.Trim().End(), 1e-9)

	assert.InDelta(t, 6.0, second.StartTime(), 1e-9)
	assert.InDelta(t, 5.0, second.Trim().Start(), 1e-9)
	assert.InDelta(t, 1.0, second.Trim().End(), 1e-9)
}

func TestSplitClipOutsideSpanMutatesNothing(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	clipID, err := tl.AddClip(trackID, testSpec(t, 0, 10))
	require.NoError(t, err)

	version := tl.Version()
	track, err := tl.GetTrack(trackID)
	require.NoError(t, err)

	for _, at := range []float64{-1, 0, 10, 15} {
		_, err := tl.SplitClip(trackID, clipID, at)
		assert.True(t, pkgerrors.IsValidation(err), "split at %v must be rejected", at)
	}

	assert.Equal(t, version, tl.Version())
	assert.Equal(t, 1, track.ClipCount())
	clip, _ := tl.FindClip(trackID, clipID)
	assert.InDelta(t, 10.0, clip.EffectiveDuration(), 1e-9)
}

func TestDuplicateClip(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	clipID, err := tl.AddClip(trackID, testSpec(t, 2, 4))
	require.NoError(t, err)

	dupID, err := tl.DuplicateClip(trackID, clipID)
	require.NoError(t, err)

	original, _ := tl.FindClip(trackID, clipID)
	dup, ok := tl.FindClip(trackID, dupID)
	require.True(t, ok)

	// Clip occupying [2, 6) duplicates to 6.1, one gap past its end.
	assert.InDelta(t, 6.1, dup.StartTime(), 1e-9)
	assert.False(t, dup.Range().Overlaps(original.Range()))
	assert.Equal(t, "clip (copy)", dup.Name())
	assert.True(t, dup.Trim().Equals(original.Trim()))
	assert.True(t, dup.MediaID().Equals(original.MediaID()))
}

func TestDuplicateClipRejectsOccupiedLandingSpot(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	clipID, err := tl.AddClip(trackID, testSpec(t, 0, 4))
	require.NoError(t, err)
	// Occupies [4.05, 8.05), colliding with the would-be copy at [4.1, 8.1).
	_, err = tl.AddClip(trackID, testSpec(t, 4.05, 4))
	require.NoError(t, err)

	_, err = tl.DuplicateClip(trackID, clipID)
	assert.True(t, pkgerrors.IsPlacement(err))
}

func TestFreezeFrame(t *testing.T) {
	tl := newTestTimeline(t)
	videoID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	holdID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)

	clipID, err := tl.AddClip(videoID, testSpec(t, 0, 10))
	require.NoError(t, err)

	frozenID, err := tl.FreezeFrame(videoID, clipID, holdID, 3)
	require.NoError(t, err)

	frozen, ok := tl.FindClip(holdID, frozenID)
	require.True(t, ok)
	assert.InDelta(t, 1.0, frozen.EffectiveDuration(), 1e-9, "hold is exactly one second")
	assert.InDelta(t, 3.0, frozen.StartTime(), 1e-9)
	assert.InDelta(t, 3.0, frozen.Trim().Start(), 1e-9, "hold shows the frame under the playhead")

	// Playhead outside the source clip is rejected.
	_, err = tl.FreezeFrame(videoID, clipID, holdID, 11)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestRippleDelete(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)

	firstID, err := tl.AddClip(trackID, testSpec(t, 0, 3))
	require.NoError(t, err)
	middleID, err := tl.AddClip(trackID, testSpec(t, 3, 4))
	require.NoError(t, err)
	lastID, err := tl.AddClip(trackID, testSpec(t, 9, 2))
	require.NoError(t, err)

	require.NoError(t, tl.RippleDelete(trackID, middleID))

	first, _ := tl.FindClip(trackID, firstID)
	last, _ := tl.FindClip(trackID, lastID)
	assert.Equal(t, 0.0, first.StartTime(), "clips before the gap stay put")
	assert.InDelta(t, 5.0, last.StartTime(), 1e-9, "clips after shift left by the removed span")
	require.NoError(t, tl.Validate())

	err = tl.RippleDelete(trackID, middleID)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestTotalDuration(t *testing.T) {
	tl := newTestTimeline(t)
	assert.Equal(t, 0.0, tl.TotalDuration(), "empty timeline computes zero")
	assert.Equal(t, 10.0, tl.PlaybackDuration(), "playback floor applies")

	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	assert.Equal(t, 0.0, tl.TotalDuration())

	_, err = tl.AddClip(trackID, testSpec(t, 0, 4))
	require.NoError(t, err)
	assert.InDelta(t, 4.0, tl.TotalDuration(), 1e-9)
	assert.Equal(t, 10.0, tl.PlaybackDuration(), "short content still floors at the minimum")

	_, err = tl.AddClip(trackID, testSpec(t, 20, 5))
	require.NoError(t, err)
	assert.InDelta(t, 25.0, tl.TotalDuration(), 1e-9)
	assert.InDelta(t, 25.0, tl.PlaybackDuration(), 1e-9)
}

func TestToggleMutesAreSilentOnMissingIDs(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	clipID, err := tl.AddClip(trackID, testSpec(t, 0, 5))
	require.NoError(t, err)

	version := tl.Version()
	tl.ToggleTrackMute(valueobjects.NewTrackID())
	tl.ToggleClipMute(trackID, valueobjects.NewClipID())
	assert.Equal(t, version, tl.Version())

	tl.ToggleTrackMute(trackID)
	track, _ := tl.FindTrack(trackID)
	assert.True(t, track.Muted())

	tl.ToggleClipMute(trackID, clipID)
	clip, _ := tl.FindClip(trackID, clipID)
	assert.True(t, clip.Muted())
	// Clip and track mutes are independent flags.
	tl.ToggleTrackMute(trackID)
	assert.True(t, clip.Muted())
}

func TestSnapshotIsStructurallyIndependent(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	clipID, err := tl.AddClip(trackID, testSpec(t, 0, 5))
	require.NoError(t, err)

	snap := tl.Snapshot()

	// Mutate the live timeline after the snapshot was taken.
	require.NoError(t, tl.SetClipStart(trackID, clipID, 30))
	require.NoError(t, tl.TrimClip(trackID, clipID, 1, 1))

	require.Len(t, snap.Tracks, 1)
	require.Len(t, snap.Tracks[0].Clips, 1)
	assert.Equal(t, 0.0, snap.Tracks[0].Clips[0].StartTime)
	assert.Equal(t, 0.0, snap.Tracks[0].Clips[0].TrimStart)
}

func TestRestoreTracksRoundTrip(t *testing.T) {
	tl := newTestTimeline(t)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	clipID, err := tl.AddClip(trackID, testSpec(t, 2, 5))
	require.NoError(t, err)

	before := tl.Snapshot()

	require.NoError(t, tl.SetClipStart(trackID, clipID, 9))
	require.NoError(t, tl.RestoreTracks(before, "undo"))

	clip, ok := tl.FindClip(trackID, clipID)
	require.True(t, ok)
	assert.Equal(t, 2.0, clip.StartTime())
	assert.Equal(t, before.Tracks, tl.Snapshot().Tracks, "restored state is structurally equal")
}

func TestReconstructTimelineToleratesMissingFields(t *testing.T) {
	snap := TimelineSnapshot{
		Tracks: []TrackSnapshot{
			{
				// No ID, no name, no type: all default-filled.
				Clips: []ClipSnapshot{
					{MediaID: "media-1", Duration: 5, StartTime: 1},
				},
			},
		},
	}

	tl, err := ReconstructTimeline(snap, config.DefaultDomainConfig())
	require.NoError(t, err)
	assert.Equal(t, "Untitled Project", tl.Name())
	require.Equal(t, 1, tl.TrackCount())

	track := tl.Tracks()[0]
	assert.Equal(t, valueobjects.TrackTypeVideo, track.Type())
	assert.Equal(t, "Video Track", track.Name())
	require.Equal(t, 1, track.ClipCount())
	require.NoError(t, tl.Validate())
}

func TestReconstructTimelineRejectsOverlappingStoredClips(t *testing.T) {
	snap := TimelineSnapshot{
		Tracks: []TrackSnapshot{
			{
				Type: "video",
				Clips: []ClipSnapshot{
					{MediaID: "media-1", Duration: 5, StartTime: 0},
					{MediaID: "media-1", Duration: 5, StartTime: 3},
				},
			},
		},
	}

	_, err := ReconstructTimeline(snap, nil)
	assert.Error(t, err, "corrupted stored state is rejected, not resurrected")
}
