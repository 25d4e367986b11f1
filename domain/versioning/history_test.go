package versioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencut-backend/domain/core/aggregates"
	"opencut-backend/domain/core/valueobjects"
	pkgerrors "opencut-backend/pkg/errors"
)

func buildTimeline(t *testing.T) (*aggregates.Timeline, valueobjects.TrackID, valueobjects.ClipID) {
	t.Helper()
	tl, err := aggregates.NewTimeline("History Test")
	require.NoError(t, err)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	mediaID, err := valueobjects.NewMediaIDFromString("media-1")
	require.NoError(t, err)
	clipID, err := tl.AddClip(trackID, aggregates.ClipSpec{
		MediaID:        mediaID,
		Name:           "clip",
		SourceDuration: 10,
		StartTime:      0,
	})
	require.NoError(t, err)
	return tl, trackID, clipID
}

func TestUndoRestoresPreMutationState(t *testing.T) {
	tl, trackID, clipID := buildTimeline(t)
	h := NewHistory(10)

	// Snapshot before the edit, as the editing session would.
	h.Push(tl.Snapshot())
	require.NoError(t, tl.SetClipStart(trackID, clipID, 5))

	restored, err := h.Undo(tl.Snapshot())
	require.NoError(t, err)
	require.NoError(t, tl.RestoreTracks(restored, "undo"))

	clip, ok := tl.FindClip(trackID, clipID)
	require.True(t, ok)
	assert.Equal(t, 0.0, clip.StartTime())
}

func TestRedoMirrorsUndo(t *testing.T) {
	tl, trackID, clipID := buildTimeline(t)
	h := NewHistory(10)

	h.Push(tl.Snapshot())
	require.NoError(t, tl.SetClipStart(trackID, clipID, 5))
	afterEdit, err := Checksum(tl.Snapshot())
	require.NoError(t, err)

	restored, err := h.Undo(tl.Snapshot())
	require.NoError(t, err)
	require.NoError(t, tl.RestoreTracks(restored, "undo"))
	require.True(t, h.CanRedo())

	restored, err = h.Redo(tl.Snapshot())
	require.NoError(t, err)
	require.NoError(t, tl.RestoreTracks(restored, "redo"))

	afterRedo, err := Checksum(tl.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, afterEdit, afterRedo, "redo lands back on the edited state")

	clip, _ := tl.FindClip(trackID, clipID)
	assert.Equal(t, 5.0, clip.StartTime())
}

func TestPushClearsRedo(t *testing.T) {
	tl, trackID, clipID := buildTimeline(t)
	h := NewHistory(10)

	h.Push(tl.Snapshot())
	require.NoError(t, tl.SetClipStart(trackID, clipID, 5))

	restored, err := h.Undo(tl.Snapshot())
	require.NoError(t, err)
	require.NoError(t, tl.RestoreTracks(restored, "undo"))
	require.True(t, h.CanRedo())

	// A fresh edit after an undo abandons the redoable branch.
	h.Push(tl.Snapshot())
	require.NoError(t, tl.SetClipStart(trackID, clipID, 2))

	assert.False(t, h.CanRedo())
	_, err = h.Redo(tl.Snapshot())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestRevertUndoPreservesRedoFuture(t *testing.T) {
	tl, trackID, clipID := buildTimeline(t)
	h := NewHistory(10)

	// Two edits, then one undo to park a redoable entry.
	h.Push(tl.Snapshot())
	require.NoError(t, tl.SetClipStart(trackID, clipID, 5))
	h.Push(tl.Snapshot())
	require.NoError(t, tl.SetClipStart(trackID, clipID, 8))

	restored, err := h.Undo(tl.Snapshot())
	require.NoError(t, err)
	require.NoError(t, tl.RestoreTracks(restored, "undo"))
	require.True(t, h.CanRedo())
	redoBefore := h.RedoDepth()

	// A second undo whose restore fails is rolled back in place.
	popped, err := h.Undo(tl.Snapshot())
	require.NoError(t, err)
	h.RevertUndo(popped)

	assert.Equal(t, redoBefore, h.RedoDepth(), "redoable future survives a failed undo")
	assert.Equal(t, 1, h.UndoDepth())

	// The redo still lands on the state the first undo left behind.
	restored, err = h.Redo(tl.Snapshot())
	require.NoError(t, err)
	require.NoError(t, tl.RestoreTracks(restored, "redo"))
	clip, _ := tl.FindClip(trackID, clipID)
	assert.Equal(t, 8.0, clip.StartTime())
}

func TestRevertRedoPreservesUndoPast(t *testing.T) {
	tl, trackID, clipID := buildTimeline(t)
	h := NewHistory(10)

	h.Push(tl.Snapshot())
	require.NoError(t, tl.SetClipStart(trackID, clipID, 5))

	restored, err := h.Undo(tl.Snapshot())
	require.NoError(t, err)
	require.NoError(t, tl.RestoreTracks(restored, "undo"))
	undoBefore := h.UndoDepth()

	popped, err := h.Redo(tl.Snapshot())
	require.NoError(t, err)
	h.RevertRedo(popped)

	assert.Equal(t, undoBefore, h.UndoDepth(), "undo history survives a failed redo")
	assert.True(t, h.CanRedo())
}

func TestUndoOnEmptyHistory(t *testing.T) {
	tl, _, _ := buildTimeline(t)
	h := NewHistory(10)

	assert.False(t, h.CanUndo())
	_, err := h.Undo(tl.Snapshot())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestDepthBound(t *testing.T) {
	tl, trackID, clipID := buildTimeline(t)
	h := NewHistory(3)

	for i := 1; i <= 6; i++ {
		h.Push(tl.Snapshot())
		require.NoError(t, tl.SetClipStart(trackID, clipID, float64(i)))
	}

	assert.Equal(t, 3, h.UndoDepth(), "oldest entries are evicted beyond the bound")

	// Only the three most recent pre-states are reachable.
	for want := 5.0; want >= 3.0; want-- {
		restored, err := h.Undo(tl.Snapshot())
		require.NoError(t, err)
		require.NoError(t, tl.RestoreTracks(restored, "undo"))
		clip, _ := tl.FindClip(trackID, clipID)
		assert.Equal(t, want, clip.StartTime())
	}
	assert.False(t, h.CanUndo())
}

func TestHistoryEntriesAreIndependentOfLaterEdits(t *testing.T) {
	tl, trackID, clipID := buildTimeline(t)
	h := NewHistory(10)

	h.Push(tl.Snapshot())
	before, err := Checksum(h.undo[0])
	require.NoError(t, err)

	// Pile edits onto the live timeline after the snapshot was taken.
	require.NoError(t, tl.SetClipStart(trackID, clipID, 20))
	require.NoError(t, tl.TrimClip(trackID, clipID, 2, 2))
	tl.ToggleClipMute(trackID, clipID)

	after, err := Checksum(h.undo[0])
	require.NoError(t, err)
	assert.Equal(t, before, after, "stored entries share no structure with the live timeline")
}

func TestChecksumDistinguishesTrackState(t *testing.T) {
	tl, trackID, clipID := buildTimeline(t)

	a, err := Checksum(tl.Snapshot())
	require.NoError(t, err)
	b, err := Checksum(tl.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, a, b, "identical state hashes identically")

	require.NoError(t, tl.SetClipStart(trackID, clipID, 1))
	c, err := Checksum(tl.Snapshot())
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
