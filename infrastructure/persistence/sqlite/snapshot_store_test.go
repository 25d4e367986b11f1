package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencut-backend/domain/core/aggregates"
	"opencut-backend/domain/core/valueobjects"
	pkgerrors "opencut-backend/pkg/errors"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store, err := NewSnapshotStore(filepath.Join(t.TempDir(), "opencut.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func buildSnapshot(t *testing.T, name string) aggregates.TimelineSnapshot {
	t.Helper()
	tl, err := aggregates.NewTimeline(name)
	require.NoError(t, err)
	trackID, err := tl.AddTrack(valueobjects.TrackTypeVideo)
	require.NoError(t, err)
	mediaID, err := valueobjects.NewMediaIDFromString("media-1")
	require.NoError(t, err)
	spec := aggregates.ClipSpec{MediaID: mediaID, Name: "clip", SourceDuration: 10, StartTime: 0}
	_, err = tl.AddClip(trackID, spec)
	require.NoError(t, err)
	return tl.Snapshot()
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap := buildSnapshot(t, "project")
	require.NoError(t, store.SaveSnapshot(ctx, snap))

	loaded, err := store.LoadSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, loaded.ID)
	assert.Equal(t, snap.Name, loaded.Name)
	assert.Equal(t, snap.Version, loaded.Version)
	require.Len(t, loaded.Tracks, 1)
	require.Len(t, loaded.Tracks[0].Clips, 1)
	assert.Equal(t, 10.0, loaded.Tracks[0].Clips[0].Duration)

	restored, err := aggregates.ReconstructTimeline(loaded, nil)
	require.NoError(t, err)
	assert.NoError(t, restored.Validate())
}

func TestSnapshotStoreSaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap := buildSnapshot(t, "project")
	require.NoError(t, store.SaveSnapshot(ctx, snap))

	snap.Name = "renamed"
	snap.Version++
	snap.UpdatedAt = snap.UpdatedAt.Add(time.Second)
	require.NoError(t, store.SaveSnapshot(ctx, snap))

	loaded, err := store.LoadSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", loaded.Name)
	assert.Equal(t, snap.Version, loaded.Version)

	infos, err := store.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestSnapshotStoreLoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadSnapshot(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestSnapshotStoreListOrdersByRecency(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := buildSnapshot(t, "older")
	older.UpdatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.SaveSnapshot(ctx, older))

	newer := buildSnapshot(t, "newer")
	newer.UpdatedAt = time.Now()
	require.NoError(t, store.SaveSnapshot(ctx, newer))

	infos, err := store.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "newer", infos[0].Name)
	assert.Equal(t, "older", infos[1].Name)
}

func TestSnapshotStoreDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap := buildSnapshot(t, "project")
	require.NoError(t, store.SaveSnapshot(ctx, snap))
	require.NoError(t, store.DeleteSnapshot(ctx, snap.ID))
	require.NoError(t, store.DeleteSnapshot(ctx, snap.ID))

	_, err := store.LoadSnapshot(ctx, snap.ID)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestSnapshotStorePrune(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		snap := buildSnapshot(t, "project")
		snap.UpdatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.SaveSnapshot(ctx, snap))
	}

	require.NoError(t, store.Prune(ctx, 2))

	infos, err := store.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 2)
}
