package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencut-backend/domain/core/aggregates"
	"opencut-backend/domain/core/valueobjects"
	pkgerrors "opencut-backend/pkg/errors"
)

func TestRepositorySaveAndGet(t *testing.T) {
	repo := NewTimelineRepository()
	ctx := context.Background()

	tl, err := aggregates.NewTimeline("project")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, tl))

	got, err := repo.GetByID(ctx, tl.ID())
	require.NoError(t, err)
	assert.Equal(t, tl.Name(), got.Name())
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := NewTimelineRepository()

	_, err := repo.GetByID(context.Background(), valueobjects.NewTimelineID())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestRepositoryDeleteIsIdempotent(t *testing.T) {
	repo := NewTimelineRepository()
	ctx := context.Background()

	tl, err := aggregates.NewTimeline("project")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, tl))

	require.NoError(t, repo.Delete(ctx, tl.ID()))
	require.NoError(t, repo.Delete(ctx, tl.ID()))

	_, err = repo.GetByID(ctx, tl.ID())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestRepositoryListIsSorted(t *testing.T) {
	repo := NewTimelineRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		tl, err := aggregates.NewTimeline("project")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, tl))
	}

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i := 1; i < len(listed); i++ {
		assert.Less(t, listed[i-1].ID().String(), listed[i].ID().String())
	}
}
