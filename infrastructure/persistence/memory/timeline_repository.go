// Package memory holds the in-process stores backing live editing
// sessions.
package memory

import (
	"context"
	"sort"
	"sync"

	"opencut-backend/domain/core/aggregates"
	"opencut-backend/domain/core/valueobjects"
	pkgerrors "opencut-backend/pkg/errors"
)

// TimelineRepository is the in-memory implementation of
// ports.TimelineRepository. Live sessions are single-writer (the editor
// service serializes per session), so the map mutex only guards the map
// itself.
type TimelineRepository struct {
	mu        sync.RWMutex
	timelines map[string]*aggregates.Timeline
}

// NewTimelineRepository creates an empty repository
func NewTimelineRepository() *TimelineRepository {
	return &TimelineRepository{
		timelines: make(map[string]*aggregates.Timeline),
	}
}

// GetByID retrieves a timeline by ID
func (r *TimelineRepository) GetByID(ctx context.Context, id valueobjects.TimelineID) (*aggregates.Timeline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	timeline, exists := r.timelines[id.String()]
	if !exists {
		return nil, pkgerrors.NewNotFound("session " + id.String())
	}
	return timeline, nil
}

// Save stores a timeline, replacing any previous state under its ID
func (r *TimelineRepository) Save(ctx context.Context, timeline *aggregates.Timeline) error {
	if timeline == nil {
		return pkgerrors.NewValidation("timeline cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.timelines[timeline.ID().String()] = timeline
	return nil
}

// Delete removes a timeline. Deleting an unknown ID is not an error.
func (r *TimelineRepository) Delete(ctx context.Context, id valueobjects.TimelineID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.timelines, id.String())
	return nil
}

// List returns all stored timelines ordered by ID for determinism
func (r *TimelineRepository) List(ctx context.Context) ([]*aggregates.Timeline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*aggregates.Timeline, 0, len(r.timelines))
	for _, tl := range r.timelines {
		out = append(out, tl)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}
