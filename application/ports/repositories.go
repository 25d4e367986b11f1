package ports

import (
	"context"
	"time"

	"opencut-backend/domain/core/aggregates"
	"opencut-backend/domain/core/valueobjects"
	"opencut-backend/domain/events"
)

// TimelineRepository stores live timeline aggregates for open editing
// sessions.
type TimelineRepository interface {
	GetByID(ctx context.Context, id valueobjects.TimelineID) (*aggregates.Timeline, error)
	Save(ctx context.Context, timeline *aggregates.Timeline) error
	Delete(ctx context.Context, id valueobjects.TimelineID) error
	List(ctx context.Context) ([]*aggregates.Timeline, error)
}

// SnapshotInfo is the listing view of a persisted snapshot
type SnapshotInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SnapshotStore persists project snapshots across sessions. Backed by
// sqlite for local autosave or DynamoDB when running against the cloud.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap aggregates.TimelineSnapshot) error
	LoadSnapshot(ctx context.Context, id string) (aggregates.TimelineSnapshot, error)
	ListSnapshots(ctx context.Context) ([]SnapshotInfo, error)
	DeleteSnapshot(ctx context.Context, id string) error
}

// EventBus publishes committed domain events
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, batch []events.DomainEvent) error
}

// EventHandler processes a published domain event
type EventHandler interface {
	HandleEvent(ctx context.Context, event events.DomainEvent) error
	EventTypes() []string
}

// ThumbnailProvider resolves a frame of a media source to a preview image
// URL. The media store is an external collaborator; the engine only holds
// media IDs.
type ThumbnailProvider interface {
	ThumbnailURL(ctx context.Context, mediaID string, sourceTime float64) (string, error)
}
