package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencut-backend/domain/events"
)

type recordingHandler struct {
	types    []string
	received []events.DomainEvent
	fail     bool
}

func (h *recordingHandler) HandleEvent(ctx context.Context, event events.DomainEvent) error {
	h.received = append(h.received, event)
	if h.fail {
		return errors.New("handler broke")
	}
	return nil
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func TestDispatcherRoutesByEventType(t *testing.T) {
	d := NewEventDispatcher(nil)

	created := &recordingHandler{types: []string{events.TypeTimelineCreated}}
	clips := &recordingHandler{types: []string{events.TypeClipAdded, events.TypeClipRemoved}}
	d.Subscribe(created)
	d.Subscribe(clips)

	ctx := context.Background()
	require.NoError(t, d.Publish(ctx, events.NewTimelineCreated("tl-1", "project", time.Now())))
	require.NoError(t, d.Publish(ctx, events.NewTimelineCreated("tl-2", "other", time.Now())))

	assert.Len(t, created.received, 2)
	assert.Empty(t, clips.received)
	assert.Equal(t, "tl-1", created.received[0].GetAggregateID())
}

func TestDispatcherSwallowsHandlerFailures(t *testing.T) {
	d := NewEventDispatcher(nil)

	failing := &recordingHandler{types: []string{events.TypeTimelineCreated}, fail: true}
	healthy := &recordingHandler{types: []string{events.TypeTimelineCreated}}
	d.Subscribe(failing)
	d.Subscribe(healthy)

	err := d.Publish(context.Background(), events.NewTimelineCreated("tl-1", "project", time.Now()))
	require.NoError(t, err)
	assert.Len(t, healthy.received, 1)
}

func TestFanoutBusDeliversToAllBuses(t *testing.T) {
	first := NewEventDispatcher(nil)
	second := NewEventDispatcher(nil)
	a := &recordingHandler{types: []string{events.TypeTimelineCreated}}
	b := &recordingHandler{types: []string{events.TypeTimelineCreated}}
	first.Subscribe(a)
	second.Subscribe(b)

	fanout := NewFanoutBus(first, second)
	batch := []events.DomainEvent{
		events.NewTimelineCreated("tl-1", "project", time.Now()),
		events.NewTimelineCreated("tl-2", "other", time.Now()),
	}
	require.NoError(t, fanout.PublishBatch(context.Background(), batch))

	assert.Len(t, a.received, 2)
	assert.Len(t, b.received, 2)
}
