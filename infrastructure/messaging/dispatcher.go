// Package messaging implements domain event delivery: an in-process
// dispatcher always, AWS EventBridge optionally behind a config flag.
package messaging

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"opencut-backend/application/ports"
	"opencut-backend/domain/events"
)

// EventDispatcher delivers domain events to in-process handlers
// registered by event type. It implements ports.EventBus; a handler
// failure is logged and does not fail the publishing operation.
type EventDispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]ports.EventHandler
	logger   *zap.Logger
}

// NewEventDispatcher creates an empty dispatcher
func NewEventDispatcher(logger *zap.Logger) *EventDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventDispatcher{
		handlers: make(map[string][]ports.EventHandler),
		logger:   logger,
	}
}

// Subscribe registers a handler for every event type it declares
func (d *EventDispatcher) Subscribe(handler ports.EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, eventType := range handler.EventTypes() {
		d.handlers[eventType] = append(d.handlers[eventType], handler)
	}
}

// Publish dispatches one event to its registered handlers
func (d *EventDispatcher) Publish(ctx context.Context, event events.DomainEvent) error {
	d.mu.RLock()
	handlers := d.handlers[event.GetEventType()]
	d.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			d.logger.Warn("event handler failed",
				zap.String("eventType", event.GetEventType()),
				zap.String("aggregateID", event.GetAggregateID()),
				zap.Error(err),
			)
		}
	}
	return nil
}

// PublishBatch dispatches events in order
func (d *EventDispatcher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	for _, event := range batch {
		if err := d.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// FanoutBus publishes every event to each downstream bus. The local
// dispatcher is always first; remote publishers follow.
type FanoutBus struct {
	buses []ports.EventBus
}

// NewFanoutBus creates a fanout over the given buses
func NewFanoutBus(buses ...ports.EventBus) *FanoutBus {
	return &FanoutBus{buses: buses}
}

// Publish sends the event to every bus, returning the first error after
// all buses have been attempted
func (f *FanoutBus) Publish(ctx context.Context, event events.DomainEvent) error {
	var firstErr error
	for _, bus := range f.buses {
		if err := bus.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("fanout publish: %w", err)
		}
	}
	return firstErr
}

// PublishBatch sends the batch to every bus
func (f *FanoutBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	var firstErr error
	for _, bus := range f.buses {
		if err := bus.PublishBatch(ctx, batch); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("fanout publish: %w", err)
		}
	}
	return firstErr
}
