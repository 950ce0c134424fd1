package service

import (
	"context"
	"log/slog"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// EventDispatcher publishes committed domain events. Publishing is best effort:
// a broker failure is logged and never undoes the committed change.
type EventDispatcher struct {
	publisher adapter.EventPublisher
}

// NewEventDispatcher creates a new EventDispatcher. A nil publisher disables publishing.
func NewEventDispatcher(publisher adapter.EventPublisher) *EventDispatcher {
	return &EventDispatcher{
		publisher: publisher,
	}
}

// Dispatch publishes the events in order.
func (d *EventDispatcher) Dispatch(ctx context.Context, events ...entity.DomainEvent) {
	if d == nil || d.publisher == nil {
		return
	}
	for _, event := range events {
		if err := d.publisher.Publish(ctx, event); err != nil {
			slog.Warn("Failed to publish domain event",
				"event_type", event.Type,
				"aggregate_id", event.AggregateID,
				"error", err,
			)
		}
	}
}
