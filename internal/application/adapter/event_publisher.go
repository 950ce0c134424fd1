// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// EventPublisher defines the interface for publishing domain events to a message broker.
type EventPublisher interface {
	// Publish sends the event. Callers publish only after the originating transaction committed.
	Publish(ctx context.Context, event entity.DomainEvent) error

	// Close releases broker resources.
	Close() error
}
