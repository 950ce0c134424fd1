package adaptertest

import (
	"context"
	"sync"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// EventRecorder is an adapter.EventPublisher that keeps published events in memory.
type EventRecorder struct {
	mu     sync.Mutex
	events []entity.DomainEvent
	Err    error
}

// Publish records the event, or returns Err when set.
func (r *EventRecorder) Publish(_ context.Context, event entity.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, event)
	return nil
}

// Close implements adapter.EventPublisher.
func (r *EventRecorder) Close() error {
	return nil
}

// Events returns the recorded events of the given type, or all when eventType is empty.
func (r *EventRecorder) Events(eventType entity.EventType) []entity.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]entity.DomainEvent, 0)
	for _, event := range r.events {
		if eventType == "" || event.Type == eventType {
			events = append(events, event)
		}
	}
	return events
}

// EmailRecorder is an adapter.EmailService that keeps queued emails in memory.
type EmailRecorder struct {
	mu             sync.Mutex
	BudgetAlerts   []adapter.QueueBudgetAlertInput
	GoalCompletion []adapter.QueueGoalCompletedInput
}

// QueueBudgetAlertEmail records the alert.
func (r *EmailRecorder) QueueBudgetAlertEmail(_ context.Context, input adapter.QueueBudgetAlertInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.BudgetAlerts = append(r.BudgetAlerts, input)
	return nil
}

// QueueGoalCompletedEmail records the completion email.
func (r *EmailRecorder) QueueGoalCompletedEmail(_ context.Context, input adapter.QueueGoalCompletedInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.GoalCompletion = append(r.GoalCompletion, input)
	return nil
}
