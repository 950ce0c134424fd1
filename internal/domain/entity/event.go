package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a domain event published after a successful commit.
type EventType string

const (
	EventTransactionCreated   EventType = "transaction.created"
	EventTransactionUpdated   EventType = "transaction.updated"
	EventTransactionDeleted   EventType = "transaction.deleted"
	EventBudgetAlert          EventType = "budget.alert"
	EventGoalContribution     EventType = "goal.contribution_added"
	EventGoalMilestoneReached EventType = "goal.milestone_achieved"
	EventGoalCompleted        EventType = "goal.completed"
)

// DomainEvent describes something that happened to an aggregate.
type DomainEvent struct {
	ID          uuid.UUID              `json:"id"`
	Type        EventType              `json:"type"`
	UserID      uuid.UUID              `json:"user_id"`
	AggregateID uuid.UUID              `json:"aggregate_id"`
	OccurredAt  time.Time              `json:"occurred_at"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
}

// NewDomainEvent creates an event stamped with a fresh identifier.
func NewDomainEvent(eventType EventType, userID, aggregateID uuid.UUID, occurredAt time.Time, payload map[string]interface{}) DomainEvent {
	return DomainEvent{
		ID:          uuid.New(),
		Type:        eventType,
		UserID:      userID,
		AggregateID: aggregateID,
		OccurredAt:  occurredAt,
		Payload:     payload,
	}
}
