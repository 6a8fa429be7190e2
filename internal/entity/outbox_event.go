package entity

import (
	"time"

	"github.com/google/uuid"
)

// Order lifecycle event kinds published through the outbox.
const (
	EventOrderCreated   = "order.created"
	EventOrderCompleted = "order.completed"
	EventOrderFailed    = "order.failed"
)

type OutboxEvent struct {
	ID          uuid.UUID  `json:"id"`
	AggregateID uuid.UUID  `json:"aggregate_id"` // order id
	Payload     []byte     `json:"payload"`
	Status      Status     `json:"status"` // pending, processing, processed, failed
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	RetryCount  int        `json:"retry_count"`
}
