package ports

import (
	"context"
	"time"
)

// OrderEventType names a lifecycle transition.
type OrderEventType string

const (
	OrderReceived     OrderEventType = "received"
	OrderCompleted    OrderEventType = "completed"
	OrderRequeued     OrderEventType = "requeued"
	OrderDeadLettered OrderEventType = "dead_lettered"
	OrderRemoved      OrderEventType = "removed"
)

// OrderEvent is published on every lifecycle transition of an order.
type OrderEvent struct {
	ID         string         `json:"id"`
	Type       OrderEventType `json:"type"`
	OrderID    string         `json:"orderId"`
	FlightID   string         `json:"flightId"`
	Kind       string         `json:"kind"`
	Attempts   int            `json:"attempts"`
	Reason     string         `json:"reason,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// OrderEventPublisher delivers lifecycle events. Publishing is best effort:
// callers log failures and carry on.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
