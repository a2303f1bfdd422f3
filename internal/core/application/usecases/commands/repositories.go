// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: constructor validation, a handler
// that re-validates the command, then changes made through the ports.
package commands

import (
	"context"
	"log/slog"
	"time"

	"groundhandling/internal/core/application/saga"
	"groundhandling/internal/core/domain/model/kernel"
	"groundhandling/internal/core/domain/model/order"
	"groundhandling/internal/core/ports"
)

type (
	// SagaRunner executes one saga for an order and reports how it ended.
	SagaRunner interface {
		Run(ctx context.Context, o *order.Order) saga.Result
	}

	// OrderSubmitter accepts a new order. SubmitOrderCommandHandler is the
	// production implementation; CollectCargoCommandHandler depends on it.
	OrderSubmitter interface {
		Handle(ctx context.Context, cmd SubmitOrderCommand) error
	}
)

// newOrderEvent builds a lifecycle event describing o.
func newOrderEvent(eventType ports.OrderEventType, o *order.Order, reason string) ports.OrderEvent {
	return ports.OrderEvent{
		ID:         kernel.NewUUID().String(),
		Type:       eventType,
		OrderID:    o.ID(),
		FlightID:   o.FlightID(),
		Kind:       o.Kind().String(),
		Attempts:   o.Attempts(),
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
}

// publish delivers event and logs a failure. Lifecycle events are best effort.
func publish(ctx context.Context, publisher ports.OrderEventPublisher, logger *slog.Logger, event ports.OrderEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish order event",
			"type", event.Type,
			"order_id", event.OrderID,
			"error", err,
		)
	}
}
