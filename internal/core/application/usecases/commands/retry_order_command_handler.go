package commands

import (
	"context"
	"fmt"
	"log/slog"

	"groundhandling/internal/core/domain/model/order"
	"groundhandling/internal/core/ports"
)

// RetryOrderCommandHandler reactivates dead-lettered orders.
type RetryOrderCommandHandler struct {
	registry    ports.OrderRegistry
	queue       ports.OrderQueue
	deadLetters ports.DeadLetterRepository
	publisher   ports.OrderEventPublisher
	logger      *slog.Logger
}

// NewRetryOrderCommandHandler creates a handler for manual retries.
func NewRetryOrderCommandHandler(
	registry ports.OrderRegistry,
	queue ports.OrderQueue,
	deadLetters ports.DeadLetterRepository,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) RetryOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return RetryOrderCommandHandler{
		registry:    registry,
		queue:       queue,
		deadLetters: deadLetters,
		publisher:   publisher,
		logger:      logger.With("component", "retry_order"),
	}
}

// Handle moves the order from DeadLettered back to Active, drops its dead
// letter and queues it again. An unknown ID yields errs.ErrObjectNotFound; an
// order that is not dead-lettered yields errs.ErrValueIsInvalid.
func (h RetryOrderCommandHandler) Handle(ctx context.Context, cmd RetryOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var snapshot *order.Order
	if err := h.registry.Update(ctx, cmd.OrderID(), func(o *order.Order) error {
		if err := o.Reactivate(); err != nil {
			return err
		}
		snapshot = o.Clone()
		return nil
	}); err != nil {
		return err
	}

	if err := h.deadLetters.Delete(ctx, snapshot.ID()); err != nil {
		h.logger.Warn("failed to delete dead letter", "order_id", snapshot.ID(), "error", err)
	}

	if err := h.queue.Push(ctx, snapshot); err != nil {
		return fmt.Errorf("queue order %s: %w", snapshot.ID(), err)
	}

	h.logger.Info("dead-lettered order requeued", "order_id", snapshot.ID())
	publish(ctx, h.publisher, h.logger, newOrderEvent(ports.OrderRequeued, snapshot, "manual retry"))
	return nil
}
