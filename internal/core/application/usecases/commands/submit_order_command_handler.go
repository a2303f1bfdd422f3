package commands

import (
	"context"
	"fmt"
	"log/slog"

	"groundhandling/internal/core/domain/model/order"
	"groundhandling/internal/core/ports"
)

// SubmitOrderCommandHandler records a new order as active and queues it for
// the saga workers.
//
// Example:
//
//	handler := NewSubmitOrderCommandHandler(registry, queue, publisher, logger)
//	cmd, _ := NewSubmitOrderCommand("17", "SU-1402", order.Discharge, vehicle.Bus, nil)
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrObjectAlreadyExists) {
//	    // the order ID is already active
//	}
type SubmitOrderCommandHandler struct {
	registry  ports.OrderRegistry
	queue     ports.OrderQueue
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
}

// NewSubmitOrderCommandHandler creates a handler for order intake.
func NewSubmitOrderCommandHandler(
	registry ports.OrderRegistry,
	queue ports.OrderQueue,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return SubmitOrderCommandHandler{
		registry:  registry,
		queue:     queue,
		publisher: publisher,
		logger:    logger.With("component", "submit_order"),
	}
}

// Handle builds the order, inserts it into the registry and pushes it onto the queue.
// Insert is first-wins: a duplicate ID is rejected with errs.ErrObjectAlreadyExists
// and the active order is left untouched.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.FlightID(), cmd.Kind(), cmd.VehicleKind(), cmd.Passengers())
	if err != nil {
		return err
	}

	if err = h.registry.Add(ctx, o); err != nil {
		return err
	}

	if err = h.queue.Push(ctx, o); err != nil {
		// an order that never reaches the queue must not stay active
		if _, rmErr := h.registry.RemoveGeneration(ctx, o.ID(), o.Generation()); rmErr != nil {
			h.logger.Error("failed to roll back order registration", "order_id", o.ID(), "error", rmErr)
		}
		return fmt.Errorf("queue order %s: %w", o.ID(), err)
	}

	h.logger.Info("order accepted",
		"order_id", o.ID(),
		"flight_id", o.FlightID(),
		"kind", o.Kind().String(),
		"vehicle_kind", o.VehicleKind().String(),
		"passengers", len(o.Passengers()),
	)
	publish(ctx, h.publisher, h.logger, newOrderEvent(ports.OrderReceived, o, ""))

	return nil
}
