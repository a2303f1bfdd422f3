package commands

import (
	"context"
	"errors"
	"log/slog"

	"groundhandling/internal/core/ports"
	"groundhandling/internal/pkg/errs"
)

// RemoveOrderCommandHandler removes orders from the registry. Removing is
// idempotent: an unknown ID is not an error. A saga already running for the
// order finishes on its own and its outcome is then discarded; a queued order
// is skipped by the dispatcher.
type RemoveOrderCommandHandler struct {
	registry  ports.OrderRegistry
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
}

// NewRemoveOrderCommandHandler creates a handler for order removal.
func NewRemoveOrderCommandHandler(
	registry ports.OrderRegistry,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) RemoveOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return RemoveOrderCommandHandler{
		registry:  registry,
		publisher: publisher,
		logger:    logger.With("component", "remove_order"),
	}
}

// Handle removes the order named by cmd.
func (h RemoveOrderCommandHandler) Handle(ctx context.Context, cmd RemoveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.registry.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	removed, err := h.registry.Remove(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}

	h.logger.Info("order removed", "order_id", o.ID(), "status", o.Status().String())
	publish(ctx, h.publisher, h.logger, newOrderEvent(ports.OrderRemoved, o, ""))
	return nil
}
