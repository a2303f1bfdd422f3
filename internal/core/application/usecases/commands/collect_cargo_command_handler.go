package commands

import (
	"context"
	"fmt"
	"log/slog"

	"groundhandling/internal/core/domain/model/kernel"
	"groundhandling/internal/core/domain/model/order"
	"groundhandling/internal/core/domain/model/vehicle"
	"groundhandling/internal/core/ports"
)

// DefaultBatchSize is the number of items that fills one vehicle.
const DefaultBatchSize = 50

// CollectCargoCommandHandler buffers passengers and baggage per flight and
// submits a load order every time a flight's buffer fills up. Passenger batches
// go by bus, baggage batches by baggage cart.
type CollectCargoCommandHandler struct {
	buffer    ports.ManifestBuffer
	submitter OrderSubmitter
	batchSize int
	logger    *slog.Logger
}

// NewCollectCargoCommandHandler creates the accumulator handler. A non-positive
// batchSize falls back to DefaultBatchSize.
func NewCollectCargoCommandHandler(
	buffer ports.ManifestBuffer,
	submitter OrderSubmitter,
	batchSize int,
	logger *slog.Logger,
) CollectCargoCommandHandler {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return CollectCargoCommandHandler{
		buffer:    buffer,
		submitter: submitter,
		batchSize: batchSize,
		logger:    logger.With("component", "collect_cargo"),
	}
}

// Handle buffers the item. When the batch is complete it returns the ID of the
// load order it submitted; otherwise the returned ID is empty.
func (h CollectCargoCommandHandler) Handle(ctx context.Context, cmd CollectCargoCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	batch, err := h.buffer.Append(ctx, cmd.Cargo(), cmd.FlightID(), cmd.ItemID(), h.batchSize)
	if err != nil {
		return "", err
	}
	if batch == nil {
		return "", nil
	}

	vehicleKind := vehicle.Bus
	if cmd.Cargo() == ports.CargoBaggage {
		vehicleKind = vehicle.BaggageCart
	}

	orderID := kernel.NewUUID().String()
	submit, err := NewSubmitOrderCommand(orderID, cmd.FlightID(), order.Load, vehicleKind, batch)
	if err == nil {
		err = h.submitter.Handle(ctx, submit)
	}
	if err != nil {
		h.restore(ctx, cmd, batch)
		return "", fmt.Errorf("submit %s batch for flight %s: %w", cmd.Cargo(), cmd.FlightID(), err)
	}

	h.logger.Info("batch dispatched",
		"flight_id", cmd.FlightID(),
		"cargo", string(cmd.Cargo()),
		"items", len(batch),
		"order_id", orderID,
	)
	return orderID, nil
}

// restore keeps an undispatched batch buffered so the next item retries it.
func (h CollectCargoCommandHandler) restore(ctx context.Context, cmd CollectCargoCommand, batch []string) {
	if err := h.buffer.Restore(ctx, cmd.Cargo(), cmd.FlightID(), batch); err != nil {
		h.logger.Error("failed to restore undispatched batch",
			"flight_id", cmd.FlightID(),
			"cargo", string(cmd.Cargo()),
			"items", len(batch),
			"error", err,
		)
	}
}
