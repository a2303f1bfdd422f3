package commands

import (
	"errors"
	"slices"
	"strings"

	"groundhandling/internal/core/domain/model/order"
	"groundhandling/internal/core/domain/model/vehicle"
	"groundhandling/internal/pkg/errs"
	"groundhandling/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
)

// SubmitOrderCommand represents an order received from the dispatch authority.
// The kind is optional: UnknownKind is resolved from the passenger list, so an
// order with passengers is a load and one without is a discharge. An empty
// vehicle kind means a bus.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand("17", "SU-1402", order.UnknownKind, "", []string{"p1", "p2"})
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//
//	handler := NewSubmitOrderCommandHandler(registry, queue, publisher, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to submit order: %w", err)
//	}
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     string
	flightID    string
	kind        order.Kind
	vehicleKind vehicle.Kind
	passengers  []string

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to register a new order.
// Validates identifiers and kinds; passenger rules are enforced by order.NewOrder.
func NewSubmitOrderCommand(
	orderID, flightID string,
	kind order.Kind,
	vehicleKind vehicle.Kind,
	passengers []string,
) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		passengers: slices.Clone(passengers),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setFlightID(flightID),
		cmd.setKind(kind, passengers),
		cmd.setVehicleKind(vehicleKind),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitOrderCommandIsNotConstructed if validation fails.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// OrderID returns the caller supplied order identifier.
func (c SubmitOrderCommand) OrderID() string {
	return c.orderID
}

// FlightID returns the flight the order targets.
func (c SubmitOrderCommand) FlightID() string {
	return c.flightID
}

// Kind returns the resolved order kind.
func (c SubmitOrderCommand) Kind() order.Kind {
	return c.kind
}

// VehicleKind returns the kind of vehicle to dispatch.
func (c SubmitOrderCommand) VehicleKind() vehicle.Kind {
	return c.vehicleKind
}

// Passengers returns a copy of the passenger identifiers.
func (c SubmitOrderCommand) Passengers() []string {
	return slices.Clone(c.passengers)
}

func (c *SubmitOrderCommand) setOrderID(orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitOrderCommand) setFlightID(flightID string) error {
	flightID = strings.TrimSpace(flightID)
	if flightID == "" {
		return errs.NewValueIsRequiredError("flight id")
	}

	c.flightID = flightID
	return nil
}

func (c *SubmitOrderCommand) setKind(kind order.Kind, passengers []string) error {
	if kind == order.UnknownKind {
		kind = order.KindFromPassengers(passengers)
	}
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *SubmitOrderCommand) setVehicleKind(kind vehicle.Kind) error {
	if kind == "" {
		kind = vehicle.Bus
	}
	if err := kind.Validate(); err != nil {
		return err
	}

	c.vehicleKind = kind
	return nil
}
