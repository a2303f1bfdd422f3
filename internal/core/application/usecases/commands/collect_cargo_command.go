package commands

import (
	"errors"
	"fmt"
	"strings"

	"groundhandling/internal/core/ports"
	"groundhandling/internal/pkg/errs"
	"groundhandling/internal/pkg/guard"
)

var (
	ErrCollectCargoCommandIsNotConstructed = errors.New(
		"CollectCargoCommand must be created via NewCollectCargoCommand constructor",
	)
)

// CollectCargoCommand registers one passenger or one piece of baggage waiting
// for a flight.
type CollectCargoCommand struct { //nolint:recvcheck //using for validation
	cargo    ports.CargoKind
	flightID string
	itemID   string

	guard guard.ConstructorGuard
}

// NewCollectCargoCommand creates a command adding itemID to flightID's buffer of cargo.
func NewCollectCargoCommand(cargo ports.CargoKind, flightID, itemID string) (CollectCargoCommand, error) {
	cmd := CollectCargoCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setCargo(cargo),
		cmd.setFlightID(flightID),
		cmd.setItemID(itemID),
	); err != nil {
		return CollectCargoCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CollectCargoCommand) Validate() error {
	return c.guard.Validate(ErrCollectCargoCommandIsNotConstructed)
}

// Cargo returns whether the item is a passenger or baggage.
func (c CollectCargoCommand) Cargo() ports.CargoKind {
	return c.cargo
}

// FlightID returns the flight the item is waiting for.
func (c CollectCargoCommand) FlightID() string {
	return c.flightID
}

// ItemID returns the passenger or baggage identifier.
func (c CollectCargoCommand) ItemID() string {
	return c.itemID
}

func (c *CollectCargoCommand) setCargo(cargo ports.CargoKind) error {
	switch cargo {
	case ports.CargoPassengers, ports.CargoBaggage:
		c.cargo = cargo
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("cargo", fmt.Errorf("%q is not a known cargo kind", string(cargo)))
	}
}

func (c *CollectCargoCommand) setFlightID(flightID string) error {
	flightID = strings.TrimSpace(flightID)
	if flightID == "" {
		return errs.NewValueIsRequiredError("flight id")
	}
	c.flightID = flightID
	return nil
}

func (c *CollectCargoCommand) setItemID(itemID string) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return errs.NewValueIsRequiredError("item id")
	}
	c.itemID = itemID
	return nil
}
