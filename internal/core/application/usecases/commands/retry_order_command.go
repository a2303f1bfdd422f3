package commands

import (
	"errors"
	"strings"

	"groundhandling/internal/pkg/errs"
	"groundhandling/internal/pkg/guard"
)

var (
	ErrRetryOrderCommandIsNotConstructed = errors.New(
		"RetryOrderCommand must be created via NewRetryOrderCommand constructor",
	)
)

// RetryOrderCommand puts a dead-lettered order back into processing with a
// fresh retry budget.
//
// Example:
//
//	cmd, err := NewRetryOrderCommand("17")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrValueIsInvalid) {
//	    // the order is not dead-lettered
//	}
type RetryOrderCommand struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

// NewRetryOrderCommand creates a command to retry orderID.
func NewRetryOrderCommand(orderID string) (RetryOrderCommand, error) {
	cmd := RetryOrderCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setOrderID(orderID); err != nil {
		return RetryOrderCommand{}, err
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RetryOrderCommand) Validate() error {
	return c.guard.Validate(ErrRetryOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to retry.
func (c RetryOrderCommand) OrderID() string {
	return c.orderID
}

func (c *RetryOrderCommand) setOrderID(orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	c.orderID = orderID
	return nil
}
