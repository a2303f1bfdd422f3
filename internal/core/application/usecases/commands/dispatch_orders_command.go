package commands

import (
	"errors"

	"groundhandling/internal/pkg/guard"
)

// DispatchOrdersCommand starts a saga for every order waiting in the queue.
// It is issued on every tick of the dispatch job and never waits for the sagas it starts.
//
// Example:
//
//	cmd := NewDispatchOrdersCommand()
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    logger.Error("dispatch failed", "error", err)
//	}
type DispatchOrdersCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrDispatchOrdersCommandIsNotConstructed = errors.New(
		"DispatchOrdersCommand must be created via NewDispatchOrdersCommand constructor",
	)
)

// NewDispatchOrdersCommand creates a parameterless dispatch command.
func NewDispatchOrdersCommand() DispatchOrdersCommand {
	return DispatchOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchOrdersCommandIsNotConstructed if validation fails.
func (c *DispatchOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrdersCommandIsNotConstructed)
}
