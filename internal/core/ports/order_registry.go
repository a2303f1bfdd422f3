package ports

import (
	"context"

	"groundhandling/internal/core/domain/model/order"
)

// OrderRegistry holds the active order set. It is the single owner of order
// state; callers get copies and change orders only through Update.
type OrderRegistry interface {
	// Add inserts a new order and stamps o with a fresh generation. Insert is
	// first-wins: an existing ID yields errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, o *order.Order) error

	// Get returns a copy of the order, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id string) (*order.Order, error)

	// Update applies fn to the stored order under the registry lock.
	// fn's error aborts the update and is returned unchanged.
	Update(ctx context.Context, id string, fn func(o *order.Order) error) error

	// Remove deletes the order. It reports whether an order was removed;
	// removing an absent ID is not an error.
	Remove(ctx context.Context, id string) (bool, error)

	// RemoveGeneration deletes the order only while it is still the registration
	// with that generation. It reports whether an order was removed.
	RemoveGeneration(ctx context.Context, id string, generation uint64) (bool, error)

	// List returns copies of all orders in insertion order.
	List(ctx context.Context) ([]*order.Order, error)
}

// OrderQueue is the hand-off between intake and the saga workers.
type OrderQueue interface {
	// Push appends an order to the tail of the queue.
	Push(ctx context.Context, o *order.Order) error

	// Drain removes and returns every queued order, oldest first.
	Drain(ctx context.Context) ([]*order.Order, error)

	// Len returns the number of queued orders.
	Len() int
}
