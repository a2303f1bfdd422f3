package memory

import (
	"context"
	"sync"

	"groundhandling/internal/core/domain/model/order"
	"groundhandling/internal/core/ports"
)

var _ ports.OrderQueue = (*OrderQueue)(nil)

// OrderQueue is an unbounded FIFO of orders waiting for a saga.
type OrderQueue struct {
	mu    sync.Mutex
	items []*order.Order
}

// NewOrderQueue creates an empty queue.
func NewOrderQueue() *OrderQueue {
	return &OrderQueue{}
}

func (q *OrderQueue) Push(_ context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, o.Clone())
	return nil
}

func (q *OrderQueue) Drain(_ context.Context) ([]*order.Order, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items, nil
}

func (q *OrderQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
