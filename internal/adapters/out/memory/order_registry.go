package memory

import (
	"context"
	"sync"

	"groundhandling/internal/core/domain/model/order"
	"groundhandling/internal/core/ports"
	"groundhandling/internal/pkg/errs"
)

var _ ports.OrderRegistry = (*OrderRegistry)(nil)

// OrderRegistry is the active order set, keyed by order ID and kept in
// insertion order for listing.
type OrderRegistry struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
	order  []string

	// generation of the last insert
	generation uint64
}

// NewOrderRegistry creates an empty registry.
func NewOrderRegistry() *OrderRegistry {
	return &OrderRegistry{orders: make(map[string]*order.Order)}
}

func (r *OrderRegistry) Add(_ context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[o.ID()]; exists {
		return errs.NewObjectAlreadyExistsError("order id", o.ID())
	}
	r.generation++
	o.AssignGeneration(r.generation)
	r.orders[o.ID()] = o.Clone()
	r.order = append(r.order, o.ID())
	return nil
}

func (r *OrderRegistry) Get(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order id", id)
	}
	return o.Clone(), nil
}

func (r *OrderRegistry) Update(_ context.Context, id string, fn func(o *order.Order) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return errs.NewObjectNotFoundError("order id", id)
	}
	// fn works on a copy so that a failed update leaves the stored order untouched.
	cp := o.Clone()
	if err := fn(cp); err != nil {
		return err
	}
	r.orders[id] = cp
	return nil
}

func (r *OrderRegistry) Remove(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return false, nil
	}
	r.remove(id)
	return true, nil
}

func (r *OrderRegistry) RemoveGeneration(_ context.Context, id string, generation uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok || o.Generation() != generation {
		return false, nil
	}
	r.remove(id)
	return true, nil
}

func (r *OrderRegistry) remove(id string) {
	delete(r.orders, id)
	for i, candidate := range r.order {
		if candidate == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *OrderRegistry) List(_ context.Context) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*order.Order, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.orders[id].Clone())
	}
	return out, nil
}
