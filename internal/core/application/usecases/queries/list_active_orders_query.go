// Package queries contains read-only operations over the order registry, the
// dead-letter store and the fleet.
package queries

import (
	"errors"

	"groundhandling/internal/pkg/guard"
)

var (
	ErrListActiveOrdersQueryIsNotConstructed = errors.New(
		"ListActiveOrdersQuery must be created via NewListActiveOrdersQuery constructor",
	)
)

// ListActiveOrdersQuery retrieves a snapshot of the active order set.
// Queued, running and dead-lettered orders are all part of it.
//
// Example:
//
//	query := NewListActiveOrdersQuery()
//	handler := NewListActiveOrdersQueryHandler(registry)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	for _, o := range orders {
//	    fmt.Printf("order %s for flight %s is %s\n", o.ID, o.FlightID, o.Status)
//	}
type ListActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewListActiveOrdersQuery creates a parameterless snapshot query.
func NewListActiveOrdersQuery() ListActiveOrdersQuery {
	return ListActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListActiveOrdersQueryIsNotConstructed if validation fails.
func (q ListActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListActiveOrdersQueryIsNotConstructed)
}

// ListActiveOrdersQueryResponse is one order of the snapshot.
type ListActiveOrdersQueryResponse struct {
	ID          string
	FlightID    string
	Kind        string
	VehicleKind string
	Passengers  []string
	Attempts    int
	Status      string
	LastError   string
}
