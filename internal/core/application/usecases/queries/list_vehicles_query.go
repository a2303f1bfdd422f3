package queries

import (
	"errors"

	"groundhandling/internal/pkg/guard"
)

var (
	ErrListVehiclesQueryIsNotConstructed = errors.New(
		"ListVehiclesQuery must be created via NewListVehiclesQuery constructor",
	)
)

// ListVehiclesQuery retrieves the fleet and the busy flag of every vehicle.
type ListVehiclesQuery struct {
	guard guard.ConstructorGuard
}

// NewListVehiclesQuery creates a parameterless fleet query.
func NewListVehiclesQuery() ListVehiclesQuery {
	return ListVehiclesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListVehiclesQuery) Validate() error {
	return q.guard.Validate(ErrListVehiclesQueryIsNotConstructed)
}

// ListVehiclesQueryResponse is one fleet vehicle.
type ListVehiclesQueryResponse struct {
	ID   string
	Name string
	Kind string
	Busy bool
}
