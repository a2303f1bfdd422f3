package queries

import (
	"context"

	"groundhandling/internal/core/domain/model/vehicle"
)

// Fleet exposes a point-in-time view of the vehicle pool.
type Fleet interface {
	Snapshot() []vehicle.Snapshot
}

// ListVehiclesQueryHandler reads the vehicle pool.
type ListVehiclesQueryHandler struct {
	fleet Fleet
}

// NewListVehiclesQueryHandler creates a handler over fleet.
func NewListVehiclesQueryHandler(fleet Fleet) ListVehiclesQueryHandler {
	return ListVehiclesQueryHandler{fleet: fleet}
}

// Handle returns the fleet in pool order. Busy flags may change right after
// the snapshot is taken.
func (h ListVehiclesQueryHandler) Handle(
	_ context.Context,
	query ListVehiclesQuery,
) ([]ListVehiclesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshot := h.fleet.Snapshot()
	resp := make([]ListVehiclesQueryResponse, 0, len(snapshot))
	for _, v := range snapshot {
		resp = append(resp, ListVehiclesQueryResponse{
			ID:   v.ID,
			Name: v.Name,
			Kind: v.Kind.String(),
			Busy: v.Busy,
		})
	}

	return resp, nil
}
