package queries

import (
	"context"

	"groundhandling/internal/core/ports"
)

// ListActiveOrdersQueryHandler reads the order registry.
type ListActiveOrdersQueryHandler struct {
	registry ports.OrderRegistry
}

// NewListActiveOrdersQueryHandler creates a handler over registry.
func NewListActiveOrdersQueryHandler(registry ports.OrderRegistry) ListActiveOrdersQueryHandler {
	return ListActiveOrdersQueryHandler{registry: registry}
}

// Handle returns the active orders in insertion order.
func (h ListActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListActiveOrdersQuery,
) ([]ListActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.registry.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ListActiveOrdersQueryResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, ListActiveOrdersQueryResponse{
			ID:          o.ID(),
			FlightID:    o.FlightID(),
			Kind:        o.Kind().String(),
			VehicleKind: o.VehicleKind().String(),
			Passengers:  o.Passengers(),
			Attempts:    o.Attempts(),
			Status:      o.Status().String(),
			LastError:   o.LastError(),
		})
	}

	return resp, nil
}
