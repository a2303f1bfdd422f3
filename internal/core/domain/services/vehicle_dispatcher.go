package services

import (
	"context"
	"errors"
	"fmt"

	"groundhandling/internal/core/domain/model/order"
	"groundhandling/internal/core/domain/model/vehicle"
)

// ErrOrderNotDispatchable is returned for orders that are not Active.
var ErrOrderNotDispatchable = errors.New("order is not dispatchable")

// VehicleDispatcher is a domain service that assigns a fleet vehicle to an order
// for the duration of one saga execution.
//
// Key responsibilities:
//   - Validating the order before a vehicle is committed to it
//   - Claiming a vehicle of the order's kind atomically from the pool
//   - Waiting for a free vehicle rather than overbooking or dropping the order
//
// Business rules:
//   - Only Active orders are dispatched
//   - A vehicle is claimed by at most one order at a time
//   - The wait ends only when a vehicle frees up or ctx is done
//
// Example usage:
//
//	dispatcher, _ := services.NewVehicleDispatcher(pool)
//	v, err := dispatcher.Dispatch(ctx, o)
//	if err != nil {
//	    return err
//	}
//	defer dispatcher.Release(v)
type VehicleDispatcher struct {
	pool *vehicle.Pool
}

// NewVehicleDispatcher creates a dispatcher over pool.
func NewVehicleDispatcher(pool *vehicle.Pool) (*VehicleDispatcher, error) {
	if pool == nil {
		return nil, errors.New("vehicle pool is required")
	}
	return &VehicleDispatcher{pool: pool}, nil
}

// Dispatch claims a vehicle for the order.
//
// Parameters:
//   - ctx: bounds the wait for a free vehicle
//   - o: an Active order
//
// Returns:
//   - *vehicle.Vehicle: the claimed vehicle, busy until Release
//   - error: ErrOrderNotDispatchable, vehicle.ErrNoVehicleOfKind or ctx.Err()
func (d *VehicleDispatcher) Dispatch(ctx context.Context, o *order.Order) (*vehicle.Vehicle, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.Active {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotDispatchable, o.ID(), o.Status())
	}

	v, err := d.pool.Acquire(ctx, o.VehicleKind())
	if err != nil {
		return nil, fmt.Errorf("acquire %s for order %s: %w", o.VehicleKind(), o.ID(), err)
	}
	return v, nil
}

// Release returns the vehicle to the pool.
func (d *VehicleDispatcher) Release(v *vehicle.Vehicle) error {
	return d.pool.Release(v)
}

// BusyCount reports the number of claimed vehicles of kind.
func (d *VehicleDispatcher) BusyCount(kind vehicle.Kind) int {
	return d.pool.BusyCount(kind)
}
