package vehicle

import (
	"errors"
	"fmt"
	"sync/atomic"

	"groundhandling/internal/core/domain/model/kernel"
	"groundhandling/internal/pkg/guard"
)

var (
	// ErrVehicleIsNotConstructed is returned when using an improperly initialized Vehicle.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
	// ErrVehicleNotBusy is returned when releasing a vehicle that is already free.
	ErrVehicleNotBusy = errors.New("vehicle is not busy")
)

// Vehicle is a single bus or baggage cart. Identity and kind never change; the
// busy flag is flipped only through compare-and-set so that two sagas starting
// at the same moment can never both claim it.
//
// Vehicles must not be copied after construction.
type Vehicle struct {
	id    kernel.UUID
	name  string
	kind  Kind
	busy  atomic.Bool
	guard guard.ConstructorGuard
}

// NewVehicle creates a free vehicle.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: display name, defaults to "<kind>-<first 8 id chars>" when blank
//   - kind: Bus or BaggageCart
//
// Returns:
//   - *Vehicle: the created vehicle
//   - error: joined validation errors
func NewVehicle(id kernel.UUID, name string, kind Kind) (*Vehicle, error) {
	if err := errors.Join(id.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	if name == "" {
		name = fmt.Sprintf("%s-%s", kind, id.String()[:8])
	}
	return &Vehicle{
		id:    id,
		name:  name,
		kind:  kind,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the vehicle was created with NewVehicle.
func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// ID returns the vehicle identifier.
func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

// Name returns the display name.
func (v *Vehicle) Name() string {
	return v.name
}

// Kind returns the vehicle kind.
func (v *Vehicle) Kind() Kind {
	return v.kind
}

// IsBusy reports whether the vehicle is currently claimed.
func (v *Vehicle) IsBusy() bool {
	return v.busy.Load()
}

// IsEqual compares vehicles by identifier.
func (v *Vehicle) IsEqual(other *Vehicle) bool {
	return other != nil && v.id.IsEqual(other.id)
}

// tryClaim flips the vehicle from free to busy. It reports false if another
// caller got there first.
func (v *Vehicle) tryClaim() bool {
	return v.busy.CompareAndSwap(false, true)
}

// free flips the vehicle from busy to free.
func (v *Vehicle) free() error {
	if !v.busy.CompareAndSwap(true, false) {
		return ErrVehicleNotBusy
	}
	return nil
}
