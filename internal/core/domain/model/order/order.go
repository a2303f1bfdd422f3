package order

import (
	"errors"
	"slices"
	"strings"

	"groundhandling/internal/core/domain/model/vehicle"
	"groundhandling/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrLoadWithoutPassengers is returned for a load order with an empty passenger list.
	ErrLoadWithoutPassengers = errs.NewValueIsRequiredErrorWithCause(
		"passengers", errors.New("a load order must carry at least one passenger"))
)

// Order is a single dispatch request: move passengers between a terminal and the
// aircraft serving a flight, using one vehicle of the requested kind.
//
// Order follows these invariants:
//   - ID and flight ID are non-blank
//   - Kind and vehicle kind are valid
//   - A Load order has at least one passenger
//   - Status transitions follow Status rules
//   - Can only be created through NewOrder
//
// Orders are not safe for concurrent mutation. The registry serialises every
// change; sagas work on their own copy obtained through Clone.
type Order struct {
	// id is the caller supplied registry key
	id string

	// flightID identifies the aircraft the order targets
	flightID string

	// kind selects the saga template
	kind Kind

	// vehicleKind is the kind of vehicle the saga acquires
	vehicleKind vehicle.Kind

	// passengers are the identifiers carried, in order
	passengers []string

	// attempts counts finished saga executions that failed transiently
	attempts int

	// status represents the current state in the order lifecycle
	status Status

	// lastError keeps the reason of the most recent failed execution
	lastError string

	// generation is stamped by the registry on insert; zero means not registered
	generation uint64

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates a new Active order.
//
// Parameters:
//   - id: caller supplied identifier (non-blank)
//   - flightID: target flight (non-blank)
//   - kind: Load or Discharge
//   - vehicleKind: kind of vehicle to use
//   - passengers: passenger identifiers; required for Load
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: joined validation errors otherwise
//
// Example:
//
//	o, err := order.NewOrder("17", "SU-1402", order.Load, vehicle.Bus, []string{"p1", "p2"})
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id, flightID string, kind Kind, vehicleKind vehicle.Kind, passengers []string) (*Order, error) {
	o := &Order{
		status:        Active,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setFlightID(flightID),
		o.setKind(kind),
		o.setVehicleKind(vehicleKind),
		o.setPassengers(kind, passengers),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order identifier.
func (o *Order) ID() string {
	return o.id
}

// FlightID returns the target flight.
func (o *Order) FlightID() string {
	return o.flightID
}

// Kind returns the saga kind.
func (o *Order) Kind() Kind {
	return o.kind
}

// VehicleKind returns the kind of vehicle required.
func (o *Order) VehicleKind() vehicle.Kind {
	return o.vehicleKind
}

// Passengers returns a copy of the passenger identifiers.
func (o *Order) Passengers() []string {
	return slices.Clone(o.passengers)
}

// Attempts returns the number of transiently failed executions.
func (o *Order) Attempts() int {
	return o.attempts
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// LastError returns the reason of the most recent failure, or "".
func (o *Order) LastError() string {
	return o.lastError
}

// RecordFailure counts a failed execution and remembers its cause.
// It is a no-op for orders that are not Active.
func (o *Order) RecordFailure(cause error) {
	if o.status != Active {
		return
	}
	o.attempts++
	if cause != nil {
		o.lastError = cause.Error()
	}
}

// HasAttemptsLeft reports whether another execution fits in a budget of maxAttempts.
func (o *Order) HasAttemptsLeft(maxAttempts int) bool {
	return o.attempts < maxAttempts
}

// Complete marks the order as Completed.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// DeadLetter marks the order as DeadLettered, keeping cause as its last error.
func (o *Order) DeadLetter(cause error) error {
	newStatus, err := o.status.DeadLetter()
	if err != nil {
		return err
	}
	o.status = newStatus
	if cause != nil {
		o.lastError = cause.Error()
	}
	return nil
}

// Reactivate puts a dead-lettered order back to Active with a fresh retry budget.
func (o *Order) Reactivate() error {
	newStatus, err := o.status.Reactivate()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.attempts = 0
	return nil
}

// Generation identifies one registration of the order ID. Removing an order and
// submitting the same ID again yields a new generation, so work started for the
// old registration can tell that it no longer owns the ID.
func (o *Order) Generation() uint64 {
	return o.generation
}

// AssignGeneration is called by the registry when the order is inserted.
func (o *Order) AssignGeneration(generation uint64) {
	o.generation = generation
}

// Clone returns an independent copy of the order.
func (o *Order) Clone() *Order {
	cp := *o
	cp.passengers = slices.Clone(o.passengers)
	return &cp
}

func (o *Order) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	o.id = id
	return nil
}

func (o *Order) setFlightID(flightID string) error {
	flightID = strings.TrimSpace(flightID)
	if flightID == "" {
		return errs.NewValueIsRequiredError("flight id")
	}
	o.flightID = flightID
	return nil
}

func (o *Order) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	o.kind = kind
	return nil
}

func (o *Order) setVehicleKind(kind vehicle.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	o.vehicleKind = kind
	return nil
}

func (o *Order) setPassengers(kind Kind, passengers []string) error {
	if kind == Load && len(passengers) == 0 {
		return ErrLoadWithoutPassengers
	}
	o.passengers = slices.Clone(passengers)
	return nil
}
