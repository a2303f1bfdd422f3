package kernel

import (
	"fmt"
	"strings"

	"groundhandling/internal/pkg/errs"
	"groundhandling/internal/pkg/guard"
)

// Well-known apron points. Every dispatch cycle starts and ends at GarageID.
const (
	GarageID    = "garage"
	Terminal1ID = "terminal-1"
	Terminal2ID = "terminal-2"

	aircraftPrefix = "plane-"
)

// ErrPointIsNotConstructed is returned when a zero-value Point is used.
// Points must be created with NewPoint, AircraftPoint or ParkedAircraft.
var ErrPointIsNotConstructed = errs.NewValueIsRequiredError(
	"point must be created via NewPoint, AircraftPoint or ParkedAircraft constructors")

// Point is a routable waypoint on the apron: the garage, a terminal, a taxiway
// node or a parked aircraft. Point is an immutable value object; two points are
// equal when their identifiers are equal.
//
// Aircraft points carry the flight they serve, so that route requests towards an
// aircraft go to the dispatcher's plane endpoint.
//
// Example:
//
//	p, err := kernel.NewPoint("taxiway-4")
//	if err != nil {
//	    // Handle validation error
//	}
//	plane, _ := kernel.AircraftPoint("42")
//	fmt.Println(plane)             // Output: plane-42
//	fmt.Println(plane.IsAircraft()) // Output: true
type Point struct {
	id       string
	flightID string
	guard    guard.ConstructorGuard
}

// NewPoint creates a Point from a waypoint identifier as returned by the
// ground-control dispatcher. Surrounding whitespace is trimmed. Identifiers of
// the form "plane-<flight>" are recognised as aircraft points.
//
// Parameters:
//   - id: non-empty waypoint identifier
//
// Returns:
//   - Point: the constructed point
//   - error: ValueIsRequiredError if id is blank
func NewPoint(id string) (Point, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Point{}, errs.NewValueIsRequiredError("point id")
	}

	p := Point{id: id, guard: guard.NewConstructorGuard()}
	if flight, ok := strings.CutPrefix(id, aircraftPrefix); ok && flight != "" {
		p.flightID = flight
	}
	return p, nil
}

// AircraftPoint creates the point of the aircraft serving flightID.
//
// Example:
//
//	plane, err := kernel.AircraftPoint("SU-1402")
//	// plane.ID() == "plane-SU-1402", plane.FlightID() == "SU-1402"
func AircraftPoint(flightID string) (Point, error) {
	flightID = strings.TrimSpace(flightID)
	if flightID == "" {
		return Point{}, errs.NewValueIsRequiredError("flight id")
	}
	return Point{
		id:       aircraftPrefix + flightID,
		flightID: flightID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// ParkedAircraft creates the point of aircraft planeID serving flightID, as
// resolved by the ground service. Route requests address the aircraft by planeID.
//
// Example:
//
//	plane, err := kernel.ParkedAircraft("A320-7", "SU-1402")
//	// plane.ID() == "A320-7", plane.FlightID() == "SU-1402"
func ParkedAircraft(planeID, flightID string) (Point, error) {
	planeID = strings.TrimSpace(planeID)
	if planeID == "" {
		return Point{}, errs.NewValueIsRequiredError("plane id")
	}
	flightID = strings.TrimSpace(flightID)
	if flightID == "" {
		return Point{}, errs.NewValueIsRequiredError("flight id")
	}
	return Point{id: planeID, flightID: flightID, guard: guard.NewConstructorGuard()}, nil
}

// Garage returns the garage point.
func Garage() Point {
	return Point{id: GarageID, guard: guard.NewConstructorGuard()}
}

// Terminal1 returns the arrival terminal point used as the discharge drop-off.
func Terminal1() Point {
	return Point{id: Terminal1ID, guard: guard.NewConstructorGuard()}
}

// Terminal2 returns the departure terminal point used as the load pick-up.
func Terminal2() Point {
	return Point{id: Terminal2ID, guard: guard.NewConstructorGuard()}
}

// Validate reports whether the Point was created by a constructor.
func (p Point) Validate() error {
	return p.guard.Validate(ErrPointIsNotConstructed)
}

// ID returns the waypoint identifier.
func (p Point) ID() string {
	return p.id
}

// FlightID returns the flight of an aircraft point, or "" for any other point.
func (p Point) FlightID() string {
	return p.flightID
}

// IsAircraft reports whether the point designates a parked aircraft.
func (p Point) IsAircraft() bool {
	return p.flightID != ""
}

// IsEqual compares two points by identifier.
func (p Point) IsEqual(other Point) bool {
	return p.id == other.id
}

// String implements fmt.Stringer.
func (p Point) String() string {
	if p.id == "" {
		return fmt.Sprintf("%T(<zero>)", p)
	}
	return p.id
}
