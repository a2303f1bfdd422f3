package ports

import (
	"context"

	"groundhandling/internal/core/domain/model/kernel"
	"groundhandling/internal/core/domain/model/vehicle"
)

// Outbound capability contracts of the four collaborating services.
//
// Every call issues exactly one request. A false result is a negative business
// answer (non-success status); a non-nil error is a transport fault (network,
// timeout, undecodable payload). Retry policy lives above these contracts.

// GroundControl is the dispatcher owning the garage, routes and movement permissions.
type GroundControl interface {
	// RequestGarageExit asks for permission to leave the garage with a vehicle of kind.
	RequestGarageExit(ctx context.Context, kind vehicle.Kind) (bool, error)

	// RequestRoute asks for a route from one point to another.
	// ok is false when the dispatcher has no route.
	RequestRoute(ctx context.Context, from, to kernel.Point) (route kernel.Route, ok bool, err error)

	// RequestMovementPermission asks to move a single hop.
	RequestMovementPermission(ctx context.Context, from, to kernel.Point) (bool, error)

	// NotifyGarageFree tells the dispatcher that a vehicle returned and frees point.
	NotifyGarageFree(ctx context.Context, point kernel.Point) (bool, error)
}

// Board is the aircraft board service.
type Board interface {
	// NotifyUnload reports that passengers of flightID were taken off the aircraft.
	NotifyUnload(ctx context.Context, flightID string) (bool, error)

	// NotifyLoad reports that passengers were delivered to the aircraft of flightID.
	NotifyLoad(ctx context.Context, flightID string, passengers []string) (bool, error)
}

// PassengerRegistry tracks passengers between check-in and boarding.
type PassengerRegistry interface {
	// NotifyTransport reports that passengers were picked up at the terminal.
	NotifyTransport(ctx context.Context, passengers []string) (bool, error)
}

// Aircraft is the parking record of the aircraft serving a flight.
type Aircraft struct {
	PlaneID string
	Gate    string
}

// AircraftDirectory resolves which aircraft serves a flight.
type AircraftDirectory interface {
	// ResolveAircraft looks up the aircraft of flightID.
	// ok is false when the service knows no aircraft for the flight.
	ResolveAircraft(ctx context.Context, flightID string) (aircraft Aircraft, ok bool, err error)
}

// Reporter receives completion reports for the dispatch authority.
type Reporter interface {
	// ReportCompletion reports that orderID reached phase.
	ReportCompletion(ctx context.Context, orderID, phase string) (bool, error)
}
