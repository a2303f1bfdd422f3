package kernel

import (
	"errors"
	"fmt"
	"strings"
)

// Route is an immutable ordered sequence of waypoints returned by the dispatcher
// for a (from, to) pair. A route is never mutated: movement consumes it through a
// cursor, and a rebuild replaces it wholesale.
//
// The zero value is an empty route, which means the vehicle is already at its
// destination.
type Route struct {
	waypoints []Point
}

// NewRoute builds a Route from the given waypoints. The slice is copied, so later
// changes by the caller do not affect the route.
//
// Returns:
//   - Route: the constructed route
//   - error: joined validation errors for every zero-value waypoint
func NewRoute(waypoints ...Point) (Route, error) {
	var errList []error
	for i, p := range waypoints {
		if err := p.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("waypoint %d: %w", i, err))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return Route{}, err
	}

	cp := make([]Point, len(waypoints))
	copy(cp, waypoints)
	return Route{waypoints: cp}, nil
}

// RouteFromIDs builds a Route from raw waypoint identifiers.
func RouteFromIDs(ids []string) (Route, error) {
	points := make([]Point, 0, len(ids))
	var errList []error
	for i, id := range ids {
		p, err := NewPoint(id)
		if err != nil {
			errList = append(errList, fmt.Errorf("waypoint %d: %w", i, err))
			continue
		}
		points = append(points, p)
	}
	if err := errors.Join(errList...); err != nil {
		return Route{}, err
	}
	return Route{waypoints: points}, nil
}

// Len returns the number of waypoints.
func (r Route) Len() int {
	return len(r.waypoints)
}

// IsEmpty reports whether the route has no waypoints.
func (r Route) IsEmpty() bool {
	return len(r.waypoints) == 0
}

// At returns the waypoint at index i. It panics when i is out of range, like a slice index.
func (r Route) At(i int) Point {
	return r.waypoints[i]
}

// Last returns the final waypoint, or false for an empty route.
func (r Route) Last() (Point, bool) {
	if len(r.waypoints) == 0 {
		return Point{}, false
	}
	return r.waypoints[len(r.waypoints)-1], true
}

// Contains reports whether p appears anywhere on the route.
func (r Route) Contains(p Point) bool {
	for _, w := range r.waypoints {
		if w.IsEqual(p) {
			return true
		}
	}
	return false
}

// Waypoints returns a copy of the waypoints.
func (r Route) Waypoints() []Point {
	cp := make([]Point, len(r.waypoints))
	copy(cp, r.waypoints)
	return cp
}

// String renders the route as "a -> b -> c".
func (r Route) String() string {
	ids := make([]string, len(r.waypoints))
	for i, w := range r.waypoints {
		ids[i] = w.id
	}
	return strings.Join(ids, " -> ")
}
