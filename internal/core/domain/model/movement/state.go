package movement

import (
	"errors"
	"fmt"

	"groundhandling/internal/core/domain/model/kernel"
	"groundhandling/internal/pkg/errs"
)

const (
	// DefaultStallThreshold is the number of consecutive denials that make a vehicle stuck.
	DefaultStallThreshold = 5
	// DefaultMaxRebuilds is the number of route rebuilds allowed per leg.
	DefaultMaxRebuilds = 3
)

// ErrInvalidTransition is returned when an operation does not fit the current phase.
var ErrInvalidTransition = errors.New("invalid movement state transition")

// Limits bounds the patience of a single leg.
type Limits struct {
	StallThreshold int
	MaxRebuilds    int
}

// DefaultLimits returns the standard limits: 5 denials per stall, 3 rebuilds per leg.
func DefaultLimits() Limits {
	return Limits{StallThreshold: DefaultStallThreshold, MaxRebuilds: DefaultMaxRebuilds}
}

// Validate checks that the stall threshold is positive and the rebuild budget is not negative.
func (l Limits) Validate() error {
	return errors.Join(
		validatePositive("stall threshold", l.StallThreshold),
		validateNonNegative("max rebuilds", l.MaxRebuilds),
	)
}

// State is the cursor of one leg from its start point to its destination.
//
// The route is never modified: the cursor points at the next waypoint to
// request, and a rebuild swaps the whole route and resets the cursor.
//
// Example:
//
//	st, _ := movement.NewState(kernel.Garage(), plane, route, movement.DefaultLimits())
//	for !st.Phase().IsFinal() {
//	    next, _ := st.Next()
//	    if granted(st.Current(), next) {
//	        _ = st.Advance()
//	        continue
//	    }
//	    if phase, _ := st.Deny(); phase == movement.Stuck {
//	        _ = st.BeginRebuild()
//	        _ = st.Rebuild(fetchRoute(st.Current(), st.Destination()))
//	    }
//	}
type State struct {
	current     kernel.Point
	destination kernel.Point
	route       kernel.Route
	cursor      int
	denials     int
	rebuilds    int
	phase       Phase
	limits      Limits
}

// NewState starts a leg at start towards destination along route.
//
// A route whose first waypoint equals start begins past that waypoint, since
// the vehicle already stands there. An empty route yields an Arrived state.
//
// Returns:
//   - *State: the leg in Traversing or Arrived phase
//   - error: joined validation errors for points and limits
func NewState(start, destination kernel.Point, route kernel.Route, limits Limits) (*State, error) {
	if err := errors.Join(
		start.Validate(),
		destination.Validate(),
		limits.Validate(),
	); err != nil {
		return nil, err
	}

	s := &State{
		current:     start,
		destination: destination,
		limits:      limits,
	}
	s.load(route)
	return s, nil
}

// Current returns the last confirmed waypoint.
func (s *State) Current() kernel.Point {
	return s.current
}

// Destination returns the logical end of the leg used for rebuild requests.
func (s *State) Destination() kernel.Point {
	return s.destination
}

// Route returns the route currently being traversed.
func (s *State) Route() kernel.Route {
	return s.route
}

// Next returns the waypoint to request permission for, or false once the route is exhausted.
func (s *State) Next() (kernel.Point, bool) {
	if s.cursor >= s.route.Len() {
		return kernel.Point{}, false
	}
	return s.route.At(s.cursor), true
}

// Remaining returns the number of waypoints still to confirm.
func (s *State) Remaining() int {
	return s.route.Len() - s.cursor
}

// Phase returns the current phase.
func (s *State) Phase() Phase {
	return s.phase
}

// Denials returns the number of consecutive denials on the current hop.
func (s *State) Denials() int {
	return s.denials
}

// Rebuilds returns how many times the route was replaced on this leg.
func (s *State) Rebuilds() int {
	return s.rebuilds
}

// Advance confirms the hop to the next waypoint.
func (s *State) Advance() error {
	if s.phase != Traversing {
		return s.transitionError("advance")
	}
	next, ok := s.Next()
	if !ok {
		return s.transitionError("advance")
	}

	s.current = next
	s.cursor++
	s.denials = 0
	if s.cursor >= s.route.Len() {
		s.phase = Arrived
	}
	return nil
}

// Deny records a refused permission for the next hop and returns the resulting phase:
// Traversing while patience lasts, Stuck when the threshold is hit with rebuilds
// left, Aborted when the rebuild budget is already spent.
func (s *State) Deny() (Phase, error) {
	if s.phase != Traversing {
		return s.phase, s.transitionError("deny")
	}

	s.denials++
	if s.denials < s.limits.StallThreshold {
		return s.phase, nil
	}
	if s.rebuilds >= s.limits.MaxRebuilds {
		s.phase = Aborted
	} else {
		s.phase = Stuck
	}
	return s.phase, nil
}

// BeginRebuild moves a Stuck leg to Rebuilding.
func (s *State) BeginRebuild() error {
	if s.phase != Stuck {
		return s.transitionError("begin rebuild")
	}
	s.phase = Rebuilding
	return nil
}

// Rebuild installs a replacement route from the current point and resumes traversal.
func (s *State) Rebuild(route kernel.Route) error {
	if s.phase != Rebuilding {
		return s.transitionError("rebuild")
	}
	s.rebuilds++
	s.load(route)
	return nil
}

// Abort ends the leg as failed. It is a no-op once the leg is final.
func (s *State) Abort() {
	if !s.phase.IsFinal() {
		s.phase = Aborted
	}
}

func (s *State) load(route kernel.Route) {
	s.route = route
	s.cursor = 0
	s.denials = 0
	if first, ok := s.Next(); ok && first.IsEqual(s.current) {
		s.cursor++
	}
	if s.cursor >= s.route.Len() {
		s.phase = Arrived
		return
	}
	s.phase = Traversing
}

func (s *State) transitionError(op string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, op, s.phase)
}

func validatePositive(name string, v int) error {
	if v <= 0 {
		return errs.NewValueIsOutOfRangeError(name, v, 1, "unbounded")
	}
	return nil
}

func validateNonNegative(name string, v int) error {
	if v < 0 {
		return errs.NewValueIsOutOfRangeError(name, v, 0, "unbounded")
	}
	return nil
}
