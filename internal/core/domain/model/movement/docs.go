// Package movement models one leg of a vehicle's journey as an explicit state
// machine over an immutable route.
//
// The package includes:
//   - State: the task-local cursor over a kernel.Route with stall and rebuild counters
//   - Phase: Traversing -> Stuck -> Rebuilding -> Traversing | Arrived | Aborted
//   - Limits: stall threshold and rebuild budget per leg
//
// Key business rules:
//   - A granted hop advances the cursor and resets the stall counter
//   - StallThreshold consecutive denials make the vehicle Stuck
//   - A Stuck vehicle rebuilds its route at most MaxRebuilds times per leg;
//     the next stall aborts the leg
//   - A leg is Arrived when the route is exhausted; an empty route arrives at once
//
// State is owned by a single goroutine and is not safe for concurrent use.
package movement
