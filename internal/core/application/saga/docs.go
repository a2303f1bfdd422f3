// Package saga runs the per-order dispatch workflow.
//
// Two fixed templates exist. Discharge drives a vehicle from the garage to the
// aircraft, unloads, reports, and returns to the garage with a drop-off stop at
// terminal-1. Load drives to terminal-2, picks passengers up, delivers them to
// the aircraft, reports, and returns to the garage.
//
// A failed step ends the execution; nothing already done is undone. The vehicle
// is released on every outcome, and every execution runs under a deadline that
// aborts whichever step is running.
package saga
