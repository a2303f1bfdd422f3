package order

import (
	"fmt"

	"groundhandling/internal/pkg/errs"
)

// Status represents the lifecycle state of an order in the active registry.
//
// State transitions:
//
//	Active ──┬──> Completed
//	         │
//	         └──> DeadLettered ──> Active
//	                      (manual retry)
//
// Completed orders are removed from the registry right after the transition;
// dead-lettered orders stay visible until they are retried or removed.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Active orders are queued or have a saga running.
	Active

	// Completed orders finished every saga step.
	Completed

	// DeadLettered orders failed permanently or exhausted their retry budget.
	DeadLettered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "Unknown",
		Active:       "Active",
		Completed:    "Completed",
		DeadLettered: "DeadLettered",
	}
}

// Validate checks if the Status value is valid. Unknown is invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Complete transitions Active -> Completed.
//
// Returns:
//   - (Completed, nil) on a valid transition
//   - (0, error) from any other status
func (s Status) Complete() (Status, error) {
	if s != Active {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
	return Completed, nil
}

// DeadLetter transitions Active -> DeadLettered.
func (s Status) DeadLetter() (Status, error) {
	if s != Active {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to dead-letter", s.String()),
		)
	}
	return DeadLettered, nil
}

// Reactivate transitions DeadLettered -> Active.
func (s Status) Reactivate() (Status, error) {
	if s != DeadLettered {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to reactivate", s.String()),
		)
	}
	return Active, nil
}
