package saga

import (
	"context"
	"errors"
	"time"

	"groundhandling/internal/core/application/gateway"
)

// Outcome classifies a finished execution.
type Outcome int

const (
	// Completed means every step succeeded.
	Completed Outcome = iota + 1
	// TransientFailure means a step failed for a reason worth another attempt:
	// an unreachable collaborator or the order deadline.
	TransientFailure
	// PermanentFailure means a step failed for a reason another attempt would not fix.
	PermanentFailure
)

var outcomeNames = map[Outcome]string{
	Completed:        "completed",
	TransientFailure: "transient_failure",
	PermanentFailure: "permanent_failure",
}

// String implements fmt.Stringer.
func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "unknown"
}

// Classify maps a step error to an Outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return Completed
	case errors.Is(err, gateway.ErrTransport),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return TransientFailure
	default:
		return PermanentFailure
	}
}

// StepStatus is the result of a single step.
type StepStatus string

const (
	StepSucceeded StepStatus = "succeeded"
	StepFailed    StepStatus = "failed"
)

// StepResult is one journal line.
type StepResult struct {
	Name     string
	Status   StepStatus
	Duration time.Duration
	Detail   string
}

// Result describes a finished execution.
type Result struct {
	OrderID  string
	Template string
	Outcome  Outcome
	// Err is the error of the failed step, nil on Completed.
	Err error
	// Vehicle is the name of the vehicle used, "" if none was acquired.
	Vehicle string
	Journal []StepResult
}
