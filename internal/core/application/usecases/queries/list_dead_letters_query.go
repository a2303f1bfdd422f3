package queries

import (
	"errors"
	"time"

	"groundhandling/internal/pkg/guard"
)

var (
	ErrListDeadLettersQueryIsNotConstructed = errors.New(
		"ListDeadLettersQuery must be created via NewListDeadLettersQuery constructor",
	)
)

// ListDeadLettersQuery retrieves every dead-lettered order, newest first.
type ListDeadLettersQuery struct {
	guard guard.ConstructorGuard
}

// NewListDeadLettersQuery creates a parameterless dead-letter query.
func NewListDeadLettersQuery() ListDeadLettersQuery {
	return ListDeadLettersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListDeadLettersQuery) Validate() error {
	return q.guard.Validate(ErrListDeadLettersQueryIsNotConstructed)
}

// ListDeadLettersQueryResponse describes a dead letter and the saga journal of
// its last execution.
type ListDeadLettersQueryResponse struct {
	OrderID     string
	FlightID    string
	Kind        string
	VehicleKind string
	Attempts    int
	Reason      string
	Journal     []JournalStep
	CreatedAt   time.Time
}

// JournalStep is one step of a saga journal.
type JournalStep struct {
	Step     string
	Status   string
	Duration time.Duration
	Detail   string
}
