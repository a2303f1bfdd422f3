package ports

import (
	"context"
	"time"
)

// DeadLetter is the durable record of an order that failed permanently or
// exhausted its retry budget.
type DeadLetter struct {
	OrderID     string
	FlightID    string
	Kind        string
	VehicleKind string
	Passengers  []string
	Attempts    int
	Reason      string
	Journal     []JournalEntry
	CreatedAt   time.Time
}

// JournalEntry is one recorded saga step.
type JournalEntry struct {
	Step     string
	Status   string
	Duration time.Duration
	Detail   string
}

// DeadLetterRepository stores dead letters.
type DeadLetterRepository interface {
	// Save inserts or replaces the dead letter of an order.
	Save(ctx context.Context, dl DeadLetter) error

	// Get returns the dead letter of orderID, or errs.ErrObjectNotFound.
	Get(ctx context.Context, orderID string) (DeadLetter, error)

	// List returns all dead letters, newest first.
	List(ctx context.Context) ([]DeadLetter, error)

	// Delete removes the dead letter of orderID. Deleting an absent record is not an error.
	Delete(ctx context.Context, orderID string) error
}
