package memory

import (
	"context"
	"slices"
	"sync"

	"groundhandling/internal/core/ports"
	"groundhandling/internal/pkg/errs"
)

var _ ports.DeadLetterRepository = (*DeadLetterRepository)(nil)

// DeadLetterRepository keeps dead letters in process memory. It is used when no
// database is configured.
type DeadLetterRepository struct {
	mu      sync.RWMutex
	letters map[string]ports.DeadLetter
}

// NewDeadLetterRepository creates an empty store.
func NewDeadLetterRepository() *DeadLetterRepository {
	return &DeadLetterRepository{letters: make(map[string]ports.DeadLetter)}
}

func (r *DeadLetterRepository) Save(_ context.Context, dl ports.DeadLetter) error {
	if dl.OrderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.letters[dl.OrderID] = cloneDeadLetter(dl)
	return nil
}

func (r *DeadLetterRepository) Get(_ context.Context, orderID string) (ports.DeadLetter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dl, ok := r.letters[orderID]
	if !ok {
		return ports.DeadLetter{}, errs.NewObjectNotFoundError("order id", orderID)
	}
	return cloneDeadLetter(dl), nil
}

func (r *DeadLetterRepository) List(_ context.Context) ([]ports.DeadLetter, error) {
	r.mu.RLock()
	out := make([]ports.DeadLetter, 0, len(r.letters))
	for _, dl := range r.letters {
		out = append(out, cloneDeadLetter(dl))
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b ports.DeadLetter) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *DeadLetterRepository) Delete(_ context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.letters, orderID)
	return nil
}

func cloneDeadLetter(dl ports.DeadLetter) ports.DeadLetter {
	dl.Passengers = slices.Clone(dl.Passengers)
	dl.Journal = slices.Clone(dl.Journal)
	return dl
}
