package queries

import (
	"context"

	"groundhandling/internal/core/ports"
)

// ListDeadLettersQueryHandler reads the dead-letter repository.
type ListDeadLettersQueryHandler struct {
	deadLetters ports.DeadLetterRepository
}

// NewListDeadLettersQueryHandler creates a handler over deadLetters.
func NewListDeadLettersQueryHandler(deadLetters ports.DeadLetterRepository) ListDeadLettersQueryHandler {
	return ListDeadLettersQueryHandler{deadLetters: deadLetters}
}

// Handle returns all dead letters, newest first.
func (h ListDeadLettersQueryHandler) Handle(
	ctx context.Context,
	query ListDeadLettersQuery,
) ([]ListDeadLettersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	letters, err := h.deadLetters.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ListDeadLettersQueryResponse, 0, len(letters))
	for _, dl := range letters {
		journal := make([]JournalStep, 0, len(dl.Journal))
		for _, e := range dl.Journal {
			journal = append(journal, JournalStep(e))
		}
		resp = append(resp, ListDeadLettersQueryResponse{
			OrderID:     dl.OrderID,
			FlightID:    dl.FlightID,
			Kind:        dl.Kind,
			VehicleKind: dl.VehicleKind,
			Attempts:    dl.Attempts,
			Reason:      dl.Reason,
			Journal:     journal,
			CreatedAt:   dl.CreatedAt,
		})
	}

	return resp, nil
}
