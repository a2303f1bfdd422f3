package memory

import (
	"context"
	"slices"
	"sync"

	"groundhandling/internal/core/ports"
	"groundhandling/internal/pkg/errs"
)

var _ ports.ManifestBuffer = (*ManifestBuffer)(nil)

type manifestKey struct {
	kind     ports.CargoKind
	flightID string
}

// ManifestBuffer keeps per-flight passenger and baggage lists.
type ManifestBuffer struct {
	mu      sync.Mutex
	buffers map[manifestKey][]string
}

// NewManifestBuffer creates an empty buffer.
func NewManifestBuffer() *ManifestBuffer {
	return &ManifestBuffer{buffers: make(map[manifestKey][]string)}
}

func (b *ManifestBuffer) Append(
	_ context.Context,
	kind ports.CargoKind,
	flightID, itemID string,
	batchSize int,
) ([]string, error) {
	if batchSize < 1 {
		return nil, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := manifestKey{kind: kind, flightID: flightID}
	items := append(b.buffers[key], itemID)
	if len(items) < batchSize {
		b.buffers[key] = items
		return nil, nil
	}
	delete(b.buffers, key)
	return items, nil
}

func (b *ManifestBuffer) Restore(_ context.Context, kind ports.CargoKind, flightID string, batch []string) error {
	if len(batch) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := manifestKey{kind: kind, flightID: flightID}
	b.buffers[key] = append(slices.Clone(batch), b.buffers[key]...)
	return nil
}

func (b *ManifestBuffer) Pending(_ context.Context, kind ports.CargoKind, flightID string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buffers[manifestKey{kind: kind, flightID: flightID}]), nil
}
