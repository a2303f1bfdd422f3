package ports

import "context"

// CargoKind distinguishes the per-flight accumulators.
type CargoKind string

const (
	CargoPassengers CargoKind = "passengers"
	CargoBaggage    CargoKind = "baggage"
)

// ManifestBuffer accumulates passenger and baggage identifiers per flight until
// a batch is large enough to dispatch a vehicle.
type ManifestBuffer interface {
	// Append adds itemID to the flight's buffer of kind. When the buffer reaches
	// batchSize it is emptied and its contents returned, oldest first;
	// otherwise the returned batch is nil.
	Append(ctx context.Context, kind CargoKind, flightID, itemID string, batchSize int) (batch []string, err error)

	// Restore puts a batch returned by Append back in front of the flight's
	// buffer, ahead of items appended since. Used when the batch could not be
	// dispatched.
	Restore(ctx context.Context, kind CargoKind, flightID string, batch []string) error

	// Pending returns the number of buffered items of kind for flightID.
	Pending(ctx context.Context, kind CargoKind, flightID string) (int, error)
}
