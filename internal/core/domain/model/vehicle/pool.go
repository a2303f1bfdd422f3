package vehicle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"groundhandling/internal/core/domain/model/kernel"
	"groundhandling/internal/pkg/errs"
)

// DefaultPollInterval is how often Acquire re-checks the fleet while waiting.
const DefaultPollInterval = 200 * time.Millisecond

var (
	// ErrNoVehicleOfKind is returned when the fleet has no vehicle of the requested
	// kind at all, so waiting could never succeed.
	ErrNoVehicleOfKind = errors.New("fleet has no vehicle of requested kind")
	// ErrForeignVehicle is returned when releasing a vehicle that is not part of the pool.
	ErrForeignVehicle = errors.New("vehicle does not belong to the pool")
)

// Snapshot is a read-only view of one vehicle.
type Snapshot struct {
	ID   string
	Name string
	Kind Kind
	Busy bool
}

// Pool hands out vehicles of a fixed fleet. The fleet itself never changes after
// construction; only busy flags do, and only atomically, so Pool needs no lock.
//
// Example:
//
//	pool, _ := vehicle.NewFleet(map[vehicle.Kind]int{vehicle.Bus: 2}, 0)
//	v, err := pool.Acquire(ctx, vehicle.Bus)
//	if err != nil {
//	    return err // ctx done while waiting
//	}
//	defer pool.Release(v)
type Pool struct {
	byKind       map[Kind][]*Vehicle
	all          []*Vehicle
	pollInterval time.Duration
}

// NewPool builds a pool over the given vehicles. A non-positive pollInterval
// selects DefaultPollInterval.
func NewPool(vehicles []*Vehicle, pollInterval time.Duration) (*Pool, error) {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	p := &Pool{
		byKind:       make(map[Kind][]*Vehicle),
		pollInterval: pollInterval,
	}
	seen := make(map[string]struct{}, len(vehicles))
	for i, v := range vehicles {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("vehicle %d: %w", i, err)
		}
		if _, dup := seen[v.ID().String()]; dup {
			return nil, errs.NewObjectAlreadyExistsError("vehicle id", v.ID().String())
		}
		seen[v.ID().String()] = struct{}{}
		p.byKind[v.Kind()] = append(p.byKind[v.Kind()], v)
		p.all = append(p.all, v)
	}
	return p, nil
}

// NewFleet creates count fresh vehicles per kind and wraps them in a pool.
func NewFleet(counts map[Kind]int, pollInterval time.Duration) (*Pool, error) {
	var vehicles []*Vehicle
	for _, kind := range Kinds() {
		n := counts[kind]
		if n < 0 {
			return nil, errs.NewValueIsOutOfRangeError("vehicle count", n, 0, "unbounded")
		}
		for i := range n {
			v, err := NewVehicle(kernel.NewUUID(), fmt.Sprintf("%s-%d", kind, i+1), kind)
			if err != nil {
				return nil, err
			}
			vehicles = append(vehicles, v)
		}
	}
	return NewPool(vehicles, pollInterval)
}

// TryAcquire claims the first free vehicle of kind without waiting.
func (p *Pool) TryAcquire(kind Kind) (*Vehicle, bool) {
	for _, v := range p.byKind[kind] {
		if v.tryClaim() {
			return v, true
		}
	}
	return nil, false
}

// Acquire claims a vehicle of kind, polling until one is free or ctx is done.
//
// Returns:
//   - *Vehicle: the claimed vehicle, busy until Release
//   - error: ErrNoVehicleOfKind for an empty kind, ctx.Err() when ctx ends first
func (p *Pool) Acquire(ctx context.Context, kind Kind) (*Vehicle, error) {
	if len(p.byKind[kind]) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoVehicleOfKind, kind)
	}
	if v, ok := p.TryAcquire(kind); ok {
		return v, nil
	}

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			if v, ok := p.TryAcquire(kind); ok {
				return v, nil
			}
		}
	}
}

// Release frees a vehicle previously returned by Acquire or TryAcquire.
// It is immediately acquirable again.
func (p *Pool) Release(v *Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if !p.owns(v) {
		return ErrForeignVehicle
	}
	return v.free()
}

// Size returns the number of vehicles of kind.
func (p *Pool) Size(kind Kind) int {
	return len(p.byKind[kind])
}

// BusyCount returns how many vehicles of kind are claimed right now.
func (p *Pool) BusyCount(kind Kind) int {
	n := 0
	for _, v := range p.byKind[kind] {
		if v.IsBusy() {
			n++
		}
	}
	return n
}

// Snapshot lists every vehicle in fleet order.
func (p *Pool) Snapshot() []Snapshot {
	out := make([]Snapshot, 0, len(p.all))
	for _, v := range p.all {
		out = append(out, Snapshot{
			ID:   v.ID().String(),
			Name: v.Name(),
			Kind: v.Kind(),
			Busy: v.IsBusy(),
		})
	}
	return out
}

func (p *Pool) owns(v *Vehicle) bool {
	for _, candidate := range p.byKind[v.Kind()] {
		if candidate == v {
			return true
		}
	}
	return false
}
