package vehicle_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"groundhandling/internal/core/domain/model/kernel"
	"groundhandling/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFleet(t *testing.T, buses, carts int) *vehicle.Pool {
	t.Helper()
	pool, err := vehicle.NewFleet(map[vehicle.Kind]int{
		vehicle.Bus:         buses,
		vehicle.BaggageCart: carts,
	}, time.Millisecond)
	require.NoError(t, err)
	return pool
}

func TestPool_TryAcquire(t *testing.T) {
	t.Run("should hand out each vehicle once", func(t *testing.T) {
		pool := newFleet(t, 2, 0)

		v1, ok1 := pool.TryAcquire(vehicle.Bus)
		v2, ok2 := pool.TryAcquire(vehicle.Bus)
		_, ok3 := pool.TryAcquire(vehicle.Bus)

		require.True(t, ok1)
		require.True(t, ok2)
		assert.False(t, ok3)
		assert.False(t, v1.IsEqual(v2))
		assert.Equal(t, 2, pool.BusyCount(vehicle.Bus))
	})

	t.Run("should keep kinds apart", func(t *testing.T) {
		pool := newFleet(t, 1, 0)

		_, ok := pool.TryAcquire(vehicle.BaggageCart)

		assert.False(t, ok)
		assert.Zero(t, pool.BusyCount(vehicle.Bus))
	})

	t.Run("released vehicle should be immediately acquirable", func(t *testing.T) {
		pool := newFleet(t, 1, 0)
		v, ok := pool.TryAcquire(vehicle.Bus)
		require.True(t, ok)
		assert.True(t, v.IsBusy())

		require.NoError(t, pool.Release(v))

		again, ok := pool.TryAcquire(vehicle.Bus)
		require.True(t, ok)
		assert.True(t, again.IsEqual(v))
	})
}

func TestPool_ConcurrentAcquire(t *testing.T) {
	const (
		fleetSize = 3
		workers   = 50
	)
	pool := newFleet(t, fleetSize, 0)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		held    = map[string]int{}
		maxBusy atomic.Int32
		busy    atomic.Int32
	)
	start := make(chan struct{})

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			v, err := pool.Acquire(context.Background(), vehicle.Bus)
			if !assert.NoError(t, err) {
				return
			}
			n := busy.Add(1)
			for {
				m := maxBusy.Load()
				if n <= m || maxBusy.CompareAndSwap(m, n) {
					break
				}
			}

			mu.Lock()
			held[v.ID().String()]++
			assert.Equal(t, 1, held[v.ID().String()], "vehicle assigned twice")
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			held[v.ID().String()]--
			mu.Unlock()
			busy.Add(-1)
			assert.NoError(t, pool.Release(v))
		}()
	}
	close(start)
	wg.Wait()

	assert.LessOrEqual(t, int(maxBusy.Load()), fleetSize)
	assert.Zero(t, pool.BusyCount(vehicle.Bus))
}

func TestPool_Acquire(t *testing.T) {
	t.Run("should wait for a release", func(t *testing.T) {
		pool := newFleet(t, 1, 0)
		first, ok := pool.TryAcquire(vehicle.Bus)
		require.True(t, ok)

		go func() {
			time.Sleep(10 * time.Millisecond)
			_ = pool.Release(first)
		}()

		v, err := pool.Acquire(context.Background(), vehicle.Bus)

		require.NoError(t, err)
		assert.True(t, v.IsEqual(first))
	})

	t.Run("should stop waiting when context ends", func(t *testing.T) {
		pool := newFleet(t, 1, 0)
		_, ok := pool.TryAcquire(vehicle.Bus)
		require.True(t, ok)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		v, err := pool.Acquire(ctx, vehicle.Bus)

		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Nil(t, v)
	})

	t.Run("should fail fast without vehicles of kind", func(t *testing.T) {
		pool := newFleet(t, 1, 0)

		_, err := pool.Acquire(context.Background(), vehicle.BaggageCart)

		require.ErrorIs(t, err, vehicle.ErrNoVehicleOfKind)
	})
}

func TestPool_Release(t *testing.T) {
	t.Run("should reject double release", func(t *testing.T) {
		pool := newFleet(t, 1, 0)
		v, _ := pool.TryAcquire(vehicle.Bus)
		require.NoError(t, pool.Release(v))

		require.ErrorIs(t, pool.Release(v), vehicle.ErrVehicleNotBusy)
	})

	t.Run("should reject foreign vehicle", func(t *testing.T) {
		pool := newFleet(t, 1, 0)
		stranger, err := vehicle.NewVehicle(kernel.NewUUID(), "", vehicle.Bus)
		require.NoError(t, err)

		require.ErrorIs(t, pool.Release(stranger), vehicle.ErrForeignVehicle)
	})
}

func TestNewPool(t *testing.T) {
	t.Run("should reject duplicate ids", func(t *testing.T) {
		id := kernel.NewUUID()
		a, _ := vehicle.NewVehicle(id, "a", vehicle.Bus)
		b, _ := vehicle.NewVehicle(id, "b", vehicle.Bus)

		_, err := vehicle.NewPool([]*vehicle.Vehicle{a, b}, 0)

		require.Error(t, err)
	})

	t.Run("should snapshot in fleet order", func(t *testing.T) {
		pool := newFleet(t, 2, 1)
		_, _ = pool.TryAcquire(vehicle.BaggageCart)

		snap := pool.Snapshot()

		require.Len(t, snap, 3)
		assert.Equal(t, "bus-1", snap[0].Name)
		assert.Equal(t, "bus-2", snap[1].Name)
		assert.Equal(t, "baggage-cart-1", snap[2].Name)
		assert.False(t, snap[0].Busy)
		assert.True(t, snap[2].Busy)
		assert.Equal(t, 2, pool.Size(vehicle.Bus))
	})
}
