package movement_test

import (
	"testing"

	"groundhandling/internal/core/domain/model/kernel"
	"groundhandling/internal/core/domain/model/movement"
	"groundhandling/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func route(t *testing.T, ids ...string) kernel.Route {
	t.Helper()
	r, err := kernel.RouteFromIDs(ids)
	require.NoError(t, err)
	return r
}

func plane(t *testing.T) kernel.Point {
	t.Helper()
	p, err := kernel.AircraftPoint("42")
	require.NoError(t, err)
	return p
}

func TestNewState(t *testing.T) {
	t.Run("should start traversing at the start point", func(t *testing.T) {
		st, err := movement.NewState(kernel.Garage(), plane(t), route(t, "a", "b", "plane-42"), movement.DefaultLimits())

		require.NoError(t, err)
		assert.Equal(t, movement.Traversing, st.Phase())
		assert.Equal(t, kernel.GarageID, st.Current().ID())
		assert.Equal(t, 3, st.Remaining())
		next, ok := st.Next()
		require.True(t, ok)
		assert.Equal(t, "a", next.ID())
	})

	t.Run("should skip a leading waypoint equal to the start", func(t *testing.T) {
		st, err := movement.NewState(kernel.Garage(), plane(t), route(t, "garage", "a"), movement.DefaultLimits())

		require.NoError(t, err)
		assert.Equal(t, 1, st.Remaining())
	})

	t.Run("should arrive at once on an empty route", func(t *testing.T) {
		st, err := movement.NewState(kernel.Garage(), kernel.Garage(), kernel.Route{}, movement.DefaultLimits())

		require.NoError(t, err)
		assert.Equal(t, movement.Arrived, st.Phase())
		_, ok := st.Next()
		assert.False(t, ok)
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		_, err := movement.NewState(kernel.Point{}, plane(t), kernel.Route{}, movement.Limits{StallThreshold: 0, MaxRebuilds: -1})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestState_Advance(t *testing.T) {
	t.Run("should walk the route and arrive at the last waypoint", func(t *testing.T) {
		st, _ := movement.NewState(kernel.Garage(), plane(t), route(t, "a", "b", "plane-42"), movement.DefaultLimits())

		for range 3 {
			require.NoError(t, st.Advance())
		}

		assert.Equal(t, movement.Arrived, st.Phase())
		assert.Equal(t, "plane-42", st.Current().ID())
		require.ErrorIs(t, st.Advance(), movement.ErrInvalidTransition)
	})

	t.Run("should reset denials on a granted hop", func(t *testing.T) {
		st, _ := movement.NewState(kernel.Garage(), plane(t), route(t, "a", "b"), movement.DefaultLimits())
		for range 4 {
			_, err := st.Deny()
			require.NoError(t, err)
		}

		require.NoError(t, st.Advance())

		assert.Zero(t, st.Denials())
		assert.Equal(t, movement.Traversing, st.Phase())
	})
}

func TestState_Stall(t *testing.T) {
	t.Run("should become stuck on the threshold denial", func(t *testing.T) {
		st, _ := movement.NewState(kernel.Garage(), plane(t), route(t, "a"), movement.DefaultLimits())

		for i := 1; i < movement.DefaultStallThreshold; i++ {
			phase, err := st.Deny()
			require.NoError(t, err)
			assert.Equal(t, movement.Traversing, phase, "denial %d", i)
		}
		phase, err := st.Deny()

		require.NoError(t, err)
		assert.Equal(t, movement.Stuck, phase)
		require.ErrorIs(t, st.Advance(), movement.ErrInvalidTransition)
	})

	t.Run("should resume after rebuild with fresh counters", func(t *testing.T) {
		st, _ := movement.NewState(kernel.Garage(), plane(t), route(t, "a"), movement.DefaultLimits())
		stall(t, st)

		require.NoError(t, st.BeginRebuild())
		assert.Equal(t, movement.Rebuilding, st.Phase())
		require.NoError(t, st.Rebuild(route(t, "c", "plane-42")))

		assert.Equal(t, movement.Traversing, st.Phase())
		assert.Equal(t, 1, st.Rebuilds())
		assert.Zero(t, st.Denials())
		next, _ := st.Next()
		assert.Equal(t, "c", next.ID())
	})

	t.Run("should abort on the stall after the last allowed rebuild", func(t *testing.T) {
		st, _ := movement.NewState(kernel.Garage(), plane(t), route(t, "a"), movement.DefaultLimits())
		for range movement.DefaultMaxRebuilds {
			stall(t, st)
			require.NoError(t, st.BeginRebuild())
			require.NoError(t, st.Rebuild(route(t, "a")))
		}

		for range movement.DefaultStallThreshold - 1 {
			_, _ = st.Deny()
		}
		phase, err := st.Deny()

		require.NoError(t, err)
		assert.Equal(t, movement.Aborted, phase)
		assert.Equal(t, movement.DefaultMaxRebuilds, st.Rebuilds())
		require.ErrorIs(t, st.BeginRebuild(), movement.ErrInvalidTransition)
	})

	t.Run("should arrive when the rebuilt route is empty", func(t *testing.T) {
		st, _ := movement.NewState(kernel.Garage(), plane(t), route(t, "a"), movement.DefaultLimits())
		stall(t, st)
		require.NoError(t, st.BeginRebuild())

		require.NoError(t, st.Rebuild(kernel.Route{}))

		assert.Equal(t, movement.Arrived, st.Phase())
	})

	t.Run("should only rebuild from rebuilding phase", func(t *testing.T) {
		st, _ := movement.NewState(kernel.Garage(), plane(t), route(t, "a"), movement.DefaultLimits())

		require.ErrorIs(t, st.Rebuild(route(t, "b")), movement.ErrInvalidTransition)
		require.ErrorIs(t, st.BeginRebuild(), movement.ErrInvalidTransition)
	})
}

func TestState_Abort(t *testing.T) {
	st, _ := movement.NewState(kernel.Garage(), plane(t), route(t, "a"), movement.DefaultLimits())

	st.Abort()
	assert.Equal(t, movement.Aborted, st.Phase())

	arrived, _ := movement.NewState(kernel.Garage(), kernel.Garage(), kernel.Route{}, movement.DefaultLimits())
	arrived.Abort()
	assert.Equal(t, movement.Arrived, arrived.Phase())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "traversing", movement.Traversing.String())
	assert.Equal(t, "aborted", movement.Aborted.String())
	assert.Equal(t, "unknown", movement.Phase(0).String())
	assert.True(t, movement.Arrived.IsFinal())
	assert.False(t, movement.Stuck.IsFinal())
}

func stall(t *testing.T, st *movement.State) {
	t.Helper()
	var phase movement.Phase
	for range movement.DefaultStallThreshold {
		var err error
		phase, err = st.Deny()
		require.NoError(t, err)
	}
	require.Equal(t, movement.Stuck, phase)
}
