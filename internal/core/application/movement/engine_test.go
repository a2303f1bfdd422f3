package movement_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"groundhandling/internal/core/application/movement"
	"groundhandling/internal/core/domain/model/kernel"
	legstate "groundhandling/internal/core/domain/model/movement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedNavigator answers permission requests from a script and records every call in order.
type scriptedNavigator struct {
	grant     func(call int, from, to kernel.Point) (bool, error)
	routes    []kernel.Route
	routeErr  error
	calls     []string
	permCalls int
}

func (n *scriptedNavigator) FetchRoute(_ context.Context, from, to kernel.Point) (kernel.Route, error) {
	n.calls = append(n.calls, "route "+from.ID()+"->"+to.ID())
	if n.routeErr != nil {
		return kernel.Route{}, n.routeErr
	}
	if len(n.routes) == 0 {
		return kernel.Route{}, errors.New("no scripted route")
	}
	r := n.routes[0]
	n.routes = n.routes[1:]
	return r, nil
}

func (n *scriptedNavigator) RequestMovementPermission(_ context.Context, from, to kernel.Point) (bool, error) {
	n.permCalls++
	n.calls = append(n.calls, "move "+from.ID()+"->"+to.ID())
	if n.grant == nil {
		return true, nil
	}
	return n.grant(n.permCalls, from, to)
}

func (n *scriptedNavigator) count(prefix string) int {
	c := 0
	for _, call := range n.calls {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			c++
		}
	}
	return c
}

func newEngine(t *testing.T, nav movement.Navigator) *movement.Engine {
	t.Helper()
	e, err := movement.NewEngine(nav, movement.Config{Limits: legstate.DefaultLimits()},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return e
}

func mustRoute(t *testing.T, ids ...string) kernel.Route {
	t.Helper()
	r, err := kernel.RouteFromIDs(ids)
	require.NoError(t, err)
	return r
}

func newLeg(t *testing.T, r kernel.Route) *legstate.State {
	t.Helper()
	plane, _ := kernel.AircraftPoint("42")
	st, err := legstate.NewState(kernel.Garage(), plane, r, legstate.DefaultLimits())
	require.NoError(t, err)
	return st
}

func TestEngine_Traverse(t *testing.T) {
	ctx := context.Background()

	t.Run("should ask permission once per waypoint and end at the last one", func(t *testing.T) {
		nav := &scriptedNavigator{}
		st := newLeg(t, mustRoute(t, "a", "b", "c", "d", "plane-42"))

		err := newEngine(t, nav).Traverse(ctx, st, nil)

		require.NoError(t, err)
		assert.Equal(t, 5, nav.permCalls)
		assert.Equal(t, "plane-42", st.Current().ID())
		assert.Equal(t, legstate.Arrived, st.Phase())
		assert.Zero(t, nav.count("route"))
	})

	t.Run("should not move on an empty route", func(t *testing.T) {
		nav := &scriptedNavigator{}
		st := newLeg(t, kernel.Route{})

		err := newEngine(t, nav).Traverse(ctx, st, nil)

		require.NoError(t, err)
		assert.Zero(t, nav.permCalls)
		assert.Equal(t, kernel.GarageID, st.Current().ID())
	})

	t.Run("should rebuild exactly once after five denials before a sixth permission call", func(t *testing.T) {
		nav := &scriptedNavigator{
			grant: func(call int, _, _ kernel.Point) (bool, error) {
				return call > 5, nil
			},
			routes: []kernel.Route{mustRoute(t, "x", "plane-42")},
		}
		st := newLeg(t, mustRoute(t, "a", "plane-42"))

		err := newEngine(t, nav).Traverse(ctx, st, nil)

		require.NoError(t, err)
		require.Len(t, nav.calls, 8)
		for i := range 5 {
			assert.Equal(t, "move garage->a", nav.calls[i])
		}
		assert.Equal(t, "route garage->plane-42", nav.calls[5])
		assert.Equal(t, "move garage->x", nav.calls[6])
		assert.Equal(t, "move x->plane-42", nav.calls[7])
		assert.Equal(t, 1, st.Rebuilds())
	})

	t.Run("should not rebuild on four denials followed by a grant", func(t *testing.T) {
		nav := &scriptedNavigator{
			grant: func(call int, _, _ kernel.Point) (bool, error) {
				return call == 5 || call > 9, nil
			},
		}
		st := newLeg(t, mustRoute(t, "a", "plane-42"))

		err := newEngine(t, nav).Traverse(ctx, st, nil)

		require.NoError(t, err)
		assert.Zero(t, nav.count("route"))
		assert.Equal(t, 10, nav.permCalls)
	})

	t.Run("should abort on the fourth stall without requesting another route", func(t *testing.T) {
		nav := &scriptedNavigator{
			grant: func(int, kernel.Point, kernel.Point) (bool, error) { return false, nil },
			routes: []kernel.Route{
				mustRoute(t, "a", "plane-42"),
				mustRoute(t, "a", "plane-42"),
				mustRoute(t, "a", "plane-42"),
				mustRoute(t, "a", "plane-42"),
			},
		}
		st := newLeg(t, mustRoute(t, "a", "plane-42"))

		err := newEngine(t, nav).Traverse(ctx, st, nil)

		require.ErrorIs(t, err, movement.ErrLegAborted)
		assert.Equal(t, 3, nav.count("route"))
		assert.Equal(t, 20, nav.permCalls)
		assert.Equal(t, legstate.Aborted, st.Phase())
		assert.Len(t, nav.routes, 1, "the spare route must stay unused")
	})

	t.Run("should run the hook at every reached point", func(t *testing.T) {
		nav := &scriptedNavigator{}
		st := newLeg(t, mustRoute(t, "a", "terminal-1", "garage"))
		var reached []string

		err := newEngine(t, nav).Traverse(ctx, st, func(_ context.Context, at kernel.Point) error {
			reached = append(reached, at.ID())
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "terminal-1", "garage"}, reached)
	})

	t.Run("should abort when the hook fails", func(t *testing.T) {
		nav := &scriptedNavigator{}
		st := newLeg(t, mustRoute(t, "a", "b"))
		hookErr := errors.New("drop-off refused")

		err := newEngine(t, nav).Traverse(ctx, st, func(context.Context, kernel.Point) error { return hookErr })

		require.ErrorIs(t, err, hookErr)
		assert.Equal(t, 1, nav.permCalls)
		assert.Equal(t, legstate.Aborted, st.Phase())
	})

	t.Run("should pass permission transport failures through", func(t *testing.T) {
		transportErr := errors.New("transport failure")
		nav := &scriptedNavigator{
			grant: func(int, kernel.Point, kernel.Point) (bool, error) { return false, transportErr },
		}
		st := newLeg(t, mustRoute(t, "a"))

		err := newEngine(t, nav).Traverse(ctx, st, nil)

		require.ErrorIs(t, err, transportErr)
		assert.Equal(t, legstate.Aborted, st.Phase())
	})

	t.Run("should fail when the rebuild route cannot be fetched", func(t *testing.T) {
		routeErr := errors.New("request rejected")
		nav := &scriptedNavigator{
			grant:    func(int, kernel.Point, kernel.Point) (bool, error) { return false, nil },
			routeErr: routeErr,
		}
		st := newLeg(t, mustRoute(t, "a"))

		err := newEngine(t, nav).Traverse(ctx, st, nil)

		require.ErrorIs(t, err, routeErr)
		assert.NotErrorIs(t, err, movement.ErrLegAborted)
		assert.Equal(t, 5, nav.permCalls)
	})

	t.Run("should stop when the context is cancelled", func(t *testing.T) {
		nav := &scriptedNavigator{}
		st := newLeg(t, mustRoute(t, "a"))
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := newEngine(t, nav).Traverse(cctx, st, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, nav.permCalls)
	})
}

func TestEngine_Drive(t *testing.T) {
	t.Run("should fetch the route once and traverse it", func(t *testing.T) {
		nav := &scriptedNavigator{routes: []kernel.Route{mustRoute(t, "a", "plane-42")}}
		plane, _ := kernel.AircraftPoint("42")

		at, err := newEngine(t, nav).Drive(context.Background(), kernel.Garage(), plane, nil)

		require.NoError(t, err)
		assert.Equal(t, "plane-42", at.ID())
		assert.Equal(t, []string{"route garage->plane-42", "move garage->a", "move a->plane-42"}, nav.calls)
	})

	t.Run("should stay put when the route fetch fails", func(t *testing.T) {
		nav := &scriptedNavigator{routeErr: errors.New("boom")}

		at, err := newEngine(t, nav).Drive(context.Background(), kernel.Garage(), kernel.Terminal2(), nil)

		require.Error(t, err)
		assert.Equal(t, kernel.GarageID, at.ID())
	})
}

func TestNewEngine(t *testing.T) {
	_, err := movement.NewEngine(nil, movement.DefaultConfig(), nil)
	require.Error(t, err)

	_, err = movement.NewEngine(&scriptedNavigator{}, movement.Config{}, nil)
	require.Error(t, err)
}
