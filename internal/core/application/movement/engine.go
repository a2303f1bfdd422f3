// Package movement drives vehicles along dispatcher routes hop by hop,
// tolerating denied permissions and replacing routes that stopped working.
package movement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"groundhandling/internal/core/domain/model/kernel"
	"groundhandling/internal/core/domain/model/movement"
)

// ErrLegAborted is returned when a leg stalls again after its last allowed rebuild.
var ErrLegAborted = errors.New("movement leg aborted")

// Navigator is the part of the gateway the engine needs.
type Navigator interface {
	FetchRoute(ctx context.Context, from, to kernel.Point) (kernel.Route, error)
	RequestMovementPermission(ctx context.Context, from, to kernel.Point) (bool, error)
}

// ArrivalHook runs after every confirmed hop with the point just reached.
// A non-nil error aborts the leg.
type ArrivalHook func(ctx context.Context, at kernel.Point) error

// Config tunes the engine.
type Config struct {
	Limits movement.Limits
	// TransitDelay simulates driving time after each granted hop.
	TransitDelay time.Duration
	// DenialDelay is the pause after a denied permission before asking again.
	DenialDelay time.Duration
}

// DefaultConfig returns the standard limits with one second transit and denial delays.
func DefaultConfig() Config {
	return Config{
		Limits:       movement.DefaultLimits(),
		TransitDelay: time.Second,
		DenialDelay:  time.Second,
	}
}

// Engine runs legs. It is stateless apart from configuration and safe for
// concurrent use; each leg's movement.State belongs to the calling goroutine.
type Engine struct {
	nav     Navigator
	cfg     Config
	logger  *slog.Logger
	metrics *metrics
}

// NewEngine creates an Engine.
func NewEngine(nav Navigator, cfg Config, logger *slog.Logger) (*Engine, error) {
	if nav == nil {
		return nil, errors.New("navigator is required")
	}
	if err := cfg.Limits.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		nav:     nav,
		cfg:     cfg,
		logger:  logger.With("component", "movement"),
		metrics: newMetrics(),
	}, nil
}

// Drive fetches a route from -> to and traverses it. It returns the point the
// vehicle stopped at, which is the last waypoint on success.
func (e *Engine) Drive(ctx context.Context, from, to kernel.Point, onArrive ArrivalHook) (kernel.Point, error) {
	route, err := e.nav.FetchRoute(ctx, from, to)
	if err != nil {
		return from, err
	}

	st, err := movement.NewState(from, to, route, e.cfg.Limits)
	if err != nil {
		return from, err
	}

	err = e.Traverse(ctx, st, onArrive)
	return st.Current(), err
}

// Traverse moves st until it is Arrived or Aborted.
//
// Each hop asks for permission. A grant advances the cursor; a denial counts
// towards a stall. A stall triggers one route request from the current point to
// the destination; a stall after the last allowed rebuild aborts the leg without
// asking for another route.
func (e *Engine) Traverse(ctx context.Context, st *movement.State, onArrive ArrivalHook) error {
	log := e.logger.With("destination", st.Destination().ID())

	for {
		switch st.Phase() {
		case movement.Arrived:
			log.Debug("leg arrived", "at", st.Current().ID(), "rebuilds", st.Rebuilds())
			return nil

		case movement.Aborted:
			e.metrics.legsAborted.Inc()
			log.Warn("leg aborted", "at", st.Current().ID(), "rebuilds", st.Rebuilds())
			return fmt.Errorf("%w: stuck at %s towards %s after %d rebuilds",
				ErrLegAborted, st.Current(), st.Destination(), st.Rebuilds())

		case movement.Stuck:
			if err := e.rebuild(ctx, st, log); err != nil {
				return err
			}

		case movement.Traversing:
			if err := e.hop(ctx, st, onArrive); err != nil {
				st.Abort()
				return err
			}

		default:
			return fmt.Errorf("%w: unexpected phase %s", movement.ErrInvalidTransition, st.Phase())
		}
	}
}

func (e *Engine) hop(ctx context.Context, st *movement.State, onArrive ArrivalHook) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	next, ok := st.Next()
	if !ok {
		return fmt.Errorf("%w: no next waypoint while traversing", movement.ErrInvalidTransition)
	}

	granted, err := e.nav.RequestMovementPermission(ctx, st.Current(), next)
	if err != nil {
		return err
	}

	if !granted {
		e.metrics.denials.Inc()
		phase, err := st.Deny()
		if err != nil {
			return err
		}
		if phase == movement.Traversing {
			return sleep(ctx, e.cfg.DenialDelay)
		}
		return nil
	}

	if err = st.Advance(); err != nil {
		return err
	}
	e.metrics.hops.Inc()
	if err = sleep(ctx, e.cfg.TransitDelay); err != nil {
		return err
	}
	if onArrive != nil {
		return onArrive(ctx, st.Current())
	}
	return nil
}

func (e *Engine) rebuild(ctx context.Context, st *movement.State, log *slog.Logger) error {
	if err := st.BeginRebuild(); err != nil {
		return err
	}
	e.metrics.rebuilds.Inc()
	log.Info("vehicle stuck, requesting new route",
		"at", st.Current().ID(), "denials", st.Denials(), "rebuild", st.Rebuilds()+1)

	route, err := e.nav.FetchRoute(ctx, st.Current(), st.Destination())
	if err != nil {
		st.Abort()
		return fmt.Errorf("rebuild route: %w", err)
	}
	return st.Rebuild(route)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
