package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"groundhandling/internal/core/domain/model/kernel"
	"groundhandling/internal/core/domain/model/vehicle"
	"groundhandling/internal/core/ports"
	"groundhandling/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultAttempts is the number of tries of a bounded call.
	DefaultAttempts = 5
	// DefaultInterval is the fixed pause between tries.
	DefaultInterval = time.Second
)

var (
	// ErrRejected means the collaborator kept answering negatively until the
	// attempts ran out. It is a permanent step failure.
	ErrRejected = errors.New("request rejected")
	// ErrTransport means the collaborator could not be reached until the attempts
	// ran out. It is a retryable failure.
	ErrTransport = errors.New("transport failure")

	errDenied = errors.New("negative answer")
)

// Config tunes the retry policy.
type Config struct {
	// Attempts is the total number of tries of a bounded call, at least 1.
	Attempts int
	// Interval is the fixed pause between tries. Zero retries immediately.
	Interval time.Duration
	// GarageExitInterval is the fixed pause between garage exit requests.
	GarageExitInterval time.Duration
}

// DefaultConfig returns 5 attempts at 1 s, and 1 s between garage exit requests.
func DefaultConfig() Config {
	return Config{
		Attempts:           DefaultAttempts,
		Interval:           DefaultInterval,
		GarageExitInterval: DefaultInterval,
	}
}

// Gateway wraps the collaborator ports with the retry policy.
type Gateway struct {
	groundControl ports.GroundControl
	board         ports.Board
	passengers    ports.PassengerRegistry
	reporter      ports.Reporter
	aircraft      ports.AircraftDirectory
	cfg           Config
	logger        *slog.Logger
	metrics       *metrics
}

// New creates a Gateway.
func New(
	groundControl ports.GroundControl,
	board ports.Board,
	passengers ports.PassengerRegistry,
	reporter ports.Reporter,
	aircraft ports.AircraftDirectory,
	cfg Config,
	logger *slog.Logger,
) (*Gateway, error) {
	if groundControl == nil || board == nil || passengers == nil || reporter == nil || aircraft == nil {
		return nil, errs.NewValueIsRequiredError("gateway ports")
	}
	if cfg.Attempts < 1 {
		return nil, errs.NewValueIsOutOfRangeError("gateway attempts", cfg.Attempts, 1, "unbounded")
	}
	if cfg.Interval < 0 || cfg.GarageExitInterval < 0 {
		return nil, errs.NewValueIsInvalidError("gateway interval")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		groundControl: groundControl,
		board:         board,
		passengers:    passengers,
		reporter:      reporter,
		aircraft:      aircraft,
		cfg:           cfg,
		logger:        logger.With("component", "gateway"),
		metrics:       newMetrics(),
	}, nil
}

// ExitGarage requests a garage exit until it is granted or ctx is done.
func (g *Gateway) ExitGarage(ctx context.Context, kind vehicle.Kind) error {
	const call = "garage_exit"
	tries := 0
	op := func() error {
		tries++
		ok, err := g.groundControl.RequestGarageExit(ctx, kind)
		return g.observe(call, ok, err)
	}

	b := backoff.WithContext(backoff.NewConstantBackOff(g.cfg.GarageExitInterval), ctx)
	notify := func(err error, _ time.Duration) {
		if tries%10 == 0 {
			g.logger.Warn("garage exit still refused", "kind", kind, "tries", tries, "error", err)
		}
	}
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return fmt.Errorf("%s after %d tries: %w", call, tries, err)
	}
	return nil
}

// FetchRoute requests a route from one point to another.
// A missing route counts as a negative answer.
func (g *Gateway) FetchRoute(ctx context.Context, from, to kernel.Point) (kernel.Route, error) {
	var route kernel.Route
	err := g.bounded(ctx, "route", func() (bool, error) {
		r, ok, err := g.groundControl.RequestRoute(ctx, from, to)
		if err != nil || !ok {
			return false, err
		}
		route = r
		return true, nil
	})
	if err != nil {
		return kernel.Route{}, fmt.Errorf("route %s -> %s: %w", from, to, err)
	}
	return route, nil
}

// RequestMovementPermission asks to move one hop. Only transport faults are
// retried; a denial returns (false, nil) at once.
func (g *Gateway) RequestMovementPermission(ctx context.Context, from, to kernel.Point) (bool, error) {
	const call = "movement_permission"
	var (
		granted bool
		lastErr error
	)
	op := func() error {
		ok, err := g.groundControl.RequestMovementPermission(ctx, from, to)
		if err != nil {
			lastErr = err
			g.metrics.attempts.WithLabelValues(call, "transport_error").Inc()
			return err
		}
		granted = ok
		if ok {
			g.metrics.attempts.WithLabelValues(call, "ok").Inc()
		} else {
			g.metrics.attempts.WithLabelValues(call, "denied").Inc()
		}
		return nil
	}

	if err := backoff.Retry(op, g.boundedBackOff(ctx)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, fmt.Errorf("%s %s -> %s: %w", call, from, to, ctxErr)
		}
		return false, fmt.Errorf("%w: %s %s -> %s: %w", ErrTransport, call, from, to, lastErr)
	}
	return granted, nil
}

// ResolveAircraft looks up the aircraft serving flightID and returns its point.
// An unknown flight counts as a negative answer.
func (g *Gateway) ResolveAircraft(ctx context.Context, flightID string) (kernel.Point, error) {
	var found ports.Aircraft
	err := g.bounded(ctx, "plane_info", func() (bool, error) {
		a, ok, err := g.aircraft.ResolveAircraft(ctx, flightID)
		if err != nil || !ok {
			return false, err
		}
		found = a
		return true, nil
	})
	if err != nil {
		return kernel.Point{}, fmt.Errorf("plane info %s: %w", flightID, err)
	}

	point, err := kernel.ParkedAircraft(found.PlaneID, flightID)
	if err != nil {
		return kernel.Point{}, fmt.Errorf("%w: plane info %s: %w", ErrRejected, flightID, err)
	}
	g.logger.Debug("aircraft resolved", "flight_id", flightID, "plane_id", point.ID(), "gate", found.Gate)
	return point, nil
}

// NotifyGarageFree reports that the vehicle is back and point is free.
func (g *Gateway) NotifyGarageFree(ctx context.Context, point kernel.Point) error {
	return g.bounded(ctx, "garage_free", func() (bool, error) {
		return g.groundControl.NotifyGarageFree(ctx, point)
	})
}

// NotifyUnload reports to the board service that flightID was unloaded.
func (g *Gateway) NotifyUnload(ctx context.Context, flightID string) error {
	return g.bounded(ctx, "board_unload", func() (bool, error) {
		return g.board.NotifyUnload(ctx, flightID)
	})
}

// NotifyLoad reports to the board service that passengers boarded flightID.
func (g *Gateway) NotifyLoad(ctx context.Context, flightID string, passengers []string) error {
	return g.bounded(ctx, "board_load", func() (bool, error) {
		return g.board.NotifyLoad(ctx, flightID, passengers)
	})
}

// NotifyTransport reports to the passenger registry that passengers were picked up.
func (g *Gateway) NotifyTransport(ctx context.Context, passengers []string) error {
	return g.bounded(ctx, "passenger_transport", func() (bool, error) {
		return g.passengers.NotifyTransport(ctx, passengers)
	})
}

// ReportCompletion reports that orderID reached phase.
func (g *Gateway) ReportCompletion(ctx context.Context, orderID, phase string) error {
	return g.bounded(ctx, "report", func() (bool, error) {
		return g.reporter.ReportCompletion(ctx, orderID, phase)
	})
}

// bounded runs call up to cfg.Attempts times. The outcome of the last try
// decides between ErrRejected and ErrTransport.
func (g *Gateway) bounded(ctx context.Context, call string, try func() (bool, error)) error {
	var lastErr error
	op := func() error {
		ok, err := try()
		lastErr = g.observe(call, ok, err)
		return lastErr
	}

	err := backoff.Retry(op, g.boundedBackOff(ctx))
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", call, ctxErr)
	}

	g.logger.Warn("call failed after retries", "call", call, "attempts", g.cfg.Attempts, "error", lastErr)
	if errors.Is(lastErr, errDenied) {
		return fmt.Errorf("%w: %s after %d attempts", ErrRejected, call, g.cfg.Attempts)
	}
	return fmt.Errorf("%w: %s after %d attempts: %w", ErrTransport, call, g.cfg.Attempts, lastErr)
}

func (g *Gateway) boundedBackOff(ctx context.Context) backoff.BackOff {
	return backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(g.cfg.Interval), uint64(g.cfg.Attempts-1)), //nolint:gosec // Attempts >= 1
		ctx,
	)
}

// observe counts one try and turns a negative answer into errDenied.
func (g *Gateway) observe(call string, ok bool, err error) error {
	switch {
	case err != nil:
		g.metrics.attempts.WithLabelValues(call, "transport_error").Inc()
		return err
	case !ok:
		g.metrics.attempts.WithLabelValues(call, "denied").Inc()
		return errDenied
	default:
		g.metrics.attempts.WithLabelValues(call, "ok").Inc()
		return nil
	}
}
