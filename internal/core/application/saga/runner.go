package saga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"groundhandling/internal/core/application/movement"
	"groundhandling/internal/core/domain/model/kernel"
	"groundhandling/internal/core/domain/model/order"
	"groundhandling/internal/core/domain/model/vehicle"
	"groundhandling/internal/pkg/errs"
)

const (
	// DefaultServiceTime is the simulated time spent loading or unloading.
	DefaultServiceTime = 5 * time.Second
	// DefaultOrderDeadline bounds a whole execution.
	DefaultOrderDeadline = 10 * time.Minute
)

// ErrDropOffMissed is returned when the return route never passes the drop-off terminal.
var ErrDropOffMissed = errors.New("return route did not pass the drop-off point")

// Services are the collaborator calls a saga makes, with retry already applied.
type Services interface {
	ResolveAircraft(ctx context.Context, flightID string) (kernel.Point, error)
	ExitGarage(ctx context.Context, kind vehicle.Kind) error
	NotifyGarageFree(ctx context.Context, point kernel.Point) error
	NotifyUnload(ctx context.Context, flightID string) error
	NotifyLoad(ctx context.Context, flightID string, passengers []string) error
	NotifyTransport(ctx context.Context, passengers []string) error
	ReportCompletion(ctx context.Context, orderID, phase string) error
}

// Driver runs one leg from -> to and returns where the vehicle stopped.
type Driver interface {
	Drive(ctx context.Context, from, to kernel.Point, onArrive movement.ArrivalHook) (kernel.Point, error)
}

// Dispatcher claims and releases fleet vehicles.
type Dispatcher interface {
	Dispatch(ctx context.Context, o *order.Order) (*vehicle.Vehicle, error)
	Release(v *vehicle.Vehicle) error
	BusyCount(kind vehicle.Kind) int
}

// Config tunes executions.
type Config struct {
	// ServiceTime is spent at every loading or unloading stop.
	ServiceTime time.Duration
	// OrderDeadline bounds one execution, vehicle wait included. Zero disables it.
	OrderDeadline time.Duration
}

// DefaultConfig returns a 5 s service time and a 10 min deadline.
func DefaultConfig() Config {
	return Config{ServiceTime: DefaultServiceTime, OrderDeadline: DefaultOrderDeadline}
}

// Runner executes saga templates. It holds no per-order state and is safe for
// concurrent use by any number of executions.
type Runner struct {
	services   Services
	driver     Driver
	dispatcher Dispatcher
	cfg        Config
	logger     *slog.Logger
	metrics    *metrics
}

// NewRunner creates a Runner.
func NewRunner(services Services, driver Driver, dispatcher Dispatcher, cfg Config, logger *slog.Logger) (*Runner, error) {
	if services == nil || driver == nil || dispatcher == nil {
		return nil, errs.NewValueIsRequiredError("saga dependencies")
	}
	if cfg.ServiceTime < 0 || cfg.OrderDeadline < 0 {
		return nil, errs.NewValueIsInvalidError("saga durations")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		services:   services,
		driver:     driver,
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger.With("component", "saga"),
		metrics:    newMetrics(),
	}, nil
}

// execution is the task-local state of one run.
type execution struct {
	order    *order.Order
	aircraft kernel.Point
	vehicle  *vehicle.Vehicle
	position kernel.Point
}

type step struct {
	name string
	run  func(ctx context.Context, ex *execution) error
}

// Run executes the template matching o.Kind() and reports how it ended.
// The vehicle, if one was acquired, is free again when Run returns.
func (r *Runner) Run(ctx context.Context, o *order.Order) Result {
	res := Result{OrderID: o.ID(), Template: o.Kind().String()}
	log := r.logger.With("order_id", o.ID(), "template", res.Template, "flight_id", o.FlightID())

	defer func() {
		r.metrics.executions.WithLabelValues(res.Template, res.Outcome.String()).Inc()
	}()

	steps, err := r.template(o.Kind())
	if err != nil {
		res.Outcome, res.Err = PermanentFailure, err
		return res
	}
	if r.cfg.OrderDeadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.OrderDeadline)
		defer cancel()
	}

	ex := &execution{order: o, position: kernel.Garage()}
	defer r.release(ex, log)

	for _, s := range steps {
		started := time.Now()
		stepErr := s.run(ctx, ex)
		elapsed := time.Since(started)
		r.metrics.stepDuration.WithLabelValues(res.Template, s.name).Observe(elapsed.Seconds())

		entry := StepResult{Name: s.name, Status: StepSucceeded, Duration: elapsed}
		if stepErr != nil {
			entry.Status, entry.Detail = StepFailed, stepErr.Error()
		}
		res.Journal = append(res.Journal, entry)
		if ex.vehicle != nil {
			res.Vehicle = ex.vehicle.Name()
		}

		if stepErr != nil {
			res.Outcome = Classify(stepErr)
			res.Err = fmt.Errorf("step %s: %w", s.name, stepErr)
			log.Warn("saga step failed", "step", s.name, "outcome", res.Outcome, "error", stepErr)
			return res
		}
		log.Debug("saga step done", "step", s.name, "duration", elapsed)
	}

	res.Outcome = Completed
	log.Info("saga completed", "vehicle", res.Vehicle, "steps", len(res.Journal))
	return res
}

func (r *Runner) template(kind order.Kind) ([]step, error) {
	switch kind {
	case order.Discharge:
		return r.dischargeSteps(), nil
	case order.Load:
		return r.loadSteps(), nil
	default:
		return nil, kind.Validate()
	}
}

// dischargeSteps: resolve the aircraft, garage -> aircraft, unload, report, aircraft -> garage via
// terminal-1 drop-off, garage free.
func (r *Runner) dischargeSteps() []step {
	return []step{
		{"resolve_aircraft", r.resolveAircraft},
		{"acquire_vehicle", r.acquireVehicle},
		{"exit_garage", r.exitGarage},
		{"drive_to_aircraft", r.driveTo(func(ex *execution) kernel.Point { return ex.aircraft })},
		{"unload", func(ctx context.Context, ex *execution) error {
			if err := r.serve(ctx); err != nil {
				return err
			}
			return r.services.NotifyUnload(ctx, ex.order.FlightID())
		}},
		{"report", r.report("discharged")},
		{"return_via_terminal", r.returnViaDropOff(kernel.Terminal1())},
		{"notify_garage_free", r.notifyGarageFree},
	}
}

// loadSteps: resolve the aircraft, garage -> terminal-2, pick up, terminal-2 -> aircraft, deliver,
// report, aircraft -> garage, garage free.
func (r *Runner) loadSteps() []step {
	return []step{
		{"resolve_aircraft", r.resolveAircraft},
		{"acquire_vehicle", r.acquireVehicle},
		{"exit_garage", r.exitGarage},
		{"drive_to_terminal", r.driveTo(func(*execution) kernel.Point { return kernel.Terminal2() })},
		{"pick_up", func(ctx context.Context, ex *execution) error {
			if err := r.serve(ctx); err != nil {
				return err
			}
			return r.services.NotifyTransport(ctx, ex.order.Passengers())
		}},
		{"drive_to_aircraft", r.driveTo(func(ex *execution) kernel.Point { return ex.aircraft })},
		{"deliver", func(ctx context.Context, ex *execution) error {
			if err := r.serve(ctx); err != nil {
				return err
			}
			return r.services.NotifyLoad(ctx, ex.order.FlightID(), ex.order.Passengers())
		}},
		{"report", r.report("loaded")},
		{"return_to_garage", r.driveTo(func(*execution) kernel.Point { return kernel.Garage() })},
		{"notify_garage_free", r.notifyGarageFree},
	}
}

// resolveAircraft runs before a vehicle is claimed, so an unknown flight
// never holds one.
func (r *Runner) resolveAircraft(ctx context.Context, ex *execution) error {
	aircraft, err := r.services.ResolveAircraft(ctx, ex.order.FlightID())
	if err != nil {
		return err
	}
	ex.aircraft = aircraft
	return nil
}

func (r *Runner) acquireVehicle(ctx context.Context, ex *execution) error {
	v, err := r.dispatcher.Dispatch(ctx, ex.order)
	if err != nil {
		return err
	}
	ex.vehicle = v
	r.metrics.busyVehicles.WithLabelValues(v.Kind().String()).Set(float64(r.dispatcher.BusyCount(v.Kind())))
	return nil
}

func (r *Runner) exitGarage(ctx context.Context, ex *execution) error {
	return r.services.ExitGarage(ctx, ex.vehicle.Kind())
}

func (r *Runner) driveTo(target func(ex *execution) kernel.Point) func(context.Context, *execution) error {
	return func(ctx context.Context, ex *execution) error {
		at, err := r.driver.Drive(ctx, ex.position, target(ex), nil)
		ex.position = at
		return err
	}
}

// returnViaDropOff drives back to the garage and serves the stop when the
// vehicle passes it.
func (r *Runner) returnViaDropOff(stop kernel.Point) func(context.Context, *execution) error {
	return func(ctx context.Context, ex *execution) error {
		served := false
		hook := func(ctx context.Context, at kernel.Point) error {
			if served || !at.IsEqual(stop) {
				return nil
			}
			served = true
			return r.serve(ctx)
		}

		at, err := r.driver.Drive(ctx, ex.position, kernel.Garage(), hook)
		ex.position = at
		if err != nil {
			return err
		}
		if !served {
			return fmt.Errorf("%w: %s", ErrDropOffMissed, stop)
		}
		return nil
	}
}

func (r *Runner) report(phase string) func(context.Context, *execution) error {
	return func(ctx context.Context, ex *execution) error {
		return r.services.ReportCompletion(ctx, ex.order.ID(), phase)
	}
}

func (r *Runner) notifyGarageFree(ctx context.Context, ex *execution) error {
	return r.services.NotifyGarageFree(ctx, ex.position)
}

func (r *Runner) serve(ctx context.Context) error {
	if r.cfg.ServiceTime <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(r.cfg.ServiceTime)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (r *Runner) release(ex *execution, log *slog.Logger) {
	if ex.vehicle == nil {
		return
	}
	if err := r.dispatcher.Release(ex.vehicle); err != nil {
		log.Error("failed to release vehicle", "vehicle", ex.vehicle.Name(), "error", err)
		return
	}
	kind := ex.vehicle.Kind()
	r.metrics.busyVehicles.WithLabelValues(kind.String()).Set(float64(r.dispatcher.BusyCount(kind)))
}
