package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"groundhandling/internal/core/application/saga"
	"groundhandling/internal/core/domain/model/order"
	"groundhandling/internal/core/ports"
	"groundhandling/internal/pkg/errs"
)

const (
	// DefaultMaxOrderAttempts is the number of transiently failed executions an
	// order may go through before it is dead-lettered.
	DefaultMaxOrderAttempts = 3

	settleTimeout = 10 * time.Second
)

var (
	// ErrDispatcherStopped is returned by Handle once Stop has been called.
	ErrDispatcherStopped = errors.New("order dispatcher is stopped")

	// ErrRetryBudgetExhausted wraps the last failure of an order that ran out of attempts.
	ErrRetryBudgetExhausted = errors.New("retry budget exhausted")
)

// DispatchOrdersCommandHandler is the saga worker pool. Every Handle call drains
// the order queue and starts one goroutine per order; the goroutine runs the saga
// and then settles the outcome:
//
//   - Completed: the order is marked completed and removed from the registry
//   - TransientFailure: the attempt is counted and the order requeued while the
//     budget lasts, otherwise dead-lettered
//   - PermanentFailure: the order is dead-lettered
//
// Dead-lettered orders stay in the registry with status DeadLettered and are
// recorded in the dead-letter repository together with the saga journal.
//
// Sagas run under the handler's own context, not the caller's: a dispatch tick
// ends immediately while its sagas keep going until Stop cancels them.
type DispatchOrdersCommandHandler struct {
	registry    ports.OrderRegistry
	queue       ports.OrderQueue
	runner      SagaRunner
	deadLetters ports.DeadLetterRepository
	publisher   ports.OrderEventPublisher
	maxAttempts int
	logger      *slog.Logger

	runCtx  context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
	running atomic.Int64
}

// NewDispatchOrdersCommandHandler creates the worker pool. A non-positive
// maxAttempts falls back to DefaultMaxOrderAttempts.
func NewDispatchOrdersCommandHandler(
	registry ports.OrderRegistry,
	queue ports.OrderQueue,
	runner SagaRunner,
	deadLetters ports.DeadLetterRepository,
	publisher ports.OrderEventPublisher,
	maxAttempts int,
	logger *slog.Logger,
) *DispatchOrdersCommandHandler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxOrderAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}

	runCtx, cancel := context.WithCancel(context.Background())

	return &DispatchOrdersCommandHandler{
		registry:    registry,
		queue:       queue,
		runner:      runner,
		deadLetters: deadLetters,
		publisher:   publisher,
		maxAttempts: maxAttempts,
		logger:      logger.With("component", "order_dispatcher"),
		runCtx:      runCtx,
		cancel:      cancel,
	}
}

// Handle drains the queue and starts a saga for every order that is still
// active. Orders removed while they were queued are dropped, and so are entries
// left over from an earlier registration of a since resubmitted ID.
func (h *DispatchOrdersCommandHandler) Handle(ctx context.Context, cmd DispatchOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return ErrDispatcherStopped
	}

	queued, err := h.queue.Drain(ctx)
	if err != nil {
		return fmt.Errorf("drain order queue: %w", err)
	}

	for _, q := range queued {
		current, getErr := h.registry.Get(ctx, q.ID())
		if errors.Is(getErr, errs.ErrObjectNotFound) {
			h.logger.Info("skipping removed order", "order_id", q.ID())
			continue
		}
		if getErr != nil {
			return fmt.Errorf("load order %s: %w", q.ID(), getErr)
		}
		if current.Generation() != q.Generation() {
			h.logger.Info("skipping stale queue entry", "order_id", q.ID())
			continue
		}
		if current.Status() != order.Active {
			h.logger.Info("skipping inactive order", "order_id", q.ID(), "status", current.Status().String())
			continue
		}

		h.wg.Add(1)
		h.running.Add(1)
		go h.execute(current)
	}

	return nil
}

// Running returns the number of sagas in flight.
func (h *DispatchOrdersCommandHandler) Running() int {
	return int(h.running.Load())
}

// Wait blocks until every saga started so far has been settled.
func (h *DispatchOrdersCommandHandler) Wait() {
	h.wg.Wait()
}

// Stop refuses further dispatches, cancels the sagas in flight and waits for
// them to return, or for ctx to end.
func (h *DispatchOrdersCommandHandler) Stop(ctx context.Context) error {
	h.mu.Lock()
	h.stopped = true
	h.mu.Unlock()

	h.cancel()

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *DispatchOrdersCommandHandler) execute(o *order.Order) {
	defer h.wg.Done()
	defer h.running.Add(-1)

	log := h.logger.With("order_id", o.ID(), "kind", o.Kind().String())

	res := h.runner.Run(h.runCtx, o)

	if h.runCtx.Err() != nil && res.Outcome == saga.TransientFailure {
		log.Warn("saga interrupted by shutdown", "error", res.Err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()

	var err error
	switch res.Outcome {
	case saga.Completed:
		err = h.complete(ctx, o, log)
	case saga.TransientFailure:
		err = h.retryOrDeadLetter(ctx, o, res, log)
	default:
		err = h.deadLetter(ctx, o, res, log)
	}

	if errors.Is(err, errs.ErrObjectNotFound) {
		log.Info("order was removed while its saga was running", "outcome", res.Outcome.String())
		return
	}
	if err != nil {
		log.Error("failed to settle saga outcome", "outcome", res.Outcome.String(), "error", err)
	}
}

// settle applies fn to the registration the saga ran for. A removed order, or
// one removed and submitted again under the same ID, yields errs.ErrObjectNotFound.
func (h *DispatchOrdersCommandHandler) settle(
	ctx context.Context,
	ran *order.Order,
	fn func(o *order.Order) error,
) error {
	return h.registry.Update(ctx, ran.ID(), func(o *order.Order) error {
		if o.Generation() != ran.Generation() {
			return errs.NewObjectNotFoundError("order", ran.ID())
		}
		return fn(o)
	})
}

func (h *DispatchOrdersCommandHandler) complete(ctx context.Context, ran *order.Order, log *slog.Logger) error {
	var snapshot *order.Order
	if err := h.settle(ctx, ran, func(o *order.Order) error {
		if err := o.Complete(); err != nil {
			return err
		}
		snapshot = o.Clone()
		return nil
	}); err != nil {
		return err
	}

	removed, err := h.registry.RemoveGeneration(ctx, ran.ID(), ran.Generation())
	if err != nil {
		return err
	}
	if !removed {
		return errs.NewObjectNotFoundError("order", ran.ID())
	}

	log.Info("order completed")
	publish(ctx, h.publisher, log, newOrderEvent(ports.OrderCompleted, snapshot, ""))
	return nil
}

func (h *DispatchOrdersCommandHandler) retryOrDeadLetter(
	ctx context.Context,
	ran *order.Order,
	res saga.Result,
	log *slog.Logger,
) error {
	var (
		snapshot *order.Order
		requeue  bool
	)
	if err := h.settle(ctx, ran, func(o *order.Order) error {
		o.RecordFailure(res.Err)
		requeue = o.HasAttemptsLeft(h.maxAttempts)
		if !requeue {
			cause := fmt.Errorf("%w after %d attempts: %w", ErrRetryBudgetExhausted, o.Attempts(), res.Err)
			if err := o.DeadLetter(cause); err != nil {
				return err
			}
		}
		snapshot = o.Clone()
		return nil
	}); err != nil {
		return err
	}

	if !requeue {
		return h.recordDeadLetter(ctx, snapshot, res, log)
	}

	if err := h.queue.Push(ctx, snapshot); err != nil {
		return fmt.Errorf("requeue order: %w", err)
	}

	log.Warn("order requeued after transient failure",
		"attempts", snapshot.Attempts(),
		"max_attempts", h.maxAttempts,
		"error", res.Err,
	)
	publish(ctx, h.publisher, log, newOrderEvent(ports.OrderRequeued, snapshot, snapshot.LastError()))
	return nil
}

func (h *DispatchOrdersCommandHandler) deadLetter(
	ctx context.Context,
	ran *order.Order,
	res saga.Result,
	log *slog.Logger,
) error {
	var snapshot *order.Order
	if err := h.settle(ctx, ran, func(o *order.Order) error {
		if err := o.DeadLetter(res.Err); err != nil {
			return err
		}
		snapshot = o.Clone()
		return nil
	}); err != nil {
		return err
	}

	return h.recordDeadLetter(ctx, snapshot, res, log)
}

func (h *DispatchOrdersCommandHandler) recordDeadLetter(
	ctx context.Context,
	o *order.Order,
	res saga.Result,
	log *slog.Logger,
) error {
	dl := ports.DeadLetter{
		OrderID:     o.ID(),
		FlightID:    o.FlightID(),
		Kind:        o.Kind().String(),
		VehicleKind: o.VehicleKind().String(),
		Passengers:  o.Passengers(),
		Attempts:    o.Attempts(),
		Reason:      o.LastError(),
		Journal:     make([]ports.JournalEntry, 0, len(res.Journal)),
		CreatedAt:   time.Now().UTC(),
	}
	for _, step := range res.Journal {
		dl.Journal = append(dl.Journal, ports.JournalEntry{
			Step:     step.Name,
			Status:   string(step.Status),
			Duration: step.Duration,
			Detail:   step.Detail,
		})
	}

	if err := h.deadLetters.Save(ctx, dl); err != nil {
		return fmt.Errorf("save dead letter: %w", err)
	}

	log.Warn("order dead-lettered",
		"attempts", o.Attempts(),
		"outcome", res.Outcome.String(),
		"reason", dl.Reason,
	)
	publish(ctx, h.publisher, log, newOrderEvent(ports.OrderDeadLettered, o, dl.Reason))
	return nil
}
