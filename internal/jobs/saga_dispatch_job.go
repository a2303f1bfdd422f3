package jobs

import (
	"context"
	"errors"
	"log/slog"

	"groundhandling/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchHandler starts sagas for queued orders.
type DispatchHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchOrdersCommand) error
}

// SagaDispatchJob drains the order queue every second. The handler starts the
// sagas in the background, so a tick never waits for an order to finish.
type SagaDispatchJob struct {
	handler DispatchHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSagaDispatchJob creates a new job dispatching queued orders.
func NewSagaDispatchJob(handler DispatchHandler, logger *slog.Logger) *SagaDispatchJob {
	return &SagaDispatchJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "saga_dispatch_job"),
	}
}

// Start begins the dispatch job to run every second.
func (j *SagaDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewDispatchOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// the dispatcher refuses work once shutdown has begun
			if !errors.Is(err, commands.ErrDispatcherStopped) {
				j.logger.ErrorContext(ctx, "Saga dispatch job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Saga dispatch job started (running every second)")
	return nil
}

// Stop stops the job and waits for a running tick to return.
func (j *SagaDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Saga dispatch job stopped")
}
