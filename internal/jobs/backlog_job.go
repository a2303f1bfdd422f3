package jobs

import (
	"context"
	"log/slog"
	"sync"

	"groundhandling/internal/core/application/usecases/queries"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
)

var (
	backlogOnce     sync.Once
	backlogGauges   *prometheus.GaugeVec
	queueDepthGauge prometheus.Gauge
)

func backlogMetrics() (*prometheus.GaugeVec, prometheus.Gauge) {
	backlogOnce.Do(func() {
		backlogGauges = promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "groundhandling_orders",
			Help: "Orders in the active set by status.",
		}, []string{"status"})
		queueDepthGauge = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "groundhandling_order_queue_depth",
			Help: "Orders waiting for a saga worker.",
		})
	})
	return backlogGauges, queueDepthGauge
}

// ActiveOrdersHandler lists the active order set.
type ActiveOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListActiveOrdersQuery) ([]queries.ListActiveOrdersQueryResponse, error)
}

// QueueLen reports the number of queued orders.
type QueueLen interface {
	Len() int
}

// BacklogJob samples the active order set and the queue depth into gauges
// every five seconds.
type BacklogJob struct {
	handler ActiveOrdersHandler
	queue   QueueLen
	cron    *cron.Cron
	logger  *slog.Logger
	byState *prometheus.GaugeVec
	depth   prometheus.Gauge
}

// NewBacklogJob creates a new backlog sampling job.
func NewBacklogJob(handler ActiveOrdersHandler, queue QueueLen, logger *slog.Logger) *BacklogJob {
	byState, depth := backlogMetrics()
	return &BacklogJob{
		handler: handler,
		queue:   queue,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "backlog_job"),
		byState: byState,
		depth:   depth,
	}
}

// Start begins sampling every five seconds.
func (j *BacklogJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		j.Sample(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Backlog job started (running every 5 seconds)")
	return nil
}

// Sample takes one measurement.
func (j *BacklogJob) Sample(ctx context.Context) {
	orders, err := j.handler.Handle(ctx, queries.NewListActiveOrdersQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Backlog job failed", "error", err)
		return
	}

	counts := map[string]int{"Active": 0, "DeadLettered": 0}
	for _, o := range orders {
		counts[o.Status]++
	}
	for status, n := range counts {
		j.byState.WithLabelValues(status).Set(float64(n))
	}
	j.depth.Set(float64(j.queue.Len()))
}

// Stop stops the backlog job.
func (j *BacklogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Backlog job stopped")
}
