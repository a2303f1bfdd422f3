package saga

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *metrics
	metricsOnce   sync.Once
)

type metrics struct {
	executions   *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
	busyVehicles *prometheus.GaugeVec
}

// newMetrics registers the saga metrics once per process.
//
// Metrics:
//   - groundhandling_saga_executions_total{template,outcome} - finished executions
//   - groundhandling_saga_step_duration_seconds{template,step} - step latency
//   - groundhandling_fleet_busy_vehicles{kind} - vehicles currently claimed
func newMetrics() *metrics {
	metricsOnce.Do(func() {
		globalMetrics = &metrics{
			executions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "groundhandling_saga_executions_total",
					Help: "Total number of finished saga executions",
				},
				[]string{"template", "outcome"},
			),
			stepDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "groundhandling_saga_step_duration_seconds",
					Help:    "Duration of saga steps in seconds",
					Buckets: []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
				},
				[]string{"template", "step"},
			),
			busyVehicles: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "groundhandling_fleet_busy_vehicles",
					Help: "Number of fleet vehicles currently claimed by a saga",
				},
				[]string{"kind"},
			),
		}
	})
	return globalMetrics
}
