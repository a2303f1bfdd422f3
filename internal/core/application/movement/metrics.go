package movement

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
	hops        prometheus.Counter
	denials     prometheus.Counter
	rebuilds    prometheus.Counter
	legsAborted prometheus.Counter
}

// newMetrics registers the movement metrics once per process.
//
// Metrics:
//   - groundhandling_movement_hops_total - granted hops
//   - groundhandling_movement_denials_total - denied permission requests
//   - groundhandling_movement_route_rebuilds_total - routes replaced after a stall
//   - groundhandling_movement_legs_aborted_total - legs given up after the rebuild budget
func newMetrics() *metrics {
	metricsOnce.Do(func() {
		globalMetrics = &metrics{
			hops: promauto.NewCounter(prometheus.CounterOpts{
				Name: "groundhandling_movement_hops_total",
				Help: "Total number of granted movement hops",
			}),
			denials: promauto.NewCounter(prometheus.CounterOpts{
				Name: "groundhandling_movement_denials_total",
				Help: "Total number of denied movement permission requests",
			}),
			rebuilds: promauto.NewCounter(prometheus.CounterOpts{
				Name: "groundhandling_movement_route_rebuilds_total",
				Help: "Total number of routes rebuilt after a stall",
			}),
			legsAborted: promauto.NewCounter(prometheus.CounterOpts{
				Name: "groundhandling_movement_legs_aborted_total",
				Help: "Total number of legs aborted after exhausting route rebuilds",
			}),
		}
	})
	return globalMetrics
}
