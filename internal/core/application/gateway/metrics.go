package gateway

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
	attempts *prometheus.CounterVec
}

// newMetrics registers the gateway metrics once per process.
//
// Metrics:
//   - groundhandling_gateway_attempts_total{call,result} - single outbound requests by outcome
func newMetrics() *metrics {
	metricsOnce.Do(func() {
		globalMetrics = &metrics{
			attempts: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "groundhandling_gateway_attempts_total",
					Help: "Total number of outbound service requests",
				},
				[]string{"call", "result"}, // result: "ok", "denied", "transport_error"
			),
		}
	})
	return globalMetrics
}
