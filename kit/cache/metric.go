package cache

import (
	"time"

	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

// CreateMetricsObserver registers a latency summary on the default prometheus registry,
// call it once per namespace and subsystem.
func CreateMetricsObserver(namespace, subsystem string) LatencyObserver {
	operationLatency := kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "cache_operation_latency_seconds",
		Help:      "Duration of cache operations in seconds.",
	}, []string{"operation"})

	return func(operation string, elapsed time.Duration) {
		operationLatency.With("operation", operation).Observe(elapsed.Seconds())
	}
}
