package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	httpKit "github.com/superj80820/tinyurl/kit/http"
)

// CreateMetrics registers its collectors on the default prometheus registry, so build it once
// per namespace and subsystem and share the middleware between endpoints.
func CreateMetrics(namespace, subsystem string) endpoint.Middleware {
	fieldKeys := []string{"method", "path", "error"}
	requestCount := kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_count",
		Help:      "Number of requests received.",
	}, fieldKeys)
	requestLatency := kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_latency_seconds",
		Help:      "Total duration of requests in seconds.",
	}, fieldKeys)

	return createMetrics(requestCount, requestLatency)
}

func createMetrics(requestCount metrics.Counter, requestLatency metrics.Histogram) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				lvs := []string{"method", httpKit.GetMethod(ctx), "path", httpKit.GetURL(ctx), "error", fmt.Sprint(err != nil)}
				requestCount.With(lvs...).Add(1)
				requestLatency.With(lvs...).Observe(time.Since(begin).Seconds())
			}(time.Now())
			return next(ctx, request)
		}
	}
}
