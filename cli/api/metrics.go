package api

import (
	"strconv"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"
)

// meterRequests returns a middleware counting requests and observing their
// duration, labeled by operation and response status.
func meterRequests(set *metrics.Set) func(huma.Context, func(huma.Context)) {
	buckets := metrics.ExponentialBuckets(1e-3, 5, 6) //nolint: mnd // arbitrary

	return func(ctx huma.Context, next func(huma.Context)) {
		op, start := ctx.Operation(), time.Now()
		next(ctx)

		labels := joinQuote("{method=", op.Method, ",path=", op.Path, ",status=", strconv.Itoa(ctx.Status()), "}") //nolint: golines
		set.GetOrCreateCounter("http_requests_total" + labels).Inc()
		set.GetOrCreatePrometheusHistogramExt("http_request_duration_seconds"+labels, buckets).UpdateDuration(start)
	}
}
