package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// toolCallsTotal counts tool invocations by tool and outcome.
	toolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gosimp_tool_calls_total",
		Help: "Total tool calls by tool and status",
	}, []string{"tool", "status"})

	// toolCallDuration tracks tool latency.
	toolCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gosimp_tool_call_duration_seconds",
		Help:    "Tool call duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14), // 50us to ~400ms
	}, []string{"tool"})

	// batchSize tracks the number of requests per batch.
	batchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gosimp_batch_size",
		Help:    "Number of tool requests per batch",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})

	// httpRequestsTotal counts HTTP requests by route and status code.
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gosimp_http_requests_total",
		Help: "Total HTTP requests by route and status code",
	}, []string{"route", "code"})
)

// ObserveToolCall records one tool call. status is "ok" or "error".
func ObserveToolCall(tool, status string, d time.Duration) {
	toolCallsTotal.WithLabelValues(tool, status).Inc()
	toolCallDuration.WithLabelValues(tool).Observe(d.Seconds())
}

// ObserveBatch records the size of one batch.
func ObserveBatch(n int) {
	batchSize.Observe(float64(n))
}

// ObserveHTTPRequest records one served HTTP request.
func ObserveHTTPRequest(route, code string) {
	httpRequestsTotal.WithLabelValues(route, code).Inc()
}

// MetricsHandler serves the default Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
