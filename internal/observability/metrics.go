package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	httpRequestsTotal      *prometheus.CounterVec
	httpLatencySeconds     *prometheus.HistogramVec
	httpErrorsTotal        *prometheus.CounterVec
	pageRequestsTotal      *prometheus.CounterVec
	pageLatencySeconds     prometheus.Histogram
	upstreamRequestsTotal  *prometheus.CounterVec
	upstreamLatencySeconds *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors used by the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		pageRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activity_page_requests_total",
			Help: "Activity page requests by outcome (hit, miss, error).",
		}, []string{"outcome"})

		pageLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "activity_page_latency_seconds",
			Help:    "Latency distribution for assembling one activity page.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		upstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Requests issued to the Atlas API by endpoint and status.",
		}, []string{"endpoint", "status"})

		upstreamLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "upstream_latency_seconds",
			Help:    "Latency distribution for Atlas API calls.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"endpoint"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			pageRequestsTotal,
			pageLatencySeconds,
			upstreamRequestsTotal,
			upstreamLatencySeconds,
		)
	})
}

// HTTPRequests exposes the counter for served API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for served API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// ActivityPageRequests exposes the counter for activity page outcomes.
func ActivityPageRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return pageRequestsTotal
}

// ActivityPageLatency exposes the histogram for activity page assembly.
func ActivityPageLatency() prometheus.Histogram {
	RegisterMetrics()
	return pageLatencySeconds
}

// UpstreamRequests exposes the counter for Atlas API calls.
func UpstreamRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return upstreamRequestsTotal
}

// UpstreamLatency exposes the latency histogram for Atlas API calls.
func UpstreamLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return upstreamLatencySeconds
}
