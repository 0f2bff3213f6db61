// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "inventory",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inventory",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "inventory",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	saleOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inventory",
			Subsystem: "sales",
			Name:      "operations_total",
			Help:      "Sale create/update/delete attempts by outcome.",
		},
		[]string{"op", "outcome"},
	)

	unitsSold = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "inventory",
			Subsystem: "sales",
			Name:      "units_sold_total",
			Help:      "Units decremented from stock by newly recorded sales.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		saleOperations,
		unitsSold,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Sale outcomes.
const (
	OutcomeOK                = "ok"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeNotFound          = "not_found"
	OutcomeError             = "error"
)

// RecordSale counts one sale operation ("create", "update" or "delete").
func RecordSale(op, outcome string) {
	saleOperations.WithLabelValues(op, outcome).Inc()
}

// RecordUnitsSold adds n units to the sold counter. Non-positive n is ignored.
func RecordUnitsSold(n int) {
	if n <= 0 {
		return
	}
	unitsSold.Add(float64(n))
}

// InFlight tracks a request for the duration of the returned func.
func InFlight() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// ObserveRequest records one finished HTTP request. route should be the
// matched route template, not the raw path, to keep label cardinality bounded.
func ObserveRequest(method, route, status string, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}
