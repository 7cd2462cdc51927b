// Package metrics exposes the service's Prometheus collectors on a dedicated
// registry, keeping the scrape surface limited to what this service registers.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// SolveDuration records optimizer wall time by algorithm and outcome.
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "fleet_solve_duration_seconds", Help: "Fleet solve duration in seconds.", Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 15, 60}},
		[]string{"algorithm", "status"},
	)
	// SolveNodes counts branch-and-bound nodes explored by the exact solver.
	SolveNodes = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "fleet_solve_nodes_total", Help: "Branch-and-bound nodes explored."},
	)
)

// RegisterDefault registers collectors to the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(SolveNodes)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
