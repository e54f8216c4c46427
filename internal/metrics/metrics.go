// Package metrics exposes HTTP and domain metrics in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names.
const (
	MetricRequestsTotal          = "resource_api_http_requests_total"
	MetricRequestDurationSeconds = "resource_api_http_request_duration_seconds"
	MetricAssignmentEventsTotal  = "resource_api_assignment_events_total"
)

// Registry owns the collectors of one server instance.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Registry struct {
	registry         *prometheus.Registry
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	assignmentEvents *prometheus.CounterVec
}

// NewRegistry creates a registry with HTTP, Go runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRequestsTotal,
			Help: "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricRequestDurationSeconds,
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		assignmentEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricAssignmentEventsTotal,
			Help: "Assignment changes by event type and publish outcome.",
		}, []string{"type", "outcome"}),
	}

	r.registry.MustRegister(
		r.requestsTotal,
		r.requestDuration,
		r.assignmentEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Middleware records one observation per request. Unmatched routes are
// grouped under a single label to keep cardinality bounded.
func (r *Registry) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		r.requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		r.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveAssignmentEvent counts an assignment event and whether it was published.
func (r *Registry) ObserveAssignmentEvent(eventType string, published bool) {
	outcome := "published"
	if !published {
		outcome = "failed"
	}
	r.assignmentEvents.WithLabelValues(eventType, outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
