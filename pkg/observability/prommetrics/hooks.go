// Package prommetrics implements the observability hooks on top of
// Prometheus client_golang.
//
// Metrics (all prefixed with "vehiclelookup_"):
//
//   - http_requests_total{method,path,status}: completed upstream requests
//   - http_request_duration_seconds{method,path}: upstream latency
//   - http_errors_total{method,path}: transport failures (no response)
//   - lookups_total{resource,result}: lookup outcomes ("ok" or "error")
//   - lookup_duration_seconds{resource}: end-to-end lookup latency
package prommetrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/vehiclelookup/pkg/observability"
)

const namespace = "vehiclelookup"

// Hooks records HTTP and lookup events as Prometheus metrics.
// It implements both [observability.HTTPHooks] and [observability.LookupHooks].
type Hooks struct {
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	httpErrors     *prometheus.CounterVec
	lookups        *prometheus.CounterVec
	lookupLatency  *prometheus.HistogramVec
}

// New creates Hooks and registers its collectors with reg.
// Passing the same registerer twice panics, like prometheus.MustRegister.
func New(reg prometheus.Registerer) *Hooks {
	h := &Hooks{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Upstream vehicle API requests that received a response.",
		}, []string{"method", "path", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Upstream vehicle API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Upstream vehicle API requests that failed without a response.",
		}, []string{"method", "path"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Vehicle lookups by resource and result.",
		}, []string{"resource", "result"}),
		lookupLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Vehicle lookup latency including decoding and sorting.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource"}),
	}
	reg.MustRegister(h.requests, h.requestLatency, h.httpErrors, h.lookups, h.lookupLatency)
	return h
}

// OnRequest is a no-op; requests are counted once they complete.
func (h *Hooks) OnRequest(context.Context, string, string, string) {}

// OnResponse counts the response and observes its latency.
func (h *Hooks) OnResponse(_ context.Context, method, _, path string, statusCode int, duration time.Duration) {
	h.requests.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	h.requestLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}

// OnError counts a transport failure.
func (h *Hooks) OnError(_ context.Context, method, _, path string, _ error) {
	h.httpErrors.WithLabelValues(method, path).Inc()
}

// OnLookupComplete counts the lookup outcome and observes its latency.
func (h *Hooks) OnLookupComplete(_ context.Context, resource string, _ int, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	h.lookups.WithLabelValues(resource, result).Inc()
	h.lookupLatency.WithLabelValues(resource).Observe(duration.Seconds())
}

var (
	_ observability.HTTPHooks   = (*Hooks)(nil)
	_ observability.LookupHooks = (*Hooks)(nil)
)
