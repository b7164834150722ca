// ABOUTME: Prometheus metrics for the gateway, on a registry owned by the server
// ABOUTME: Counts requests by route and status, agent calls by state and outcome
package gateway

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const metricsNamespace = "radar_gateway"

// Metrics holds the gateway collectors
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	agentCalls      *prometheus.CounterVec
	selectionAsks   prometheus.Counter
	rateLimited     prometheus.Counter
}

// NewMetrics registers the gateway collectors on a fresh registry
func NewMetrics() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		agentCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "agent_calls_total",
			Help:      "Agent completions by state and outcome.",
		}, []string{"state", "outcome"}),
		selectionAsks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "selection_requests_total",
			Help:      "Chat requests without a scope, answered with a select tool call.",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}

	toRegister := []prometheus.Collector{
		m.requests,
		m.requestDuration,
		m.agentCalls,
		m.selectionAsks,
		m.rateLimited,
		collectors.NewGoCollector(),
	}
	for _, c := range toRegister {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register gateway metric: %w", err)
		}
	}
	return m, nil
}

// Registry exposes the registry for the /metrics handler
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
