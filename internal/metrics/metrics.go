// Package metrics exposes prometheus collectors for HTTP traffic, LLM
// calls and router rules.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sant0-9/hookline/internal/llm"
)

const namespace = "hookline"

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	LLMCallTotal    *prometheus.CounterVec
	LLMCallDuration *prometheus.HistogramVec

	RuleTotal    *prometheus.CounterVec
	RuleDuration *prometheus.HistogramVec

	WebsocketConnections prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers every collector on reg. A nil reg means a fresh
// registry, which keeps tests independent.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "path"},
		),
		LLMCallTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "llm",
				Name:      "call_total",
				Help:      "Total number of LLM calls",
			},
			[]string{"provider", "role", "status"},
		),
		LLMCallDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "llm",
				Name:      "call_duration_seconds",
				Help:      "LLM call duration in seconds",
				Buckets:   []float64{.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"provider", "role"},
		),
		RuleTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "router",
				Name:      "turns_total",
				Help:      "Turns handled, by matching rule",
			},
			[]string{"rule", "status"},
		),
		RuleDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "router",
				Name:      "turn_duration_seconds",
				Help:      "Turn handling duration in seconds",
				Buckets:   []float64{.001, .01, .1, 1, 5, 10, 30, 60, 120},
			},
			[]string{"rule"},
		),
		WebsocketConnections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "websocket_connections",
			Help:      "Open websocket chat connections",
		}),
		gatherer: reg,
	}
}

// status labels an outcome: "ok", the provider error kind, or "error".
func status(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := llm.KindOf(err); kind != "" {
		return string(kind)
	}
	return "error"
}

// ObserveCompletion implements llm.Observer.
func (m *Metrics) ObserveCompletion(provider, role string, d time.Duration, err error) {
	m.LLMCallTotal.WithLabelValues(provider, role, status(err)).Inc()
	m.LLMCallDuration.WithLabelValues(provider, role).Observe(d.Seconds())
}

// ObserveRule implements router.RuleObserver.
func (m *Metrics) ObserveRule(rule string, d time.Duration, err error) {
	m.RuleTotal.WithLabelValues(rule, status(err)).Inc()
	m.RuleDuration.WithLabelValues(rule).Observe(d.Seconds())
}

// Middleware records request counts and latency by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		c.Next()

		code := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
