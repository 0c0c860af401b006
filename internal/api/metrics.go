package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MJE43/rtp-audit/internal/audit"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	AuditDuration prometheus.Histogram
	AuditFailures prometheus.Gauge
	AuditRuns     *prometheus.CounterVec
	CacheRequests *prometheus.CounterVec
	RateLimited   prometheus.Counter
}

// NewMetrics registers every collector on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		AuditDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rtp_audit_run_duration_seconds",
				Help:    "Wall time of completed audit runs",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 14),
			},
		),
		AuditFailures: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "rtp_audit_last_failures",
				Help: "Out-of-tolerance scenarios in the most recent audit run",
			},
		),
		AuditRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rtp_audit_runs_total",
				Help: "Audit runs by overall status",
			},
			[]string{"status"},
		),
		CacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rtp_audit_cache_requests_total",
				Help: "Audit response cache lookups",
			},
			[]string{"result"},
		),
		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "http_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.AuditDuration,
		m.AuditFailures,
		m.AuditRuns,
		m.CacheRequests,
		m.RateLimited,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveAudit records a completed audit run.
func (m *Metrics) ObserveAudit(report *audit.Report) {
	m.AuditDuration.Observe(float64(report.DurationMs) / 1000)
	m.AuditFailures.Set(float64(report.TotalFailures))
	m.AuditRuns.WithLabelValues(string(report.OverallStatus)).Inc()
}

// Middleware counts requests by the matched chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
