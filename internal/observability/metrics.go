// Package observability exposes Prometheus metrics for the purchase order API.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Duplicate check outcomes.
const (
	DuplicateExists = "exists"
	DuplicateAbsent = "absent"
	DuplicateError  = "error"
)

// Metrics owns a private registry so tests can build as many as they like.
// A nil *Metrics records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	duplicateChecks *prometheus.CounterVec
	sheetAppends    *prometheus.CounterVec
	ordersCreated   prometheus.Counter
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "po_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "po_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	duplicates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "po_duplicate_checks_total",
		Help: "Duplicate checks by result.",
	}, []string{"result"})
	appends := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "po_sheet_appends_total",
		Help: "Spreadsheet appends by outcome (ok or the error kind).",
	}, []string{"outcome"})
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "po_orders_created_total",
		Help: "Purchase orders persisted.",
	})
	registry.MustRegister(requests, duration, duplicates, appends, created)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		duplicateChecks: duplicates,
		sheetAppends:    appends,
		ordersCreated:   created,
	}
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records count and latency for every request, labelled with the
// matched route template rather than the raw path.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) DuplicateCheck(result string) {
	if m == nil {
		return
	}
	m.duplicateChecks.WithLabelValues(result).Inc()
}

func (m *Metrics) SheetAppend(outcome string) {
	if m == nil {
		return
	}
	m.sheetAppends.WithLabelValues(outcome).Inc()
}

func (m *Metrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

// Registerer exposes the registry for extra collectors.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}
