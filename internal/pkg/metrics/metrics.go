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

type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	bookingOutcomes *prometheus.CounterVec
	panicsRecovered prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: []float64{0.001, 0.01, 0.1, 0.3, 0.6, 1, 3, 6},
		}, []string{"route", "method"}),
		bookingOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_attempts_total",
			Help: "Booking creation attempts by outcome.",
		}, []string{"outcome"}),
		panicsRecovered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "http_req_panics_recovered_total",
			Help: "Total number of HTTP requests recovered from internal panic.",
		}),
	}
	reg.MustRegister(
		m.requests,
		m.requestDuration,
		m.bookingOutcomes,
		m.panicsRecovered,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler exposes the registry in the OpenMetrics format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *Metrics) RecordBookingOutcome(outcome string) {
	m.bookingOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PanicRecovered() {
	m.panicsRecovered.Inc()
}

// Middleware records request counts and latency keyed by the matched route
// template, so path parameters do not explode label cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
