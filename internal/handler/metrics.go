package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/middleware"
)

// Metrics holds the Prometheus collectors for the API. They exist from
// package init so handlers can record before InitMetrics registers them.
var Metrics = struct {
	Reactions        *prometheus.CounterVec
	Registrations    prometheus.Counter
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
}{
	Reactions: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viewtube_reactions_total",
			Help: "Accepted video reactions, by kind.",
		},
		[]string{"reaction"},
	),
	Registrations: prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "viewtube_registrations_total",
			Help: "Accounts registered.",
		},
	),
	RequestDuration: prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "viewtube_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	),
	RequestsInFlight: prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "viewtube_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	),
}

// InitMetrics registers all collectors with reg. Call once at startup.
func InitMetrics(reg prometheus.Registerer, pool *pgxpool.Pool) {
	reg.MustRegister(
		Metrics.Reactions,
		Metrics.Registrations,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
	)

	// DB pool gauges read live stats from pgxpool.
	if pool != nil {
		reg.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "viewtube_db_connection_pool_active",
					Help: "Number of active database connections.",
				},
				func() float64 { return float64(pool.Stat().AcquiredConns()) },
			),
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "viewtube_db_connection_pool_idle",
					Help: "Number of idle database connections.",
				},
				func() float64 { return float64(pool.Stat().IdleConns()) },
			),
		)
	}
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Fiber strings are backed by fasthttp buffers that handlers may
		// reuse; copy them before c.Next().
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := middleware.SanitizePath(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler(gatherer prometheus.Gatherer) fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
