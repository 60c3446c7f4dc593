package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agreste_requests_total",
		Help: "Total number of API requests by route and status",
	}, []string{"route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agreste_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	ProjectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agreste_projections_total",
		Help: "Total number of year projections built",
	})
	ChartCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agreste_chart_cache_hits_total",
		Help: "Total chart cache hits",
	})
	ChartCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agreste_chart_cache_misses_total",
		Help: "Total chart cache misses",
	})
	ChartRenderDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "agreste_chart_render_duration_ms",
		Help:    "Chart rendering duration in milliseconds",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500, 1000},
	})
	ImportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agreste_imports_total",
		Help: "Dataset imports by outcome",
	}, []string{"status"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(ProjectionsTotal)
	prometheus.MustRegister(ChartCacheHitsTotal)
	prometheus.MustRegister(ChartCacheMissesTotal)
	prometheus.MustRegister(ChartRenderDurationMs)
	prometheus.MustRegister(ImportsTotal)
}

func Handler() http.Handler { return promhttp.Handler() }

// Middleware records the count and latency of every request under its route pattern.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			status := ctx.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			route := ctx.Path()
			RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
			RequestDurationMs.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))

			return err
		}
	}
}
