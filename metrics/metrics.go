package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests handled, by method, path, and status.",
	}, []string{"method", "path", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// OrdersCreated counts orders accepted by the create endpoint.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders created.",
	})

	// OrdersPaid counts successful mark-paid transitions, including repeats.
	OrdersPaid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_paid_total",
		Help: "Orders marked paid.",
	})

	// OrdersShipped counts mark-shipped transitions.
	OrdersShipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_shipped_total",
		Help: "Orders marked shipped.",
	})

	// OrdersDelivered counts mark-delivered transitions.
	OrdersDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_delivered_total",
		Help: "Orders marked delivered.",
	})
)

// Middleware records per-request counters and latency. The route path
// template is used rather than the raw URL to keep cardinality bounded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			httpRequests.WithLabelValues(c.Request().Method, path, strconv.Itoa(c.Response().Status)).Inc()
			httpDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
