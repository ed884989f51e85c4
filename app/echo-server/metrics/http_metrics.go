package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "engagement_http_request_duration_seconds",
		Help:    "Latency of dashboard API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	RequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engagement_http_requests_total",
		Help: "Total dashboard API requests",
	}, []string{"route", "method", "status"})
)

func Init() {
	prometheus.MustRegister(RequestDuration, RequestTotal)
}

// Middleware records latency and count per route template.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)

			RequestDuration.WithLabelValues(route, c.Request().Method, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(route, c.Request().Method, status).Inc()

			return nil
		}
	}
}
