package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "HTTP requests processed, by method, route and status",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "HTTP request latency, by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "status"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

// PrometheusMiddleware labels by the route pattern, not the raw URL, so
// /api/orders/:id stays one series regardless of the id.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		requestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		requestDuration.WithLabelValues(path, status).Observe(time.Since(start).Seconds())
	}
}
