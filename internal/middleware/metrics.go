package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	stageChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_stage_changes_total",
			Help: "Total number of confirmed lead stage changes",
		},
		[]string{"outcome"},
	)

	receiptEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receipt_emails_total",
			Help: "Total number of receipt email attempts",
		},
		[]string{"status"},
	)
)

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func RecordStageChange(outcome string) {
	stageChanges.WithLabelValues(outcome).Inc()
}

func RecordReceiptEmail(status string) {
	receiptEmails.WithLabelValues(status).Inc()
}
