package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	LifecycleEventCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_event_count",
			Help: "Total number of lifecycle events emitted by the core",
		},
		[]string{"routing_key"},
	)

	EventPublishFailureCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_publish_failure_count",
			Help: "Total number of lifecycle events the publisher could not deliver",
		},
		[]string{"routing_key"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func IncrementLifecycleEvent(routingKey string) {
	LifecycleEventCount.WithLabelValues(routingKey).Inc()
}

func IncrementEventPublishFailure(routingKey string) {
	EventPublishFailureCount.WithLabelValues(routingKey).Inc()
}
