package store

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics contains Prometheus collectors for store operations. Collectors
// register once on the default registry and are shared by every Store.
type metrics struct {
	operations    *prometheus.CounterVec
	documentBytes prometheus.Histogram
}

var (
	metricsOnce sync.Once
	shared      *metrics
)

func storeMetrics() *metrics {
	metricsOnce.Do(func() {
		shared = &metrics{
			operations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "astral_store_operations_total",
					Help: "Total number of tree store operations by status",
				},
				[]string{"operation", "status"},
			),
			documentBytes: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "astral_store_document_bytes",
					Help:    "Size of saved tree documents in bytes",
					Buckets: prometheus.ExponentialBuckets(256, 4, 8),
				},
			),
		}
	})
	return shared
}

func (m *metrics) observe(operation, status string) {
	m.operations.WithLabelValues(operation, status).Inc()
}
