package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ShipmentsCreated prometheus.Counter
	ShipmentsUpdated prometheus.Counter
	ShipmentsDeleted prometheus.Counter
	RequestDuration  *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ShipmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "freightdesk_shipments_created_total",
			Help: "Total number of shipments created",
		}),
		ShipmentsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "freightdesk_shipments_updated_total",
			Help: "Total number of shipment updates persisted",
		}),
		ShipmentsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "freightdesk_shipments_deleted_total",
			Help: "Total number of shipments deleted",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "freightdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// NewForTest builds an unregistered Metrics so parallel tests do not collide
// on the default registry.
func NewForTest() *Metrics {
	return &Metrics{
		ShipmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{Name: "test_shipments_created_total"}),
		ShipmentsUpdated: prometheus.NewCounter(prometheus.CounterOpts{Name: "test_shipments_updated_total"}),
		ShipmentsDeleted: prometheus.NewCounter(prometheus.CounterOpts{Name: "test_shipments_deleted_total"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "test_http_request_duration_seconds",
		}, []string{"method", "path"}),
	}
}

// ObserveRequest records a request latency observation.
func (m *Metrics) ObserveRequest(method, path string, seconds float64) {
	if m == nil || m.RequestDuration == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// IncShipmentsCreated increments the created counter by 1.
func (m *Metrics) IncShipmentsCreated() {
	if m != nil && m.ShipmentsCreated != nil {
		m.ShipmentsCreated.Inc()
	}
}

// IncShipmentsUpdated increments the updated counter by 1.
func (m *Metrics) IncShipmentsUpdated() {
	if m != nil && m.ShipmentsUpdated != nil {
		m.ShipmentsUpdated.Inc()
	}
}

// IncShipmentsDeleted increments the deleted counter by 1.
func (m *Metrics) IncShipmentsDeleted() {
	if m != nil && m.ShipmentsDeleted != nil {
		m.ShipmentsDeleted.Inc()
	}
}
