package audit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the audit pipeline. Create once in
// main; promauto registers on the default registry.
type Metrics struct {
	Recorded       *prometheus.CounterVec
	PersistDropped prometheus.Counter
	PersistFailed  prometheus.Counter
	Exports        *prometheus.CounterVec
}

// NewMetrics creates and registers the audit pipeline metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Recorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pawdesk_audit_entries_recorded_total",
			Help: "Total number of audit entries recorded, by category",
		}, []string{"category"}),
		PersistDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawdesk_audit_persist_dropped_total",
			Help: "Total number of audit entries dropped because the persist queue was full",
		}),
		PersistFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawdesk_audit_persist_failures_total",
			Help: "Total number of audit entry persistence failures",
		}),
		Exports: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pawdesk_audit_export_requests_total",
			Help: "Total number of audit export requests, by format",
		}, []string{"format"}),
	}
}

// IncRecorded increments the recorded counter for a category.
func (m *Metrics) IncRecorded(category Category) {
	m.Recorded.WithLabelValues(string(category)).Inc()
}

// IncPersistDropped increments the persist-queue drop counter.
func (m *Metrics) IncPersistDropped() {
	m.PersistDropped.Inc()
}

// IncPersistFailed increments the persistence failure counter.
func (m *Metrics) IncPersistFailed() {
	m.PersistFailed.Inc()
}

// IncExport increments the export counter for a format ("json" or "csv").
func (m *Metrics) IncExport(format string) {
	m.Exports.WithLabelValues(format).Inc()
}
