// Package metrics holds the tracker's prometheus collectors. They live on a
// private registry and are flushed to a node-exporter textfile on exit.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks dispatches, storage writes and reminders.
type Metrics struct {
	registry *prometheus.Registry

	ActionsDispatched    *prometheus.CounterVec
	StorageWrites        prometheus.Counter
	StorageWriteFailures prometheus.Counter
	PersistDuration      prometheus.Histogram
	NotificationsSent    prometheus.Counter
	NotificationFailures prometheus.Counter
	ImportsTotal         *prometheus.CounterVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		ActionsDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "syllabus_actions_dispatched_total",
			Help: "Total number of actions applied to the state tree",
		}, []string{"action"}),
		StorageWrites: factory.NewCounter(prometheus.CounterOpts{
			Name: "syllabus_storage_writes_total",
			Help: "Total number of successful full-state writes",
		}),
		StorageWriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "syllabus_storage_write_failures_total",
			Help: "Total number of full-state writes that failed",
		}),
		PersistDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "syllabus_persist_duration_seconds",
			Help:    "Duration of encoding and writing the state tree",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}),
		NotificationsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "syllabus_notifications_sent_total",
			Help: "Total number of revision reminders delivered",
		}),
		NotificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "syllabus_notification_failures_total",
			Help: "Total number of revision reminders that could not be delivered",
		}),
		ImportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "syllabus_backup_imports_total",
			Help: "Backup imports by outcome",
		}, []string{"outcome"}),
	}
}

// Registry exposes the private registry, for tests and exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// IncrementDispatched records one applied action.
func (m *Metrics) IncrementDispatched(action string) {
	m.ActionsDispatched.WithLabelValues(action).Inc()
}

// ObservePersist records one write attempt and how long it took.
func (m *Metrics) ObservePersist(d time.Duration, err error) {
	m.PersistDuration.Observe(d.Seconds())
	if err != nil {
		m.StorageWriteFailures.Inc()
		return
	}
	m.StorageWrites.Inc()
}

// ObserveNotification records one delivery attempt.
func (m *Metrics) ObserveNotification(err error) {
	if err != nil {
		m.NotificationFailures.Inc()
		return
	}
	m.NotificationsSent.Inc()
}

// ObserveImport records a backup import outcome.
func (m *Metrics) ObserveImport(ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.ImportsTotal.WithLabelValues(outcome).Inc()
}

// WriteTextfile writes all collectors to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
