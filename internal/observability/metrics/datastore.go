package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// DatastoreMetrics tracks knowledge base sessions and queries. It
// implements Recorder; operations may carry a table suffix as
// "db_query:Species".
type DatastoreMetrics struct {
	sessionsTotal   *prometheus.CounterVec
	activeSessions  prometheus.Gauge
	queriesTotal    *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
	maintenanceRuns *prometheus.CounterVec
}

// NewDatastoreMetrics creates and registers datastore metrics.
func NewDatastoreMetrics(registry *prometheus.Registry) (*DatastoreMetrics, error) {
	m := &DatastoreMetrics{
		sessionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datastore_sessions_total",
				Help: "Total number of store sessions opened",
			},
			[]string{"driver", "status"},
		),
		activeSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "datastore_active_sessions",
				Help: "Number of currently open store sessions",
			},
		),
		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datastore_queries_total",
				Help: "Total number of store queries",
			},
			[]string{"table", "status"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "datastore_query_duration_seconds",
				Help:    "Time taken by store queries",
				Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount12),
			},
			[]string{"table"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datastore_errors_total",
				Help: "Total number of store errors",
			},
			[]string{"operation", "error_type"},
		),
		maintenanceRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datastore_maintenance_total",
				Help: "Total number of seed and migrate runs",
			},
			[]string{"operation", "status"},
		),
	}
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register datastore metrics: %w", err)
	}
	return m, nil
}

// parseTableFromOperation splits "db_query:Species" into its parts.
func parseTableFromOperation(operation string) (op, table string) {
	op, table, found := strings.Cut(operation, ":")
	if !found {
		return operation, "unknown"
	}
	return op, table
}

// RecordOperation implements Recorder.
func (m *DatastoreMetrics) RecordOperation(operation, status string) {
	op, table := parseTableFromOperation(operation)
	switch op {
	case OpDbQuery:
		m.queriesTotal.WithLabelValues(table, status).Inc()
	case OpOpenSession:
		m.sessionsTotal.WithLabelValues(table, status).Inc()
	case OpSeed, OpMigrate:
		m.maintenanceRuns.WithLabelValues(op, status).Inc()
	}
}

// RecordDuration implements Recorder.
func (m *DatastoreMetrics) RecordDuration(operation string, seconds float64) {
	if op, table := parseTableFromOperation(operation); op == OpDbQuery {
		m.queryDuration.WithLabelValues(table).Observe(seconds)
	}
}

// RecordError implements Recorder.
func (m *DatastoreMetrics) RecordError(operation, errorType string) {
	op, _ := parseTableFromOperation(operation)
	m.errorsTotal.WithLabelValues(op, errorType).Inc()
}

// SessionOpened and SessionClosed track the open session gauge.
func (m *DatastoreMetrics) SessionOpened() { m.activeSessions.Inc() }
func (m *DatastoreMetrics) SessionClosed() { m.activeSessions.Dec() }

// Describe implements prometheus.Collector.
func (m *DatastoreMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.sessionsTotal.Describe(ch)
	ch <- m.activeSessions.Desc()
	m.queriesTotal.Describe(ch)
	m.queryDuration.Describe(ch)
	m.errorsTotal.Describe(ch)
	m.maintenanceRuns.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *DatastoreMetrics) Collect(ch chan<- prometheus.Metric) {
	m.sessionsTotal.Collect(ch)
	ch <- m.activeSessions
	m.queriesTotal.Collect(ch)
	m.queryDuration.Collect(ch)
	m.errorsTotal.Collect(ch)
	m.maintenanceRuns.Collect(ch)
}
