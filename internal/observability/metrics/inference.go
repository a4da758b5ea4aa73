package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// InferenceMetrics contains the Prometheus collectors for the inference
// pipeline. It implements Recorder.
type InferenceMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec

	candidates    prometheus.Histogram
	corpusRecords prometheus.Gauge
}

// NewInferenceMetrics creates the collectors and registers them.
func NewInferenceMetrics(registry *prometheus.Registry) (*InferenceMetrics, error) {
	m := &InferenceMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register inference metrics: %w", err)
	}
	return m, nil
}

func (m *InferenceMetrics) initMetrics() {
	m.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inference_operations_total",
			Help: "Total number of inference pipeline operations",
		},
		[]string{"operation", "status"},
	)
	m.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inference_operation_duration_seconds",
			Help:    "Time taken by inference pipeline operations",
			Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount15), // 1ms to ~16s
		},
		[]string{"operation"},
	)
	m.errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inference_errors_total",
			Help: "Total number of inference errors",
		},
		[]string{"operation", "error_type"}, // error_type: input, store_unavailable
	)
	m.candidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "inference_candidates",
			Help:    "Number of candidates above the match threshold per request",
			Buckets: prometheus.ExponentialBuckets(BucketStart1, BucketFactor2, BucketCount12),
		},
	)
	m.corpusRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inference_corpus_records",
			Help: "Number of symptom records scanned by the most recent request",
		},
	)
}

// RecordOperation implements Recorder.
func (m *InferenceMetrics) RecordOperation(operation, status string) {
	m.operationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordDuration implements Recorder.
func (m *InferenceMetrics) RecordDuration(operation string, seconds float64) {
	m.operationDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordError implements Recorder.
func (m *InferenceMetrics) RecordError(operation, errorType string) {
	m.errorsTotal.WithLabelValues(operation, errorType).Inc()
}

// ObserveCandidates records how many candidates a request produced.
func (m *InferenceMetrics) ObserveCandidates(n int) {
	m.candidates.Observe(float64(n))
}

// SetCorpusRecords records the size of the scanned corpus.
func (m *InferenceMetrics) SetCorpusRecords(n int) {
	m.corpusRecords.Set(float64(n))
}

// Describe implements prometheus.Collector.
func (m *InferenceMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.operationsTotal.Describe(ch)
	m.operationDuration.Describe(ch)
	m.errorsTotal.Describe(ch)
	ch <- m.candidates.Desc()
	ch <- m.corpusRecords.Desc()
}

// Collect implements prometheus.Collector.
func (m *InferenceMetrics) Collect(ch chan<- prometheus.Metric) {
	m.operationsTotal.Collect(ch)
	m.operationDuration.Collect(ch)
	m.errorsTotal.Collect(ch)
	ch <- m.candidates
	ch <- m.corpusRecords
}
