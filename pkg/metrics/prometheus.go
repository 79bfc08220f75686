// Package metrics provides Prometheus metrics for the star catalogue merge.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics of a merge run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Ingestion
	linesRead           *prometheus.CounterVec
	observationsDecoded *prometheus.CounterVec
	malformedLines      *prometheus.CounterVec
	decodeDuration      *prometheus.HistogramVec

	// Resolution
	mergeOutcomes       *prometheus.CounterVec
	positionWarnings    *prometheus.CounterVec
	matchVoided         *prometheus.CounterVec
	identifierConflicts *prometheus.CounterVec
	designationChanges  *prometheus.CounterVec
	catalogueRecords    prometheus.Gauge

	// Post-processing and output
	referenceMagnitude prometheus.Histogram
	distancesDerived   prometheus.Counter
	parallaxesDropped  prometheus.Counter
	outputRecords      *prometheus.CounterVec

	// Queues
	queueDepth    *prometheus.GaugeVec
	queueEnqueued *prometheus.CounterVec
	queueDequeued *prometheus.CounterVec

	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "starcat",
		subsystem:        "merge",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.linesRead = m.counterVec("lines_read_total", "Input lines read per catalogue", "catalogue")
	m.observationsDecoded = m.counterVec("observations_decoded_total", "Lines decoded into observations per catalogue", "catalogue")
	m.malformedLines = m.counterVec("malformed_lines_total", "Lines rejected as malformed per catalogue", "catalogue")
	m.decodeDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "decode_duration_seconds",
		Help:        "Wall time spent decoding each catalogue",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"catalogue"})

	m.mergeOutcomes = m.counterVec("merge_outcomes_total", "Observations merged per catalogue and outcome", "catalogue", "outcome")
	m.positionWarnings = m.counterVec("position_warnings_total", "Matches whose position moved beyond the catalogue threshold", "catalogue")
	m.matchVoided = m.counterVec("match_voided_total", "Identifier matches voided by a disagreeing identifier", "id_type")
	m.identifierConflicts = m.counterVec("identifier_conflicts_total", "Identifier conflicts by kind and outcome", "id_type", "outcome")
	m.designationChanges = m.counterVec("designation_changes_total", "Bayer or Flamsteed designations overwritten", "kind")
	m.catalogueRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "catalogue_records",
		Help:        "Records admitted to the catalogue",
		ConstLabels: m.customLabels,
	})

	m.referenceMagnitude = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reference_magnitude",
		Help:        "Distribution of reference magnitudes of emitted records",
		Buckets:     prometheus.LinearBuckets(-1.75, 0.25, 88),
		ConstLabels: m.customLabels,
	})
	m.distancesDerived = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "distances_derived_total",
		Help:        "Records given a distance from their parallax",
		ConstLabels: m.customLabels,
	})
	m.parallaxesDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "parallaxes_dropped_total",
		Help:        "Parallaxes cleared for being too small",
		ConstLabels: m.customLabels,
	})
	m.outputRecords = m.counterVec("output_records_total", "Records written per output format", "format")

	m.queueDepth = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queue_depth",
		Help:        "Observations waiting in each catalogue queue",
		ConstLabels: m.customLabels,
	}, []string{"queue"})
	m.queueEnqueued = m.counterVec("queue_enqueued_total", "Observations enqueued per queue", "queue")
	m.queueDequeued = m.counterVec("queue_dequeued_total", "Observations dequeued per queue", "queue")

	m.errorsByComponent = m.counterVec("errors_total", "Errors by component and type", "component", "error_type")
}

// RecordLines adds n lines read from a catalogue.
func (m *Manager) RecordLines(catalogue string, n int) {
	if m.enabled && n > 0 {
		m.linesRead.WithLabelValues(catalogue).Add(float64(n))
	}
}

// RecordDecoded counts one decoded observation.
func (m *Manager) RecordDecoded(catalogue string) {
	if m.enabled {
		m.observationsDecoded.WithLabelValues(catalogue).Inc()
	}
}

// RecordMalformed counts one malformed line.
func (m *Manager) RecordMalformed(catalogue string) {
	if m.enabled {
		m.malformedLines.WithLabelValues(catalogue).Inc()
	}
}

// ObserveDecodeDuration records how long a catalogue took to decode.
func (m *Manager) ObserveDecodeDuration(catalogue string, d time.Duration) {
	if m.enabled {
		m.decodeDuration.WithLabelValues(catalogue).Observe(d.Seconds())
	}
}

// RecordMergeOutcome counts one merged observation.
func (m *Manager) RecordMergeOutcome(catalogue, outcome string) {
	if m.enabled {
		m.mergeOutcomes.WithLabelValues(catalogue, outcome).Inc()
	}
}

// RecordPositionWarning counts one position-sanity warning.
func (m *Manager) RecordPositionWarning(catalogue string) {
	if m.enabled {
		m.positionWarnings.WithLabelValues(catalogue).Inc()
	}
}

// RecordMatchVoided counts a voided identifier match.
func (m *Manager) RecordMatchVoided(idType string) {
	if m.enabled {
		m.matchVoided.WithLabelValues(idType).Inc()
	}
}

// RecordIdentifierConflict counts a conflict outcome.
func (m *Manager) RecordIdentifierConflict(idType, outcome string) {
	if m.enabled {
		m.identifierConflicts.WithLabelValues(idType, outcome).Inc()
	}
}

// RecordDesignationChange counts an overwritten designation.
func (m *Manager) RecordDesignationChange(kind string) {
	if m.enabled {
		m.designationChanges.WithLabelValues(kind).Inc()
	}
}

// SetCatalogueRecords sets the admitted record gauge.
func (m *Manager) SetCatalogueRecords(n int) {
	if m.enabled {
		m.catalogueRecords.Set(float64(n))
	}
}

// ObserveReferenceMagnitude records an emitted record's reference magnitude.
func (m *Manager) ObserveReferenceMagnitude(mag float64) {
	if m.enabled {
		m.referenceMagnitude.Observe(mag)
	}
}

// RecordDistanceDerived counts a derived distance.
func (m *Manager) RecordDistanceDerived() {
	if m.enabled {
		m.distancesDerived.Inc()
	}
}

// RecordParallaxDropped counts a cleared parallax.
func (m *Manager) RecordParallaxDropped() {
	if m.enabled {
		m.parallaxesDropped.Inc()
	}
}

// RecordOutputRecords adds n written records for format.
func (m *Manager) RecordOutputRecords(format string, n int) {
	if m.enabled && n > 0 {
		m.outputRecords.WithLabelValues(format).Add(float64(n))
	}
}

// SetQueueDepth sets the depth gauge of a queue.
func (m *Manager) SetQueueDepth(queue string, n int) {
	if m.enabled {
		m.queueDepth.WithLabelValues(queue).Set(float64(n))
	}
}

// RecordQueueEnqueue counts one enqueue.
func (m *Manager) RecordQueueEnqueue(queue string) {
	if m.enabled {
		m.queueEnqueued.WithLabelValues(queue).Inc()
	}
}

// RecordQueueDequeue counts one dequeue.
func (m *Manager) RecordQueueDequeue(queue string) {
	if m.enabled {
		m.queueDequeued.WithLabelValues(queue).Inc()
	}
}

// RecordErrorByComponent counts an error.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if m.enabled {
		m.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// Package-level recorders on the global manager.

func RecordLines(catalogue string, n int) {
	globalManager.RecordLines(catalogue, n)
}

func RecordDecoded(catalogue string) {
	globalManager.RecordDecoded(catalogue)
}

func RecordMalformed(catalogue string) {
	globalManager.RecordMalformed(catalogue)
}

func ObserveDecodeDuration(catalogue string, d time.Duration) {
	globalManager.ObserveDecodeDuration(catalogue, d)
}

func RecordMergeOutcome(catalogue, outcome string) {
	globalManager.RecordMergeOutcome(catalogue, outcome)
}

func RecordPositionWarning(catalogue string) {
	globalManager.RecordPositionWarning(catalogue)
}

func RecordMatchVoided(idType string) {
	globalManager.RecordMatchVoided(idType)
}

func RecordIdentifierConflict(idType, outcome string) {
	globalManager.RecordIdentifierConflict(idType, outcome)
}

func RecordDesignationChange(kind string) {
	globalManager.RecordDesignationChange(kind)
}

func SetCatalogueRecords(n int) {
	globalManager.SetCatalogueRecords(n)
}

func ObserveReferenceMagnitude(mag float64) {
	globalManager.ObserveReferenceMagnitude(mag)
}

func RecordDistanceDerived() {
	globalManager.RecordDistanceDerived()
}

func RecordParallaxDropped() {
	globalManager.RecordParallaxDropped()
}

func RecordOutputRecords(format string, n int) {
	globalManager.RecordOutputRecords(format, n)
}

func SetQueueDepth(queue string, n int) {
	globalManager.SetQueueDepth(queue, n)
}

func RecordQueueEnqueue(queue string) {
	globalManager.RecordQueueEnqueue(queue)
}

func RecordQueueDequeue(queue string) {
	globalManager.RecordQueueDequeue(queue)
}

func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the global registry in the text exposition format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
