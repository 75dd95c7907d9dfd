// Package metrics provides Prometheus metrics for the Evento registration engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the Evento service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Registration metrics
	registrationsTotal     prometheus.Counter
	registrationsDuplicate prometheus.Counter
	revenueTotal           prometheus.Counter

	// Payment simulator metrics
	paymentsStarted   prometheus.Counter
	paymentsConfirmed prometheus.Counter
	paymentsAbandoned prometheus.Counter
	paymentsInFlight  prometheus.Gauge
	paymentLatency    prometheus.Histogram

	// Artifact pipeline metrics
	artifactsGenerated *prometheus.CounterVec
	artifactErrors     *prometheus.CounterVec
	renderLatency      prometheus.Histogram

	// Artifact queue metrics
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueueErrors prometheus.Counter

	// Feed and team metrics
	notificationsPushed  prometheus.Counter
	notificationsDropped prometheus.Counter
	teamJoins            prometheus.Counter

	// Catalog metrics
	eventsActive prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
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
		namespace:        "evento",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.registrationsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "registrations_total",
		Help:      "Total number of registrations inserted into the ledger",
	})

	m.registrationsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "registrations_duplicate_total",
		Help:      "Total number of duplicate registration intents rejected",
	})

	m.revenueTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "revenue_total",
		Help:      "Sum of payment amounts across all registrations",
	})

	m.paymentsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "payments_started_total",
		Help:      "Total number of payment sessions started",
	})

	m.paymentsConfirmed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "payments_confirmed_total",
		Help:      "Total number of payment sessions that reached the success callback",
	})

	m.paymentsAbandoned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "payments_abandoned_total",
		Help:      "Total number of payment sessions cancelled before confirmation",
	})

	m.paymentsInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "payments_in_flight",
		Help:      "Number of payment sessions currently between submit and callback",
	})

	m.paymentLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "payment_latency_milliseconds",
		Help:      "Histogram of simulated payment round-trip latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.artifactsGenerated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "artifacts_generated_total",
		Help:      "Total number of artifacts generated, by kind",
	}, []string{"kind"})

	m.artifactErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "artifact_errors_total",
		Help:      "Total number of artifact generation failures, by kind",
	}, []string{"kind"})

	m.renderLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "render_latency_milliseconds",
		Help:      "Histogram of artifact render latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "artifact_queue_size",
		Help:      "Current number of queued artifact jobs",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "artifact_queue_capacity",
		Help:      "Configured capacity of the artifact job queue",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "artifact_queue_utilization",
		Help:      "Artifact queue utilization ratio (0.0-1.0)",
	})

	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "artifact_queue_enqueue_errors_total",
		Help:      "Total number of rejected artifact enqueue attempts",
	})

	m.notificationsPushed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_pushed_total",
		Help:      "Total number of notifications pushed to the feed",
	})

	m.notificationsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications evicted by the feed cap",
	})

	m.teamJoins = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "team_joins_total",
		Help:      "Total number of team join requests applied",
	})

	m.eventsActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_active",
		Help:      "Current number of events in the catalog",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers delegating to the global manager.

func RecordRegistration()                   { globalManager.registrationsTotal.Inc() }
func RecordDuplicateRegistration()          { globalManager.registrationsDuplicate.Inc() }
func RecordRevenue(amount int)              { globalManager.revenueTotal.Add(float64(amount)) }
func RecordPaymentStarted()                 { globalManager.paymentsStarted.Inc(); globalManager.paymentsInFlight.Inc() }
func RecordPaymentConfirmed()               { globalManager.paymentsConfirmed.Inc(); globalManager.paymentsInFlight.Dec() }
func RecordPaymentAbandoned()               { globalManager.paymentsAbandoned.Inc(); globalManager.paymentsInFlight.Dec() }
func RecordPaymentLatency(ms float64)       { globalManager.paymentLatency.Observe(ms) }
func RecordArtifactGenerated(kind string)   { globalManager.artifactsGenerated.WithLabelValues(kind).Inc() }
func RecordArtifactError(kind string)       { globalManager.artifactErrors.WithLabelValues(kind).Inc() }
func RecordRenderLatency(ms float64)        { globalManager.renderLatency.Observe(ms) }
func UpdateQueueSize(n int)                 { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)             { globalManager.queueCapacity.Set(float64(n)) }
func UpdateQueueUtilization(ratio float64)  { globalManager.queueUtilization.Set(ratio) }
func RecordQueueEnqueueError()              { globalManager.queueEnqueueErrors.Inc() }
func RecordNotificationPushed()             { globalManager.notificationsPushed.Inc() }
func RecordNotificationDropped()            { globalManager.notificationsDropped.Inc() }
func RecordTeamJoin()                       { globalManager.teamJoins.Inc() }
func UpdateEventsActive(n int)              { globalManager.eventsActive.Set(float64(n)) }

// RecordHTTPRequest records a completed HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records the duration of a completed HTTP request.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}
