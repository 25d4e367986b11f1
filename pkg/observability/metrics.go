package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Editing operation metrics, fed by the command bus middleware
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Business metrics
	SessionsCreated prometheus.Counter
	SessionsClosed  prometheus.Counter
	ClipsAdded      prometheus.Counter
	ClipsRemoved    prometheus.Counter
	UndoSteps       prometheus.Counter
	RedoSteps       prometheus.Counter
	SnapshotsSaved  prometheus.Counter
	EDLExports      prometheus.Counter
}

// NewCollector creates a metrics collector with the given namespace.
// A process-wide singleton avoids duplicate registration in tests.
func NewCollector(namespace string) *Collector {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of editing operations",
		},
		[]string{"operation", "status"},
	)

	operationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Editing operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	sessionsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of editing sessions created",
	})
	sessionsClosed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_closed_total",
		Help:      "Total number of editing sessions closed",
	})
	clipsAdded := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clips_added_total",
		Help:      "Total number of clips added to timelines",
	})
	clipsRemoved := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clips_removed_total",
		Help:      "Total number of clips removed from timelines",
	})
	undoSteps := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "undo_steps_total",
		Help:      "Total number of undo operations applied",
	})
	redoSteps := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redo_steps_total",
		Help:      "Total number of redo operations applied",
	})
	snapshotsSaved := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshots_saved_total",
		Help:      "Total number of project snapshots persisted",
	})
	edlExports := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "edl_exports_total",
		Help:      "Total number of EDL exports generated",
	})

	registry.MustRegister(
		httpRequests,
		httpDuration,
		operations,
		operationDuration,
		sessionsCreated,
		sessionsClosed,
		clipsAdded,
		clipsRemoved,
		undoSteps,
		redoSteps,
		snapshotsSaved,
		edlExports,
	)

	globalCollector = &Collector{
		registry:          registry,
		HTTPRequests:      httpRequests,
		HTTPDuration:      httpDuration,
		Operations:        operations,
		OperationDuration: operationDuration,
		SessionsCreated:   sessionsCreated,
		SessionsClosed:    sessionsClosed,
		ClipsAdded:        clipsAdded,
		ClipsRemoved:      clipsRemoved,
		UndoSteps:         undoSteps,
		RedoSteps:         redoSteps,
		SnapshotsSaved:    snapshotsSaved,
		EDLExports:        edlExports,
	}
	return globalCollector
}

// ResetForTesting resets the global collector
func ResetForTesting() {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()
	globalCollector = nil
}

// ObserveOperation records one editing operation for the command bus
// metrics middleware
func (c *Collector) ObserveOperation(name string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.Operations.WithLabelValues(name, status).Inc()
	c.OperationDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// ObserveHTTPRequest records one HTTP request
func (c *Collector) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler returns the scrape endpoint handler for this collector's
// registry
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
