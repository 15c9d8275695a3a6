package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "egov_api_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// ApplicationsSubmitted tracks citizen application submissions per service type
	ApplicationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "egov_api_applications_submitted_total",
			Help: "Number of applications submitted",
		},
		[]string{"type"},
	)

	// StatusTransitions tracks admin status transitions
	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "egov_api_status_transitions_total",
			Help: "Number of status transitions applied",
		},
		[]string{"resource", "to_status"},
	)

	// WizardStepFailures tracks step validation failures per service type and step
	WizardStepFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "egov_api_wizard_step_failures_total",
			Help: "Number of wizard step validation failures",
		},
		[]string{"type", "step"},
	)

	// AlertFeedFailures tracks disaster feed fetch failures per source
	AlertFeedFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "egov_api_alert_feed_failures_total",
			Help: "Number of disaster feed fetch failures",
		},
		[]string{"source"},
	)

	// CacheHits tracks cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "egov_api_cache_hits_total",
			Help: "Number of cache hits",
		},
		[]string{"operation"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "egov_api_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "egov_api_active_connections",
			Help: "Number of active connections",
		},
	)
)
