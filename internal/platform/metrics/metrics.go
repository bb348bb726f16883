package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	DraftsCreated      prometheus.Counter
	DraftsSubmitted    *prometheus.CounterVec
	DraftsCancelled    prometheus.Counter
	DraftsDeleted      prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	ListRequests       prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		DraftsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wastetrack_drafts_created_total",
			Help: "Total number of draft submissions created.",
		}),
		DraftsSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wastetrack_drafts_submitted_total",
			Help: "Total number of submitted declarations, by data variant.",
		}, []string{"variant"}),
		DraftsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wastetrack_drafts_cancelled_total",
			Help: "Total number of cancelled submissions.",
		}),
		DraftsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wastetrack_drafts_deleted_total",
			Help: "Total number of deleted drafts.",
		}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wastetrack_section_validation_failures_total",
			Help: "Total number of rejected section writes, by section.",
		}, []string{"section"}),
		ListRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wastetrack_list_requests_total",
			Help: "Total number of submission list requests served.",
		}),
	}
}

// IncrementSubmitted records a completed declaration.
func (m *Metrics) IncrementSubmitted(variant string) {
	m.DraftsSubmitted.WithLabelValues(variant).Inc()
}

// IncrementValidationFailure records a rejected section write.
func (m *Metrics) IncrementValidationFailure(section string) {
	m.ValidationFailures.WithLabelValues(section).Inc()
}
