package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes counters/histograms for the intake API. All methods
// are safe on a nil receiver so callers can run unmetered.
type Metrics struct {
	submissionsTotal   *prometheus.CounterVec
	slotBookingsTotal  *prometheus.CounterVec
	submissionDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stocktaker",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Total application submissions",
		}, []string{"status"}),
		slotBookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stocktaker",
			Subsystem: "intake",
			Name:      "slot_bookings_total",
			Help:      "Total interview slot booking attempts",
		}, []string{"status"}),
		submissionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stocktaker",
			Subsystem: "intake",
			Name:      "submission_duration_seconds",
			Help:      "Latency of persisting an application",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.slotBookingsTotal, m.submissionDuration)
	return m
}

func (m *Metrics) RecordSubmission(status string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordSlotBooking(status string) {
	if m == nil {
		return
	}
	m.slotBookingsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveSubmissionDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.submissionDuration.Observe(d.Seconds())
}
