package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordSubmission("success")
	m.RecordSlotBooking("full")
	m.ObserveSubmissionDuration(250 * time.Millisecond)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordSubmission("success")
	m.RecordSlotBooking("error")
	m.ObserveSubmissionDuration(time.Second)
}
