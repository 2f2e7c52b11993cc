package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveBooking("created", 0.01)
	m.ObserveBooking("created", 0.02)
	m.ObserveBooking("slot_not_available", 0.01)
	m.AddSegments(36)
	m.AddSegments(0)
	m.AddPurged("bookings", 4)
	m.ObserveCode("issued")
	m.ObserveEmail("failed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues("slot_not_available")))
	assert.Equal(t, 36.0, testutil.ToFloat64(m.segmentsGenerated))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.purgedTotal.WithLabelValues("bookings")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.codesTotal.WithLabelValues("issued")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emailsTotal.WithLabelValues("failed")))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *BookingMetrics
	assert.NotPanics(t, func() {
		m.ObserveBooking("created", 1)
		m.AddSegments(3)
		m.ObserveCode("verified")
		m.AddPurged("segments", 2)
		m.ObserveEmail("sent")
	})
}
