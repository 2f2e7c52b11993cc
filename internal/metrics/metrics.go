package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the scheduling flows. A nil
// *BookingMetrics is valid and records nothing.
type BookingMetrics struct {
	bookingsTotal     *prometheus.CounterVec
	segmentsGenerated prometheus.Counter
	codesTotal        *prometheus.CounterVec
	purgedTotal       *prometheus.CounterVec
	emailsTotal       *prometheus.CounterVec
	bookingLatency    prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "appointments",
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome",
		}, []string{"outcome"}),
		segmentsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "schedule",
			Name:      "segments_generated_total",
			Help:      "Segments written by working-hours regeneration",
		}),
		codesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "verification",
			Name:      "codes_total",
			Help:      "Verification codes issued and checked",
		}, []string{"result"}),
		purgedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "retention",
			Name:      "purged_total",
			Help:      "Records removed by the retention sweep",
		}, []string{"entity"}),
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "notify",
			Name:      "emails_sent_total",
			Help:      "Outbound emails by status",
		}, []string{"status"}),
		bookingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "booking",
			Subsystem: "appointments",
			Name:      "booking_duration_seconds",
			Help:      "Time spent committing a booking",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.bookingsTotal,
		m.segmentsGenerated,
		m.codesTotal,
		m.purgedTotal,
		m.emailsTotal,
		m.bookingLatency,
	)
	return m
}

func (m *BookingMetrics) ObserveBooking(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
	m.bookingLatency.Observe(seconds)
}

func (m *BookingMetrics) AddSegments(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.segmentsGenerated.Add(float64(n))
}

func (m *BookingMetrics) ObserveCode(result string) {
	if m == nil {
		return
	}
	m.codesTotal.WithLabelValues(result).Inc()
}

func (m *BookingMetrics) AddPurged(entity string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.purgedTotal.WithLabelValues(entity).Add(float64(n))
}

func (m *BookingMetrics) ObserveEmail(status string) {
	if m == nil {
		return
	}
	m.emailsTotal.WithLabelValues(status).Inc()
}
