package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking intake
// flow. A nil receiver is a no-op so wiring stays optional in tests.
type BookingMetrics struct {
	submissionsTotal *prometheus.CounterVec
	submitLatency    *prometheus.HistogramVec
	relayTotal       *prometheus.CounterVec
	sessionsTotal    *prometheus.CounterVec
	eventsTotal      *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Total booking form submissions",
		}, []string{"form", "status"}),
		submitLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "booking",
			Subsystem: "intake",
			Name:      "submit_latency_seconds",
			Help:      "Latency of booking submission handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"form"}),
		relayTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "relay",
			Name:      "enqueued_total",
			Help:      "Total spreadsheet relay jobs enqueued",
		}, []string{"form", "status"}),
		sessionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "wizard",
			Name:      "sessions_total",
			Help:      "Total wizard sessions created",
		}, []string{"form"}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "wizard",
			Name:      "events_total",
			Help:      "Total wizard events applied",
		}, []string{"event"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.submitLatency, m.relayTotal, m.sessionsTotal, m.eventsTotal)
	return m
}

func (m *BookingMetrics) ObserveSubmission(form, status string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(form, status).Inc()
}

func (m *BookingMetrics) ObserveSubmitLatency(form string, seconds float64) {
	if m == nil {
		return
	}
	m.submitLatency.WithLabelValues(form).Observe(seconds)
}

func (m *BookingMetrics) ObserveRelayEnqueue(form, status string) {
	if m == nil {
		return
	}
	m.relayTotal.WithLabelValues(form, status).Inc()
}

func (m *BookingMetrics) ObserveWizardSession(form string) {
	if m == nil {
		return
	}
	m.sessionsTotal.WithLabelValues(form).Inc()
}

func (m *BookingMetrics) ObserveWizardEvent(event string) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(event).Inc()
}
