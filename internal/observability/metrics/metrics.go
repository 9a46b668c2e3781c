package metrics

import "github.com/prometheus/client_golang/prometheus"

// ConversationMetrics exposes counters/histograms for the booking dialogue.
type ConversationMetrics struct {
	turnsTotal       *prometheus.CounterVec
	bookingsTotal    *prometheus.CounterVec
	extractorLatency *prometheus.HistogramVec
	calendarLatency  *prometheus.HistogramVec
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medibook",
			Subsystem: "dialogue",
			Name:      "turns_total",
			Help:      "Total processed conversation turns",
		}, []string{"state", "outcome"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medibook",
			Subsystem: "dialogue",
			Name:      "bookings_total",
			Help:      "Total attempted calendar bookings",
		}, []string{"status"}),
		extractorLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medibook",
			Subsystem: "dialogue",
			Name:      "extractor_latency_seconds",
			Help:      "Latency of intent extractor calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		calendarLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medibook",
			Subsystem: "dialogue",
			Name:      "calendar_latency_seconds",
			Help:      "Latency of calendar collaborator calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.bookingsTotal, m.extractorLatency, m.calendarLatency)
	return m
}

func (m *ConversationMetrics) ObserveTurn(state, outcome string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(state, outcome).Inc()
}

func (m *ConversationMetrics) ObserveBooking(status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(status).Inc()
}

func (m *ConversationMetrics) ObserveExtractorLatency(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.extractorLatency.WithLabelValues(operation).Observe(seconds)
}

func (m *ConversationMetrics) ObserveCalendarLatency(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.calendarLatency.WithLabelValues(operation).Observe(seconds)
}
