package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "barber_booking"

// Metrics holds all application metrics. A nil *Metrics records nothing.
type Metrics struct {
	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	// Booking engine
	SlotQueries           *prometheus.CounterVec
	ReservationsCreated   prometheus.Counter
	ReservationConflicts  *prometheus.CounterVec
	ReservationsCancelled prometheus.Counter
	ReservationsEdited    prometheus.Counter

	// Slot cache
	CacheLookups *prometheus.CounterVec
}

// New creates and registers all application metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "route"}),

		SlotQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_queries_total",
			Help:      "Slot listings by schedule outcome",
		}, []string{"outcome"}),
		ReservationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Reservations committed",
		}),
		ReservationConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_conflicts_total",
			Help:      "Reservation attempts rejected by the overlap validator",
		}, []string{"reason"}),
		ReservationsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_cancelled_total",
			Help:      "Reservations moved to cancelled",
		}),
		ReservationsEdited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_edited_total",
			Help:      "Reservations rescheduled or edited",
		}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_cache_lookups_total",
			Help:      "Slot cache lookups by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) ObserveSlotQuery(outcome string) {
	if m == nil {
		return
	}
	m.SlotQueries.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCreated() {
	if m == nil {
		return
	}
	m.ReservationsCreated.Inc()
}

func (m *Metrics) ObserveConflict(reason string) {
	if m == nil {
		return
	}
	m.ReservationConflicts.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveCancelled() {
	if m == nil {
		return
	}
	m.ReservationsCancelled.Inc()
}

func (m *Metrics) ObserveEdited() {
	if m == nil {
		return
	}
	m.ReservationsEdited.Inc()
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
