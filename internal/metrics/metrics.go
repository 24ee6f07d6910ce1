package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hotel_booking"

const (
	ReasonInvalidInput = "invalid_input"
	ReasonConflict     = "conflict"
	ReasonRoomClosed   = "room_closed"

	ResultAvailable   = "available"
	ResultUnavailable = "unavailable"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Count of confirmed bookings by room category.",
		},
		[]string{"category"},
	)

	bookingsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_cancelled_total",
			Help:      "Count of successful cancel requests.",
		},
	)

	bookingsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_rejected_total",
			Help:      "Count of booking attempts rejected before reaching the ledger.",
		},
		[]string{"reason"},
	)

	availabilityChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_checks_total",
			Help:      "Count of availability checks by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, bookingsCancelled, bookingsRejected, availabilityChecks)
	})
}

func IncBookingCreated(category string) {
	bookingsCreated.WithLabelValues(category).Inc()
}

func IncBookingCancelled() {
	bookingsCancelled.Inc()
}

func IncBookingRejected(reason string) {
	bookingsRejected.WithLabelValues(reason).Inc()
}

func IncAvailabilityCheck(available bool) {
	result := ResultUnavailable
	if available {
		result = ResultAvailable
	}

	availabilityChecks.WithLabelValues(result).Inc()
}
