package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterIsIdempotent(t *testing.T) {
	Register()
	Register()
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(bookingsCreated.WithLabelValues("Suite"))
	IncBookingCreated("Suite")

	if got := testutil.ToFloat64(bookingsCreated.WithLabelValues("Suite")); got != before+1 {
		t.Errorf("created = %v, want %v", got, before+1)
	}

	beforeAvail := testutil.ToFloat64(availabilityChecks.WithLabelValues(ResultAvailable))
	beforeBusy := testutil.ToFloat64(availabilityChecks.WithLabelValues(ResultUnavailable))

	IncAvailabilityCheck(true)
	IncAvailabilityCheck(false)
	IncAvailabilityCheck(false)

	if got := testutil.ToFloat64(availabilityChecks.WithLabelValues(ResultAvailable)); got != beforeAvail+1 {
		t.Errorf("available = %v", got)
	}

	if got := testutil.ToFloat64(availabilityChecks.WithLabelValues(ResultUnavailable)); got != beforeBusy+2 {
		t.Errorf("unavailable = %v", got)
	}

	beforeRejected := testutil.ToFloat64(bookingsRejected.WithLabelValues(ReasonConflict))
	IncBookingRejected(ReasonConflict)

	if got := testutil.ToFloat64(bookingsRejected.WithLabelValues(ReasonConflict)); got != beforeRejected+1 {
		t.Errorf("rejected = %v", got)
	}
}
