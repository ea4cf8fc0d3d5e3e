package domain

import "time"

// DateDecision is the resolver verdict for one concrete date (and optional
// time slot). Ephemeral: recomputed for every query, never persisted.
type DateDecision struct {
	Bookable   bool
	Lockout    int // 0 = unlimited
	PriceDelta float64
}

// HasLockout returns true if the decision caps capacity for the date.
func (d DateDecision) HasLockout() bool {
	return d.Lockout > 0
}

// FailureReason classifies why a booking request is infeasible.
type FailureReason string

const (
	FailureNone              FailureReason = ""
	FailureInvalidSpan       FailureReason = "invalid_span"
	FailureSpanOutOfRange    FailureReason = "span_out_of_range"
	FailureClosedByRule      FailureReason = "closed_by_rule"
	FailureCapacityExhausted FailureReason = "capacity_exhausted"
	FailureUnknownItem       FailureReason = "unknown_item"
	FailureUnknownResource   FailureReason = "unknown_resource"
)

// DateAvailability is the per-date slice of a feasibility result: the
// resolved decision plus remaining capacity after subtracting committed
// bookings. RemainingSpots is UnlimitedSpots when no lockout applies.
type DateAvailability struct {
	Date           time.Time
	Decision       DateDecision
	RemainingSpots int
}

// BookingFeasibility is the aggregate answer for a booking request across one
// or more dates. It is an opinion based on a point-in-time booking count, not
// a reservation: the caller must re-check capacity atomically when it commits
// the booking.
type BookingFeasibility struct {
	Feasible        bool
	Nights          int
	PerDate         []DateAvailability
	TotalPriceDelta float64

	// FailureReason and FailedDate are set when Feasible is false.
	// FailedDate points at the first date that made the span infeasible;
	// it is nil for span-level failures.
	FailureReason FailureReason
	FailedDate    *time.Time
}

// Infeasible builds a failed result for a span-level rejection.
func Infeasible(reason FailureReason) BookingFeasibility {
	return BookingFeasibility{Feasible: false, FailureReason: reason}
}

// InfeasibleAt builds a failed result pointing at the offending date.
func InfeasibleAt(reason FailureReason, date time.Time) BookingFeasibility {
	return BookingFeasibility{Feasible: false, FailureReason: reason, FailedDate: &date}
}
