package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// RuleKind discriminates the availability rule variants.
// Depending on the kind, a different pair of from/to fields is meaningful.
type RuleKind string

const (
	KindWeekdayRecurring RuleKind = "weekday_recurring" // FromWeekday..ToWeekday
	KindSpecificDate     RuleKind = "specific_date"     // FromDate (ToDate ignored)
	KindCustomRange      RuleKind = "custom_range"      // FromDate..ToDate
	KindHolidayRange     RuleKind = "holiday_range"     // FromDate..ToDate, closes availability
	KindMonthRange       RuleKind = "month_range"       // FromMonth..ToMonth, may wrap the year
	KindTimeRange        RuleKind = "time_range"        // FromTime..ToTime, matched against the requested slot
)

// OwnerKind tells whether a rule set belongs to a bookable item or to one of
// its resources. Item and resource rules live in separate priority spaces and
// are never merged.
type OwnerKind string

const (
	OwnerItem     OwnerKind = "item"
	OwnerResource OwnerKind = "resource"
)

// AvailabilityRule is one configured availability constraint.
// A rule can open or close matching dates (Bookable), cap the number of
// concurrent bookings (Lockout, 0 = unlimited) and shift the price.
// Lower Priority values win over higher ones when several rules match.
type AvailabilityRule struct {
	ID   int64
	Kind RuleKind

	FromDate time.Time
	ToDate   time.Time

	FromWeekday time.Weekday
	ToWeekday   time.Weekday

	FromMonth time.Month
	ToMonth   time.Month

	FromTime types.TimeString
	ToTime   types.TimeString

	Bookable       bool
	Lockout        int
	Priority       int
	PriceDelta     *float64
	PriceExclusive bool
}

// HasLockout returns true if the rule caps capacity for matching dates.
func (r *AvailabilityRule) HasLockout() bool {
	return r.Lockout > 0
}

// HasPriceDelta returns true if the rule carries a price adjustment.
func (r *AvailabilityRule) HasPriceDelta() bool {
	return r.PriceDelta != nil
}

// RuleStore is an immutable snapshot of every availability rule configured for
// one owner. Rules is sorted by ascending Priority, ties kept in declaration
// order, so resolution over the slice is deterministic. Stores are rebuilt
// whenever the merchant edits booking settings and are never mutated between
// rebuilds.
type RuleStore struct {
	OwnerKind OwnerKind
	OwnerID   int64
	Rules     []AvailabilityRule
}

// IsEmpty returns true if no rules are configured for the owner.
func (s *RuleStore) IsEmpty() bool {
	return len(s.Rules) == 0
}
