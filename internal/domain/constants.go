package domain

// Default configuration values
const (
	DefaultMinNights = 1
	DefaultMaxNights = 0 // 0 = unlimited
	DefaultLockout   = 0 // 0 = unlimited
)

// Business validation constants
const (
	MinLockout        = 0
	MaxLockout        = 10000
	MaxNightsLimit    = 730 // 2 years
	MaxRecurYears     = 10  // custom ranges may repeat yearly up to this many years
	MaxRulesPerOwner  = 500
)

// UnlimitedSpots is the remaining-capacity sentinel for dates without a
// lockout limit.
const UnlimitedSpots = -1

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, которые не занимают места
// Используется при подсчёте занятости дат
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusRejected,
}
