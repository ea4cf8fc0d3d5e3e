package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// BookingStatus represents the order-side status of a committed booking.
// The availability engine never transitions statuses; it only needs to know
// which ones still consume capacity.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusPaid      BookingStatus = "paid"
	StatusComplete  BookingStatus = "complete"
	StatusCancelled BookingStatus = "cancelled"
	StatusRejected  BookingStatus = "rejected"
)

// ConsumesCapacity returns true if a booking in this status still occupies
// spots for its dates.
func (s BookingStatus) ConsumesCapacity() bool {
	return s != StatusCancelled && s != StatusRejected
}

// CountKey identifies one capacity bucket: a bookable item, optionally one of
// its resources, a calendar date and optionally a time slot.
type CountKey struct {
	ItemID     int64
	ResourceID *int64
	Date       time.Time
	TimeSlot   *types.TimeString
}

// BookingCount is the number of units already committed for a bucket.
// The aggregate is owned by the order subsystem; this service only reads it.
type BookingCount struct {
	Key   CountKey
	Count int
}
