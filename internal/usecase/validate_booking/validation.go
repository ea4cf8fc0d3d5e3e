package validate_booking

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	if req.ResourceID != nil && *req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}

	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: end date is required", ErrInvalidInput)
	}

	if req.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	if req.TimeSlot != nil {
		if err := req.TimeSlot.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time slot: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// spanNights возвращает длину диапазона в ночах.
// Однодневная бронь (start == end) считается одной ночью
func spanNights(start, end time.Time) int {
	nights := int(dateOnly(end).Sub(dateOnly(start)).Hours() / 24)
	if nights == 0 {
		return 1
	}
	return nights
}

// lastOccupiedDate возвращает последнюю занимаемую дату диапазона.
// Для многодневной брони день выезда не занимается (end исключается),
// однодневная бронь занимает единственную дату
func lastOccupiedDate(start, end time.Time) time.Time {
	s, e := dateOnly(start), dateOnly(end)
	if e.After(s) {
		return e.AddDate(0, 0, -1)
	}
	return e
}

// dateOnly обнуляет время, оставляя только календарную дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
