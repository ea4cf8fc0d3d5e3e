package get_calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	if req.ResourceID != nil && *req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: both range boundaries are required", ErrInvalidInput)
	}

	if dateOnly(req.EndDate).Before(dateOnly(req.StartDate)) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	if req.TimeSlot != nil {
		if err := req.TimeSlot.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time slot: %v", ErrInvalidInput, err)
		}
	}

	days := int(dateOnly(req.EndDate).Sub(dateOnly(req.StartDate)).Hours()/24) + 1
	if days > domain.MaxNightsLimit {
		return fmt.Errorf("%w: %d days, limit is %d", ErrRangeTooWide, days, domain.MaxNightsLimit)
	}

	return nil
}

// dateOnly обнуляет время, оставляя только календарную дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
