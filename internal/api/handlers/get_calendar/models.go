package get_calendar

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getCalendar "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_calendar"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	ItemID      int64         `json:"itemId"`
	ResourceID  *int64        `json:"resourceId,omitempty"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	GeneratedAt string        `json:"generatedAt"` // RFC 3339, в локальном времени клиента
	Days        []CalendarDay `json:"days"`
}

// CalendarDay состояние одной календарной даты
type CalendarDay struct {
	Date           string  `json:"date"`
	Bookable       bool    `json:"bookable"`
	RemainingSpots *int    `json:"remainingSpots,omitempty"` // null = без ограничения
	PriceDelta     float64 `json:"priceDelta"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(itemID int64, resourceIDStr, startStr, endStr, slotStr, offsetStr string) (*getCalendar.Request, error) {
	start, err := time.Parse(domain.DateFormat, startStr)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(domain.DateFormat, endStr)
	if err != nil {
		return nil, err
	}

	req := &getCalendar.Request{
		ItemID:    itemID,
		StartDate: start,
		EndDate:   end,
	}

	if resourceIDStr != "" {
		resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ResourceID = &resourceID
	}

	if slotStr != "" {
		slot, err := types.NewTimeStringFromString(slotStr)
		if err != nil {
			return nil, err
		}
		req.TimeSlot = &slot
	}

	if offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return nil, err
		}
		req.OffsetMinutes = offset
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]CalendarDay, 0, len(resp.Days))
	for _, d := range resp.Days {
		day := CalendarDay{
			Date:       d.Date.Format(domain.DateFormat),
			Bookable:   d.Bookable,
			PriceDelta: d.PriceDelta,
		}
		if d.RemainingSpots != domain.UnlimitedSpots {
			remaining := d.RemainingSpots
			day.RemainingSpots = &remaining
		}
		days = append(days, day)
	}

	return &CalendarResponse{
		ItemID:      resp.ItemID,
		ResourceID:  resp.ResourceID,
		StartDate:   resp.StartDate.Format(domain.DateFormat),
		EndDate:     resp.EndDate.Format(domain.DateFormat),
		GeneratedAt: resp.GeneratedAt.Format(time.RFC3339),
		Days:        days,
	}
}
