package check_availability

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	validateBooking "github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	ItemID          int64     `json:"itemId"`
	ResourceID      *int64    `json:"resourceId,omitempty"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	Quantity        int       `json:"quantity"`
	Feasible        bool      `json:"feasible"`
	Nights          int       `json:"nights"`
	FailureReason   string    `json:"failureReason,omitempty"`
	FailedDate      *string   `json:"failedDate,omitempty"`
	TotalPriceDelta float64   `json:"totalPriceDelta"`
	Dates           []DateRow `json:"dates"`
}

// DateRow состояние одной занимаемой даты
type DateRow struct {
	Date           string  `json:"date"`
	Bookable       bool    `json:"bookable"`
	RemainingSpots *int    `json:"remainingSpots,omitempty"` // null = без ограничения
	PriceDelta     float64 `json:"priceDelta"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(itemID int64, resourceIDStr, startStr, endStr, slotStr, quantityStr string) (*validateBooking.Request, error) {
	start, err := time.Parse(domain.DateFormat, startStr)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(domain.DateFormat, endStr)
	if err != nil {
		return nil, err
	}

	req := &validateBooking.Request{
		ItemID:    itemID,
		StartDate: start,
		EndDate:   end,
		Quantity:  1,
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

	if quantityStr != "" {
		quantity, err := strconv.Atoi(quantityStr)
		if err != nil {
			return nil, err
		}
		req.Quantity = quantity
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateBooking.Response) *CheckAvailabilityResponse {
	result := resp.Result

	out := &CheckAvailabilityResponse{
		ItemID:          resp.ItemID,
		ResourceID:      resp.ResourceID,
		StartDate:       resp.StartDate.Format(domain.DateFormat),
		EndDate:         resp.EndDate.Format(domain.DateFormat),
		Quantity:        resp.Quantity,
		Feasible:        result.Feasible,
		Nights:          result.Nights,
		FailureReason:   string(result.FailureReason),
		TotalPriceDelta: result.TotalPriceDelta,
		Dates:           make([]DateRow, 0, len(result.PerDate)),
	}

	if result.FailedDate != nil {
		failed := result.FailedDate.Format(domain.DateFormat)
		out.FailedDate = &failed
	}

	for _, d := range result.PerDate {
		row := DateRow{
			Date:       d.Date.Format(domain.DateFormat),
			Bookable:   d.Decision.Bookable,
			PriceDelta: d.Decision.PriceDelta,
		}
		if d.RemainingSpots != domain.UnlimitedSpots {
			remaining := d.RemainingSpots
			row.RemainingSpots = &remaining
		}
		out.Dates = append(out.Dates, row)
	}

	return out
}
