package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса календаря доступности
type Request struct {
	ItemID        int64             // ID товара
	ResourceID    *int64            // ID ресурса, если бронь делегируется ресурсу
	StartDate     time.Time         // Первая дата окна (включительно)
	EndDate       time.Time         // Последняя дата окна (включительно)
	TimeSlot      *types.TimeString // Время начала для слотовых товаров
	OffsetMinutes int               // Смещение клиента от UTC в минутах, для отображения
}

// Response модель ответа с календарем доступности
type Response struct {
	ItemID      int64
	ResourceID  *int64
	StartDate   time.Time
	EndDate     time.Time
	Days        []Day
	GeneratedAt time.Time // момент построения в локальном времени клиента
}

// Day состояние одной календарной даты
type Day struct {
	Date           time.Time
	Bookable       bool
	RemainingSpots int // domain.UnlimitedSpots, если потолка нет
	PriceDelta     float64
}
