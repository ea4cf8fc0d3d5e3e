package validate_booking

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на проверку осуществимости бронирования
type Request struct {
	ItemID     int64             // ID товара
	ResourceID *int64            // ID ресурса (опционально)
	StartDate  time.Time         // Первая дата диапазона (без времени)
	EndDate    time.Time         // Последняя дата диапазона; равна StartDate для однодневной брони
	TimeSlot   *types.TimeString // Время начала слота (опционально, "10:00")
	Quantity   int               // Запрошенное количество мест
}

// Response модель ответа с вердиктом по диапазону
type Response struct {
	ItemID     int64
	ResourceID *int64
	StartDate  time.Time
	EndDate    time.Time
	Quantity   int

	Result domain.BookingFeasibility
}
