package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	rulesRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/rules"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ItemConfigInput форма настроек бронирования товара, уже
// десериализованная вызывающим слоем. Каждая секция превращается в свой
// вид правил; приоритеты назначаются по виду (см. parser)
type ItemConfigInput struct {
	MinNights      int
	MaxNights      int // 0 = без ограничения
	DefaultLockout int // 0 = без ограничения

	Weekdays      []WeekdayInput      // до 7 записей; не указанные дни открыты по умолчанию
	SpecificDates []SpecificDateInput // точечные исключения
	CustomRanges  []CustomRangeInput  // произвольные диапазоны, опционально повторяемые по годам
	Holidays      []string            // диапазоны-праздники в форме "YYYY-MM-DD:YYYY-MM-DD", закрывают даты
	MonthRanges   []MonthRangeInput   // сезонные окна, допускают переход через границу года
	TimeRanges    []TimeRangeInput    // окна по времени суток для слотовых товаров
}

// WeekdayInput настройка одного дня недели
type WeekdayInput struct {
	Weekday  time.Weekday
	Bookable bool
	Lockout  int
	Price    *float64
}

// SpecificDateInput настройка конкретной даты
type SpecificDateInput struct {
	Date           time.Time
	Bookable       bool
	Lockout        int
	Price          *float64
	PriceExclusive bool
}

// CustomRangeInput произвольный диапазон дат.
// MaxYearsToRecur > 0 повторяет диапазон ежегодно указанное число лет
type CustomRangeInput struct {
	From            time.Time
	To              time.Time
	Bookable        bool
	Lockout         int
	Price           *float64
	MaxYearsToRecur int
}

// MonthRangeInput диапазон месяцев
type MonthRangeInput struct {
	From     time.Month
	To       time.Month
	Bookable bool
	Lockout  int
}

// TimeRangeInput окно по времени суток
type TimeRangeInput struct {
	From     types.TimeString
	To       types.TimeString
	Bookable bool
	Lockout  int
	Price    *float64
}

// ResourceRuleInput строка правил ресурса: та же форма {type, from, to,
// bookable, priority}, что и у товара, но в отдельном пространстве имен
// и с явным приоритетом
type ResourceRuleInput struct {
	Type     string // weekday | date | custom | holiday | months | time
	From     string
	To       string
	Bookable bool
	Lockout  int
	Priority int
	Price    *float64
}

// ItemConfig текущая конфигурация товара: настройки плюс сырые строки правил
type ItemConfig struct {
	Settings domain.ItemSettings
	Rows     []rulesRepo.RuleRow
}
