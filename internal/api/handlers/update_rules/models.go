package update_rules

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/ruleset/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// UpdateItemConfigRequest HTTP request model конфигурации товара.
// Даты — строки YYYY-MM-DD, время — строки HH:MM; парсинг на этой границе
type UpdateItemConfigRequest struct {
	MinNights      int                `json:"minNights"`
	MaxNights      int                `json:"maxNights"`      // 0 = без ограничения
	DefaultLockout int                `json:"defaultLockout"` // 0 = без ограничения
	Weekdays       []WeekdayRule      `json:"weekdays,omitempty"`
	SpecificDates  []SpecificDateRule `json:"specificDates,omitempty"`
	CustomRanges   []CustomRangeRule  `json:"customRanges,omitempty"`
	Holidays       []string           `json:"holidays,omitempty"` // "YYYY-MM-DD:YYYY-MM-DD"
	MonthRanges    []MonthRangeRule   `json:"monthRanges,omitempty"`
	TimeRanges     []TimeRangeRule    `json:"timeRanges,omitempty"`
}

// WeekdayRule настройка дня недели (0 = воскресенье)
type WeekdayRule struct {
	Weekday  int      `json:"weekday"`
	Bookable bool     `json:"bookable"`
	Lockout  int      `json:"lockout"`
	Price    *float64 `json:"price,omitempty"`
}

// SpecificDateRule настройка конкретной даты
type SpecificDateRule struct {
	Date           string   `json:"date"`
	Bookable       bool     `json:"bookable"`
	Lockout        int      `json:"lockout"`
	Price          *float64 `json:"price,omitempty"`
	PriceExclusive bool     `json:"priceExclusive,omitempty"`
}

// CustomRangeRule произвольный диапазон дат
type CustomRangeRule struct {
	From            string   `json:"from"`
	To              string   `json:"to"`
	Bookable        bool     `json:"bookable"`
	Lockout         int      `json:"lockout"`
	Price           *float64 `json:"price,omitempty"`
	MaxYearsToRecur int      `json:"maxYearsToRecur,omitempty"`
}

// MonthRangeRule диапазон месяцев (1 = январь)
type MonthRangeRule struct {
	From     int  `json:"from"`
	To       int  `json:"to"`
	Bookable bool `json:"bookable"`
	Lockout  int  `json:"lockout"`
}

// TimeRangeRule окно по времени суток
type TimeRangeRule struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Bookable bool     `json:"bookable"`
	Lockout  int      `json:"lockout"`
	Price    *float64 `json:"price,omitempty"`
}

// UpdateResourceRulesRequest HTTP request model правил ресурса
type UpdateResourceRulesRequest struct {
	Rules []ResourceRule `json:"rules"`
}

// ResourceRule строка правил ресурса
type ResourceRule struct {
	Type     string   `json:"type"` // weekday | date | custom | holiday | months | time
	From     string   `json:"from"`
	To       string   `json:"to"`
	Bookable bool     `json:"bookable"`
	Lockout  int      `json:"lockout"`
	Priority int      `json:"priority"`
	Price    *float64 `json:"price,omitempty"`
}

// ToServiceInput конвертирует HTTP request в модель сервиса
func (r *UpdateItemConfigRequest) ToServiceInput() (*models.ItemConfigInput, error) {
	input := &models.ItemConfigInput{
		MinNights:      r.MinNights,
		MaxNights:      r.MaxNights,
		DefaultLockout: r.DefaultLockout,
		Holidays:       r.Holidays,
	}

	for _, wd := range r.Weekdays {
		if wd.Weekday < 0 || wd.Weekday > 6 {
			return nil, fmt.Errorf("weekday %d is out of range [0, 6]", wd.Weekday)
		}
		input.Weekdays = append(input.Weekdays, models.WeekdayInput{
			Weekday:  time.Weekday(wd.Weekday),
			Bookable: wd.Bookable,
			Lockout:  wd.Lockout,
			Price:    wd.Price,
		})
	}

	for _, sd := range r.SpecificDates {
		date, err := time.Parse(domain.DateFormat, sd.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q", sd.Date)
		}
		input.SpecificDates = append(input.SpecificDates, models.SpecificDateInput{
			Date:           date,
			Bookable:       sd.Bookable,
			Lockout:        sd.Lockout,
			Price:          sd.Price,
			PriceExclusive: sd.PriceExclusive,
		})
	}

	for _, cr := range r.CustomRanges {
		from, err := time.Parse(domain.DateFormat, cr.From)
		if err != nil {
			return nil, fmt.Errorf("invalid range start %q", cr.From)
		}
		to, err := time.Parse(domain.DateFormat, cr.To)
		if err != nil {
			return nil, fmt.Errorf("invalid range end %q", cr.To)
		}
		input.CustomRanges = append(input.CustomRanges, models.CustomRangeInput{
			From:            from,
			To:              to,
			Bookable:        cr.Bookable,
			Lockout:         cr.Lockout,
			Price:           cr.Price,
			MaxYearsToRecur: cr.MaxYearsToRecur,
		})
	}

	for _, mr := range r.MonthRanges {
		if mr.From < 1 || mr.From > 12 || mr.To < 1 || mr.To > 12 {
			return nil, fmt.Errorf("month range %d..%d is out of range [1, 12]", mr.From, mr.To)
		}
		input.MonthRanges = append(input.MonthRanges, models.MonthRangeInput{
			From:     time.Month(mr.From),
			To:       time.Month(mr.To),
			Bookable: mr.Bookable,
			Lockout:  mr.Lockout,
		})
	}

	for _, tr := range r.TimeRanges {
		from, err := types.NewTimeStringFromString(tr.From)
		if err != nil {
			return nil, fmt.Errorf("invalid time %q", tr.From)
		}
		to, err := types.NewTimeStringFromString(tr.To)
		if err != nil {
			return nil, fmt.Errorf("invalid time %q", tr.To)
		}
		input.TimeRanges = append(input.TimeRanges, models.TimeRangeInput{
			From:     from,
			To:       to,
			Bookable: tr.Bookable,
			Lockout:  tr.Lockout,
			Price:    tr.Price,
		})
	}

	return input, nil
}

// ToServiceInputs конвертирует HTTP request в модель сервиса
func (r *UpdateResourceRulesRequest) ToServiceInputs() []models.ResourceRuleInput {
	inputs := make([]models.ResourceRuleInput, 0, len(r.Rules))
	for _, rule := range r.Rules {
		inputs = append(inputs, models.ResourceRuleInput{
			Type:     rule.Type,
			From:     rule.From,
			To:       rule.To,
			Bookable: rule.Bookable,
			Lockout:  rule.Lockout,
			Priority: rule.Priority,
			Price:    rule.Price,
		})
	}
	return inputs
}
