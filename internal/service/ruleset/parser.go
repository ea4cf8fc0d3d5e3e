package ruleset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	rulesRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/rules"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/ruleset/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Приоритеты правил товара назначаются по виду: точечные настройки бьют
// диапазонные, диапазонные бьют повторяющиеся. Правила ресурса несут
// явный приоритет из конфигурации и в этой шкале не участвуют
const (
	PrioritySpecificDate = 5
	PriorityCustomRange  = 6
	PriorityTimeRange    = 7
	PriorityHolidayRange = 8
	PriorityWeekday      = 10
	PriorityMonthRange   = 12
)

// Типы строк правил ресурса на входной границе
const (
	resourceTypeWeekday = "weekday"
	resourceTypeDate    = "date"
	resourceTypeCustom  = "custom"
	resourceTypeHoliday = "holiday"
	resourceTypeMonths  = "months"
	resourceTypeTime    = "time"
)

// parseItemConfig превращает форму настроек товара в плоский список
// типизированных правил. Здесь только трансформация; структурная проверка
// выполняется далее при сборке снапшота
func parseItemConfig(input *models.ItemConfigInput) ([]domain.AvailabilityRule, error) {
	rules := make([]domain.AvailabilityRule, 0)

	for _, wd := range input.Weekdays {
		rules = append(rules, domain.AvailabilityRule{
			Kind:        domain.KindWeekdayRecurring,
			FromWeekday: wd.Weekday,
			ToWeekday:   wd.Weekday,
			Bookable:    wd.Bookable,
			Lockout:     wd.Lockout,
			Priority:    PriorityWeekday,
			PriceDelta:  wd.Price,
		})
	}

	for _, sd := range input.SpecificDates {
		rules = append(rules, domain.AvailabilityRule{
			Kind:           domain.KindSpecificDate,
			FromDate:       sd.Date,
			Bookable:       sd.Bookable,
			Lockout:        sd.Lockout,
			Priority:       PrioritySpecificDate,
			PriceDelta:     sd.Price,
			PriceExclusive: sd.PriceExclusive,
		})
	}

	for _, cr := range input.CustomRanges {
		years := cr.MaxYearsToRecur
		if years < 0 {
			return nil, fmt.Errorf("%w: maxYearsToRecur must not be negative", ErrInvalidConfiguration)
		}
		if years > domain.MaxRecurYears {
			return nil, fmt.Errorf("%w: maxYearsToRecur %d exceeds limit %d",
				ErrInvalidConfiguration, years, domain.MaxRecurYears)
		}
		// Повторяемый диапазон материализуется в годовые копии
		for y := 0; y <= years; y++ {
			rules = append(rules, domain.AvailabilityRule{
				Kind:       domain.KindCustomRange,
				FromDate:   cr.From.AddDate(y, 0, 0),
				ToDate:     cr.To.AddDate(y, 0, 0),
				Bookable:   cr.Bookable,
				Lockout:    cr.Lockout,
				Priority:   PriorityCustomRange,
				PriceDelta: cr.Price,
			})
		}
	}

	for _, h := range input.Holidays {
		from, to, err := parseHolidayRange(h)
		if err != nil {
			return nil, err
		}
		rules = append(rules, domain.AvailabilityRule{
			Kind:     domain.KindHolidayRange,
			FromDate: from,
			ToDate:   to,
			Bookable: false,
			Priority: PriorityHolidayRange,
		})
	}

	for _, mr := range input.MonthRanges {
		rules = append(rules, domain.AvailabilityRule{
			Kind:      domain.KindMonthRange,
			FromMonth: mr.From,
			ToMonth:   mr.To,
			Bookable:  mr.Bookable,
			Lockout:   mr.Lockout,
			Priority:  PriorityMonthRange,
		})
	}

	for _, tr := range input.TimeRanges {
		rules = append(rules, domain.AvailabilityRule{
			Kind:       domain.KindTimeRange,
			FromTime:   tr.From,
			ToTime:     tr.To,
			Bookable:   tr.Bookable,
			Lockout:    tr.Lockout,
			Priority:   PriorityTimeRange,
			PriceDelta: tr.Price,
		})
	}

	return rules, nil
}

// parseResourceRules превращает строки правил ресурса в типизированные правила
func parseResourceRules(inputs []models.ResourceRuleInput) ([]domain.AvailabilityRule, error) {
	rules := make([]domain.AvailabilityRule, 0, len(inputs))

	for i, in := range inputs {
		rule := domain.AvailabilityRule{
			Bookable:   in.Bookable,
			Lockout:    in.Lockout,
			Priority:   in.Priority,
			PriceDelta: in.Price,
		}

		var err error
		switch in.Type {
		case resourceTypeWeekday:
			rule.Kind = domain.KindWeekdayRecurring
			rule.FromWeekday, err = parseWeekday(in.From)
			if err == nil {
				rule.ToWeekday, err = parseWeekday(in.To)
			}

		case resourceTypeDate:
			rule.Kind = domain.KindSpecificDate
			rule.FromDate, err = parseDate(in.From)

		case resourceTypeCustom:
			rule.Kind = domain.KindCustomRange
			rule.FromDate, err = parseDate(in.From)
			if err == nil {
				rule.ToDate, err = parseDate(in.To)
			}

		case resourceTypeHoliday:
			rule.Kind = domain.KindHolidayRange
			rule.FromDate, err = parseDate(in.From)
			if err == nil {
				rule.ToDate, err = parseDate(in.To)
			}

		case resourceTypeMonths:
			rule.Kind = domain.KindMonthRange
			rule.FromMonth, err = parseMonth(in.From)
			if err == nil {
				rule.ToMonth, err = parseMonth(in.To)
			}

		case resourceTypeTime:
			rule.Kind = domain.KindTimeRange
			rule.FromTime = types.TimeString(in.From)
			rule.ToTime = types.TimeString(in.To)

		default:
			err = fmt.Errorf("unknown rule type %q", in.Type)
		}

		if err != nil {
			return nil, fmt.Errorf("%w: row #%d: %v", ErrInvalidConfiguration, i, err)
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

// rowsFromRules сериализует типизированные правила в строки для хранения.
// Порядок входа сохраняется: position назначается репозиторием по индексу
func rowsFromRules(rules []domain.AvailabilityRule) []rulesRepo.RuleRow {
	rows := make([]rulesRepo.RuleRow, 0, len(rules))

	for _, r := range rules {
		row := rulesRepo.RuleRow{
			Kind:           string(r.Kind),
			Bookable:       r.Bookable,
			Lockout:        r.Lockout,
			Priority:       r.Priority,
			PriceDelta:     r.PriceDelta,
			PriceExclusive: r.PriceExclusive,
		}

		switch r.Kind {
		case domain.KindWeekdayRecurring:
			row.FromValue = strconv.Itoa(int(r.FromWeekday))
			row.ToValue = strconv.Itoa(int(r.ToWeekday))
		case domain.KindSpecificDate:
			row.FromValue = r.FromDate.Format(domain.DateFormat)
			row.ToValue = r.FromDate.Format(domain.DateFormat)
		case domain.KindCustomRange, domain.KindHolidayRange:
			row.FromValue = r.FromDate.Format(domain.DateFormat)
			row.ToValue = r.ToDate.Format(domain.DateFormat)
		case domain.KindMonthRange:
			row.FromValue = strconv.Itoa(int(r.FromMonth))
			row.ToValue = strconv.Itoa(int(r.ToMonth))
		case domain.KindTimeRange:
			row.FromValue = r.FromTime.String()
			row.ToValue = r.ToTime.String()
		}

		rows = append(rows, row)
	}

	return rows
}

// rulesFromRows десериализует хранимые строки обратно в типизированные
// правила. Строки в БД прошли проверку при записи, поэтому ошибка здесь
// означает поврежденные данные
func rulesFromRows(rows []rulesRepo.RuleRow) ([]domain.AvailabilityRule, error) {
	rules := make([]domain.AvailabilityRule, 0, len(rows))

	for _, row := range rows {
		rule := domain.AvailabilityRule{
			ID:             row.ID,
			Kind:           domain.RuleKind(row.Kind),
			Bookable:       row.Bookable,
			Lockout:        row.Lockout,
			Priority:       row.Priority,
			PriceDelta:     row.PriceDelta,
			PriceExclusive: row.PriceExclusive,
		}

		var err error
		switch rule.Kind {
		case domain.KindWeekdayRecurring:
			rule.FromWeekday, err = parseWeekday(row.FromValue)
			if err == nil {
				rule.ToWeekday, err = parseWeekday(row.ToValue)
			}
		case domain.KindSpecificDate:
			rule.FromDate, err = parseDate(row.FromValue)
		case domain.KindCustomRange, domain.KindHolidayRange:
			rule.FromDate, err = parseDate(row.FromValue)
			if err == nil {
				rule.ToDate, err = parseDate(row.ToValue)
			}
		case domain.KindMonthRange:
			rule.FromMonth, err = parseMonth(row.FromValue)
			if err == nil {
				rule.ToMonth, err = parseMonth(row.ToValue)
			}
		case domain.KindTimeRange:
			rule.FromTime = types.TimeString(row.FromValue)
			rule.ToTime = types.TimeString(row.ToValue)
		default:
			err = fmt.Errorf("unknown rule kind %q", row.Kind)
		}

		if err != nil {
			return nil, fmt.Errorf("rule row id=%d: %v", row.ID, err)
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

// parseHolidayRange разбирает праздничный диапазон "YYYY-MM-DD:YYYY-MM-DD"
func parseHolidayRange(s string) (time.Time, time.Time, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{},
			fmt.Errorf("%w: holiday range %q, expected \"YYYY-MM-DD:YYYY-MM-DD\"", ErrInvalidConfiguration, s)
	}

	from, err := parseDate(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: holiday range %q: %v", ErrInvalidConfiguration, s, err)
	}

	to, err := parseDate(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: holiday range %q: %v", ErrInvalidConfiguration, s, err)
	}

	return from, to, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}

func parseWeekday(s string) (time.Weekday, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 6 {
		return 0, fmt.Errorf("invalid weekday %q", s)
	}
	return time.Weekday(n), nil
}

func parseMonth(s string) (time.Month, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return 0, fmt.Errorf("invalid month %q", s)
	}
	return time.Month(n), nil
}
