package rules

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Resolve вычисляет решение по доступности для одной даты (и, опционально,
// временного слота) на основе снапшота правил.
//
// Алгоритм:
//  1. Отбираются все правила, совпадающие с датой/слотом.
//  2. Если совпадений нет — дата открыта без ограничений (open-by-default).
//  3. Авторитетным для Bookable и Lockout является совпавшее правило с
//     наименьшим числовым приоритетом; при равных приоритетах — объявленное
//     раньше (снапшот отсортирован стабильно при сборке).
//  4. Ценовые надбавки совпавших правил складываются по возрастанию
//     приоритета; правило с PriceExclusive заменяет собой всю сумму.
//
// Resolve тотальна: для любых входов возвращается решение. Для nil-снапшота
// возвращается защитный отказ (не бронируется, lockout 0).
func Resolve(store *domain.RuleStore, date time.Time, slot *types.TimeString) domain.DateDecision {
	if store == nil {
		return domain.DateDecision{Bookable: false, Lockout: 0}
	}

	var (
		matched  []domain.AvailabilityRule
		decision domain.DateDecision
	)

	for _, rule := range store.Rules {
		if ruleMatches(&rule, date, slot) {
			matched = append(matched, rule)
		}
	}

	if len(matched) == 0 {
		return domain.DateDecision{Bookable: true, Lockout: 0}
	}

	// Правила отсортированы по приоритету: первое совпавшее — авторитетное
	authoritative := matched[0]
	decision.Bookable = authoritative.Bookable
	decision.Lockout = authoritative.Lockout

	for _, rule := range matched {
		if !rule.HasPriceDelta() {
			continue
		}
		if rule.PriceExclusive {
			decision.PriceDelta = *rule.PriceDelta
			break
		}
		decision.PriceDelta += *rule.PriceDelta
	}

	return decision
}

// CombineDecisions объединяет решение уровня товара с решением уровня
// ресурса: бронирование возможно только если разрешают оба (логическое И),
// итоговый lockout — минимум из двух, ценовые надбавки складываются.
func CombineDecisions(item, resource domain.DateDecision) domain.DateDecision {
	combined := domain.DateDecision{
		Bookable:   item.Bookable && resource.Bookable,
		PriceDelta: item.PriceDelta + resource.PriceDelta,
	}

	switch {
	case item.HasLockout() && resource.HasLockout():
		combined.Lockout = min(item.Lockout, resource.Lockout)
	case item.HasLockout():
		combined.Lockout = item.Lockout
	case resource.HasLockout():
		combined.Lockout = resource.Lockout
	}

	return combined
}

// ruleMatches проверяет, распространяется ли правило на дату/слот
func ruleMatches(r *domain.AvailabilityRule, date time.Time, slot *types.TimeString) bool {
	switch r.Kind {
	case domain.KindWeekdayRecurring:
		return weekdayInRange(date.Weekday(), r.FromWeekday, r.ToWeekday)

	case domain.KindSpecificDate:
		return dateOnly(date).Equal(dateOnly(r.FromDate))

	case domain.KindCustomRange, domain.KindHolidayRange:
		d := dateOnly(date)
		return !d.Before(dateOnly(r.FromDate)) && !d.After(dateOnly(r.ToDate))

	case domain.KindMonthRange:
		return monthInRange(date.Month(), r.FromMonth, r.ToMonth)

	case domain.KindTimeRange:
		// Правила по времени применяются только к запросам со слотом.
		// Слот совпадает, если его начало лежит в [FromTime, ToTime)
		if slot == nil {
			return false
		}
		return !slot.IsBefore(r.FromTime) && slot.IsBefore(r.ToTime)

	default:
		return false
	}
}

// weekdayInRange проверяет попадание дня недели в диапазон,
// диапазон может переходить через границу недели (например, Fri..Mon)
func weekdayInRange(wd, from, to time.Weekday) bool {
	if from <= to {
		return wd >= from && wd <= to
	}
	return wd >= from || wd <= to
}

// monthInRange проверяет попадание месяца в диапазон,
// диапазон может переходить через границу года (например, Nov..Feb)
func monthInRange(m, from, to time.Month) bool {
	if from <= to {
		return m >= from && m <= to
	}
	return m >= from || m <= to
}
