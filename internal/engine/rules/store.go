package rules

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// BuildStore собирает неизменяемый снапшот правил для одного владельца.
// Все структурные проверки выполняются здесь, один раз: после успешной
// сборки Resolve никогда не возвращает ошибку.
//
// Порядок правил в снапшоте: по возрастанию Priority, при равном приоритете
// сохраняется порядок объявления (стабильная сортировка). Благодаря этому
// разрешение конфликтов детерминировано: при равных приоритетах побеждает
// правило, объявленное раньше.
func BuildStore(ownerKind domain.OwnerKind, ownerID int64, ruleList []domain.AvailabilityRule) (*domain.RuleStore, error) {
	if len(ruleList) > domain.MaxRulesPerOwner {
		return nil, fmt.Errorf("%w: %d rules, limit is %d", ErrTooManyRules, len(ruleList), domain.MaxRulesPerOwner)
	}

	for i := range ruleList {
		if err := validateRule(&ruleList[i]); err != nil {
			return nil, fmt.Errorf("%w: rule #%d (%s): %v", ErrInvalidRule, i, ruleList[i].Kind, err)
		}
	}

	sorted := make([]domain.AvailabilityRule, len(ruleList))
	copy(sorted, ruleList)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	return &domain.RuleStore{
		OwnerKind: ownerKind,
		OwnerID:   ownerID,
		Rules:     sorted,
	}, nil
}

// validateRule проверяет структурную корректность одного правила
func validateRule(r *domain.AvailabilityRule) error {
	if r.Lockout < domain.MinLockout || r.Lockout > domain.MaxLockout {
		return fmt.Errorf("lockout %d is out of range [%d, %d]", r.Lockout, domain.MinLockout, domain.MaxLockout)
	}

	switch r.Kind {
	case domain.KindWeekdayRecurring:
		if r.FromWeekday < time.Sunday || r.FromWeekday > time.Saturday {
			return fmt.Errorf("from weekday %d is out of range", r.FromWeekday)
		}
		if r.ToWeekday < time.Sunday || r.ToWeekday > time.Saturday {
			return fmt.Errorf("to weekday %d is out of range", r.ToWeekday)
		}

	case domain.KindSpecificDate:
		if r.FromDate.IsZero() {
			return fmt.Errorf("date is required")
		}

	case domain.KindCustomRange, domain.KindHolidayRange:
		if r.FromDate.IsZero() || r.ToDate.IsZero() {
			return fmt.Errorf("both range boundaries are required")
		}
		if dateOnly(r.ToDate).Before(dateOnly(r.FromDate)) {
			return fmt.Errorf("range end %s is before start %s",
				r.ToDate.Format(domain.DateFormat), r.FromDate.Format(domain.DateFormat))
		}

	case domain.KindMonthRange:
		if r.FromMonth < time.January || r.FromMonth > time.December {
			return fmt.Errorf("from month %d is out of range", r.FromMonth)
		}
		if r.ToMonth < time.January || r.ToMonth > time.December {
			return fmt.Errorf("to month %d is out of range", r.ToMonth)
		}

	case domain.KindTimeRange:
		if err := r.FromTime.Validate(); err != nil {
			return fmt.Errorf("invalid from time: %v", err)
		}
		if err := r.ToTime.Validate(); err != nil {
			return fmt.Errorf("invalid to time: %v", err)
		}
		if !r.FromTime.IsBefore(r.ToTime) {
			return fmt.Errorf("time range end %s is not after start %s", r.ToTime, r.FromTime)
		}

	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}

	return nil
}

// dateOnly обнуляет время, оставляя только календарную дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
