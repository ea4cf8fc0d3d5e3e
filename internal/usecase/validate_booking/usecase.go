package validate_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/capacity"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/recurrence"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/rules"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/ruleset"
)

// UseCase use case проверки осуществимости бронирования на диапазон дат.
//
// Вердикт — это мнение на основе счетчика занятости в момент запроса, а не
// резервация: вызывающая сторона обязана повторить проверку атомарно
// (в одной транзакции с инкрементом счетчика) при фиксации брони
type UseCase struct {
	stores   RuleStoreProvider
	settings SettingsProvider
	counts   BookingCountProvider
	cfg      domain.EngineConfig
	logger   Logger

	// Опциональные стратегии расширения
	bookabilityOverride BookabilityOverride
	priceAdjuster       PriceAdjuster
	metrics             Metrics
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	stores RuleStoreProvider,
	settings SettingsProvider,
	counts BookingCountProvider,
	cfg domain.EngineConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		stores:   stores,
		settings: settings,
		counts:   counts,
		cfg:      cfg,
		logger:   logger,
	}
}

// WithBookabilityOverride задает стратегию коррекции решения по дате
func (uc *UseCase) WithBookabilityOverride(o BookabilityOverride) *UseCase {
	uc.bookabilityOverride = o
	return uc
}

// WithPriceAdjuster задает стратегию коррекции ценовой надбавки
func (uc *UseCase) WithPriceAdjuster(a PriceAdjuster) *UseCase {
	uc.priceAdjuster = a
	return uc
}

// WithMetrics подключает счетчики проверок
func (uc *UseCase) WithMetrics(m Metrics) *UseCase {
	uc.metrics = m
	return uc
}

// observeOutcome инкрементирует счетчик проверок по исходу
func (uc *UseCase) observeOutcome(result domain.BookingFeasibility) {
	if uc.metrics == nil {
		return
	}
	outcome := "feasible"
	if !result.Feasible {
		outcome = string(result.FailureReason)
	}
	uc.metrics.FeasibilityCheck(outcome)
}

// Execute выполняет проверку осуществимости.
// Для корректно сформированного запроса Execute всегда возвращает результат:
// недоступность, неподходящая длина диапазона и неизвестные идентификаторы
// приходят в Result.FailureReason, а не ошибкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateBooking: item=%d, resource=%v, start=%s, end=%s, qty=%d",
		req.ItemID, req.ResourceID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.Quantity)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateBooking: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		ItemID:     req.ItemID,
		ResourceID: req.ResourceID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Quantity:   req.Quantity,
	}

	// 2. Конец раньше начала — диапазон некорректен независимо от правил
	if dateOnly(req.EndDate).Before(dateOnly(req.StartDate)) {
		uc.logger.Warn("ValidateBooking: end %s is before start %s",
			req.EndDate.Format(domain.DateFormat), req.StartDate.Format(domain.DateFormat))
		resp.Result = domain.Infeasible(domain.FailureInvalidSpan)
		uc.observeOutcome(resp.Result)
		return resp, nil
	}

	// 3. Настройки товара (с дефолтами, если не заданы)
	stored, err := uc.settings.GetItemSettings(ctx, req.ItemID)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to get settings for item=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item settings: %v", ErrInternal, err)
	}
	itemSettings := uc.cfg.SettingsOrDefaults(stored, req.ItemID)

	// 4. Проверка длины диапазона в ночах
	nights := spanNights(req.StartDate, req.EndDate)
	if !itemSettings.AllowsNights(nights) {
		uc.logger.Info("ValidateBooking: span of %d nights is outside [%d, %d] for item=%d",
			nights, itemSettings.MinNights, itemSettings.MaxNights, req.ItemID)
		result := domain.Infeasible(domain.FailureSpanOutOfRange)
		result.Nights = nights
		resp.Result = result
		uc.observeOutcome(resp.Result)
		return resp, nil
	}

	// 5. Снапшот правил товара
	itemStore, err := uc.stores.GetItemStore(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, ruleset.ErrItemNotFound) {
			uc.logger.Warn("ValidateBooking: item id=%d is not configured for booking", req.ItemID)
			result := domain.Infeasible(domain.FailureUnknownItem)
			result.Nights = nights
			resp.Result = result
			uc.observeOutcome(resp.Result)
			return resp, nil
		}
		uc.logger.Error("ValidateBooking: failed to get rules for item=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item rules: %v", ErrInternal, err)
	}

	// 6. Снапшот правил ресурса, если бронь делегируется ресурсу
	var resourceStore *domain.RuleStore
	if req.ResourceID != nil {
		resourceStore, err = uc.stores.GetResourceStore(ctx, *req.ResourceID)
		if err != nil {
			if errors.Is(err, ruleset.ErrResourceNotFound) {
				uc.logger.Warn("ValidateBooking: resource id=%d is not configured", *req.ResourceID)
				result := domain.Infeasible(domain.FailureUnknownResource)
				result.Nights = nights
				resp.Result = result
				uc.observeOutcome(resp.Result)
				return resp, nil
			}
			uc.logger.Error("ValidateBooking: failed to get rules for resource=%d: %v", *req.ResourceID, err)
			return nil, fmt.Errorf("%w: failed to get resource rules: %v", ErrInternal, err)
		}
	}

	// 7. Разворачиваем диапазон в занимаемые даты и проверяем каждую.
	// Результат «все или ничего»: первый же отказ завершает проверку
	result := domain.BookingFeasibility{Feasible: true, Nights: nights}

	it := recurrence.Expand(req.StartDate, lastOccupiedDate(req.StartDate, req.EndDate), recurrence.EveryDay())
	for {
		day, ok := it.Next()
		if !ok {
			break
		}

		// 7.1. Решение уровня товара, при наличии ресурса — объединение
		// с решением уровня ресурса (И по Bookable, MIN по lockout)
		decision := rules.Resolve(itemStore, day, req.TimeSlot)
		if req.ResourceID != nil {
			decision = rules.CombineDecisions(decision, rules.Resolve(resourceStore, day, req.TimeSlot))
		}
		if !decision.HasLockout() && itemSettings.DefaultLockout > 0 {
			decision.Lockout = itemSettings.DefaultLockout
		}
		if uc.bookabilityOverride != nil {
			decision = uc.bookabilityOverride.Apply(day, decision)
		}

		if !decision.Bookable {
			uc.logger.Info("ValidateBooking: item=%d date=%s closed by rule",
				req.ItemID, day.Format(domain.DateFormat))
			failed := domain.InfeasibleAt(domain.FailureClosedByRule, day)
			failed.Nights = nights
			failed.PerDate = result.PerDate
			resp.Result = failed
			uc.observeOutcome(resp.Result)
			return resp, nil
		}

		// 7.2. Проверка занятости по внешнему счетчику
		count, err := uc.counts.CountForDate(ctx, domain.CountKey{
			ItemID:     req.ItemID,
			ResourceID: req.ResourceID,
			Date:       day,
			TimeSlot:   req.TimeSlot,
		})
		if err != nil {
			uc.logger.Error("ValidateBooking: failed to count bookings for item=%d date=%s: %v",
				req.ItemID, day.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}

		remaining := capacity.Remaining(decision, count)
		if !capacity.Allows(remaining, req.Quantity) {
			uc.logger.Info("ValidateBooking: item=%d date=%s capacity exhausted (remaining=%d, requested=%d)",
				req.ItemID, day.Format(domain.DateFormat), remaining, req.Quantity)
			failed := domain.InfeasibleAt(domain.FailureCapacityExhausted, day)
			failed.Nights = nights
			failed.PerDate = result.PerDate
			resp.Result = failed
			uc.observeOutcome(resp.Result)
			return resp, nil
		}

		// 7.3. Ценовая надбавка даты (с опциональной внешней коррекцией)
		delta := decision.PriceDelta
		if uc.priceAdjuster != nil {
			delta = uc.priceAdjuster.Adjust(day, delta)
			decision.PriceDelta = delta
		}
		result.TotalPriceDelta += delta

		result.PerDate = append(result.PerDate, domain.DateAvailability{
			Date:           day,
			Decision:       decision,
			RemainingSpots: remaining,
		})
	}

	uc.logger.Info("ValidateBooking: item=%d span %s..%s feasible, %d dates checked",
		req.ItemID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		len(result.PerDate))

	resp.Result = result
	uc.observeOutcome(resp.Result)
	return resp, nil
}
