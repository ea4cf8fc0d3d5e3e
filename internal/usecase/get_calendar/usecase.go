package get_calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/capacity"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/recurrence"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/rules"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/timezone"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/ruleset"
)

// UseCase use case построения календаря доступности: состояние каждой даты
// окна независимо от остальных. В отличие от проверки осуществимости здесь
// нет правила «все или ничего» — закрытая дата не обрывает обход, а просто
// помечается в ответе
type UseCase struct {
	stores       RuleStoreProvider
	settings     SettingsProvider
	counts       BookingCountProvider
	cfg          domain.EngineConfig
	timeProvider TimeProvider
	logger       Logger
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
		stores:       stores,
		settings:     settings,
		counts:       counts,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет построение календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: item=%d, resource=%v, range=%s..%s",
		req.ItemID, req.ResourceID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	// 2. Снапшот правил товара
	itemStore, err := uc.stores.GetItemStore(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, ruleset.ErrItemNotFound) {
			uc.logger.Warn("GetCalendar: item id=%d is not configured for booking", req.ItemID)
			return nil, ErrItemNotFound
		}
		uc.logger.Error("GetCalendar: failed to get rules for item=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item rules: %v", ErrInternal, err)
	}

	// 3. Снапшот правил ресурса, если указан
	var resourceStore *domain.RuleStore
	if req.ResourceID != nil {
		resourceStore, err = uc.stores.GetResourceStore(ctx, *req.ResourceID)
		if err != nil {
			if errors.Is(err, ruleset.ErrResourceNotFound) {
				uc.logger.Warn("GetCalendar: resource id=%d is not configured", *req.ResourceID)
				return nil, ErrResourceNotFound
			}
			uc.logger.Error("GetCalendar: failed to get rules for resource=%d: %v", *req.ResourceID, err)
			return nil, fmt.Errorf("%w: failed to get resource rules: %v", ErrInternal, err)
		}
	}

	// 4. Настройки товара для дефолтного потолка занятости
	stored, err := uc.settings.GetItemSettings(ctx, req.ItemID)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get settings for item=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item settings: %v", ErrInternal, err)
	}
	itemSettings := uc.cfg.SettingsOrDefaults(stored, req.ItemID)

	// 5. Обходим окно дата за датой; календарь включает обе границы
	days := make([]Day, 0)

	it := recurrence.Expand(req.StartDate, req.EndDate, recurrence.EveryDay())
	for {
		day, ok := it.Next()
		if !ok {
			break
		}

		decision := rules.Resolve(itemStore, day, req.TimeSlot)
		if req.ResourceID != nil {
			decision = rules.CombineDecisions(decision, rules.Resolve(resourceStore, day, req.TimeSlot))
		}
		if !decision.HasLockout() && itemSettings.DefaultLockout > 0 {
			decision.Lockout = itemSettings.DefaultLockout
		}

		entry := Day{
			Date:           day,
			Bookable:       decision.Bookable,
			RemainingSpots: capacity.Unlimited,
			PriceDelta:     decision.PriceDelta,
		}

		// Занятость считается только для открытых дат с потолком
		if decision.Bookable && decision.HasLockout() {
			count, err := uc.counts.CountForDate(ctx, domain.CountKey{
				ItemID:     req.ItemID,
				ResourceID: req.ResourceID,
				Date:       day,
				TimeSlot:   req.TimeSlot,
			})
			if err != nil {
				uc.logger.Error("GetCalendar: failed to count bookings for item=%d date=%s: %v",
					req.ItemID, day.Format(domain.DateFormat), err)
				return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
			}

			entry.RemainingSpots = capacity.Remaining(decision, count)
			if entry.RemainingSpots == 0 {
				entry.Bookable = false
			}
		}

		days = append(days, entry)
	}

	uc.logger.Info("GetCalendar: item=%d built %d days", req.ItemID, len(days))

	return &Response{
		ItemID:      req.ItemID,
		ResourceID:  req.ResourceID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Days:        days,
		GeneratedAt: timezone.ToCustomerLocal(uc.timeProvider.Now(), req.OffsetMinutes),
	}, nil
}
