package ruleset

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/rules"
	rulesRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/rules"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/ruleset/models"
)

// Service сервис наборов правил доступности: хранит конфигурацию
// владельцев (товаров и ресурсов) и отдает собранные снапшоты движку
type Service struct {
	ruleRepo     RuleRepository
	settingsRepo SettingsRepository
	cache        SnapshotCache // может быть nil
	metrics      Metrics       // может быть nil
	logger       Logger
}

// NewService создает новый сервис наборов правил
func NewService(ruleRepo RuleRepository, settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		ruleRepo:     ruleRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// WithCache подключает кэш снапшотов
func (s *Service) WithCache(cache SnapshotCache) *Service {
	s.cache = cache
	return s
}

// WithMetrics подключает счетчики сервиса
func (s *Service) WithMetrics(m Metrics) *Service {
	s.metrics = m
	return s
}

// GetItemStore возвращает снапшот правил товара.
// Товар без единого правила и без настроек считается не настроенным для
// бронирования: возвращается ErrItemNotFound. Товар с настройками, но без
// правил, открыт по умолчанию — снапшот будет пустым
func (s *Service) GetItemStore(ctx context.Context, itemID int64) (*domain.RuleStore, error) {
	rows, err := s.loadRows(ctx, domain.OwnerItem, itemID)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		if _, err := s.settingsRepo.GetByItem(ctx, itemID); err != nil {
			if errors.Is(err, settings.ErrSettingsNotFound) {
				return nil, fmt.Errorf("%w: item %d", ErrItemNotFound, itemID)
			}
			return nil, fmt.Errorf("%w: GetItemStore - get settings: %v", ErrInternal, err)
		}
	}

	return s.buildStore(domain.OwnerItem, itemID, rows)
}

// GetResourceStore возвращает снапшот правил ресурса.
// Ресурс без единого правила считается не настроенным: ErrResourceNotFound
func (s *Service) GetResourceStore(ctx context.Context, resourceID int64) (*domain.RuleStore, error) {
	rows, err := s.loadRows(ctx, domain.OwnerResource, resourceID)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: resource %d", ErrResourceNotFound, resourceID)
	}

	return s.buildStore(domain.OwnerResource, resourceID, rows)
}

// GetItemSettings возвращает настройки товара или nil, если они не заданы
func (s *Service) GetItemSettings(ctx context.Context, itemID int64) (*domain.ItemSettings, error) {
	itemSettings, err := s.settingsRepo.GetByItem(ctx, itemID)
	if errors.Is(err, settings.ErrSettingsNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetItemSettings - get settings: %v", ErrInternal, err)
	}
	return itemSettings, nil
}

// GetItemConfig возвращает текущую конфигурацию товара: настройки и строки правил
func (s *Service) GetItemConfig(ctx context.Context, itemID int64) (*models.ItemConfig, error) {
	itemSettings, err := s.settingsRepo.GetByItem(ctx, itemID)
	if errors.Is(err, settings.ErrSettingsNotFound) {
		itemSettings = nil
	} else if err != nil {
		return nil, fmt.Errorf("%w: GetItemConfig - get settings: %v", ErrInternal, err)
	}

	rows, err := s.ruleRepo.GetByOwner(ctx, domain.OwnerItem, itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetItemConfig - get rule rows: %v", ErrInternal, err)
	}

	if itemSettings == nil {
		if len(rows) == 0 {
			return nil, fmt.Errorf("%w: item %d", ErrItemNotFound, itemID)
		}
		defaults := domain.DefaultEngineConfig().SettingsOrDefaults(nil, itemID)
		itemSettings = &defaults
	}

	return &models.ItemConfig{
		Settings: *itemSettings,
		Rows:     rows,
	}, nil
}

// GetResourceConfig возвращает текущие строки правил ресурса
func (s *Service) GetResourceConfig(ctx context.Context, resourceID int64) ([]rulesRepo.RuleRow, error) {
	rows, err := s.ruleRepo.GetByOwner(ctx, domain.OwnerResource, resourceID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetResourceConfig - get rule rows: %v", ErrInternal, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: resource %d", ErrResourceNotFound, resourceID)
	}
	return rows, nil
}

// UpdateItemConfig атомарно заменяет конфигурацию товара.
// Присланный набор сначала разбирается и собирается в снапшот: структурно
// некорректная конфигурация отклоняется целиком, до записи в БД
func (s *Service) UpdateItemConfig(ctx context.Context, itemID int64, input *models.ItemConfigInput) error {
	if input == nil {
		return fmt.Errorf("%w: config input is required", ErrInvalidInput)
	}
	if input.MinNights < 0 || input.MaxNights < 0 {
		return fmt.Errorf("%w: nights bounds must not be negative", ErrInvalidConfiguration)
	}
	if input.MaxNights > domain.MaxNightsLimit {
		return fmt.Errorf("%w: maxNights %d exceeds limit %d",
			ErrInvalidConfiguration, input.MaxNights, domain.MaxNightsLimit)
	}
	if input.DefaultLockout < domain.MinLockout || input.DefaultLockout > domain.MaxLockout {
		return fmt.Errorf("%w: defaultLockout %d is out of range [%d, %d]",
			ErrInvalidConfiguration, input.DefaultLockout, domain.MinLockout, domain.MaxLockout)
	}

	ruleList, err := parseItemConfig(input)
	if err != nil {
		return err
	}

	if _, err := rules.BuildStore(domain.OwnerItem, itemID, ruleList); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	if err := s.ruleRepo.ReplaceByOwner(ctx, domain.OwnerItem, itemID, rowsFromRules(ruleList)); err != nil {
		return fmt.Errorf("%w: UpdateItemConfig - replace rule rows: %v", ErrInternal, err)
	}

	minNights := input.MinNights
	if minNights == 0 {
		minNights = domain.DefaultMinNights
	}
	if _, err := s.settingsRepo.Upsert(ctx, &domain.ItemSettings{
		ItemID:         itemID,
		MinNights:      minNights,
		MaxNights:      input.MaxNights,
		DefaultLockout: input.DefaultLockout,
	}); err != nil {
		return fmt.Errorf("%w: UpdateItemConfig - upsert settings: %v", ErrInternal, err)
	}

	s.invalidate(ctx, domain.OwnerItem, itemID)
	s.logger.Info("ruleset: item %d config replaced, %d rules", itemID, len(ruleList))

	return nil
}

// UpdateResourceRules атомарно заменяет набор правил ресурса
func (s *Service) UpdateResourceRules(ctx context.Context, resourceID int64, inputs []models.ResourceRuleInput) error {
	ruleList, err := parseResourceRules(inputs)
	if err != nil {
		return err
	}

	if _, err := rules.BuildStore(domain.OwnerResource, resourceID, ruleList); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	if err := s.ruleRepo.ReplaceByOwner(ctx, domain.OwnerResource, resourceID, rowsFromRules(ruleList)); err != nil {
		return fmt.Errorf("%w: UpdateResourceRules - replace rule rows: %v", ErrInternal, err)
	}

	s.invalidate(ctx, domain.OwnerResource, resourceID)
	s.logger.Info("ruleset: resource %d rules replaced, %d rules", resourceID, len(ruleList))

	return nil
}

// loadRows читает строки правил владельца: сначала кэш, затем БД.
// Ошибки кэша не фатальны — источник истины всегда БД
func (s *Service) loadRows(ctx context.Context, ownerKind domain.OwnerKind, ownerID int64) ([]rulesRepo.RuleRow, error) {
	if s.cache != nil {
		rows, ok, err := s.cache.GetRows(ctx, ownerKind, ownerID)
		if err != nil {
			s.logger.Warn("ruleset: cache read failed for %s %d: %v", ownerKind, ownerID, err)
		} else if ok {
			if s.metrics != nil {
				s.metrics.RuleCacheHit()
			}
			return rows, nil
		}
		if s.metrics != nil {
			s.metrics.RuleCacheMiss()
		}
	}

	rows, err := s.ruleRepo.GetByOwner(ctx, ownerKind, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: loadRows - get rule rows: %v", ErrInternal, err)
	}

	if s.cache != nil && len(rows) > 0 {
		if err := s.cache.SetRows(ctx, ownerKind, ownerID, rows); err != nil {
			s.logger.Warn("ruleset: cache write failed for %s %d: %v", ownerKind, ownerID, err)
		}
	}

	return rows, nil
}

// buildStore десериализует строки и собирает снапшот
func (s *Service) buildStore(ownerKind domain.OwnerKind, ownerID int64, rows []rulesRepo.RuleRow) (*domain.RuleStore, error) {
	ruleList, err := rulesFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: buildStore - corrupt rule rows for %s %d: %v", ErrInternal, ownerKind, ownerID, err)
	}

	store, err := rules.BuildStore(ownerKind, ownerID, ruleList)
	if err != nil {
		// Строки прошли проверку при записи; сборка может упасть только
		// на данных, испорченных вне сервиса
		return nil, fmt.Errorf("%w: buildStore - invalid stored rules for %s %d: %v", ErrInternal, ownerKind, ownerID, err)
	}

	if s.metrics != nil {
		s.metrics.RuleStoreRebuilt()
	}

	return store, nil
}

func (s *Service) invalidate(ctx context.Context, ownerKind domain.OwnerKind, ownerID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerKind, ownerID); err != nil {
		s.logger.Warn("ruleset: cache invalidation failed for %s %d: %v", ownerKind, ownerID, err)
	}
}
