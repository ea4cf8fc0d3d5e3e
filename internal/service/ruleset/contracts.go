package ruleset

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	rulesRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/rules"
)

// RuleRepository интерфейс репозитория строк правил
type RuleRepository interface {
	GetByOwner(ctx context.Context, ownerKind domain.OwnerKind, ownerID int64) ([]rulesRepo.RuleRow, error)
	ReplaceByOwner(ctx context.Context, ownerKind domain.OwnerKind, ownerID int64, rows []rulesRepo.RuleRow) error
}

// SettingsRepository интерфейс репозитория настроек товаров
type SettingsRepository interface {
	GetByItem(ctx context.Context, itemID int64) (*domain.ItemSettings, error)
	Upsert(ctx context.Context, settings *domain.ItemSettings) (*domain.ItemSettings, error)
}

// SnapshotCache интерфейс кэша строк правил.
// Кэш опционален: при недоступности сервис ходит в БД напрямую
type SnapshotCache interface {
	GetRows(ctx context.Context, ownerKind domain.OwnerKind, ownerID int64) ([]rulesRepo.RuleRow, bool, error)
	SetRows(ctx context.Context, ownerKind domain.OwnerKind, ownerID int64, rows []rulesRepo.RuleRow) error
	Invalidate(ctx context.Context, ownerKind domain.OwnerKind, ownerID int64) error
}

// Metrics интерфейс счетчиков сервиса
type Metrics interface {
	RuleCacheHit()
	RuleCacheMiss()
	RuleStoreRebuilt()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
