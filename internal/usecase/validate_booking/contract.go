package validate_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// RuleStoreProvider интерфейс поставщика снапшотов правил
type RuleStoreProvider interface {
	// GetItemStore возвращает снапшот правил товара
	GetItemStore(ctx context.Context, itemID int64) (*domain.RuleStore, error)
	// GetResourceStore возвращает снапшот правил ресурса
	GetResourceStore(ctx context.Context, resourceID int64) (*domain.RuleStore, error)
}

// SettingsProvider интерфейс поставщика настроек товара
type SettingsProvider interface {
	// GetItemSettings возвращает настройки товара или nil, если они не заданы
	GetItemSettings(ctx context.Context, itemID int64) (*domain.ItemSettings, error)
}

// BookingCountProvider интерфейс поставщика счетчиков занятости.
// Счетчик принадлежит подсистеме заказов; движок его только читает
type BookingCountProvider interface {
	CountForDate(ctx context.Context, key domain.CountKey) (int, error)
}

// BookabilityOverride позволяет внешнему коду скорректировать решение по
// дате перед проверкой занятости.
// Реализация обязана быть чистой функцией от аргументов
type BookabilityOverride interface {
	Apply(date time.Time, decision domain.DateDecision) domain.DateDecision
}

// PriceAdjuster позволяет внешнему коду скорректировать ценовую надбавку даты
type PriceAdjuster interface {
	Adjust(date time.Time, delta float64) float64
}

// Metrics интерфейс счетчиков проверок осуществимости
type Metrics interface {
	FeasibilityCheck(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
