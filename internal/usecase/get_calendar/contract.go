package get_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// RuleStoreProvider интерфейс поставщика снапшотов правил
type RuleStoreProvider interface {
	GetItemStore(ctx context.Context, itemID int64) (*domain.RuleStore, error)
	GetResourceStore(ctx context.Context, resourceID int64) (*domain.RuleStore, error)
}

// SettingsProvider интерфейс поставщика настроек товара
type SettingsProvider interface {
	GetItemSettings(ctx context.Context, itemID int64) (*domain.ItemSettings, error)
}

// BookingCountProvider интерфейс поставщика счетчиков занятости
type BookingCountProvider interface {
	CountForDate(ctx context.Context, key domain.CountKey) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
