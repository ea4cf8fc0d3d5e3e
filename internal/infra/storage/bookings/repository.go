package bookings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository читает агрегированные счетчики занятости из таблицы броней.
// Таблица принадлежит подсистеме заказов: здесь только чтение, инкременты
// выполняет владелец при фиксации заказа
type Repository struct {
	db *sql.DB
}

// NewRepository создает новый экземпляр репозитория счетчиков
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CountForDate возвращает число занятых мест для ключа
// (товар, опциональный ресурс, дата, опциональный слот).
// Отмененные и отклоненные брони места не занимают
func (r *Repository) CountForDate(ctx context.Context, key domain.CountKey) (int, error) {
	inactive := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactive[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("COALESCE(SUM(quantity), 0)").
		From("bookings").
		Where(squirrel.Eq{"item_id": key.ItemID}).
		Where(squirrel.Eq{"booking_date": key.Date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": inactive})

	if key.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *key.ResourceID})
	}

	if key.TimeSlot != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"time_slot": key.TimeSlot.String()})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountForDate - build select query: %v", ErrBuildQuery, err)
	}

	var count sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountForDate - execute query: %v", ErrExecQuery, err)
	}

	return int(count.Int64), nil
}
