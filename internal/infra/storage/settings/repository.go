package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с настройками товаров
type Repository struct {
	db *sql.DB
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByItem получает настройки товара
func (r *Repository) GetByItem(ctx context.Context, itemID int64) (*domain.ItemSettings, error) {
	query, args, err := psqlbuilder.Select(
		"item_id",
		"min_nights",
		"max_nights",
		"default_lockout",
		"created_at",
		"updated_at",
	).
		From("item_settings").
		Where(squirrel.Eq{"item_id": itemID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByItem - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ItemSettings
	var createdAt, updatedAt sql.NullTime

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.ItemID,
		&s.MinNights,
		&s.MaxNights,
		&s.DefaultLockout,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByItem - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает или обновляет настройки товара
func (r *Repository) Upsert(ctx context.Context, s *domain.ItemSettings) (*domain.ItemSettings, error) {
	query, args, err := psqlbuilder.Insert("item_settings").
		Columns(
			"item_id",
			"min_nights",
			"max_nights",
			"default_lockout",
		).
		Values(
			s.ItemID,
			s.MinNights,
			s.MaxNights,
			s.DefaultLockout,
		).
		Suffix(`ON CONFLICT (item_id) DO UPDATE SET
			min_nights = EXCLUDED.min_nights,
			max_nights = EXCLUDED.max_nights,
			default_lockout = EXCLUDED.default_lockout,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
