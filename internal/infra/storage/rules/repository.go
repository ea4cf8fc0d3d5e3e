package rules

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий для работы со строками правил доступности
type Repository struct {
	db *sql.DB
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByOwner получает все правила владельца в порядке объявления.
// Порядок объявления (position) важен: он разрешает конфликты правил
// с одинаковым приоритетом
func (r *Repository) GetByOwner(ctx context.Context, ownerKind domain.OwnerKind, ownerID int64) ([]RuleRow, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"owner_kind",
		"owner_id",
		"kind",
		"from_value",
		"to_value",
		"bookable",
		"lockout",
		"priority",
		"price_delta",
		"price_exclusive",
		"position",
	).
		From("availability_rules").
		Where(squirrel.Eq{"owner_kind": string(ownerKind), "owner_id": ownerID}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]RuleRow, 0)
	for rows.Next() {
		var row RuleRow
		if err := rows.Scan(
			&row.ID,
			&row.OwnerKind,
			&row.OwnerID,
			&row.Kind,
			&row.FromValue,
			&row.ToValue,
			&row.Bookable,
			&row.Lockout,
			&row.Priority,
			&row.PriceDelta,
			&row.PriceExclusive,
			&row.Position,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByOwner - scan rule row: %v", ErrScanRow, err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - iterate rows: %v", ErrScanRow, err)
	}

	return result, nil
}

// ReplaceByOwner атомарно заменяет весь набор правил владельца.
// Вызывается при каждом сохранении настроек бронирования мерчантом:
// снапшот всегда пересобирается целиком, частичных обновлений нет
func (r *Repository) ReplaceByOwner(ctx context.Context, ownerKind domain.OwnerKind, ownerID int64, ruleRows []RuleRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: ReplaceByOwner - begin: %v", ErrTransaction, err)
	}
	defer tx.Rollback()

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("availability_rules").
		Where(squirrel.Eq{"owner_kind": string(ownerKind), "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceByOwner - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceByOwner - delete old rules: %v", ErrExecQuery, err)
	}

	if len(ruleRows) > 0 {
		insert := psqlbuilder.Insert("availability_rules").
			Columns(
				"owner_kind",
				"owner_id",
				"kind",
				"from_value",
				"to_value",
				"bookable",
				"lockout",
				"priority",
				"price_delta",
				"price_exclusive",
				"position",
			)

		for i, row := range ruleRows {
			insert = insert.Values(
				string(ownerKind),
				ownerID,
				row.Kind,
				row.FromValue,
				row.ToValue,
				row.Bookable,
				row.Lockout,
				row.Priority,
				row.PriceDelta,
				row.PriceExclusive,
				i,
			)
		}

		insertQuery, insertArgs, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceByOwner - build insert query: %v", ErrBuildQuery, err)
		}

		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("%w: ReplaceByOwner - insert rules: %v", ErrExecQuery, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: ReplaceByOwner - commit: %v", ErrTransaction, err)
	}

	return nil
}
