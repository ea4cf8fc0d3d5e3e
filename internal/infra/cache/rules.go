package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	rulesRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/rules"
)

// RuleCache кэш сырых строк правил в Redis.
// Снапшоты правил читаются на каждый запрос доступности, а меняются только
// при сохранении настроек мерчантом, поэтому кэшируются строки целиком;
// инвалидация — явная, при каждом обновлении набора
type RuleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRuleCache создает кэш над существующим клиентом Redis
func NewRuleCache(client *redis.Client, ttl time.Duration) *RuleCache {
	return &RuleCache{client: client, ttl: ttl}
}

// GetRows возвращает закэшированные строки правил владельца.
// Второй результат false — промах кэша
func (c *RuleCache) GetRows(ctx context.Context, ownerKind domain.OwnerKind, ownerID int64) ([]rulesRepo.RuleRow, bool, error) {
	payload, err := c.client.Get(ctx, ruleKey(ownerKind, ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get rule rows: %w", err)
	}

	var rows []rulesRepo.RuleRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		// Битая запись равносильна промаху: источник истины — БД
		return nil, false, nil
	}

	return rows, true, nil
}

// SetRows сохраняет строки правил владельца
func (c *RuleCache) SetRows(ctx context.Context, ownerKind domain.OwnerKind, ownerID int64, rows []rulesRepo.RuleRow) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("cache: marshal rule rows: %w", err)
	}

	if err := c.client.Set(ctx, ruleKey(ownerKind, ownerID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set rule rows: %w", err)
	}

	return nil
}

// Invalidate удаляет снапшот владельца из кэша
func (c *RuleCache) Invalidate(ctx context.Context, ownerKind domain.OwnerKind, ownerID int64) error {
	if err := c.client.Del(ctx, ruleKey(ownerKind, ownerID)).Err(); err != nil {
		return fmt.Errorf("cache: invalidate rule rows: %w", err)
	}
	return nil
}

func ruleKey(ownerKind domain.OwnerKind, ownerID int64) string {
	return fmt.Sprintf("availability:rules:%s:%d", ownerKind, ownerID)
}
