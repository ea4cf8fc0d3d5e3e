package get_rules

import (
	rulesRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/rules"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/ruleset/models"
)

// ItemConfigResponse HTTP response model конфигурации товара
type ItemConfigResponse struct {
	ItemID         int64     `json:"itemId"`
	MinNights      int       `json:"minNights"`
	MaxNights      int       `json:"maxNights"`      // 0 = без ограничения
	DefaultLockout int       `json:"defaultLockout"` // 0 = без ограничения
	Rules          []RuleRow `json:"rules"`
}

// ResourceRulesResponse HTTP response model правил ресурса
type ResourceRulesResponse struct {
	ResourceID int64     `json:"resourceId"`
	Rules      []RuleRow `json:"rules"`
}

// RuleRow сырая строка правила в порядке объявления
type RuleRow struct {
	ID             int64    `json:"id"`
	Kind           string   `json:"kind"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	Bookable       bool     `json:"bookable"`
	Lockout        int      `json:"lockout"` // 0 = без ограничения
	Priority       int      `json:"priority"`
	Price          *float64 `json:"price,omitempty"`
	PriceExclusive bool     `json:"priceExclusive,omitempty"`
}

// FromItemConfig конвертирует конфигурацию товара в HTTP response
func FromItemConfig(cfg *models.ItemConfig) *ItemConfigResponse {
	return &ItemConfigResponse{
		ItemID:         cfg.Settings.ItemID,
		MinNights:      cfg.Settings.MinNights,
		MaxNights:      cfg.Settings.MaxNights,
		DefaultLockout: cfg.Settings.DefaultLockout,
		Rules:          fromRows(cfg.Rows),
	}
}

// FromResourceRows конвертирует строки правил ресурса в HTTP response
func FromResourceRows(resourceID int64, rows []rulesRepo.RuleRow) *ResourceRulesResponse {
	return &ResourceRulesResponse{
		ResourceID: resourceID,
		Rules:      fromRows(rows),
	}
}

func fromRows(rows []rulesRepo.RuleRow) []RuleRow {
	out := make([]RuleRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, RuleRow{
			ID:             row.ID,
			Kind:           row.Kind,
			From:           row.FromValue,
			To:             row.ToValue,
			Bookable:       row.Bookable,
			Lockout:        row.Lockout,
			Priority:       row.Priority,
			Price:          row.PriceDelta,
			PriceExclusive: row.PriceExclusive,
		})
	}
	return out
}
