package update_rules

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/ruleset/models"
)

type RulesetService interface {
	UpdateItemConfig(ctx context.Context, itemID int64, input *models.ItemConfigInput) error
	UpdateResourceRules(ctx context.Context, resourceID int64, inputs []models.ResourceRuleInput) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
