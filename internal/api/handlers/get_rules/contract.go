package get_rules

import (
	"context"

	rulesRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/rules"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/ruleset/models"
)

type RulesetService interface {
	GetItemConfig(ctx context.Context, itemID int64) (*models.ItemConfig, error)
	GetResourceConfig(ctx context.Context, resourceID int64) ([]rulesRepo.RuleRow, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
