package rules

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Resolver разрешает правила доступности уровня товара
type Resolver struct {
	store *domain.RuleStore
}

// NewResolver создает резолвер над снапшотом правил товара
func NewResolver(store *domain.RuleStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve возвращает решение для даты и опционального слота
func (r *Resolver) Resolve(date time.Time, slot *types.TimeString) domain.DateDecision {
	return Resolve(r.store, date, slot)
}

// ResourceResolver разрешает правила доступности уровня ресурса.
// Алгоритм тот же, что у Resolver, но работает он над отдельным набором
// правил с собственным пространством приоритетов: правила ресурса никогда
// не наследуются от товара и не сливаются с его правилами. Два решения
// объединяются вызывающей стороной через CombineDecisions.
type ResourceResolver struct {
	store *domain.RuleStore
}

// NewResourceResolver создает резолвер над снапшотом правил ресурса
func NewResourceResolver(store *domain.RuleStore) *ResourceResolver {
	return &ResourceResolver{store: store}
}

// Resolve возвращает решение для даты и опционального слота
func (r *ResourceResolver) Resolve(date time.Time, slot *types.TimeString) domain.DateDecision {
	return Resolve(r.store, date, slot)
}
