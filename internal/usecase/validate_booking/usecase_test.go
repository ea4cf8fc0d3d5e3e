package validate_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/rules"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/ruleset"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type stubStores struct {
	items     map[int64]*domain.RuleStore
	resources map[int64]*domain.RuleStore
}

func (s *stubStores) GetItemStore(_ context.Context, itemID int64) (*domain.RuleStore, error) {
	store, ok := s.items[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: item %d", ruleset.ErrItemNotFound, itemID)
	}
	return store, nil
}

func (s *stubStores) GetResourceStore(_ context.Context, resourceID int64) (*domain.RuleStore, error) {
	store, ok := s.resources[resourceID]
	if !ok {
		return nil, fmt.Errorf("%w: resource %d", ruleset.ErrResourceNotFound, resourceID)
	}
	return store, nil
}

type stubSettings struct {
	settings map[int64]*domain.ItemSettings
}

func (s *stubSettings) GetItemSettings(_ context.Context, itemID int64) (*domain.ItemSettings, error) {
	return s.settings[itemID], nil
}

type stubCounts struct {
	counts map[string]int
}

func (s *stubCounts) CountForDate(_ context.Context, key domain.CountKey) (int, error) {
	return s.counts[key.Date.Format(domain.DateFormat)], nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustItemStore(t *testing.T, itemID int64, ruleList ...domain.AvailabilityRule) *domain.RuleStore {
	t.Helper()
	store, err := rules.BuildStore(domain.OwnerItem, itemID, ruleList)
	require.NoError(t, err)
	return store
}

func mustResourceStore(t *testing.T, resourceID int64, ruleList ...domain.AvailabilityRule) *domain.RuleStore {
	t.Helper()
	store, err := rules.BuildStore(domain.OwnerResource, resourceID, ruleList)
	require.NoError(t, err)
	return store
}

func newUseCase(stores *stubStores, settings *stubSettings, counts *stubCounts) *UseCase {
	if settings == nil {
		settings = &stubSettings{}
	}
	if counts == nil {
		counts = &stubCounts{}
	}
	return NewUseCase(stores, settings, counts, domain.DefaultEngineConfig(), noopLogger{})
}

func TestExecute_OpenItemIsFeasible(t *testing.T) {
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustItemStore(t, 1),
	}}
	uc := newUseCase(stores, nil, nil)

	// Три ночи: 10, 11, 12 июля; 13-е — день выезда
	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 13),
		Quantity:  1,
	})

	require.NoError(t, err)
	assert.True(t, resp.Result.Feasible)
	assert.Equal(t, 3, resp.Result.Nights)
	require.Len(t, resp.Result.PerDate, 3)
	assert.Equal(t, date(2024, time.July, 12), resp.Result.PerDate[2].Date)
	assert.Equal(t, domain.FailureNone, resp.Result.FailureReason)
}

func TestExecute_SingleDateBookingIsOneNight(t *testing.T) {
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustItemStore(t, 1),
	}}
	uc := newUseCase(stores, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 10),
		Quantity:  1,
	})

	require.NoError(t, err)
	assert.True(t, resp.Result.Feasible)
	assert.Equal(t, 1, resp.Result.Nights)
	require.Len(t, resp.Result.PerDate, 1)
	assert.Equal(t, date(2024, time.July, 10), resp.Result.PerDate[0].Date)
}

func TestExecute_EndBeforeStartIsInvalidSpan(t *testing.T) {
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustItemStore(t, 1),
	}}
	uc := newUseCase(stores, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 13),
		EndDate:   date(2024, time.July, 10),
		Quantity:  1,
	})

	require.NoError(t, err)
	assert.False(t, resp.Result.Feasible)
	assert.Equal(t, domain.FailureInvalidSpan, resp.Result.FailureReason)
}

func TestExecute_SpanOutOfRange(t *testing.T) {
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustItemStore(t, 1),
	}}
	settings := &stubSettings{settings: map[int64]*domain.ItemSettings{
		1: {ItemID: 1, MinNights: 2, MaxNights: 5},
	}}
	uc := newUseCase(stores, settings, nil)

	// Одна ночь при минимуме в две
	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 11),
		Quantity:  1,
	})

	require.NoError(t, err)
	assert.False(t, resp.Result.Feasible)
	assert.Equal(t, domain.FailureSpanOutOfRange, resp.Result.FailureReason)
	assert.Equal(t, 1, resp.Result.Nights)

	// Шесть ночей при максимуме в пять
	resp, err = uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 16),
		Quantity:  1,
	})

	require.NoError(t, err)
	assert.False(t, resp.Result.Feasible)
	assert.Equal(t, domain.FailureSpanOutOfRange, resp.Result.FailureReason)
}

func TestExecute_ClosedMiddleNightFailsWholeSpan(t *testing.T) {
	// 11 июля закрыто точечным правилом; бронь 10–13 обязана упасть целиком
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustItemStore(t, 1, domain.AvailabilityRule{
			Kind:     domain.KindSpecificDate,
			FromDate: date(2024, time.July, 11),
			Bookable: false,
			Priority: 5,
		}),
	}}
	uc := newUseCase(stores, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 13),
		Quantity:  1,
	})

	require.NoError(t, err)
	assert.False(t, resp.Result.Feasible)
	assert.Equal(t, domain.FailureClosedByRule, resp.Result.FailureReason)
	require.NotNil(t, resp.Result.FailedDate)
	assert.Equal(t, date(2024, time.July, 11), *resp.Result.FailedDate)
	// Даты до отказа уже проверены и попали в разбивку
	require.Len(t, resp.Result.PerDate, 1)
	assert.Equal(t, date(2024, time.July, 10), resp.Result.PerDate[0].Date)
}

func TestExecute_CapacityExhausted(t *testing.T) {
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustItemStore(t, 1, domain.AvailabilityRule{
			Kind:        domain.KindWeekdayRecurring,
			FromWeekday: time.Sunday,
			ToWeekday:   time.Saturday,
			Bookable:    true,
			Lockout:     2,
			Priority:    10,
		}),
	}}
	counts := &stubCounts{counts: map[string]int{
		"2024-07-11": 2, // лимит 2 уже выбран
	}}
	uc := newUseCase(stores, nil, counts)

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 13),
		Quantity:  1,
	})

	require.NoError(t, err)
	assert.False(t, resp.Result.Feasible)
	assert.Equal(t, domain.FailureCapacityExhausted, resp.Result.FailureReason)
	require.NotNil(t, resp.Result.FailedDate)
	assert.Equal(t, date(2024, time.July, 11), *resp.Result.FailedDate)
}

func TestExecute_QuantityAgainstRemaining(t *testing.T) {
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustItemStore(t, 1, domain.AvailabilityRule{
			Kind:        domain.KindWeekdayRecurring,
			FromWeekday: time.Sunday,
			ToWeekday:   time.Saturday,
			Bookable:    true,
			Lockout:     5,
			Priority:    10,
		}),
	}}
	counts := &stubCounts{counts: map[string]int{
		"2024-07-10": 3, // остаток 2
	}}
	uc := newUseCase(stores, nil, counts)

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 10),
		Quantity:  2,
	})
	require.NoError(t, err)
	assert.True(t, resp.Result.Feasible)
	assert.Equal(t, 2, resp.Result.PerDate[0].RemainingSpots)

	resp, err = uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 10),
		Quantity:  3,
	})
	require.NoError(t, err)
	assert.False(t, resp.Result.Feasible)
	assert.Equal(t, domain.FailureCapacityExhausted, resp.Result.FailureReason)
}

func TestExecute_DefaultLockoutFromSettings(t *testing.T) {
	// Правил с lockout нет; потолок приходит из настроек товара
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustItemStore(t, 1),
	}}
	settings := &stubSettings{settings: map[int64]*domain.ItemSettings{
		1: {ItemID: 1, MinNights: 1, DefaultLockout: 1},
	}}
	counts := &stubCounts{counts: map[string]int{
		"2024-07-10": 1,
	}}
	uc := newUseCase(stores, settings, counts)

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 10),
		Quantity:  1,
	})

	require.NoError(t, err)
	assert.False(t, resp.Result.Feasible)
	assert.Equal(t, domain.FailureCapacityExhausted, resp.Result.FailureReason)
}

func TestExecute_ResourceCombination(t *testing.T) {
	// Товар открыт с lockout 5, ресурс ограничивает до 1 и закрывает вторник
	stores := &stubStores{
		items: map[int64]*domain.RuleStore{
			1: mustItemStore(t, 1, domain.AvailabilityRule{
				Kind:        domain.KindWeekdayRecurring,
				FromWeekday: time.Sunday,
				ToWeekday:   time.Saturday,
				Bookable:    true,
				Lockout:     5,
				Priority:    10,
			}),
		},
		resources: map[int64]*domain.RuleStore{
			7: mustResourceStore(t, 7,
				domain.AvailabilityRule{
					Kind:        domain.KindWeekdayRecurring,
					FromWeekday: time.Sunday,
					ToWeekday:   time.Saturday,
					Bookable:    true,
					Lockout:     1,
					Priority:    10,
				},
				domain.AvailabilityRule{
					Kind:        domain.KindWeekdayRecurring,
					FromWeekday: time.Tuesday,
					ToWeekday:   time.Tuesday,
					Bookable:    false,
					Priority:    5,
				},
			),
		},
	}
	uc := newUseCase(stores, nil, nil)

	// Среда 10 июля: открыто, остаток берется как MIN(5, 1)
	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:     1,
		ResourceID: ptr.Ptr(int64(7)),
		StartDate:  date(2024, time.July, 10),
		EndDate:    date(2024, time.July, 10),
		Quantity:   1,
	})
	require.NoError(t, err)
	assert.True(t, resp.Result.Feasible)
	assert.Equal(t, 1, resp.Result.PerDate[0].RemainingSpots)

	// Вторник 9 июля закрыт правилом ресурса
	resp, err = uc.Execute(context.Background(), &Request{
		ItemID:     1,
		ResourceID: ptr.Ptr(int64(7)),
		StartDate:  date(2024, time.July, 9),
		EndDate:    date(2024, time.July, 9),
		Quantity:   1,
	})
	require.NoError(t, err)
	assert.False(t, resp.Result.Feasible)
	assert.Equal(t, domain.FailureClosedByRule, resp.Result.FailureReason)
}

func TestExecute_UnknownItem(t *testing.T) {
	uc := newUseCase(&stubStores{}, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    99,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 10),
		Quantity:  1,
	})

	require.NoError(t, err)
	assert.False(t, resp.Result.Feasible)
	assert.Equal(t, domain.FailureUnknownItem, resp.Result.FailureReason)
}

func TestExecute_UnknownResource(t *testing.T) {
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustItemStore(t, 1),
	}}
	uc := newUseCase(stores, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:     1,
		ResourceID: ptr.Ptr(int64(42)),
		StartDate:  date(2024, time.July, 10),
		EndDate:    date(2024, time.July, 10),
		Quantity:   1,
	})

	require.NoError(t, err)
	assert.False(t, resp.Result.Feasible)
	assert.Equal(t, domain.FailureUnknownResource, resp.Result.FailureReason)
}

func TestExecute_PriceDeltaAccumulation(t *testing.T) {
	// Надбавка выходного дня попадает только на субботу и воскресенье
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustItemStore(t, 1,
			domain.AvailabilityRule{
				Kind:        domain.KindWeekdayRecurring,
				FromWeekday: time.Saturday,
				ToWeekday:   time.Sunday,
				Bookable:    true,
				Priority:    10,
				PriceDelta:  ptr.Ptr(20.0),
			},
		),
	}}
	uc := newUseCase(stores, nil, nil)

	// Пятница 12 июля — понедельник 15 июля: ночи 12, 13, 14
	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 12),
		EndDate:   date(2024, time.July, 15),
		Quantity:  1,
	})

	require.NoError(t, err)
	assert.True(t, resp.Result.Feasible)
	assert.InDelta(t, 40.0, resp.Result.TotalPriceDelta, 0.001)
}

type closeDateOverride struct {
	closed time.Time
}

func (o closeDateOverride) Apply(day time.Time, decision domain.DateDecision) domain.DateDecision {
	if day.Equal(o.closed) {
		decision.Bookable = false
	}
	return decision
}

type doubleAdjuster struct{}

func (doubleAdjuster) Adjust(_ time.Time, delta float64) float64 { return delta * 2 }

func TestExecute_OverrideAndAdjusterHooks(t *testing.T) {
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustItemStore(t, 1, domain.AvailabilityRule{
			Kind:        domain.KindWeekdayRecurring,
			FromWeekday: time.Sunday,
			ToWeekday:   time.Saturday,
			Bookable:    true,
			Priority:    10,
			PriceDelta:  ptr.Ptr(10.0),
		}),
	}}

	uc := newUseCase(stores, nil, nil).
		WithBookabilityOverride(closeDateOverride{closed: date(2024, time.July, 11)})

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 13),
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.False(t, resp.Result.Feasible)
	assert.Equal(t, domain.FailureClosedByRule, resp.Result.FailureReason)

	uc = newUseCase(stores, nil, nil).WithPriceAdjuster(doubleAdjuster{})
	resp, err = uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 11),
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.True(t, resp.Result.Feasible)
	assert.InDelta(t, 20.0, resp.Result.TotalPriceDelta, 0.001)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase(&stubStores{}, nil, nil)

	cases := []struct {
		name string
		req  *Request
	}{
		{"zero item", &Request{StartDate: date(2024, time.July, 10), EndDate: date(2024, time.July, 11), Quantity: 1}},
		{"zero quantity", &Request{ItemID: 1, StartDate: date(2024, time.July, 10), EndDate: date(2024, time.July, 11)}},
		{"missing start", &Request{ItemID: 1, EndDate: date(2024, time.July, 11), Quantity: 1}},
		{"negative resource", &Request{ItemID: 1, ResourceID: ptr.Ptr(int64(-1)), StartDate: date(2024, time.July, 10), EndDate: date(2024, time.July, 11), Quantity: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
