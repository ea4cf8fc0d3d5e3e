package get_calendar

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

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustStore(t *testing.T, ruleList ...domain.AvailabilityRule) *domain.RuleStore {
	t.Helper()
	store, err := rules.BuildStore(domain.OwnerItem, 1, ruleList)
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

func TestExecute_ClosedDateDoesNotStopWalk(t *testing.T) {
	// 11 июля закрыто; календарь все равно покрывает окно целиком
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustStore(t, domain.AvailabilityRule{
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
		EndDate:   date(2024, time.July, 12),
	})

	require.NoError(t, err)
	require.Len(t, resp.Days, 3)
	assert.True(t, resp.Days[0].Bookable)
	assert.False(t, resp.Days[1].Bookable)
	assert.True(t, resp.Days[2].Bookable)
}

func TestExecute_RemainingSpotsAndExhaustion(t *testing.T) {
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustStore(t, domain.AvailabilityRule{
			Kind:        domain.KindWeekdayRecurring,
			FromWeekday: time.Sunday,
			ToWeekday:   time.Saturday,
			Bookable:    true,
			Lockout:     2,
			Priority:    10,
		}),
	}}
	counts := &stubCounts{counts: map[string]int{
		"2024-07-10": 1,
		"2024-07-11": 2,
	}}
	uc := newUseCase(stores, nil, counts)

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 12),
	})

	require.NoError(t, err)
	require.Len(t, resp.Days, 3)

	assert.Equal(t, 1, resp.Days[0].RemainingSpots)
	assert.True(t, resp.Days[0].Bookable)

	// Исчерпанная дата отображается закрытой
	assert.Equal(t, 0, resp.Days[1].RemainingSpots)
	assert.False(t, resp.Days[1].Bookable)

	assert.Equal(t, 2, resp.Days[2].RemainingSpots)
}

func TestExecute_UnlimitedDatesSkipCounting(t *testing.T) {
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustStore(t),
	}}
	uc := newUseCase(stores, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 10),
	})

	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, domain.UnlimitedSpots, resp.Days[0].RemainingSpots)
}

func TestExecute_GeneratedAtInCustomerOffset(t *testing.T) {
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustStore(t),
	}}
	uc := newUseCase(stores, nil, nil)
	uc.timeProvider = fixedTime{now: time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:        1,
		StartDate:     date(2024, time.July, 10),
		EndDate:       date(2024, time.July, 10),
		OffsetMinutes: 330, // UTC+05:30
	})

	require.NoError(t, err)
	assert.Equal(t, 17, resp.GeneratedAt.Hour())
	assert.Equal(t, 30, resp.GeneratedAt.Minute())
	// Тот же абсолютный момент
	assert.True(t, resp.GeneratedAt.Equal(time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)))
}

func TestExecute_UnknownItemAndResource(t *testing.T) {
	uc := newUseCase(&stubStores{}, nil, nil)

	_, err := uc.Execute(context.Background(), &Request{
		ItemID:    99,
		StartDate: date(2024, time.July, 10),
		EndDate:   date(2024, time.July, 10),
	})
	assert.ErrorIs(t, err, ErrItemNotFound)

	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustStore(t),
	}}
	uc = newUseCase(stores, nil, nil)
	resourceID := int64(42)
	_, err = uc.Execute(context.Background(), &Request{
		ItemID:     1,
		ResourceID: &resourceID,
		StartDate:  date(2024, time.July, 10),
		EndDate:    date(2024, time.July, 10),
	})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_RangeTooWide(t *testing.T) {
	stores := &stubStores{items: map[int64]*domain.RuleStore{
		1: mustStore(t),
	}}
	uc := newUseCase(stores, nil, nil)

	_, err := uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.January, 1).AddDate(0, 0, domain.MaxNightsLimit),
	})
	assert.ErrorIs(t, err, ErrRangeTooWide)
}

func TestExecute_EndBeforeStartIsInvalid(t *testing.T) {
	uc := newUseCase(&stubStores{}, nil, nil)

	_, err := uc.Execute(context.Background(), &Request{
		ItemID:    1,
		StartDate: date(2024, time.July, 12),
		EndDate:   date(2024, time.July, 10),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
