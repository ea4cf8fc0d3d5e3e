package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func TestBuildStoreSortsByPriorityStable(t *testing.T) {
	store, err := BuildStore(domain.OwnerItem, 1, []domain.AvailabilityRule{
		{ID: 1, Kind: domain.KindSpecificDate, FromDate: date(2024, time.July, 1), Priority: 20},
		{ID: 2, Kind: domain.KindSpecificDate, FromDate: date(2024, time.July, 1), Priority: 5},
		{ID: 3, Kind: domain.KindSpecificDate, FromDate: date(2024, time.July, 1), Priority: 20},
		{ID: 4, Kind: domain.KindSpecificDate, FromDate: date(2024, time.July, 1), Priority: 5},
	})
	require.NoError(t, err)

	got := make([]int64, 0, len(store.Rules))
	for _, r := range store.Rules {
		got = append(got, r.ID)
	}
	// При равных приоритетах порядок объявления сохраняется
	assert.Equal(t, []int64{2, 4, 1, 3}, got)
}

func TestBuildStoreRejectsMalformedRules(t *testing.T) {
	cases := []struct {
		name string
		rule domain.AvailabilityRule
	}{
		{
			name: "custom range end before start",
			rule: domain.AvailabilityRule{
				Kind:     domain.KindCustomRange,
				FromDate: date(2024, time.July, 10),
				ToDate:   date(2024, time.July, 1),
			},
		},
		{
			name: "specific date missing",
			rule: domain.AvailabilityRule{Kind: domain.KindSpecificDate},
		},
		{
			name: "month out of range",
			rule: domain.AvailabilityRule{Kind: domain.KindMonthRange, FromMonth: 0, ToMonth: 13},
		},
		{
			name: "time range inverted",
			rule: domain.AvailabilityRule{Kind: domain.KindTimeRange, FromTime: "14:00", ToTime: "12:00"},
		},
		{
			name: "negative lockout",
			rule: domain.AvailabilityRule{
				Kind:     domain.KindSpecificDate,
				FromDate: date(2024, time.July, 1),
				Lockout:  -1,
			},
		},
		{
			name: "unknown kind",
			rule: domain.AvailabilityRule{Kind: "something_else"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildStore(domain.OwnerItem, 1, []domain.AvailabilityRule{tc.rule})
			assert.ErrorIs(t, err, ErrInvalidRule)
		})
	}
}

func TestBuildStoreDoesNotMutateInput(t *testing.T) {
	input := []domain.AvailabilityRule{
		{ID: 1, Kind: domain.KindSpecificDate, FromDate: date(2024, time.July, 1), Priority: 9},
		{ID: 2, Kind: domain.KindSpecificDate, FromDate: date(2024, time.July, 2), Priority: 1},
	}

	_, err := BuildStore(domain.OwnerItem, 1, input)
	require.NoError(t, err)

	assert.Equal(t, int64(1), input[0].ID)
	assert.Equal(t, int64(2), input[1].ID)
}
