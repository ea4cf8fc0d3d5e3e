package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandWeekdayMask(t *testing.T) {
	// 2024-07-01 — понедельник
	it := Expand(date(2024, time.July, 1), date(2024, time.July, 14), Weekdays(time.Saturday, time.Sunday))

	got := it.Collect()
	want := []time.Time{
		date(2024, time.July, 6),
		date(2024, time.July, 7),
		date(2024, time.July, 13),
		date(2024, time.July, 14),
	}
	assert.Equal(t, want, got)
}

func TestExpandExplicitDatesOutsideSpanDropped(t *testing.T) {
	it := Expand(date(2024, time.July, 1), date(2024, time.July, 10), ExplicitDates(
		date(2024, time.June, 30),  // до диапазона
		date(2024, time.July, 5),
		date(2024, time.July, 3),
		date(2024, time.July, 15),  // после диапазона
	))

	got := it.Collect()
	// Внутри диапазона, по возрастанию
	assert.Equal(t, []time.Time{date(2024, time.July, 3), date(2024, time.July, 5)}, got)
}

func TestExpandMonthRangeWrapsYear(t *testing.T) {
	it := Expand(date(2024, time.October, 30), date(2024, time.November, 2), Months(time.November, time.February))

	got := it.Collect()
	assert.Equal(t, []time.Time{date(2024, time.November, 1), date(2024, time.November, 2)}, got)

	// Январь следующего года тоже попадает в Nov..Feb
	it = Expand(date(2025, time.January, 1), date(2025, time.January, 2), Months(time.November, time.February))
	assert.Len(t, it.Collect(), 2)
}

func TestExpandUnionDeduplicates(t *testing.T) {
	// 2024-07-06 — суббота, она же указана явно: дата выдается один раз
	pattern := Weekdays(time.Saturday)
	pattern.Dates = []time.Time{date(2024, time.July, 6)}

	it := Expand(date(2024, time.July, 1), date(2024, time.July, 7), pattern)
	assert.Equal(t, []time.Time{date(2024, time.July, 6)}, it.Collect())
}

func TestExpandEveryDay(t *testing.T) {
	it := Expand(date(2024, time.July, 1), date(2024, time.July, 3), EveryDay())

	got := it.Collect()
	require.Len(t, got, 3)
	assert.Equal(t, date(2024, time.July, 1), got[0])
	assert.Equal(t, date(2024, time.July, 3), got[2])
}

func TestExpandEmptyPatternYieldsNothing(t *testing.T) {
	it := Expand(date(2024, time.July, 1), date(2024, time.July, 31), Pattern{})
	assert.Empty(t, it.Collect())
	assert.True(t, Pattern{}.IsEmpty())
}

func TestIteratorLazyAndRestartable(t *testing.T) {
	it := Expand(date(2024, time.January, 1), date(2034, time.January, 1), EveryDay())

	// Обход можно прервать в любой момент
	first, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 1), first)

	second, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 2), second)

	// После Reset последовательность начинается заново
	it.Reset()
	restarted, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, first, restarted)
}

func TestExpandSingleDaySpan(t *testing.T) {
	it := Expand(date(2024, time.July, 1), date(2024, time.July, 1), EveryDay())
	assert.Equal(t, []time.Time{date(2024, time.July, 1)}, it.Collect())
}
