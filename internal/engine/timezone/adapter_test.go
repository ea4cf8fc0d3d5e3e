package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	offsets := []int{0, 60, -300, 330, 570, -720, 840}
	instants := []time.Time{
		time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC),
		time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, offset := range offsets {
		for _, x := range instants {
			local := ToCustomerLocal(x, offset)
			back := ToStorage(local, offset)
			assert.True(t, back.Equal(x), "offset=%d instant=%s", offset, x)
		}
	}
}

func TestToCustomerLocalShiftsWallClock(t *testing.T) {
	stored := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)

	local := ToCustomerLocal(stored, 330) // UTC+05:30
	assert.Equal(t, 17, local.Hour())
	assert.Equal(t, 30, local.Minute())
	// Абсолютный момент не меняется
	assert.True(t, local.Equal(stored))

	local = ToCustomerLocal(stored, -420) // UTC-07:00
	assert.Equal(t, 5, local.Hour())
}

func TestFromWallClock(t *testing.T) {
	// Клиент в UTC+02:00 выбрал 2024-07-01 09:00
	instant := FromWallClock(2024, time.July, 1, 9, 0, 120)

	utc := instant.UTC()
	require.Equal(t, 7, utc.Hour())
	assert.Equal(t, time.Date(2024, time.July, 1, 7, 0, 0, 0, time.UTC), utc)
}

func TestOffsetIsFixedNotZoneLookup(t *testing.T) {
	// Одно и то же смещение дает один и тот же результат для дат по обе
	// стороны перехода на летнее время
	winter := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 13, ToCustomerLocal(winter, 60).Hour())
	assert.Equal(t, 13, ToCustomerLocal(summer, 60).Hour())
}
