package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeStringValidate(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59", "24:00"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), s)
	}

	invalid := []string{"", "9:30", "25:00", "24:01", "10:60", "10-30", "aa:bb", "10:30:00x"}
	for _, s := range invalid {
		assert.Error(t, TimeString(s).Validate(), s)
	}
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), ts)

	ts, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	_, err = TimeString("23:30").AddMinutes(31)
	assert.Error(t, err)
}

func TestTimeStringCompare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:01").IsBefore("09:00"))
	assert.True(t, TimeString("18:00").IsAfter("17:59"))
	assert.False(t, TimeString("18:00").IsAfter("18:00"))
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:05")))
	assert.Equal(t, TimeString("08:05"), ts)

	require.NoError(t, ts.Scan(time.Date(2024, 7, 1, 11, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("11:45"), ts)

	assert.Error(t, ts.Scan(123))
}
