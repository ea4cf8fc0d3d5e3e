package types

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" form.
// It is the exchange format for slot boundaries: handlers parse it once at
// the API boundary and the engine only compares and shifts it.
// The special value "24:00" is allowed as an exclusive end-of-day boundary.
type TimeString string

// NewTimeString creates a TimeString from the clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks that the value is a well-formed "HH:MM" time.
func (ts TimeString) Validate() error {
	_, err := ts.minutes()
	return err
}

// IsZero returns true for the empty value.
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// IsBefore reports whether ts is strictly earlier than other.
// Malformed values compare as not-before.
func (ts TimeString) IsBefore(other TimeString) bool {
	a, err1 := ts.minutes()
	b, err2 := other.minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether ts is strictly later than other.
// Malformed values compare as not-after.
func (ts TimeString) IsAfter(other TimeString) bool {
	a, err1 := ts.minutes()
	b, err2 := other.minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return a > b
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// Returns an error if the result would cross the end of the day.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := ts.minutes()
	if err != nil {
		return "", err
	}
	m += minutes
	if m < 0 || m > 24*60 {
		return "", fmt.Errorf("types: time %q + %d minutes is out of day range", ts, minutes)
	}
	return fromMinutes(m), nil
}

// String returns the raw "HH:MM" value.
func (ts TimeString) String() string {
	return string(ts)
}

// Value implements driver.Valuer so TimeString can be stored directly.
func (ts TimeString) Value() (driver.Value, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan implements sql.Scanner. Accepts TEXT and TIME column representations.
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case string:
		return ts.scanString(v)
	case []byte:
		return ts.scanString(string(v))
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("types: cannot scan %T into TimeString", src)
	}
}

func (ts *TimeString) scanString(s string) error {
	// TIME columns come back as "HH:MM:SS"; keep only hours and minutes.
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// minutes converts the value to minutes since midnight.
func (ts TimeString) minutes() (int, error) {
	parts := strings.SplitN(string(ts), ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("types: invalid time %q, expected HH:MM", ts)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("types: invalid hour in %q", ts)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("types: invalid minute in %q", ts)
	}
	if m < 0 || m > 59 || h < 0 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("types: time %q is out of range", ts)
	}
	return h*60 + m, nil
}

func fromMinutes(m int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}
