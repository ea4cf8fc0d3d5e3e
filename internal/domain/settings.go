package domain

import "time"

// ItemSettings holds the per-item booking constraints that are not expressed
// as availability rules: the allowed span length and fallback capacity.
type ItemSettings struct {
	ItemID         int64
	MinNights      int // minimum span length, nights
	MaxNights      int // 0 = unlimited
	DefaultLockout int // 0 = unlimited; applies when no matching rule caps a date
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasMaxNights returns true if the item limits the span length.
func (s *ItemSettings) HasMaxNights() bool {
	return s.MaxNights > 0
}

// AllowsNights returns true if a span of the given length fits the item's
// configured bounds.
func (s *ItemSettings) AllowsNights(nights int) bool {
	if nights < s.MinNights {
		return false
	}
	if s.HasMaxNights() && nights > s.MaxNights {
		return false
	}
	return true
}

// EngineConfig carries plugin-wide presentation and fallback defaults.
// It is built once at startup and passed by value; there is no ambient
// mutable option storage.
type EngineConfig struct {
	DateFormat       string
	TimeFormat       string
	DefaultMinNights int
	DefaultMaxNights int
	DefaultLockout   int
}

// DefaultEngineConfig returns the stock engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DateFormat:       DateFormat,
		TimeFormat:       TimeFormat,
		DefaultMinNights: DefaultMinNights,
		DefaultMaxNights: DefaultMaxNights,
		DefaultLockout:   DefaultLockout,
	}
}

// SettingsOrDefaults returns settings for an item, falling back to the
// engine-wide defaults when the merchant never configured the item.
func (c EngineConfig) SettingsOrDefaults(settings *ItemSettings, itemID int64) ItemSettings {
	if settings != nil {
		return *settings
	}
	return ItemSettings{
		ItemID:         itemID,
		MinNights:      c.DefaultMinNights,
		MaxNights:      c.DefaultMaxNights,
		DefaultLockout: c.DefaultLockout,
	}
}
