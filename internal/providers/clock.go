// ABOUTME: Wall-clock helpers localized to a timezone
// ABOUTME: Falls back to the configured default when a zone fails to load
package providers

import "time"

// DefaultTimezone is used when no destination timezone is known.
const DefaultTimezone = "Asia/Jerusalem"

// Clock produces timezone-localized timestamps and dates.
type Clock struct {
	defaultTZ string
	nowFunc   func() time.Time
}

// NewClock creates a Clock with the given fallback timezone.
func NewClock(defaultTZ string) *Clock {
	if defaultTZ == "" {
		defaultTZ = DefaultTimezone
	}
	return &Clock{defaultTZ: defaultTZ, nowFunc: time.Now}
}

// NewFixedClock creates a Clock frozen at the given instant, for tests.
func NewFixedClock(at time.Time, defaultTZ string) *Clock {
	c := NewClock(defaultTZ)
	c.nowFunc = func() time.Time { return at }
	return c
}

func (c *Clock) locate(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(c.defaultTZ); err == nil {
		return loc
	}
	return time.UTC
}

// NowISO returns the current instant in the given timezone, RFC 3339 seconds.
func (c *Clock) NowISO(tz string) string {
	return c.nowFunc().In(c.locate(tz)).Format("2006-01-02T15:04:05Z07:00")
}

// Today returns the current calendar date in the given timezone.
func (c *Clock) Today(tz string) string {
	return c.nowFunc().In(c.locate(tz)).Format("2006-01-02")
}
