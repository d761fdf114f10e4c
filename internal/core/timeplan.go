// ABOUTME: Relative time resolution: today/tomorrow/weekend to concrete dates
// ABOUTME: Weekend days vary by country; day indices run Monday=0 to Sunday=6
package core

import (
	"time"

	"github.com/harper/wayfarer/internal/models"
)

const isoDate = "2006-01-02"

// defaultWeekend is Saturday-Sunday.
var defaultWeekend = models.Weekend{Start: 5, End: 6}

// weekendByCountry lists countries whose weekend is not Saturday-Sunday.
// Unlisted countries get the default, which is knowingly wrong for a few
// places not covered here.
var weekendByCountry = map[string]models.Weekend{
	"IL": {Start: 4, End: 5}, // Israel: Fri-Sat
	"SA": {Start: 4, End: 5}, // Saudi Arabia
	"QA": {Start: 4, End: 5}, // Qatar
	"KW": {Start: 4, End: 5}, // Kuwait
	"BH": {Start: 4, End: 5}, // Bahrain
	"OM": {Start: 4, End: 5}, // Oman
	"JO": {Start: 4, End: 5}, // Jordan
	"EG": {Start: 4, End: 5}, // Egypt
}

// WeekendForCountry returns the weekend day pair for an ISO country code,
// defaulting to Saturday-Sunday for unknown or empty codes.
func WeekendForCountry(code string) models.Weekend {
	if code == "" {
		return defaultWeekend
	}
	if w, ok := weekendByCountry[toUpperASCII(code)]; ok {
		return w
	}
	return defaultWeekend
}

func toUpperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// mondayIndex converts Go's Sunday=0 weekday to the Monday=0 convention.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// NextWeekend returns the upcoming weekend days on or after base: the next
// occurrence of the weekend's start day (zero days forward when base already
// falls on it), then the end day. A single-day weekend yields one date.
func NextWeekend(base time.Time, weekend models.Weekend) []time.Time {
	delta := (weekend.Start - mondayIndex(base.Weekday()) + 7) % 7
	start := base.AddDate(0, 0, delta)
	if weekend.End == weekend.Start {
		return []time.Time{start}
	}
	end := start.AddDate(0, 0, weekend.End-weekend.Start)
	return []time.Time{start, end}
}

// ResolveRelativeDates maps a relative target type onto concrete ISO dates
// using the given base date and localized weekend. Unknown target types and
// unparseable base dates resolve to the base date itself.
func ResolveRelativeDates(targetType, baseISO string, weekend models.Weekend) []string {
	base, err := time.Parse(isoDate, baseISO)
	if err != nil {
		return []string{baseISO}
	}
	switch targetType {
	case models.TargetToday:
		return []string{base.Format(isoDate)}
	case models.TargetTomorrow:
		return []string{base.AddDate(0, 0, 1).Format(isoDate)}
	case models.TargetWeekend:
		days := NextWeekend(base, weekend)
		out := make([]string, len(days))
		for i, d := range days {
			out[i] = d.Format(isoDate)
		}
		return out
	}
	return []string{base.Format(isoDate)}
}

// expandDateRange lists every date from start to end inclusive. An end before
// the start yields nil.
func expandDateRange(startISO, endISO string) []string {
	start, err := time.Parse(isoDate, startISO)
	if err != nil {
		return nil
	}
	end, err := time.Parse(isoDate, endISO)
	if err != nil {
		return nil
	}
	var out []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(isoDate))
	}
	return out
}
