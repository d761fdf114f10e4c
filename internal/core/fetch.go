// ABOUTME: The fact-fetch stage: calls providers per the plan, merges the cache
// ABOUTME: Weather and web failures are fatal; country and location degrade
package core

import (
	"context"
	"fmt"
	"log"

	"github.com/harper/wayfarer/internal/models"
)

// fetchData executes the turn's plan against the external providers and lays
// the fresh facts over the session cache. Previously fetched weather places
// survive the merge. The geocoded country code localizes both "today" and the
// weekend definition. The place pushed into destination memory is the user's
// own wording, not the geocoded canonical name, so a numbered selection like
// "2" keeps resolving next turn.
func (p *Pipeline) fetchData(ctx context.Context, s *models.TurnState) error {
	plan := s.Data.Plan
	if plan == nil {
		plan = &models.Plan{}
	}

	fresh := models.Facts{
		Now:            p.clock.NowISO(""),
		Today:          p.clock.Today(""),
		WeatherByPlace: map[string]models.WeatherEntry{},
	}

	placeToUse := plan.Place
	if placeToUse == "" {
		placeToUse = s.Data.ResolvedPlace
	}

	if plan.Location && s.Profile.LocationData == nil {
		loc, err := p.locator.FromIP(ctx)
		if err != nil {
			log.Printf("[Fetch] location lookup failed: %v", err)
		} else if loc != nil {
			s.Profile.CurrentLocation = loc.LocationString
			s.Profile.LocationData = loc
		}
	}

	countryCode := ""
	remembered := false

	if plan.Weather && placeToUse != "" {
		g, err := p.weather.Geocode(ctx, placeToUse)
		if err != nil {
			return fmt.Errorf("geocoding %q: %w", placeToUse, err)
		}
		if g != nil {
			units := s.Data.Units
			if units == "" {
				units = "metric"
			}
			fc, err := p.weather.ForecastDaily(ctx, g.Lat, g.Lon, units)
			if err != nil {
				return fmt.Errorf("fetching forecast for %q: %w", g.Name, err)
			}
			fresh.WeatherByPlace[g.Name] = models.WeatherEntry{Place: *g, Forecast: *fc}
			fresh.WeatherCurrent = g.Name
			countryCode = g.CountryCode
			if countryCode == "" {
				countryCode = g.Country
			}
			if fc.Timezone != "" {
				fresh.Today = p.clock.Today(fc.Timezone)
			}
			RememberPlace(&s.Profile, placeToUse)
			remembered = true
		} else {
			log.Printf("[Fetch] no geocoding match for %q", placeToUse)
		}
	}

	if plan.Country && placeToUse != "" {
		countryName, _ := ExtractCountryAndCity(s.UserMsg)
		lookup := countryName
		if lookup == "" {
			lookup = placeToUse
		}
		cf, err := p.countries.Facts(ctx, lookup)
		if err != nil {
			log.Printf("[Fetch] country facts failed for %q: %v", lookup, err)
		} else if cf != nil {
			fresh.Country = cf
			if countryCode == "" {
				countryCode = cf.Code
			}
			if !remembered {
				RememberPlace(&s.Profile, cf.Name)
			}
		}
	}

	if plan.Web {
		results, err := p.search.Search(ctx, s.UserMsg, 4)
		if err != nil {
			return fmt.Errorf("searching web: %w", err)
		}
		if len(results) > 3 {
			results = results[:3]
		}
		fresh.Web = results
	}

	fresh.TargetDates = p.targetDates(s.Data.TimePlan, fresh.Today, countryCode, &fresh)

	s.Data.Facts = models.MergeFacts(s.Data.Facts, fresh)
	return nil
}

// targetDates derives the ISO dates the answer should cover. Explicit dates
// and inclusive ranges are used verbatim; relative targets resolve against
// the localized today and the country's weekend; everything else is today.
func (p *Pipeline) targetDates(tp *models.TimePlan, today, countryCode string, fresh *models.Facts) []string {
	var dates []string
	if tp != nil {
		switch tp.TargetType {
		case models.TargetDate, models.TargetRange:
			if len(tp.ISODates) > 0 {
				dates = tp.ISODates
			} else if tp.ISOStart != "" && tp.ISOEnd != "" {
				dates = expandDateRange(tp.ISOStart, tp.ISOEnd)
			}
		case models.TargetToday, models.TargetTomorrow, models.TargetWeekend:
			weekend := WeekendForCountry(countryCode)
			dates = ResolveRelativeDates(tp.TargetType, today, weekend)
			fresh.WeekendDays = &weekend
		}
	}
	if len(dates) == 0 {
		dates = []string{today}
	}
	return dates
}
