// ABOUTME: Facts is the per-session cache of externally fetched data
// ABOUTME: Weather entries are keyed by place name and merge additively
package models

// Place is a geocoded place.
type Place struct {
	Name        string  `json:"name"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Daily holds parallel per-date forecast arrays as the provider returns them.
// PrecipProbabilityMax entries may be nil when the provider has no value.
type Daily struct {
	Time                 []string   `json:"time"`
	TemperatureMax       []float64  `json:"temperature_2m_max"`
	TemperatureMin       []float64  `json:"temperature_2m_min"`
	PrecipProbabilityMax []*float64 `json:"precipitation_probability_max,omitempty"`
}

// Forecast is a multi-day daily forecast for one location.
type Forecast struct {
	Timezone string `json:"timezone,omitempty"`
	Daily    Daily  `json:"daily"`
}

// WeatherEntry pairs a geocoded place with its fetched forecast.
type WeatherEntry struct {
	Place    Place    `json:"place"`
	Forecast Forecast `json:"forecast"`
}

// CountryFacts is the reference record for one country.
type CountryFacts struct {
	Name       string   `json:"name"`
	Capital    string   `json:"capital"`
	Currencies []string `json:"currencies,omitempty"`
	Languages  []string `json:"languages,omitempty"`
	Timezones  []string `json:"timezones,omitempty"`
	Dial       string   `json:"dial,omitempty"`
	Code       string   `json:"code,omitempty"`
}

// WebResult is one retained web search hit.
type WebResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Weekend is a pair of weekend day indices, Monday=0 through Sunday=6.
type Weekend struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Facts is the additively maintained data cache for a session.
type Facts struct {
	Now            string                  `json:"now,omitempty"`
	Today          string                  `json:"today,omitempty"`
	WeatherByPlace map[string]WeatherEntry `json:"weather_by_place,omitempty"`
	WeatherCurrent string                  `json:"weather_current,omitempty"`
	Country        *CountryFacts           `json:"country,omitempty"`
	Web            []WebResult             `json:"web,omitempty"`
	TargetDates    []string                `json:"target_dates,omitempty"`
	WeekendDays    *Weekend                `json:"weekend_days,omitempty"`
}

// MergeFacts lays fresh over prev: fields the new fetch produced win, fields
// it did not touch survive from the previous cache, and WeatherByPlace is the
// union of both maps so earlier places are never dropped.
func MergeFacts(prev, fresh Facts) Facts {
	out := prev
	if fresh.Now != "" {
		out.Now = fresh.Now
	}
	if fresh.Today != "" {
		out.Today = fresh.Today
	}
	if len(fresh.WeatherByPlace) > 0 {
		merged := make(map[string]WeatherEntry, len(prev.WeatherByPlace)+len(fresh.WeatherByPlace))
		for name, entry := range prev.WeatherByPlace {
			merged[name] = entry
		}
		for name, entry := range fresh.WeatherByPlace {
			merged[name] = entry
		}
		out.WeatherByPlace = merged
	}
	if fresh.WeatherCurrent != "" {
		out.WeatherCurrent = fresh.WeatherCurrent
	}
	if fresh.Country != nil {
		out.Country = fresh.Country
	}
	if fresh.Web != nil {
		out.Web = fresh.Web
	}
	if fresh.TargetDates != nil {
		out.TargetDates = fresh.TargetDates
	}
	if fresh.WeekendDays != nil {
		out.WeekendDays = fresh.WeekendDays
	}
	return out
}
