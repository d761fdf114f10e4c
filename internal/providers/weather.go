// ABOUTME: Open-Meteo geocoding and daily-forecast client
// ABOUTME: Geocode returns nil without error when a place is simply unknown
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/harper/wayfarer/internal/models"
)

const (
	geocodeBaseURL  = "https://geocoding-api.open-meteo.com/v1/search"
	forecastBaseURL = "https://api.open-meteo.com/v1/forecast"
)

// WeatherClient talks to the Open-Meteo geocoding and forecast APIs.
type WeatherClient struct {
	httpClient  *http.Client
	geocodeURL  string
	forecastURL string
}

// NewWeatherClient creates a weather client with the given request timeout.
func NewWeatherClient(timeout time.Duration) *WeatherClient {
	return &WeatherClient{
		httpClient:  &http.Client{Timeout: timeout},
		geocodeURL:  geocodeBaseURL,
		forecastURL: forecastBaseURL,
	}
}

// NewWeatherClientWithURLs creates a client against custom endpoints, for tests.
func NewWeatherClientWithURLs(timeout time.Duration, geocodeURL, forecastURL string) *WeatherClient {
	c := NewWeatherClient(timeout)
	c.geocodeURL = geocodeURL
	c.forecastURL = forecastURL
	return c
}

// Geocode resolves a place name to coordinates and country metadata.
// Returns (nil, nil) when the service has no match for the name.
func (c *WeatherClient) Geocode(ctx context.Context, place string) (*models.Place, error) {
	q := url.Values{}
	q.Set("name", place)
	q.Set("count", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.geocodeURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", place, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding %q: unexpected status %d", place, resp.StatusCode)
	}

	var body struct {
		Results []struct {
			Name        string  `json:"name"`
			Latitude    float64 `json:"latitude"`
			Longitude   float64 `json:"longitude"`
			Country     string  `json:"country"`
			CountryCode string  `json:"country_code"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding geocode response: %w", err)
	}

	if len(body.Results) == 0 {
		return nil, nil
	}

	top := body.Results[0]
	return &models.Place{
		Name:        top.Name,
		Country:     top.Country,
		CountryCode: top.CountryCode,
		Lat:         top.Latitude,
		Lon:         top.Longitude,
	}, nil
}

// ForecastDaily fetches a multi-day forecast for the coordinates. Units is
// "metric" or "imperial"; the timezone is resolved by the provider.
func (c *WeatherClient) ForecastDaily(ctx context.Context, lat, lon float64, units string) (*models.Forecast, error) {
	tempUnit := "celsius"
	if units == "imperial" {
		tempUnit = "fahrenheit"
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%g", lat))
	q.Set("longitude", fmt.Sprintf("%g", lon))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max")
	q.Set("timezone", "auto")
	q.Set("temperature_unit", tempUnit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.forecastURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching forecast: unexpected status %d", resp.StatusCode)
	}

	var fc models.Forecast
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decoding forecast response: %w", err)
	}

	return &fc, nil
}
