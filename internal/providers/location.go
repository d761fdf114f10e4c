// ABOUTME: IP and coordinate geolocation for "near me" style questions
// ABOUTME: Includes haversine distance and a rough drive-time estimate
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/harper/wayfarer/internal/models"
)

const (
	ipLookupBaseURL = "https://ipapi.co/json/"
	reverseGeoURL   = "https://api.bigdatacloud.net/data/reverse-geocode-client"
)

// LocationClient resolves the caller's approximate location.
type LocationClient struct {
	httpClient *http.Client
	ipURL      string
	reverseURL string
}

// NewLocationClient creates a geolocation client with the given timeout.
func NewLocationClient(timeout time.Duration) *LocationClient {
	return &LocationClient{
		httpClient: &http.Client{Timeout: timeout},
		ipURL:      ipLookupBaseURL,
		reverseURL: reverseGeoURL,
	}
}

// NewLocationClientWithURLs creates a client against custom endpoints, for tests.
func NewLocationClientWithURLs(timeout time.Duration, ipURL, reverseURL string) *LocationClient {
	c := NewLocationClient(timeout)
	c.ipURL = ipURL
	c.reverseURL = reverseURL
	return c
}

// FromIP resolves the machine's public IP to an approximate location.
func (c *LocationClient) FromIP(ctx context.Context) (*models.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ipURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building IP lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("looking up IP location: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("looking up IP location: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		City        string  `json:"city"`
		Region      string  `json:"region"`
		CountryName string  `json:"country_name"`
		CountryCode string  `json:"country_code"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding IP lookup response: %w", err)
	}

	return &models.Location{
		LocationString: joinLocation(body.City, body.Region, body.CountryName),
		City:           body.City,
		Region:         body.Region,
		Country:        body.CountryName,
		CountryCode:    body.CountryCode,
		Latitude:       body.Latitude,
		Longitude:      body.Longitude,
	}, nil
}

// ReverseGeocode maps coordinates to a human-readable location.
func (c *LocationClient) ReverseGeocode(ctx context.Context, lat, lon float64) (*models.Location, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%g", lat))
	q.Set("longitude", fmt.Sprintf("%g", lon))
	q.Set("localityLanguage", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.reverseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building reverse-geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reverse geocoding: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reverse geocoding: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		City                 string  `json:"city"`
		Locality             string  `json:"locality"`
		PrincipalSubdivision string  `json:"principalSubdivision"`
		CountryName          string  `json:"countryName"`
		CountryCode          string  `json:"countryCode"`
		Latitude             float64 `json:"latitude"`
		Longitude            float64 `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding reverse-geocode response: %w", err)
	}

	city := body.City
	if city == "" {
		city = body.Locality
	}

	loc := &models.Location{
		LocationString: joinLocation(city, body.PrincipalSubdivision, body.CountryName),
		City:           city,
		Region:         body.PrincipalSubdivision,
		Country:        body.CountryName,
		CountryCode:    body.CountryCode,
		Latitude:       lat,
		Longitude:      lon,
	}
	if body.Latitude != 0 || body.Longitude != 0 {
		loc.Latitude = body.Latitude
		loc.Longitude = body.Longitude
	}
	return loc, nil
}

func joinLocation(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two coordinates.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// DriveTimeEstimate gives a rough drive duration for a distance, assuming
// ~80 km/h average. Good enough for "is that a day trip?" answers.
func DriveTimeEstimate(distanceKm float64) string {
	hours := distanceKm / 80
	if hours < 1 {
		return fmt.Sprintf("~%d min drive", int(math.Round(hours*60)))
	}
	return fmt.Sprintf("~%.1f h drive", hours)
}
