// ABOUTME: Tests for the Open-Meteo geocoding and forecast client
// ABOUTME: Uses httptest servers with canned provider payloads
package providers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGeocode_Match(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("name"); got != "Paris" {
			t.Errorf("name param = %q, want Paris", got)
		}
		if got := r.URL.Query().Get("count"); got != "1" {
			t.Errorf("count param = %q, want 1", got)
		}
		fmt.Fprint(w, `{"results":[{"name":"Paris","latitude":48.85,"longitude":2.35,"country":"France","country_code":"FR"}]}`)
	}))
	defer srv.Close()

	c := NewWeatherClientWithURLs(5*time.Second, srv.URL, srv.URL)

	place, err := c.Geocode(t.Context(), "Paris")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if place == nil {
		t.Fatal("Geocode() = nil, want place")
	}
	if place.Name != "Paris" {
		t.Errorf("Name = %q, want Paris", place.Name)
	}
	if place.CountryCode != "FR" {
		t.Errorf("CountryCode = %q, want FR", place.CountryCode)
	}
	if place.Lat != 48.85 || place.Lon != 2.35 {
		t.Errorf("coords = (%v, %v), want (48.85, 2.35)", place.Lat, place.Lon)
	}
}

func TestGeocode_NoMatchReturnsNilNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"generationtime_ms":0.5}`)
	}))
	defer srv.Close()

	c := NewWeatherClientWithURLs(5*time.Second, srv.URL, srv.URL)

	place, err := c.Geocode(t.Context(), "Xyzzyville")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if place != nil {
		t.Errorf("Geocode() = %+v, want nil for no match", place)
	}
}

func TestGeocode_ServerErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewWeatherClientWithURLs(5*time.Second, srv.URL, srv.URL)

	if _, err := c.Geocode(t.Context(), "Paris"); err == nil {
		t.Error("Geocode() error = nil, want error on 500")
	}
}

func TestForecastDaily_ParsesAndSendsUnits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("temperature_unit"); got != "fahrenheit" {
			t.Errorf("temperature_unit = %q, want fahrenheit", got)
		}
		if got := r.URL.Query().Get("timezone"); got != "auto" {
			t.Errorf("timezone = %q, want auto", got)
		}
		fmt.Fprint(w, `{
			"timezone":"Europe/Paris",
			"daily":{
				"time":["2024-06-12","2024-06-13"],
				"temperature_2m_max":[24.1,22.8],
				"temperature_2m_min":[14.0,13.2],
				"precipitation_probability_max":[10,null]
			}
		}`)
	}))
	defer srv.Close()

	c := NewWeatherClientWithURLs(5*time.Second, srv.URL, srv.URL)

	fc, err := c.ForecastDaily(t.Context(), 48.85, 2.35, "imperial")
	if err != nil {
		t.Fatalf("ForecastDaily() error = %v", err)
	}
	if fc.Timezone != "Europe/Paris" {
		t.Errorf("Timezone = %q, want Europe/Paris", fc.Timezone)
	}
	if len(fc.Daily.Time) != 2 {
		t.Fatalf("len(Daily.Time) = %d, want 2", len(fc.Daily.Time))
	}
	if fc.Daily.TemperatureMax[0] != 24.1 {
		t.Errorf("TemperatureMax[0] = %v, want 24.1", fc.Daily.TemperatureMax[0])
	}
	if fc.Daily.PrecipProbabilityMax[0] == nil || *fc.Daily.PrecipProbabilityMax[0] != 10 {
		t.Errorf("PrecipProbabilityMax[0] = %v, want 10", fc.Daily.PrecipProbabilityMax[0])
	}
	if fc.Daily.PrecipProbabilityMax[1] != nil {
		t.Errorf("PrecipProbabilityMax[1] = %v, want nil", *fc.Daily.PrecipProbabilityMax[1])
	}
}
