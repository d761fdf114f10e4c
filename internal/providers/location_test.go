// ABOUTME: Tests for geolocation lookups and distance helpers
// ABOUTME: Verifies IP lookup mapping, reverse geocoding, and haversine math
package providers

import (
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFromIP_Mapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"city":"Tel Aviv","region":"Tel Aviv","country_name":"Israel",
			"country_code":"IL","latitude":32.08,"longitude":34.78
		}`)
	}))
	defer srv.Close()

	c := NewLocationClientWithURLs(5*time.Second, srv.URL, srv.URL)

	loc, err := c.FromIP(t.Context())
	if err != nil {
		t.Fatalf("FromIP() error = %v", err)
	}
	if loc.LocationString != "Tel Aviv, Tel Aviv, Israel" {
		t.Errorf("LocationString = %q, want Tel Aviv, Tel Aviv, Israel", loc.LocationString)
	}
	if loc.CountryCode != "IL" {
		t.Errorf("CountryCode = %q, want IL", loc.CountryCode)
	}
	if loc.Latitude != 32.08 {
		t.Errorf("Latitude = %v, want 32.08", loc.Latitude)
	}
}

func TestReverseGeocode_FallsBackToLocality(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"locality":"Petah Tikva","principalSubdivision":"Center District",
			"countryName":"Israel","countryCode":"IL",
			"latitude":32.09,"longitude":34.89
		}`)
	}))
	defer srv.Close()

	c := NewLocationClientWithURLs(5*time.Second, srv.URL, srv.URL)

	loc, err := c.ReverseGeocode(t.Context(), 32.09, 34.89)
	if err != nil {
		t.Fatalf("ReverseGeocode() error = %v", err)
	}
	if loc.City != "Petah Tikva" {
		t.Errorf("City = %q, want locality fallback Petah Tikva", loc.City)
	}
	if !strings.HasPrefix(loc.LocationString, "Petah Tikva") {
		t.Errorf("LocationString = %q, want prefix Petah Tikva", loc.LocationString)
	}
}

func TestDistanceKm_KnownPair(t *testing.T) {
	// Paris to Lyon is roughly 392 km great-circle.
	got := DistanceKm(48.8566, 2.3522, 45.7640, 4.8357)
	if math.Abs(got-392) > 10 {
		t.Errorf("DistanceKm(Paris, Lyon) = %v, want ~392", got)
	}
}

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	if got := DistanceKm(10, 20, 10, 20); got != 0 {
		t.Errorf("DistanceKm(same point) = %v, want 0", got)
	}
}

func TestDriveTimeEstimate(t *testing.T) {
	if got := DriveTimeEstimate(40); got != "~30 min drive" {
		t.Errorf("DriveTimeEstimate(40) = %q, want ~30 min drive", got)
	}
	if got := DriveTimeEstimate(400); got != "~5.0 h drive" {
		t.Errorf("DriveTimeEstimate(400) = %q, want ~5.0 h drive", got)
	}
}

func TestClock_FixedNow(t *testing.T) {
	at := time.Date(2024, 6, 12, 22, 30, 0, 0, time.UTC)
	c := NewFixedClock(at, "UTC")

	if got := c.Today("UTC"); got != "2024-06-12" {
		t.Errorf("Today(UTC) = %q, want 2024-06-12", got)
	}
	// 22:30 UTC is already the next day in Tokyo.
	if got := c.Today("Asia/Tokyo"); got != "2024-06-13" {
		t.Errorf("Today(Asia/Tokyo) = %q, want 2024-06-13", got)
	}
	// Unknown zone falls back to the configured default.
	if got := c.Today("Not/AZone"); got != "2024-06-12" {
		t.Errorf("Today(bad zone) = %q, want fallback 2024-06-12", got)
	}
}
