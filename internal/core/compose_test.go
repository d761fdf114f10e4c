// ABOUTME: Tests for the facts brief, critique gating, and revision
// ABOUTME: The brief is the only grounding the compose prompt receives
package core

import (
	"strings"
	"testing"

	"github.com/harper/wayfarer/internal/models"
)

func parisState(targetDates []string) *models.TurnState {
	return &models.TurnState{
		UserMsg: "weather in Paris",
		Intent:  models.IntentWeather,
		Data: models.Workspace{
			Units:         "metric",
			ResolvedPlace: "Paris",
			Facts: models.Facts{
				Now:   "2024-06-12T12:00:00+02:00",
				Today: "2024-06-12",
				WeatherByPlace: map[string]models.WeatherEntry{
					"Paris": {
						Place:    models.Place{Name: "Paris", Country: "France", CountryCode: "FR", Lat: 48.86, Lon: 2.35},
						Forecast: *parisForecast(),
					},
				},
				WeatherCurrent: "Paris",
				TargetDates:    targetDates,
			},
		},
	}
}

func TestFactsBrief_DatedWeatherLines(t *testing.T) {
	s := parisState([]string{"2024-06-13"})

	brief := factsBrief(s)
	if !strings.Contains(brief, "Weather for Paris: 2024-06-13: 22.8°C/13.2°C") {
		t.Errorf("brief = %q, want a dated temperature line for 2024-06-13", brief)
	}
	if strings.Contains(brief, "precip") {
		t.Errorf("brief = %q, want no precip for a nil probability", brief)
	}
}

func TestFactsBrief_MultipleDatesJoined(t *testing.T) {
	s := parisState([]string{"2024-06-15", "2024-06-16"})

	brief := factsBrief(s)
	if !strings.Contains(brief, "2024-06-15: 26.3°C/16°C, precip 10%; 2024-06-16: 21.9°C/12.8°C") {
		t.Errorf("brief = %q, want both weekend days joined", brief)
	}
}

func TestFactsBrief_StalenessNoteForOtherPlace(t *testing.T) {
	s := parisState([]string{"2024-06-12"})
	s.Data.ResolvedPlace = "Lyon"

	brief := factsBrief(s)
	if !strings.Contains(brief, "latest weather fetched is for Paris") {
		t.Errorf("brief = %q, want a staleness note instead of Paris numbers", brief)
	}
	if strings.Contains(brief, "°C") {
		t.Errorf("brief = %q, want no temperatures for the wrong place", brief)
	}
}

func TestFactsBrief_WebSuppressedForWeatherIntent(t *testing.T) {
	s := parisState([]string{"2024-06-12"})
	s.Data.Facts.Web = []models.WebResult{{Title: "Metro strike", URL: "https://x"}}

	if brief := factsBrief(s); strings.Contains(brief, "Web sources") {
		t.Errorf("brief = %q, want web sources suppressed for weather intent", brief)
	}

	s.Intent = models.IntentLogistics
	if brief := factsBrief(s); !strings.Contains(brief, "Web sources: [1] Metro strike") {
		t.Errorf("brief = %q, want web sources for non-weather intent", factsBrief(s))
	}
}

func TestFactsBrief_CountryAndLocationLines(t *testing.T) {
	s := parisState([]string{"2024-06-12"})
	s.Data.Facts.Country = &models.CountryFacts{Name: "France", Capital: "Paris", Currencies: []string{"EUR"}}
	s.Profile.LocationData = &models.Location{LocationString: "Tel Aviv, Israel", Latitude: 32.08, Longitude: 34.78}

	brief := factsBrief(s)
	if !strings.Contains(brief, "Country: France, capital Paris, currency EUR.") {
		t.Errorf("brief = %q, want country line", brief)
	}
	if !strings.Contains(brief, "User location: Tel Aviv, Israel (lat: 32.08, lon: 34.78).") {
		t.Errorf("brief = %q, want user location line", brief)
	}
	if !strings.Contains(brief, "Distance to Paris:") || !strings.Contains(brief, "h drive") {
		t.Errorf("brief = %q, want a distance estimate to the discussed place", brief)
	}
}

func TestComposeAnswer_CritiqueGate(t *testing.T) {
	tests := []struct {
		name string
		out  models.ComposeOut
		want bool
	}{
		{"short and confident", models.ComposeOut{Answer: "Mild and dry.", Confidence: 0.9}, false},
		{"long despite confidence", models.ComposeOut{Answer: strings.Repeat("a", 850), Confidence: 0.9}, true},
		{"low confidence", models.ComposeOut{Answer: "Maybe rain?", Confidence: 0.3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &fakeOracle{composeOut: tt.out}
			p := newTestPipeline(o, &fakeWeather{}, &fakeCountries{}, &fakeSearch{}, &fakeLocator{})
			s := parisState([]string{"2024-06-12"})

			p.composeAnswer(t.Context(), s)
			if s.CritiqueNeeded != tt.want {
				t.Errorf("CritiqueNeeded = %v, want %v", s.CritiqueNeeded, tt.want)
			}
			if s.Draft != tt.out.Answer {
				t.Errorf("Draft = %q, want the oracle answer", s.Draft)
			}
		})
	}
}

func TestCritique_FastPathForGroundedWeatherDraft(t *testing.T) {
	o := &fakeOracle{}
	p := newTestPipeline(o, &fakeWeather{}, &fakeCountries{}, &fakeSearch{}, &fakeLocator{})
	s := parisState(nil)
	s.Draft = "Weather for Paris tomorrow: 22.8°C/13.2°C, mostly dry."

	p.critique(t.Context(), s)
	if s.CritiqueNotes != "OK" {
		t.Errorf("CritiqueNotes = %q, want OK without an oracle call", s.CritiqueNotes)
	}
	if len(o.completeCalls) != 0 {
		t.Errorf("oracle called %d times, want 0 on the fast path", len(o.completeCalls))
	}
}

func TestRevise_RewritesOnIssues(t *testing.T) {
	o := &fakeOracle{replies: map[string]string{sysRevise: "A cleaner answer."}}
	p := newTestPipeline(o, &fakeWeather{}, &fakeCountries{}, &fakeSearch{}, &fakeLocator{})
	s := &models.TurnState{Draft: "messy draft", CritiqueNotes: "ISSUES: too vague"}

	p.revise(t.Context(), s)
	if s.Final != "A cleaner answer." {
		t.Errorf("Final = %q, want the rewritten answer", s.Final)
	}
}

func TestRevise_PromotesDraftOnOK(t *testing.T) {
	o := &fakeOracle{}
	p := newTestPipeline(o, &fakeWeather{}, &fakeCountries{}, &fakeSearch{}, &fakeLocator{})
	s := &models.TurnState{Draft: "fine as is", CritiqueNotes: "OK"}

	p.revise(t.Context(), s)
	if s.Final != "fine as is" {
		t.Errorf("Final = %q, want the draft verbatim", s.Final)
	}
	if len(o.completeCalls) != 0 {
		t.Errorf("oracle called %d times, want 0 when critique passed", len(o.completeCalls))
	}
}
