// ABOUTME: Tests for destination memory and place-reference resolution
// ABOUTME: Covers MRU dedup, the priority ladder, and country/city extraction
package core

import (
	"testing"

	"github.com/harper/wayfarer/internal/models"
)

func TestRememberPlace_DedupesCaseInsensitive(t *testing.T) {
	var p models.UserProfile
	RememberPlace(&p, "paris")
	RememberPlace(&p, "Lyon")
	RememberPlace(&p, "Paris")

	if len(p.Destinations) != 2 {
		t.Fatalf("len(Destinations) = %d, want 2", len(p.Destinations))
	}
	if p.Destinations[0] != "Lyon" || p.Destinations[1] != "Paris" {
		t.Errorf("Destinations = %v, want [Lyon Paris]", p.Destinations)
	}
	if p.ActiveDestination != "Paris" {
		t.Errorf("ActiveDestination = %q, want Paris", p.ActiveDestination)
	}
	if p.Destination != "Paris" {
		t.Errorf("Destination = %q, want Paris", p.Destination)
	}
}

func TestRememberPlace_EmptyNameIsNoop(t *testing.T) {
	p := models.UserProfile{Destinations: []string{"Rome"}, ActiveDestination: "Rome"}
	RememberPlace(&p, "")
	if len(p.Destinations) != 1 || p.ActiveDestination != "Rome" {
		t.Errorf("profile changed on empty push: %+v", p)
	}
}

func TestResolvePlace_PriorityLadder(t *testing.T) {
	tests := []struct {
		name  string
		state models.TurnState
		want  string
	}{
		{
			name: "resolved place wins over candidates",
			state: models.TurnState{
				UserMsg: "2",
				Data:    models.Workspace{ResolvedPlace: "Lyon", PlaceCandidates: []string{"Paris", "Lyon"}},
			},
			want: "Lyon",
		},
		{
			name: "numeric candidate selection",
			state: models.TurnState{
				UserMsg: "2",
				Data:    models.Workspace{PlaceCandidates: []string{"Paris", "Lyon"}},
			},
			want: "Lyon",
		},
		{
			name: "exact candidate name, any casing",
			state: models.TurnState{
				UserMsg: "lyon",
				Data:    models.Workspace{PlaceCandidates: []string{"Paris", "Lyon"}},
			},
			want: "Lyon",
		},
		{
			name: "out-of-range number falls through to active",
			state: models.TurnState{
				UserMsg: "9",
				Data:    models.Workspace{PlaceCandidates: []string{"Paris", "Lyon"}},
				Profile: models.UserProfile{ActiveDestination: "Paris"},
			},
			want: "Paris",
		},
		{
			name: "pronoun maps to active destination",
			state: models.TurnState{
				UserMsg: "what about there",
				Profile: models.UserProfile{ActiveDestination: "Tokyo"},
			},
			want: "Tokyo",
		},
		{
			name: "capitalized token in message",
			state: models.TurnState{
				UserMsg: "weather in Paris,",
			},
			want: "Paris",
		},
		{
			name: "previous ordinal against history",
			state: models.TurnState{
				UserMsg: "and the previous one?",
				Profile: models.UserProfile{Destinations: []string{"Rome", "Lisbon"}},
			},
			want: "Rome",
		},
		{
			name: "previous with single entry returns it",
			state: models.TurnState{
				UserMsg: "the previous one",
				Profile: models.UserProfile{Destinations: []string{"Rome"}},
			},
			want: "Rome",
		},
		{
			name: "first ordinal",
			state: models.TurnState{
				UserMsg: "back to the first one",
				Profile: models.UserProfile{Destinations: []string{"Rome", "Lisbon", "Oslo"}},
			},
			want: "Rome",
		},
		{
			name: "last ordinal",
			state: models.TurnState{
				UserMsg: "the last place again",
				Profile: models.UserProfile{Destinations: []string{"Rome", "Lisbon"}},
			},
			want: "Lisbon",
		},
		{
			name: "falls back to active destination",
			state: models.TurnState{
				UserMsg: "what should i pack",
				Profile: models.UserProfile{ActiveDestination: "Lisbon"},
			},
			want: "Lisbon",
		},
		{
			name: "legacy destination field",
			state: models.TurnState{
				UserMsg: "what should i pack",
				Profile: models.UserProfile{Destination: "Oslo"},
			},
			want: "Oslo",
		},
		{
			name:  "nothing resolvable",
			state: models.TurnState{UserMsg: "weather there"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePlace(&tt.state); got != tt.want {
				t.Errorf("ResolvePlace() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractCountryAndCity(t *testing.T) {
	tests := []struct {
		msg         string
		wantCountry string
		wantCity    string
	}{
		{"I'm traveling to France in Lyon next month", "France", "Lyon"},
		{"staying in Lyon, France for a week", "France", "Lyon"},
		{"visiting Japan soon", "Japan", ""},
		{"flying to Lisbon tomorrow", "", "Lisbon"},
		{"what currency do they use", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			country, city := ExtractCountryAndCity(tt.msg)
			if country != tt.wantCountry || city != tt.wantCity {
				t.Errorf("ExtractCountryAndCity() = (%q, %q), want (%q, %q)",
					country, city, tt.wantCountry, tt.wantCity)
			}
		})
	}
}
