// ABOUTME: Destination memory: the MRU place list and place-reference resolution
// ABOUTME: Resolution walks a fixed priority ladder; first matching rule wins
package core

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/harper/wayfarer/internal/models"
)

// RememberPlace pushes a place onto the profile's MRU destination list. Any
// case-insensitive duplicate is removed first so each name appears once, with
// the most recent push last. The active destination and its legacy mirror are
// both set to the pushed name's literal casing. Empty names are a no-op.
func RememberPlace(profile *models.UserProfile, name string) {
	if name == "" {
		return
	}
	kept := profile.Destinations[:0:0]
	for _, d := range profile.Destinations {
		if !strings.EqualFold(d, name) {
			kept = append(kept, d)
		}
	}
	profile.Destinations = append(kept, name)
	profile.ActiveDestination = name
	profile.Destination = name
}

var pronounCueRe = regexp.MustCompile(`\b(there|here|this place|that place)\b`)

// ResolvePlace determines which place the current message refers to without
// consulting the oracle. Priority:
//  1. a place the resolver stage already recorded this turn
//  2. a numeric (1-based) or case-insensitive exact match against pending
//     disambiguation candidates
//  3. pronoun cues mapped to the active destination
//  4. the first capitalized token in the message, trailing punctuation stripped
//  5. ordinal cues against the destination history
//  6. the active destination, or its legacy mirror
func ResolvePlace(s *models.TurnState) string {
	if s.Data.ResolvedPlace != "" {
		return s.Data.ResolvedPlace
	}

	msg := strings.TrimSpace(s.UserMsg)
	lower := strings.ToLower(msg)

	if len(s.Data.PlaceCandidates) > 0 {
		if n, err := strconv.Atoi(msg); err == nil && n >= 1 && n <= len(s.Data.PlaceCandidates) {
			return s.Data.PlaceCandidates[n-1]
		}
		for _, c := range s.Data.PlaceCandidates {
			if strings.EqualFold(c, msg) {
				return c
			}
		}
	}

	if active := s.Profile.CurrentDestination(); active != "" && pronounCueRe.MatchString(lower) {
		return active
	}

	if tok := firstCapitalizedToken(msg); tok != "" {
		return tok
	}

	if place := resolveOrdinal(lower, s.Profile.Destinations); place != "" {
		return place
	}

	return s.Profile.CurrentDestination()
}

func firstCapitalizedToken(msg string) string {
	for _, tok := range strings.Fields(msg) {
		r := []rune(tok)
		if unicode.IsUpper(r[0]) {
			return strings.TrimRight(tok, ",.!?")
		}
	}
	return ""
}

func resolveOrdinal(lower string, dests []string) string {
	if len(dests) == 0 {
		return ""
	}
	switch {
	case strings.Contains(lower, "previous"),
		strings.Contains(lower, "last one"),
		strings.Contains(lower, "the one before"):
		if len(dests) >= 2 {
			return dests[len(dests)-2]
		}
		return dests[len(dests)-1]
	case strings.Contains(lower, "first"), strings.Contains(lower, "original"):
		return dests[0]
	case strings.Contains(lower, "last"):
		return dests[len(dests)-1]
	}
	return ""
}

// countryGazetteer separates country names from city names in travel phrases.
// Deliberately small; anything not listed is treated as a city.
var countryGazetteer = map[string]struct{}{
	"france": {}, "japan": {}, "israel": {}, "italy": {}, "spain": {},
	"germany": {}, "portugal": {}, "greece": {}, "thailand": {}, "vietnam": {},
	"jordan": {}, "egypt": {}, "morocco": {}, "turkey": {}, "mexico": {},
	"brazil": {}, "argentina": {}, "canada": {}, "australia": {},
	"netherlands": {}, "switzerland": {}, "austria": {}, "ireland": {},
	"norway": {}, "iceland": {}, "united states": {}, "united kingdom": {},
}

func isCountry(name string) bool {
	_, ok := countryGazetteer[strings.ToLower(name)]
	return ok
}

const properName = `[A-Z][a-zA-Z'-]*(?:\s+[A-Z][a-zA-Z'-]*)*`

var (
	pairPhraseRe  = regexp.MustCompile(`\b(?:[Tt]o|[Ii]n|[Vv]isiting)\s+(` + properName + `)\s+(?:to|in)\s+(` + properName + `)`)
	commaPhraseRe = regexp.MustCompile(`\b(?:[Tt]o|[Ii]n|[Vv]isiting)\s+(` + properName + `)\s*,\s*(` + properName + `)`)
	barePhraseRe  = regexp.MustCompile(`\b(?:[Tt]o|[Ii]n|[Vv]isiting)\s+(` + properName + `)`)
)

// ExtractCountryAndCity pulls a country and/or city name out of a travel
// phrase. Recognized shapes: "to X in Y" (country then city), "in Y, X"
// (city then country), and a bare "to X" classified via the gazetteer.
// Either return value may be empty.
func ExtractCountryAndCity(msg string) (country, city string) {
	if m := pairPhraseRe.FindStringSubmatch(msg); m != nil {
		if isCountry(m[1]) {
			return m[1], m[2]
		}
		if isCountry(m[2]) {
			return m[2], m[1]
		}
		return "", m[2]
	}
	if m := commaPhraseRe.FindStringSubmatch(msg); m != nil {
		if isCountry(m[2]) {
			return m[2], m[1]
		}
		if isCountry(m[1]) {
			return m[1], m[2]
		}
		return "", m[1]
	}
	if m := barePhraseRe.FindStringSubmatch(msg); m != nil {
		if isCountry(m[1]) {
			return m[1], ""
		}
		return "", m[1]
	}
	return "", ""
}
