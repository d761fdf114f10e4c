// ABOUTME: Tool and time planning: oracle decisions ORed with keyword hints
// ABOUTME: Includes the weather follow-up detector and distance-query flag
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/harper/wayfarer/internal/models"
)

// Keyword fallbacks applied when the oracle under-plans.
var (
	weatherTermsRe = regexp.MustCompile(`(?i)(weather|rain|temperature|forecast|sunny|snow|wind)`)
	dateTermsRe    = regexp.MustCompile(`(?i)(today|tomorrow|weekend|\b\d{2}-\d{2}-\d{4}\b)`)
	countryTermsRe = regexp.MustCompile(`(?i)(currency|visa|language|timezone|plug|outlet|capital)`)
	webTermsRe     = regexp.MustCompile(`(?i)(open\s+today|hours|closed|latest|news|strike|event(s)?\s+(today|tonight|this weekend)|update)`)
)

func hintWeather(msg string) bool {
	return weatherTermsRe.MatchString(msg) || dateTermsRe.MatchString(msg)
}

func hintCountryFacts(msg string) bool {
	return countryTermsRe.MatchString(msg)
}

func hintWebSearch(msg string) bool {
	return webTermsRe.MatchString(msg)
}

var simpleAcks = map[string]struct{}{
	"thanks": {}, "thank you": {}, "ok": {}, "okay": {},
	"got it": {}, "perfect": {}, "great": {}, "awesome": {},
}

var timeWords = []string{
	"weekend", "today", "tomorrow", "tonight", "morning",
	"evening", "afternoon", "next week", "this week",
}

// isWeatherFollowup reports whether a time-referencing message continues a
// prior weather exchange: weather facts are cached, or the last assistant
// message mentioned weather. Bare acknowledgements never count.
func isWeatherFollowup(s *models.TurnState) bool {
	m := strings.ToLower(strings.TrimSpace(s.UserMsg))
	if _, ack := simpleAcks[m]; ack {
		return false
	}

	hasTimeWord := false
	for _, w := range timeWords {
		if strings.Contains(m, w) {
			hasTimeWord = true
			break
		}
	}
	if !hasTimeWord {
		return false
	}

	if len(s.Data.Facts.WeatherByPlace) > 0 {
		return true
	}
	if last := s.LastAssistant(); last != nil {
		return strings.Contains(strings.ToLower(last.Content), "weather")
	}
	return false
}

var distancePhrases = []string{
	"hours away", "distance", "near me", "close to me", "nearby", "from here",
}

func hasDistanceQuery(msg string) bool {
	lower := strings.ToLower(msg)
	for _, p := range distancePhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func profileBrief(p models.UserProfile) string {
	b, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// planTools decides which data sources this turn needs. Each oracle flag is
// ORed with its keyword hint; web needs the session's permission; a
// time-referencing weather follow-up forces the weather flag; distance-style
// questions flag a location lookup when the profile has none. The working
// place falls through resolved place, destination memory, then the oracle's
// hint.
func (p *Pipeline) planTools(ctx context.Context, s *models.TurnState) {
	user := fmt.Sprintf("Intent: %s\nUser message: %s\nProfile: %s\nSummary: %s\nReturn booleans and a brief rationale.",
		s.Intent, s.UserMsg, profileBrief(s.Profile), s.Summary)
	tp := p.oracle.PlanTools(ctx, plannerSystem, user)

	place := s.Data.ResolvedPlace
	if place == "" {
		place = ResolvePlace(s)
	}
	if place == "" {
		place = tp.PlaceHint
	}

	needWeather := tp.NeedWeather || hintWeather(s.UserMsg)
	needCountry := tp.NeedCountry || hintCountryFacts(s.UserMsg)
	needWeb := (tp.NeedWeb || hintWebSearch(s.UserMsg)) && s.Data.WebAllowed

	if !needWeather && isWeatherFollowup(s) {
		needWeather = true
	}

	needLocation := hasDistanceQuery(s.UserMsg) && s.Profile.LocationData == nil

	s.Data.Plan = &models.Plan{
		Weather:  needWeather,
		Country:  needCountry,
		Web:      needWeb,
		Location: needLocation,
		Place:    place,
	}
}

// planTime normalizes the turn's temporal intent. Turns that need neither
// weather nor web data short-circuit to "unspecified" without an oracle call.
func (p *Pipeline) planTime(ctx context.Context, s *models.TurnState) {
	plan := s.Data.Plan
	if plan == nil || !(plan.Weather || plan.Web) {
		s.Data.TimePlan = &models.TimePlan{TargetType: models.TargetUnspecified}
		return
	}

	user := fmt.Sprintf("Intent: %s\nMessage: %s\nProfile: %s\n"+
		"If the message mentions a time-of-day (tonight/evening/morning/afternoon) without a date, "+
		"map it to TODAY (destination timezone). Return structured fields.",
		s.Intent, s.UserMsg, profileBrief(s.Profile))
	tp := p.oracle.PlanTime(ctx, timePlannerSystem, user)
	s.Data.TimePlan = &tp
}

// needsHardClarification fires only when weather is planned but no place is
// resolvable from anywhere.
func needsHardClarification(s *models.TurnState) (bool, string) {
	plan := s.Data.Plan
	if plan == nil {
		return false, ""
	}
	place := plan.Place
	if place == "" {
		place = s.Data.ResolvedPlace
	}
	if plan.Weather && place == "" {
		return true, "Which city or area should I check the weather for?"
	}
	return false, ""
}

// clarify ends the turn with the clarifying question.
func clarify(s *models.TurnState) {
	if need, q := needsHardClarification(s); need {
		s.Final = "I can do that. " + q
	}
}
