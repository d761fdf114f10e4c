// ABOUTME: Intent routing, the smalltalk branch, and turn-entry normalization
// ABOUTME: Short follow-ups stick to the previous intent instead of derailing
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/wayfarer/internal/models"
)

func validIntent(intent string) bool {
	switch intent {
	case models.IntentDestinations, models.IntentPacking, models.IntentAttractions,
		models.IntentLogistics, models.IntentSmalltalk, models.IntentWeather:
		return true
	}
	return false
}

// routeIntent classifies the message and applies the stickiness override:
// oracle-classified smalltalk on a message of three tokens or fewer keeps the
// previous turn's travel intent, with previous weather intent preferred.
// The offtopic counter resets on any non-smalltalk result.
func (p *Pipeline) routeIntent(ctx context.Context, s *models.TurnState) {
	msg := strings.TrimSpace(s.UserMsg)

	raw, err := p.oracle.Complete(ctx, "Return exactly one word intent.", fmt.Sprintf(routerPrompt, msg), 0)
	intent := strings.ToLower(strings.TrimSpace(raw))
	if err != nil || !validIntent(intent) {
		intent = fallbackIntent(msg, s.Intent)
	}

	prev := s.Intent
	if intent == models.IntentSmalltalk && len(strings.Fields(msg)) <= 3 {
		if prev == models.IntentWeather {
			intent = models.IntentWeather
		} else if prev != "" && prev != models.IntentSmalltalk {
			intent = prev
		}
	}

	s.Intent = intent
	if intent != models.IntentSmalltalk {
		s.OfftopicCount = 0
	}
}

// fallbackIntent classifies deterministically when the oracle is unavailable
// or returned something outside the vocabulary.
func fallbackIntent(msg, prev string) string {
	switch {
	case hintWeather(msg):
		return models.IntentWeather
	case hintCountryFacts(msg):
		return models.IntentLogistics
	case prev != "":
		return prev
	}
	return models.IntentSmalltalk
}

// normalize prepares the state at turn entry: message whitespace collapsed,
// history bounded to the most recent 12 entries, units defaulted.
func normalize(s *models.TurnState) {
	s.UserMsg = strings.Join(strings.Fields(s.UserMsg), " ")
	if len(s.History) > 12 {
		s.History = s.History[len(s.History)-12:]
	}
	if s.Data.Units == "" {
		s.Data.Units = "metric"
	}
}

const offtopicHint = "\n\n(If you're not planning a trip yet, that's okay. Tell me and I'll share a few travel-idea prompts you can use anytime.)"

// smalltalk produces a warm reply that pivots back to travel with a concrete
// question, and bumps the offtopic counter. Three or more consecutive
// smalltalk turns append an extra hint.
func (p *Pipeline) smalltalk(ctx context.Context, s *models.TurnState) {
	question := pivotQuestion(s.Profile)

	reply, err := p.oracle.Complete(ctx, "You are friendly, brief, and helpful.",
		fmt.Sprintf(smalltalkRedirect, s.UserMsg, question), 0.5)
	if err != nil || strings.TrimSpace(reply) == "" {
		reply = question
	}

	s.OfftopicCount++
	if s.OfftopicCount >= 3 {
		reply += offtopicHint
	}
	s.Final = reply
}

// pivotQuestion picks the travel question to steer back to: a confirmation
// about the trip in progress when one exists, otherwise the next unfilled
// profile slot.
func pivotQuestion(profile models.UserProfile) string {
	dest := profile.CurrentDestination()
	if dest != "" {
		switch {
		case profile.StartDate != "" && profile.EndDate != "":
			return fmt.Sprintf("Do you want me to keep planning for %s (%s to %s)?", dest, profile.StartDate, profile.EndDate)
		case profile.StartDate != "":
			return fmt.Sprintf("Should I keep planning for %s starting %s?", dest, profile.StartDate)
		default:
			return fmt.Sprintf("Should I keep going with %s?", dest)
		}
	}
	return nextTravelQuestion(profile)
}

func nextTravelQuestion(profile models.UserProfile) string {
	switch {
	case profile.CurrentDestination() == "":
		return "Where are you thinking of traveling?"
	case profile.StartDate == "":
		return fmt.Sprintf("When are you planning to go to %s?", profile.CurrentDestination())
	case profile.EndDate == "":
		return "How many days will you have?"
	case profile.Style == "":
		return "Do you prefer nature, cities, or a mix?"
	}
	return "What would you like help with first: destinations, packing, or things to do?"
}
