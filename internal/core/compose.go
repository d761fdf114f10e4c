// ABOUTME: Compose, critique, and revise: a grounded draft with a second pass
// ABOUTME: Long or low-confidence drafts get reviewed before becoming final
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/wayfarer/internal/models"
	"github.com/harper/wayfarer/internal/providers"
)

func unitSymbol(units string) string {
	if units == "imperial" {
		return "°F"
	}
	return "°C"
}

// factsBrief renders the fetched data into the compact context block the
// compose prompt receives. Weather lines cover only the target dates; when
// the cached weather is for a different place than the one being discussed, a
// staleness note replaces the numbers. Web titles are left out of weather
// answers.
func factsBrief(s *models.TurnState) string {
	facts := s.Data.Facts
	place := ResolvePlace(s)
	unit := unitSymbol(s.Data.Units)

	targetDates := facts.TargetDates
	if len(targetDates) == 0 && facts.Today != "" {
		targetDates = []string{facts.Today}
	}

	var b strings.Builder

	entry, haveEntry := facts.WeatherByPlace[place]
	if place != "" && haveEntry && len(targetDates) > 0 {
		daily := entry.Forecast.Daily
		var parts []string
		for _, td := range targetDates {
			for i, d := range daily.Time {
				if d != td {
					continue
				}
				seg := fmt.Sprintf("%s: %g%s/%g%s", td, daily.TemperatureMax[i], unit, daily.TemperatureMin[i], unit)
				if i < len(daily.PrecipProbabilityMax) && daily.PrecipProbabilityMax[i] != nil {
					seg += fmt.Sprintf(", precip %g%%", *daily.PrecipProbabilityMax[i])
				}
				parts = append(parts, seg)
				break
			}
		}
		if len(parts) > 0 {
			fmt.Fprintf(&b, "Weather for %s: %s. ", entry.Place.Name, strings.Join(parts, "; "))
		}
	} else if facts.WeatherCurrent != "" {
		if _, ok := facts.WeatherByPlace[facts.WeatherCurrent]; ok && place != "" && !strings.EqualFold(facts.WeatherCurrent, place) {
			fmt.Fprintf(&b, "(Note: latest weather fetched is for %s; say 'check weather for %s' to refresh.) ",
				facts.WeatherCurrent, place)
		}
	}

	if facts.Country != nil {
		fmt.Fprintf(&b, "Country: %s, capital %s, currency %s. ",
			facts.Country.Name, facts.Country.Capital, strings.Join(facts.Country.Currencies, ", "))
	}

	if loc := s.Profile.LocationData; loc != nil {
		fmt.Fprintf(&b, "User location: %s (lat: %.2f, lon: %.2f). ",
			loc.LocationString, loc.Latitude, loc.Longitude)
		if haveEntry {
			km := providers.DistanceKm(loc.Latitude, loc.Longitude, entry.Place.Lat, entry.Place.Lon)
			fmt.Fprintf(&b, "Distance to %s: %.0f km (%s). ",
				entry.Place.Name, km, providers.DriveTimeEstimate(km))
		}
	}

	if len(facts.Web) > 0 && s.Intent != models.IntentWeather {
		links := make([]string, len(facts.Web))
		for i, w := range facts.Web {
			links[i] = fmt.Sprintf("[%d] %s", i+1, w.Title)
		}
		fmt.Fprintf(&b, "Web sources: %s. ", strings.Join(links, "; "))
	}

	return b.String()
}

// composeAnswer asks the oracle for the grounded draft and decides whether it
// needs a critique pass: answers over 800 characters or under 0.5 confidence
// do, short confident ones are trusted as-is.
func (p *Pipeline) composeAnswer(ctx context.Context, s *models.TurnState) {
	nowClean := s.Data.Facts.Now
	if i := strings.Index(nowClean, "T"); i >= 0 {
		nowClean = nowClean[:i]
	}
	if nowClean == "" {
		nowClean = "now"
	}

	brief := factsBrief(s)
	if brief == "" {
		brief = "none"
	}

	summary := s.Summary
	if summary == "" {
		summary = "(none)"
	}

	recent := s.History
	if len(recent) > 4 {
		recent = recent[len(recent)-4:]
	}
	var recentLines []string
	for _, m := range recent {
		if m.Content != "" {
			recentLines = append(recentLines, fmt.Sprintf("%s: %s", m.Role, m.Content))
		}
	}
	recentBlock := strings.Join(recentLines, "\n")
	if recentBlock == "" {
		recentBlock = "(none)"
	}

	userPrompt := fmt.Sprintf(composeTemplate,
		systemPrompt, brief, summary, recentBlock, strictFactsPolicy, reasoningChecklist, nowClean, s.UserMsg)

	res := p.oracle.Compose(ctx, systemPrompt, userPrompt)
	s.Draft = res.Answer
	s.CritiqueNeeded = len(res.Answer) > 800 || res.Confidence < 0.5
}

// critique reviews the draft. A short draft that already reads as a grounded
// weather answer is passed without an oracle round-trip. An unreachable
// oracle counts as acceptance so the turn still completes.
func (p *Pipeline) critique(ctx context.Context, s *models.TurnState) {
	draft := s.Draft
	lower := strings.ToLower(draft)
	if len(draft) < 200 && strings.Contains(lower, "weather") &&
		(strings.Contains(draft, "°C") || strings.Contains(draft, "°F")) {
		s.CritiqueNotes = "OK"
		return
	}

	factsPresent := "no"
	f := s.Data.Facts
	if f.Now != "" || len(f.WeatherByPlace) > 0 || f.Country != nil || len(f.Web) > 0 {
		factsPresent = "yes"
	}

	notes, err := p.oracle.Complete(ctx, "Be terse.", fmt.Sprintf(reviewerPrompt, draft, factsPresent), 0)
	if err != nil {
		s.CritiqueNotes = "OK"
		return
	}
	s.CritiqueNotes = strings.TrimSpace(notes)
}

// revise rewrites the draft when the critique flagged issues; otherwise the
// draft is promoted verbatim.
func (p *Pipeline) revise(ctx context.Context, s *models.TurnState) {
	if !strings.HasPrefix(s.CritiqueNotes, "ISSUES") {
		s.Final = s.Draft
		return
	}
	improved, err := p.oracle.Complete(ctx, "Revise per critique, preserve facts.",
		fmt.Sprintf(revisePrompt, s.Draft, s.CritiqueNotes), 0.2)
	if err != nil || strings.TrimSpace(improved) == "" {
		s.Final = s.Draft
		return
	}
	s.Final = improved
}
