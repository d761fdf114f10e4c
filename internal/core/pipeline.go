// ABOUTME: The turn orchestrator: a closed set of nodes walked by a switch
// ABOUTME: UpdateSummary is the single convergence point on every branch
package core

import (
	"context"
	"fmt"

	"github.com/harper/wayfarer/internal/models"
)

// Oracle is the reasoning service the pipeline consults. Plain-text calls
// return errors; structured calls never fail, degrading to typed defaults.
type Oracle interface {
	Complete(ctx context.Context, system, user string, temperature float32) (string, error)
	PlanTools(ctx context.Context, system, user string) models.ToolPlan
	PlanTime(ctx context.Context, system, user string) models.TimePlan
	ResolvePlace(ctx context.Context, system, user string) models.PlacePlan
	Compose(ctx context.Context, system, user string) models.ComposeOut
}

// WeatherProvider geocodes places and fetches daily forecasts.
type WeatherProvider interface {
	Geocode(ctx context.Context, place string) (*models.Place, error)
	ForecastDaily(ctx context.Context, lat, lon float64, units string) (*models.Forecast, error)
}

// CountryProvider looks up country reference facts.
type CountryProvider interface {
	Facts(ctx context.Context, name string) (*models.CountryFacts, error)
}

// SearchProvider runs web searches for fresh facts.
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.WebResult, error)
}

// Locator resolves the caller's approximate location.
type Locator interface {
	FromIP(ctx context.Context) (*models.Location, error)
}

// TimeSource supplies timezone-localized timestamps and dates.
type TimeSource interface {
	NowISO(tz string) string
	Today(tz string) string
}

// Pipeline runs one conversation turn through the stage graph. It holds no
// per-session state; everything a turn needs rides in the TurnState.
type Pipeline struct {
	oracle    Oracle
	weather   WeatherProvider
	countries CountryProvider
	search    SearchProvider
	locator   Locator
	clock     TimeSource
}

// NewPipeline wires a pipeline from its collaborators.
func NewPipeline(oracle Oracle, weather WeatherProvider, countries CountryProvider, search SearchProvider, locator Locator, clock TimeSource) *Pipeline {
	return &Pipeline{
		oracle:    oracle,
		weather:   weather,
		countries: countries,
		search:    search,
		locator:   locator,
		clock:     clock,
	}
}

type node int

const (
	nodeRoute node = iota
	nodeSmalltalk
	nodeHandler
	nodeResolvePlace
	nodePlan
	nodePlanTime
	nodeClarify
	nodeFetch
	nodeCompose
	nodeCritique
	nodeRevise
	nodeUpdateSummary
	nodeEnd
)

// Run walks the state machine for one turn. Stages mutate s in place; the
// only error that escapes is a required-provider failure during fetch.
func (p *Pipeline) Run(ctx context.Context, s *models.TurnState) error {
	cur := nodeRoute
	for cur != nodeEnd {
		switch cur {
		case nodeRoute:
			p.routeIntent(ctx, s)
			if s.Intent == models.IntentSmalltalk {
				cur = nodeSmalltalk
			} else {
				cur = nodeHandler
			}
		case nodeSmalltalk:
			p.smalltalk(ctx, s)
			cur = nodeUpdateSummary
		case nodeHandler:
			normalize(s)
			cur = nodeResolvePlace
		case nodeResolvePlace:
			p.resolvePlace(ctx, s)
			if s.Final != "" {
				cur = nodeUpdateSummary
			} else {
				cur = nodePlan
			}
		case nodePlan:
			p.planTools(ctx, s)
			cur = nodePlanTime
		case nodePlanTime:
			p.planTime(ctx, s)
			if need, _ := needsHardClarification(s); need {
				cur = nodeClarify
			} else {
				cur = nodeFetch
			}
		case nodeClarify:
			clarify(s)
			cur = nodeUpdateSummary
		case nodeFetch:
			if err := p.fetchData(ctx, s); err != nil {
				return fmt.Errorf("fetching data: %w", err)
			}
			cur = nodeCompose
		case nodeCompose:
			p.composeAnswer(ctx, s)
			if s.CritiqueNeeded {
				cur = nodeCritique
			} else {
				cur = nodeUpdateSummary
			}
		case nodeCritique:
			p.critique(ctx, s)
			cur = nodeRevise
		case nodeRevise:
			p.revise(ctx, s)
			cur = nodeUpdateSummary
		case nodeUpdateSummary:
			p.updateSummary(ctx, s)
			cur = nodeEnd
		}
	}
	return nil
}
