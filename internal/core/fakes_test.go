// ABOUTME: Scripted fakes for the oracle and providers used by stage tests
// ABOUTME: The oracle keys plain-text replies by the calling system prompt
package core

import (
	"context"
	"errors"
	"time"

	"github.com/harper/wayfarer/internal/models"
	"github.com/harper/wayfarer/internal/providers"
)

const (
	sysRoute     = "Return exactly one word intent."
	sysSmalltalk = "You are friendly, brief, and helpful."
	sysCritique  = "Be terse."
	sysRevise    = "Revise per critique, preserve facts."
	sysSummary   = "You are a careful note-taker."
)

type fakeOracle struct {
	replies map[string]string

	toolPlan   models.ToolPlan
	timePlan   models.TimePlan
	placePlan  models.PlacePlan
	composeOut models.ComposeOut

	completeCalls []string
	composePrompt string
	planToolCalls int
	planTimeCalls int
	resolveCalls  int
	composeCalls  int
}

func (f *fakeOracle) Complete(_ context.Context, system, _ string, _ float32) (string, error) {
	f.completeCalls = append(f.completeCalls, system)
	if r, ok := f.replies[system]; ok {
		return r, nil
	}
	return "", errors.New("no scripted reply")
}

func (f *fakeOracle) PlanTools(_ context.Context, _, _ string) models.ToolPlan {
	f.planToolCalls++
	return f.toolPlan
}

func (f *fakeOracle) PlanTime(_ context.Context, _, _ string) models.TimePlan {
	f.planTimeCalls++
	return f.timePlan
}

func (f *fakeOracle) ResolvePlace(_ context.Context, _, _ string) models.PlacePlan {
	f.resolveCalls++
	return f.placePlan
}

func (f *fakeOracle) Compose(_ context.Context, _, user string) models.ComposeOut {
	f.composeCalls++
	f.composePrompt = user
	return f.composeOut
}

type fakeWeather struct {
	place       *models.Place
	forecast    *models.Forecast
	geocodeErr  error
	forecastErr error
	geocoded    []string
}

func (f *fakeWeather) Geocode(_ context.Context, place string) (*models.Place, error) {
	f.geocoded = append(f.geocoded, place)
	return f.place, f.geocodeErr
}

func (f *fakeWeather) ForecastDaily(_ context.Context, _, _ float64, _ string) (*models.Forecast, error) {
	return f.forecast, f.forecastErr
}

type fakeCountries struct {
	facts *models.CountryFacts
	err   error
	names []string
}

func (f *fakeCountries) Facts(_ context.Context, name string) (*models.CountryFacts, error) {
	f.names = append(f.names, name)
	return f.facts, f.err
}

type fakeSearch struct {
	results []models.WebResult
	err     error
	queries []string
}

func (f *fakeSearch) Search(_ context.Context, query string, _ int) ([]models.WebResult, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

type fakeLocator struct {
	loc   *models.Location
	err   error
	calls int
}

func (f *fakeLocator) FromIP(_ context.Context) (*models.Location, error) {
	f.calls++
	return f.loc, f.err
}

// testClock is frozen at noon UTC on Wednesday 2024-06-12.
func testClock() *providers.Clock {
	return providers.NewFixedClock(time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC), "UTC")
}

func newTestPipeline(o *fakeOracle, w *fakeWeather, c *fakeCountries, srch *fakeSearch, l *fakeLocator) *Pipeline {
	if o.replies == nil {
		o.replies = map[string]string{}
	}
	return NewPipeline(o, w, c, srch, l, testClock())
}

// parisForecast covers 2024-06-12 through 2024-06-16.
func parisForecast() *models.Forecast {
	p10 := 10.0
	return &models.Forecast{
		Timezone: "Europe/Paris",
		Daily: models.Daily{
			Time:                 []string{"2024-06-12", "2024-06-13", "2024-06-14", "2024-06-15", "2024-06-16"},
			TemperatureMax:       []float64{24.1, 22.8, 25.0, 26.3, 21.9},
			TemperatureMin:       []float64{14.0, 13.2, 15.1, 16.0, 12.8},
			PrecipProbabilityMax: []*float64{&p10, nil, nil, &p10, nil},
		},
	}
}
