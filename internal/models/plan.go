// ABOUTME: Structured result shapes returned by the reasoning oracle
// ABOUTME: Each shape has a typed neutral default used when decoding fails
package models

// ToolPlan is the oracle's decision about which data sources a turn needs.
type ToolPlan struct {
	NeedWeather bool   `json:"need_weather"`
	NeedCountry bool   `json:"need_country"`
	NeedWeb     bool   `json:"need_web"`
	PlaceHint   string `json:"place_hint,omitempty"`
	Rationale   string `json:"rationale"`
}

// DefaultToolPlan is the neutral fallback: fetch nothing, explain why.
func DefaultToolPlan() ToolPlan {
	return ToolPlan{Rationale: "planner unavailable; no tools requested"}
}

// Time target types emitted by the time planner.
const (
	TargetUnspecified = "unspecified"
	TargetToday       = "today"
	TargetTomorrow    = "tomorrow"
	TargetWeekend     = "weekend"
	TargetDate        = "date"
	TargetRange       = "range"
)

// TimePlan is the oracle's normalization of the turn's temporal intent.
type TimePlan struct {
	TargetType string   `json:"target_type"`
	ISODates   []string `json:"iso_dates,omitempty"`
	ISOStart   string   `json:"iso_start,omitempty"`
	ISOEnd     string   `json:"iso_end,omitempty"`
	Rationale  string   `json:"rationale"`
}

// DefaultTimePlan is the neutral fallback: no time preference.
func DefaultTimePlan() TimePlan {
	return TimePlan{TargetType: TargetUnspecified, Rationale: "time planner unavailable"}
}

// Place resolution kinds emitted by the place resolver.
const (
	ResolutionExplicit         = "explicit"
	ResolutionImplicitPrevious = "implicit_previous"
	ResolutionImplicitFirst    = "implicit_first"
	ResolutionImplicitLast     = "implicit_last"
	ResolutionNone             = "none"
)

// PlacePlan is the oracle's decision about which place the user means.
type PlacePlan struct {
	ResolvedPlace string   `json:"resolved_place,omitempty"`
	Resolution    string   `json:"resolution"`
	Ambiguous     bool     `json:"ambiguous"`
	Alternatives  []string `json:"alternatives,omitempty"`
	Rationale     string   `json:"rationale"`
}

// DefaultPlacePlan is the neutral fallback: nothing resolved, not ambiguous.
func DefaultPlacePlan() PlacePlan {
	return PlacePlan{Resolution: ResolutionNone, Rationale: "place resolver unavailable"}
}

// ComposeOut is the oracle's answer plus its self-rated confidence (0..1).
type ComposeOut struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

// DefaultComposeOut is the neutral fallback. The apology text keeps the turn
// completable when the oracle cannot produce a valid answer shape; confidence
// zero guarantees the critique pass runs on it.
func DefaultComposeOut() ComposeOut {
	return ComposeOut{
		Answer:     "I'm having trouble putting a full answer together right now. Could you rephrase, or ask again in a moment?",
		Confidence: 0,
	}
}
