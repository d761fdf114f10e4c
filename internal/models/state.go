// ABOUTME: TurnState carries everything one conversation turn reads and writes
// ABOUTME: Built fresh per turn from session carry-over plus the new user message
package models

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in the conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Intent labels produced by the router. Free-form strings by contract, but
// the router only emits values from this vocabulary.
const (
	IntentDestinations = "destinations"
	IntentPacking      = "packing"
	IntentAttractions  = "attractions"
	IntentLogistics    = "logistics"
	IntentSmalltalk    = "smalltalk"
	IntentWeather      = "weather"
)

// Plan records which data sources the current turn needs and the working place.
type Plan struct {
	Weather  bool   `json:"weather"`
	Country  bool   `json:"country"`
	Web      bool   `json:"web"`
	Location bool   `json:"location"`
	Place    string `json:"place,omitempty"`
}

// Workspace is the transient per-turn data block. The facts cache inside it
// is the only part that survives across turns (carried by the session).
type Workspace struct {
	WebAllowed      bool      `json:"web_allowed"`
	Units           string    `json:"units"`
	Plan            *Plan     `json:"plan,omitempty"`
	TimePlan        *TimePlan `json:"time_plan,omitempty"`
	Facts           Facts     `json:"facts"`
	ResolvedPlace   string    `json:"resolved_place,omitempty"`
	PlaceCandidates []string  `json:"place_candidates,omitempty"`
}

// TurnState is the pipeline's working state for one turn. Stages mutate the
// fields they own; everything else passes through untouched.
type TurnState struct {
	History        []Message   `json:"history"`
	UserMsg        string      `json:"user_msg"`
	Intent         string      `json:"intent,omitempty"`
	OfftopicCount  int         `json:"offtopic_count"`
	Profile        UserProfile `json:"user_profile"`
	Data           Workspace   `json:"data"`
	Draft          string      `json:"draft,omitempty"`
	Final          string      `json:"final,omitempty"`
	CritiqueNeeded bool        `json:"critique_needed"`
	CritiqueNotes  string      `json:"critique_notes,omitempty"`
	Summary        string      `json:"summary,omitempty"`
}

// Reply returns the turn's user-facing text: the terminal answer when set,
// otherwise the provisional draft.
func (s *TurnState) Reply() string {
	if s.Final != "" {
		return s.Final
	}
	return s.Draft
}

// LastAssistant returns the most recent assistant message in the history,
// or nil if the assistant has not spoken yet.
func (s *TurnState) LastAssistant() *Message {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleAssistant {
			return &s.History[i]
		}
	}
	return nil
}
