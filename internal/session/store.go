// ABOUTME: In-memory session store with the turn carry-over contract
// ABOUTME: One turn in flight per session; nothing is persisted to disk
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/harper/wayfarer/internal/models"
)

// TurnRunner runs one conversation turn against a prepared state.
type TurnRunner interface {
	Run(ctx context.Context, s *models.TurnState) error
}

// Session is the durable record for one conversation. The carry-over fields
// are exactly those a turn reads back in: history, intent, offtopic count,
// summary, profile, and the data workspace (which keeps the facts cache and
// any pending disambiguation candidates alive between turns).
type Session struct {
	ID string

	mu            sync.Mutex
	history       []models.Message
	intent        string
	offtopicCount int
	summary       string
	profile       models.UserProfile
	data          models.Workspace

	webAllowed bool
	units      string
}

// Store holds sessions keyed by ID, creating them on demand.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	defaultWebAllowed bool
	defaultUnits      string
}

// NewStore creates a store whose new sessions start with the given toggles.
func NewStore(webAllowed bool, units string) *Store {
	return &Store{
		sessions:          make(map[string]*Session),
		defaultWebAllowed: webAllowed,
		defaultUnits:      units,
	}
}

// Get returns the session for id, creating it if needed. An empty id gets a
// generated one.
func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	s, ok := st.sessions[id]
	if !ok {
		s = &Session{
			ID:         id,
			webAllowed: st.defaultWebAllowed,
			units:      st.defaultUnits,
		}
		st.sessions[id] = s
	}
	return s
}

// Reset clears a session's conversation while keeping its toggles.
func (st *Store) Reset(id string) {
	s := st.Get(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.intent = ""
	s.offtopicCount = 0
	s.summary = ""
	s.profile = models.UserProfile{}
	s.data = models.Workspace{}
}

// SetPreferences updates the session toggles. Nil leaves a toggle unchanged.
func (s *Session) SetPreferences(webAllowed *bool, units *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if webAllowed != nil {
		s.webAllowed = *webAllowed
	}
	if units != nil {
		s.units = *units
	}
}

// SetLocation seeds the session profile with a known user location, the way
// a UI with device geolocation would.
func (s *Session) SetLocation(loc *models.Location) {
	if loc == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.CurrentLocation = loc.LocationString
	s.profile.LocationData = loc
}

// Profile returns a copy of the session's durable profile.
func (s *Session) Profile() models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// Summary returns the session's running summary.
func (s *Session) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// RunTurn appends the user message, runs the pipeline over the carried state,
// writes the carry-over fields back, appends the reply, and returns it. The
// session lock serializes turns, so a second caller blocks until the first
// turn completes. A turn error leaves the carried fields untouched apart from
// the appended user message.
func (s *Session) RunTurn(ctx context.Context, runner TurnRunner, userMsg string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, models.Message{Role: models.RoleUser, Content: userMsg})

	data := s.data
	data.WebAllowed = s.webAllowed
	data.Units = s.units

	state := &models.TurnState{
		History:       append([]models.Message(nil), s.history...),
		UserMsg:       userMsg,
		Intent:        s.intent,
		OfftopicCount: s.offtopicCount,
		Profile:       s.profile.Clone(),
		Data:          data,
		Summary:       s.summary,
	}

	if err := runner.Run(ctx, state); err != nil {
		return "", err
	}

	s.intent = state.Intent
	s.offtopicCount = state.OfftopicCount
	s.summary = state.Summary
	s.profile = state.Profile
	s.data = state.Data

	reply := state.Reply()
	if reply == "" {
		reply = "(no reply)"
	}
	s.history = append(s.history, models.Message{Role: models.RoleAssistant, Content: reply})
	return reply, nil
}
