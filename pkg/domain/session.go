package domain

import "time"

// Phase is the coarse conversation mode. It governs routing and menu
// generation; transitions between phases are the only legal changes.
type Phase string

const (
	// PhaseNormal is the default planning conversation mode.
	PhaseNormal Phase = "normal"
	// PhaseDestinationDiscovery is active while the user is still
	// choosing where to go.
	PhaseDestinationDiscovery Phase = "destination_discovery"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the conversation log.
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// AgentKind names a routing target: a specialized worker, the planner,
// the destination-discovery entry, or none (end of turn).
type AgentKind string

const (
	AgentNone      AgentKind = ""
	AgentFlight    AgentKind = "flight"
	AgentHotel     AgentKind = "hotel"
	AgentActivity  AgentKind = "activity"
	AgentItinerary AgentKind = "itinerary"
	AgentPlanner   AgentKind = "planner"
	AgentDiscovery AgentKind = "destination_planner"
)

// Session is the unit of conversation continuity. It serializes as a
// single JSON document so any keyed store can persist it whole.
type Session struct {
	// ID is opaque, unique and immutable for the session's lifetime.
	ID string `json:"id"`

	// Turns is the append-only conversation log.
	Turns []Turn `json:"turns"`

	// Phase governs routing and menu generation.
	Phase Phase `json:"phase"`

	// Plan is present only while a multi-step plan is executing.
	// Invariant: Phase == PhaseDestinationDiscovery implies Plan == nil.
	Plan *Plan `json:"plan,omitempty"`

	// Itinerary is the last composed day-by-day result, if any.
	Itinerary *Itinerary `json:"itinerary,omitempty"`

	// Requirements accumulates extracted user constraints. Keys are never
	// removed within a phase, only overwritten with more specific values.
	Requirements Requirements `json:"requirements"`

	// ToolResults maps each worker kind to its last structured output.
	ToolResults map[StepKind]WorkerResult `json:"tool_results,omitempty"`

	// Candidates holds the current discovery pass output. Discarded once a
	// selection commits a destination into Requirements.
	Candidates []Candidate `json:"candidates,omitempty"`

	// PendingMenu is the last emitted token menu. A token is decodable at
	// most until the next turn overwrites this.
	PendingMenu []MenuEntry `json:"pending_menu,omitempty"`

	// NextAgent is a transient routing hint, cleared once consumed.
	NextAgent AgentKind `json:"next_agent,omitempty"`
}

// NewSession creates an empty session in the normal phase.
func NewSession(id string) *Session {
	return &Session{
		ID:          id,
		Phase:       PhaseNormal,
		ToolResults: make(map[StepKind]WorkerResult),
	}
}

// AppendTurn records a message in the conversation log.
func (s *Session) AppendTurn(role Role, text string) {
	s.Turns = append(s.Turns, Turn{Role: role, Text: text, Timestamp: time.Now().UTC()})
}

// LastUserText returns the text of the most recent user turn, or "".
func (s *Session) LastUserText() string {
	for i := len(s.Turns) - 1; i >= 0; i-- {
		if s.Turns[i].Role == RoleUser {
			return s.Turns[i].Text
		}
	}
	return ""
}

// UserTexts returns all user turn texts in order. Used by requirement
// extraction, which reads the whole conversation.
func (s *Session) UserTexts() []string {
	texts := make([]string, 0, len(s.Turns))
	for _, t := range s.Turns {
		if t.Role == RoleUser {
			texts = append(texts, t.Text)
		}
	}
	return texts
}

// RecordResult stores a worker result under its kind.
func (s *Session) RecordResult(res WorkerResult) {
	if s.ToolResults == nil {
		s.ToolResults = make(map[StepKind]WorkerResult)
	}
	s.ToolResults[res.Kind] = res
}

// ConsumeNextAgent returns the routing hint and clears it.
func (s *Session) ConsumeNextAgent() AgentKind {
	next := s.NextAgent
	s.NextAgent = AgentNone
	return next
}

// EnterDiscovery switches the session into the discovery phase, dropping
// any in-flight plan to preserve the phase/plan invariant.
func (s *Session) EnterDiscovery() {
	s.Phase = PhaseDestinationDiscovery
	s.Plan = nil
}

// CommitDestination records the chosen destination, leaves the discovery
// phase and hands control to the planner on the next turn.
func (s *Session) CommitDestination(c Candidate) {
	s.Requirements.Destination = c.Name
	if s.Requirements.Region == "" {
		s.Requirements.Region = c.Region
	}
	s.Phase = PhaseNormal
	s.Plan = nil
	s.Candidates = nil
	s.NextAgent = AgentPlanner
}
