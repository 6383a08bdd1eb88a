package domain

// ActionType enumerates what a menu selection does. Tokens are decoded
// into these typed actions up front; nothing parses token strings at
// selection time.
type ActionType string

const (
	// ActionRunWorker routes the next turn to one specialized worker.
	ActionRunWorker ActionType = "run_worker"
	// ActionPlanTrip re-enters full plan generation.
	ActionPlanTrip ActionType = "plan_trip"
	// ActionSelectDestination commits a discovery candidate.
	ActionSelectDestination ActionType = "select_destination"
	// ActionRefineSearch clears candidates and re-runs discovery extraction.
	ActionRefineSearch ActionType = "refine_search"
	// ActionSummary produces a recap of the current state.
	ActionSummary ActionType = "summary"
)

// RefineToken is the fixed trailing token in every discovery menu.
const RefineToken = "D99"

// Action is the typed effect behind one menu token.
type Action struct {
	Type ActionType `json:"type"`

	// Worker is set for ActionRunWorker.
	Worker StepKind `json:"worker,omitempty"`

	// CandidateIndex is set for ActionSelectDestination and indexes into
	// the session's ranked candidate list.
	CandidateIndex int `json:"candidate_index,omitempty"`
}

// MenuEntry is one tokenized follow-up suggestion. Tokens are stable only
// for the menu that produced them.
type MenuEntry struct {
	Token       string `json:"token"`
	Description string `json:"description"`
	Action      Action `json:"action"`
}

// FindMenuEntry resolves a token against a menu. The boolean is false for
// unknown or stale tokens.
func FindMenuEntry(menu []MenuEntry, token string) (MenuEntry, bool) {
	for _, e := range menu {
		if e.Token == token {
			return e, true
		}
	}
	return MenuEntry{}, false
}
