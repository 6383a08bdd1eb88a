package engine

import (
	"fmt"

	"github.com/wanderplan/wanderplan/pkg/domain"
)

// Assessment is the validation verdict over freshly produced state. It
// only annotates; it never blocks a response.
type Assessment struct {
	Coherent bool
	Degraded bool
	Notes    []string

	// NextAgentHint suggests a follow-up route, e.g. recomposing an
	// itinerary whose length drifted from the requested duration.
	NextAgentHint domain.AgentKind
}

// Validate inspects the session after execution for coherence: itinerary
// length versus requested duration, terminal step statuses, all-failed
// plans.
func Validate(sess *domain.Session) Assessment {
	a := Assessment{Coherent: true}

	if sess.Itinerary != nil && sess.Requirements.DurationDays > 0 &&
		sess.Itinerary.DayCount != sess.Requirements.DurationDays {
		a.Coherent = false
		a.Notes = append(a.Notes, fmt.Sprintf(
			"itinerary covers %d days but %d were requested",
			sess.Itinerary.DayCount, sess.Requirements.DurationDays,
		))
		a.NextAgentHint = domain.AgentItinerary
	}

	if sess.Plan != nil {
		for _, step := range sess.Plan.Steps {
			if step.Status == domain.StepPending {
				a.Coherent = false
				a.Notes = append(a.Notes, fmt.Sprintf("step %q never reached a terminal status", step.Kind))
			}
		}
		if sess.Plan.AllFailed() {
			a.Degraded = true
			a.Notes = append(a.Notes, "every plan step failed")
		}
	}

	return a
}
