package ports

import (
	"context"

	"github.com/wanderplan/wanderplan/pkg/domain"
)

// Intent is the constrained output vocabulary of the external classifier.
type Intent string

const (
	IntentFlight    Intent = "flight"
	IntentHotel     Intent = "hotel"
	IntentActivity  Intent = "activity"
	IntentItinerary Intent = "itinerary"
	IntentPlanner   Intent = "planner"
	IntentDiscovery Intent = "destination_planner"
	IntentNone      Intent = "none"
)

// KnownIntent reports whether the classifier returned a value from the
// allowed enum. Anything else is treated as ambiguous.
func KnownIntent(i Intent) bool {
	switch i {
	case IntentFlight, IntentHotel, IntentActivity, IntentItinerary,
		IntentPlanner, IntentDiscovery, IntentNone:
		return true
	}
	return false
}

// Reasoner is the external reasoning collaborator. Implementations must be
// callable with a context deadline and must fail closed: return an error
// (or an empty best-effort result) rather than hang or panic into the
// orchestration core. Callers always have a deterministic fallback.
type Reasoner interface {
	// ClassifyIntent maps the latest turn, in conversation context, onto
	// the Intent enum.
	ClassifyIntent(ctx context.Context, turns []domain.Turn) (Intent, error)

	// ExtractRequirements pulls typed trip constraints out of the user's
	// turns. Partial results are fine; absent fields stay zero.
	ExtractRequirements(ctx context.Context, turns []domain.Turn) (domain.Requirements, error)

	// GeneratePlan produces an ordered step list for a goal. The engine
	// bounds the list and drops unknown kinds, so implementations may be
	// liberal.
	GeneratePlan(ctx context.Context, goal string, req domain.Requirements) ([]domain.PlanStep, error)

	// GenerateCandidates proposes scored destination candidates for the
	// given requirements.
	GenerateCandidates(ctx context.Context, req domain.Requirements) ([]domain.Candidate, error)

	// ComposeItinerary builds a day-by-day itinerary from requirements and
	// whatever search results have accumulated.
	ComposeItinerary(ctx context.Context, req domain.Requirements, results map[domain.StepKind]domain.WorkerResult) (*domain.Itinerary, error)
}

// Researcher is the external research collaborator used to enrich
// destination candidates. Absence of enrichment must never block ranking.
type Researcher interface {
	Enrich(ctx context.Context, candidateName string, req domain.Requirements) (string, error)
}

// SearchProvider is one domain search backend (flights, hotels or
// activities). Each specialized worker wraps exactly one provider plus its
// deterministic fallback generator.
type SearchProvider interface {
	Search(ctx context.Context, params domain.StepParams) ([]domain.Offer, error)
}
