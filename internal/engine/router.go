package engine

import (
	"context"
	"strings"
	"time"

	"log/slog"

	"github.com/wanderplan/wanderplan/internal/logging"
	"github.com/wanderplan/wanderplan/pkg/domain"
	"github.com/wanderplan/wanderplan/pkg/ports"
)

// Router decides which component receives control for a free-text turn.
// It may flip the session into the discovery phase but never touches
// requirements or the plan.
type Router struct {
	classifier ports.Reasoner
	phrases    []string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewRouter creates a router. The classifier may be nil; ambiguous turns
// then resolve to no routing and a clarification response.
func NewRouter(classifier ports.Reasoner, phrases []string, timeout time.Duration, logger *slog.Logger) *Router {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Router{
		classifier: classifier,
		phrases:    phrases,
		timeout:    timeout,
		logger:     logger,
	}
}

// tripProposalPhrases marks a turn as proposing or adjusting a full trip.
// Anything it does not catch still reaches the planner through the
// classifier's "planner" intent.
var tripProposalPhrases = []string{
	"plan", "trip", "itinerary", "vacation", "getaway",
}

// Route returns the routing decision for the latest user turn, first match
// wins:
//
//  1. Discovery phase continues gathering until a selection leaves it.
//  2. No known destination plus an uncertainty phrase enters discovery.
//  3. Known destination, no plan, and the text proposes a trip goes to
//     the plan generator.
//  4. Everything else asks the external classifier; failure or an
//     out-of-enum answer resolves to none.
func (r *Router) Route(ctx context.Context, sess *domain.Session) domain.AgentKind {
	text := sess.LastUserText()

	if sess.Phase == domain.PhaseDestinationDiscovery {
		return domain.AgentDiscovery
	}

	if !sess.Requirements.HasDestination() && containsAnyFold(text, r.phrases) {
		sess.EnterDiscovery()
		return domain.AgentDiscovery
	}

	if sess.Requirements.HasDestination() && sess.Plan == nil && containsAnyFold(text, tripProposalPhrases) {
		return domain.AgentPlanner
	}

	return r.classify(ctx, sess)
}

func containsAnyFold(text string, phrases []string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range phrases {
		if strings.Contains(lowered, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

func (r *Router) classify(ctx context.Context, sess *domain.Session) domain.AgentKind {
	if r.classifier == nil {
		return domain.AgentNone
	}

	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	intent, err := r.classifier.ClassifyIntent(callCtx, sess.Turns)
	if err != nil {
		r.logger.Warn("intent classification failed", "err", err)
		return domain.AgentNone
	}
	if !ports.KnownIntent(intent) {
		r.logger.Warn("classifier returned unknown intent", "intent", intent)
		return domain.AgentNone
	}

	switch intent {
	case ports.IntentFlight:
		return domain.AgentFlight
	case ports.IntentHotel:
		return domain.AgentHotel
	case ports.IntentActivity:
		return domain.AgentActivity
	case ports.IntentItinerary:
		return domain.AgentItinerary
	case ports.IntentPlanner:
		return domain.AgentPlanner
	case ports.IntentDiscovery:
		return domain.AgentDiscovery
	default:
		return domain.AgentNone
	}
}
