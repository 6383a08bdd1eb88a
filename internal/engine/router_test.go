package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanderplan/wanderplan/internal/config"
	"github.com/wanderplan/wanderplan/pkg/domain"
	"github.com/wanderplan/wanderplan/pkg/ports"
)

func newTestRouter(classifier ports.Reasoner) *Router {
	return NewRouter(classifier, config.DefaultUncertaintyPhrases(), 0, nil)
}

func TestRouterDiscoveryPhaseContinues(t *testing.T) {
	r := newTestRouter(nil)

	sess := domain.NewSession("s1")
	sess.Phase = domain.PhaseDestinationDiscovery
	sess.AppendTurn(domain.RoleUser, "book me a flight") // phase wins regardless of text

	assert.Equal(t, domain.AgentDiscovery, r.Route(context.Background(), sess))
}

func TestRouterUncertaintyEntersDiscovery(t *testing.T) {
	r := newTestRouter(nil)

	sess := domain.NewSession("s1")
	sess.AppendTurn(domain.RoleUser, "I really DON'T KNOW WHERE to go this summer")

	assert.Equal(t, domain.AgentDiscovery, r.Route(context.Background(), sess))
	assert.Equal(t, domain.PhaseDestinationDiscovery, sess.Phase)
	assert.Nil(t, sess.Plan)
}

func TestRouterKnownDestinationOverridesUncertainty(t *testing.T) {
	r := newTestRouter(nil)

	sess := domain.NewSession("s1")
	sess.Requirements.Destination = "Tokyo"
	sess.AppendTurn(domain.RoleUser, "where should i go for dinner?")

	assert.Equal(t, domain.AgentNone, r.Route(context.Background(), sess))
	assert.Equal(t, domain.PhaseNormal, sess.Phase)
}

func TestRouterTripProposalGoesToPlanner(t *testing.T) {
	r := newTestRouter(nil)

	sess := domain.NewSession("s1")
	sess.Requirements.Destination = "Tokyo"
	sess.AppendTurn(domain.RoleUser, "ok, plan the whole thing for me")

	assert.Equal(t, domain.AgentPlanner, r.Route(context.Background(), sess))
}

func TestRouterSmallTalkDoesNotTriggerPlanning(t *testing.T) {
	r := newTestRouter(nil)

	sess := domain.NewSession("s1")
	sess.Requirements.Destination = "Tokyo"
	sess.AppendTurn(domain.RoleUser, "thanks!")

	assert.Equal(t, domain.AgentNone, r.Route(context.Background(), sess))
	assert.Nil(t, sess.Plan)
}

func TestRouterDestinationWithPlanDelegatesToClassifier(t *testing.T) {
	r := newTestRouter(&fakeReasoner{intent: ports.IntentActivity})

	sess := domain.NewSession("s1")
	sess.Requirements.Destination = "Tokyo"
	sess.Plan = &domain.Plan{Steps: []domain.PlanStep{{Kind: domain.StepHotel, Status: domain.StepDone}}}
	sess.AppendTurn(domain.RoleUser, "what can we do there?")

	assert.Equal(t, domain.AgentActivity, r.Route(context.Background(), sess))
}

func TestRouterClassifierFailureDefaultsToNone(t *testing.T) {
	r := newTestRouter(&fakeReasoner{err: errors.New("llm down")})

	sess := domain.NewSession("s1")
	sess.AppendTurn(domain.RoleUser, "do something")

	assert.Equal(t, domain.AgentNone, r.Route(context.Background(), sess))
}

func TestRouterUnknownIntentDefaultsToNone(t *testing.T) {
	r := newTestRouter(&fakeReasoner{intent: ports.Intent("teleportation")})

	sess := domain.NewSession("s1")
	sess.AppendTurn(domain.RoleUser, "do something")

	assert.Equal(t, domain.AgentNone, r.Route(context.Background(), sess))
}

func TestRouterNeverMutatesRequirementsOrPlan(t *testing.T) {
	r := newTestRouter(&fakeReasoner{intent: ports.IntentFlight})

	sess := domain.NewSession("s1")
	sess.Requirements.Destination = "Tokyo"
	plan := &domain.Plan{Steps: []domain.PlanStep{{Kind: domain.StepHotel, Status: domain.StepDone}}}
	sess.Plan = plan
	sess.AppendTurn(domain.RoleUser, "flights please")

	before := sess.Requirements
	r.Route(context.Background(), sess)

	assert.Equal(t, before, sess.Requirements)
	assert.Same(t, plan, sess.Plan)
}
