package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanderplan/wanderplan/pkg/domain"
)

func TestValidateCoherentSession(t *testing.T) {
	sess := domain.NewSession("s1")
	sess.Requirements.DurationDays = 3
	sess.Itinerary = &domain.Itinerary{DayCount: 3}
	sess.Plan = &domain.Plan{Steps: []domain.PlanStep{
		{Kind: domain.StepHotel, Status: domain.StepDone},
		{Kind: domain.StepItinerary, Status: domain.StepDone},
	}}

	a := Validate(sess)
	assert.True(t, a.Coherent)
	assert.False(t, a.Degraded)
	assert.Empty(t, a.Notes)
}

func TestValidateDayCountMismatch(t *testing.T) {
	sess := domain.NewSession("s1")
	sess.Requirements.DurationDays = 7
	sess.Itinerary = &domain.Itinerary{DayCount: 3}

	a := Validate(sess)
	assert.False(t, a.Coherent)
	assert.Equal(t, domain.AgentItinerary, a.NextAgentHint)
	assert.NotEmpty(t, a.Notes)
}

func TestValidateNonTerminalStep(t *testing.T) {
	sess := domain.NewSession("s1")
	sess.Plan = &domain.Plan{Steps: []domain.PlanStep{
		{Kind: domain.StepHotel, Status: domain.StepPending},
	}}

	a := Validate(sess)
	assert.False(t, a.Coherent)
}

func TestValidateAllFailedIsDegraded(t *testing.T) {
	sess := domain.NewSession("s1")
	sess.Plan = &domain.Plan{Steps: []domain.PlanStep{
		{Kind: domain.StepFlight, Status: domain.StepFailed},
		{Kind: domain.StepHotel, Status: domain.StepFailed},
	}}

	a := Validate(sess)
	assert.True(t, a.Degraded)
}
