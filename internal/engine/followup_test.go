package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/wanderplan/pkg/domain"
)

func TestBuildMenuDiscovery(t *testing.T) {
	sess := domain.NewSession("s1")
	sess.Phase = domain.PhaseDestinationDiscovery
	sess.Candidates = []domain.Candidate{
		{Name: "Lisbon"},
		{Name: "Tokyo"},
		{Name: "Barcelona"},
	}

	menu := BuildMenu(sess)
	require.Len(t, menu, 4)

	assert.Equal(t, "D1", menu[0].Token)
	assert.Equal(t, domain.ActionSelectDestination, menu[0].Action.Type)
	assert.Equal(t, 0, menu[0].Action.CandidateIndex)
	assert.Equal(t, "D3", menu[2].Token)
	assert.Equal(t, 2, menu[2].Action.CandidateIndex)

	last := menu[len(menu)-1]
	assert.Equal(t, domain.RefineToken, last.Token)
	assert.Equal(t, domain.ActionRefineSearch, last.Action.Type)
}

func TestBuildMenuNormalFullSlate(t *testing.T) {
	sess := domain.NewSession("s1")
	sess.Requirements.Destination = "Lisbon"

	menu := BuildMenu(sess)
	require.Len(t, menu, 5)

	// Fixed priority order: flights, hotels, activities, itinerary, summary.
	assert.Equal(t, domain.StepFlight, menu[0].Action.Worker)
	assert.Equal(t, domain.StepHotel, menu[1].Action.Worker)
	assert.Equal(t, domain.StepActivity, menu[2].Action.Worker)
	assert.Equal(t, domain.StepItinerary, menu[3].Action.Worker)
	assert.Equal(t, domain.ActionSummary, menu[4].Action.Type)

	for i, entry := range menu {
		assert.Equal(t, fmt.Sprintf("A%d", i+1), entry.Token)
	}
}

func TestBuildMenuSkipsSatisfiedSteps(t *testing.T) {
	sess := domain.NewSession("s1")
	sess.Requirements.Destination = "Lisbon"
	sess.RecordResult(domain.WorkerResult{Kind: domain.StepFlight, Source: domain.SourceFallback})
	sess.RecordResult(domain.WorkerResult{Kind: domain.StepHotel, Source: domain.SourceFallback})

	menu := BuildMenu(sess)
	for _, entry := range menu {
		assert.NotEqual(t, domain.StepFlight, entry.Action.Worker)
		assert.NotEqual(t, domain.StepHotel, entry.Action.Worker)
	}

	// Tokens renumber from A1 on every menu.
	assert.Equal(t, "A1", menu[0].Token)
	assert.Equal(t, domain.StepActivity, menu[0].Action.Worker)
}

func TestBuildMenuItineraryRefinementOnceComposed(t *testing.T) {
	sess := domain.NewSession("s1")
	sess.Requirements.Destination = "Lisbon"
	sess.Itinerary = &domain.Itinerary{Destination: "Lisbon", DayCount: 3}

	menu := BuildMenu(sess)

	var foundRefine bool
	for _, entry := range menu {
		if entry.Action.Type == domain.ActionPlanTrip {
			foundRefine = true
		}
		assert.NotEqual(t, domain.StepItinerary, entry.Action.Worker)
	}
	assert.True(t, foundRefine)
}

func TestBuildMenuNoDestination(t *testing.T) {
	sess := domain.NewSession("s1")

	menu := BuildMenu(sess)
	require.Len(t, menu, 1)
	assert.Equal(t, domain.ActionSummary, menu[0].Action.Type)
}

func TestDecodeSelectionUnknownToken(t *testing.T) {
	sess := domain.NewSession("s1")
	sess.PendingMenu = []domain.MenuEntry{{Token: "A1", Action: domain.Action{Type: domain.ActionSummary}}}

	_, err := DecodeSelection(sess, "Z9")
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)

	entry, err := DecodeSelection(sess, "A1")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionSummary, entry.Action.Type)
}
