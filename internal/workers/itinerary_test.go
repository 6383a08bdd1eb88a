package workers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/wanderplan/pkg/domain"
	"github.com/wanderplan/wanderplan/pkg/ports"
)

type stubReasoner struct {
	itinerary  *domain.Itinerary
	candidates []domain.Candidate
	req        domain.Requirements
	intent     ports.Intent
	steps      []domain.PlanStep
	err        error
}

func (r *stubReasoner) ClassifyIntent(ctx context.Context, turns []domain.Turn) (ports.Intent, error) {
	return r.intent, r.err
}

func (r *stubReasoner) ExtractRequirements(ctx context.Context, turns []domain.Turn) (domain.Requirements, error) {
	return r.req, r.err
}

func (r *stubReasoner) GeneratePlan(ctx context.Context, goal string, req domain.Requirements) ([]domain.PlanStep, error) {
	return r.steps, r.err
}

func (r *stubReasoner) GenerateCandidates(ctx context.Context, req domain.Requirements) ([]domain.Candidate, error) {
	return r.candidates, r.err
}

func (r *stubReasoner) ComposeItinerary(ctx context.Context, req domain.Requirements, results map[domain.StepKind]domain.WorkerResult) (*domain.Itinerary, error) {
	return r.itinerary, r.err
}

func TestComposerRequiresDestination(t *testing.T) {
	composer := NewComposer(nil)

	_, err := composer.Compose(context.Background(), domain.Requirements{}, nil)
	assert.True(t, domain.IsInvalidParams(err))
}

func TestComposerFallbackShape(t *testing.T) {
	composer := NewComposer(nil)

	req := domain.Requirements{
		Destination:  "Lisbon",
		StartDate:    "2026-09-10",
		DurationDays: 3,
	}
	results := map[domain.StepKind]domain.WorkerResult{
		domain.StepActivity: {
			Kind:   domain.StepActivity,
			Items:  fallbackActivities(domain.StepParams{Destination: "Lisbon", Interests: []string{"food"}}),
			Source: domain.SourceFallback,
		},
	}

	res, err := composer.Compose(context.Background(), req, results)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceFallback, res.Source)
	require.NotNil(t, res.Itinerary)
	itin := res.Itinerary

	assert.Equal(t, 3, itin.DayCount)
	require.Len(t, itin.Days, 3)
	assert.Equal(t, "2026-09-10", itin.Days[0].Date)
	assert.Equal(t, "2026-09-12", itin.Days[2].Date)

	// Gathered activities land in the schedule before placeholders.
	assert.Equal(t, "Street Food Walking Tour", itin.Days[0].Items[0].Name)
	assert.Greater(t, itin.EstimatedTotalCost, 0.0)

	var daySum float64
	for _, day := range itin.Days {
		daySum += day.EstimatedCost
	}
	assert.InDelta(t, itin.EstimatedTotalCost, daySum, 1e-9)
}

func TestComposerUsesReasoner(t *testing.T) {
	composed := &domain.Itinerary{
		Destination: "Lisbon",
		DayCount:    2,
		Days:        []domain.DayPlan{{Day: 1}, {Day: 2}},
	}
	composer := NewComposer(&stubReasoner{itinerary: composed})

	res, err := composer.Compose(context.Background(), domain.Requirements{Destination: "Lisbon"}, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceProvider, res.Source)
	assert.Equal(t, composed, res.Itinerary)
}

func TestComposerFallsBackOnReasonerError(t *testing.T) {
	composer := NewComposer(&stubReasoner{err: errors.New("llm down")})

	res, err := composer.Compose(context.Background(), domain.Requirements{Destination: "Lisbon"}, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceFallback, res.Source)
	require.NotNil(t, res.Itinerary)
	assert.Equal(t, 7, res.Itinerary.DayCount) // default duration
}
