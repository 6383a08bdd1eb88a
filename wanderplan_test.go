package wanderplan_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/wanderplan"
	"github.com/wanderplan/wanderplan/pkg/domain"
)

func TestAssistantOfflineConversation(t *testing.T) {
	assistant := wanderplan.New()
	ctx := context.Background()

	// Discovery entry.
	res, err := assistant.Submit(ctx, "trip-1", "I don't know where to go, 7 days, family with 2 kids")
	require.NoError(t, err)
	require.NotEmpty(t, res.Menu)
	assert.Equal(t, "D1", res.Menu[0].Token)
	assert.Equal(t, domain.RefineToken, res.Menu[len(res.Menu)-1].Token)

	// Destination selection.
	res, err = assistant.SubmitSelection(ctx, "trip-1", "D1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Response)

	// Full planning pass.
	res, err = assistant.Submit(ctx, "trip-1", "great, plan the trip")
	require.NoError(t, err)
	require.NotNil(t, res.Itinerary)
	assert.Equal(t, 7, res.Itinerary.DayCount)

	ids, err := assistant.Sessions().List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "trip-1")
}

func TestAssistantWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	assistant := wanderplan.New(wanderplan.WithMetrics(reg))

	_, err := assistant.Submit(context.Background(), "trip-1", "where should i go?")
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() == "wanderplan_turns_total" {
			found = true
		}
	}
	assert.True(t, found, "turn counter registered and populated")
}
