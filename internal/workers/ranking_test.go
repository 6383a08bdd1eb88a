package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/wanderplan/internal/config"
	"github.com/wanderplan/wanderplan/pkg/domain"
)

func TestRankCandidatesWeightNormalization(t *testing.T) {
	// Equal weights of any magnitude must behave like 0.2 each.
	weights := config.Weights{Weather: 0.5, Family: 0.5, Safety: 0.5, Budget: 0.5, Interest: 0.5}

	candidates := []domain.Candidate{
		{Name: "Even", SubScores: domain.SubScores{Weather: 50, Family: 50, Safety: 50, Budget: 50, Interest: 50}},
	}

	ranked := RankCandidates(candidates, weights, 5)
	require.Len(t, ranked, 1)
	assert.InDelta(t, 50.0, ranked[0].FinalScore, 1e-9)
}

func TestRankCandidatesOrdering(t *testing.T) {
	weights := config.DefaultWeights()

	candidates := []domain.Candidate{
		{Name: "Low", SubScores: domain.SubScores{Weather: 10, Family: 10, Safety: 10, Budget: 10, Interest: 10}},
		{Name: "High", SubScores: domain.SubScores{Weather: 90, Family: 90, Safety: 90, Budget: 90, Interest: 90}},
		{Name: "Mid", SubScores: domain.SubScores{Weather: 50, Family: 50, Safety: 50, Budget: 50, Interest: 50}},
	}

	ranked := RankCandidates(candidates, weights, 5)
	require.Len(t, ranked, 3)
	assert.Equal(t, "High", ranked[0].Name)
	assert.Equal(t, "Mid", ranked[1].Name)
	assert.Equal(t, "Low", ranked[2].Name)
}

func TestRankCandidatesTieBreaks(t *testing.T) {
	weights := config.DefaultWeights()

	// Same final score; safety then name decide.
	candidates := []domain.Candidate{
		{Name: "Zurich", SubScores: domain.SubScores{Weather: 50, Family: 50, Safety: 50, Budget: 50, Interest: 50}},
		{Name: "Athens", SubScores: domain.SubScores{Weather: 50, Family: 50, Safety: 50, Budget: 50, Interest: 50}},
		{Name: "Oslo", SubScores: domain.SubScores{Weather: 50, Family: 50, Safety: 70, Budget: 40, Interest: 40}},
	}
	// Oslo: 0.25*50 + 0.2*50 + 0.2*70 + 0.15*40 + 0.2*40 = 12.5+10+14+6+8 = 50.5
	// Adjust so all tie exactly at 50.
	candidates[2].SubScores = domain.SubScores{Weather: 50, Family: 50, Safety: 70, Budget: 50, Interest: 30}

	ranked := RankCandidates(candidates, weights, 5)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Oslo", ranked[0].Name, "higher safety wins the tie")
	assert.Equal(t, "Athens", ranked[1].Name, "names break remaining ties ascending")
	assert.Equal(t, "Zurich", ranked[2].Name)
}

func TestRankCandidatesDeterministic(t *testing.T) {
	weights := config.DefaultWeights()
	candidates := builtinCandidates(domain.Requirements{})

	first := RankCandidates(candidates, weights, 5)
	second := RankCandidates(candidates, weights, 5)
	assert.Equal(t, first, second)
	assert.Len(t, first, 5)
}

func TestRankCandidatesClampsScores(t *testing.T) {
	weights := config.DefaultWeights()
	candidates := []domain.Candidate{
		{Name: "Wild", SubScores: domain.SubScores{Weather: 500, Family: -10, Safety: 100, Budget: 0, Interest: 50}},
	}

	ranked := RankCandidates(candidates, weights, 5)
	require.Len(t, ranked, 1)
	assert.Equal(t, 100.0, ranked[0].SubScores.Weather)
	assert.Equal(t, 0.0, ranked[0].SubScores.Family)
	assert.LessOrEqual(t, ranked[0].FinalScore, 100.0)
}
