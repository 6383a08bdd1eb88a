package workers

import (
	"math"
	"sort"

	"github.com/wanderplan/wanderplan/internal/config"
	"github.com/wanderplan/wanderplan/pkg/domain"
)

// clampScore bounds a sub-score to [0, 100].
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// RankCandidates scores each candidate as the weighted combination of its
// sub-scores and returns the top n, best first. Weights are normalized by
// their sum so any positive weighting is accepted. Ties break by safety
// sub-score descending, then by name ascending, so the ordering is stable
// across runs.
func RankCandidates(candidates []domain.Candidate, weights config.Weights, n int) []domain.Candidate {
	norm := weights.Normalized()

	ranked := make([]domain.Candidate, len(candidates))
	copy(ranked, candidates)

	for i := range ranked {
		s := &ranked[i].SubScores
		s.Weather = clampScore(s.Weather)
		s.Family = clampScore(s.Family)
		s.Safety = clampScore(s.Safety)
		s.Budget = clampScore(s.Budget)
		s.Interest = clampScore(s.Interest)

		score := norm.Weather*s.Weather +
			norm.Family*s.Family +
			norm.Safety*s.Safety +
			norm.Budget*s.Budget +
			norm.Interest*s.Interest
		ranked[i].FinalScore = math.Round(score*100) / 100
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		if ranked[i].SubScores.Safety != ranked[j].SubScores.Safety {
			return ranked[i].SubScores.Safety > ranked[j].SubScores.Safety
		}
		return ranked[i].Name < ranked[j].Name
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
