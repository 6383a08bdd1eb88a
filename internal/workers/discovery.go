package workers

import (
	"context"
	"strings"
	"time"

	"log/slog"

	"github.com/wanderplan/wanderplan/internal/config"
	"github.com/wanderplan/wanderplan/internal/logging"
	"github.com/wanderplan/wanderplan/pkg/domain"
	"github.com/wanderplan/wanderplan/pkg/ports"
)

// Discovery runs the destination discovery flow: extract requirements from
// the conversation, generate candidate destinations, optionally enrich them
// with research, and rank them.
type Discovery struct {
	reasoner   ports.Reasoner
	researcher ports.Researcher
	weights    config.Weights
	topN       int
	timeout    time.Duration
	logger     *slog.Logger
}

// DiscoveryOption configures Discovery.
type DiscoveryOption func(*Discovery)

// WithResearcher enables candidate enrichment.
func WithResearcher(r ports.Researcher) DiscoveryOption {
	return func(d *Discovery) {
		d.researcher = r
	}
}

// WithWeights overrides the scoring weights.
func WithWeights(w config.Weights) DiscoveryOption {
	return func(d *Discovery) {
		d.weights = w
	}
}

// WithTopN overrides how many candidates are returned.
func WithTopN(n int) DiscoveryOption {
	return func(d *Discovery) {
		if n > 0 {
			d.topN = n
		}
	}
}

// WithDiscoveryTimeout bounds each collaborator call.
func WithDiscoveryTimeout(t time.Duration) DiscoveryOption {
	return func(d *Discovery) {
		d.timeout = t
	}
}

// WithDiscoveryLogger configures a logger.
func WithDiscoveryLogger(logger *slog.Logger) DiscoveryOption {
	return func(d *Discovery) {
		d.logger = logger
	}
}

// NewDiscovery creates the discovery worker. A nil reasoner is allowed; the
// worker then extracts heuristically and recommends from the builtin pool.
func NewDiscovery(reasoner ports.Reasoner, opts ...DiscoveryOption) *Discovery {
	d := &Discovery{
		reasoner: reasoner,
		weights:  config.DefaultWeights(),
		topN:     5,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Discovery) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout > 0 {
		return context.WithTimeout(ctx, d.timeout)
	}
	return ctx, func() {}
}

// ExtractRequirements pulls travel requirements from the conversation and
// merges them into the session's existing requirements. Unset fields get
// defaults: mid-range budget, a party of two adults.
func (d *Discovery) ExtractRequirements(ctx context.Context, turns []domain.Turn, current domain.Requirements) domain.Requirements {
	req := current

	if d.reasoner != nil {
		callCtx, cancel := d.callCtx(ctx)
		extracted, err := d.reasoner.ExtractRequirements(callCtx, turns)
		cancel()
		if err != nil {
			d.logger.Warn("requirement extraction failed, using heuristics", "err", err)
		} else {
			req.Merge(extracted)
		}
	}

	applyRequirementDefaults(&req)
	return req
}

// applyRequirementDefaults fills the fields extraction left empty.
func applyRequirementDefaults(req *domain.Requirements) {
	if req.BudgetTier == "" {
		req.BudgetTier = domain.BudgetMid
	}
	if req.Party.Adults == 0 {
		req.Party.Adults = 2
	}
	if req.DurationDays == 0 {
		req.DurationDays = 7
	}
}

// Recommend produces the ranked candidate list for the requirements.
// Collaborator failures degrade to the builtin pool; research failures skip
// enrichment for that candidate only.
func (d *Discovery) Recommend(ctx context.Context, req domain.Requirements) []domain.Candidate {
	var candidates []domain.Candidate

	if d.reasoner != nil {
		callCtx, cancel := d.callCtx(ctx)
		generated, err := d.reasoner.GenerateCandidates(callCtx, req)
		cancel()
		if err != nil {
			d.logger.Warn("candidate generation failed, using builtin pool", "err", err)
		} else {
			candidates = generated
		}
	}

	if len(candidates) == 0 {
		candidates = builtinCandidates(req)
	}

	if d.researcher != nil {
		for i := range candidates {
			callCtx, cancel := d.callCtx(ctx)
			note, err := d.researcher.Enrich(callCtx, candidates[i].Name, req)
			cancel()
			if err != nil {
				d.logger.Warn("candidate enrichment failed",
					"candidate", candidates[i].Name,
					"err", err,
				)
				continue
			}
			candidates[i].Enrichment = note
		}
	}

	return RankCandidates(candidates, d.weights, d.topN)
}

// builtinCandidates is the offline destination pool. Region preference
// filters it when any entry matches; otherwise the full pool is used.
func builtinCandidates(req domain.Requirements) []domain.Candidate {
	all := []domain.Candidate{
		{
			Name:      "San Diego",
			Region:    "North America",
			SubScores: domain.SubScores{Weather: 95, Family: 100, Safety: 90, Budget: 55, Interest: 75},
			Rationale: "Mild sunny weather year-round, beaches and kid-friendly attractions",
		},
		{
			Name:      "Lisbon",
			Region:    "Europe",
			SubScores: domain.SubScores{Weather: 85, Family: 75, Safety: 85, Budget: 80, Interest: 85},
			Rationale: "Affordable European capital with food, culture and coastline",
		},
		{
			Name:      "Tokyo",
			Region:    "Asia",
			SubScores: domain.SubScores{Weather: 70, Family: 85, Safety: 100, Budget: 50, Interest: 95},
			Rationale: "Exceptionally safe, rich culture and food scene",
		},
		{
			Name:      "Costa Rica",
			Region:    "Central America",
			SubScores: domain.SubScores{Weather: 80, Family: 80, Safety: 70, Budget: 70, Interest: 90},
			Rationale: "Rainforests, wildlife and adventure activities",
		},
		{
			Name:      "Barcelona",
			Region:    "Europe",
			SubScores: domain.SubScores{Weather: 85, Family: 80, Safety: 75, Budget: 65, Interest: 90},
			Rationale: "Beaches plus architecture, walkable with great food",
		},
		{
			Name:      "Vancouver",
			Region:    "North America",
			SubScores: domain.SubScores{Weather: 65, Family: 90, Safety: 90, Budget: 50, Interest: 80},
			Rationale: "Mountains and ocean, clean and easy to navigate with kids",
		},
		{
			Name:      "Bangkok",
			Region:    "Asia",
			SubScores: domain.SubScores{Weather: 60, Family: 65, Safety: 65, Budget: 95, Interest: 85},
			Rationale: "Street food, temples and unbeatable value",
		},
	}

	if req.Region == "" {
		return all
	}

	var filtered []domain.Candidate
	for _, c := range all {
		if strings.EqualFold(c.Region, req.Region) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return all
	}
	return filtered
}
