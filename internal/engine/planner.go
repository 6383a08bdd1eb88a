package engine

import (
	"context"
	"time"

	"log/slog"

	"github.com/wanderplan/wanderplan/internal/logging"
	"github.com/wanderplan/wanderplan/internal/workers"
	"github.com/wanderplan/wanderplan/pkg/domain"
	"github.com/wanderplan/wanderplan/pkg/observability"
	"github.com/wanderplan/wanderplan/pkg/ports"
)

const maxPlanSteps = 6

// Planner turns a trip goal into an ordered step list and executes it
// against the specialized workers.
type Planner struct {
	reasoner   ports.Reasoner
	researcher ports.Researcher
	workers    map[domain.StepKind]workers.Worker
	composer   *workers.Composer
	metrics    *observability.Metrics
	timeout    time.Duration
	logger     *slog.Logger
}

// NewPlanner creates the plan generator/executor.
func NewPlanner(reasoner ports.Reasoner, researcher ports.Researcher, pool map[domain.StepKind]workers.Worker,
	composer *workers.Composer, metrics *observability.Metrics, timeout time.Duration, logger *slog.Logger,
) *Planner {
	if logger == nil {
		logger = logging.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNopMetrics()
	}
	return &Planner{
		reasoner:   reasoner,
		researcher: researcher,
		workers:    pool,
		composer:   composer,
		metrics:    metrics,
		timeout:    timeout,
		logger:     logger,
	}
}

// Generate produces a bounded plan for the goal. Steps with kinds outside
// the vocabulary are dropped with a warning; a failed or absent reasoner
// yields the heuristic plan derived from the session requirements.
func (p *Planner) Generate(ctx context.Context, sess *domain.Session, goal string) *domain.Plan {
	var steps []domain.PlanStep

	if p.reasoner != nil {
		callCtx := ctx
		if p.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}

		generated, err := p.reasoner.GeneratePlan(callCtx, goal, sess.Requirements)
		if err != nil {
			p.logger.Warn("plan generation failed, using heuristic plan", "err", err)
		} else {
			steps = generated
		}
	}

	if len(steps) == 0 {
		steps = heuristicSteps(sess.Requirements)
	}

	plan := &domain.Plan{}
	for _, step := range steps {
		if !domain.KnownStepKind(step.Kind) {
			p.logger.Warn("dropping plan step with unknown kind", "kind", step.Kind)
			continue
		}
		step.Status = domain.StepPending
		fillParams(&step.Params, sess.Requirements)
		plan.Steps = append(plan.Steps, step)
		if len(plan.Steps) == maxPlanSteps {
			break
		}
	}

	if len(plan.Steps) == 0 {
		for _, step := range heuristicSteps(sess.Requirements) {
			fillParams(&step.Params, sess.Requirements)
			plan.Steps = append(plan.Steps, step)
		}
	}

	return plan
}

// heuristicSteps builds the offline plan: search steps for whatever the
// requirements can parameterize, itinerary composition always last.
func heuristicSteps(req domain.Requirements) []domain.PlanStep {
	var steps []domain.PlanStep

	if req.HasDestination() {
		if req.Origin != "" {
			steps = append(steps, domain.PlanStep{Kind: domain.StepFlight, Status: domain.StepPending})
		}
		steps = append(steps, domain.PlanStep{Kind: domain.StepHotel, Status: domain.StepPending})
		if len(req.Interests) > 0 {
			steps = append(steps, domain.PlanStep{Kind: domain.StepActivity, Status: domain.StepPending})
		}
	}
	steps = append(steps, domain.PlanStep{Kind: domain.StepItinerary, Status: domain.StepPending})
	return steps
}

// fillParams completes step parameters from the session requirements
// without overriding what the generator already set.
func fillParams(params *domain.StepParams, req domain.Requirements) {
	if params.Origin == "" {
		params.Origin = req.Origin
	}
	if params.Destination == "" {
		params.Destination = req.Destination
	}
	if params.StartDate == "" {
		params.StartDate = req.StartDate
	}
	if params.EndDate == "" {
		params.EndDate = req.EndDate
	}
	if params.DurationDays == 0 {
		params.DurationDays = req.DurationDays
	}
	if params.Guests == 0 {
		params.Guests = req.Guests()
	}
	if params.BudgetTier == "" {
		params.BudgetTier = req.BudgetTier
	}
	if len(params.Interests) == 0 {
		params.Interests = req.Interests
	}
}

// Execute runs the plan's pending steps strictly in order, accumulating
// results into the session. A failed step records its failure and the run
// continues; it never aborts the plan.
func (p *Planner) Execute(ctx context.Context, sess *domain.Session, plan *domain.Plan) {
	for i := range plan.Steps {
		step := &plan.Steps[i]
		if step.Status != domain.StepPending {
			continue
		}
		plan.Cursor = i

		res, err := p.runStep(ctx, sess, step)
		if err != nil {
			p.logger.Warn("plan step failed",
				"kind", step.Kind,
				"err", err,
			)
			step.Status = domain.StepFailed
			continue
		}

		step.Status = domain.StepDone
		sess.RecordResult(res)
		p.metrics.ObserveWorkerRun(string(res.Kind), string(res.Source))

		if step.Kind == domain.StepItinerary && res.Itinerary != nil {
			sess.Itinerary = res.Itinerary
		}
	}
}

func (p *Planner) runStep(ctx context.Context, sess *domain.Session, step *domain.PlanStep) (domain.WorkerResult, error) {
	switch step.Kind {
	case domain.StepItinerary:
		return p.composer.Compose(ctx, sess.Requirements, sess.ToolResults)
	case domain.StepResearch:
		return p.runResearch(ctx, sess, step.Params)
	default:
		worker, ok := p.workers[step.Kind]
		if !ok {
			return domain.WorkerResult{}, &domain.InvalidParamsError{Field: "kind", Reason: "no worker for step kind"}
		}
		return worker.Run(ctx, step.Params)
	}
}

// runResearch gathers free-form facts about the destination. Without a
// researcher it produces an empty fallback note rather than failing.
func (p *Planner) runResearch(ctx context.Context, sess *domain.Session, params domain.StepParams) (domain.WorkerResult, error) {
	if params.Destination == "" {
		return domain.WorkerResult{}, &domain.InvalidParamsError{Field: "destination", Reason: "destination is required"}
	}

	if p.researcher != nil {
		callCtx := ctx
		if p.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}
		note, err := p.researcher.Enrich(callCtx, params.Destination, sess.Requirements)
		if err == nil && note != "" {
			return domain.WorkerResult{
				Kind:   domain.StepResearch,
				Items:  []domain.Offer{{ID: "RS1", Name: params.Destination, Description: note}},
				Source: domain.SourceProvider,
			}, nil
		}
		if err != nil {
			p.logger.Warn("research failed, using fallback", "err", err)
		}
	}

	return domain.WorkerResult{
		Kind: domain.StepResearch,
		Items: []domain.Offer{{
			ID:          "RS1",
			Name:        params.Destination,
			Description: "No research available; proceeding with known requirements.",
		}},
		Source: domain.SourceFallback,
	}, nil
}
