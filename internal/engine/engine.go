/*
Package engine implements the conversation orchestration core: the intent
router, plan generator/executor, validation step and the tokenized
follow-up protocol, wired together by the Engine.

Every external call enters through Engine.Submit or
Engine.SubmitSelection. The engine loads the session under its lock,
routes the turn, runs whatever the routing decided, validates the fresh
state, derives the follow-up menu and persists the session before
returning. A turn never fails hard during normal operation; collaborator
problems degrade into fallback-sourced output.
*/
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/wanderplan/wanderplan/internal/logging"
	"github.com/wanderplan/wanderplan/internal/workers"
	"github.com/wanderplan/wanderplan/pkg/domain"
	"github.com/wanderplan/wanderplan/pkg/observability"
	"github.com/wanderplan/wanderplan/pkg/session"
)

// TurnResult is what both boundary operations return to the caller.
type TurnResult struct {
	Response    string                                  `json:"response"`
	Menu        []domain.MenuEntry                      `json:"menu"`
	Itinerary   *domain.Itinerary                       `json:"itinerary,omitempty"`
	ToolResults map[domain.StepKind]domain.WorkerResult `json:"tool_results,omitempty"`
	Degraded    bool                                    `json:"degraded,omitempty"`
}

// Deps bundles the engine's collaborators. Sessions, Router, Planner,
// Discovery and Composer are required; the rest default to no-ops.
type Deps struct {
	Sessions  *session.Manager
	Router    *Router
	Planner   *Planner
	Discovery *workers.Discovery
	Workers   map[domain.StepKind]workers.Worker
	Composer  *workers.Composer
	Metrics   *observability.Metrics
	Logger    *slog.Logger
}

// Engine is the top-level orchestrator.
type Engine struct {
	sessions  *session.Manager
	router    *Router
	planner   *Planner
	discovery *workers.Discovery
	workers   map[domain.StepKind]workers.Worker
	composer  *workers.Composer
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// New creates the engine from its dependencies.
func New(deps Deps) *Engine {
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = observability.NewNopMetrics()
	}
	return &Engine{
		sessions:  deps.Sessions,
		router:    deps.Router,
		planner:   deps.Planner,
		discovery: deps.Discovery,
		workers:   deps.Workers,
		composer:  deps.Composer,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
}

// Submit processes one free-text user turn. A session is created
// transparently when the id is unknown.
func (e *Engine) Submit(ctx context.Context, sessionID, text string) (TurnResult, error) {
	start := time.Now()
	var result TurnResult
	var phase domain.Phase

	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := e.loadOrCreate(ctx, sessionID)
		if err != nil {
			return err
		}

		sess.AppendTurn(domain.RoleUser, text)

		agent := sess.ConsumeNextAgent()
		if agent == domain.AgentNone {
			agent = e.router.Route(ctx, sess)
		}
		e.logger.Debug("turn routed", "session_id", sessionID, "agent", agent)

		response := e.dispatch(ctx, sess, agent, text)
		result = e.finishTurn(ctx, sess, response)
		phase = sess.Phase
		return e.sessions.Store().Save(ctx, sess)
	})
	if err != nil {
		return TurnResult{}, err
	}

	e.metrics.ObserveTurn(string(phase), start)
	return result, nil
}

// SubmitSelection processes one menu token selection. Unknown or stale
// tokens return ErrInvalidSelection together with a result that re-shows
// the current menu; session state is unchanged except for the turn log.
func (e *Engine) SubmitSelection(ctx context.Context, sessionID, token string) (TurnResult, error) {
	start := time.Now()
	var result TurnResult
	var selectionErr error
	var phase domain.Phase

	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := e.loadOrCreate(ctx, sessionID)
		if err != nil {
			return err
		}

		sess.AppendTurn(domain.RoleUser, token)
		phase = sess.Phase

		entry, err := DecodeSelection(sess, token)
		if err != nil {
			e.metrics.ObserveSelection("invalid")
			selectionErr = err
			result = TurnResult{
				Response: invalidSelectionResponse(),
				Menu:     sess.PendingMenu,
			}
			sess.AppendTurn(domain.RoleAssistant, result.Response)
			return e.sessions.Store().Save(ctx, sess)
		}

		response, err := e.applySelection(ctx, sess, entry)
		if err != nil {
			e.metrics.ObserveSelection("invalid")
			selectionErr = err
			result = TurnResult{
				Response: invalidSelectionResponse(),
				Menu:     sess.PendingMenu,
			}
			sess.AppendTurn(domain.RoleAssistant, result.Response)
			return e.sessions.Store().Save(ctx, sess)
		}

		e.metrics.ObserveSelection("ok")
		result = e.finishTurn(ctx, sess, response)
		phase = sess.Phase
		return e.sessions.Store().Save(ctx, sess)
	})
	if err != nil {
		return TurnResult{}, err
	}

	e.metrics.ObserveTurn(string(phase), start)
	return result, selectionErr
}

// loadOrCreate fetches the session directly from the store. The caller
// already holds the per-session lock, so this must not go through the
// manager's locking entry points.
func (e *Engine) loadOrCreate(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := e.sessions.Store().Load(ctx, sessionID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	e.logger.Debug("creating new session", "session_id", sessionID)
	return domain.NewSession(sessionID), nil
}

// finishTurn runs validation, rebuilds the menu and records the assistant
// turn. Called with the session lock held.
func (e *Engine) finishTurn(ctx context.Context, sess *domain.Session, response string) TurnResult {
	assessment := Validate(sess)
	if !assessment.Coherent {
		response += degradedNote(assessment.Notes)
		if assessment.NextAgentHint != domain.AgentNone && sess.NextAgent == domain.AgentNone {
			sess.NextAgent = assessment.NextAgentHint
		}
	}

	menu := BuildMenu(sess)
	sess.PendingMenu = menu
	sess.AppendTurn(domain.RoleAssistant, response)

	return TurnResult{
		Response:    response,
		Menu:        menu,
		Itinerary:   sess.Itinerary,
		ToolResults: sess.ToolResults,
		Degraded:    assessment.Degraded,
	}
}

// dispatch hands control to the routed component and returns the response
// text for the turn.
func (e *Engine) dispatch(ctx context.Context, sess *domain.Session, agent domain.AgentKind, text string) string {
	switch agent {
	case domain.AgentDiscovery:
		return e.runDiscovery(ctx, sess)

	case domain.AgentPlanner:
		return e.runPlanner(ctx, sess, text)

	case domain.AgentFlight, domain.AgentHotel, domain.AgentActivity:
		return e.runSearchWorker(ctx, sess, stepKindFor(agent))

	case domain.AgentItinerary:
		return e.runComposer(ctx, sess)

	default:
		return clarificationResponse()
	}
}

func (e *Engine) runDiscovery(ctx context.Context, sess *domain.Session) string {
	if sess.Phase != domain.PhaseDestinationDiscovery {
		sess.EnterDiscovery()
	}

	sess.Requirements = e.discovery.ExtractRequirements(ctx, sess.Turns, sess.Requirements)
	sess.Candidates = e.discovery.Recommend(ctx, sess.Requirements)

	return formatCandidates(sess.Candidates)
}

func (e *Engine) runPlanner(ctx context.Context, sess *domain.Session, goal string) string {
	// A direct trip request carries its own constraints ("5 days in
	// Tokyo"), so extraction runs here too, not just in discovery.
	sess.Requirements = e.discovery.ExtractRequirements(ctx, sess.Turns, sess.Requirements)

	plan := e.planner.Generate(ctx, sess, goal)
	sess.Plan = plan
	e.planner.Execute(ctx, sess, plan)

	if plan.AllFailed() {
		return "I couldn't complete any of the planning steps. " +
			"Could you share a bit more detail, like your destination and travel dates?"
	}
	if sess.Itinerary != nil {
		return formatItinerary(sess.Itinerary)
	}
	return formatSummary(sess)
}

func (e *Engine) runSearchWorker(ctx context.Context, sess *domain.Session, kind domain.StepKind) string {
	worker, ok := e.workers[kind]
	if !ok {
		return clarificationResponse()
	}

	var params domain.StepParams
	fillParams(&params, sess.Requirements)

	res, err := worker.Run(ctx, params)
	if err != nil {
		var ipe *domain.InvalidParamsError
		if errors.As(err, &ipe) {
			return fmt.Sprintf("I need a bit more to search: %s.", ipe.Reason)
		}
		e.logger.Warn("worker failed", "kind", kind, "err", err)
		return clarificationResponse()
	}

	sess.RecordResult(res)
	e.metrics.ObserveWorkerRun(string(res.Kind), string(res.Source))
	return formatOffers(res)
}

func (e *Engine) runComposer(ctx context.Context, sess *domain.Session) string {
	res, err := e.composer.Compose(ctx, sess.Requirements, sess.ToolResults)
	if err != nil {
		var ipe *domain.InvalidParamsError
		if errors.As(err, &ipe) {
			return fmt.Sprintf("I need a bit more before composing an itinerary: %s.", ipe.Reason)
		}
		e.logger.Warn("itinerary composition failed", "err", err)
		return clarificationResponse()
	}

	sess.RecordResult(res)
	sess.Itinerary = res.Itinerary
	e.metrics.ObserveWorkerRun(string(res.Kind), string(res.Source))
	return formatItinerary(res.Itinerary)
}

// applySelection executes the typed action behind a decoded menu entry.
func (e *Engine) applySelection(ctx context.Context, sess *domain.Session, entry domain.MenuEntry) (string, error) {
	switch entry.Action.Type {
	case domain.ActionSelectDestination:
		idx := entry.Action.CandidateIndex
		if idx < 0 || idx >= len(sess.Candidates) {
			return "", domain.ErrInvalidSelection
		}
		chosen := sess.Candidates[idx]
		sess.CommitDestination(chosen)
		return fmt.Sprintf("%s it is! Tell me anything else about the trip, or just say \"plan it\" and I'll put a full itinerary together.", chosen.Name), nil

	case domain.ActionRefineSearch:
		sess.Candidates = nil
		return e.runDiscovery(ctx, sess), nil

	case domain.ActionRunWorker:
		if entry.Action.Worker == domain.StepItinerary {
			return e.runComposer(ctx, sess), nil
		}
		return e.runSearchWorker(ctx, sess, entry.Action.Worker), nil

	case domain.ActionPlanTrip:
		return e.runPlanner(ctx, sess, sess.LastUserText()), nil

	case domain.ActionSummary:
		return formatSummary(sess), nil

	default:
		return "", domain.ErrInvalidSelection
	}
}

func stepKindFor(agent domain.AgentKind) domain.StepKind {
	switch agent {
	case domain.AgentFlight:
		return domain.StepFlight
	case domain.AgentHotel:
		return domain.StepHotel
	case domain.AgentActivity:
		return domain.StepActivity
	default:
		return domain.StepItinerary
	}
}
