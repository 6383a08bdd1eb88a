/*
Package wanderplan is the high-level entry point for the trip planning
assistant. It wires the conversation engine, session management, workers
and collaborators behind a small facade.

A zero-configuration Assistant runs fully offline: sessions live in
memory and every worker answers from its deterministic fallback. Plug in
a Reasoner, search providers and a Redis store for the full experience.
*/
package wanderplan

import (
	"context"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wanderplan/wanderplan/internal/config"
	"github.com/wanderplan/wanderplan/internal/engine"
	"github.com/wanderplan/wanderplan/internal/logging"
	"github.com/wanderplan/wanderplan/internal/workers"
	"github.com/wanderplan/wanderplan/pkg/adapters/memory"
	"github.com/wanderplan/wanderplan/pkg/domain"
	"github.com/wanderplan/wanderplan/pkg/observability"
	"github.com/wanderplan/wanderplan/pkg/ports"
	"github.com/wanderplan/wanderplan/pkg/session"
)

// Assistant is the assembled trip planning engine.
type Assistant struct {
	cfg        config.Config
	store      ports.SessionStore
	locker     ports.DistributedLocker
	reasoner   ports.Reasoner
	researcher ports.Researcher
	flights    ports.SearchProvider
	hotels     ports.SearchProvider
	activities ports.SearchProvider
	registerer prometheus.Registerer
	logger     *slog.Logger

	sessions *session.Manager
	engine   *engine.Engine
}

// Option configures the Assistant.
type Option func(*Assistant)

// WithConfig replaces the default configuration.
func WithConfig(cfg config.Config) Option {
	return func(a *Assistant) {
		a.cfg = cfg
	}
}

// WithStore sets the session store. Defaults to in-memory.
func WithStore(store ports.SessionStore) Option {
	return func(a *Assistant) {
		a.store = store
	}
}

// WithLocker enables distributed session locking across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(a *Assistant) {
		a.locker = locker
	}
}

// WithReasoner sets the external reasoning collaborator.
func WithReasoner(r ports.Reasoner) Option {
	return func(a *Assistant) {
		a.reasoner = r
	}
}

// WithResearcher sets the candidate enrichment collaborator.
func WithResearcher(r ports.Researcher) Option {
	return func(a *Assistant) {
		a.researcher = r
	}
}

// WithProviders sets the flight, hotel and activity search backends.
// A nil provider leaves the matching worker on its fallback generator.
func WithProviders(flights, hotels, activities ports.SearchProvider) Option {
	return func(a *Assistant) {
		a.flights = flights
		a.hotels = hotels
		a.activities = activities
	}
}

// WithMetrics registers the engine's collectors on the given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(a *Assistant) {
		a.registerer = reg
	}
}

// WithLogger sets a structured logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// New assembles an Assistant.
func New(opts ...Option) *Assistant {
	a := &Assistant{
		cfg:    config.Default(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.store == nil {
		a.store = memory.NewStore()
	}

	metrics := observability.NewNopMetrics()
	if a.registerer != nil {
		metrics = observability.NewMetrics(a.registerer)
	}

	sessionOpts := []session.Option{session.WithLogger(a.logger)}
	if a.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(a.locker))
	}
	a.sessions = session.NewManager(a.store, sessionOpts...)

	workerTimeout := a.cfg.WorkerTimeout
	searchOpts := func() []workers.SearchOption {
		return []workers.SearchOption{
			workers.WithTimeout(workerTimeout),
			workers.WithLogger(a.logger),
		}
	}
	pool := map[domain.StepKind]workers.Worker{
		domain.StepFlight:   workers.NewFlight(a.flights, searchOpts()...),
		domain.StepHotel:    workers.NewHotel(a.hotels, searchOpts()...),
		domain.StepActivity: workers.NewActivity(a.activities, searchOpts()...),
	}

	composer := workers.NewComposer(a.reasoner,
		workers.WithComposerTimeout(a.cfg.LLM.Timeout),
		workers.WithComposerLogger(a.logger),
	)

	discoveryOpts := []workers.DiscoveryOption{
		workers.WithWeights(a.cfg.Weights),
		workers.WithTopN(a.cfg.TopN),
		workers.WithDiscoveryTimeout(a.cfg.LLM.Timeout),
		workers.WithDiscoveryLogger(a.logger),
	}
	if a.researcher != nil {
		discoveryOpts = append(discoveryOpts, workers.WithResearcher(a.researcher))
	}
	discovery := workers.NewDiscovery(a.reasoner, discoveryOpts...)

	a.engine = engine.New(engine.Deps{
		Sessions:  a.sessions,
		Router:    engine.NewRouter(a.reasoner, a.cfg.UncertaintyPhrases, a.cfg.LLM.Timeout, a.logger),
		Planner:   engine.NewPlanner(a.reasoner, a.researcher, pool, composer, metrics, a.cfg.LLM.Timeout, a.logger),
		Discovery: discovery,
		Workers:   pool,
		Composer:  composer,
		Metrics:   metrics,
		Logger:    a.logger,
	})

	return a
}

// Submit processes one free-text user turn.
func (a *Assistant) Submit(ctx context.Context, sessionID, text string) (engine.TurnResult, error) {
	return a.engine.Submit(ctx, sessionID, text)
}

// SubmitSelection processes one menu token selection.
func (a *Assistant) SubmitSelection(ctx context.Context, sessionID, token string) (engine.TurnResult, error) {
	return a.engine.SubmitSelection(ctx, sessionID, token)
}

// Sessions exposes session management (listing, deletion).
func (a *Assistant) Sessions() *session.Manager {
	return a.sessions
}
