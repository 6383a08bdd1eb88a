package workers

import (
	"context"
	"time"

	"log/slog"

	"github.com/wanderplan/wanderplan/internal/logging"
	"github.com/wanderplan/wanderplan/pkg/domain"
	"github.com/wanderplan/wanderplan/pkg/ports"
)

// searchWorker is the shared shape of the flight, hotel and activity
// workers: validate params, try the provider, fall back on any failure.
type searchWorker struct {
	kind     domain.StepKind
	provider ports.SearchProvider
	fallback func(domain.StepParams) []domain.Offer
	validate func(domain.StepParams) error
	timeout  time.Duration
	logger   *slog.Logger
}

// SearchOption configures a search worker.
type SearchOption func(*searchWorker)

// WithTimeout bounds each provider call. Zero means no bound.
func WithTimeout(d time.Duration) SearchOption {
	return func(w *searchWorker) {
		w.timeout = d
	}
}

// WithLogger configures a logger for the worker.
func WithLogger(logger *slog.Logger) SearchOption {
	return func(w *searchWorker) {
		w.logger = logger
	}
}

func newSearchWorker(kind domain.StepKind, provider ports.SearchProvider,
	fallback func(domain.StepParams) []domain.Offer,
	validate func(domain.StepParams) error,
	opts ...SearchOption,
) *searchWorker {
	w := &searchWorker{
		kind:     kind,
		provider: provider,
		fallback: fallback,
		validate: validate,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *searchWorker) Kind() domain.StepKind {
	return w.kind
}

func (w *searchWorker) Run(ctx context.Context, params domain.StepParams) (domain.WorkerResult, error) {
	if err := w.validate(params); err != nil {
		return domain.WorkerResult{}, err
	}

	if w.provider != nil {
		callCtx := ctx
		if w.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, w.timeout)
			defer cancel()
		}

		offers, err := w.provider.Search(callCtx, params)
		if err == nil && len(offers) > 0 {
			return domain.WorkerResult{
				Kind:   w.kind,
				Items:  offers,
				Source: domain.SourceProvider,
			}, nil
		}
		if err != nil {
			w.logger.Warn("search provider failed, using fallback",
				"kind", w.kind,
				"err", err,
			)
		}
	}

	return domain.WorkerResult{
		Kind:   w.kind,
		Items:  w.fallback(params),
		Source: domain.SourceFallback,
	}, nil
}

func requireDestination(params domain.StepParams) error {
	if params.Destination == "" {
		return &domain.InvalidParamsError{Field: "destination", Reason: "destination is required"}
	}
	return nil
}

// NewFlight creates the flight search worker. It requires both origin and
// destination.
func NewFlight(provider ports.SearchProvider, opts ...SearchOption) Worker {
	return newSearchWorker(domain.StepFlight, provider, fallbackFlights, func(params domain.StepParams) error {
		if err := requireDestination(params); err != nil {
			return err
		}
		if params.Origin == "" {
			return &domain.InvalidParamsError{Field: "origin", Reason: "origin is required for flight search"}
		}
		return nil
	}, opts...)
}

// NewHotel creates the hotel search worker.
func NewHotel(provider ports.SearchProvider, opts ...SearchOption) Worker {
	return newSearchWorker(domain.StepHotel, provider, fallbackHotels, requireDestination, opts...)
}

// NewActivity creates the activity search worker.
func NewActivity(provider ports.SearchProvider, opts ...SearchOption) Worker {
	return newSearchWorker(domain.StepActivity, provider, fallbackActivities, requireDestination, opts...)
}
