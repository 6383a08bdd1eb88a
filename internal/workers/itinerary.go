package workers

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/wanderplan/wanderplan/internal/logging"
	"github.com/wanderplan/wanderplan/pkg/domain"
	"github.com/wanderplan/wanderplan/pkg/ports"
)

// Composer builds day-by-day itineraries from accumulated worker results.
// The reasoner does the composition when available; otherwise a
// deterministic schedule is generated from the gathered offers.
type Composer struct {
	reasoner ports.Reasoner
	timeout  time.Duration
	logger   *slog.Logger
}

// ComposerOption configures the Composer.
type ComposerOption func(*Composer)

// WithComposerTimeout bounds each reasoner call.
func WithComposerTimeout(d time.Duration) ComposerOption {
	return func(c *Composer) {
		c.timeout = d
	}
}

// WithComposerLogger configures a logger.
func WithComposerLogger(logger *slog.Logger) ComposerOption {
	return func(c *Composer) {
		c.logger = logger
	}
}

// NewComposer creates an itinerary composer. A nil reasoner is allowed; the
// composer then always uses the deterministic fallback.
func NewComposer(reasoner ports.Reasoner, opts ...ComposerOption) *Composer {
	c := &Composer{
		reasoner: reasoner,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Kind identifies the plan step this composer handles.
func (c *Composer) Kind() domain.StepKind {
	return domain.StepItinerary
}

// Compose produces an itinerary for the trip. Requires a destination.
func (c *Composer) Compose(ctx context.Context, req domain.Requirements, results map[domain.StepKind]domain.WorkerResult) (domain.WorkerResult, error) {
	if !req.HasDestination() {
		return domain.WorkerResult{}, &domain.InvalidParamsError{Field: "destination", Reason: "destination is required"}
	}

	if c.reasoner != nil {
		callCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}

		itin, err := c.reasoner.ComposeItinerary(callCtx, req, results)
		if err == nil && itin != nil && len(itin.Days) > 0 {
			return domain.WorkerResult{
				Kind:      domain.StepItinerary,
				Itinerary: itin,
				Source:    domain.SourceProvider,
			}, nil
		}
		if err != nil {
			c.logger.Warn("itinerary composition failed, using fallback", "err", err)
		}
	}

	return domain.WorkerResult{
		Kind:      domain.StepItinerary,
		Itinerary: fallbackItinerary(req, results),
		Source:    domain.SourceFallback,
	}, nil
}

// fallbackItinerary builds a deterministic schedule. Gathered activity
// offers fill the morning and afternoon slots round-robin; generic
// placeholders cover the rest.
func fallbackItinerary(req domain.Requirements, results map[domain.StepKind]domain.WorkerResult) *domain.Itinerary {
	duration := req.DurationDays
	if duration < 1 {
		duration = 7
	}

	var activities []domain.Offer
	if res, ok := results[domain.StepActivity]; ok {
		activities = res.Items
	}

	itin := &domain.Itinerary{
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		DayCount:    duration,
		Days:        make([]domain.DayPlan, 0, duration),
	}

	var baseDate time.Time
	if t, err := time.Parse("2006-01-02", req.StartDate); err == nil {
		baseDate = t
	}

	next := 0
	takeActivity := func(fallbackName string, fallbackCost float64) domain.ScheduledItem {
		if next < len(activities) {
			offer := activities[next]
			next++
			return domain.ScheduledItem{
				Name: offer.Name,
				Note: offer.Description,
				Cost: offer.Price,
			}
		}
		return domain.ScheduledItem{Name: fallbackName, Cost: fallbackCost}
	}

	for day := 1; day <= duration; day++ {
		morning := takeActivity(fmt.Sprintf("Morning exploration in %s", req.Destination), 30)
		morning.Time = "09:00 AM"
		lunch := domain.ScheduledItem{Time: "12:30 PM", Name: "Lunch", Note: "Local cuisine", Cost: 20}
		afternoon := takeActivity(fmt.Sprintf("Afternoon activity in %s", req.Destination), 40)
		afternoon.Time = "02:00 PM"
		dinner := domain.ScheduledItem{Time: "07:00 PM", Name: "Dinner", Note: "Restaurant", Cost: 35}

		plan := domain.DayPlan{
			Day:     day,
			Summary: fmt.Sprintf("Day %d in %s", day, req.Destination),
			Items:   []domain.ScheduledItem{morning, lunch, afternoon, dinner},
		}
		if !baseDate.IsZero() {
			plan.Date = baseDate.AddDate(0, 0, day-1).Format("2006-01-02")
		}
		for _, item := range plan.Items {
			plan.EstimatedCost += item.Cost
		}

		itin.Days = append(itin.Days, plan)
		itin.EstimatedTotalCost += plan.EstimatedCost
	}

	return itin
}
