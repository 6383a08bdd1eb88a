/*
Package workers implements the specialized task workers that execute plan
steps: flight search, hotel search, activity search, itinerary composition
and destination discovery.

Every worker degrades rather than fails: when its external collaborator is
absent, errors out or times out, the worker falls back to a deterministic
generator and marks the result accordingly.
*/
package workers

import (
	"context"

	"github.com/wanderplan/wanderplan/pkg/domain"
)

// Worker executes one kind of plan step.
type Worker interface {
	// Kind identifies which plan steps this worker handles.
	Kind() domain.StepKind

	// Run executes the step. Implementations return an error only for
	// invalid parameters; collaborator failures produce fallback results.
	Run(ctx context.Context, params domain.StepParams) (domain.WorkerResult, error)
}
