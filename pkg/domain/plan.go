package domain

// StepKind is the fixed vocabulary of plan step / worker kinds. Anything
// outside this vocabulary coming back from a collaborator is dropped by
// the plan generator, never executed.
type StepKind string

const (
	StepFlight    StepKind = "flight"
	StepHotel     StepKind = "hotel"
	StepActivity  StepKind = "activity"
	StepItinerary StepKind = "itinerary"
	StepResearch  StepKind = "research"
)

// KnownStepKind reports whether k belongs to the step vocabulary.
func KnownStepKind(k StepKind) bool {
	switch k {
	case StepFlight, StepHotel, StepActivity, StepItinerary, StepResearch:
		return true
	}
	return false
}

// StepStatus is the lifecycle of one plan step.
type StepStatus string

const (
	StepPending StepStatus = "pending"
	StepDone    StepStatus = "done"
	StepFailed  StepStatus = "failed"
)

// StepParams carries the inputs a worker needs. One shared shape keeps
// step records serializable and lets retries reuse the same record.
type StepParams struct {
	Origin       string     `json:"origin,omitempty" mapstructure:"origin"`
	Destination  string     `json:"destination,omitempty" mapstructure:"destination"`
	StartDate    string     `json:"start_date,omitempty" mapstructure:"start_date"`
	EndDate      string     `json:"end_date,omitempty" mapstructure:"end_date"`
	DurationDays int        `json:"duration_days,omitempty" mapstructure:"duration_days"`
	Guests       int        `json:"guests,omitempty" mapstructure:"guests"`
	BudgetTier   BudgetTier `json:"budget_tier,omitempty" mapstructure:"budget_tier"`
	Interests    []string   `json:"interests,omitempty" mapstructure:"interests"`
}

// PlanStep is one unit of work. Created by the plan generator, mutated
// only by the executor, never reordered after creation.
type PlanStep struct {
	Kind   StepKind   `json:"kind"`
	Params StepParams `json:"params"`
	Status StepStatus `json:"status"`
}

// Plan is an ordered step list with an execution cursor.
type Plan struct {
	Steps  []PlanStep `json:"steps"`
	Cursor int        `json:"cursor"`
}

// Finished reports whether every step reached a terminal status.
func (p *Plan) Finished() bool {
	if p == nil {
		return true
	}
	for _, s := range p.Steps {
		if s.Status == StepPending {
			return false
		}
	}
	return true
}

// AllFailed reports whether the plan ran and nothing succeeded.
func (p *Plan) AllFailed() bool {
	if p == nil || len(p.Steps) == 0 {
		return false
	}
	for _, s := range p.Steps {
		if s.Status != StepFailed {
			return false
		}
	}
	return true
}

// HasKind reports whether any step carries the given kind.
func (p *Plan) HasKind(kind StepKind) bool {
	if p == nil {
		return false
	}
	for _, s := range p.Steps {
		if s.Kind == kind {
			return true
		}
	}
	return false
}
