package domain

import "strings"

// BudgetTier is the coarse spending level used across search and ranking.
type BudgetTier string

const (
	BudgetLow  BudgetTier = "budget"
	BudgetMid  BudgetTier = "mid-range"
	BudgetHigh BudgetTier = "luxury"
)

// Party describes who is traveling.
type Party struct {
	Adults    int   `json:"adults,omitempty"`
	Children  int   `json:"children,omitempty"`
	ChildAges []int `json:"child_ages,omitempty"`
}

// Requirements is the accumulated, typed view of what the user asked for.
// It grows monotonically across turns within a phase: Merge only overwrites
// a field when the incoming value is set, it never clears one.
type Requirements struct {
	Origin       string     `json:"origin,omitempty"`
	Destination  string     `json:"destination,omitempty"`
	Region       string     `json:"region,omitempty"`
	StartDate    string     `json:"start_date,omitempty"`
	EndDate      string     `json:"end_date,omitempty"`
	DurationDays int        `json:"duration_days,omitempty"`
	BudgetTier   BudgetTier `json:"budget_tier,omitempty"`
	Party        Party      `json:"party,omitempty"`
	Interests    []string   `json:"interests,omitempty"`

	// Constraints holds hard constraints keyed by aspect, e.g.
	// "weather" -> "mild", "mobility" -> "stroller access".
	Constraints map[string]string `json:"constraints,omitempty"`
}

// HasDestination reports whether a destination has been committed.
func (r Requirements) HasDestination() bool {
	return r.Destination != ""
}

// Merge folds incoming values into r, keeping existing values where the
// incoming field is unset. Interests and constraints are unioned.
func (r *Requirements) Merge(in Requirements) {
	if in.Origin != "" {
		r.Origin = in.Origin
	}
	if in.Destination != "" {
		r.Destination = in.Destination
	}
	if in.Region != "" {
		r.Region = in.Region
	}
	if in.StartDate != "" {
		r.StartDate = in.StartDate
	}
	if in.EndDate != "" {
		r.EndDate = in.EndDate
	}
	if in.DurationDays > 0 {
		r.DurationDays = in.DurationDays
	}
	if in.BudgetTier != "" {
		r.BudgetTier = in.BudgetTier
	}
	if in.Party.Adults > 0 {
		r.Party.Adults = in.Party.Adults
	}
	if in.Party.Children > 0 {
		r.Party.Children = in.Party.Children
	}
	if len(in.Party.ChildAges) > 0 {
		r.Party.ChildAges = in.Party.ChildAges
	}
	for _, interest := range in.Interests {
		if !containsFold(r.Interests, interest) {
			r.Interests = append(r.Interests, interest)
		}
	}
	if len(in.Constraints) > 0 {
		if r.Constraints == nil {
			r.Constraints = make(map[string]string, len(in.Constraints))
		}
		for k, v := range in.Constraints {
			if v != "" {
				r.Constraints[k] = v
			}
		}
	}
}

// Guests returns the total travel party size, defaulting to one.
func (r Requirements) Guests() int {
	n := r.Party.Adults + r.Party.Children
	if n <= 0 {
		return 1
	}
	return n
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
