package domain

// ScheduledItem is a single timed entry in a day plan.
type ScheduledItem struct {
	Time string  `json:"time,omitempty"`
	Name string  `json:"name"`
	Note string  `json:"note,omitempty"`
	Cost float64 `json:"cost,omitempty"`
}

// DayPlan is one day of a composed itinerary.
type DayPlan struct {
	Day           int             `json:"day"`
	Date          string          `json:"date,omitempty"`
	Summary       string          `json:"summary,omitempty"`
	Items         []ScheduledItem `json:"items,omitempty"`
	EstimatedCost float64         `json:"estimated_cost,omitempty"`
}

// Itinerary is the composed day-by-day result of a trip plan.
type Itinerary struct {
	Destination        string    `json:"destination"`
	StartDate          string    `json:"start_date,omitempty"`
	EndDate            string    `json:"end_date,omitempty"`
	DayCount           int       `json:"day_count"`
	Days               []DayPlan `json:"days"`
	EstimatedTotalCost float64   `json:"estimated_total_cost,omitempty"`
}
