package domain

// Source marks the provenance of a worker result.
type Source string

const (
	SourceProvider Source = "provider"
	SourceFallback Source = "fallback"
)

// Offer is one structured record in a worker result. Provider-sourced and
// fallback-sourced offers share this shape so callers never branch on
// provenance for anything except display.
type Offer struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Price       float64           `json:"price,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	Attrs       map[string]string `json:"attrs,omitempty"`
}

// WorkerResult is the uniform output of every specialized worker.
type WorkerResult struct {
	Kind  StepKind `json:"kind"`
	Items []Offer  `json:"items"`

	// Itinerary is set only by the itinerary-composer worker.
	Itinerary *Itinerary `json:"itinerary,omitempty"`

	Source Source `json:"source"`
}
