package domain

// SubScores are the per-dimension destination scores, each in [0,100].
// They are produced by candidate generation/enrichment and passed through
// ranking unchanged; ranking only combines them.
type SubScores struct {
	Weather  float64 `json:"weather"`
	Family   float64 `json:"family"`
	Safety   float64 `json:"safety"`
	Budget   float64 `json:"budget"`
	Interest float64 `json:"interest"`
}

// Candidate is a scored destination proposal produced during discovery.
type Candidate struct {
	Name       string    `json:"name"`
	Region     string    `json:"region,omitempty"`
	SubScores  SubScores `json:"sub_scores"`
	FinalScore float64   `json:"final_score"`
	Rationale  string    `json:"rationale,omitempty"`
	Enrichment string    `json:"enrichment,omitempty"`
}
