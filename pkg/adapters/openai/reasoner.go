/*
Package openai implements the reasoning collaborator on top of the OpenAI
chat completion API (or any compatible endpoint).

The adapter fails closed: every method returns an error on transport or
parse problems instead of guessing, and the engine's deterministic
fallbacks take over from there.
*/
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/mitchellh/mapstructure"
	api "github.com/sashabaranov/go-openai"

	"github.com/wanderplan/wanderplan/internal/logging"
	"github.com/wanderplan/wanderplan/pkg/domain"
	"github.com/wanderplan/wanderplan/pkg/ports"
)

// Config configures the adapter.
type Config struct {
	// BaseURL overrides the API endpoint, for compatible providers.
	BaseURL string
	APIKey  string
	Model   string
	// Timeout bounds each HTTP call. Callers typically also pass a
	// context deadline; whichever fires first wins.
	Timeout time.Duration
}

// Reasoner implements ports.Reasoner against a chat completion API.
type Reasoner struct {
	client *api.Client
	model  string
	logger *slog.Logger
}

// Option configures the Reasoner.
type Option func(*Reasoner)

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reasoner) {
		r.logger = logger
	}
}

// New creates the adapter from config.
func New(cfg Config, opts ...Option) *Reasoner {
	clientCfg := api.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	r := &Reasoner{
		client: api.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// retryBackoff is the pause before the single retry on transient failure.
const retryBackoff = 500 * time.Millisecond

// complete runs one non-streaming chat completion and returns the text.
// One retry on failure; callers hold deterministic fallbacks, so anything
// beyond that just delays the degraded answer.
func (r *Reasoner) complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	req := api.ChatCompletionRequest{
		Model:       r.model,
		Temperature: temperature,
		Messages: []api.ChatCompletionMessage{
			{Role: api.ChatMessageRoleSystem, Content: system},
			{Role: api.ChatMessageRoleUser, Content: user},
		},
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			r.logger.Debug("retrying chat completion", "err", lastErr)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(retryBackoff):
			}
		}

		resp, err := r.client.CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = fmt.Errorf("chat completion: %w", err)
			if ctx.Err() != nil {
				return "", lastErr
			}
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("chat completion returned no choices: %w", domain.ErrCollaboratorUnavailable)
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}
	return "", lastErr
}

func renderConversation(turns []domain.Turn) string {
	var b strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Text)
	}
	return b.String()
}

const classifySystem = `You route messages for a trip planning assistant.
Classify the user's latest message into exactly one intent:
flight, hotel, activity, itinerary, planner, destination_planner, none.

Use "planner" for full trip requests, "destination_planner" when the user
needs help choosing where to go, "none" when nothing matches.
Respond with only the intent word.`

// ClassifyIntent maps the latest turn onto the intent enum.
func (r *Reasoner) ClassifyIntent(ctx context.Context, turns []domain.Turn) (ports.Intent, error) {
	content, err := r.complete(ctx, classifySystem, renderConversation(turns), 0)
	if err != nil {
		return ports.IntentNone, err
	}

	intent := ports.Intent(strings.ToLower(strings.TrimSpace(content)))
	if !ports.KnownIntent(intent) {
		return ports.IntentNone, fmt.Errorf("classifier returned %q, not in intent enum", content)
	}
	return intent, nil
}

const extractSystem = `You extract travel requirements from a conversation.
Respond with only a JSON object:
{
  "origin": "", "destination": "", "region": "",
  "start_date": "YYYY-MM-DD", "end_date": "YYYY-MM-DD",
  "duration_days": 0,
  "budget_tier": "budget|mid-range|luxury",
  "party": {"adults": 0, "children": 0, "child_ages": []},
  "interests": [],
  "constraints": {}
}
Omit or zero any field the user never mentioned. Infer duration from date
ranges. Do not invent values.`

// ExtractRequirements pulls typed trip constraints out of the turns.
func (r *Reasoner) ExtractRequirements(ctx context.Context, turns []domain.Turn) (domain.Requirements, error) {
	content, err := r.complete(ctx, extractSystem, renderConversation(turns), 0)
	if err != nil {
		return domain.Requirements{}, err
	}

	payload := extractJSONObject(content)
	if payload == "" {
		return domain.Requirements{}, fmt.Errorf("no JSON object in extraction response")
	}

	var req domain.Requirements
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return domain.Requirements{}, fmt.Errorf("failed to parse requirements: %w", err)
	}
	return req, nil
}

const planSystem = `You are a trip planning orchestrator. Produce an ordered
list of steps to satisfy the user's goal. Allowed step kinds:
flight, hotel, activity, itinerary, research.
Include only steps whose parameters the requirements can satisfy, 1 to 6
steps, itinerary always last when present.
Respond with only a JSON array:
[{"kind": "flight", "params": {"origin": "", "destination": "", "start_date": "", "end_date": "", "duration_days": 0, "guests": 0, "budget_tier": "", "interests": []}}]`

type wireStep struct {
	Kind   string         `json:"kind"`
	Params map[string]any `json:"params"`
}

// GeneratePlan produces an ordered step list for the goal. The caller
// bounds the list and drops unknown kinds.
func (r *Reasoner) GeneratePlan(ctx context.Context, goal string, req domain.Requirements) ([]domain.PlanStep, error) {
	reqJSON, _ := json.Marshal(req)
	user := fmt.Sprintf("Goal: %s\nKnown requirements: %s", goal, reqJSON)

	content, err := r.complete(ctx, planSystem, user, 0.1)
	if err != nil {
		return nil, err
	}

	payload := extractJSONArray(content)
	if payload == "" {
		return nil, fmt.Errorf("no JSON array in plan response")
	}

	var wire []wireStep
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}

	steps := make([]domain.PlanStep, 0, len(wire))
	for _, ws := range wire {
		var params domain.StepParams
		if err := mapstructure.WeakDecode(ws.Params, &params); err != nil {
			r.logger.Warn("undecodable step params, using empty params", "kind", ws.Kind, "err", err)
		}
		steps = append(steps, domain.PlanStep{
			Kind:   domain.StepKind(strings.ToLower(ws.Kind)),
			Params: params,
			Status: domain.StepPending,
		})
	}
	return steps, nil
}

const candidatesSystem = `You are a travel expert. Based on the requirements,
suggest 5 to 7 suitable destinations. Score each dimension 0-100.
Respond with only a JSON array:
[{"name": "San Diego", "region": "North America",
  "sub_scores": {"weather": 0, "family": 0, "safety": 0, "budget": 0, "interest": 0},
  "rationale": "why it matches"}]
Prioritize destinations that match weather preferences, are safe for the
party, fit the budget and align with the interests.`

// GenerateCandidates proposes scored destination candidates.
func (r *Reasoner) GenerateCandidates(ctx context.Context, req domain.Requirements) ([]domain.Candidate, error) {
	reqJSON, _ := json.Marshal(req)

	content, err := r.complete(ctx, candidatesSystem, fmt.Sprintf("Requirements: %s", reqJSON), 0.4)
	if err != nil {
		return nil, err
	}

	payload := extractJSONArray(content)
	if payload == "" {
		return nil, fmt.Errorf("no JSON array in candidates response")
	}

	var candidates []domain.Candidate
	if err := json.Unmarshal([]byte(payload), &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse candidates: %w", err)
	}
	return candidates, nil
}

const composeSystem = `You compose day-by-day trip itineraries. Create a
realistic schedule with 2-4 activities per day, meals and costs, using the
provided search results when possible.
Respond with only a JSON object:
{"destination": "", "start_date": "", "end_date": "", "day_count": 0,
 "days": [{"day": 1, "date": "", "summary": "",
   "items": [{"time": "09:00 AM", "name": "", "note": "", "cost": 0}],
   "estimated_cost": 0}],
 "estimated_total_cost": 0}
The day count must match the requested duration.`

// ComposeItinerary builds a day-by-day itinerary from requirements and
// accumulated results.
func (r *Reasoner) ComposeItinerary(ctx context.Context, req domain.Requirements, results map[domain.StepKind]domain.WorkerResult) (*domain.Itinerary, error) {
	reqJSON, _ := json.Marshal(req)
	resultsJSON, _ := json.Marshal(results)
	user := fmt.Sprintf("Requirements: %s\nSearch results: %s", reqJSON, resultsJSON)

	content, err := r.complete(ctx, composeSystem, user, 0.3)
	if err != nil {
		return nil, err
	}

	payload := extractJSONObject(content)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in itinerary response")
	}

	var itin domain.Itinerary
	if err := json.Unmarshal([]byte(payload), &itin); err != nil {
		return nil, fmt.Errorf("failed to parse itinerary: %w", err)
	}
	if itin.DayCount == 0 {
		itin.DayCount = len(itin.Days)
	}
	return &itin, nil
}
