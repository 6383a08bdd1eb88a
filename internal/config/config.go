package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LLMConfig configures the language-model collaborator.
type LLMConfig struct {
	BaseURL string        `yaml:"base_url" json:"base_url"`
	APIKey  string        `yaml:"api_key" json:"api_key"`
	Model   string        `yaml:"model" json:"model"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// RedisConfig configures the optional Redis session store.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
}

// Weights controls how destination sub-scores combine into a final score.
// Values are relative; Normalized divides each by their sum.
type Weights struct {
	Weather  float64 `yaml:"weather" json:"weather"`
	Family   float64 `yaml:"family" json:"family"`
	Safety   float64 `yaml:"safety" json:"safety"`
	Budget   float64 `yaml:"budget" json:"budget"`
	Interest float64 `yaml:"interest" json:"interest"`
}

// Sum returns the total weight mass.
func (w Weights) Sum() float64 {
	return w.Weather + w.Family + w.Safety + w.Budget + w.Interest
}

// Normalized returns weights scaled so they sum to 1. A zero or negative
// sum falls back to the defaults.
func (w Weights) Normalized() Weights {
	sum := w.Sum()
	if sum <= 0 {
		return DefaultWeights()
	}
	return Weights{
		Weather:  w.Weather / sum,
		Family:   w.Family / sum,
		Safety:   w.Safety / sum,
		Budget:   w.Budget / sum,
		Interest: w.Interest / sum,
	}
}

// Config is the top-level runtime configuration.
type Config struct {
	LLM     LLMConfig   `yaml:"llm" json:"llm"`
	Redis   RedisConfig `yaml:"redis" json:"redis"`
	Weights Weights     `yaml:"weights" json:"weights"`

	// TopN is how many ranked destination candidates to present.
	TopN int `yaml:"top_n" json:"top_n"`

	// UncertaintyPhrases trigger the destination discovery flow when they
	// appear in a user message.
	UncertaintyPhrases []string `yaml:"uncertainty_phrases" json:"uncertainty_phrases"`

	// WorkerTimeout bounds each provider call before falling back.
	WorkerTimeout time.Duration `yaml:"worker_timeout" json:"worker_timeout"`
}

// DefaultWeights returns the stock scoring weights.
func DefaultWeights() Weights {
	return Weights{
		Weather:  0.25,
		Family:   0.20,
		Safety:   0.20,
		Budget:   0.15,
		Interest: 0.20,
	}
}

// DefaultUncertaintyPhrases returns the stock trigger phrases for the
// destination discovery flow.
func DefaultUncertaintyPhrases() []string {
	return []string{
		"don't know where",
		"not sure where",
		"help me choose",
		"suggest a destination",
		"recommend a place",
		"where should i go",
	}
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Model:   "gpt-4o-mini",
			Timeout: 30 * time.Second,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Weights:            DefaultWeights(),
		TopN:               5,
		UncertaintyPhrases: DefaultUncertaintyPhrases(),
		WorkerTimeout:      10 * time.Second,
	}
}

// Load reads a YAML configuration file, layering it over the defaults and
// then applying environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("failed to read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.TopN <= 0 {
		cfg.TopN = 5
	}
	if len(cfg.UncertaintyPhrases) == 0 {
		cfg.UncertaintyPhrases = DefaultUncertaintyPhrases()
	}
	if cfg.Weights.Sum() <= 0 {
		cfg.Weights = DefaultWeights()
	}

	return cfg, nil
}

// applyEnv overrides fields from the environment. Env vars win over file
// values so deployments can keep secrets out of config files.
func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("WANDERPLAN_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
}
