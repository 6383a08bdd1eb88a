package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/wanderplan/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.NotEmpty(t, cfg.UncertaintyPhrases)
	assert.InDelta(t, 1.0, cfg.Weights.Normalized().Sum(), 1e-9)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  model: gpt-4o
  timeout: 5s
top_n: 3
weights:
  weather: 1
  family: 1
  safety: 1
  budget: 1
  interest: 1
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.TopN)

	norm := cfg.Weights.Normalized()
	assert.InDelta(t, 0.2, norm.Weather, 1e-9)
	assert.InDelta(t, 0.2, norm.Interest, 1e-9)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "2")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestWeightsNormalizedZeroSum(t *testing.T) {
	var w config.Weights
	assert.Equal(t, config.DefaultWeights(), w.Normalized())
}
