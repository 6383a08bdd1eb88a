package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObjectFromFence(t *testing.T) {
	content := "Here you go:\n```json\n{\"destination\": \"Tokyo\"}\n```\nEnjoy!"
	assert.JSONEq(t, `{"destination": "Tokyo"}`, extractJSONObject(content))
}

func TestExtractJSONObjectBare(t *testing.T) {
	content := `Sure. {"destination": "Tokyo", "duration_days": 7} hope that helps`
	got := extractJSONObject(content)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &parsed))
	assert.Equal(t, "Tokyo", parsed["destination"])
}

func TestExtractJSONObjectMissing(t *testing.T) {
	assert.Empty(t, extractJSONObject("no json here at all"))
}

func TestExtractJSONArrayFromFence(t *testing.T) {
	content := "```\n[{\"name\": \"Lisbon\"}, {\"name\": \"Tokyo\"}]\n```"
	got := extractJSONArray(content)

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &parsed))
	assert.Len(t, parsed, 2)
}

func TestCleanJSONTrailingCommas(t *testing.T) {
	raw := `{"a": 1, "b": [1, 2,],}`
	got := cleanJSON(raw)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &parsed))
}

func TestCleanJSONLineComments(t *testing.T) {
	raw := "{\n\"url\": \"http://example.com\", // keep the url intact\n\"n\": 2\n}"
	got := cleanJSON(raw)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &parsed))
	assert.Equal(t, "http://example.com", parsed["url"])
	assert.Equal(t, float64(2), parsed["n"])
}
