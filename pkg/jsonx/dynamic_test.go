package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDynamicJSON(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	got, err := ToDynamicJSON(payload{Name: "strix", Count: 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "strix", "count": float64(2)}, got)
}

func TestToDynamicJSON_NotAnObject(t *testing.T) {
	_, err := ToDynamicJSON([]string{"not", "an", "object"})
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	src := map[string]any{
		"scalar": "value",
		"nested": map[string]any{"n": 1},
		"list":   []any{map[string]any{"deep": true}},
	}

	got := Clone(src)
	require.Equal(t, src, got)

	src["scalar"] = "changed"
	src["nested"].(map[string]any)["n"] = 2
	src["list"].([]any)[0].(map[string]any)["deep"] = false

	assert.Equal(t, "value", got["scalar"])
	assert.Equal(t, 1, got["nested"].(map[string]any)["n"])
	assert.Equal(t, true, got["list"].([]any)[0].(map[string]any)["deep"])
}

func TestClone_Nil(t *testing.T) {
	assert.Nil(t, Clone(nil))
}
