package streaming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strix-ai/strix/messages"
)

func TestCoalesceText_MergesAdjacentRuns(t *testing.T) {
	contents := []messages.Content{
		messages.Text("Hel"),
		messages.Text("lo, "),
		messages.Text("world!"),
	}

	CoalesceText(&contents)

	require.Len(t, contents, 1)
	assert.Equal(t, messages.Text("Hello, world!"), contents[0])
}

func TestCoalesceText_KindIsolation(t *testing.T) {
	contents := []messages.Content{
		messages.Text("a"),
		messages.Text("b"),
		messages.Reasoning("c"),
		messages.Reasoning("d"),
		messages.Text("e"),
	}

	CoalesceText(&contents)

	require.Len(t, contents, 3, "text and reasoning coalesce into separate runs")
	assert.Equal(t, messages.Text("ab"), contents[0])
	assert.Equal(t, messages.Reasoning("cd"), contents[1])
	assert.Equal(t, messages.Text("e"), contents[2])
}

func TestCoalesceText_InterleavedKindsAreBoundaries(t *testing.T) {
	contents := []messages.Content{
		messages.Text("a"),
		messages.Reasoning("r"),
		messages.Text("b"),
	}

	CoalesceText(&contents)

	require.Len(t, contents, 3, "a reasoning item splits the text run")
	assert.Equal(t, messages.Text("a"), contents[0])
	assert.Equal(t, messages.Text("b"), contents[2])
}

func TestCoalesceText_AnnotatedItemIsBoundary(t *testing.T) {
	annotated := messages.TextContent{
		Text:        "cited",
		Annotations: []messages.Annotation{messages.Citation("source", "https://example.com")},
	}
	contents := []messages.Content{
		messages.Text("a"),
		annotated,
		messages.Text("b"),
		messages.Text("c"),
	}

	CoalesceText(&contents)

	require.Len(t, contents, 3)
	assert.Equal(t, messages.Text("a"), contents[0], "a lone item before the boundary stays as-is")
	assert.Equal(t, annotated, contents[1], "annotated text is never merged")
	assert.Equal(t, messages.Text("bc"), contents[2])
}

func TestCoalesceText_Idempotent(t *testing.T) {
	contents := []messages.Content{
		messages.Text("a"),
		messages.Text("b"),
		messages.Reasoning("c"),
		messages.OpaqueContent{Kind: "tool_call"},
		messages.Text("d"),
	}

	CoalesceText(&contents)
	once := append([]messages.Content(nil), contents...)

	CoalesceText(&contents)
	assert.Equal(t, once, contents, "coalescing an already-coalesced sequence is a no-op")
}

func TestCoalesceText_InheritsFirstMeta(t *testing.T) {
	meta := map[string]any{"chunk": 0, "nested": map[string]any{"keep": true}}
	contents := []messages.Content{
		messages.TextContent{Text: "a", Meta: meta},
		messages.TextContent{Text: "b", Meta: map[string]any{"chunk": 1}},
	}

	CoalesceText(&contents)

	require.Len(t, contents, 1)
	merged, ok := contents[0].(messages.TextContent)
	require.True(t, ok)
	assert.Equal(t, "ab", merged.Text)
	assert.Equal(t, 0, merged.Meta["chunk"], "the first member's properties win")

	meta["nested"].(map[string]any)["keep"] = false
	assert.Equal(t, true, merged.Meta["nested"].(map[string]any)["keep"],
		"inherited properties are deep-copied, not aliased")
}

func TestCoalesceText_Degenerate(t *testing.T) {
	CoalesceText(nil)

	var empty []messages.Content
	CoalesceText(&empty)
	assert.Empty(t, empty)

	single := []messages.Content{messages.Text("solo")}
	CoalesceText(&single)
	require.Len(t, single, 1)
}
