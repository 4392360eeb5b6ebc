package streaming

import (
	"strings"

	"github.com/strix-ai/strix/messages"
	"github.com/strix-ai/strix/pkg/jsonx"
)

// CoalesceText merges maximal runs of two or more adjacent same-kind text
// items, in place. TextContent and ReasoningContent coalesce independently
// and are never merged across kinds. A text item carrying annotations is a
// hard boundary: merging it would invalidate the annotations' character
// offsets. The merged item takes the concatenated text and an independent
// copy of the first run member's additional properties.
//
// The pass is order-preserving, kind-isolating, and idempotent: running it
// on an already-coalesced sequence changes nothing.
func CoalesceText(contents *[]messages.Content) {
	coalesceRuns(contents,
		func(c messages.Content) (string, map[string]any, bool) {
			t, ok := c.(messages.TextContent)
			if !ok || len(t.Annotations) > 0 {
				return "", nil, false
			}
			return t.Text, t.Meta, true
		},
		func(text string, meta map[string]any) messages.Content {
			return messages.TextContent{Text: text, Meta: meta}
		},
	)
	coalesceRuns(contents,
		func(c messages.Content) (string, map[string]any, bool) {
			r, ok := c.(messages.ReasoningContent)
			if !ok || len(r.Annotations) > 0 {
				return "", nil, false
			}
			return r.Text, r.Meta, true
		},
		func(text string, meta map[string]any) messages.Content {
			return messages.ReasoningContent{Text: text, Meta: meta}
		},
	)
}

// coalesceRuns merges runs of items accepted by member, replacing each run
// with one item built by merged. Consumed slots are nilled during the scan
// and dropped in a single stable compaction afterwards, keeping the whole
// pass linear in the sequence length.
func coalesceRuns(
	contents *[]messages.Content,
	member func(messages.Content) (string, map[string]any, bool),
	merged func(string, map[string]any) messages.Content,
) {
	if contents == nil {
		return
	}
	items := *contents

	removed := 0
	for i := 0; i < len(items); {
		first, meta, ok := member(items[i])
		if !ok {
			i++
			continue
		}

		var sb strings.Builder
		j := i + 1
		for j < len(items) {
			next, _, ok := member(items[j])
			if !ok {
				break
			}
			if sb.Len() == 0 {
				sb.WriteString(first)
			}
			sb.WriteString(next)
			items[j] = nil
			removed++
			j++
		}
		if j > i+1 {
			items[i] = merged(sb.String(), jsonx.Clone(meta))
		}
		i = j
	}

	if removed == 0 {
		return
	}
	compacted := items[:0]
	for _, c := range items {
		if c != nil {
			compacted = append(compacted, c)
		}
	}
	*contents = compacted
}
