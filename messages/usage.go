package messages

import (
	"github.com/go-openapi/swag"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Usage tracks token consumption for a response. Each counter is nullable:
// nil means the provider never reported it, which is distinct from zero.
type Usage struct {
	InputTokens  *int64 `json:"input_tokens,omitempty"`
	OutputTokens *int64 `json:"output_tokens,omitempty"`
	TotalTokens  *int64 `json:"total_tokens,omitempty"`

	// Counts holds provider-specific extra counters (cache reads, reasoning
	// tokens, and the like). They are assumed summable; insertion order is
	// preserved so serialized output stays stable.
	Counts *orderedmap.OrderedMap[string, int64] `json:"counts,omitempty"`
}

// NewUsage creates a Usage with known input and output token counts.
// The total is derived from the two.
func NewUsage(input, output int64) *Usage {
	return &Usage{
		InputTokens:  swag.Int64(input),
		OutputTokens: swag.Int64(output),
		TotalTokens:  swag.Int64(input + output),
	}
}

// Add folds other into u with null-aware addition: a counter known on either
// side makes the result known (the sum of the known values), two unknown
// counters stay unknown. Extra counters merge key-wise, new keys are inserted
// in arrival order. A nil other contributes nothing.
func (u *Usage) Add(other *Usage) {
	if other == nil {
		return
	}

	u.InputTokens = addTokens(u.InputTokens, other.InputTokens)
	u.OutputTokens = addTokens(u.OutputTokens, other.OutputTokens)
	u.TotalTokens = addTokens(u.TotalTokens, other.TotalTokens)

	if other.Counts == nil {
		return
	}
	if u.Counts == nil {
		u.Counts = orderedmap.New[string, int64]()
	}
	for pair := other.Counts.Oldest(); pair != nil; pair = pair.Next() {
		if current, ok := u.Counts.Get(pair.Key); ok {
			u.Counts.Set(pair.Key, current+pair.Value)
		} else {
			u.Counts.Set(pair.Key, pair.Value)
		}
	}
}

// Count records an extra named counter, overwriting any previous value.
func (u *Usage) Count(name string, value int64) {
	if u.Counts == nil {
		u.Counts = orderedmap.New[string, int64]()
	}
	u.Counts.Set(name, value)
}

// addTokens never aliases its inputs: a known result is always a fresh
// allocation, so adding usages cannot entangle two records.
func addTokens(a, b *int64) *int64 {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		return swag.Int64(*b)
	case b == nil:
		return swag.Int64(*a)
	default:
		return swag.Int64(*a + *b)
	}
}
