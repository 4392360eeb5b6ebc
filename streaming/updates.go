package streaming

import (
	"github.com/strix-ai/strix/messages"
	"github.com/strix-ai/strix/pkg/jsonx"
)

// Updates decomposes a response back into a fragment array: one update per
// message carrying that message's role, contents, and identifiers, with the
// response-level fields broadcast onto every fragment. If the response has
// aggregate usage or top-level additional properties, one extra trailing
// update carries a synthetic usage item and those properties.
//
// The conversion is lossy by design: per-fragment raw provider objects and
// divergent scalar values from the original stream are gone, only the final
// merged values survive.
func Updates(resp *messages.Response) []Update {
	if resp == nil {
		return nil
	}

	out := make([]Update, 0, len(resp.Messages)+1)
	for _, m := range resp.Messages {
		u := Update{
			Role:           m.Role,
			Contents:       m.Contents,
			Name:           m.Name,
			MessageID:      m.MessageID,
			ResponseID:     resp.ResponseID,
			ConversationID: resp.ConversationID,
			ModelID:        resp.ModelID,
			FinishReason:   resp.FinishReason,
			Timestamp:      resp.Timestamp,
			Meta:           jsonx.Clone(m.Meta),
		}
		if !m.Timestamp.IsZero() {
			u.Timestamp = m.Timestamp
		}
		out = append(out, u)
	}

	if resp.Usage == nil && len(resp.Meta) == 0 {
		return out
	}

	trailer := Update{
		ResponseID:     resp.ResponseID,
		ConversationID: resp.ConversationID,
		ModelID:        resp.ModelID,
		FinishReason:   resp.FinishReason,
		Timestamp:      resp.Timestamp,
		Meta:           jsonx.Clone(resp.Meta),
	}
	if resp.Usage != nil {
		counters := &messages.Usage{}
		counters.Add(resp.Usage)
		trailer.Contents = []messages.Content{messages.UsageContent{Usage: counters}}
	}
	return append(out, trailer)
}
