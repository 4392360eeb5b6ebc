package messages

import (
	"fmt"
	"strings"

	"github.com/go-openapi/strfmt"
	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Response is the complete result of one chat interaction: an ordered message
// sequence plus the metadata and aggregate usage reported alongside it.
type Response struct {
	Messages       []Message       // Ordered messages, nil behaves as empty
	ResponseID     string          // Provider identifier for this response
	ConversationID string          // Identifier of the containing conversation
	ModelID        string          // Which model produced the response
	Timestamp      strfmt.DateTime // Creation time, zero means absent
	FinishReason   FinishReason    // Why generation stopped, empty means stop
	Usage          *Usage          // Aggregate token usage, nil means unreported
	Meta           map[string]any  // Open-ended additional properties
	_              struct{}        // require keyed usage
}

// Text returns each message's derived text, in message order, joined with a
// single newline between any two non-empty texts. Messages whose text is
// empty contribute nothing, including no separator.
func (r Response) Text() string {
	var sb strings.Builder
	for _, m := range r.Messages {
		text := m.Text()
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// MarshalJSON implements json.Marshaler for Response. The message sequence is
// always emitted as an array, never null.
func (r Response) MarshalJSON() ([]byte, error) {
	msgs := r.Messages
	if msgs == nil {
		msgs = []Message{}
	}
	encoded, err := json.Marshal(msgs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal messages: %w", err)
	}
	result, err := sjson.SetRawBytes([]byte(`{}`), "messages", encoded)
	if err != nil {
		return nil, err
	}

	if r.ResponseID != "" {
		if result, err = sjson.SetBytes(result, "response_id", r.ResponseID); err != nil {
			return nil, err
		}
	}
	if r.ConversationID != "" {
		if result, err = sjson.SetBytes(result, "conversation_id", r.ConversationID); err != nil {
			return nil, err
		}
	}
	if r.ModelID != "" {
		if result, err = sjson.SetBytes(result, "model", r.ModelID); err != nil {
			return nil, err
		}
	}
	if !r.Timestamp.IsZero() {
		if result, err = sjson.SetBytes(result, "timestamp", r.Timestamp.String()); err != nil {
			return nil, err
		}
	}
	if r.FinishReason != "" {
		if result, err = sjson.SetBytes(result, "finish_reason", string(r.FinishReason)); err != nil {
			return nil, err
		}
	}
	if r.Usage != nil {
		usage, err := json.Marshal(r.Usage)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal usage: %w", err)
		}
		if result, err = sjson.SetRawBytes(result, "usage", usage); err != nil {
			return nil, err
		}
	}
	if len(r.Meta) > 0 {
		meta, err := json.Marshal(r.Meta)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal meta: %w", err)
		}
		if result, err = sjson.SetRawBytes(result, "meta", meta); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// UnmarshalJSON implements json.Unmarshaler for Response.
func (r *Response) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	r.Messages = []Message{}
	if mj := gjson.GetBytes(data, "messages"); mj.Exists() {
		if !mj.IsArray() {
			return fmt.Errorf("'messages' must be an array")
		}
		items := mj.Array()
		msgs := make([]Message, len(items))
		for idx, item := range items {
			if err := msgs[idx].UnmarshalJSON([]byte(item.Raw)); err != nil {
				return fmt.Errorf("invalid message at %d: %w", idx, err)
			}
		}
		r.Messages = msgs
	}

	r.ResponseID = gjson.GetBytes(data, "response_id").String()
	r.ConversationID = gjson.GetBytes(data, "conversation_id").String()
	r.ModelID = gjson.GetBytes(data, "model").String()
	r.FinishReason = FinishReason(gjson.GetBytes(data, "finish_reason").String())

	if ts := gjson.GetBytes(data, "timestamp"); ts.Exists() {
		if err := r.Timestamp.UnmarshalText([]byte(ts.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}
	if uj := gjson.GetBytes(data, "usage"); uj.Exists() {
		r.Usage = &Usage{}
		if err := json.Unmarshal([]byte(uj.Raw), r.Usage); err != nil {
			return fmt.Errorf("invalid usage: %w", err)
		}
	}
	if meta := gjson.GetBytes(data, "meta"); meta.Exists() {
		if err := json.Unmarshal([]byte(meta.Raw), &r.Meta); err != nil {
			return fmt.Errorf("invalid meta: %w", err)
		}
	}

	return nil
}
