package streaming

import (
	"fmt"
	"strings"

	"github.com/go-openapi/strfmt"
	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/strix-ai/strix/messages"
)

// Update is the unit of a response stream: a partial message fragment plus
// optional scalar fields refining the in-progress message or response. Every
// field is optional; an absent role means "keep whatever role the current
// message already has". Updates are ephemeral: the assembler consumes each
// one exactly once and never retains it in the finished response.
type Update struct {
	Role           messages.Role         // Author role, empty keeps the current one
	Contents       []messages.Content    // Partial content items, may be empty
	Name           string                // Author name override, blank means no change
	ResponseID     string                // Response identifier, non-empty wins
	MessageID      string                // Message identifier, drives segmentation
	ConversationID string                // Conversation identifier
	Timestamp      strfmt.DateTime       // Creation time, zero means no change
	FinishReason   messages.FinishReason // Why generation stopped
	ModelID        string                // Which model produced this fragment
	Meta           map[string]any        // Open-ended additional properties
	_              struct{}              // require keyed usage
}

// Text returns the concatenation of every TextContent payload in the
// fragment, in order, with no separator.
func (u Update) Text() string {
	var sb strings.Builder
	for _, c := range u.Contents {
		if t, ok := c.(messages.TextContent); ok {
			sb.WriteString(t.Text)
		}
	}
	return sb.String()
}

// MarshalJSON implements json.Marshaler for Update. Absent fields are
// omitted so sparse fragments serialize sparsely.
func (u Update) MarshalJSON() ([]byte, error) {
	result := []byte(`{}`)

	var err error
	if u.Role != "" {
		if result, err = sjson.SetBytes(result, "role", string(u.Role)); err != nil {
			return nil, err
		}
	}
	if len(u.Contents) > 0 {
		contents, err := json.Marshal(u.Contents)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal contents: %w", err)
		}
		if result, err = sjson.SetRawBytes(result, "contents", contents); err != nil {
			return nil, err
		}
	}
	if name := strings.TrimSpace(u.Name); name != "" {
		if result, err = sjson.SetBytes(result, "name", name); err != nil {
			return nil, err
		}
	}
	if u.ResponseID != "" {
		if result, err = sjson.SetBytes(result, "response_id", u.ResponseID); err != nil {
			return nil, err
		}
	}
	if u.MessageID != "" {
		if result, err = sjson.SetBytes(result, "message_id", u.MessageID); err != nil {
			return nil, err
		}
	}
	if u.ConversationID != "" {
		if result, err = sjson.SetBytes(result, "conversation_id", u.ConversationID); err != nil {
			return nil, err
		}
	}
	if !u.Timestamp.IsZero() {
		if result, err = sjson.SetBytes(result, "timestamp", u.Timestamp.String()); err != nil {
			return nil, err
		}
	}
	if u.FinishReason != "" {
		if result, err = sjson.SetBytes(result, "finish_reason", string(u.FinishReason)); err != nil {
			return nil, err
		}
	}
	if u.ModelID != "" {
		if result, err = sjson.SetBytes(result, "model", u.ModelID); err != nil {
			return nil, err
		}
	}
	if len(u.Meta) > 0 {
		meta, err := json.Marshal(u.Meta)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal meta: %w", err)
		}
		if result, err = sjson.SetRawBytes(result, "meta", meta); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// UnmarshalJSON implements json.Unmarshaler for Update.
func (u *Update) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	u.Role = messages.Role(gjson.GetBytes(data, "role").String())

	if cj := gjson.GetBytes(data, "contents"); cj.Exists() {
		if !cj.IsArray() {
			return fmt.Errorf("'contents' must be an array")
		}
		items := cj.Array()
		contents := make([]messages.Content, len(items))
		for idx, item := range items {
			c, err := messages.UnmarshalContent([]byte(item.Raw))
			if err != nil {
				return fmt.Errorf("invalid content at %d: %w", idx, err)
			}
			contents[idx] = c
		}
		u.Contents = contents
	}

	u.Name = strings.TrimSpace(gjson.GetBytes(data, "name").String())
	u.ResponseID = gjson.GetBytes(data, "response_id").String()
	u.MessageID = gjson.GetBytes(data, "message_id").String()
	u.ConversationID = gjson.GetBytes(data, "conversation_id").String()
	u.FinishReason = messages.FinishReason(gjson.GetBytes(data, "finish_reason").String())
	u.ModelID = gjson.GetBytes(data, "model").String()

	if ts := gjson.GetBytes(data, "timestamp"); ts.Exists() {
		if err := u.Timestamp.UnmarshalText([]byte(ts.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}
	if meta := gjson.GetBytes(data, "meta"); meta.Exists() {
		if err := json.Unmarshal([]byte(meta.Raw), &u.Meta); err != nil {
			return fmt.Errorf("invalid meta: %w", err)
		}
	}

	return nil
}
