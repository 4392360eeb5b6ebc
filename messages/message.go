package messages

import (
	"fmt"
	"strings"

	"github.com/go-openapi/strfmt"
	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Message is one turn of a conversation: a role plus an ordered sequence of
// content items. Content order is significant, it defines rendering order.
type Message struct {
	Role      Role            // Who authored this message
	Contents  []Content       // Ordered content items, nil behaves as empty
	Name      string          // Optional author name, blank means absent
	Timestamp strfmt.DateTime // Creation time, zero means absent
	MessageID string          // Optional identifier, used for stream segmentation
	Meta      map[string]any  // Open-ended additional properties
	_         struct{}        // require keyed usage
}

// Text returns the concatenation of every TextContent payload in order, with
// no separator. Reasoning and other content kinds are excluded.
func (m Message) Text() string {
	var sb strings.Builder
	for _, c := range m.Contents {
		if t, ok := c.(TextContent); ok {
			sb.WriteString(t.Text)
		}
	}
	return sb.String()
}

// MarshalJSON implements json.Marshaler for Message. The content sequence is
// always emitted as an array, never null.
func (m Message) MarshalJSON() ([]byte, error) {
	result, err := sjson.SetBytes([]byte(`{}`), "role", string(m.Role))
	if err != nil {
		return nil, err
	}

	contents := m.Contents
	if contents == nil {
		contents = []Content{}
	}
	encoded, err := json.Marshal(contents)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contents: %w", err)
	}
	if result, err = sjson.SetRawBytes(result, "contents", encoded); err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(m.Name); name != "" {
		if result, err = sjson.SetBytes(result, "name", name); err != nil {
			return nil, err
		}
	}
	if !m.Timestamp.IsZero() {
		if result, err = sjson.SetBytes(result, "timestamp", m.Timestamp.String()); err != nil {
			return nil, err
		}
	}
	if m.MessageID != "" {
		if result, err = sjson.SetBytes(result, "message_id", m.MessageID); err != nil {
			return nil, err
		}
	}
	if len(m.Meta) > 0 {
		meta, err := json.Marshal(m.Meta)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal meta: %w", err)
		}
		if result, err = sjson.SetRawBytes(result, "meta", meta); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// UnmarshalJSON implements json.Unmarshaler for Message.
func (m *Message) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	m.Role = Role(gjson.GetBytes(data, "role").String())

	if cj := gjson.GetBytes(data, "contents"); cj.Exists() {
		if !cj.IsArray() {
			return fmt.Errorf("'contents' must be an array")
		}
		contents, err := unmarshalContents(cj.Array())
		if err != nil {
			return err
		}
		m.Contents = contents
	} else {
		m.Contents = []Content{}
	}

	m.Name = strings.TrimSpace(gjson.GetBytes(data, "name").String())
	m.MessageID = gjson.GetBytes(data, "message_id").String()

	if ts := gjson.GetBytes(data, "timestamp"); ts.Exists() {
		if err := m.Timestamp.UnmarshalText([]byte(ts.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}
	if meta := gjson.GetBytes(data, "meta"); meta.Exists() {
		if err := json.Unmarshal([]byte(meta.Raw), &m.Meta); err != nil {
			return fmt.Errorf("invalid meta: %w", err)
		}
	}

	return nil
}
