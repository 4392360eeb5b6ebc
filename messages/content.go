package messages

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Content is an interface that marks structs as valid message content items.
// Implementations include TextContent, ReasoningContent, UsageContent, and
// OpaqueContent.
type Content interface {
	content()
}

// Text creates a new TextContent with the given text.
// This is a convenience function for creating text content items.
func Text(text string) TextContent {
	return TextContent{Text: text}
}

// TextContent represents model-visible text, optionally carrying citation
// annotations addressed by offsets into Text.
// It implements the Content interface.
type TextContent struct {
	Text        string         // The actual text content
	Annotations []Annotation   // Source attributions for spans of Text
	Raw         any            `json:"-"` // Opaque provider object, referential only
	Meta        map[string]any // Open-ended additional properties
	_           struct{}       // require keyed usage
}

func (TextContent) content() {}

var textJSON = []byte(`{"type":"text"}`)

// MarshalJSON implements json.Marshaler for TextContent.
// Serializes the text with a "type":"text" field; Raw is never serialized.
func (t TextContent) MarshalJSON() ([]byte, error) {
	return marshalTextLike(textJSON, t.Text, t.Annotations, t.Meta)
}

// UnmarshalJSON implements json.Unmarshaler for TextContent.
// Validates and extracts the required 'text' field from the JSON input.
func (t *TextContent) UnmarshalJSON(data []byte) error {
	text, annotations, meta, err := unmarshalTextLike(data)
	if err != nil {
		return err
	}
	t.Text, t.Annotations, t.Meta = text, annotations, meta
	return nil
}

// Reasoning creates a new ReasoningContent with the given text.
// This is a convenience function for creating reasoning content items.
func Reasoning(text string) ReasoningContent {
	return ReasoningContent{Text: text}
}

// ReasoningContent represents the model's internal reasoning. It has the same
// shape as TextContent but is a distinct kind: derived text projections skip
// it and coalescing never merges it with plain text.
// It implements the Content interface.
type ReasoningContent struct {
	Text        string         // The reasoning text
	Annotations []Annotation   // Source attributions for spans of Text
	Raw         any            `json:"-"` // Opaque provider object, referential only
	Meta        map[string]any // Open-ended additional properties
	_           struct{}       // require keyed usage
}

func (ReasoningContent) content() {}

var reasoningJSON = []byte(`{"type":"reasoning"}`)

// MarshalJSON implements json.Marshaler for ReasoningContent.
func (r ReasoningContent) MarshalJSON() ([]byte, error) {
	return marshalTextLike(reasoningJSON, r.Text, r.Annotations, r.Meta)
}

// UnmarshalJSON implements json.Unmarshaler for ReasoningContent.
func (r *ReasoningContent) UnmarshalJSON(data []byte) error {
	text, annotations, meta, err := unmarshalTextLike(data)
	if err != nil {
		return err
	}
	r.Text, r.Annotations, r.Meta = text, annotations, meta
	return nil
}

// Count creates a new UsageContent carrying the given counters.
// This is a convenience function for building usage fragments in streams.
func Count(u Usage) UsageContent {
	return UsageContent{Usage: &u}
}

// UsageContent carries token usage counters through a content stream. It is
// not message content in the rendering sense: assembling a response folds it
// into the response's aggregate usage instead of appending it to a message.
// It implements the Content interface.
type UsageContent struct {
	Usage *Usage         // Counters to fold into the aggregate, nil contributes nothing
	Raw   any            `json:"-"` // Opaque provider object, referential only
	Meta  map[string]any // Open-ended additional properties
	_     struct{}       // require keyed usage
}

func (UsageContent) content() {}

var usageJSON = []byte(`{"type":"usage"}`)

// MarshalJSON implements json.Marshaler for UsageContent.
func (u UsageContent) MarshalJSON() ([]byte, error) {
	result := usageJSON

	if u.Usage != nil {
		counters, err := json.Marshal(u.Usage)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal usage: %w", err)
		}
		if result, err = sjson.SetRawBytes(result, "usage", counters); err != nil {
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

// UnmarshalJSON implements json.Unmarshaler for UsageContent.
// A missing 'usage' object is permitted and decodes to nil counters.
func (u *UsageContent) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	if counters := gjson.GetBytes(data, "usage"); counters.Exists() {
		u.Usage = &Usage{}
		if err := json.Unmarshal([]byte(counters.Raw), u.Usage); err != nil {
			return fmt.Errorf("invalid usage: %w", err)
		}
	}
	if meta := gjson.GetBytes(data, "meta"); meta.Exists() {
		if err := json.Unmarshal([]byte(meta.Raw), &u.Meta); err != nil {
			return fmt.Errorf("invalid meta: %w", err)
		}
	}

	return nil
}

// OpaqueContent carries a content kind this package does not model. The
// original JSON is retained verbatim and re-emitted unchanged, so foreign
// provider payloads survive a round trip through the data model.
type OpaqueContent struct {
	Kind    string          // Wire type tag of the unrecognized content
	Payload json.RawMessage // Original JSON object, emitted as-is
	Raw     any             `json:"-"` // Opaque provider object, referential only
	_       struct{}        // require keyed usage
}

func (OpaqueContent) content() {}

// MarshalJSON implements json.Marshaler for OpaqueContent.
func (o OpaqueContent) MarshalJSON() ([]byte, error) {
	if len(o.Payload) > 0 {
		return o.Payload, nil
	}
	return sjson.SetBytes([]byte(`{}`), "type", o.Kind)
}

// UnmarshalJSON implements json.Unmarshaler for OpaqueContent.
func (o *OpaqueContent) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}
	o.Kind = gjson.GetBytes(data, "type").String()
	o.Payload = append(o.Payload[:0], data...)
	return nil
}

func marshalTextLike(seed []byte, text string, annotations []Annotation, meta map[string]any) ([]byte, error) {
	result, err := sjson.SetBytes(seed, "text", text)
	if err != nil {
		return nil, err
	}

	if len(annotations) > 0 {
		encoded, err := json.Marshal(annotations)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal annotations: %w", err)
		}
		if result, err = sjson.SetRawBytes(result, "annotations", encoded); err != nil {
			return nil, err
		}
	}
	if len(meta) > 0 {
		encoded, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal meta: %w", err)
		}
		if result, err = sjson.SetRawBytes(result, "meta", encoded); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func unmarshalTextLike(data []byte) (string, []Annotation, map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return "", nil, nil, fmt.Errorf("invalid json: %s", data)
	}

	text := gjson.GetBytes(data, "text")
	if !text.Exists() {
		return "", nil, nil, errors.New("missing required field 'text'")
	}

	var annotations []Annotation
	if aj := gjson.GetBytes(data, "annotations"); aj.Exists() {
		if !aj.IsArray() {
			return "", nil, nil, errors.New("'annotations' must be an array")
		}
		var err error
		if annotations, err = unmarshalAnnotations(aj.Array()); err != nil {
			return "", nil, nil, err
		}
	}

	var meta map[string]any
	if mj := gjson.GetBytes(data, "meta"); mj.Exists() {
		if err := json.Unmarshal([]byte(mj.Raw), &meta); err != nil {
			return "", nil, nil, fmt.Errorf("invalid meta: %w", err)
		}
	}

	return text.String(), annotations, meta, nil
}
