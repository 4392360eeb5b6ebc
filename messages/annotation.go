package messages

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Annotation is an interface that marks structs as valid content annotations.
// Implementations include CitationAnnotation and OpaqueAnnotation.
type Annotation interface {
	annotation()
}

// TextSpan addresses a half-open range of rune offsets [Start, End) within the
// text content an annotation is attached to.
type TextSpan struct {
	Start int      `json:"start"`
	End   int      `json:"end"`
	_     struct{} // require keyed usage
}

// Citation creates a new CitationAnnotation pointing at the given source URL.
func Citation(title, url string) CitationAnnotation {
	return CitationAnnotation{Title: title, URL: url}
}

// CitationAnnotation attributes a region of text content to a source document.
// It implements the Annotation interface.
type CitationAnnotation struct {
	Title   string         // Human-readable source title
	URL     string         // Location of the cited source
	Snippet string         // Quoted excerpt from the source, if any
	Regions []TextSpan     // Offsets into the annotated text, empty means the whole text
	Raw     any            `json:"-"` // Opaque provider object, referential only
	Meta    map[string]any // Open-ended additional properties
	_       struct{}       // require keyed usage
}

func (CitationAnnotation) annotation() {}

var citationJSON = []byte(`{"type":"citation"}`)

// MarshalJSON implements json.Marshaler for CitationAnnotation.
// Empty fields are omitted; the Raw provider object is never serialized.
func (c CitationAnnotation) MarshalJSON() ([]byte, error) {
	result := citationJSON

	var err error
	if c.Title != "" {
		if result, err = sjson.SetBytes(result, "title", c.Title); err != nil {
			return nil, err
		}
	}
	if c.URL != "" {
		if result, err = sjson.SetBytes(result, "url", c.URL); err != nil {
			return nil, err
		}
	}
	if c.Snippet != "" {
		if result, err = sjson.SetBytes(result, "snippet", c.Snippet); err != nil {
			return nil, err
		}
	}
	if len(c.Regions) > 0 {
		regions, err := json.Marshal(c.Regions)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal regions: %w", err)
		}
		if result, err = sjson.SetRawBytes(result, "regions", regions); err != nil {
			return nil, err
		}
	}
	if len(c.Meta) > 0 {
		meta, err := json.Marshal(c.Meta)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal meta: %w", err)
		}
		if result, err = sjson.SetRawBytes(result, "meta", meta); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// UnmarshalJSON implements json.Unmarshaler for CitationAnnotation.
func (c *CitationAnnotation) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	c.Title = gjson.GetBytes(data, "title").String()
	c.URL = gjson.GetBytes(data, "url").String()
	c.Snippet = gjson.GetBytes(data, "snippet").String()

	if regions := gjson.GetBytes(data, "regions"); regions.Exists() {
		if err := json.Unmarshal([]byte(regions.Raw), &c.Regions); err != nil {
			return fmt.Errorf("invalid regions: %w", err)
		}
	}
	if meta := gjson.GetBytes(data, "meta"); meta.Exists() {
		if err := json.Unmarshal([]byte(meta.Raw), &c.Meta); err != nil {
			return fmt.Errorf("invalid meta: %w", err)
		}
	}

	return nil
}

// OpaqueAnnotation carries an annotation kind this package does not model.
// The original JSON is retained verbatim and re-emitted unchanged.
type OpaqueAnnotation struct {
	Kind    string          // Wire type tag of the unrecognized annotation
	Payload json.RawMessage // Original JSON object, emitted as-is
	_       struct{}        // require keyed usage
}

func (OpaqueAnnotation) annotation() {}

// MarshalJSON implements json.Marshaler for OpaqueAnnotation.
func (o OpaqueAnnotation) MarshalJSON() ([]byte, error) {
	if len(o.Payload) > 0 {
		return o.Payload, nil
	}
	return sjson.SetBytes([]byte(`{}`), "type", o.Kind)
}

// UnmarshalJSON implements json.Unmarshaler for OpaqueAnnotation.
func (o *OpaqueAnnotation) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}
	o.Kind = gjson.GetBytes(data, "type").String()
	o.Payload = append(o.Payload[:0], data...)
	return nil
}

// UnmarshalAnnotation decodes a single type-tagged annotation object.
// Unknown kinds decode to OpaqueAnnotation so they survive a round trip.
func UnmarshalAnnotation(data []byte) (Annotation, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid json: %s", data)
	}
	switch kind := gjson.GetBytes(data, "type").String(); kind {
	case "citation":
		var a CitationAnnotation
		if err := a.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return a, nil
	default:
		var a OpaqueAnnotation
		if err := a.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return a, nil
	}
}

func unmarshalAnnotations(items []gjson.Result) ([]Annotation, error) {
	annotations := make([]Annotation, len(items))
	for idx, item := range items {
		a, err := UnmarshalAnnotation([]byte(item.Raw))
		if err != nil {
			return nil, fmt.Errorf("invalid annotation at %d: %w", idx, err)
		}
		annotations[idx] = a
	}
	return annotations, nil
}
