package messages

import (
	"fmt"

	"github.com/alphadose/haxmap"
	"github.com/tidwall/gjson"
)

// ContentDecoder turns one type-tagged JSON object into a Content value.
type ContentDecoder func(data []byte) (Content, error)

// decoders maps wire type tags to their decoders. Embedders can extend it at
// runtime, so the map has to tolerate concurrent registration and lookup.
var decoders = haxmap.New[string, ContentDecoder]()

// RegisterContent installs dec as the decoder for the given wire type tag.
// Later registrations for the same tag win. Content kinds without a decoder
// fall back to OpaqueContent pass-through.
func RegisterContent(kind string, dec ContentDecoder) {
	decoders.Set(kind, dec)
}

func init() {
	RegisterContent("text", func(data []byte) (Content, error) {
		var c TextContent
		if err := c.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return c, nil
	})
	RegisterContent("reasoning", func(data []byte) (Content, error) {
		var c ReasoningContent
		if err := c.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return c, nil
	})
	RegisterContent("usage", func(data []byte) (Content, error) {
		var c UsageContent
		if err := c.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return c, nil
	})
}

// UnmarshalContent decodes a single type-tagged content object, dispatching
// on its "type" field through the decoder registry. Unknown kinds decode to
// OpaqueContent so they survive a round trip unchanged.
func UnmarshalContent(data []byte) (Content, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid json: %s", data)
	}

	kind := gjson.GetBytes(data, "type").String()
	if dec, ok := decoders.Get(kind); ok {
		return dec(data)
	}

	var c OpaqueContent
	if err := c.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return c, nil
}

func unmarshalContents(items []gjson.Result) ([]Content, error) {
	contents := make([]Content, len(items))
	for idx, item := range items {
		c, err := UnmarshalContent([]byte(item.Raw))
		if err != nil {
			return nil, fmt.Errorf("invalid content at %d: %w", idx, err)
		}
		contents[idx] = c
	}
	return contents, nil
}
