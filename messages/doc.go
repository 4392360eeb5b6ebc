// Package messages provides the provider-agnostic data model for chat
// conversations: roles, typed content items, annotations, usage counters, and
// the Message and Response value objects they compose into.
//
// Design decisions:
//   - Tagged variants: content and annotation kinds are closed interface
//     variants with an explicit opaque member, so unknown provider payloads
//     round-trip unchanged instead of being dropped
//   - Provider neutrality: nothing in this package knows about any concrete
//     model provider; raw provider objects travel through an untyped slot that
//     is never inspected or cloned
//   - Null-aware counters: token counts distinguish "unknown" from zero, and
//     merging two usage records adds only what is known
//   - JSON interop: every wire-visible type has a type-tagged JSON form with
//     robust error handling, and decoding dispatches through an extensible
//     registry so embedders can add their own content kinds
//
// Key concepts:
//   - Content: interface implemented by TextContent, ReasoningContent,
//     UsageContent, and OpaqueContent
//   - Annotation: interface implemented by CitationAnnotation and
//     OpaqueAnnotation, attached to text content as offset-addressed spans
//   - Message: a role plus an ordered content sequence and metadata
//   - Response: an ordered message sequence plus aggregate metadata and usage
//
// Example usage:
//
//	msg := messages.Message{
//	    Role: messages.RoleAssistant,
//	    Contents: []messages.Content{
//	        messages.Text("The answer is 42."),
//	    },
//	}
//
//	resp := messages.Response{Messages: []messages.Message{msg}}
//	fmt.Println(resp.Text()) // "The answer is 42."
//
// Messages and responses are plain value objects: they are safe to copy, and
// their derived Text projections never mutate the underlying content.
package messages
