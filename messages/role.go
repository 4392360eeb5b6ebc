package messages

import "strings"

// Role identifies the author of a message. Roles are opaque, case-insensitive
// string identifiers: the well-known values below cover the usual chat
// participants, but providers are free to introduce their own.
type Role string

const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
	RoleTool      Role = "tool"
)

// Is reports whether two roles are equal, ignoring case.
func (r Role) Is(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

func (r Role) String() string {
	return string(r)
}

// FinishReason describes why a model stopped generating. The set is open:
// the well-known values below are recognized case-insensitively, anything
// else passes through untouched.
type FinishReason string

const (
	FinishStop          FinishReason = "stop"
	FinishLength        FinishReason = "length"
	FinishToolCalls     FinishReason = "tool_calls"
	FinishContentFilter FinishReason = "content_filter"
)

// Is reports whether two finish reasons are equal, ignoring case.
func (f FinishReason) Is(other FinishReason) bool {
	return strings.EqualFold(string(f), string(other))
}

// IsStop reports whether the reason means a natural stop. The zero value
// behaves identically to FinishStop.
func (f FinishReason) IsStop() bool {
	return f == "" || strings.EqualFold(string(f), string(FinishStop))
}

func (f FinishReason) String() string {
	return string(f)
}
