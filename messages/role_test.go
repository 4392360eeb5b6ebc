package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Is(t *testing.T) {
	tests := []struct {
		name string
		a, b Role
		want bool
	}{
		{name: "same value", a: RoleAssistant, b: RoleAssistant, want: true},
		{name: "case insensitive", a: Role("Assistant"), b: RoleAssistant, want: true},
		{name: "different roles", a: RoleUser, b: RoleTool, want: false},
		{name: "custom roles", a: Role("Critic"), b: Role("critic"), want: true},
		{name: "empty vs named", a: Role(""), b: RoleSystem, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Is(tt.b))
			assert.Equal(t, tt.want, tt.b.Is(tt.a))
		})
	}
}

func TestFinishReason_IsStop(t *testing.T) {
	assert.True(t, FinishReason("").IsStop(), "unset behaves as stop")
	assert.True(t, FinishStop.IsStop())
	assert.True(t, FinishReason("STOP").IsStop())
	assert.False(t, FinishLength.IsStop())
	assert.False(t, FinishReason("tool_calls").IsStop())
}

func TestFinishReason_Is(t *testing.T) {
	assert.True(t, FinishToolCalls.Is(FinishReason("Tool_Calls")))
	assert.False(t, FinishContentFilter.Is(FinishStop))
}
