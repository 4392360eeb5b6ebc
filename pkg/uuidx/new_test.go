package uuidx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := New()
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, uuid.RFC4122, id.Variant())
	assert.NotEqual(t, id, New(), "consecutive ids must differ")
}

func TestNewString(t *testing.T) {
	id, err := uuid.Parse(NewString())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestNew_TimeOrdered(t *testing.T) {
	// v7 ids embed a millisecond timestamp in the high bits, so ids generated
	// in sequence compare in generation order (ties allowed within one tick).
	a, b := NewString(), NewString()
	assert.LessOrEqual(t, a, b)
}
