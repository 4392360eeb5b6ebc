package stdx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	t.Run("scalars", func(t *testing.T) {
		assert.Equal(t, 0, Zero[int]())
		assert.Equal(t, "", Zero[string]())
		assert.Equal(t, false, Zero[bool]())
	})

	t.Run("reference types", func(t *testing.T) {
		assert.Nil(t, Zero[[]int]())
		assert.Nil(t, Zero[map[string]int]())
		assert.Nil(t, Zero[*int]())
	})

	t.Run("struct", func(t *testing.T) {
		type pair struct {
			A int
			B string
		}
		assert.Equal(t, pair{}, Zero[pair]())
	})
}
