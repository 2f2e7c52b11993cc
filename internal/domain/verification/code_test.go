package verification

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource int

func (f fixedSource) Intn(int) int { return int(f) }

func TestNewCodeBounds(t *testing.T) {
	assert.Equal(t, "1000", NewCode(fixedSource(0)))
	assert.Equal(t, "9999", NewCode(fixedSource(8999)))
}

func TestNewCodeRange(t *testing.T) {
	src := NewRandomSource(42)
	for i := 0; i < 2000; i++ {
		code := NewCode(src)
		require.Len(t, code, CodeLength)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
	}
}
