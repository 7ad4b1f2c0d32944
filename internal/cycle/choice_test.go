package cycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidInput(t *testing.T) {
	t.Run("empty values", func(t *testing.T) {
		_, err := New([]string{}, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("negative start", func(t *testing.T) {
		_, err := New([]int{1, 2}, -1)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("start past end", func(t *testing.T) {
		_, err := New([]int{1, 2}, 2)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() { MustNew([]int(nil), 0) })
}

func TestNetworkTypesWrapAround(t *testing.T) {
	c, err := New([]string{"wifi", "3G", "4G", "5G", "6G"}, 0)
	require.NoError(t, err)
	assert.Equal(t, "wifi", c.Current())

	for i := 0; i < 5; i++ {
		c = c.Next()
	}
	assert.Equal(t, "wifi", c.Current())
}

func TestNextMatchesModulo(t *testing.T) {
	values := []int{10, 20, 30, 40}
	c := MustNew(values, 0)

	for n := 0; n < 3*len(values); n++ {
		assert.Equal(t, values[n%len(values)], c.Current(), "after %d advances", n)
		c = c.Next()
	}
}

func TestFullCycleReturnsToStart(t *testing.T) {
	c := MustNew([]int{1, 2, 3, 4}, 2)
	start := c.Current()

	for i := 0; i < c.Len(); i++ {
		c = c.Next()
	}
	assert.Equal(t, start, c.Current())
	assert.Equal(t, 2, c.Index())
}

func TestNextDoesNotMutateReceiver(t *testing.T) {
	c := MustNew([]string{"a", "b"}, 0)
	next := c.Next()

	assert.Equal(t, "a", c.Current())
	assert.Equal(t, "b", next.Current())
}

func TestValuesAreOwned(t *testing.T) {
	src := []string{"a", "b", "c"}
	c := MustNew(src, 0)
	src[0] = "changed"

	assert.Equal(t, "a", c.Current())

	out := c.Values()
	out[1] = "changed"
	assert.Equal(t, "b", c.Next().Current())
}

func TestRandomReturnsMember(t *testing.T) {
	values := []string{"扶贫", "加餐", "打赏", "点赞"}
	c := MustNew(values, 0)

	for i := 0; i < 50; i++ {
		assert.Contains(t, values, c.Random())
	}
}
