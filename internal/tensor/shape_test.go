package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
	assert.Equal(t, 5, Shape{5}.NumElements())
	assert.Equal(t, 1, Shape{}.NumElements(), "scalar shape has one element")
}

func TestShape_Validate(t *testing.T) {
	assert.NoError(t, Shape{2, 3}.Validate())
	assert.NoError(t, Shape{}.Validate())
	assert.Error(t, Shape{2, 0}.Validate())
	assert.Error(t, Shape{-1, 3}.Validate())
}

func TestShape_ComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Equal(t, []int{1}, Shape{7}.ComputeStrides())
	assert.Empty(t, Shape{}.ComputeStrides())
}

func TestShape_ReduceView(t *testing.T) {
	cases := []struct {
		shape Shape
		dim   int
		a, b  int
	}{
		{Shape{2, 3, 4}, 2, 6, 4},
		{Shape{2, 3, 4}, 0, 12, 2},
		{Shape{2, 3, 4}, 1, 8, 3},
		{Shape{5}, 0, 1, 5},
	}
	for _, tc := range cases {
		a, b := tc.shape.ReduceView(tc.dim)
		assert.Equal(t, tc.a, a, "shape %v dim %d", tc.shape, tc.dim)
		assert.Equal(t, tc.b, b, "shape %v dim %d", tc.shape, tc.dim)
	}
}

func TestBroadcastShapes(t *testing.T) {
	shape, broadcast, err := BroadcastShapes(Shape{2, 3}, Shape{3})
	require.NoError(t, err)
	assert.True(t, broadcast)
	assert.True(t, shape.Equal(Shape{2, 3}))

	shape, broadcast, err = BroadcastShapes(Shape{4, 1}, Shape{1, 5})
	require.NoError(t, err)
	assert.True(t, broadcast)
	assert.True(t, shape.Equal(Shape{4, 5}))

	shape, broadcast, err = BroadcastShapes(Shape{2, 2}, Shape{2, 2})
	require.NoError(t, err)
	assert.False(t, broadcast)
	assert.True(t, shape.Equal(Shape{2, 2}))

	_, _, err = BroadcastShapes(Shape{3}, Shape{4})
	require.Error(t, err)
}
