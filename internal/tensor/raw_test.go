package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRaw(t *testing.T) {
	r, err := NewRaw(Shape{2, 3}, Float32, CPU)
	require.NoError(t, err)

	assert.Equal(t, 6, r.NumElements())
	assert.Equal(t, 24, r.ByteSize())
	assert.Equal(t, []int{3, 1}, r.Strides())
	assert.Equal(t, CPU, r.Device())
	for _, v := range r.AsFloat32() {
		assert.Zero(t, v)
	}
}

func TestNewRaw_InvalidShape(t *testing.T) {
	_, err := NewRaw(Shape{2, 0}, Float32, CPU)
	require.Error(t, err)
}

func TestFromSlice(t *testing.T) {
	r, err := FromSlice(Shape{2, 2}, []int64{1, 2, 3, 4}, CPU)
	require.NoError(t, err)

	assert.Equal(t, Int64, r.DType())
	assert.Equal(t, []int64{1, 2, 3, 4}, r.AsInt64())

	_, err = FromSlice(Shape{3}, []int64{1, 2}, CPU)
	require.Error(t, err)
}

func TestAs_DTypeChecked(t *testing.T) {
	r, err := FromSlice(Shape{2}, []float32{1, 2}, CPU)
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 2}, As[float32](r))
	assert.Panics(t, func() { As[float64](r) })
	assert.Panics(t, func() { r.AsInt32() })
}

func TestAs_SharesStorage(t *testing.T) {
	r, err := FromSlice(Shape{3}, []float32{1, 2, 3}, CPU)
	require.NoError(t, err)

	As[float32](r)[1] = 42
	assert.Equal(t, []float32{1, 42, 3}, r.AsFloat32())
}

func TestClone_Independent(t *testing.T) {
	r, err := FromSlice(Shape{2}, []int32{7, 8}, CPU)
	require.NoError(t, err)

	c := r.Clone()
	c.AsInt32()[0] = -1

	assert.Equal(t, []int32{7, 8}, r.AsInt32())
	assert.Equal(t, []int32{-1, 8}, c.AsInt32())
	assert.True(t, c.Shape().Equal(r.Shape()))
}

func TestAccumulatorType(t *testing.T) {
	assert.Equal(t, Int32, Uint8.AccumulatorType())
	assert.Equal(t, Int64, Int32.AccumulatorType())
	assert.Equal(t, Int64, Int64.AccumulatorType())
	assert.Equal(t, Float32, Float32.AccumulatorType())
	assert.Equal(t, Float64, Float64.AccumulatorType())
}
