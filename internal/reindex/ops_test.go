package reindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/reindex/internal/tensor"
)

func TestNewPermute(t *testing.T) {
	op, err := NewPermute([]int{2, 3, 4}, nil)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 3, 2}, op.Shape)
	assert.Equal(t, Vec4{2, 1, 0, 3}, op.Meta.Perm)
	assert.Equal(t, uint32(24), op.Meta.DstNumel)
	assert.Equal(t, Vec4{6, 2, 1, 1}, op.Meta.DstStride)

	for _, perm := range [][]int{{0}, {0, 0}, {0, 2}, {-1, 0}} {
		_, err := NewPermute([]int{2, 3}, perm)
		assert.Error(t, err, "perm %v", perm)
	}
	_, err = NewPermute([]int{1, 1, 1, 1, 1}, nil)
	assert.Error(t, err)
	_, err = NewPermute([]int{2, 0}, []int{1, 0})
	assert.Error(t, err)
}

func TestNewSlice(t *testing.T) {
	op, err := NewSlice([]int{4, 6}, []int{1, 2}, []int{3, 5})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, op.Shape)
	assert.Equal(t, Vec4{1, 2, 0, 0}, op.Meta.SrcOffsets)
	assert.Equal(t, Vec4{6, 1, 1, 1}, op.Meta.SrcStride)
	assert.Equal(t, uint32(24), op.Meta.SrcNumel)
	assert.Equal(t, uint32(6), op.Meta.DstNumel)

	bad := [][2][]int{
		{{0, 0}, {4}},
		{{0, 0}, {5, 6}},
		{{2, 0}, {2, 6}},
		{{-1, 0}, {2, 6}},
	}
	for _, b := range bad {
		_, err := NewSlice([]int{4, 6}, b[0], b[1])
		assert.Error(t, err, "starts %v ends %v", b[0], b[1])
	}
}

func TestNewBroadcastRejectsIncompatible(t *testing.T) {
	_, err := NewBroadcast([]int{2, 3}, []int{2, 4})
	assert.Error(t, err)
	_, err = NewBroadcast([]int{2, 3}, []int{3})
	assert.Error(t, err)
}

func TestVectorize(t *testing.T) {
	op, err := NewSlice([]int{4, 8}, []int{0, 4}, []int{4, 8})
	require.NoError(t, err)

	packed, err := op.Vectorize(Vec4Element)
	require.NoError(t, err)
	assert.Equal(t, Vec4{4, 2, 1, 1}, packed.Meta.SrcShape)
	assert.Equal(t, Vec4{4, 1, 1, 1}, packed.Meta.DstShape)
	assert.Equal(t, Vec4{0, 1, 0, 0}, packed.Meta.SrcOffsets)
	assert.Equal(t, Vec4{2, 1, 1, 1}, packed.Meta.SrcStride)
	assert.Equal(t, Vec4{1, 1, 1, 1}, packed.Meta.DstStride)
	assert.Equal(t, op.Meta.DstNumel, packed.Meta.DstNumel)
	require.NoError(t, packed.Meta.Validate(Slice, Vec4Element))

	// The receiver is untouched.
	assert.Equal(t, Vec4{4, 8, 1, 1}, op.Meta.SrcShape)

	same, err := op.Vectorize(ScalarElement)
	require.NoError(t, err)
	assert.Same(t, op, same)
}

func TestVectorizeRejects(t *testing.T) {
	transpose, err := NewPermute([]int{4, 4}, []int{1, 0})
	require.NoError(t, err)
	_, err = transpose.Vectorize(Vec4Element)
	assert.Error(t, err)
	assert.Equal(t, ScalarElement, transpose.BestElement())

	odd, err := NewSlice([]int{4, 8}, []int{0, 1}, []int{4, 5})
	require.NoError(t, err)
	_, err = odd.Vectorize(Vec4Element)
	assert.Error(t, err)

	bcast, err := NewBroadcast([]int{4, 1}, []int{4, 4})
	require.NoError(t, err)
	_, err = bcast.Vectorize(Vec4Element)
	assert.Error(t, err)

	scalar, err := NewPermute(tensor.Shape{}, nil)
	require.NoError(t, err)
	_, err = scalar.Vectorize(Vec2Element)
	assert.Error(t, err)
	_, err = scalar.Vectorize(KernelElement(5))
	assert.Error(t, err)
}
