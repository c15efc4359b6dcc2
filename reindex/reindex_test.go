// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package reindex_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/born-ml/reindex/backend/cpu"
	"github.com/born-ml/reindex/reindex"
)

func newContext() *reindex.Context {
	return reindex.NewContext(cpu.New(), reindex.DefaultConfig())
}

func TestPermute(t *testing.T) {
	out, err := reindex.Permute(context.Background(), newContext(), []float32{1, 2, 3, 4, 5, 6}, []int{2, 3}, []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, out)
}

func TestSlice(t *testing.T) {
	out, err := reindex.Slice(context.Background(), newContext(), []int32{10, 20, 30, 40, 50, 60}, []int{2, 3}, []int{0, 1}, []int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int32{20, 30, 50, 60}, out)
}

func TestBroadcast(t *testing.T) {
	out, err := reindex.Broadcast(context.Background(), newContext(), []uint32{7, 8}, []int{2, 1}, []int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, []uint32{7, 7, 7, 8, 8, 8}, out)
}

func TestPermuteFloat16(t *testing.T) {
	src := make([]float16.Float16, 4)
	for i := range src {
		src[i] = float16.Fromfloat32(float32(i))
	}
	out, err := reindex.Permute(context.Background(), newContext(), src, []int{2, 2}, nil)
	require.NoError(t, err)

	got := make([]float32, len(out))
	for i, v := range out {
		got[i] = v.Float32()
	}
	assert.Equal(t, []float32{0, 2, 1, 3}, got)
}

func TestInvalidOps(t *testing.T) {
	ctx := context.Background()
	rc := newContext()

	_, err := reindex.Permute(ctx, rc, []float32{1, 2}, []int{2}, []int{1})
	assert.Error(t, err, "out of range axis")

	_, err = reindex.Slice(ctx, rc, []float32{1, 2}, []int{2}, []int{1}, []int{1})
	assert.Error(t, err, "empty slice")

	_, err = reindex.Broadcast(ctx, rc, []float32{1, 2}, []int{2}, []int{3})
	assert.Error(t, err, "incompatible broadcast")

	_, err = reindex.Permute(ctx, rc, make([]float32, 32), []int{2, 2, 2, 2, 2}, nil)
	assert.Error(t, err, "rank above 4")
}

func TestShortSource(t *testing.T) {
	op, err := reindex.NewPermute([]int{2, 3}, []int{1, 0})
	require.NoError(t, err)

	_, err = reindex.Run(context.Background(), newContext(), op, []float32{1, 2, 3})
	assert.True(t, errors.Is(err, reindex.ErrBufferSize), "got %v", err)
}

// celsius is a named element type with float32 as its underlying type.
type celsius float32

func TestNamedElementTypes(t *testing.T) {
	ctx := context.Background()
	rc := newContext()

	out, err := reindex.Permute(ctx, rc, []celsius{1, 2, 3, 4, 5, 6}, []int{2, 3}, []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, []celsius{1, 4, 2, 5, 3, 6}, out)

	type id uint32
	ids, err := reindex.Slice(ctx, rc, []id{10, 11, 12, 13}, []int{4}, []int{1}, []int{3})
	require.NoError(t, err)
	assert.Equal(t, []id{11, 12}, ids)
}
