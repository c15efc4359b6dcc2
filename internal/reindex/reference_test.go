package reindex

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/reindex/internal/backend/cpu"
	"github.com/born-ml/reindex/internal/tensor"
)

// iotaTensor fills a tensor of the given dtype with its flat byte positions.
func iotaTensor(t *testing.T, shape tensor.Shape, dt tensor.DataType) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, dt, tensor.CPU)
	require.NoError(t, err)
	for i := range raw.Data() {
		raw.Data()[i] = byte(i*7 + i/251)
	}
	return raw
}

func requireSameTensor(t *testing.T, want, got *tensor.RawTensor) {
	t.Helper()
	require.True(t, want.Shape().Equal(got.Shape()), "shape %v, want %v", got.Shape(), want.Shape())
	if diff := cmp.Diff(want.Data(), got.Data()); diff != "" {
		t.Errorf("data mismatch (-reference +kernel):\n%s", diff)
	}
}

func TestKernelsMatchReferenceLoops(t *testing.T) {
	ref := cpu.New()
	rc := newTestContext(true)
	ctx := context.Background()
	dtypes := []tensor.DataType{tensor.Float32, tensor.Float16, tensor.Int32, tensor.Uint32}

	permutes := []struct {
		shape tensor.Shape
		perm  []int
	}{
		{tensor.Shape{17}, []int{0}},
		{tensor.Shape{5, 8}, []int{1, 0}},
		{tensor.Shape{3, 4, 8}, []int{1, 0, 2}},
		{tensor.Shape{2, 3, 5, 7}, []int{3, 1, 0, 2}},
		{tensor.Shape{4, 1, 6, 2}, []int{0, 2, 1, 3}},
	}
	for _, dt := range dtypes {
		for _, tc := range permutes {
			t.Run(fmt.Sprintf("permute_%s_%v_%v", dt, tc.shape, tc.perm), func(t *testing.T) {
				in := iotaTensor(t, tc.shape, dt)
				op, err := NewPermute(tc.shape, tc.perm)
				require.NoError(t, err)
				got, err := rc.Apply(ctx, op, in)
				require.NoError(t, err)
				requireSameTensor(t, ref.Transpose(in, tc.perm...), got)
			})
		}
	}

	slices := []struct {
		shape        tensor.Shape
		starts, ends []int
	}{
		{tensor.Shape{9}, []int{2}, []int{7}},
		{tensor.Shape{4, 8}, []int{1, 4}, []int{3, 8}},
		{tensor.Shape{3, 5, 6}, []int{0, 1, 2}, []int{3, 4, 5}},
		{tensor.Shape{2, 3, 4, 8}, []int{1, 0, 1, 0}, []int{2, 3, 3, 8}},
	}
	for _, dt := range dtypes {
		for _, tc := range slices {
			t.Run(fmt.Sprintf("slice_%s_%v_%v_%v", dt, tc.shape, tc.starts, tc.ends), func(t *testing.T) {
				in := iotaTensor(t, tc.shape, dt)
				op, err := NewSlice(tc.shape, tc.starts, tc.ends)
				require.NoError(t, err)
				got, err := rc.Apply(ctx, op, in)
				require.NoError(t, err)
				requireSameTensor(t, ref.Slice(in, tc.starts, tc.ends), got)
			})
		}
	}

	broadcasts := []struct {
		shape, target tensor.Shape
	}{
		{tensor.Shape{1}, tensor.Shape{10}},
		{tensor.Shape{3, 1}, tensor.Shape{3, 4}},
		{tensor.Shape{4}, tensor.Shape{2, 3, 4}},
		{tensor.Shape{2, 1, 8}, tensor.Shape{3, 2, 5, 8}},
	}
	for _, dt := range dtypes {
		for _, tc := range broadcasts {
			t.Run(fmt.Sprintf("broadcast_%s_%v_%v", dt, tc.shape, tc.target), func(t *testing.T) {
				in := iotaTensor(t, tc.shape, dt)
				op, err := NewBroadcast(tc.shape, tc.target)
				require.NoError(t, err)
				got, err := rc.Apply(ctx, op, in)
				require.NoError(t, err)
				requireSameTensor(t, ref.Expand(in, tc.target), got)
			})
		}
	}
}
